package exceptions

import "errors"

var ErrUnknownReportFormat = errors.New("unknown report format")
