package exceptions

import "errors"

var (
	ErrSlotEmpty              = errors.New("slot is empty")
	ErrUnsupportedSlotVersion = errors.New("unsupported slot version")
	ErrUnknownSlotBackend     = errors.New("unknown slot backend")
)
