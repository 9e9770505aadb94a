package exceptions

import "errors"

var (
	ErrInvalidPriority = errors.New("invalid task priority")
	ErrInvalidStatus   = errors.New("invalid task status")
	ErrInvalidAssignee = errors.New("assignee is not on the roster")
	ErrInvalidDueDate  = errors.New("due date must be YYYY-MM-DD")
	ErrInvalidProgress = errors.New("progress must be between 0 and 100")
	ErrDuplicateTaskID = errors.New("duplicate task id")
	ErrInvalidPatch    = errors.New("malformed task patch")
)

// IsInvalidInput reports whether err was caused by a caller-supplied value.
func IsInvalidInput(err error) bool {
	for _, target := range []error{
		ErrInvalidPriority,
		ErrInvalidStatus,
		ErrInvalidAssignee,
		ErrInvalidDueDate,
		ErrInvalidProgress,
		ErrInvalidPatch,
		ErrUnknownReportFormat,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
