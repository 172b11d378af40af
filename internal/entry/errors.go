package entry

import "errors"

var (
	ErrNotFound     = errors.New("entry not found")
	ErrNotRunning   = errors.New("entry is not running")
	ErrInvalidInput = errors.New("invalid input")
)

const (
	FieldTaskName  = "task name"
	FieldTimeframe = "timeframe"
)

// InvalidInputError reports a rejected task name or timeframe. Reason is meant
// to be shown to the user as is.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return e.Reason
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

var (
	errTaskNameRequired = &InvalidInputError{Field: FieldTaskName, Reason: "Please enter a task name."}
	errTimeframeZero    = &InvalidInputError{Field: FieldTimeframe, Reason: "Please enter a timeframe greater than 0."}
)
