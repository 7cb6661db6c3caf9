package lacrosse

import "errors"

var (
	// ErrInvalidBank is returned when a bank selector is neither 1 nor 2
	ErrInvalidBank = errors.New("invalid bank")
	// ErrInvalidValue is returned when a configuration value is not a non-negative integer
	ErrInvalidValue = errors.New("invalid value")
	// ErrInvalidOp is returned for an unknown configuration operation
	ErrInvalidOp = errors.New("invalid operation")
	// ErrAlreadyRunning is returned by Start when the reader is not stopped
	ErrAlreadyRunning = errors.New("reader already running")
	// ErrNotRunning is returned when an operation needs a running reader
	ErrNotRunning = errors.New("reader not running")
)
