package oerror

import "fmt"

// SimError is the error type returned by the simulation packages.
type SimError struct {
	Err string
}

// New returns a SimError with a message formatted from format and args.
func New(format string, args ...any) *SimError {
	return &SimError{Err: fmt.Sprintf(format, args...)}
}

func (e *SimError) Error() string {
	return e.Err
}
