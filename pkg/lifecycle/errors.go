package lifecycle

import (
	"errors"
	"fmt"
)

// ErrTransientFault marks a lifecycle operation that failed. The loop
// recovers from it by unwinding; it is never fatal to the process.
var ErrTransientFault = errors.New("lifecycle: transient fault")

// FaultError reports which hook failed.
type FaultError struct {
	Hook string
	Err  error
}

// NewFault returns a transient fault raised by hook.
func NewFault(hook string) *FaultError {
	return &FaultError{Hook: hook, Err: ErrTransientFault}
}

func (e *FaultError) Error() string {
	return fmt.Sprintf("%s: %v", e.Hook, e.Err)
}

func (e *FaultError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is, or wraps, a transient fault.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransientFault)
}
