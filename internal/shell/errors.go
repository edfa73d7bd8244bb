package shell

import (
	"errors"
	"fmt"
	"os"
)

// ErrPanic wraps a value recovered from a panicking action.
var ErrPanic = errors.New("command panicked")

// HandlerError reports a registered or built-in command that failed.
type HandlerError struct {
	Command string
	Err     error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *HandlerError) Unwrap() error { return e.Err }

// HostProcessError reports a forwarded command that could not be launched
// or was killed by a signal (Err is set), or exited with a non-zero status.
type HostProcessError struct {
	Command  string
	ExitCode int
	Err      error
}

func (e *HostProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: command exited with code %d", e.Command, e.ExitCode)
}

func (e *HostProcessError) Unwrap() error { return e.Err }

// SignalError reports a host process terminated by a signal.
type SignalError struct {
	Signal os.Signal
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("terminated by signal %v", e.Signal)
}
