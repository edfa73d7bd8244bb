package shell

import (
	"context"
	"errors"
	"io"
	"os/exec"
	"runtime"
	"strings"
	"syscall"
)

// ExitNotFound is the status POSIX shells use for an unknown command.
const ExitNotFound = 127

// IOBindings are the standard streams handed to a host process.
type IOBindings struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Executor runs commands the shell does not know about.
type Executor interface {
	// Execute runs name with args in dir. It returns the exit status, or an
	// error when the process could not be started or was killed by a
	// signal (*SignalError).
	Execute(ctx context.Context, name string, args []string, dir string, io IOBindings) (int, error)
}

// HostExecutor forwards commands to the operating system's command
// interpreter, so pipes, globs and variables behave as in a login shell.
type HostExecutor struct {
	// Interpreter and Flag default to "sh -c", or "cmd /C" on Windows.
	Interpreter string
	Flag        string
}

func (e *HostExecutor) interpreter() (string, string) {
	if e.Interpreter != "" {
		return e.Interpreter, e.Flag
	}
	if runtime.GOOS == "windows" {
		return "cmd", "/C"
	}
	return "/bin/sh", "-c"
}

func (e *HostExecutor) Execute(ctx context.Context, name string, args []string, dir string, io IOBindings) (int, error) {
	bin, flag := e.interpreter()
	line := strings.Join(append([]string{name}, args...), " ")

	cmd := exec.CommandContext(ctx, bin, flag, line)
	cmd.Dir = dir
	cmd.Stdin = io.Stdin
	cmd.Stdout = io.Stdout
	cmd.Stderr = io.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
				return -1, &SignalError{Signal: ws.Signal()}
			}
			return exitErr.ExitCode(), nil
		}
		return -1, err
	}
	return 0, nil
}
