package shell

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"
	"testing"
)

func skipOnWindows(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("host executor tests assume a POSIX sh")
	}
}

func TestHostExecutor(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()

	tests := []struct {
		name     string
		cmd      string
		args     []string
		wantCode int
		wantOut  string
	}{
		{"echo", "echo", []string{"hello", "world"}, 0, "hello world\n"},
		{"exit status", "exit", []string{"3"}, 3, ""},
		{"unknown command", "definitely-not-a-command-xyz", nil, ExitNotFound, ""},
		{"shell syntax", "echo", []string{"a", "|", "tr", "a", "b"}, 0, "b\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			e := &HostExecutor{}
			code, err := e.Execute(context.Background(), tt.cmd, tt.args, dir, IOBindings{Stdout: &stdout, Stderr: &stderr})
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr %q)", code, tt.wantCode, stderr.String())
			}
			if tt.wantOut != "" && stdout.String() != tt.wantOut {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantOut)
			}
		})
	}
}

func TestHostExecutorUsesDir(t *testing.T) {
	skipOnWindows(t)
	dir := t.TempDir()
	var stdout bytes.Buffer
	code, err := (&HostExecutor{}).Execute(context.Background(), "pwd", nil, dir, IOBindings{Stdout: &stdout})
	if err != nil || code != 0 {
		t.Fatalf("Execute = %d, %v", code, err)
	}
	want, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	got, err := filepath.EvalSymlinks(strings.TrimSpace(stdout.String()))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("pwd = %q, want %q", got, want)
	}
}

func TestHostExecutorLaunchFailure(t *testing.T) {
	e := &HostExecutor{Interpreter: filepath.Join(t.TempDir(), "no-such-sh"), Flag: "-c"}
	code, err := e.Execute(context.Background(), "echo", []string{"hi"}, t.TempDir(), IOBindings{})
	if err == nil {
		t.Fatal("expected launch error")
	}
	if code != -1 {
		t.Errorf("exit code = %d, want -1", code)
	}
}

func TestHostExecutorKilledBySignal(t *testing.T) {
	skipOnWindows(t)
	code, err := (&HostExecutor{}).Execute(context.Background(), "kill", []string{"-TERM", "$$"}, t.TempDir(), IOBindings{})

	var sigErr *SignalError
	if !errors.As(err, &sigErr) {
		t.Fatalf("Execute error = %v, want *SignalError", err)
	}
	if sigErr.Signal != syscall.SIGTERM {
		t.Errorf("signal = %v, want %v", sigErr.Signal, syscall.SIGTERM)
	}
	if code != -1 {
		t.Errorf("exit code = %d, want -1", code)
	}
}
