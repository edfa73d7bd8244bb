package app

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

type result struct {
	err    error
	stdout string
	stderr string
}

// runCLI executes the root command in an isolated environment with input
// fed to the shell.
func runCLI(t *testing.T, input string, args ...string) result {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("claritybot refuses to start on windows")
	}

	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("BOT_TOKEN", "")
	t.Setenv("CLARITY_CONFIG", "")
	t.Setenv("DATABASE_PATH", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SHELL", "/bin/bash")

	cfg := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfg, []byte("[developer]\nname = \"Tester\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	base := []string{
		"--config", cfg,
		"--env-file", filepath.Join(dir, "missing.env"),
		"--db", filepath.Join(dir, "clarity.db"),
	}

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append(base, args...))
	cmd.SetIn(strings.NewReader(input))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.Execute()
	return result{err: err, stdout: stdout.String(), stderr: stderr.String()}
}

func TestShellOnlyMode(t *testing.T) {
	res := runCLI(t, "status\nhistory\nexit\n")
	if res.err != nil {
		t.Fatalf("Execute: %v\nstderr: %s", res.err, res.stderr)
	}

	for _, want := range []string{
		"No BOT_TOKEN found",
		"Journal ready",
		"System status",
		"Clarity " + Version,
		"Commands executed: 0",
		"   1  history",
		"   2  status",
		"Goodbye",
	} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("stdout missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestEndOfInputStopsShell(t *testing.T) {
	res := runCLI(t, "")
	if res.err != nil {
		t.Fatalf("Execute: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Goodbye") {
		t.Errorf("stdout missing farewell:\n%s", res.stdout)
	}
}

func TestJournalWithoutBot(t *testing.T) {
	res := runCLI(t, "journal\nexit\n")
	if res.err != nil {
		t.Fatalf("Execute: %v", res.err)
	}
	if !strings.Contains(res.stderr, "journal: "+errBotOffline.Error()) {
		t.Errorf("stderr = %q", res.stderr)
	}
}

func TestLogLevelCommand(t *testing.T) {
	res := runCLI(t, "loglevel debug\nloglevel\nloglevel loud\nexit\n")
	if res.err != nil {
		t.Fatalf("Execute: %v", res.err)
	}
	if !strings.Contains(res.stdout, "Log level set to debug") {
		t.Errorf("stdout missing level change:\n%s", res.stdout)
	}
	if !strings.Contains(res.stderr, "usage: loglevel") {
		t.Errorf("stderr missing usage: %q", res.stderr)
	}
	if strings.Count(res.stderr, "loglevel:") != 2 {
		t.Errorf("want two loglevel failures, stderr = %q", res.stderr)
	}
}

func TestHelpListsAppCommands(t *testing.T) {
	res := runCLI(t, "help\nexit\n")
	if res.err != nil {
		t.Fatalf("Execute: %v", res.err)
	}
	for _, want := range []string{"Clarity", "status", "journal", "loglevel", "Other", "history"} {
		if !strings.Contains(res.stdout, want) {
			t.Errorf("help missing %q:\n%s", want, res.stdout)
		}
	}
}

func TestNoShellWithoutToken(t *testing.T) {
	res := runCLI(t, "", "--no-shell")
	if !errors.Is(res.err, errNothingToRun) {
		t.Fatalf("err = %v, want %v", res.err, errNothingToRun)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	res := runCLI(t, "", "--log-level", "loud")
	if res.err == nil {
		t.Fatal("expected error for unknown log level")
	}
}

func TestRejectsArguments(t *testing.T) {
	res := runCLI(t, "", "extra")
	if res.err == nil {
		t.Fatal("expected error for positional argument")
	}
}

func TestVersionFlag(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs([]string{"--version"})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Errorf("version output = %q", out.String())
	}
}
