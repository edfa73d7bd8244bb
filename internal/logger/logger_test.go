package logger

import (
	"bytes"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestKindsAndCategories(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "debug")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		log   func(string, ...string)
		label string
	}{
		{"success", l.Success, "SUCCESS"},
		{"error", l.Error, "ERROR"},
		{"warning", l.Warning, "WARNING"},
		{"info", l.Info, "INFO"},
		{"debug", l.Debug, "DEBUG"},
		{"system", l.System, "SYSTEM"},
		{"database", l.Database, "DATABASE"},
		{"performance", l.Performance, "PERFORMANCE"},
		{"api", l.API, "API"},
		{"file", l.File, "FILE"},
		{"task", l.Task, "TASK"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.log("hello "+tt.name, "StartBot")
			out := buf.String()
			if !strings.Contains(out, tt.label) {
				t.Errorf("missing label %q in %q", tt.label, out)
			}
			if !strings.Contains(out, "hello "+tt.name) {
				t.Errorf("missing message in %q", out)
			}
			if !strings.Contains(out, "category=StartBot") {
				t.Errorf("missing category in %q", out)
			}
		})
	}
}

func TestNoCategory(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "")
	if err != nil {
		t.Fatal(err)
	}
	l.Info("plain")
	if strings.Contains(buf.String(), "category=") {
		t.Errorf("unexpected category field in %q", buf.String())
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "info")
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("hidden")
	l.User("also hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug output leaked at info level: %q", buf.String())
	}

	if err := l.SetLevel("debug"); err != nil {
		t.Fatal(err)
	}
	l.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("debug line missing after SetLevel: %q", buf.String())
	}

	buf.Reset()
	if err := l.SetLevel("error"); err != nil {
		t.Fatal(err)
	}
	l.Warning("quiet")
	l.Error("loud")
	if strings.Contains(buf.String(), "quiet") || !strings.Contains(buf.String(), "loud") {
		t.Errorf("unexpected output at error level: %q", buf.String())
	}
}

func TestInvalidLevel(t *testing.T) {
	if _, err := New(&bytes.Buffer{}, "chatty"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestShowStatus(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "info")
	if err != nil {
		t.Fatal(err)
	}
	l.ShowStatus(Status{
		Version:          "1.0.0",
		OS:               "linux/amd64",
		Uptime:           3 * time.Minute,
		MemoryBytes:      8 << 20,
		CurrentDirectory: "/tmp",
		CommandsCount:    42,
	})
	out := buf.String()
	for _, want := range []string{"System status", "Clarity 1.0.0", "linux/amd64", "Uptime: 3 minutes", "8MB", "Commands executed: 42", "/tmp"} {
		if !strings.Contains(out, want) {
			t.Errorf("status output missing %q:\n%s", want, out)
		}
	}
}

func TestTimestamp(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "")
	if err != nil {
		t.Fatal(err)
	}
	l.Info("tick")

	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2} `).MatchString(buf.String()) {
		t.Errorf("line does not start with a 15:04:05 timestamp: %q", buf.String())
	}
}
