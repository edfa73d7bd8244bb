// Package logger writes timestamped, leveled status lines to the console.
//
// A Logger is constructed once at startup and handed to every component
// that needs it; there is no package-level instance.
package logger

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// TimeFormat is the clock format prefixed to every line.
const TimeFormat = "15:04:05"

type kind int

const (
	kindSuccess kind = iota
	kindError
	kindWarning
	kindInfo
	kindDebug
	kindSystem
	kindNetwork
	kindSecurity
	kindDatabase
	kindPerformance
	kindAPI
	kindUser
	kindFile
	kindTask
)

type kindSpec struct {
	label string
	level log.Level
	color lipgloss.Color
}

var kinds = map[kind]kindSpec{
	kindSuccess:     {"✔ SUCCESS", log.InfoLevel, "#a6e3a1"},
	kindError:       {"✖ ERROR", log.ErrorLevel, "#f38ba8"},
	kindWarning:     {"⚠ WARNING", log.WarnLevel, "#f9e2af"},
	kindInfo:        {"ℹ INFO", log.InfoLevel, "#89b4fa"},
	kindDebug:       {"🔍 DEBUG", log.DebugLevel, "#cba6f7"},
	kindSystem:      {"⚙ SYSTEM", log.InfoLevel, "#94e2d5"},
	kindNetwork:     {"🌐 NETWORK", log.InfoLevel, "#89dceb"},
	kindSecurity:    {"🔒 SECURITY", log.WarnLevel, "#f38ba8"},
	kindDatabase:    {"💾 DATABASE", log.InfoLevel, "#74c7ec"},
	kindPerformance: {"⚡ PERFORMANCE", log.DebugLevel, "#fab387"},
	kindAPI:         {"🔌 API", log.InfoLevel, "#b4befe"},
	kindUser:        {"👤 USER", log.DebugLevel, "#a6e3a1"},
	kindFile:        {"📁 FILE", log.InfoLevel, "#f9e2af"},
	kindTask:        {"🔄 TASK", log.InfoLevel, "#94e2d5"},
}

// Logger is a console logger with one styled prefix per kind of event.
// It is safe for concurrent use.
type Logger struct {
	mu       sync.Mutex
	out      io.Writer
	renderer *lipgloss.Renderer
	base     *log.Logger
	subs     map[kind]*log.Logger
}

// New returns a Logger writing to w. Level is one of debug, info, warn or
// error; an empty level means info.
func New(w io.Writer, level string) (*Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		var err error
		lvl, err = log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
	}

	base := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      TimeFormat,
		Level:           lvl,
	})

	l := &Logger{
		out:      w,
		renderer: lipgloss.NewRenderer(w),
		base:     base,
		subs:     make(map[kind]*log.Logger, len(kinds)),
	}
	for k, spec := range kinds {
		sub := base.WithPrefix(spec.label)
		st := log.DefaultStyles()
		st.Prefix = l.renderer.NewStyle().Bold(true).Foreground(spec.color)
		st.Keys["category"] = l.renderer.NewStyle().Foreground(spec.color)
		sub.SetStyles(st)
		l.subs[k] = sub
	}
	return l, nil
}

// SetLevel changes the minimum level of every kind.
func (l *Logger) SetLevel(level string) error {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.base.SetLevel(lvl)
	for _, sub := range l.subs {
		sub.SetLevel(lvl)
	}
	return nil
}

func (l *Logger) emit(k kind, msg string, category []string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var kv []any
	if len(category) > 0 && category[0] != "" {
		kv = append(kv, "category", category[0])
	}
	l.subs[k].Log(kinds[k].level, msg, kv...)
}

// Success logs a completed operation.
func (l *Logger) Success(msg string, category ...string) { l.emit(kindSuccess, msg, category) }

// Error logs a failure.
func (l *Logger) Error(msg string, category ...string) { l.emit(kindError, msg, category) }

// Warning logs a recoverable problem.
func (l *Logger) Warning(msg string, category ...string) { l.emit(kindWarning, msg, category) }

func (l *Logger) Info(msg string, category ...string) { l.emit(kindInfo, msg, category) }

func (l *Logger) Debug(msg string, category ...string) { l.emit(kindDebug, msg, category) }

func (l *Logger) System(msg string, category ...string) { l.emit(kindSystem, msg, category) }

func (l *Logger) Network(msg string, category ...string) { l.emit(kindNetwork, msg, category) }

func (l *Logger) Security(msg string, category ...string) { l.emit(kindSecurity, msg, category) }

func (l *Logger) Database(msg string, category ...string) { l.emit(kindDatabase, msg, category) }

func (l *Logger) User(msg string, category ...string) { l.emit(kindUser, msg, category) }

// Performance logs timings. It is emitted at debug level.
func (l *Logger) Performance(msg string, category ...string) { l.emit(kindPerformance, msg, category) }

func (l *Logger) API(msg string, category ...string) { l.emit(kindAPI, msg, category) }

func (l *Logger) File(msg string, category ...string) { l.emit(kindFile, msg, category) }

func (l *Logger) Task(msg string, category ...string) { l.emit(kindTask, msg, category) }

// Status is the snapshot printed by ShowStatus.
type Status struct {
	Version          string
	OS               string
	Uptime           time.Duration
	MemoryBytes      uint64
	CurrentDirectory string
	CommandsCount    int
}

// ShowStatus prints a status block for the running process.
func (l *Logger) ShowStatus(s Status) {
	header := l.renderer.NewStyle().Bold(true).Render("📊 System status")
	l.mu.Lock()
	fmt.Fprintf(l.out, "\n%s\n\n", header)
	l.mu.Unlock()

	l.System(fmt.Sprintf("Clarity %s", s.Version))
	l.Info(fmt.Sprintf("OS: %s", s.OS), "System")
	l.Info(fmt.Sprintf("Uptime: %d minutes", int(s.Uptime.Minutes())), "System")
	l.Info(fmt.Sprintf("Memory in use: %dMB", s.MemoryBytes/1024/1024), "Memory")
	l.Info(fmt.Sprintf("Commands executed: %d", s.CommandsCount), "Stats")
	l.Info(fmt.Sprintf("Current directory: %s", s.CurrentDirectory), "Stats")

	l.mu.Lock()
	fmt.Fprintln(l.out)
	l.mu.Unlock()
}
