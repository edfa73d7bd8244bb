// Package shell implements an interactive command shell: a prompt loop
// over a line reader that runs registered commands and hands anything
// else to the operating system's command interpreter.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"os/user"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
)

// MaxHistory bounds the number of remembered input lines.
const MaxHistory = 100

// maxSuggestDistance is the largest edit distance offered as a suggestion.
const maxSuggestDistance = 2

const interruptHint = "\n\n↪ To quit, type \"exit\" or press Ctrl+D"

type readResult struct {
	line string
	err  error
}

// lineReader reads one line per request, so nothing consumes input while a
// command or child process owns the terminal.
type lineReader struct {
	br   *bufio.Reader
	req  chan struct{}
	res  chan readResult
	once sync.Once
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{
		br:  bufio.NewReader(r),
		req: make(chan struct{}),
		res: make(chan readResult, 1),
	}
}

func (r *lineReader) start() {
	r.once.Do(func() {
		go func() {
			for range r.req {
				line, err := r.br.ReadString('\n')
				r.res <- readResult{line: line, err: err}
			}
		}()
	})
}

// Shell is an interactive command loop. A Shell is not safe for concurrent
// use; all state is owned by the goroutine running Start.
type Shell struct {
	reader   *lineReader
	stdin    io.Reader
	out      io.Writer
	errw     io.Writer
	registry *Registry
	executor Executor
	theme    theme
	banner   Banner

	user   string
	home   string
	dir    string
	prompt string

	running    bool
	pending    bool
	history    []string
	interrupts <-chan os.Signal
}

// Option configures a Shell.
type Option func(*Shell)

// WithExecutor replaces the host command executor.
func WithExecutor(e Executor) Option {
	return func(s *Shell) { s.executor = e }
}

// WithDir sets the initial working directory.
func WithDir(dir string) Option {
	return func(s *Shell) { s.dir = dir }
}

// WithUser sets the user name shown in the prompt.
func WithUser(name string) Option {
	return func(s *Shell) { s.user = name }
}

// WithHome sets the directory used by a bare cd and by ~ expansion.
func WithHome(dir string) Option {
	return func(s *Shell) { s.home = dir }
}

// WithInterrupts makes the shell read interrupts from ch instead of
// subscribing to os.Interrupt.
func WithInterrupts(ch <-chan os.Signal) Option {
	return func(s *Shell) { s.interrupts = ch }
}

// WithBanner sets the welcome banner.
func WithBanner(b Banner) Option {
	return func(s *Shell) { s.banner = b }
}

// New returns a Shell reading from in and writing to out and errw, with the
// cd, clear, help and exit commands registered.
func New(in io.Reader, out, errw io.Writer, opts ...Option) *Shell {
	s := &Shell{
		reader:   newLineReader(in),
		out:      out,
		errw:     errw,
		registry: NewRegistry(),
		executor: &HostExecutor{},
		theme:    newTheme(out),
		banner:   Banner{Title: "Clarity Terminal"},
	}
	// Children only share the input stream when it is a real file.
	if f, ok := in.(*os.File); ok {
		s.stdin = f
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.dir == "" {
		if wd, err := os.Getwd(); err == nil {
			s.dir = wd
		} else {
			s.dir = "."
		}
	}
	if s.home == "" {
		s.home, _ = os.UserHomeDir()
	}
	if s.user == "" {
		s.user = currentUser()
	}

	s.setDir(s.dir)
	s.registerBuiltins()
	return s
}

func currentUser() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if name := os.Getenv("USER"); name != "" {
		return name
	}
	return "user"
}

func (s *Shell) setDir(dir string) {
	s.dir = dir
	s.prompt = s.theme.prompt(s.user, s.dir)
}

// Register adds cmd to the shell, replacing a command with the same name.
func (s *Shell) Register(cmd Command) {
	s.registry.Register(cmd)
}

// AddCustomCommand registers an uncategorized command.
func (s *Shell) AddCustomCommand(name, description string, action Action) {
	s.Register(Command{Name: name, Description: description, Action: action})
}

// Commands returns the registered command names in registration order.
func (s *Shell) Commands() []string { return s.registry.Names() }

// Dir returns the tracked working directory.
func (s *Shell) Dir() string { return s.dir }

// Prompt returns the prompt for the current directory.
func (s *Shell) Prompt() string { return s.prompt }

// Running reports whether the loop is active.
func (s *Shell) Running() bool { return s.running }

// History returns the non-empty input lines, most recent first.
func (s *Shell) History() []string {
	h := make([]string, len(s.history))
	copy(h, s.history)
	return h
}

// Start runs the prompt loop until exit, end of input or ctx is done.
// Calling Start on a running shell does nothing.
func (s *Shell) Start(ctx context.Context) error {
	if s.running {
		return nil
	}
	s.running = true
	s.reader.start()

	interrupts := s.interrupts
	if interrupts == nil {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt)
		defer signal.Stop(ch)
		interrupts = ch
	}

	fmt.Fprint(s.out, s.theme.welcome(s.banner))
	// A read left pending by a cancelled run is still waiting for input.
	if s.pending {
		fmt.Fprint(s.out, s.prompt)
	}

	for s.running {
		if !s.pending {
			drain(interrupts)
			fmt.Fprint(s.out, s.prompt)
			s.reader.req <- struct{}{}
			s.pending = true
		}

		select {
		case <-ctx.Done():
			s.Stop()
		case <-interrupts:
			fmt.Fprintln(s.out, s.theme.hint.Render(interruptHint))
			fmt.Fprint(s.out, s.prompt)
		case r := <-s.reader.res:
			s.pending = false
			s.Dispatch(ctx, r.line)
			if r.err != nil && s.running {
				if !errors.Is(r.err, io.EOF) {
					s.report(fmt.Errorf("read input: %w", r.err))
				}
				s.Stop()
			}
		}
	}
	return nil
}

// Stop ends the loop and prints a farewell. Stopping a stopped shell does
// nothing.
func (s *Shell) Stop() {
	if !s.running {
		return
	}
	s.running = false
	fmt.Fprintln(s.out, s.theme.formatSuccess("👋 Goodbye!"))
}

// Restart stops the shell and starts it again.
func (s *Shell) Restart(ctx context.Context) error {
	s.Stop()
	return s.Start(ctx)
}

func drain(ch <-chan os.Signal) {
	for {
		select {
		case <-ch:
		default:
			return
		}
	}
}

// Dispatch runs one input line. Failures are printed, never returned.
func (s *Shell) Dispatch(ctx context.Context, line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	s.remember(line)

	fields := strings.Fields(line)
	name, args := fields[0], fields[1:]

	if cmd, ok := s.registry.Lookup(name); ok {
		if err := invoke(ctx, cmd, args); err != nil {
			s.report(&HandlerError{Command: name, Err: err})
		}
		return
	}
	s.runHost(ctx, name, args)
}

func (s *Shell) remember(line string) {
	s.history = append([]string{line}, s.history...)
	if len(s.history) > MaxHistory {
		s.history = s.history[:MaxHistory]
	}
}

func invoke(ctx context.Context, cmd Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	if cmd.Action == nil {
		return nil
	}
	return cmd.Action(ctx, args)
}

func (s *Shell) runHost(ctx context.Context, name string, args []string) {
	code, err := s.executor.Execute(ctx, name, args, s.dir, IOBindings{
		Stdin:  s.stdin,
		Stdout: s.out,
		Stderr: s.errw,
	})
	if err != nil {
		s.report(&HostProcessError{Command: name, ExitCode: -1, Err: err})
		return
	}
	if code == 0 {
		return
	}
	s.report(&HostProcessError{Command: name, ExitCode: code})
	if code == ExitNotFound {
		if alt, ok := s.Suggest(name); ok {
			fmt.Fprintln(s.errw, s.theme.formatInfo(fmt.Sprintf("Did you mean %q?", alt)))
		}
	}
}

// Suggest returns the registered command closest to name, if any is within
// a small edit distance.
func (s *Shell) Suggest(name string) (string, bool) {
	best, bestDist := "", maxSuggestDistance+1
	for _, cand := range s.registry.Names() {
		if d := levenshtein.ComputeDistance(name, cand); d < bestDist {
			best, bestDist = cand, d
		}
	}
	return best, best != ""
}

func (s *Shell) report(err error) {
	fmt.Fprintln(s.errw, s.theme.formatError(err.Error()))
}
