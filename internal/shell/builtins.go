package shell

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

func (s *Shell) registerBuiltins() {
	s.Register(Command{
		Name:        "cd",
		Description: "Change the current directory",
		Category:    "Navigation",
		Action:      s.changeDir,
	})

	s.Register(Command{
		Name:        "clear",
		Description: "Clear the screen",
		Category:    "System",
		Action: func(context.Context, []string) error {
			fmt.Fprint(s.out, clearScreen)
			fmt.Fprint(s.out, s.theme.welcome(s.banner))
			return nil
		},
	})

	s.Register(Command{
		Name:        "help",
		Description: "Show this help",
		Category:    "System",
		Action: func(context.Context, []string) error {
			fmt.Fprint(s.out, s.theme.help(s.registry.Groups()))
			return nil
		},
	})

	s.Register(Command{
		Name:        "exit",
		Description: "Quit the terminal",
		Category:    "System",
		Action: func(context.Context, []string) error {
			s.Stop()
			return nil
		},
	})
}

func (s *Shell) changeDir(_ context.Context, args []string) error {
	target := s.home
	if len(args) > 0 {
		target = args[0]
	}
	if target == "" {
		return errors.New("HOME not set")
	}

	target, err := s.expandHome(target)
	if err != nil {
		return err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(s.dir, target)
	}
	target = filepath.Clean(target)

	info, err := os.Stat(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: no such file or directory", target)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s: permission denied", target)
	case err != nil:
		return fmt.Errorf("cannot access %s: %w", target, err)
	case !info.IsDir():
		return fmt.Errorf("%s: not a directory", target)
	}

	s.setDir(target)
	return nil
}

func (s *Shell) expandHome(p string) (string, error) {
	if !strings.HasPrefix(p, "~") {
		return p, nil
	}
	if s.home == "" {
		return "", errors.New("HOME not set")
	}
	switch {
	case p == "~":
		return s.home, nil
	case strings.HasPrefix(p, "~/"):
		return filepath.Join(s.home, p[2:]), nil
	}
	return "", fmt.Errorf("unsupported user expansion: %s", p)
}
