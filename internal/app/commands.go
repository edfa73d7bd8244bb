package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/eliseohh/claritybot/internal/bot"
	"github.com/eliseohh/claritybot/internal/logger"
	"github.com/eliseohh/claritybot/internal/shell"
	"github.com/eliseohh/claritybot/internal/store"
)

var errBotOffline = errors.New("bot is not running")

// deps is what the app-level shell commands reach into.
type deps struct {
	out     io.Writer
	log     *logger.Logger
	db      *store.DB
	bot     *bot.Bot
	shell   *shell.Shell
	started time.Time
}

func registerCommands(sh *shell.Shell, d *deps) {
	sh.Register(shell.Command{
		Name:        "status",
		Description: "Show system status",
		Category:    "Clarity",
		Action:      d.status,
	})
	sh.Register(shell.Command{
		Name:        "journal",
		Description: "List bot commands received this session",
		Category:    "Clarity",
		Action:      d.journal,
	})
	sh.Register(shell.Command{
		Name:        "loglevel",
		Description: "Set the log level (debug, info, warn, error)",
		Category:    "Clarity",
		Action:      d.logLevel,
	})
	sh.AddCustomCommand("history", "List previous commands", d.history)
}

func (d *deps) status(ctx context.Context, _ []string) error {
	n, err := d.db.CountCommands(ctx)
	if err != nil {
		return err
	}
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	d.log.ShowStatus(logger.Status{
		Version:          Version,
		OS:               runtime.GOOS + "/" + runtime.GOARCH,
		Uptime:           time.Since(d.started),
		MemoryBytes:      ms.Sys,
		CurrentDirectory: d.shell.Dir(),
		CommandsCount:    n,
	})
	return nil
}

func (d *deps) journal(ctx context.Context, _ []string) error {
	if d.bot == nil {
		return errBotOffline
	}
	invs, err := d.db.SessionInvocations(ctx, d.bot.Session())
	if err != nil {
		return err
	}
	if len(invs) == 0 {
		fmt.Fprintln(d.out, "No bot commands received yet.")
		return nil
	}
	for _, inv := range invs {
		fmt.Fprintf(d.out, "%s  /%-15s user %d  chat %d\n",
			inv.At.Local().Format(logger.TimeFormat), inv.Command, inv.UserID, inv.ChatID)
	}
	return nil
}

func (d *deps) logLevel(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: loglevel <debug|info|warn|error>")
	}
	if err := d.log.SetLevel(args[0]); err != nil {
		return err
	}
	d.log.System(fmt.Sprintf("Log level set to %s", args[0]), "Logger")
	return nil
}

func (d *deps) history(_ context.Context, _ []string) error {
	for i, line := range d.shell.History() {
		fmt.Fprintf(d.out, "%4d  %s\n", i+1, line)
	}
	return nil
}
