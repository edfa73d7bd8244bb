package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/eliseohh/claritybot/internal/bot"
	"github.com/eliseohh/claritybot/internal/config"
	"github.com/eliseohh/claritybot/internal/logger"
	"github.com/eliseohh/claritybot/internal/shell"
	"github.com/eliseohh/claritybot/internal/store"
)

var errNothingToRun = errors.New("nothing to run: no bot token and the shell is disabled")

// Options are the command-line settings. Empty fields defer to config.
type Options struct {
	ConfigFile string
	EnvFile    string
	NoShell    bool
	LogLevel   string
	DBPath     string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run starts the bot (when a token is configured) and the shell (unless
// disabled) and returns when the shell exits or ctx is done.
func Run(ctx context.Context, opts Options) error {
	started := time.Now()

	cfg, err := config.Load(config.Options{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile})
	if err != nil {
		return err
	}
	if opts.LogLevel != "" {
		cfg.Log.Level = opts.LogLevel
	}
	if opts.DBPath != "" {
		cfg.Database.Path = opts.DBPath
	}
	if opts.NoShell {
		cfg.Shell.Enabled = false
	}

	log, err := logger.New(opts.Stdout, cfg.Log.Level)
	if err != nil {
		return err
	}

	if err := bot.CheckPlatform(runtime.GOOS); err != nil {
		log.Warning("Windows system detected, shutting down", "SYSTEM")
		return nil
	}

	db, err := store.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer db.Close()
	log.Database(fmt.Sprintf("Journal ready at %s", cfg.Database.Path), "Store")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM)
	defer stop()

	var b *bot.Bot
	if cfg.Bot.Token == "" {
		log.Warning("No BOT_TOKEN found. Bot will not start.", "StartBot")
	} else {
		b, err = bot.New(bot.Config{
			Token:            cfg.Bot.Token,
			PollTimeout:      cfg.Bot.PollTimeout,
			DeveloperName:    cfg.Developer.Name,
			DeveloperContact: cfg.Developer.Contact,
		}, db, log)
		if err != nil {
			return fmt.Errorf("bot init failed: %w", err)
		}
		go b.Start()
		defer b.Stop()
	}

	if !cfg.Shell.Enabled {
		if b == nil {
			return errNothingToRun
		}
		log.System("Running in bot-only mode. Press Ctrl+C to stop.", "App")
		ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
		defer stop()
		<-ctx.Done()
		return nil
	}

	sh := shell.New(opts.Stdin, opts.Stdout, opts.Stderr, shell.WithBanner(shell.Banner{
		Title:    cfg.Shell.Title,
		Subtitle: fmt.Sprintf("Version %s", Version),
	}))
	registerCommands(sh, &deps{
		out:     opts.Stdout,
		log:     log,
		db:      db,
		bot:     b,
		shell:   sh,
		started: started,
	})
	return sh.Start(ctx)
}
