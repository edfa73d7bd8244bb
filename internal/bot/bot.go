// Package bot runs the Telegram side of claritybot.
package bot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v3"

	"github.com/eliseohh/claritybot/internal/logger"
	"github.com/eliseohh/claritybot/internal/store"
)

var ErrNoToken = errors.New("bot token is required")

// Journal records and summarizes received commands.
type Journal interface {
	RecordCommand(ctx context.Context, inv store.Invocation) error
	CommandStats(ctx context.Context) ([]store.CommandStat, error)
}

type Config struct {
	Token            string
	PollTimeout      time.Duration
	DeveloperName    string
	DeveloperContact string
	// Offline skips the getMe call, for tests and dry runs.
	Offline bool
}

type Bot struct {
	api      *tele.Bot
	me       *tele.User
	log      *logger.Logger
	journal  Journal
	cfg      Config
	session  uuid.UUID
	memberOf func(chat, user tele.Recipient) (*tele.ChatMember, error)
}

// Commands is the command list published to Telegram.
func Commands() []tele.Command {
	return []tele.Command{
		{Text: "botinfo", Description: "Get information about the bot"},
		{Text: "developerinfo", Description: "Get information about the developer"},
	}
}

// New connects to Telegram. The journal may be nil.
func New(cfg Config, journal Journal, log *logger.Logger) (*Bot, error) {
	if cfg.Token == "" {
		return nil, ErrNoToken
	}
	if cfg.PollTimeout <= 0 {
		cfg.PollTimeout = 10 * time.Second
	}

	pref := tele.Settings{
		Token:   cfg.Token,
		Poller:  &tele.LongPoller{Timeout: cfg.PollTimeout},
		Offline: cfg.Offline,
		OnError: func(err error, c tele.Context) {
			log.Error(fmt.Sprintf("Update handling failed: %v", err), "Bot")
		},
	}

	api, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}

	b := &Bot{
		api:      api,
		me:       api.Me,
		log:      log,
		journal:  journal,
		cfg:      cfg,
		session:  uuid.New(),
		memberOf: api.ChatMemberOf,
	}
	return b, nil
}

// Session identifies this run of the bot in the journal.
func (b *Bot) Session() uuid.UUID { return b.session }

// Username returns the bot's Telegram username.
func (b *Bot) Username() string {
	if b.me == nil {
		return ""
	}
	return b.me.Username
}

// Start registers the commands and polls for updates until Stop is called.
func (b *Bot) Start() {
	b.register()
	b.log.Success(fmt.Sprintf("Bot @%s is running and listening for updates", b.Username()), "StartBot")
	b.api.Start()
}

func (b *Bot) Stop() {
	b.api.Stop()
	b.log.System("Bot stopped", "StartBot")
}

func (b *Bot) register() {
	if err := b.api.SetCommands(Commands()); err != nil {
		b.log.Error(fmt.Sprintf("Error registering commands: %v", err), "RegisterCommands")
	} else {
		b.log.Success("Commands registered successfully", "RegisterCommands")
	}

	b.api.Use(b.journalMiddleware)

	b.api.Handle("/botinfo", b.handleBotInfo)
	b.api.Handle("/developerinfo", b.handleDeveloperInfo)
	b.api.Handle("/stats", b.handleStats)
}
