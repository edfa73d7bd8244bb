package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tele "gopkg.in/telebot.v3"

	"github.com/eliseohh/claritybot/internal/markdown"
	"github.com/eliseohh/claritybot/internal/store"
)

const (
	genericFailure = "An error occurred while processing your request."
	journalTimeout = 5 * time.Second
)

func silentMarkdown() *tele.SendOptions {
	return &tele.SendOptions{ParseMode: tele.ModeMarkdown, DisableNotification: true}
}

func (b *Bot) handleBotInfo(c tele.Context) error {
	var name string
	var id int64
	if b.me != nil {
		name, id = b.me.FirstName, b.me.ID
	}
	return b.reply(c, "botinfo", markdown.Card{
		Title: "Bot Information",
		Fields: []markdown.Field{
			{Key: "Bot Username", Value: name},
			{Key: "Bot ID", Value: strconv.FormatInt(id, 10)},
			{Key: "Bot Language Code", Value: "Go"},
		},
	})
}

func (b *Bot) handleDeveloperInfo(c tele.Context) error {
	return b.reply(c, "developerinfo", markdown.Card{
		Title: "Developer Information",
		Fields: []markdown.Field{
			{Key: "Name", Value: b.cfg.DeveloperName},
			{Key: "Contact", Value: markdown.Link("Telegram", b.cfg.DeveloperContact), Raw: true},
		},
	})
}

// /stats, admins only
func (b *Bot) handleStats(c tele.Context) error {
	sender := c.Sender()
	if sender == nil || !b.IsAdmin(c, sender.ID) {
		var id int64
		if sender != nil {
			id = sender.ID
		}
		b.log.Security(fmt.Sprintf("User %d denied /stats", id), "Stats")
		return c.Send("⛔ Admins only.")
	}
	if b.journal == nil {
		return c.Send("Journal disabled.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
	defer cancel()
	stats, err := b.journal.CommandStats(ctx)
	if err != nil {
		b.log.Error(fmt.Sprintf("Error in stats command: %v", err), "Stats")
		return c.Send(genericFailure)
	}

	card := markdown.Card{Title: "Command Statistics"}
	for _, s := range stats {
		card.Fields = append(card.Fields, markdown.Field{Key: "/" + s.Command, Value: strconv.Itoa(s.Count)})
	}
	if len(card.Fields) == 0 {
		card.Fields = []markdown.Field{{Key: "Commands", Value: "none yet"}}
	}
	return b.reply(c, "stats", card)
}

// reply sends card as a silent Markdown message. Failures are logged and
// answered with a generic apology.
func (b *Bot) reply(c tele.Context, command string, card markdown.Card) error {
	text, err := card.Render()
	if err == nil {
		err = c.Send(text, silentMarkdown())
	}
	if err != nil {
		b.log.Error(fmt.Sprintf("Error in %s command: %v", command, err), "Commands")
		return c.Send(genericFailure)
	}
	return nil
}

func (b *Bot) journalMiddleware(next tele.HandlerFunc) tele.HandlerFunc {
	return func(c tele.Context) error {
		name, ok := commandName(c.Message())
		if ok && b.journal != nil {
			inv := store.Invocation{Session: b.session, Command: name}
			if u := c.Sender(); u != nil {
				inv.UserID = u.ID
			}
			if ch := c.Chat(); ch != nil {
				inv.ChatID = ch.ID
			}
			b.log.User(fmt.Sprintf("/%s from %d in %d", name, inv.UserID, inv.ChatID), "Journal")

			ctx, cancel := context.WithTimeout(context.Background(), journalTimeout)
			err := b.journal.RecordCommand(ctx, inv)
			cancel()
			if err != nil {
				b.log.Error(fmt.Sprintf("Journal write failed: %v", err), "Journal")
			}
		}
		return next(c)
	}
}

// commandName extracts "start" from "/start@SomeBot payload".
func commandName(m *tele.Message) (string, bool) {
	if m == nil || !strings.HasPrefix(m.Text, "/") {
		return "", false
	}
	name := strings.TrimPrefix(strings.Fields(m.Text)[0], "/")
	name, _, _ = strings.Cut(name, "@")
	return name, name != ""
}
