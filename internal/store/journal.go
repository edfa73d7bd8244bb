package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// timeLayout is fixed-width so stored times sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Invocation is one command received by the bot.
type Invocation struct {
	ID      uuid.UUID
	Session uuid.UUID
	Command string
	UserID  int64
	ChatID  int64
	At      time.Time
}

// CommandStat is the number of times a command was invoked.
type CommandStat struct {
	Command string
	Count   int
}

// RecordCommand stores inv. A zero ID or time is filled in.
func (d *DB) RecordCommand(ctx context.Context, inv Invocation) error {
	if inv.ID == uuid.Nil {
		inv.ID = uuid.New()
	}
	if inv.At.IsZero() {
		inv.At = time.Now()
	}

	_, err := d.ExecContext(ctx,
		`INSERT INTO command_log (id, session_id, command, user_id, chat_id, invoked_at) VALUES (?, ?, ?, ?, ?, ?)`,
		inv.ID.String(), inv.Session.String(), inv.Command, inv.UserID, inv.ChatID, inv.At.UTC().Format(timeLayout))
	if err != nil {
		return fmt.Errorf("record %s: %w", inv.Command, err)
	}
	return nil
}

// CountCommands returns the total number of recorded invocations.
func (d *DB) CountCommands(ctx context.Context) (int, error) {
	var n int
	if err := d.QueryRowContext(ctx, `SELECT COUNT(*) FROM command_log`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count commands: %w", err)
	}
	return n, nil
}

// CommandStats returns per-command counts, most used first.
func (d *DB) CommandStats(ctx context.Context) ([]CommandStat, error) {
	rows, err := d.QueryContext(ctx,
		`SELECT command, COUNT(*) AS n FROM command_log GROUP BY command ORDER BY n DESC, command ASC`)
	if err != nil {
		return nil, fmt.Errorf("command stats: %w", err)
	}
	defer rows.Close()

	var stats []CommandStat
	for rows.Next() {
		var s CommandStat
		if err := rows.Scan(&s.Command, &s.Count); err != nil {
			return nil, fmt.Errorf("command stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// SessionInvocations returns the invocations recorded for session, oldest
// first.
func (d *DB) SessionInvocations(ctx context.Context, session uuid.UUID) ([]Invocation, error) {
	rows, err := d.QueryContext(ctx,
		`SELECT id, command, user_id, chat_id, invoked_at FROM command_log WHERE session_id = ? ORDER BY invoked_at ASC`,
		session.String())
	if err != nil {
		return nil, fmt.Errorf("session invocations: %w", err)
	}
	defer rows.Close()

	var out []Invocation
	for rows.Next() {
		var (
			id, at string
			inv    = Invocation{Session: session}
		)
		if err := rows.Scan(&id, &inv.Command, &inv.UserID, &inv.ChatID, &at); err != nil {
			return nil, fmt.Errorf("session invocations: %w", err)
		}
		if inv.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("session invocations: bad id %q: %w", id, err)
		}
		if inv.At, err = time.Parse(timeLayout, at); err != nil {
			return nil, fmt.Errorf("session invocations: bad time %q: %w", at, err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}
