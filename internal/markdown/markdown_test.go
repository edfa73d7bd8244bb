package markdown

import (
	"errors"
	"strings"
	"testing"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"snake_case_bot", `snake\_case\_bot`},
		{"*bold* `code` [link]", "\\*bold\\* \\`code\\` \\[link]"},
	}
	for _, tt := range tests {
		if got := Escape(tt.in); got != tt.want {
			t.Errorf("Escape(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLink(t *testing.T) {
	tests := []struct {
		text, url, want string
	}{
		{"Telegram", "https://t.me/tsulinks", "[Telegram](https://t.me/tsulinks)"},
		{"my_site", "https://example.com/a_(b)", `[my\_site](https://example.com/a_(b%29)`},
	}
	for _, tt := range tests {
		if got := Link(tt.text, tt.url); got != tt.want {
			t.Errorf("Link(%q, %q) = %q, want %q", tt.text, tt.url, got, tt.want)
		}
	}
}

func TestCardRender(t *testing.T) {
	c := Card{
		Title: "Developer Information",
		Fields: []Field{
			{Key: "Name", Value: "Tsu_basa"},
			{Key: "Contact", Value: Link("Telegram", "https://t.me/tsulinks"), Raw: true},
		},
	}
	got, err := c.Render()
	if err != nil {
		t.Fatal(err)
	}
	want := "*Developer Information:*\n- Name: Tsu\\_basa\n- Contact: [Telegram](https://t.me/tsulinks)\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestCardTooLong(t *testing.T) {
	c := Card{Title: "Big", Fields: []Field{{Key: "Blob", Value: strings.Repeat("x", MaxMessageChars)}}}
	if _, err := c.Render(); !errors.Is(err, ErrTooLong) {
		t.Fatalf("Render() error = %v, want ErrTooLong", err)
	}
}
