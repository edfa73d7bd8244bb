// Package markdown renders bot replies in Telegram's legacy Markdown.
package markdown

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// MaxMessageChars is the Telegram limit for a text message.
const MaxMessageChars = 4096

var ErrTooLong = errors.New("message too long")

var escaper = strings.NewReplacer(
	`_`, `\_`,
	`*`, `\*`,
	"`", "\\`",
	`[`, `\[`,
)

// Escape makes s safe to embed in a legacy Markdown message.
func Escape(s string) string {
	return escaper.Replace(s)
}

// A ")" would end the link target early; legacy Markdown has no escape for
// it inside the parentheses.
var urlEscaper = strings.NewReplacer(`)`, `%29`)

// Link returns an inline link. The text is escaped and any ")" in the URL
// is percent-encoded.
func Link(text, url string) string {
	return fmt.Sprintf("[%s](%s)", Escape(text), urlEscaper.Replace(url))
}

// Field is one "- Key: Value" line of a Card. Raw values are written as is.
type Field struct {
	Key   string
	Value string
	Raw   bool
}

// Card is a bold title followed by a bulleted list of fields.
type Card struct {
	Title  string
	Fields []Field
}

func (c Card) Render() (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "*%s:*\n", Escape(c.Title))
	for _, f := range c.Fields {
		v := f.Value
		if !f.Raw {
			v = Escape(v)
		}
		fmt.Fprintf(&sb, "- %s: %s\n", Escape(f.Key), v)
	}

	out := sb.String()
	if n := utf8.RuneCountInString(out); n > MaxMessageChars {
		return "", fmt.Errorf("%w: %d exceeds limit %d", ErrTooLong, n, MaxMessageChars)
	}
	return out, nil
}
