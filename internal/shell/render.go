package shell

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	promptSeparator = "⟫"
	promptArrow     = "➜"
	clearScreen     = "\x1b[H\x1b[2J\x1b[3J"
)

const (
	colorMauve    lipgloss.Color = "#cba6f7"
	colorOverlay1 lipgloss.Color = "#7f849c"
	colorSky      lipgloss.Color = "#89dceb"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorBlue     lipgloss.Color = "#89b4fa"
	colorPink     lipgloss.Color = "#f5c2e7"
)

type theme struct {
	user      lipgloss.Style
	separator lipgloss.Style
	folder    lipgloss.Style
	arrow     lipgloss.Style
	errMark   lipgloss.Style
	errLabel  lipgloss.Style
	okMark    lipgloss.Style
	infoMark  lipgloss.Style
	hint      lipgloss.Style
	title     lipgloss.Style
	banner    lipgloss.Style
	dim       lipgloss.Style
	category  lipgloss.Style
	name      lipgloss.Style
}

func newTheme(w io.Writer) theme {
	r := lipgloss.NewRenderer(w)
	return theme{
		user:      r.NewStyle().Bold(true).Foreground(colorMauve),
		separator: r.NewStyle().Foreground(colorOverlay1),
		folder:    r.NewStyle().Foreground(colorSky),
		arrow:     r.NewStyle().Bold(true).Foreground(colorGreen),
		errMark:   r.NewStyle().Foreground(colorRed),
		errLabel:  r.NewStyle().Bold(true).Foreground(colorRed),
		okMark:    r.NewStyle().Foreground(colorGreen),
		infoMark:  r.NewStyle().Foreground(colorBlue),
		hint:      r.NewStyle().Foreground(colorYellow),
		title:     r.NewStyle().Bold(true),
		banner: r.NewStyle().
			Bold(true).
			Foreground(colorPink).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMauve).
			Padding(0, 2),
		dim:      r.NewStyle().Faint(true),
		category: r.NewStyle().Foreground(colorYellow),
		name:     r.NewStyle().Foreground(colorGreen),
	}
}

func (t theme) prompt(user, dir string) string {
	return fmt.Sprintf("%s %s %s %s ",
		t.user.Render(user),
		t.separator.Render(promptSeparator),
		t.folder.Render(filepath.Base(dir)),
		t.arrow.Render(promptArrow),
	)
}

func (t theme) formatError(msg string) string {
	return fmt.Sprintf("%s %s %s", t.errMark.Render("✖"), t.errLabel.Render("Error:"), msg)
}

func (t theme) formatSuccess(msg string) string {
	return fmt.Sprintf("%s %s", t.okMark.Render("✔"), msg)
}

func (t theme) formatInfo(msg string) string {
	return fmt.Sprintf("%s %s", t.infoMark.Render("ℹ"), msg)
}

// Banner is the text shown when the shell starts and after clear.
type Banner struct {
	Title    string
	Subtitle string
}

func (t theme) welcome(b Banner) string {
	var sb strings.Builder
	sb.WriteString(t.banner.Render(b.Title))
	sb.WriteString("\n\n")
	if b.Subtitle != "" {
		sb.WriteString(t.dim.Render(b.Subtitle))
		sb.WriteString("\n\n")
	}
	sb.WriteString(t.formatInfo(`Type "help" to list the available commands`))
	sb.WriteString("\n\n")
	return sb.String()
}

func (t theme) help(groups []Group) string {
	var sb strings.Builder
	sb.WriteString(t.title.Render("\n📚 Available commands:"))
	sb.WriteString("\n")
	for _, g := range groups {
		sb.WriteString("\n")
		sb.WriteString(t.category.Render(g.Category + ":"))
		sb.WriteString("\n")
		for _, cmd := range g.Commands {
			fmt.Fprintf(&sb, "  %s %s\n", t.name.Render(fmt.Sprintf("%-15s", cmd.Name)), t.dim.Render(cmd.Description))
		}
	}
	sb.WriteString("\n")
	return sb.String()
}
