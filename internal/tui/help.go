package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/studiowebux/voidrunner/internal/keybinds"
)

// helpContent renders the binding table as styled markdown
func (m *Model) helpContent() string {
	md := "# VoidRunner\n\n" + keybinds.HelpMarkdown(m.registry)

	width := m.helpView.Width
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		m.logger.Debug("glamour unavailable, showing raw help", "error", err)
		return md
	}
	out, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func (m *Model) renderHelp() string {
	return m.helpView.View() + "\n" + styleSubtle.Render("esc/q: close  up/down: scroll")
}
