package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/voidrunner/internal/app"
	"github.com/studiowebux/voidrunner/internal/keybinds"
)

// Run starts the TUI application and blocks until it exits
func Run(ctx context.Context, a *app.App, registry *keybinds.Registry, opts ...Option) error {
	opts = append([]Option{WithContext(ctx)}, opts...)
	m := New(a, registry, opts...)
	defer m.Cleanup()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}
