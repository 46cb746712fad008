package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/voidrunner/internal/keybinds"
	"github.com/studiowebux/voidrunner/internal/session"
)

// handleKeyPress routes a key through the binding engine and falls back
// to the focused pane when no binding claimed it
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// ctrl+c always exits, regardless of mode or bindings
	if msg.String() == keybinds.ReservedCombo {
		m.quit()
		return m.flushPending()
	}

	switch m.mode {
	case ModePicker:
		return m.handlePickerKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}

	// Pasted text is content, never a shortcut
	if !msg.Paste {
		ev := keybinds.ParseKeyString(msg.String())
		if m.host.Dispatch(&ev) {
			return m.flushPending()
		}
	}
	cmd := m.forwardToFocused(msg)
	m.queue(cmd)
	return m.flushPending()
}

func (m *Model) forwardToFocused(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case FocusEditor:
		before := m.editor.Value()
		m.editor, cmd = m.editor.Update(msg)
		if value := m.editor.Value(); value != before {
			m.persist(session.Patch{Code: session.Value(value)}, "code")
		}
	case FocusStdin:
		before := m.stdin.Value()
		m.stdin, cmd = m.stdin.Update(msg)
		if value := m.stdin.Value(); value != before {
			m.persist(session.Patch{Stdin: session.Value(value)}, "stdin")
		}
	case FocusOutput:
		m.output, cmd = m.output.Update(msg)
	}
	return cmd
}

// persist saves a key press that changed the pane contents
func (m *Model) persist(p session.Patch, field string) {
	if _, err := m.app.Session.Update(p); err != nil {
		m.logger.Warn("failed to persist "+field, "error", err)
	}
}

func (m *Model) handlePickerKeys(msg tea.KeyMsg) tea.Cmd {
	// While filtering, the list owns every key
	if m.picker.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return cmd
	}

	switch msg.String() {
	case "esc", "q":
		m.mode = ModeNormal
		return nil
	case "enter":
		item, ok := m.picker.SelectedItem().(languageItem)
		m.mode = ModeNormal
		if !ok {
			return nil
		}
		return m.selectLanguage(item.desc.ID)
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return cmd
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "esc" || key == "q" {
		m.mode = ModeNormal
		return nil
	}
	if action, ok := m.registry.Match(key); ok {
		switch action {
		case keybinds.ActionHelp:
			m.mode = ModeNormal
			return nil
		case keybinds.ActionQuit:
			m.quit()
			return m.flushPending()
		}
	}

	var cmd tea.Cmd
	m.helpView, cmd = m.helpView.Update(msg)
	return cmd
}
