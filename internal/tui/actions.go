package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const statusTimeout = 3 * time.Second

// runCode submits the current session unless a run is in flight
func (m *Model) runCode() tea.Cmd {
	state := m.app.Session.State()
	job, ok := m.dispatcher.Start(state)
	if !ok {
		return m.setStatusMessage("Run already in progress")
	}

	m.hideResult = false
	m.errorMsg = ""
	m.statusMsg = fmt.Sprintf("Running %s...", m.app.Catalog.DisplayName(state.Language))
	m.updateOutputView()

	ctx := m.ctx
	return func() tea.Msg {
		return runFinishedMsg{job: job, result: job.Run(ctx)}
	}
}

func (m *Model) handleRunFinished(msg runFinishedMsg) tea.Cmd {
	m.updateOutputView()
	if msg.result.IsFailure() {
		m.statusMsg = ""
		m.errorMsg = msg.result.Message
		return nil
	}
	return m.setStatusMessage(fmt.Sprintf("Finished in %s", msg.job.Duration().Round(time.Millisecond)))
}

func (m *Model) copyOutput() tea.Cmd {
	res, ok := m.dispatcher.Result()
	if !ok || m.hideResult {
		return m.setStatusMessage("Nothing to copy")
	}
	if err := m.copyToClipboard(res.Text()); err != nil {
		m.logger.Warn("clipboard write failed", "error", err)
		m.errorMsg = "Failed to copy to clipboard"
		return nil
	}
	return m.setStatusMessage("Output copied to clipboard")
}

func (m *Model) clearOutput() {
	m.hideResult = true
	m.errorMsg = ""
	m.updateOutputView()
}

func (m *Model) setFocus(f Focus) {
	m.focus = f
	m.editor.Blur()
	m.stdin.Blur()
	switch f {
	case FocusEditor:
		m.editor.Focus()
	case FocusStdin:
		m.stdin.Focus()
	}
}

func (m *Model) openPicker() {
	m.picker = newPicker(m.app.Catalog, m.app.Session.State().Language)
	m.resizePicker()
	m.mode = ModePicker
}

// selectLanguage switches the session language and reloads the editor,
// which picks up the starter snippet when the code was empty
func (m *Model) selectLanguage(id string) tea.Cmd {
	state, err := m.app.Session.SwitchLanguage(id)
	if err != nil {
		m.logger.Warn("language switch failed", "language", id, "error", err)
		m.errorMsg = fmt.Sprintf("Failed to switch language: %v", err)
		return nil
	}
	m.editor.SetValue(state.Code)
	return m.setStatusMessage(fmt.Sprintf("Language: %s", m.app.Catalog.DisplayName(state.Language)))
}

func (m *Model) openHelp() {
	m.helpView.SetContent(m.helpContent())
	m.helpView.GotoTop()
	m.mode = ModeHelp
}

func (m *Model) quit() {
	m.quitting = true
	m.queue(tea.Quit)
}

// setStatusMessage shows msg and clears it after a short delay
func (m *Model) setStatusMessage(msg string) tea.Cmd {
	if len(msg) > StatusMessageMax {
		msg = msg[:StatusMessageMax-3] + "..."
	}
	m.statusMsg = msg
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
