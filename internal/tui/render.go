package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/voidrunner/internal/keybinds"
	"github.com/studiowebux/voidrunner/internal/types"
)

// paneHeights splits the body height between the stdin and output panes
func (m *Model) paneHeights() (body, stdin, output int) {
	body = m.height - StatusBarHeight
	if body < 0 {
		body = 0
	}
	stdin = int(math.Round(float64(body) * StdinHeightRatio))
	output = body - stdin
	return body, stdin, output
}

// innerHeight is the content height of a bordered pane with a title
func innerHeight(h int) int {
	return max(h-ViewportBorderWidth-PaneTitleHeight, 1)
}

func innerWidth(w int) int {
	return max(w-ViewportBorderWidth, 1)
}

func (m *Model) resize() {
	m.split.Resize(m.width)
	primary, secondary := m.split.Widths()
	body, stdinH, outputH := m.paneHeights()

	m.editor.SetWidth(innerWidth(primary))
	m.editor.SetHeight(innerHeight(body))
	m.stdin.SetWidth(innerWidth(secondary))
	m.stdin.SetHeight(innerHeight(stdinH))
	m.output.Width = innerWidth(secondary)
	m.output.Height = innerHeight(outputH)

	m.helpView.Width = m.width
	m.helpView.Height = max(m.height-StatusBarHeight, 1)
	if m.mode == ModeHelp {
		m.helpView.SetContent(m.helpContent())
	}
	m.resizePicker()
	m.updateOutputView()
}

// updateOutputView refreshes the output pane from the dispatcher
func (m *Model) updateOutputView() {
	m.output.SetContent(m.outputText())
	m.output.GotoTop()
}

func (m *Model) outputText() string {
	if m.dispatcher.Status() == types.StatusRunning {
		return styleWarning.Render("Running...")
	}
	res, ok := m.dispatcher.Result()
	if !ok || m.hideResult {
		return styleSubtle.Render(fmt.Sprintf("Press %s to run", m.registry.BindingString(keybinds.ActionRun)))
	}
	if res.IsFailure() {
		return styleError.Render(res.Message)
	}
	return res.Output
}

func renderPane(title, body string, width, height int, focused, failed bool) string {
	border := colorGray
	switch {
	case failed:
		border = colorRed
	case focused:
		border = colorGreen
	}
	content := lipgloss.NewStyle().
		MaxWidth(innerWidth(width)).
		MaxHeight(innerHeight(height)).
		Render(body)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(innerWidth(width)).
		Height(max(height-ViewportBorderWidth, 1)).
		Render(styleTitle.Render(title) + "\n" + content)
}

func (m *Model) renderMain() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	state := m.app.Session.State()
	primary, secondary := m.split.Widths()
	body, stdinH, outputH := m.paneHeights()

	editorTitle := fmt.Sprintf("Code: %s", m.app.Catalog.DisplayName(state.Language))
	editor := renderPane(editorTitle, m.editorBody(state), primary, body, m.focus == FocusEditor, false)

	res, ok := m.dispatcher.Result()
	failed := ok && !m.hideResult && res.IsFailure()
	stdin := renderPane("Input", m.stdin.View(), secondary, stdinH, m.focus == FocusStdin, false)
	output := renderPane("Output", m.output.View(), secondary, outputH, m.focus == FocusOutput, failed)

	right := lipgloss.JoinVertical(lipgloss.Left, stdin, output)
	panes := lipgloss.JoinHorizontal(lipgloss.Top, editor, right)
	return lipgloss.JoinVertical(lipgloss.Left, panes, m.renderStatusBar())
}

// editorBody shows a highlighted preview when the editor is not focused
func (m *Model) editorBody(state types.SessionState) string {
	if m.focus == FocusEditor || state.Code == "" {
		return m.editor.View()
	}
	mode := state.Language
	if desc, err := m.app.Catalog.Lookup(state.Language); err == nil {
		mode = desc.Mode
	}
	out, err := m.highlighter.Code(state.Code, mode)
	if err != nil {
		return m.editor.View()
	}
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if h := m.editor.Height(); len(lines) > h {
		lines = lines[:h]
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatusBar() string {
	var left string
	switch {
	case m.errorMsg != "":
		left = styleError.Render(m.errorMsg)
	case m.dispatcher.Status() == types.StatusRunning:
		left = styleWarning.Render(m.statusMsg)
	case m.statusMsg != "":
		left = styleSuccess.Render(m.statusMsg)
	default:
		left = styleSubtle.Render(fmt.Sprintf("focus: %s", m.focus))
	}

	hints := styleSubtle.Render(fmt.Sprintf("%s run | %s language | %s next | %s help",
		m.registry.BindingString(keybinds.ActionRun),
		m.registry.BindingString(keybinds.ActionPickLanguage),
		m.registry.BindingString(keybinds.ActionFocusNext),
		m.registry.BindingString(keybinds.ActionHelp),
	))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(hints)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(left)
	}
	return left + strings.Repeat(" ", gap) + hints
}
