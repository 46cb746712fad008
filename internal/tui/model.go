package tui

import (
	"context"
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/voidrunner/internal/app"
	"github.com/studiowebux/voidrunner/internal/executor"
	"github.com/studiowebux/voidrunner/internal/highlight"
	"github.com/studiowebux/voidrunner/internal/keybinds"
	"github.com/studiowebux/voidrunner/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModePicker
	ModeHelp
)

// Focus is the pane receiving unbound keys
type Focus int

const (
	FocusEditor Focus = iota
	FocusStdin
	FocusOutput
)

func (f Focus) String() string {
	switch f {
	case FocusStdin:
		return "stdin"
	case FocusOutput:
		return "output"
	default:
		return "editor"
	}
}

// runFinishedMsg carries a completed job back to the event loop
type runFinishedMsg struct {
	job    *executor.Job
	result types.Result
}

type clearStatusMsg struct{}

// Model is the bubbletea model
type Model struct {
	app         *app.App
	dispatcher  *executor.Dispatcher
	registry    *keybinds.Registry
	host        *keybinds.Host
	engine      *keybinds.Engine
	highlighter *highlight.Highlighter
	logger      *slog.Logger
	ctx         context.Context

	editor   textarea.Model
	stdin    textarea.Model
	output   viewport.Model
	picker   list.Model
	helpView viewport.Model
	split    *SplitController

	mode   Mode
	focus  Focus
	width  int
	height int

	// hideResult blanks the output pane until the next run
	hideResult bool

	// pending collects commands queued by key bindings during one key press
	pending []tea.Cmd

	statusMsg string
	errorMsg  string
	quitting  bool

	copyToClipboard func(string) error
}

// Option customizes New
type Option func(*Model)

// WithClipboard replaces the system clipboard writer
func WithClipboard(write func(string) error) Option {
	return func(m *Model) { m.copyToClipboard = write }
}

// WithContext sets the context runs execute under
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// New creates a new TUI model bound to the hydrated session in a
func New(a *app.App, registry *keybinds.Registry, opts ...Option) *Model {
	if registry == nil {
		registry = keybinds.NewDefaultRegistry()
	}

	host := keybinds.NewHost()
	m := &Model{
		app:             a,
		dispatcher:      a.NewDispatcher(),
		registry:        registry,
		host:            host,
		engine:          keybinds.NewEngine(host),
		highlighter:     highlight.Default(),
		logger:          a.Logger.With("component", "tui"),
		ctx:             context.Background(),
		output:          viewport.New(40, 10),
		helpView:        viewport.New(80, 20),
		split:           NewSplitController(),
		copyToClipboard: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(m)
	}

	state := a.Session.State()
	m.editor = newTextarea("Write your code here", true)
	m.editor.SetValue(state.Code)
	m.stdin = newTextarea("Program input", false)
	m.stdin.SetValue(state.Stdin)
	m.picker = newPicker(a.Catalog, state.Language)

	m.installBindings()
	m.setFocus(FocusEditor)
	m.updateOutputView()

	return m
}

func newTextarea(placeholder string, lineNumbers bool) textarea.Model {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = lineNumbers
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""
	return ta
}

func (m *Model) installBindings() {
	m.registry.Install(m.engine, map[keybinds.Action]keybinds.Handler{
		keybinds.ActionRun:          func(*keybinds.KeyEvent) { m.queue(m.runCode()) },
		keybinds.ActionCopyOutput:   func(*keybinds.KeyEvent) { m.queue(m.copyOutput()) },
		keybinds.ActionPickLanguage: func(*keybinds.KeyEvent) { m.openPicker() },
		keybinds.ActionFocusNext:    func(*keybinds.KeyEvent) { m.setFocus((m.focus + 1) % 3) },
		keybinds.ActionClearOutput:  func(*keybinds.KeyEvent) { m.clearOutput() },
		keybinds.ActionHelp:         func(*keybinds.KeyEvent) { m.openHelp() },
		keybinds.ActionQuit:         func(*keybinds.KeyEvent) { m.quit() },
	})
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.pending = append(m.pending, cmd)
	}
}

func (m *Model) flushPending() tea.Cmd {
	cmds := m.pending
	m.pending = nil
	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	default:
		return tea.Batch(cmds...)
	}
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Cleanup removes every key binding
func (m *Model) Cleanup() {
	m.engine.Close()
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case runFinishedMsg:
		return m, m.handleRunFinished(msg)

	case clearStatusMsg:
		m.statusMsg = ""
		return m, nil
	}

	// Blink and other component messages
	var cmd tea.Cmd
	switch m.focus {
	case FocusEditor:
		m.editor, cmd = m.editor.Update(msg)
	case FocusStdin:
		m.stdin, cmd = m.stdin.Update(msg)
	}
	return m, cmd
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.mode {
	case ModePicker:
		return m.renderPicker()
	case ModeHelp:
		return m.renderHelp()
	default:
		return m.renderMain()
	}
}
