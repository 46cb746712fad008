package tui

import (
	"context"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"github.com/studiowebux/voidrunner/internal/app"
	"github.com/studiowebux/voidrunner/internal/config"
	"github.com/studiowebux/voidrunner/internal/keybinds"
	"github.com/studiowebux/voidrunner/internal/storage"
	"github.com/studiowebux/voidrunner/internal/types"
)

// stubRunner records requests and answers with a canned reply
type stubRunner struct {
	resp *types.ExecutionResponse
	reqs []types.ExecutionRequest
}

func (s *stubRunner) Execute(_ context.Context, req types.ExecutionRequest) (*types.ExecutionResponse, error) {
	s.reqs = append(s.reqs, req)
	return s.resp, nil
}

type testEnv struct {
	model     *Model
	runner    *stubRunner
	store     *storage.MemoryStore
	clipboard []string
}

// CreateTestModel builds a sized model over an in-memory store
func CreateTestModel(t *testing.T, resp *types.ExecutionResponse) *testEnv {
	t.Helper()
	return createTestModelWithStore(t, resp, storage.NewMemoryStore())
}

// createTestModelWithStore builds a sized model over store, which may be pre-seeded
func createTestModelWithStore(t *testing.T, resp *types.ExecutionResponse, store *storage.MemoryStore) *testEnv {
	t.Helper()

	require.NoError(t, config.InitializeAt(filepath.Join(t.TempDir(), ".voidrunner")))
	settings, err := config.LoadFile("")
	require.NoError(t, err)
	settings.History.Enabled = false

	env := &testEnv{
		runner: &stubRunner{resp: resp},
		store:  store,
	}
	a, err := app.Open(settings, nil, app.WithRunner(env.runner), app.WithStore(env.store))
	require.NoError(t, err)
	t.Cleanup(func() { a.Close() })

	env.model = New(a, keybinds.NewDefaultRegistry(), WithClipboard(func(s string) error {
		env.clipboard = append(env.clipboard, s)
		return nil
	}))
	t.Cleanup(env.model.Cleanup)

	env.model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return env
}

func (e *testEnv) press(msg tea.KeyMsg) tea.Cmd {
	_, cmd := e.model.Update(msg)
	return cmd
}

func keyType(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}
