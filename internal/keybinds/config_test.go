package keybinds

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfigJSONC(t *testing.T) {
	data := []byte(`{
		// terminal friendly run key
		"version": "1.0",
		"bindings": {
			"run": ["Ctrl+'", "f5",],
			"quit": "ctrl+q", /* single combo */
		},
	}`)

	config, err := ParseConfig(data)
	require.NoError(t, err)
	assert.Equal(t, "1.0", config.Version)
	assert.Equal(t, ComboList{"Ctrl+'", "f5"}, config.Bindings["run"])
	assert.Equal(t, ComboList{"ctrl+q"}, config.Bindings["quit"])
}

func TestParseConfigRejectsBadShape(t *testing.T) {
	_, err := ParseConfig([]byte(`{"bindings": {"run": 5}}`))
	assert.Error(t, err)

	_, err = ParseConfig([]byte(`not json`))
	assert.Error(t, err)
}

func TestApplyConfigOverridesPerAction(t *testing.T) {
	registry := NewDefaultRegistry()
	ApplyConfig(registry, &Config{Bindings: map[string]ComboList{
		"run": {"Cmd+Enter", "not-a+combo"},
	}})

	assert.Equal(t, []string{"ctrl+enter", "not-a+combo"}, registry.Combos(ActionRun))
	assert.Equal(t, []string{"ctrl+q"}, registry.Combos(ActionQuit), "untouched actions keep defaults")
}

func TestLoadOrDefault(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		registry, err := LoadOrDefault(filepath.Join(dir, "absent.json"))
		require.NoError(t, err)
		assert.Equal(t, []string{RunCombo, "ctrl+r"}, registry.Combos(ActionRun))
	})

	t.Run("empty path", func(t *testing.T) {
		registry, err := LoadOrDefault("")
		require.NoError(t, err)
		assert.Equal(t, []string{"f1"}, registry.Combos(ActionHelp))
	})

	t.Run("override", func(t *testing.T) {
		path := filepath.Join(dir, "keybinds.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"bindings": {"help": "F2"}}`), 0644))

		registry, err := LoadOrDefault(path)
		require.NoError(t, err)
		assert.Equal(t, []string{"f2"}, registry.Combos(ActionHelp))
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"bindings": [`), 0644))

		_, err := LoadOrDefault(path)
		assert.Error(t, err)
	})
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keybinds.json")
	require.NoError(t, SaveConfig(ExportDefaults(), path))

	config, err := LoadConfig(path)
	require.NoError(t, err)

	registry := NewRegistry()
	ApplyConfig(registry, config)
	for _, action := range Actions() {
		assert.Equal(t, NewDefaultRegistry().Combos(action), registry.Combos(action), action)
	}
}

func TestRegistryInstall(t *testing.T) {
	host := NewHost()
	engine := NewEngine(host)
	defer engine.Close()

	runs := 0
	bindings := NewDefaultRegistry().Install(engine, map[Action]Handler{
		ActionRun: func(*KeyEvent) { runs++ },
	})
	require.Len(t, bindings, 2)

	for _, s := range []string{"ctrl+r", "ctrl+q"} {
		ev := ParseKeyString(s)
		host.Dispatch(&ev)
	}
	ev := KeyEvent{Key: "'", Meta: true}
	host.Dispatch(&ev)

	assert.Equal(t, 2, runs)
}

func TestRegistryMatchAndBindingString(t *testing.T) {
	registry := NewDefaultRegistry()

	action, ok := registry.Match("CTRL+R")
	assert.True(t, ok)
	assert.Equal(t, ActionRun, action)

	_, ok = registry.Match("ctrl+z")
	assert.False(t, ok)

	assert.Equal(t, "ctrl+', ctrl+r", registry.BindingString(ActionRun))
	assert.Equal(t, "unbound", NewRegistry().BindingString(ActionRun))
}

func TestRegistryCloneIsIndependent(t *testing.T) {
	registry := NewDefaultRegistry()
	clone := registry.Clone()
	clone.Set(ActionRun, "f5")

	assert.Equal(t, []string{RunCombo, "ctrl+r"}, registry.Combos(ActionRun))
	assert.Equal(t, []string{"f5"}, clone.Combos(ActionRun))
}

func TestRegistryActionsOrder(t *testing.T) {
	registry := NewDefaultRegistry()
	registry.Set("zzz", "f9")
	registry.Set("aaa", "f8")

	actions := registry.Actions()
	assert.Equal(t, Actions(), actions[:len(Actions())])
	assert.Equal(t, []Action{"aaa", "zzz"}, actions[len(Actions()):])
}

func TestHelpMarkdown(t *testing.T) {
	registry := NewDefaultRegistry()
	registry.Set("custom", "f9")
	registry.Set(ActionHelp, "ctrl+|")

	md := HelpMarkdown(registry)

	assert.Contains(t, md, "| run | `ctrl+'`, `ctrl+r` | Run the code with the current stdin |")
	assert.Contains(t, md, "`ctrl+\\|`")
	assert.NotContains(t, md, "custom")
	assert.Contains(t, md, "`ctrl+c` always quits")
}
