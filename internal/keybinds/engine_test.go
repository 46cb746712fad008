package keybinds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*Host, *Engine) {
	t.Helper()
	host := NewHost()
	engine := NewEngine(host)
	t.Cleanup(engine.Close)
	return host, engine
}

func listeners(h *Host) int {
	return h.Document.ListenerCount() + h.Window.ListenerCount()
}

func press(h *Host, ev KeyEvent) *KeyEvent {
	h.Dispatch(&ev)
	return &ev
}

func TestBindExactMatch(t *testing.T) {
	host, engine := newTestEngine(t)
	calls := 0
	_, err := engine.Bind([]string{"ctrl", "k"}, func(*KeyEvent) { calls++ })
	require.NoError(t, err)

	press(host, KeyEvent{Key: "k", Ctrl: true, Shift: true})
	assert.Equal(t, 0, calls, "superset must not match")

	press(host, KeyEvent{Key: "k"})
	assert.Equal(t, 0, calls, "subset must not match")

	ev := press(host, KeyEvent{Key: "K", Ctrl: true})
	assert.Equal(t, 1, calls)
	assert.True(t, ev.DefaultPrevented())
	assert.False(t, ev.PropagationStopped())
}

func TestBindDistinguishesCtrlAndMeta(t *testing.T) {
	host, engine := newTestEngine(t)
	calls := 0
	_, err := engine.Bind([]string{"ctrl", "k"}, func(*KeyEvent) { calls++ })
	require.NoError(t, err)

	press(host, KeyEvent{Key: "k", Meta: true})
	assert.Equal(t, 0, calls)
}

func TestBindModifierOnly(t *testing.T) {
	host, engine := newTestEngine(t)
	calls := 0
	_, err := engine.Bind([]string{"shift"}, func(*KeyEvent) { calls++ })
	require.NoError(t, err)

	press(host, KeyEvent{Key: "Shift", Shift: true})
	assert.Equal(t, 1, calls)
}

func TestBindOptions(t *testing.T) {
	host, engine := newTestEngine(t)
	windowCalls := 0
	_, err := engine.Bind([]string{"f2"}, func(*KeyEvent) {},
		WithPreventDefault(false),
		WithStopPropagation(true),
	)
	require.NoError(t, err)
	_, err = engine.Bind([]string{"f2"}, func(*KeyEvent) { windowCalls++ }, WithScope(ScopeWindow))
	require.NoError(t, err)

	ev := press(host, KeyEvent{Key: "f2"})
	assert.False(t, ev.DefaultPrevented())
	assert.True(t, ev.PropagationStopped())
	assert.Equal(t, 0, windowCalls, "window listener must not see a stopped event")
}

func TestBindWindowReceivesBubbledEvents(t *testing.T) {
	host, engine := newTestEngine(t)
	calls := 0
	_, err := engine.Bind([]string{"ctrl", "s"}, func(*KeyEvent) { calls++ }, WithScope(ScopeWindow))
	require.NoError(t, err)

	press(host, KeyEvent{Key: "s", Ctrl: true})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, host.Window.ListenerCount())
	assert.Equal(t, 0, host.Document.ListenerCount())
}

func TestBindUnknownScope(t *testing.T) {
	_, engine := newTestEngine(t)

	_, err := engine.Bind([]string{"a"}, func(*KeyEvent) {}, WithScope("body"))
	assert.Error(t, err)
}

func TestBindComboFoldsMeta(t *testing.T) {
	host, engine := newTestEngine(t)
	calls := 0
	engine.BindCombo(RunCombo, func(*KeyEvent) { calls++ }, true)

	ev := press(host, KeyEvent{Key: "'", Ctrl: true})
	assert.True(t, ev.DefaultPrevented())
	press(host, KeyEvent{Key: "'", Meta: true})
	assert.Equal(t, 2, calls)

	press(host, KeyEvent{Key: "'", Ctrl: true, Alt: true})
	press(host, KeyEvent{Key: "'"})
	assert.Equal(t, 2, calls)
}

func TestBindComboCaseInsensitive(t *testing.T) {
	host, engine := newTestEngine(t)
	calls := 0
	engine.BindCombo("CTRL+Shift+P", func(*KeyEvent) { calls++ }, true)

	press(host, KeyEvent{Key: "P", Ctrl: true, Shift: true})
	assert.Equal(t, 1, calls)
}

func TestBindComboDisabled(t *testing.T) {
	host, engine := newTestEngine(t)
	calls := 0
	b := engine.BindCombo("ctrl+r", func(*KeyEvent) { calls++ }, false)

	assert.Equal(t, 0, listeners(host))
	ev := press(host, KeyEvent{Key: "r", Ctrl: true})
	assert.Equal(t, 0, calls)
	assert.False(t, ev.DefaultPrevented())

	b.SetEnabled(true)
	press(host, KeyEvent{Key: "r", Ctrl: true})
	assert.Equal(t, 1, calls)
}

func TestActionCalledOncePerEvent(t *testing.T) {
	host, engine := newTestEngine(t)
	calls := 0
	b, err := engine.Bind([]string{"ctrl", "enter"}, func(*KeyEvent) { calls++ })
	require.NoError(t, err)

	// repeated lifecycle changes must not stack listeners
	for i := 0; i < 5; i++ {
		b.Rebind("ctrl", "enter")
		require.NoError(t, b.Retarget(ScopeDocument))
		b.SetEnabled(false)
		b.SetEnabled(true)
	}

	press(host, KeyEvent{Key: "enter", Ctrl: true})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, listeners(host))
}

func TestRebindReplacesKeys(t *testing.T) {
	host, engine := newTestEngine(t)
	calls := 0
	b, err := engine.Bind([]string{"ctrl", "k"}, func(*KeyEvent) { calls++ })
	require.NoError(t, err)

	b.Rebind("alt", "k")
	press(host, KeyEvent{Key: "k", Ctrl: true})
	assert.Equal(t, 0, calls)
	press(host, KeyEvent{Key: "k", Alt: true})
	assert.Equal(t, 1, calls)
	assert.Equal(t, "alt+k", b.Keys())
	assert.Equal(t, 1, listeners(host))
}

func TestRebindCombo(t *testing.T) {
	host, engine := newTestEngine(t)
	calls := 0
	b := engine.BindCombo("ctrl+r", func(*KeyEvent) { calls++ }, true)

	b.RebindCombo("f5")
	press(host, KeyEvent{Key: "r", Ctrl: true})
	press(host, KeyEvent{Key: "f5"})
	assert.Equal(t, 1, calls)
	assert.Equal(t, "f5", b.Keys())
}

func TestRetargetMovesSubscription(t *testing.T) {
	host, engine := newTestEngine(t)
	b, err := engine.Bind([]string{"x"}, func(*KeyEvent) {})
	require.NoError(t, err)
	require.Equal(t, 1, host.Document.ListenerCount())

	require.NoError(t, b.Retarget(ScopeWindow))
	assert.Equal(t, 0, host.Document.ListenerCount())
	assert.Equal(t, 1, host.Window.ListenerCount())
	assert.Equal(t, ScopeWindow, b.Scope())

	assert.Error(t, b.Retarget("elsewhere"))
	assert.Equal(t, 1, host.Window.ListenerCount())
}

func TestDisabledBindingHoldsNoListener(t *testing.T) {
	host, engine := newTestEngine(t)
	calls := 0
	b, err := engine.Bind([]string{"x"}, func(*KeyEvent) { calls++ }, WithEnabled(false))
	require.NoError(t, err)
	other, err := engine.Bind([]string{"y"}, func(*KeyEvent) {})
	require.NoError(t, err)

	assert.Equal(t, 1, listeners(host))
	assert.False(t, b.Enabled())
	assert.True(t, other.Enabled())

	b.SetEnabled(true)
	assert.Equal(t, 2, listeners(host))
	b.SetEnabled(false)
	assert.Equal(t, 1, listeners(host))

	press(host, KeyEvent{Key: "x"})
	assert.Equal(t, 0, calls)
}

func TestCloseIsIdempotent(t *testing.T) {
	host, engine := newTestEngine(t)
	calls := 0
	b, err := engine.Bind([]string{"x"}, func(*KeyEvent) { calls++ })
	require.NoError(t, err)

	b.Close()
	b.Close()
	assert.Equal(t, 0, listeners(host))
	assert.Equal(t, 0, engine.Len())

	// changes after close never resubscribe
	b.SetEnabled(false)
	b.SetEnabled(true)
	b.Rebind("y")
	assert.Equal(t, 0, listeners(host))
	press(host, KeyEvent{Key: "y"})
	assert.Equal(t, 0, calls)
}

func TestEngineCloseTearsDownEverything(t *testing.T) {
	host := NewHost()
	engine := NewEngine(host)

	for _, k := range []string{"a", "b", "c"} {
		_, err := engine.Bind([]string{"ctrl", k}, func(*KeyEvent) {})
		require.NoError(t, err)
	}
	_, err := engine.Bind([]string{"d"}, func(*KeyEvent) {}, WithScope(ScopeWindow))
	require.NoError(t, err)
	engine.BindCombo("ctrl+'", func(*KeyEvent) {}, true)
	require.Equal(t, 5, listeners(host))

	engine.Close()
	assert.Equal(t, 0, listeners(host))
	assert.Equal(t, 0, engine.Len())
}

func TestActionMayRebindDuringDispatch(t *testing.T) {
	host, engine := newTestEngine(t)
	calls := 0
	var b *Binding
	b = engine.BindCombo("ctrl+r", func(*KeyEvent) {
		calls++
		b.RebindCombo("ctrl+t")
	}, true)

	press(host, KeyEvent{Key: "r", Ctrl: true})
	press(host, KeyEvent{Key: "r", Ctrl: true})
	press(host, KeyEvent{Key: "t", Ctrl: true})
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, listeners(host))
}
