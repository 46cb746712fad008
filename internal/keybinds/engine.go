package keybinds

import (
	"fmt"
	"strings"
	"sync"
)

// Handler is the action invoked when a binding matches
type Handler func(ev *KeyEvent)

// Engine creates bindings on a Host and tracks them for teardown
type Engine struct {
	host *Host

	mu       sync.Mutex
	bindings map[*Binding]struct{}
}

// NewEngine creates an engine for host
func NewEngine(host *Host) *Engine {
	return &Engine{
		host:     host,
		bindings: make(map[*Binding]struct{}),
	}
}

// Host returns the host events are dispatched on
func (e *Engine) Host() *Host { return e.host }

// BindOption configures a set binding
type BindOption func(*Binding)

// WithPreventDefault controls whether a match prevents the default (default true)
func WithPreventDefault(b bool) BindOption {
	return func(bd *Binding) { bd.preventDefault = b }
}

// WithStopPropagation controls whether a match stops bubbling (default false)
func WithStopPropagation(b bool) BindOption {
	return func(bd *Binding) { bd.stopPropagation = b }
}

// WithScope selects the target the binding listens on (default document)
func WithScope(s Scope) BindOption {
	return func(bd *Binding) { bd.scope = s }
}

// WithEnabled sets the initial enabled state (default true)
func WithEnabled(b bool) BindOption {
	return func(bd *Binding) { bd.enabled = b }
}

// Bind registers a set binding: it fires when the pressed keys equal keys exactly
func (e *Engine) Bind(keys []string, action Handler, opts ...BindOption) (*Binding, error) {
	b := &Binding{
		engine:         e,
		keys:           NewKeySet(keys...),
		action:         action,
		enabled:        true,
		preventDefault: true,
		scope:          ScopeDocument,
	}
	for _, opt := range opts {
		opt(b)
	}
	if e.host.Target(b.scope) == nil {
		return nil, fmt.Errorf("unknown scope %q", b.scope)
	}

	e.add(b)
	return b, nil
}

// BindCombo registers a string combo binding on the document. Ctrl and
// meta are interchangeable and a match always prevents the default.
func (e *Engine) BindCombo(combo string, action Handler, enabled bool) *Binding {
	b := &Binding{
		engine:         e,
		combo:          strings.ToLower(combo),
		isCombo:        true,
		action:         action,
		enabled:        enabled,
		preventDefault: true,
		scope:          ScopeDocument,
	}

	e.add(b)
	return b
}

func (e *Engine) add(b *Binding) {
	e.mu.Lock()
	e.bindings[b] = struct{}{}
	e.mu.Unlock()

	b.mu.Lock()
	b.resubscribe()
	b.mu.Unlock()
}

func (e *Engine) remove(b *Binding) {
	e.mu.Lock()
	delete(e.bindings, b)
	e.mu.Unlock()
}

// Len returns the number of bindings not yet closed
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.bindings)
}

// Close tears down every binding
func (e *Engine) Close() {
	e.mu.Lock()
	all := make([]*Binding, 0, len(e.bindings))
	for b := range e.bindings {
		all = append(all, b)
	}
	e.mu.Unlock()

	for _, b := range all {
		b.Close()
	}
}

// Binding is one registered shortcut. It holds a subscription on its
// target only while enabled and not closed.
type Binding struct {
	engine *Engine

	mu              sync.Mutex
	keys            KeySet
	combo           string
	isCombo         bool
	action          Handler
	enabled         bool
	preventDefault  bool
	stopPropagation bool
	scope           Scope
	unsubscribe     func()
	closed          bool
}

// resubscribe drops the current listener and installs a new one when
// the binding is live. Callers hold b.mu.
func (b *Binding) resubscribe() {
	if b.unsubscribe != nil {
		b.unsubscribe()
		b.unsubscribe = nil
	}
	if b.closed || !b.enabled {
		return
	}
	b.unsubscribe = b.engine.host.Target(b.scope).Subscribe(b.handle)
}

func (b *Binding) handle(ev *KeyEvent) {
	b.mu.Lock()
	if b.closed || !b.enabled || !b.matches(ev) {
		b.mu.Unlock()
		return
	}
	prevent, stop, action := b.preventDefault, b.stopPropagation, b.action
	b.mu.Unlock()

	if prevent {
		ev.PreventDefault()
	}
	if stop {
		ev.StopPropagation()
	}
	if action != nil {
		action(ev)
	}
}

func (b *Binding) matches(ev *KeyEvent) bool {
	if b.isCombo {
		return ComboString(ev) == b.combo
	}
	return PressedKeys(ev).Equal(b.keys)
}

// Rebind replaces the key set of a set binding
func (b *Binding) Rebind(keys ...string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.keys = NewKeySet(keys...)
	b.isCombo = false
	b.resubscribe()
}

// RebindCombo replaces the combo of a combo binding
func (b *Binding) RebindCombo(combo string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.combo = strings.ToLower(combo)
	b.isCombo = true
	b.resubscribe()
}

// Retarget moves the binding to another scope
func (b *Binding) Retarget(scope Scope) error {
	if b.engine.host.Target(scope) == nil {
		return fmt.Errorf("unknown scope %q", scope)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.scope = scope
	b.resubscribe()
	return nil
}

// SetEnabled toggles matching. A disabled binding holds no subscription.
func (b *Binding) SetEnabled(enabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.enabled == enabled {
		return
	}
	b.enabled = enabled
	b.resubscribe()
}

func (b *Binding) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled && !b.closed
}

// Keys describes what the binding matches
func (b *Binding) Keys() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.isCombo {
		return b.combo
	}
	return b.keys.String()
}

func (b *Binding) Scope() Scope {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.scope
}

// Close removes the binding's subscription. It is idempotent.
func (b *Binding) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.resubscribe()
	b.mu.Unlock()

	b.engine.remove(b)
}
