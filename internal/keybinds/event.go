package keybinds

import (
	"strings"
	"sync"
)

// KeyEvent is a single key press as seen by bindings.
// Key is the primary key name ("r", "'", "enter", "f1"), or a modifier
// name ("control", "shift", ...) when only a modifier was pressed.
type KeyEvent struct {
	Key   string
	Ctrl  bool
	Meta  bool
	Shift bool
	Alt   bool

	defaultPrevented   bool
	propagationStopped bool
}

// PreventDefault marks the event as consumed so the host's own handling
// (inserting the character into an editor) is skipped
func (e *KeyEvent) PreventDefault() { e.defaultPrevented = true }

// StopPropagation keeps the event from bubbling to the next target
func (e *KeyEvent) StopPropagation() { e.propagationStopped = true }

func (e *KeyEvent) DefaultPrevented() bool   { return e.defaultPrevented }
func (e *KeyEvent) PropagationStopped() bool { return e.propagationStopped }

// ParseKeyString converts a terminal key description such as "ctrl+r",
// "alt+shift+tab" or "A" into a KeyEvent. A single upper-case letter
// means shift was held.
func ParseKeyString(s string) KeyEvent {
	var ev KeyEvent
	rest := s
	for {
		switch {
		case len(rest) > len("ctrl+") && strings.HasPrefix(rest, "ctrl+"):
			ev.Ctrl = true
			rest = rest[len("ctrl+"):]
			continue
		case len(rest) > len("alt+") && strings.HasPrefix(rest, "alt+"):
			ev.Alt = true
			rest = rest[len("alt+"):]
			continue
		case len(rest) > len("shift+") && strings.HasPrefix(rest, "shift+"):
			ev.Shift = true
			rest = rest[len("shift+"):]
			continue
		case len(rest) > len("meta+") && strings.HasPrefix(rest, "meta+"):
			ev.Meta = true
			rest = rest[len("meta+"):]
			continue
		}
		break
	}

	if len(rest) == 1 && rest[0] >= 'A' && rest[0] <= 'Z' {
		ev.Shift = true
		rest = strings.ToLower(rest)
	}
	ev.Key = rest
	return ev
}

// Listener receives every event dispatched to a Target
type Listener func(ev *KeyEvent)

// Target is an event source listeners subscribe to
type Target struct {
	name string

	mu        sync.Mutex
	nextID    int
	order     []int
	listeners map[int]Listener
}

// NewTarget creates an empty target
func NewTarget(name string) *Target {
	return &Target{name: name, listeners: make(map[int]Listener)}
}

func (t *Target) Name() string { return t.name }

// Subscribe adds a listener and returns the function removing it.
// The returned function is safe to call more than once.
func (t *Target) Subscribe(l Listener) (unsubscribe func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.listeners[id] = l
	t.order = append(t.order, id)
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { t.remove(id) })
	}
}

func (t *Target) remove(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.listeners, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
}

// ListenerCount returns the number of subscribed listeners
func (t *Target) ListenerCount() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.listeners)
}

// Dispatch calls every listener in subscription order.
// Listeners may subscribe or unsubscribe while the event is delivered;
// the set seen by this event is fixed when Dispatch starts.
func (t *Target) Dispatch(ev *KeyEvent) {
	t.mu.Lock()
	snapshot := make([]Listener, 0, len(t.order))
	for _, id := range t.order {
		snapshot = append(snapshot, t.listeners[id])
	}
	t.mu.Unlock()

	for _, l := range snapshot {
		l(ev)
	}
}

// Scope names the target a binding listens on
type Scope string

const (
	ScopeDocument Scope = "document"
	ScopeWindow   Scope = "window"
)

// Host owns the document and window targets. Events reach the document
// first and bubble to the window unless a listener stops propagation.
type Host struct {
	Document *Target
	Window   *Target
}

func NewHost() *Host {
	return &Host{
		Document: NewTarget(string(ScopeDocument)),
		Window:   NewTarget(string(ScopeWindow)),
	}
}

// Target returns the target for scope, or nil for an unknown scope
func (h *Host) Target(scope Scope) *Target {
	switch scope {
	case ScopeDocument:
		return h.Document
	case ScopeWindow:
		return h.Window
	default:
		return nil
	}
}

// Dispatch delivers ev and reports whether a listener prevented the default
func (h *Host) Dispatch(ev *KeyEvent) bool {
	h.Document.Dispatch(ev)
	if !ev.PropagationStopped() {
		h.Window.Dispatch(ev)
	}
	return ev.DefaultPrevented()
}
