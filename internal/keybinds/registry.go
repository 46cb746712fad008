package keybinds

import (
	"sort"
	"strings"
)

// Registry maps actions to the combos that trigger them
type Registry struct {
	combos map[Action][]string
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{combos: make(map[Action][]string)}
}

// Set replaces the combos bound to action. Combos are lower-cased.
func (r *Registry) Set(action Action, combos ...string) {
	list := make([]string, 0, len(combos))
	for _, c := range combos {
		list = append(list, strings.ToLower(c))
	}
	r.combos[action] = list
}

// Combos returns the combos for action in registration order
func (r *Registry) Combos(action Action) []string {
	list := r.combos[action]
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Match returns the action bound to combo
func (r *Registry) Match(combo string) (Action, bool) {
	combo = strings.ToLower(combo)
	for _, action := range r.sortedActions() {
		for _, c := range r.combos[action] {
			if c == combo {
				return action, true
			}
		}
	}
	return "", false
}

// BindingString returns a human-readable string of combos bound to an action
func (r *Registry) BindingString(action Action) string {
	list := r.combos[action]
	if len(list) == 0 {
		return "unbound"
	}
	return strings.Join(list, ", ")
}

// Actions returns the actions that have an entry, known ones in help order first
func (r *Registry) Actions() []Action {
	return r.sortedActions()
}

func (r *Registry) sortedActions() []Action {
	var out []Action
	for _, a := range allActions {
		if _, ok := r.combos[a]; ok {
			out = append(out, a)
		}
	}

	var extra []Action
	for a := range r.combos {
		if !a.IsKnown() {
			extra = append(extra, a)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(out, extra...)
}

// Clone creates a deep copy of the registry
func (r *Registry) Clone() *Registry {
	clone := NewRegistry()
	for action, list := range r.combos {
		clone.Set(action, list...)
	}
	return clone
}

// Merge applies other on top of r. An action present in other replaces
// the combos r had for it.
func (r *Registry) Merge(other *Registry) {
	for action, list := range other.combos {
		r.Set(action, list...)
	}
}

// Install creates one combo binding per combo for every action that has
// a handler. Actions without a handler are skipped.
func (r *Registry) Install(e *Engine, handlers map[Action]Handler) []*Binding {
	var bindings []*Binding
	for _, action := range r.sortedActions() {
		h, ok := handlers[action]
		if !ok {
			continue
		}
		for _, combo := range r.combos[action] {
			bindings = append(bindings, e.BindCombo(combo, h, true))
		}
	}
	return bindings
}
