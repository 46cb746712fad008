package keybinds

// RunCombo is the primary run shortcut (ctrl or cmd + apostrophe)
const RunCombo = "ctrl+'"

// ReservedCombo always quits and is handled before any binding
const ReservedCombo = "ctrl+c"

// defaultCombos holds the built-in combos per action.
// Most terminals cannot report ctrl+apostrophe, so run also gets ctrl+r.
var defaultCombos = map[Action][]string{
	ActionRun:          {RunCombo, "ctrl+r"},
	ActionCopyOutput:   {"ctrl+y"},
	ActionPickLanguage: {"ctrl+l"},
	ActionFocusNext:    {"tab"},
	ActionClearOutput:  {"ctrl+o"},
	ActionHelp:         {"f1"},
	ActionQuit:         {"ctrl+q"},
}

// NewDefaultRegistry creates a registry with the built-in combos
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	LoadDefaults(r)
	return r
}

// LoadDefaults registers the built-in combos on r
func LoadDefaults(r *Registry) {
	for _, action := range allActions {
		r.Set(action, defaultCombos[action]...)
	}
}
