package keybinds

// Action represents a user action that can be triggered by a keybinding
type Action string

const (
	ActionRun          Action = "run"           // Submit the session for execution
	ActionCopyOutput   Action = "copy_output"   // Copy the output pane to the clipboard
	ActionPickLanguage Action = "pick_language" // Open the language picker
	ActionFocusNext    Action = "focus_next"    // Cycle focus editor -> stdin -> output
	ActionClearOutput  Action = "clear_output"  // Clear the output pane
	ActionHelp         Action = "help"          // Toggle the key help overlay
	ActionQuit         Action = "quit"          // Quit application
)

// allActions lists actions in help order
var allActions = []Action{
	ActionRun,
	ActionCopyOutput,
	ActionPickLanguage,
	ActionFocusNext,
	ActionClearOutput,
	ActionHelp,
	ActionQuit,
}

var actionDescriptions = map[Action]string{
	ActionRun:          "Run the code with the current stdin",
	ActionCopyOutput:   "Copy output to clipboard",
	ActionPickLanguage: "Choose the language",
	ActionFocusNext:    "Move focus to the next pane",
	ActionClearOutput:  "Clear the output pane",
	ActionHelp:         "Show or hide this help",
	ActionQuit:         "Quit",
}

// Actions returns every known action in help order
func Actions() []Action {
	out := make([]Action, len(allActions))
	copy(out, allActions)
	return out
}

// IsKnown reports whether a is a recognised action
func (a Action) IsKnown() bool {
	_, ok := actionDescriptions[a]
	return ok
}

// Description returns the help text for a
func (a Action) Description() string {
	return actionDescriptions[a]
}
