// Package tui provides the terminal front end of voidrunner.
//
// The screen is split into an editor pane on the left and a column on the
// right holding the program input and the output of the latest run. Every
// key press is first offered to the keybinds engine; keys no binding claims
// go to the focused pane. Edits are persisted through the session manager as
// they happen, and runs go through the execution dispatcher so at most one
// is in flight.
package tui
