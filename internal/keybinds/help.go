package keybinds

import (
	"fmt"
	"strings"
)

// HelpMarkdown renders the registry as a markdown key reference
func HelpMarkdown(r *Registry) string {
	var sb strings.Builder
	sb.WriteString("# Keys\n\n")
	sb.WriteString("| Action | Keys | Description |\n")
	sb.WriteString("|---|---|---|\n")
	for _, action := range r.Actions() {
		if !action.IsKnown() {
			continue
		}
		keys := make([]string, 0, len(r.Combos(action)))
		for _, c := range r.Combos(action) {
			keys = append(keys, "`"+strings.ReplaceAll(c, "|", `\|`)+"`")
		}
		if len(keys) == 0 {
			keys = append(keys, "unbound")
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s |\n", action, strings.Join(keys, ", "), action.Description()))
	}
	sb.WriteString(fmt.Sprintf("\n`%s` always quits. Keys not bound above go to the focused pane.\n", ReservedCombo))
	return sb.String()
}
