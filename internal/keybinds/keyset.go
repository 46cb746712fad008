package keybinds

import (
	"fmt"
	"sort"
	"strings"
)

// modifierKeys are key names that never count as the primary key
var modifierKeys = map[string]bool{
	"control": true,
	"meta":    true,
	"shift":   true,
	"alt":     true,
}

// tokenOrder fixes the rendering order of modifier tokens
var tokenOrder = map[string]int{"ctrl": 0, "meta": 1, "shift": 2, "alt": 3}

// KeySet is an unordered set of lower-cased key tokens
type KeySet map[string]struct{}

// NewKeySet builds a set from tokens, lower-casing each
func NewKeySet(keys ...string) KeySet {
	set := make(KeySet, len(keys))
	for _, k := range keys {
		set[strings.ToLower(k)] = struct{}{}
	}
	return set
}

// PressedKeys derives the set of tokens held for ev: one per active
// modifier plus the lower-cased primary key
func PressedKeys(ev *KeyEvent) KeySet {
	set := make(KeySet, 5)
	if ev.Ctrl {
		set["ctrl"] = struct{}{}
	}
	if ev.Meta {
		set["meta"] = struct{}{}
	}
	if ev.Shift {
		set["shift"] = struct{}{}
	}
	if ev.Alt {
		set["alt"] = struct{}{}
	}

	key := strings.ToLower(ev.Key)
	if key != "" && !modifierKeys[key] {
		set[key] = struct{}{}
	}
	return set
}

// Equal reports strict set equality. A superset does not match.
func (s KeySet) Equal(other KeySet) bool {
	if len(s) != len(other) {
		return false
	}
	for k := range s {
		if _, ok := other[k]; !ok {
			return false
		}
	}
	return true
}

// Tokens returns modifiers first (ctrl, meta, shift, alt), then the rest sorted
func (s KeySet) Tokens() []string {
	tokens := make([]string, 0, len(s))
	for k := range s {
		tokens = append(tokens, k)
	}
	sort.Slice(tokens, func(i, j int) bool {
		oi, iMod := tokenOrder[tokens[i]]
		oj, jMod := tokenOrder[tokens[j]]
		switch {
		case iMod && jMod:
			return oi < oj
		case iMod != jMod:
			return iMod
		default:
			return tokens[i] < tokens[j]
		}
	})
	return tokens
}

func (s KeySet) String() string {
	return strings.Join(s.Tokens(), "+")
}

// ComboString rebuilds the combo for ev with ctrl and meta folded into
// a single "ctrl" token: "ctrl+", "shift+", "alt+", then the key
func ComboString(ev *KeyEvent) string {
	var sb strings.Builder
	if ev.Ctrl || ev.Meta {
		sb.WriteString("ctrl+")
	}
	if ev.Shift {
		sb.WriteString("shift+")
	}
	if ev.Alt {
		sb.WriteString("alt+")
	}
	sb.WriteString(strings.ToLower(ev.Key))
	return sb.String()
}

// NormalizeCombo validates a user supplied combo and rewrites it in the
// order ComboString produces. "cmd" and "meta" map to "ctrl".
func NormalizeCombo(combo string) (string, error) {
	c := strings.ToLower(strings.TrimSpace(combo))
	if c == "" {
		return "", fmt.Errorf("combo cannot be empty")
	}

	var ctrl, shift, alt bool
	rest := c
	for {
		i := strings.Index(rest, "+")
		if i <= 0 || i == len(rest)-1 {
			break
		}
		switch rest[:i] {
		case "ctrl", "control", "cmd", "meta":
			ctrl = true
		case "shift":
			shift = true
		case "alt", "option":
			alt = true
		default:
			return "", fmt.Errorf("unknown modifier %q in %q", rest[:i], combo)
		}
		rest = rest[i+1:]
	}

	if modifierKeys[rest] || rest == "ctrl" || rest == "cmd" {
		return "", fmt.Errorf("modifier without key: %s", combo)
	}
	if strings.HasSuffix(rest, "+") && len(rest) > 1 {
		return "", fmt.Errorf("modifier without key: %s", combo)
	}

	ev := KeyEvent{Key: rest, Ctrl: ctrl, Shift: shift, Alt: alt}
	return ComboString(&ev), nil
}
