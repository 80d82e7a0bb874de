package key

import "strings"

// keyAliases maps common spellings (lowercase) to browser key names.
var keyAliases = map[string]string{
	"esc":       "Escape",
	"escape":    "Escape",
	"return":    "Enter",
	"enter":     "Enter",
	"cr":        "Enter",
	"tab":       "Tab",
	"bs":        "Backspace",
	"backspace": "Backspace",
	"del":       "Delete",
	"delete":    "Delete",
	"ins":       "Insert",
	"insert":    "Insert",
	"space":     " ",
	"spacebar":  " ",
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"pgup":      "PageUp",
	"pageup":    "PageUp",
	"pgdn":      "PageDown",
	"pagedown":  "PageDown",
	"home":      "Home",
	"end":       "End",
	"plus":      "+",
}

// resolveKeyName returns the browser key name for an alias, or k unchanged.
// Single characters are never aliased.
func resolveKeyName(k string) string {
	if _, ok := singleRune(k); ok {
		return k
	}
	if name, ok := keyAliases[strings.ToLower(k)]; ok {
		return name
	}
	return k
}
