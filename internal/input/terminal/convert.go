// Package terminal hosts keyboard shortcuts in a terminal through tcell.
//
// It converts tcell key events into browser-style key events and exposes a
// tcell screen as a target.Target and focus.Source.
package terminal

import (
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/keychord/internal/input/key"
)

// specialNames maps tcell keys to browser key names.
var specialNames = map[tcell.Key]string{
	tcell.KeyEnter:      "Enter",
	tcell.KeyTab:        "Tab",
	tcell.KeyBacktab:    "Tab",
	tcell.KeyBackspace:  "Backspace",
	tcell.KeyBackspace2: "Backspace",
	tcell.KeyEscape:     "Escape",
	tcell.KeyDelete:     "Delete",
	tcell.KeyInsert:     "Insert",
	tcell.KeyHome:       "Home",
	tcell.KeyEnd:        "End",
	tcell.KeyPgUp:       "PageUp",
	tcell.KeyPgDn:       "PageDown",
	tcell.KeyUp:         "ArrowUp",
	tcell.KeyDown:       "ArrowDown",
	tcell.KeyLeft:       "ArrowLeft",
	tcell.KeyRight:      "ArrowRight",
	tcell.KeyF1:         "F1",
	tcell.KeyF2:         "F2",
	tcell.KeyF3:         "F3",
	tcell.KeyF4:         "F4",
	tcell.KeyF5:         "F5",
	tcell.KeyF6:         "F6",
	tcell.KeyF7:         "F7",
	tcell.KeyF8:         "F8",
	tcell.KeyF9:         "F9",
	tcell.KeyF10:        "F10",
	tcell.KeyF11:        "F11",
	tcell.KeyF12:        "F12",
	tcell.KeyPause:      "Pause",
	tcell.KeyPrint:      "PrintScreen",
}

// ConvertEvent converts a tcell key event.
//
// Control letters (tcell.KeyCtrlK) become the letter with Control held.
// Upper-case runes imply Shift, since terminals do not report it for them.
// Keys with no browser equivalent are reported as "Unidentified".
func ConvertEvent(ev *tcell.EventKey) *key.Event {
	mods := convertMod(ev.Modifiers())
	e := &key.Event{Timestamp: ev.When()}

	k := ev.Key()
	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		if unicode.IsUpper(r) {
			mods = mods.With(key.ModShift)
		}
		e.Key = string(r)
		e.Code = codeForRune(r)
	case k == tcell.KeyBacktab:
		e.Key = "Tab"
		mods = mods.With(key.ModShift)
	case k == tcell.KeyCtrlSpace:
		e.Key = " "
		e.Code = "Space"
		mods = mods.With(key.ModCtrl)
	default:
		if name, ok := specialNames[k]; ok {
			e.Key = name
			e.Code = name
			break
		}
		if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			r := 'a' + rune(k-tcell.KeyCtrlA)
			e.Key = string(r)
			e.Code = codeForRune(r)
			mods = mods.With(key.ModCtrl)
			break
		}
		e.Key = "Unidentified"
	}

	e.Modifiers = mods
	return e
}

// codeForRune returns the physical code of letters and digits on a US layout.
func codeForRune(r rune) string {
	switch {
	case r >= 'a' && r <= 'z':
		return "Key" + string(unicode.ToUpper(r))
	case r >= 'A' && r <= 'Z':
		return "Key" + string(r)
	case r >= '0' && r <= '9':
		return "Digit" + string(r)
	case r == ' ':
		return "Space"
	default:
		return ""
	}
}

// convertMod converts tcell modifiers.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	return result
}
