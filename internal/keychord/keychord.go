// Package keychord turns key presses into the canonical chord strings stored with shortcuts,
// e.g. "Ctrl + Shift + A".
package keychord

import (
	"strings"
	"unicode"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
)

const separator = " + "

// Event is a single key press. Key uses the DOM key names ("Enter", "ArrowLeft", "a").
type Event struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

var modifierKeys = map[string]bool{
	"Control": true,
	"Alt":     true,
	"Shift":   true,
	"Meta":    true,
}

// IsModifier reports whether key is a bare modifier key.
func IsModifier(key string) bool {
	return modifierKeys[key]
}

// Format renders the event as "Ctrl + Alt + Shift + Key", listing only held modifiers.
// A bare modifier press yields the modifier list alone so callers can show a chord
// that is still being built.
func Format(e Event) string {
	parts := make([]string, 0, 4)
	if e.Ctrl {
		parts = append(parts, "Ctrl")
	}
	if e.Alt {
		parts = append(parts, "Alt")
	}
	if e.Shift {
		parts = append(parts, "Shift")
	}

	if e.Key != "" && !IsModifier(e.Key) {
		key := e.Key
		if utf8.RuneCountInString(key) == 1 {
			key = strings.ToUpper(key)
		}
		parts = append(parts, key)
	}

	return strings.Join(parts, separator)
}

var terminalKeyNames = map[string]string{
	"enter":     "Enter",
	"tab":       "Tab",
	"esc":       "Escape",
	"backspace": "Backspace",
	"delete":    "Delete",
	"insert":    "Insert",
	"up":        "ArrowUp",
	"down":      "ArrowDown",
	"left":      "ArrowLeft",
	"right":     "ArrowRight",
	"home":      "Home",
	"end":       "End",
	"pgup":      "PageUp",
	"pgdown":    "PageDown",
	"space":     " ",
	" ":         " ",
}

// FromKeyMsg converts a bubbletea key message into an Event. Terminals report shifted
// letters as upper-case runes, those are treated as Shift being held.
func FromKeyMsg(msg tea.KeyMsg) Event {
	if msg.Paste {
		return Event{}
	}

	var e Event
	name := msg.String()
	for {
		switch {
		case len(name) > len("alt+") && strings.HasPrefix(name, "alt+"):
			e.Alt = true
			name = name[len("alt+"):]
			continue
		case len(name) > len("ctrl+") && strings.HasPrefix(name, "ctrl+"):
			e.Ctrl = true
			name = name[len("ctrl+"):]
			continue
		case len(name) > len("shift+") && strings.HasPrefix(name, "shift+"):
			e.Shift = true
			name = name[len("shift+"):]
			continue
		}
		break
	}

	if mapped, ok := terminalKeyNames[name]; ok {
		e.Key = mapped
		return e
	}

	if isFunctionKey(name) {
		e.Key = strings.ToUpper(name)
		return e
	}

	if r, size := utf8.DecodeRuneInString(name); size == len(name) && unicode.IsUpper(r) {
		e.Shift = true
	}
	e.Key = name
	return e
}

func isFunctionKey(name string) bool {
	if len(name) < 2 || len(name) > 3 || name[0] != 'f' {
		return false
	}
	for _, c := range name[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// FromKeyMsgString is a shorthand for Format(FromKeyMsg(msg)).
func FromKeyMsgString(msg tea.KeyMsg) string {
	return Format(FromKeyMsg(msg))
}
