package ime

import (
	"fmt"
	"unicode"
)

// KeyKind distinguishes printable characters from editing and navigation keys.
type KeyKind int

const (
	KeyChar      KeyKind = iota // a printable character in Key.Char
	KeyEnter                    // inserts a newline
	KeyBackspace                // deletes one unit before the cursor, or the selection
	KeyOther                    // arrows, function keys, bare modifiers: no buffer effect
)

// Modifiers represents modifier key state.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModControl
	ModAlt
	ModMeta // Command on macOS, Windows key on Windows
)

// Key is one keystroke event.
type Key struct {
	Kind      KeyKind
	Char      rune // for KeyChar
	Modifiers Modifiers
}

// CharKey creates the keystroke for a typed character. A newline becomes
// KeyEnter.
func CharKey(r rune) Key {
	if r == '\n' || r == '\r' {
		return Key{Kind: KeyEnter}
	}
	return Key{Kind: KeyChar, Char: r}
}

// Shortcut reports whether the key is typed together with Control, Alt or
// Meta. Such keys are commands, not text.
func (k Key) Shortcut() bool {
	return k.Modifiers&(ModControl|ModAlt|ModMeta) != 0
}

// Printable reports whether the key produces a visible or formatting
// character of its own, i.e. anything but a C0/C1 control character.
// No-break space and zero-width (non-)joiners are printable.
func (k Key) Printable() bool {
	return k.Kind == KeyChar && !k.Shortcut() && !unicode.IsControl(k.Char)
}

func (k Key) String() string {
	switch k.Kind {
	case KeyChar:
		return fmt.Sprintf("char(%q)", k.Char)
	case KeyEnter:
		return "enter"
	case KeyBackspace:
		return "backspace"
	}
	return "other"
}
