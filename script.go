package tifinagh

import (
	"fmt"
	"unicode"
)

// Script classifies a single character for table selection.
type Script int

const (
	ScriptOther    Script = iota // space, newline, digits, punctuation: identity mapped
	ScriptLatin                  // Latin letters, including IPA and modifier letters
	ScriptArabic                 // Arabic letters and presentation forms
	ScriptTifinagh               // native Tifinagh
)

var scriptNames = [...]string{
	ScriptOther:    "Other",
	ScriptLatin:    "Latin",
	ScriptArabic:   "Arabic",
	ScriptTifinagh: "Tifinagh",
}

func (s Script) String() string {
	if int(s) >= 0 && int(s) < len(scriptNames) {
		return scriptNames[s]
	}
	return fmt.Sprintf("Script(%d)", int(s))
}

// IsArabicChar reports whether r belongs to the Arabic script
// (U+0600..U+06FF and the supplement, extended and presentation-form blocks).
func IsArabicChar(r rune) bool {
	return unicode.Is(unicode.Arabic, r)
}

// IsLatinChar reports whether r belongs to the Latin script.
func IsLatinChar(r rune) bool {
	return unicode.Is(unicode.Latin, r)
}

// IsTifinaghChar reports whether r is a Tifinagh character (U+2D30..U+2D7F).
func IsTifinaghChar(r rune) bool {
	return unicode.Is(unicode.Tifinagh, r)
}

// ScriptOf classifies r. Characters outside Latin, Arabic and Tifinagh are
// ScriptOther.
func ScriptOf(r rune) Script {
	switch {
	case r < 0x80:
		if r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' {
			return ScriptLatin
		}
		return ScriptOther
	case IsLatinChar(r):
		return ScriptLatin
	case IsArabicChar(r):
		return ScriptArabic
	case IsTifinaghChar(r):
		return ScriptTifinagh
	}
	return ScriptOther
}
