package tifinagh

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningMarks is the block of combining diacritical marks stripped from
// Talatint output.
var combiningMarks = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036F, Stride: 1}},
}

// talatintOrthography holds the fixed post-process substitutions of the
// historical orthography.
var talatintOrthography = strings.NewReplacer("j", "i")

// Converter performs batch conversions with a fixed set of tables.
// The zero value is not usable; create converters with NewConverter.
// A Converter is safe for concurrent use.
type Converter struct {
	latin    *Table
	tifinagh *Table
	arabic   *Table
}

// Option configures a Converter.
type Option func(*Converter)

// WithLatinTable replaces the Latin → Tifinagh table.
func WithLatinTable(t *Table) Option {
	return func(c *Converter) {
		if t != nil {
			c.latin = t
		}
	}
}

// WithTifinaghTable replaces the Tifinagh → Latin table.
func WithTifinaghTable(t *Table) Option {
	return func(c *Converter) {
		if t != nil {
			c.tifinagh = t
		}
	}
}

// WithArabicTable replaces the Arabic → Tifinagh table.
func WithArabicTable(t *Table) Option {
	return func(c *Converter) {
		if t != nil {
			c.arabic = t
		}
	}
}

// NewConverter creates a converter on the built-in tables, optionally
// replacing some of them.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		latin:    LatinTable(),
		tifinagh: TifinaghTable(),
		arabic:   ArabicTable(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var std struct {
	once sync.Once
	conv *Converter
}

// standard returns the converter on the built-in tables. Tables are compiled
// on first use, not on import.
func standard() *Converter {
	std.once.Do(func() {
		std.conv = NewConverter()
	})
	return std.conv
}

// LatinToTifinagh converts Latin text to Tifinagh with the built-in tables.
func LatinToTifinagh(s string) string {
	return standard().LatinToTifinagh(s)
}

// TifinaghToLatin converts Tifinagh text to Talatint with the built-in tables.
func TifinaghToLatin(s string) string {
	return standard().TifinaghToLatin(s)
}

// ArabicToTifinagh converts Arabic-script text to Tifinagh with the built-in tables.
func ArabicToTifinagh(s string) string {
	return standard().ArabicToTifinagh(s)
}

// ToTifinagh converts mixed Latin/Arabic text to Tifinagh with the built-in tables.
func ToTifinagh(s string) string {
	return standard().ToTifinagh(s)
}

// LatinToTifinagh lower-cases s and converts it left to right. At every
// position the longest matching key of the Latin table is consumed and its
// glyph emitted, so digraphs win over their single letters ("sh" → ⵛ, not ⵙⵀ).
// A character without a match is copied unchanged.
func (c *Converter) LatinToTifinagh(s string) string {
	if s == "" {
		return ""
	}
	return scan(c.latin, []rune(strings.ToLower(s)))
}

// ArabicToTifinagh converts Arabic-script text with longest-match scanning.
// Arabic has no letter case, so no lower-casing takes place.
func (c *Converter) ArabicToTifinagh(s string) string {
	if s == "" {
		return ""
	}
	return scan(c.arabic, []rune(s))
}

// ToTifinagh converts text that mixes Latin and Arabic script. Every maximal
// run of Arabic characters goes through the Arabic table, everything else
// through the Latin table.
func (c *Converter) ToTifinagh(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s) * 2)
	text := []rune(s)
	start := 0
	for start < len(text) {
		arabic := IsArabicChar(text[start])
		end := start + 1
		for end < len(text) && IsArabicChar(text[end]) == arabic {
			end++
		}
		if arabic {
			b.WriteString(scan(c.arabic, text[start:end]))
		} else {
			b.WriteString(scan(c.latin, []rune(strings.ToLower(string(text[start:end])))))
		}
		start = end
	}
	return b.String()
}

// TifinaghToLatin converts Tifinagh to Talatint: every Tifinagh character is
// mapped through the Tifinagh table, the result is lower-cased, "j" is
// written "i", and combining diacritics (U+0300..U+036F) are removed after
// canonical decomposition.
//
// The conversion is lossy: ⴹ, ⵃ, ⵕ, ⵚ, ⵟ, ⵥ come out as their plain base
// letters, and ⵛ, ⵝ, ⵞ as the digraphs sh, th, ch.
func (c *Converter) TifinaghToLatin(s string) string {
	if s == "" {
		return ""
	}
	latin := strings.ToLower(scan(c.tifinagh, []rune(s)))
	latin = talatintOrthography.Replace(latin)
	stripped, _, err := transform.String(stripDiacritics(), latin)
	if err != nil {
		tracer().Errorf("cannot strip diacritics from %q: %v", latin, err)
		return latin
	}
	return stripped
}

// stripDiacritics decomposes, drops combining marks and recomposes.
// Transformers carry state, so every call gets a fresh chain.
func stripDiacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(combiningMarks)), norm.NFC)
}

// scan is the longest-match conversion loop shared by all directions.
func scan(t *Table, text []rune) string {
	var b strings.Builder
	b.Grow(len(text) * 3)
	for i := 0; i < len(text); {
		if m, ok := t.LookupLongestMatch(text, i); ok {
			b.WriteString(m.Glyph)
			i += m.Consumed
			continue
		}
		b.WriteRune(text[i])
		i++
	}
	return b.String()
}
