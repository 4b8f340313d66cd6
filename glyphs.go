package tifinagh

import "sync"

// Built-in tables follow the IRCAM Neo-Tifinagh repertoire (U+2D30..U+2D7F).

// latinSingles maps single Latin letters, including the diacritic letters of
// the Berber Latin orthography, to Tifinagh.
var latinSingles = []Mapping{
	{"a", "ⴰ"}, {"b", "ⴱ"}, {"c", "ⵛ"}, {"d", "ⴷ"}, {"e", "ⴻ"},
	{"f", "ⴼ"}, {"g", "ⴳ"}, {"h", "ⵀ"}, {"i", "ⵉ"}, {"j", "ⵊ"},
	{"k", "ⴽ"}, {"l", "ⵍ"}, {"m", "ⵎ"}, {"n", "ⵏ"}, {"o", "ⵧ"},
	{"p", "ⵒ"}, {"q", "ⵇ"}, {"r", "ⵔ"}, {"s", "ⵙ"}, {"t", "ⵜ"},
	{"u", "ⵓ"}, {"v", "ⵠ"}, {"w", "ⵡ"}, {"x", "ⵅ"}, {"y", "ⵢ"},
	{"z", "ⵣ"},
	{"ḍ", "ⴹ"}, {"ḥ", "ⵃ"}, {"ɛ", "ⵄ"}, {"ṛ", "ⵕ"}, {"ɣ", "ⵖ"},
	{"ṣ", "ⵚ"}, {"ṭ", "ⵟ"}, {"ẓ", "ⵥ"}, {"č", "ⵞ"}, {"ǧ", "ⴵ"},
	{"ʷ", "ⵯ"}, {"gʷ", "ⴳⵯ"}, {"kʷ", "ⴽⵯ"},
}

// latinDigraphs maps two-letter Latin sequences to a single Tifinagh glyph.
// They are part of the Latin table and, on their own, form the digraph table
// consulted by the incremental converter.
var latinDigraphs = []Mapping{
	{"sh", "ⵛ"}, {"ch", "ⵞ"}, {"th", "ⵝ"}, {"dh", "ⴸ"},
	{"kh", "ⵅ"}, {"gh", "ⵖ"},
}

// tifinaghToLatin maps each Tifinagh letter to its Talatint spelling.
// Several letters map to digraphs; ⵊ maps to "j", which the Talatint
// post-process turns into "i".
var tifinaghToLatin = []Mapping{
	{"ⴰ", "a"}, {"ⴱ", "b"}, {"ⵛ", "sh"}, {"ⵞ", "ch"}, {"ⴷ", "d"},
	{"ⴸ", "dh"}, {"ⴹ", "ḍ"}, {"ⴻ", "e"}, {"ⴼ", "f"}, {"ⴳ", "g"},
	{"ⴵ", "ǧ"}, {"ⵖ", "gh"}, {"ⵀ", "h"}, {"ⵃ", "ḥ"}, {"ⵄ", "ɛ"},
	{"ⵉ", "i"}, {"ⵊ", "j"}, {"ⴽ", "k"}, {"ⵅ", "kh"}, {"ⵍ", "l"},
	{"ⵎ", "m"}, {"ⵏ", "n"}, {"ⵧ", "o"}, {"ⵒ", "p"}, {"ⵇ", "q"},
	{"ⵔ", "r"}, {"ⵕ", "ṛ"}, {"ⵙ", "s"}, {"ⵚ", "ṣ"}, {"ⵜ", "t"},
	{"ⵝ", "th"}, {"ⵟ", "ṭ"}, {"ⵓ", "u"}, {"ⵠ", "v"}, {"ⵡ", "w"},
	{"ⵢ", "y"}, {"ⵣ", "z"}, {"ⵥ", "ẓ"}, {"ⵯ", "ʷ"},
}

// arabicToTifinagh maps Arabic letters, including the Maghrebi letters for
// g, v and p, to Tifinagh.
var arabicToTifinagh = []Mapping{
	{"ا", "ⴰ"}, {"أ", "ⴰ"}, {"إ", "ⵉ"}, {"آ", "ⴰ"}, {"ب", "ⴱ"},
	{"ت", "ⵜ"}, {"ة", "ⵜ"}, {"ث", "ⵝ"}, {"ج", "ⵊ"}, {"ح", "ⵃ"},
	{"خ", "ⵅ"}, {"د", "ⴷ"}, {"ذ", "ⴸ"}, {"ر", "ⵔ"}, {"ز", "ⵣ"},
	{"س", "ⵙ"}, {"ش", "ⵛ"}, {"ص", "ⵚ"}, {"ض", "ⴹ"}, {"ط", "ⵟ"},
	{"ظ", "ⵥ"}, {"ع", "ⵄ"}, {"غ", "ⵖ"}, {"ف", "ⴼ"}, {"ق", "ⵇ"},
	{"ك", "ⴽ"}, {"گ", "ⴳ"}, {"ڭ", "ⴳ"}, {"ل", "ⵍ"}, {"م", "ⵎ"},
	{"ن", "ⵏ"}, {"ه", "ⵀ"}, {"و", "ⵓ"}, {"ؤ", "ⵓ"}, {"ي", "ⵉ"},
	{"ى", "ⵉ"}, {"ئ", "ⵉ"}, {"ڤ", "ⵠ"}, {"پ", "ⵒ"}, {"چ", "ⵞ"},
}

// keyOverrides is consulted first by the incremental converter, with exact,
// case-sensitive matching. Shifted Latin letters select the emphatic
// consonants. Arabic ك is pinned to ⴽ here: in Maghrebi usage it may also
// stand for g, which the context-free converter cannot tell apart.
var keyOverrides = []Mapping{
	{"D", "ⴹ"}, {"H", "ⵃ"}, {"R", "ⵕ"}, {"S", "ⵚ"}, {"T", "ⵟ"},
	{"Z", "ⵥ"}, {"E", "ⵄ"}, {"G", "ⵖ"}, {"C", "ⵞ"}, {"J", "ⴵ"},
	{"ك", "ⴽ"},
}

var builtin struct {
	once      sync.Once
	latin     *Table
	tifinagh  *Table
	arabic    *Table
	digraphs  *Table
	overrides *Table
}

func loadBuiltin() {
	builtin.once.Do(func() {
		latin := make([]Mapping, 0, len(latinSingles)+len(latinDigraphs))
		latin = append(latin, latinSingles...)
		latin = append(latin, latinDigraphs...)
		builtin.latin = mustTable("latin→tifinagh", latin)
		builtin.tifinagh = mustTable("tifinagh→latin", tifinaghToLatin)
		builtin.arabic = mustTable("arabic→tifinagh", arabicToTifinagh)
		builtin.digraphs = mustTable("digraphs", latinDigraphs)
		builtin.overrides = mustTable("overrides", keyOverrides)
	})
}

// LatinTable returns the built-in Latin → Tifinagh table (singles and digraphs).
func LatinTable() *Table {
	loadBuiltin()
	return builtin.latin
}

// TifinaghTable returns the built-in Tifinagh → Latin (Talatint) table.
func TifinaghTable() *Table {
	loadBuiltin()
	return builtin.tifinagh
}

// ArabicTable returns the built-in Arabic → Tifinagh table.
func ArabicTable() *Table {
	loadBuiltin()
	return builtin.arabic
}

// DigraphTable returns the built-in table of Latin digraphs.
func DigraphTable() *Table {
	loadBuiltin()
	return builtin.digraphs
}

// OverrideTable returns the built-in, case-sensitive key override table.
func OverrideTable() *Table {
	loadBuiltin()
	return builtin.overrides
}
