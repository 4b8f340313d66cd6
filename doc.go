/*
Package tifinagh transliterates text between Latin, Arabic and Tifinagh script.

Tifinagh is the script used for the Berber (Amazigh) languages. The package
provides the glyph mapping tables of a Tifinagh input method and two batch
converters built on them:

  - LatinToTifinagh maps Latin text to Tifinagh, preferring digraphs
    ("sh", "kh", ...) over their single-letter parts.
  - TifinaghToLatin maps Tifinagh to "Talatint", a romanized historical
    variant. This direction is lossy: diacritics are stripped, so
    Tifinagh → Latin → Tifinagh does not round-trip in general.

Every table is compiled once into a frozen double-array trie (package dat)
and is read-only afterwards. Lookup is longest-match: at a given offset the
longest key that is a prefix of the remaining text wins. Characters without a
mapping (digits, punctuation, whitespace) pass through unchanged; no
conversion function in this package fails.

The incremental, keystroke-driven converter lives in package ime, custom
table files are read by package layout.

Further Reading

	https://www.unicode.org/charts/PDF/U2D30.pdf    (Tifinagh code chart)
	https://www.ircam.ma                             (IRCAM Tifinagh standard)

----------------------------------------------------------------------

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer@com>

All rights reserved.

License information is available in the LICENSE file.
*/
package tifinagh

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tifinagh'
func tracer() tracing.Trace {
	return tracing.Select("tifinagh")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
