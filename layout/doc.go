/*
Package layout reads keyboard layouts from files and compiles them into the
glyph tables used by package tifinagh and package ime.

A layout consists of up to five tables, each optional:

	latin      Latin → Tifinagh, singles and digraphs
	tifinagh   Tifinagh → Latin (Talatint)
	arabic     Arabic → Tifinagh
	digraphs   two-character keys for the incremental converter
	overrides  exact, case-sensitive key overrides

A table missing from the file is left nil, and the built-in table is used in
its place.

Three source formats are understood: a plain text format (see TextReader),
TOML and YAML. The plain format is scanned line by line as a stream; TOML and
YAML are decoded into a Document first. Both paths feed tifinagh.LoadTable
through the tifinagh.MappingReader interface.

	l, err := layout.LoadFile("kabyle.toml")
	...
	conv := tifinagh.NewConverter(l.ConverterOptions()...)
	engine := ime.NewEngine(l.EngineOptions()...)
*/
package layout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'tifinagh.layout'.
func tracer() tracing.Trace {
	return tracing.Select("tifinagh.layout")
}
