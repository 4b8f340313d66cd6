/*
Package ime implements the incremental, keystroke-driven Tifinagh converter.

Every physical keystroke is resolved against the glyph tables of package
tifinagh and turned into an edit of a buffer.Buffer. Latin digraphs such as
"sh" or "kh" need one keystroke of lookahead: a letter that could begin a
digraph is inserted as typed (a placeholder) and held pending; the next
keystroke either completes the digraph, replacing the placeholder with one
glyph, or turns the placeholder into the letter's own glyph.

# States

	Idle ──(letter starting a digraph)──▶ AwaitingDigraphCompletion
	 ▲                                            │
	 └──(digraph completed / no digraph / any non-printable key)

Only one character is ever pending; the engine is not an N-gram matcher.

# Two-phase contract

Resolve is a pure function from (State, Key) to a Decision describing what
to do: insert a glyph, let the typed character through, or suppress it.
Apply executes a Decision on a State. Neither touches a UI; the caller owns
the State and passes it in and out of every call, so there is no hidden
package-level state.

	st := ime.State{}
	e := ime.NewEngine()
	for _, r := range "azul" {
	    st = e.Handle(st, ime.CharKey(r))
	}
	// st.Buffer.Text == "ⴰⵣⵓⵍ"

Session bundles an Engine with its State for callers that prefer a mutable,
single-owner object. Neither Session nor State is meant for concurrent use;
an Engine is read-only after construction and may be shared.
*/
package ime

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tifinagh.ime'
func tracer() tracing.Trace {
	return tracing.Select("tifinagh.ime")
}
