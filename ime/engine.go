package ime

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/derekparker/trie"
	"github.com/npillmayer/tifinagh"
	"github.com/npillmayer/tifinagh/buffer"
)

// Action tells the UI layer what happens to the default insertion of a key.
type Action int

const (
	InsertLiteral  Action = iota // the typed character goes in unmodified
	InsertGlyph                  // the typed character is replaced by a glyph
	Suppress                     // nothing is inserted
	DeleteBackward               // the key deletes text
)

var actionNames = [...]string{
	InsertLiteral:  "InsertLiteral",
	InsertGlyph:    "InsertGlyph",
	Suppress:       "Suppress",
	DeleteBackward: "DeleteBackward",
}

func (a Action) String() string {
	if int(a) >= 0 && int(a) < len(actionNames) {
		return actionNames[a]
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Pending is a held first half of a possible digraph.
type Pending struct {
	Char   rune   // the character as typed, present in the buffer as placeholder
	Offset int    // rune position of the placeholder
	Glyph  string // the character's own glyph, used if no digraph forms
}

// State is the complete engine state: the text field and at most one
// pending character. A nil Pending is the Idle state.
type State struct {
	Buffer  buffer.Buffer
	Pending *Pending
}

// Idle reports whether no character is pending.
func (st State) Idle() bool {
	return st.Pending == nil
}

// Decision is the outcome of resolving one keystroke. The buffer edit is:
// delete Delete units before the cursor (or the selection), then insert
// Insert at the cursor.
type Decision struct {
	Action  Action
	Delete  int
	Insert  string
	Pending *Pending // state after the edit; nil means Idle
	Animate string   // glyph or source character to highlight on a virtual keyboard
}

// Engine resolves keystrokes against a fixed set of glyph tables.
// An Engine is read-only after NewEngine and safe for concurrent use.
type Engine struct {
	overrides *tifinagh.Table
	latin     *tifinagh.Table
	arabic    *tifinagh.Table
	digraphs  *trie.Trie
}

// Option configures an Engine.
type Option func(*Engine)

// WithLatinTable replaces the Latin → Tifinagh table.
func WithLatinTable(t *tifinagh.Table) Option {
	return func(e *Engine) {
		if t != nil {
			e.latin = t
		}
	}
}

// WithArabicTable replaces the Arabic → Tifinagh table.
func WithArabicTable(t *tifinagh.Table) Option {
	return func(e *Engine) {
		if t != nil {
			e.arabic = t
		}
	}
}

// WithOverrideTable replaces the case-sensitive override table.
func WithOverrideTable(t *tifinagh.Table) Option {
	return func(e *Engine) {
		if t != nil {
			e.overrides = t
		}
	}
}

// WithDigraphTable replaces the digraph table. Keys are lower-cased.
func WithDigraphTable(t *tifinagh.Table) Option {
	return func(e *Engine) {
		if t != nil {
			e.digraphs = digraphIndex(t)
		}
	}
}

// NewEngine creates an engine on the built-in tables, optionally replacing
// some of them.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		overrides: tifinagh.OverrideTable(),
		latin:     tifinagh.LatinTable(),
		arabic:    tifinagh.ArabicTable(),
		digraphs:  digraphIndex(tifinagh.DigraphTable()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// digraphIndex loads the digraph table into a prefix trie. Node metadata
// carries the target glyph.
func digraphIndex(t *tifinagh.Table) *trie.Trie {
	index := trie.New()
	for _, m := range t.Entries() {
		if utf8.RuneCountInString(m.Key) < 2 {
			tracer().Errorf("digraph table %s: ignoring single-character key %q", t.Identifier, m.Key)
			continue
		}
		index.Add(strings.ToLower(m.Key), m.Glyph)
	}
	return index
}

// Digraph returns the glyph for a two-character key, ignoring case.
func (e *Engine) Digraph(key string) (string, bool) {
	node, ok := e.digraphs.Find(strings.ToLower(key))
	if !ok {
		return "", false
	}
	glyph, ok := node.Meta().(string)
	return glyph, ok
}

// StartsDigraph reports whether c, ignoring case, begins at least one digraph.
func (e *Engine) StartsDigraph(c rune) bool {
	return e.digraphs.HasKeysWithPrefix(string(unicode.ToLower(c)))
}

// Glyph resolves a single character, in priority order, via
//  1. the override table (exact, case-sensitive),
//  2. the Arabic table if c is Arabic,
//  3. the Latin table, lower-cased, if c is Latin,
//  4. identity for space and newline.
//
// It returns false if none applies.
func (e *Engine) Glyph(c rune) (string, bool) {
	if g, ok := e.overrides.Lookup(string(c)); ok {
		return g, true
	}
	switch {
	case tifinagh.IsArabicChar(c):
		return e.arabic.Lookup(string(c))
	case tifinagh.IsLatinChar(c):
		return e.latin.Lookup(string(unicode.ToLower(c)))
	case c == ' ' || c == '\n':
		return string(c), true
	}
	return "", false
}

// Resolve decides what keystroke k does in state st. It does not change st.
func (e *Engine) Resolve(st State, k Key) Decision {
	switch {
	case k.Kind == KeyChar && !k.Shortcut():
		// control characters such as tab have no glyph and pass through
		return e.resolveChar(st, k.Char)
	case k.Kind == KeyEnter:
		return Decision{Action: InsertLiteral, Insert: "\n", Animate: "\n"}
	case k.Kind == KeyBackspace:
		return Decision{Action: DeleteBackward, Delete: 1}
	}
	return Decision{Action: Suppress}
}

func (e *Engine) resolveChar(st State, c rune) Decision {
	p := st.Pending
	if p == nil || !placeholderIntact(st.Buffer, p) {
		return e.resolveIdle(c, st.Buffer.Start())
	}
	key := string([]rune{p.Char, c})
	if glyph, ok := e.Digraph(key); ok {
		tracer().Debugf("digraph %q completed → %q", key, glyph)
		return Decision{Action: InsertGlyph, Delete: 1, Insert: glyph, Animate: glyph}
	}
	// no digraph: the placeholder becomes the held character's glyph and
	// c is processed from scratch
	at := p.Offset + utf8.RuneCountInString(p.Glyph)
	d := e.resolveIdle(c, at)
	d.Delete = 1
	d.Insert = p.Glyph + d.Insert
	tracer().Debugf("no digraph %q, placeholder resolves to %q", key, p.Glyph)
	return d
}

// resolveIdle handles c with no pending character; at is where c's text
// will start in the buffer.
func (e *Engine) resolveIdle(c rune, at int) Decision {
	glyph, ok := e.Glyph(c)
	if !ok {
		return Decision{Action: InsertLiteral, Insert: string(c), Animate: string(c)}
	}
	if e.StartsDigraph(c) {
		tracer().Debugf("holding %q at %d", c, at)
		return Decision{
			Action:  InsertLiteral,
			Insert:  string(c),
			Pending: &Pending{Char: c, Offset: at, Glyph: glyph},
			Animate: string(c),
		}
	}
	return Decision{Action: InsertGlyph, Insert: glyph, Animate: glyph}
}

// placeholderIntact checks that the pending character still sits directly
// before a collapsed cursor.
func placeholderIntact(b buffer.Buffer, p *Pending) bool {
	if !b.Sel.Empty() || b.Cursor() != p.Offset+1 {
		return false
	}
	runes := b.Runes()
	return p.Offset >= 0 && p.Offset < len(runes) && runes[p.Offset] == p.Char
}

// Apply executes d on st and returns the new state.
func Apply(st State, d Decision) State {
	b := st.Buffer
	if d.Delete > 0 {
		b = buffer.DeleteBackward(b, d.Delete)
	}
	if d.Insert != "" {
		b = buffer.Insert(b, d.Insert)
	}
	return State{Buffer: b, Pending: d.Pending}
}

// Handle resolves k and applies the decision.
func (e *Engine) Handle(st State, k Key) State {
	return Apply(st, e.Resolve(st, k))
}

// Flush turns a pending placeholder into its glyph and returns to Idle.
func (e *Engine) Flush(st State) State {
	p := st.Pending
	if p == nil {
		return st
	}
	if !placeholderIntact(st.Buffer, p) {
		return State{Buffer: st.Buffer}
	}
	return Apply(st, Decision{Action: InsertGlyph, Delete: 1, Insert: p.Glyph})
}

// Blur handles focus loss: the pending character is dropped and its
// placeholder stays as typed.
func (e *Engine) Blur(st State) State {
	return State{Buffer: st.Buffer}
}

// Select moves the cursor or selection, dropping any pending character.
func (e *Engine) Select(st State, start, end int) State {
	return State{Buffer: buffer.Select(st.Buffer, start, end)}
}

// Clear resets the buffer to empty and drops any pending character.
func (e *Engine) Clear(st State) State {
	return State{Buffer: buffer.Clear()}
}

// VirtualKey inserts a glyph chosen on a virtual keyboard verbatim, bypassing
// table lookup and the digraph logic. A pending character is dropped.
func (e *Engine) VirtualKey(st State, glyph string) State {
	return Apply(State{Buffer: st.Buffer}, Decision{Action: InsertGlyph, Insert: glyph})
}
