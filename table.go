package tifinagh

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"unicode/utf8"
)

// Errors reported while loading a table.
var (
	ErrEmptyKey     = errors.New("empty or unencodable table key")
	ErrDuplicateKey = errors.New("duplicate table key")
)

// Mapping is one table entry: a source token and the glyph it maps to.
// Both may consist of more than one character, e.g. "sh" → "ⵛ" or "gʷ" → "ⴳⵯ".
type Mapping struct {
	Key   string
	Glyph string
}

// MappingReader yields table entries one-by-one.
// It should return io.EOF when the stream is exhausted.
type MappingReader interface {
	Next() (key, glyph string, err error)
}

// Match is the result of a longest-match lookup.
type Match struct {
	Key      string // matched source token
	Glyph    string // its target glyph
	Consumed int    // length of Key in runes
}

// Table is a frozen glyph mapping table.
//
// Tables are built once by LoadTable or NewTable and are read-only
// afterwards; they are safe for concurrent use by multiple goroutines.
type Table struct {
	keys       keyIndex
	glyphs     *glyphStore
	entries    []Mapping // sorted by key, for inspection
	maxKeyLen  int       // longest key in runes
	Identifier string    // Identifies the table
}

// TableStats reports size and density metrics of a table.
type TableStats struct {
	Backend    string
	Entries    int
	MaxKeyLen  int
	UsedSlots  int
	TotalSlots int
	MaxStateID int
	FillRatio  float64
}

// LoadTable compiles a table from a streaming, format-agnostic source.
//
// File format parsing is intentionally outside the base package. Use adapters
// like package layout to parse concrete formats and feed this API.
//
// Every key must be non-empty and may occur only once; a repeated key is
// reported as ErrDuplicateKey instead of silently replacing the first entry.
func LoadTable(name string, reader MappingReader) (table *Table, err error) {
	index := newDATBackend()
	pending := make(map[int]string, 64)
	table = &Table{
		keys:       index,
		Identifier: fmt.Sprintf("table: %s", name),
	}
	var key, glyph string
	for {
		key, glyph, err = reader.Next()
		if err == io.EOF {
			err = nil
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", table.Identifier, err)
		}
		id, fresh := index.Insert(key)
		if id == 0 {
			return nil, fmt.Errorf("%s: key %q: %w", table.Identifier, key, ErrEmptyKey)
		}
		if !fresh {
			return nil, fmt.Errorf("%s: key %q: %w", table.Identifier, key, ErrDuplicateKey)
		}
		if len(glyph) > maxGlyphBytes {
			return nil, fmt.Errorf("%s: glyph for key %q too large", table.Identifier, key)
		}
		pending[id] = glyph
		table.entries = append(table.entries, Mapping{Key: key, Glyph: glyph})
		table.maxKeyLen = max(table.maxKeyLen, utf8.RuneCountInString(key))
	}
	table.glyphs = newGlyphStore()
	index.Freeze(func(id, state int) {
		if err == nil {
			err = table.glyphs.Put(state, pending[id])
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", table.Identifier, err)
	}
	sort.Slice(table.entries, func(i, j int) bool {
		return table.entries[i].Key < table.entries[j].Key
	})
	stats := table.Stats()
	tracer().Infof("%s: %d entries, trie backend=%s used=%d total=%d fill=%.2f maxStateID=%d",
		table.Identifier, stats.Entries, stats.Backend, stats.UsedSlots, stats.TotalSlots,
		stats.FillRatio, stats.MaxStateID)
	return table, nil
}

// NewTable compiles a table from an in-memory list of mappings.
func NewTable(name string, mappings []Mapping) (*Table, error) {
	return LoadTable(name, &sliceReader{entries: mappings})
}

// mustTable compiles one of the built-in tables. Built-in data is static,
// so a failure is a programming error.
func mustTable(name string, mappings []Mapping) *Table {
	table, err := NewTable(name, mappings)
	if err != nil {
		tracer().Errorf("cannot compile built-in table: %v", err)
	}
	assert(err == nil, "built-in table "+name+" does not compile")
	return table
}

type sliceReader struct {
	entries []Mapping
	index   int
}

func (r *sliceReader) Next() (string, string, error) {
	if r.index >= len(r.entries) {
		return "", "", io.EOF
	}
	entry := r.entries[r.index]
	r.index++
	return entry.Key, entry.Glyph, nil
}

// Lookup returns the glyph for an exact key.
func (t *Table) Lookup(key string) (string, bool) {
	if t == nil || t.keys == nil {
		return "", false
	}
	state, ok := t.keys.Walk(key)
	if !ok {
		return "", false
	}
	return t.glyphs.Get(state)
}

// HasPrefix reports whether prefix is a proper prefix of at least one key,
// i.e. whether a longer key could still match after prefix.
func (t *Table) HasPrefix(prefix string) bool {
	if t == nil || t.keys == nil {
		return false
	}
	state, ok := t.keys.Walk(prefix)
	return ok && t.keys.HasChildren(state)
}

// LookupLongestMatch returns the longest key starting at text[offset] and
// its glyph. It returns false if no key matches at offset, in which case the
// caller should pass the single rune at offset through unchanged.
//
// The index is walked once; no sorting of candidate keys takes place.
func (t *Table) LookupLongestMatch(text []rune, offset int) (Match, bool) {
	if t == nil || t.keys == nil || offset < 0 || offset >= len(text) {
		return Match{}, false
	}
	it := t.keys.Iterator()
	var best Match
	found := false
	for i := offset; i < len(text) && i-offset < t.maxKeyLen; i++ {
		state := it.Next(text[i])
		if state == 0 {
			break
		}
		if glyph, ok := t.glyphs.Get(state); ok {
			best.Glyph = glyph
			best.Consumed = i - offset + 1
			found = true
		}
	}
	if found {
		best.Key = string(text[offset : offset+best.Consumed])
	}
	return best, found
}

// LookupLongestMatch is the string form of (*Table).LookupLongestMatch,
// taking a byte offset into text; Match.Consumed is reported in runes.
func LookupLongestMatch(t *Table, text string, offset int) (Match, bool) {
	if offset < 0 || offset >= len(text) {
		return Match{}, false
	}
	return t.LookupLongestMatch([]rune(text[offset:]), 0)
}

// Len returns the number of entries.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// MaxKeyLen returns the length of the longest key in runes.
func (t *Table) MaxKeyLen() int {
	if t == nil {
		return 0
	}
	return t.maxKeyLen
}

// Entries returns a copy of all mappings, sorted by key.
func (t *Table) Entries() []Mapping {
	if t == nil {
		return nil
	}
	entries := make([]Mapping, len(t.entries))
	copy(entries, t.entries)
	return entries
}

// Stats reports density metrics for the underlying key index.
func (t *Table) Stats() TableStats {
	if t == nil || t.keys == nil {
		return TableStats{}
	}
	s := t.keys.Stats()
	return TableStats{
		Backend:    s.Backend,
		Entries:    len(t.entries),
		MaxKeyLen:  t.maxKeyLen,
		UsedSlots:  s.UsedSlots,
		TotalSlots: s.TotalSlots,
		MaxStateID: s.MaxStateID,
		FillRatio:  s.FillRatio(),
	}
}

func (t *Table) String() string {
	if t == nil {
		return "<nil table>"
	}
	return fmt.Sprintf("%s (%d entries)", t.Identifier, len(t.entries))
}
