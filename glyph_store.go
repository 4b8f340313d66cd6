package tifinagh

import "fmt"

const absentGlyph = 0xFF
const maxGlyphBytes = absentGlyph - 1
const initialGlyphStoreSlots = 2 // include slot 0 + root slot

// glyphStore keeps target glyphs directly indexed by trie state.
// All glyphs share one byte blob; a slot records offset and length into it.
type glyphStore struct {
	offset []uint32 // will grow with demand
	length []uint8  // will grow with demand
	blob   []byte
}

func newGlyphStore() *glyphStore {
	s := &glyphStore{
		offset: make([]uint32, initialGlyphStoreSlots),
		length: make([]uint8, initialGlyphStoreSlots),
		blob:   make([]byte, 0, 256),
	}
	for i := range s.length {
		s.length[i] = absentGlyph
	}
	return s
}

func (s *glyphStore) ensure(pos int) {
	if pos < len(s.length) {
		return
	}
	grow := pos + 1 - len(s.length)
	old := len(s.length)
	s.offset = append(s.offset, make([]uint32, grow)...)
	s.length = append(s.length, make([]uint8, grow)...)
	for i := old; i < len(s.length); i++ {
		s.length[i] = absentGlyph
	}
}

// Put stores glyph at trie state pos. Storing twice at the same position
// overwrites the slot; the old bytes stay in the blob.
func (s *glyphStore) Put(pos int, glyph string) error {
	if pos < 0 {
		return fmt.Errorf("negative trie position: %d", pos)
	}
	if len(glyph) > maxGlyphBytes {
		return fmt.Errorf("glyph too large: %d bytes", len(glyph))
	}
	s.ensure(pos)
	s.offset[pos] = uint32(len(s.blob))
	s.length[pos] = uint8(len(glyph))
	s.blob = append(s.blob, glyph...)
	return nil
}

// Get returns the glyph stored at trie state pos.
func (s *glyphStore) Get(pos int) (string, bool) {
	if pos < 0 || pos >= len(s.length) {
		return "", false
	}
	n := s.length[pos]
	if n == absentGlyph {
		return "", false
	}
	off := int(s.offset[pos])
	return string(s.blob[off : off+int(n)]), true
}

// Count returns the number of occupied slots.
func (s *glyphStore) Count() int {
	n := 0
	for _, l := range s.length {
		if l != absentGlyph {
			n++
		}
	}
	return n
}
