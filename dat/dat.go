package dat

// DAT is a frozen double-array trie over the keys of one glyph table.
//   - States are indices into Base/Check (0 is unused; Root is typically 1).
//   - Transition: t := Base[s] + c; valid if Check[t] == s; next state is t.
//   - c is a dense symbol ID in [1..Alphabet.Size]. c==0 means "not in alphabet".
//   - A state with Base[s] == 0 has no outgoing transitions (a leaf).
//
// The trie itself carries no values. Callers keep payloads (target glyphs)
// in a separate store indexed by state, which keeps the arrays compact.
type DAT struct {
	// Root state index (commonly 1).
	Root uint32

	// Base and Check are the classic double-array.
	Base  []int32 // len == N
	Check []int32 // len == N

	// Alphabet maps key runes to dense symbol IDs.
	Alphabet Alphabet
}

// NStates returns number of allocated slots/states in the arrays.
func (d *DAT) NStates() int { return len(d.Base) }

// Transition returns (nextState, ok). symbol must be in [1..Alphabet.Size].
func (d *DAT) Transition(state uint32, symbol uint16) (uint32, bool) {
	if symbol == 0 || int(state) >= len(d.Base) {
		return 0, false
	}
	t := d.Base[state] + int32(symbol)
	if d.Base[state] == 0 || t <= 0 || int(t) >= len(d.Check) {
		return 0, false
	}
	if d.Check[t] != int32(state) {
		return 0, false
	}
	return uint32(t), true
}

// HasChildren reports whether state has at least one outgoing transition,
// i.e. whether the key spelled by state is a proper prefix of a longer key.
func (d *DAT) HasChildren(state uint32) bool {
	return int(state) < len(d.Base) && d.Base[state] != 0
}

// Walk follows key from the root and returns the state reached.
// It returns (0, false) as soon as a rune leaves the trie.
func (d *DAT) Walk(key []rune) (uint32, bool) {
	state := d.Root
	for _, r := range key {
		next, ok := d.Transition(state, d.Alphabet.Symbol(r))
		if !ok {
			return 0, false
		}
		state = next
	}
	return state, true
}

// Used counts the slots occupied by states (the root included).
func (d *DAT) Used() int {
	used := 0
	for i := range d.Check {
		if i == int(d.Root) || d.Check[i] != 0 {
			used++
		}
	}
	return used
}
