package dat

// Alphabet maps runes of a glyph-table key alphabet to dense symbol IDs.
//
// Keys of all built-in tables are BMP runes (Latin, Arabic, Tifinagh), so the
// mapping is a two-level page table over the low 16 bits:
//   - Top[hi] = page index (1..NumPages), or 0 meaning "page absent".
//   - Pages is a flat array of NumPages*256 entries.
//
// A Latin table touches a handful of pages (ASCII, Latin Extended, IPA,
// combining marks), an Arabic table two or three, so the whole alphabet stays
// within a few KB.
type Alphabet struct {
	Top   [256]uint16 // page index (1-based); 0 means none
	Pages []uint16    // flat: NumPages*256
	Size  uint16      // highest dense ID handed out
}

// Symbol returns the dense ID for r, or 0 if r is not part of the alphabet.
// Runes outside the BMP are never part of an alphabet.
func (a *Alphabet) Symbol(r rune) uint16 {
	if r < 0 || r > 0xFFFF {
		return 0
	}
	pi := a.Top[r>>8]
	if pi == 0 {
		return 0
	}
	return a.Pages[int(pi-1)<<8+int(r&0xFF)]
}

// Add returns the dense ID of r, assigning the next free ID if r is new.
// It returns 0 if r cannot be represented (outside BMP or alphabet full).
func (a *Alphabet) Add(r rune) uint16 {
	if r < 0 || r > 0xFFFF {
		return 0
	}
	if s := a.Symbol(r); s != 0 {
		return s
	}
	if a.Size == ^uint16(0) {
		return 0
	}
	a.Size++
	pi := a.page(uint16(r) >> 8)
	a.Pages[int(pi-1)<<8+int(r&0xFF)] = a.Size
	return a.Size
}

// NumPages returns the number of allocated pages.
func (a *Alphabet) NumPages() int { return len(a.Pages) >> 8 }

// page makes sure the page for high byte hi exists and returns its 1-based index.
func (a *Alphabet) page(hi uint16) uint16 {
	if pi := a.Top[hi]; pi != 0 {
		return pi
	}
	a.Pages = append(a.Pages, make([]uint16, 256)...)
	pi := uint16(len(a.Pages) >> 8)
	a.Top[hi] = pi
	return pi
}
