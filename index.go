package tifinagh

// keyIterator advances through successive prefix states for one key.
type keyIterator interface {
	Next(r rune) int
}

type keyIndexStats struct {
	Backend    string
	UsedSlots  int
	TotalSlots int
	MaxStateID int
}

func (s keyIndexStats) FillRatio() float64 {
	if s.TotalSlots == 0 {
		return 0
	}
	return float64(s.UsedSlots) / float64(s.TotalSlots)
}

// keyIndex is the internal backend abstraction for table-key storage.
//
// Keys are inserted while the index is mutable. Freeze compiles the index and
// hands every key's final state ID to place, which is where callers attach
// payloads. After Freeze the index is read-only.
type keyIndex interface {
	Insert(key string) (id int, fresh bool)
	Freeze(place func(id, state int))
	Iterator() keyIterator
	Walk(key string) (state int, ok bool)
	HasChildren(state int) bool
	Stats() keyIndexStats
}
