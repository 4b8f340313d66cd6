package tifinagh

import (
	"fmt"
	"sort"

	"github.com/npillmayer/tifinagh/dat"
)

type datBuildNode struct {
	tmpID    int
	terminal bool
	state    uint32
	children map[uint16]*datBuildNode
}

type datBackend struct {
	frozen     bool
	root       *datBuildNode
	nextNodeID int
	compiled   *dat.DAT
}

func newDATBackend() *datBackend {
	return &datBackend{
		root:       &datBuildNode{tmpID: 1, children: make(map[uint16]*datBuildNode)},
		nextNodeID: 2,
		compiled: &dat.DAT{
			Root: 1,
		},
	}
}

// Insert adds key to the build trie and returns the temporary ID of its final
// node. fresh is false if key had been inserted before. Keys containing runes
// outside the BMP are rejected with id 0.
func (db *datBackend) Insert(key string) (int, bool) {
	assert(!db.frozen, "insert into frozen key index")
	if key == "" {
		return 0, false
	}
	n := db.root
	for _, r := range key {
		c := db.compiled.Alphabet.Add(r)
		if c == 0 {
			return 0, false
		}
		child := n.children[c]
		if child == nil {
			child = &datBuildNode{
				tmpID:    db.nextNodeID,
				children: make(map[uint16]*datBuildNode),
			}
			db.nextNodeID++
			n.children[c] = child
		}
		n = child
	}
	fresh := !n.terminal
	n.terminal = true
	return n.tmpID, fresh
}

// Freeze lays out the build trie breadth-first into the double array.
// For every terminal node place is called with (temporary ID, final state).
func (db *datBackend) Freeze(place func(id, state int)) {
	if db.frozen {
		return
	}
	db.compiled.Base = make([]int32, int(db.compiled.Root)+1)
	db.compiled.Check = make([]int32, int(db.compiled.Root)+1)
	db.root.state = db.compiled.Root
	queue := []*datBuildNode{db.root}
	for q := 0; q < len(queue); q++ {
		n := queue[q]
		if n.terminal && place != nil {
			place(n.tmpID, int(n.state))
		}
		if len(n.children) == 0 {
			continue
		}
		labels := sortedLabels(n.children)
		base := findDATBase(db.compiled.Check, labels)
		ensureDATIndex(db.compiled, base+int(labels[len(labels)-1]))
		db.compiled.Base[n.state] = int32(base)
		for _, label := range labels {
			t := base + int(label)
			child := n.children[label]
			child.state = uint32(t)
			db.compiled.Check[t] = int32(n.state)
			queue = append(queue, child)
		}
	}
	db.root = nil
	db.frozen = true
}

func (db *datBackend) Iterator() keyIterator {
	assert(db.frozen, "iterating a key index before freeze")
	return &datIterator{
		d:     db.compiled,
		state: db.compiled.Root,
	}
}

func (db *datBackend) Walk(key string) (int, bool) {
	assert(db.frozen, "walking a key index before freeze")
	state, ok := db.compiled.Walk([]rune(key))
	return int(state), ok
}

func (db *datBackend) HasChildren(state int) bool {
	return state > 0 && db.compiled.HasChildren(uint32(state))
}

type datIterator struct {
	d     *dat.DAT
	state uint32
	dead  bool
}

// Next advances by one rune and returns the new state, or 0 once the
// rune sequence has left the trie.
func (it *datIterator) Next(r rune) int {
	if it.dead {
		return 0
	}
	next, ok := it.d.Transition(it.state, it.d.Alphabet.Symbol(r))
	if !ok {
		it.dead = true
		return 0
	}
	it.state = next
	return int(next)
}

func sortedLabels(children map[uint16]*datBuildNode) []uint16 {
	labels := make([]uint16, 0, len(children))
	for label := range children {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		return labels[i] < labels[j]
	})
	return labels
}

// findDATBase finds the smallest base such that every child slot is free.
func findDATBase(check []int32, labels []uint16) int {
	for base := 1; ; base++ {
		ok := true
		for _, label := range labels {
			t := base + int(label)
			if t < len(check) && check[t] != 0 {
				ok = false
				break
			}
		}
		if ok {
			return base
		}
	}
}

func ensureDATIndex(d *dat.DAT, idx int) {
	if idx < len(d.Base) {
		return
	}
	grow := idx + 1 - len(d.Base)
	d.Base = append(d.Base, make([]int32, grow)...)
	d.Check = append(d.Check, make([]int32, grow)...)
}

func (db *datBackend) String() string {
	return fmt.Sprintf("DAT(states=%d,sigma=%d,frozen=%v)", db.compiled.NStates(),
		db.compiled.Alphabet.Size, db.frozen)
}

func (db *datBackend) Stats() keyIndexStats {
	stats := keyIndexStats{
		Backend:    "dat",
		TotalSlots: db.compiled.NStates(),
		MaxStateID: int(db.compiled.Root),
	}
	if stats.TotalSlots == 0 {
		return stats
	}
	stats.UsedSlots = db.compiled.Used()
	for i := range db.compiled.Check {
		if db.compiled.Check[i] != 0 && i > stats.MaxStateID {
			stats.MaxStateID = i
		}
	}
	return stats
}
