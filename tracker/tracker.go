// Package tracker keeps stable identities for conflict blocks across
// buffer edits. The alignment computation is position-static; this is
// the one place that knows how live edits move line ranges around.
package tracker

import (
	"sync"

	"github.com/google/uuid"

	"mergeview/align"
	"mergeview/types"
)

// Block is one tracked conflict region with a line range on each of the
// three texts.
type Block struct {
	ID       string
	Base     align.LineRange
	Left     align.LineRange
	Right    align.LineRange
	Resolved bool
}

// Range returns the block's range on one side.
func (b Block) Range(side types.Side) align.LineRange {
	switch side {
	case types.SideLeft:
		return b.Left
	case types.SideRight:
		return b.Right
	default:
		return b.Base
	}
}

func (b *Block) setRange(side types.Side, r align.LineRange) {
	switch side {
	case types.SideLeft:
		b.Left = r
	case types.SideRight:
		b.Right = r
	default:
		b.Base = r
	}
}

// Tracker owns the blocks of one merge session.
type Tracker struct {
	mu     sync.Mutex
	blocks []*Block
}

func New() *Tracker {
	return &Tracker{}
}

// Load replaces all tracked blocks with fresh ones for the given
// conflicts, assigning each a new ID. Returns the IDs in conflict
// order.
func (t *Tracker) Load(conflicts []align.ConflictBlock) []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.blocks = make([]*Block, 0, len(conflicts))
	ids := make([]string, 0, len(conflicts))
	for _, c := range conflicts {
		b := &Block{
			ID:    uuid.NewString(),
			Base:  c.Base,
			Left:  c.Left,
			Right: c.Right,
		}
		t.blocks = append(t.blocks, b)
		ids = append(ids, b.ID)
	}
	return ids
}

// Blocks returns a snapshot of all blocks in order.
func (t *Tracker) Blocks() []Block {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make([]Block, len(t.blocks))
	for i, b := range t.blocks {
		out[i] = *b
	}
	return out
}

// Get looks a block up by ID.
func (t *Tracker) Get(id string) (Block, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, b := range t.blocks {
		if b.ID == id {
			return *b, true
		}
	}
	return Block{}, false
}

// Resolve marks a block handled. Returns false for unknown IDs.
func (t *Tracker) Resolve(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, b := range t.blocks {
		if b.ID == id {
			b.Resolved = true
			return true
		}
	}
	return false
}

// Unresolved reports how many blocks are still open.
func (t *Tracker) Unresolved() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := 0
	for _, b := range t.blocks {
		if !b.Resolved {
			n++
		}
	}
	return n
}

// SetRange pins one side's range of a block, after an accept rewrote
// the block's lines.
func (t *Tracker) SetRange(id string, side types.Side, r align.LineRange) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, b := range t.blocks {
		if b.ID == id {
			b.setRange(side, r)
			return true
		}
	}
	return false
}

// ApplyEdit records that lines [start, end) on one side were replaced
// by newCount lines, and shifts every block's range on that side the
// way editor extmarks move:
//
//   - ranges entirely after the edit shift by the line delta
//   - an edit inside a range grows or shrinks that range
//   - a range overlapping the edit boundary widens to cover both
func (t *Tracker) ApplyEdit(side types.Side, start, end, newCount int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delta := newCount - (end - start)
	for _, b := range t.blocks {
		r := b.Range(side)
		switch {
		case end <= r.Start:
			r.Start += delta
			r.End += delta
		case start >= r.End:
			// edit after the range
		case start >= r.Start && end <= r.End:
			r.End += delta
		default:
			if start < r.Start {
				r.Start = start
			}
			newEnd := start + newCount
			if r.End+delta > newEnd {
				newEnd = r.End + delta
			}
			r.End = newEnd
		}
		if r.End < r.Start {
			r.End = r.Start
		}
		b.setRange(side, r)
	}
}

// Next returns the first unresolved block starting after line on the
// given side, wrapping to the first unresolved block.
func (t *Tracker) Next(side types.Side, line int) (Block, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var first, after *Block
	for _, b := range t.blocks {
		if b.Resolved {
			continue
		}
		if first == nil {
			first = b
		}
		if after == nil && b.Range(side).Start > line {
			after = b
		}
	}
	if after != nil {
		return *after, true
	}
	if first != nil {
		return *first, true
	}
	return Block{}, false
}

// Prev returns the last unresolved block starting before line on the
// given side, wrapping to the last unresolved block.
func (t *Tracker) Prev(side types.Side, line int) (Block, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var last, before *Block
	for _, b := range t.blocks {
		if b.Resolved {
			continue
		}
		last = b
		if b.Range(side).Start < line {
			before = b
		}
	}
	if before != nil {
		return *before, true
	}
	if last != nil {
		return *last, true
	}
	return Block{}, false
}
