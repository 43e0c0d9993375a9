package align

import "fmt"

// MappingAlignment is one grouped region of the merge: a base line
// range, the (possibly extended) corresponding range on each variant,
// and the line-diff entries folded into the group per side. A group
// with no entries on either side is an identity region.
type MappingAlignment struct {
	BaseRange  LineRange
	LeftRange  LineRange
	RightRange LineRange

	LeftEntries  []LineDiffEntry
	RightEntries []LineDiffEntry
}

func (a *MappingAlignment) String() string {
	return fmt.Sprintf("base %s <- left %s | right %s", a.BaseRange, a.LeftRange, a.RightRange)
}

// sideChanged reports whether a side's output represents real change
// relative to the base: a line-count mismatch, or at least one inner
// character edit.
func sideChanged(base, out LineRange, entries []LineDiffEntry) bool {
	if out.Len() != base.Len() {
		return true
	}
	for _, e := range entries {
		if len(e.Inner) > 0 {
			return true
		}
	}
	return false
}

// IsConflict reports whether both variants diverged from the base
// within this group.
func (a *MappingAlignment) IsConflict() bool {
	return sideChanged(a.BaseRange, a.LeftRange, a.LeftEntries) &&
		sideChanged(a.BaseRange, a.RightRange, a.RightEntries)
}

// groupAlignments merges the two sides' line-diff entry lists into
// MappingAlignments. Entries whose base ranges touch or overlap fall
// into the same group; each side's output range is extended to cover
// the whole group's base range, and a side with no entries in a group
// gets the base range shifted by its running line delta.
//
// Both input lists must be sorted and non-overlapping on the base side
// (the oracle's precondition); this is trusted, not validated.
func groupAlignments(left, right []LineDiffEntry) []*MappingAlignment {
	type tagged struct {
		side  int
		entry LineDiffEntry
	}

	merged := make([]tagged, 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) || j < len(right) {
		if j >= len(right) || (i < len(left) && left[i].Original.Start <= right[j].Original.Start) {
			merged = append(merged, tagged{side: sideLeft, entry: left[i]})
			i++
		} else {
			merged = append(merged, tagged{side: sideRight, entry: right[j]})
			j++
		}
	}

	var result []*MappingAlignment
	var buckets [2][]LineDiffEntry
	var delta [2]int
	var cur LineRange
	open := false

	flush := func(base LineRange) {
		g := &MappingAlignment{
			BaseRange:    base,
			LeftEntries:  buckets[sideLeft],
			RightEntries: buckets[sideRight],
		}
		g.LeftRange = outputRange(base, buckets[sideLeft], delta[sideLeft])
		g.RightRange = outputRange(base, buckets[sideRight], delta[sideRight])
		result = append(result, g)
		buckets[sideLeft] = nil
		buckets[sideRight] = nil
	}

	for _, t := range merged {
		r := t.entry.Original
		if open && !cur.Touches(r) {
			flush(cur)
			open = false
		}
		delta[t.side] = t.entry.LineDelta()
		if open {
			cur = cur.Join(r)
		} else {
			cur = r
			open = true
		}
		buckets[t.side] = append(buckets[t.side], t.entry)
	}
	if open {
		flush(cur)
	}

	return result
}

// outputRange computes one side's output range for a group: the join of
// its entries' modified ranges, widened by however far the group's base
// range extends past the entries' own base span. A side with no entries
// follows the base range at its current line delta.
func outputRange(base LineRange, entries []LineDiffEntry, delta int) LineRange {
	if len(entries) == 0 {
		return base.Delta(delta)
	}

	origJoin := entries[0].Original
	modJoin := entries[0].Modified
	for _, e := range entries[1:] {
		origJoin = origJoin.Join(e.Original)
		modJoin = modJoin.Join(e.Modified)
	}

	return LineRange{
		Start: modJoin.Start + (base.Start - origJoin.Start),
		End:   modJoin.End + (base.End - origJoin.End),
	}
}
