package align

import (
	"mergeview/assert"
	"testing"
)

// wholeLineEntry builds a line-diff entry whose inner edit covers the
// whole range, i.e. the lines were rewritten rather than inserted or
// deleted around.
func wholeLineEntry(origStart, origEnd, modStart, modEnd int) LineDiffEntry {
	return LineDiffEntry{
		Original: LineRange{origStart, origEnd},
		Modified: LineRange{modStart, modEnd},
		Inner: []RangeMapping{{
			Original: rng(origStart, 1, origEnd, 1),
			Modified: rng(modStart, 1, modEnd, 1),
		}},
	}
}

func TestGroupAlignments_DisjointEntriesStaySeparate(t *testing.T) {
	left := []LineDiffEntry{wholeLineEntry(1, 2, 1, 2)}
	right := []LineDiffEntry{wholeLineEntry(4, 5, 4, 5)}

	groups := groupAlignments(left, right)

	assert.Len(t, groups, 2, "base ranges [1,2) and [4,5) do not touch")
	assert.Equal(t, LineRange{1, 2}, groups[0].BaseRange, "first group base")
	assert.Len(t, groups[0].LeftEntries, 1, "first group is left-only")
	assert.Len(t, groups[0].RightEntries, 0, "first group is left-only")
	assert.Equal(t, LineRange{4, 5}, groups[1].BaseRange, "second group base")
	assert.Len(t, groups[1].RightEntries, 1, "second group is right-only")
}

func TestGroupAlignments_OverlappingEntriesMerge(t *testing.T) {
	// Left changed [1,3), right changed [2,4): the base ranges overlap,
	// so both fold into one group and each side's range is widened to
	// cover the full base span.
	left := []LineDiffEntry{wholeLineEntry(1, 3, 1, 3)}
	right := []LineDiffEntry{wholeLineEntry(2, 4, 2, 4)}

	groups := groupAlignments(left, right)

	assert.Len(t, groups, 1, "overlapping base ranges merge")
	g := groups[0]
	assert.Equal(t, LineRange{1, 4}, g.BaseRange, "joined base range")
	assert.Equal(t, LineRange{1, 4}, g.LeftRange, "left range widened to the group")
	assert.Equal(t, LineRange{1, 4}, g.RightRange, "right range widened to the group")
	assert.Len(t, g.LeftEntries, 1, "left entry kept")
	assert.Len(t, g.RightEntries, 1, "right entry kept")
	assert.True(t, g.IsConflict(), "both sides changed the same region")
}

func TestGroupAlignments_AdjacentEntriesMerge(t *testing.T) {
	left := []LineDiffEntry{wholeLineEntry(1, 3, 1, 3)}
	right := []LineDiffEntry{wholeLineEntry(3, 5, 3, 5)}

	groups := groupAlignments(left, right)

	assert.Len(t, groups, 1, "ranges meeting at line 3 touch")
	assert.Equal(t, LineRange{1, 5}, groups[0].BaseRange, "joined base range")
}

func TestGroupAlignments_SilentSideCarriesDelta(t *testing.T) {
	// Right deletes line 1, left later rewrites line 5. In the second
	// group the right side made no change, so its range is the base
	// range shifted by the line it already lost.
	left := []LineDiffEntry{wholeLineEntry(5, 6, 5, 6)}
	right := []LineDiffEntry{{
		Original: LineRange{1, 2},
		Modified: LineRange{1, 1},
	}}

	groups := groupAlignments(left, right)

	assert.Len(t, groups, 2, "deletion and rewrite stay separate")
	assert.Equal(t, LineRange{1, 1}, groups[0].RightRange, "deleted range is empty on the right")
	assert.Equal(t, LineRange{5, 6}, groups[1].LeftRange, "left rewrote in place")
	assert.Equal(t, LineRange{4, 5}, groups[1].RightRange, "right range shifted by the earlier deletion")
	assert.False(t, groups[1].IsConflict(), "only the left changed here")
}

func TestGroupAlignments_ModifiedJoinFollowsExtension(t *testing.T) {
	// Left inserts two lines at [2,2); right rewrites [1,3). The group's
	// base is [1,3), and the left output range must be widened on both
	// flanks of its insertion.
	left := []LineDiffEntry{{
		Original: LineRange{2, 2},
		Modified: LineRange{2, 4},
	}}
	right := []LineDiffEntry{wholeLineEntry(1, 3, 1, 3)}

	groups := groupAlignments(left, right)

	assert.Len(t, groups, 1, "insertion at line 2 touches [1,3)")
	g := groups[0]
	assert.Equal(t, LineRange{1, 3}, g.BaseRange, "joined base range")
	assert.Equal(t, LineRange{1, 5}, g.LeftRange, "left range spans the insert plus the flanks")
	assert.Equal(t, LineRange{1, 3}, g.RightRange, "right range unchanged in size")
}

func TestSideChanged(t *testing.T) {
	assert.False(t, sideChanged(LineRange{1, 3}, LineRange{1, 3}, nil), "identical ranges, no entries")
	assert.True(t, sideChanged(LineRange{1, 3}, LineRange{1, 4}, nil), "line count mismatch")
	assert.True(t, sideChanged(LineRange{1, 3}, LineRange{1, 3}, []LineDiffEntry{
		wholeLineEntry(1, 3, 1, 3),
	}), "same line count but inner edits")
	assert.False(t, sideChanged(LineRange{1, 3}, LineRange{1, 3}, []LineDiffEntry{{
		Original: LineRange{1, 3},
		Modified: LineRange{1, 3},
	}}), "entry without inner edits is not a change")
}
