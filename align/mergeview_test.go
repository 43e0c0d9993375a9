package align

import (
	"reflect"
	"testing"

	"mergeview/assert"
)

// checkCoverage asserts that the alignments cover base lines
// [1, baseLineCount] exactly once, in order, and that the side ranges
// are contiguous as well.
func checkCoverage(t *testing.T, view *MergeView, baseLineCount int) {
	t.Helper()
	base, left, right := 1, 1, 1
	for _, a := range view.Alignments {
		assert.Equal(t, base, a.BaseRange.Start, "base ranges contiguous")
		assert.Equal(t, left, a.LeftRange.Start, "left ranges contiguous")
		assert.Equal(t, right, a.RightRange.Start, "right ranges contiguous")
		base = a.BaseRange.End
		left = a.LeftRange.End
		right = a.RightRange.End
	}
	assert.Equal(t, baseLineCount+1, base, "every base line covered")
}

func TestCompute_NoChanges(t *testing.T) {
	view := Compute(nil, nil, 3)

	assert.Len(t, view.Alignments, 1, "single identity region")
	assert.Equal(t, LineRange{1, 4}, view.Alignments[0].BaseRange, "identity covers the whole base")
	assert.Len(t, view.LeftFillers, 0, "no fillers")
	assert.Len(t, view.RightFillers, 0, "no fillers")
	assert.Len(t, view.Conflicts, 0, "no conflicts")
	checkCoverage(t, view, 3)
}

func TestCompute_LeftInsertGetsRightFiller(t *testing.T) {
	// Left inserts one line after base line 2 in a 3-line base. The
	// right side needs one filler after its line 2 to stay lock-stepped.
	left := []LineDiffEntry{{
		Original: LineRange{3, 3},
		Modified: LineRange{3, 4},
	}}

	view := Compute(left, nil, 3)

	assert.Len(t, view.Alignments, 3, "identity, insert, identity")
	assert.Len(t, view.Conflicts, 0, "one-sided change is not a conflict")
	assert.Len(t, view.LeftFillers, 0, "left side is the longer one")
	assert.Equal(t, []Filler{{AfterLine: 2, Count: 1}}, view.RightFillers, "right catches up after line 2")
	checkCoverage(t, view, 3)
}

func TestCompute_RightDeleteGetsRightFiller(t *testing.T) {
	// Right deletes base line 2. The right side is shorter, so it gets
	// the filler where the deleted line would have been.
	right := []LineDiffEntry{{
		Original: LineRange{2, 3},
		Modified: LineRange{2, 2},
	}}

	view := Compute(nil, right, 3)

	assert.Len(t, view.Conflicts, 0, "one-sided change is not a conflict")
	assert.Len(t, view.LeftFillers, 0, "left side matches the base")
	assert.Equal(t, []Filler{{AfterLine: 1, Count: 1}}, view.RightFillers, "filler stands in for the deleted line")
	checkCoverage(t, view, 3)
}

func TestCompute_BothSidesChangedIsConflict(t *testing.T) {
	// Left rewrites base line 2 into two lines, right into three. Both
	// sides diverged: one conflict block, and the left side needs a
	// filler to match the right side's extra line.
	left := []LineDiffEntry{{
		Original: LineRange{2, 3},
		Modified: LineRange{2, 4},
	}}
	right := []LineDiffEntry{{
		Original: LineRange{2, 3},
		Modified: LineRange{2, 5},
	}}

	view := Compute(left, right, 3)

	assert.Len(t, view.Conflicts, 1, "both sides changed the same region")
	assert.Equal(t, ConflictBlock{
		Base:  LineRange{2, 3},
		Left:  LineRange{2, 4},
		Right: LineRange{2, 5},
	}, view.Conflicts[0], "conflict block ranges")
	assert.Equal(t, []Filler{{AfterLine: 3, Count: 1}}, view.LeftFillers, "left pads to the right side's length")
	assert.Len(t, view.RightFillers, 0, "right side is the longer one")
	checkCoverage(t, view, 3)
}

func TestCompute_TouchingEntriesFormOneGroup(t *testing.T) {
	// Left changed [1,3) and right changed [2,4): a single merged group,
	// and a single conflict block spanning [1,4).
	left := []LineDiffEntry{wholeLineEntry(1, 3, 1, 3)}
	right := []LineDiffEntry{wholeLineEntry(2, 4, 2, 4)}

	view := Compute(left, right, 4)

	changed := 0
	for _, a := range view.Alignments {
		if len(a.LeftEntries) > 0 || len(a.RightEntries) > 0 {
			changed++
			assert.Equal(t, LineRange{1, 4}, a.BaseRange, "merged group base range")
		}
	}
	assert.Equal(t, 1, changed, "one changed group")
	assert.Len(t, view.Conflicts, 1, "one conflict block")
	assert.Equal(t, LineRange{1, 4}, view.Conflicts[0].Base, "conflict spans the merged group")
	checkCoverage(t, view, 4)
}

func TestCompute_InnerEditsOnlyStillConflicts(t *testing.T) {
	// Both sides rewrote line 2 in place: line counts match the base on
	// both sides, but the inner edits make it a conflict.
	left := []LineDiffEntry{wholeLineEntry(2, 3, 2, 3)}
	right := []LineDiffEntry{wholeLineEntry(2, 3, 2, 3)}

	view := Compute(left, right, 3)

	assert.Len(t, view.Conflicts, 1, "in-place rewrites on both sides conflict")
	assert.Len(t, view.LeftFillers, 0, "equal lengths need no fillers")
	assert.Len(t, view.RightFillers, 0, "equal lengths need no fillers")
}

func TestCompute_FillerCountsArePositive(t *testing.T) {
	left := []LineDiffEntry{
		{Original: LineRange{2, 2}, Modified: LineRange{2, 5}},
	}
	right := []LineDiffEntry{
		{Original: LineRange{4, 5}, Modified: LineRange{4, 4}},
	}

	view := Compute(left, right, 6)

	for _, f := range append(append([]Filler(nil), view.LeftFillers...), view.RightFillers...) {
		assert.Greater(t, f.Count, 0, "filler counts are at least 1")
		assert.GreaterOrEqual(t, f.AfterLine, 0, "fillers attach at or above line 0")
	}
	checkCoverage(t, view, 6)
}

func TestCompute_FillersEqualizeTotalHeight(t *testing.T) {
	// After applying all fillers both sides must display the same number
	// of lines.
	cases := []struct {
		name        string
		left, right []LineDiffEntry
		base        int
	}{
		{"left insert", []LineDiffEntry{{Original: LineRange{3, 3}, Modified: LineRange{3, 4}}}, nil, 3},
		{"right delete", nil, []LineDiffEntry{{Original: LineRange{2, 3}, Modified: LineRange{2, 2}}}, 3},
		{"conflicting rewrite", []LineDiffEntry{{Original: LineRange{2, 3}, Modified: LineRange{2, 4}}},
			[]LineDiffEntry{{Original: LineRange{2, 3}, Modified: LineRange{2, 5}}}, 3},
		{"disjoint edits", []LineDiffEntry{{Original: LineRange{2, 2}, Modified: LineRange{2, 5}}},
			[]LineDiffEntry{{Original: LineRange{4, 5}, Modified: LineRange{4, 4}}}, 6},
	}

	for _, c := range cases {
		view := Compute(c.left, c.right, c.base)

		last := view.Alignments[len(view.Alignments)-1]
		leftLines, rightLines := last.LeftRange.End-1, last.RightRange.End-1
		for _, f := range view.LeftFillers {
			leftLines += f.Count
		}
		for _, f := range view.RightFillers {
			rightLines += f.Count
		}
		assert.Equal(t, leftLines, rightLines, c.name+": total display heights match")
	}
}

func TestCompute_Deterministic(t *testing.T) {
	left := []LineDiffEntry{wholeLineEntry(1, 3, 1, 3)}
	right := []LineDiffEntry{{Original: LineRange{2, 4}, Modified: LineRange{2, 6}}}

	a := Compute(left, right, 5)
	b := Compute(left, right, 5)

	assert.True(t, reflect.DeepEqual(a, b), "identical inputs produce identical views")
}
