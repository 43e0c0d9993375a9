// Package align computes the three-way line alignment of a merge: given
// the two pairwise line diffs base->left and base->right, it derives a
// single mutually consistent alignment of all three texts, the filler
// lines needed to keep the left and right sides visually lock-stepped,
// and the regions where both sides diverged from the base (conflicts).
//
// The whole computation is pure and single-pass: no state survives a
// call, identical inputs produce identical output, and it is re-run
// from scratch whenever either input diff changes.
package align

// Filler is an instruction to insert Count blank display lines
// immediately after line AfterLine on one side. Fillers are visual
// only; they never touch buffer content. Count is always >= 1.
type Filler struct {
	AfterLine int
	Count     int
}

// ConflictBlock is a grouped region where both variants changed
// relative to the base. The ranges are snapshots at computation time;
// tracking them across subsequent edits is the tracker's job.
type ConflictBlock struct {
	Base  LineRange
	Left  LineRange
	Right LineRange
}

// MergeView is the full result of one alignment computation.
type MergeView struct {
	// Alignments covers every base line exactly once, in order:
	// changed groups interleaved with identity regions.
	Alignments []*MappingAlignment

	LeftFillers  []Filler
	RightFillers []Filler
	Conflicts    []ConflictBlock
}

// Compute builds the merge view for a base text of baseLineCount lines
// and the two pairwise diffs against it. Both diff lists must be sorted
// and non-overlapping on the base side; the oracle guarantees this and
// Compute trusts it.
func Compute(left, right []LineDiffEntry, baseLineCount int) *MergeView {
	groups := groupAlignments(left, right)
	view := &MergeView{
		Alignments: coverBase(groups, baseLineCount),
	}

	var leftTotal, rightTotal int

	for _, g := range view.Alignments {
		if g.IsConflict() {
			view.Conflicts = append(view.Conflicts, ConflictBlock{
				Base:  g.BaseRange,
				Left:  g.LeftRange,
				Right: g.RightRange,
			})
		}

		for _, p := range alignmentPoints(g) {
			if !p.IsFullSync() {
				continue
			}
			leftDisplay := p.Left + leftTotal
			rightDisplay := p.Right + rightTotal
			switch {
			case leftDisplay < rightDisplay:
				count := rightDisplay - leftDisplay
				view.LeftFillers = append(view.LeftFillers, Filler{AfterLine: p.Left - 1, Count: count})
				leftTotal += count
			case rightDisplay < leftDisplay:
				count := leftDisplay - rightDisplay
				view.RightFillers = append(view.RightFillers, Filler{AfterLine: p.Right - 1, Count: count})
				rightTotal += count
			}
		}
	}

	return view
}

// coverBase interleaves identity groups into the changed groups so the
// returned list covers lines [1, baseLineCount] exactly once. Identity
// groups carry each side's output range at that side's cumulative line
// delta, so alignment stays correct between changed regions.
func coverBase(groups []*MappingAlignment, baseLineCount int) []*MappingAlignment {
	covered := make([]*MappingAlignment, 0, 2*len(groups)+1)
	pos := 1
	var deltaLeft, deltaRight int

	gap := func(end int) {
		if end <= pos {
			return
		}
		base := LineRange{Start: pos, End: end}
		covered = append(covered, &MappingAlignment{
			BaseRange:  base,
			LeftRange:  base.Delta(deltaLeft),
			RightRange: base.Delta(deltaRight),
		})
	}

	for _, g := range groups {
		gap(g.BaseRange.Start)
		covered = append(covered, g)
		pos = g.BaseRange.End
		deltaLeft = g.LeftRange.End - g.BaseRange.End
		deltaRight = g.RightRange.End - g.BaseRange.End
	}
	gap(baseLineCount + 1)

	return covered
}
