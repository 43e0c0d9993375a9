package align

import "fmt"

// AbsentLine marks an AlignmentPoint axis with no value.
const AbsentLine = -1

// AlignmentPoint is a synchronization point: line numbers on the left,
// base and right texts that correspond to each other. Any axis may be
// AbsentLine, but never all three.
type AlignmentPoint struct {
	Left  int
	Base  int
	Right int
}

func (p AlignmentPoint) String() string {
	return fmt.Sprintf("(%d|%d|%d)", p.Left, p.Base, p.Right)
}

// IsFullSync reports whether all three axes are present.
func (p AlignmentPoint) IsFullSync() bool {
	return p.Left != AbsentLine && p.Base != AbsentLine && p.Right != AbsentLine
}

// collides reports whether any axis present in both points carries the
// same line number.
func (p AlignmentPoint) collides(o AlignmentPoint) bool {
	return (p.Left != AbsentLine && p.Left == o.Left) ||
		(p.Base != AbsentLine && p.Base == o.Base) ||
		(p.Right != AbsentLine && p.Right == o.Right)
}

// alignmentPoints computes the ordered synchronization points of one
// grouped region, from its start boundary to its end boundary. No line
// number repeats on any axis. Full three-way syncs take priority over
// half syncs: accepting a full sync evicts colliding half syncs.
func alignmentPoints(g *MappingAlignment) []AlignmentPoint {
	eqLeft := equalRangeMappings(innerEdits(g.LeftEntries), g.BaseRange.ToRange(), g.LeftRange.ToRange())
	eqRight := equalRangeMappings(innerEdits(g.RightEntries), g.BaseRange.ToRange(), g.RightRange.ToRange())
	spans := commonEqualSpans(eqLeft, eqRight)

	points := []AlignmentPoint{{
		Left:  g.LeftRange.Start - 1,
		Base:  g.BaseRange.Start - 1,
		Right: g.RightRange.Start - 1,
	}}

	for _, s := range spans {
		cand := AlignmentPoint{Left: AbsentLine, Base: s.Pos.Line, Right: AbsentLine}
		if s.Left != nil {
			cand.Left = s.Left.Line
		}
		if s.Right != nil {
			cand.Right = s.Right.Line
		}

		accepted := false
		if cand.IsFullSync() {
			collidesWithFull := false
			for _, p := range points {
				if p.IsFullSync() && p.collides(cand) {
					collidesWithFull = true
					break
				}
			}
			if !collidesWithFull {
				// Evict half syncs the full sync supersedes.
				kept := points[:0]
				for _, p := range points {
					if !p.collides(cand) {
						kept = append(kept, p)
					}
				}
				points = kept
				accepted = true
			}
		} else {
			collides := false
			for _, p := range points {
				if p.collides(cand) {
					collides = true
					break
				}
			}
			accepted = !collides
		}

		if accepted {
			points = append(points, cand)
		} else if s.Length.GreaterThan(TextLength{Lines: 1}) {
			// The span extends past the rejected line: recover a sync
			// point one line in rather than losing the whole span.
			next := AlignmentPoint{Left: AbsentLine, Base: cand.Base + 1, Right: AbsentLine}
			if cand.Left != AbsentLine {
				next.Left = cand.Left + 1
			}
			if cand.Right != AbsentLine {
				next.Right = cand.Right + 1
			}
			points = append(points, next)
		}
	}

	end := AlignmentPoint{
		Left:  g.LeftRange.End,
		Base:  g.BaseRange.End,
		Right: g.RightRange.End,
	}
	kept := points[:0]
	for _, p := range points {
		if !p.collides(end) {
			kept = append(kept, p)
		}
	}
	points = append(kept, end)

	return points
}

// innerEdits flattens the intra-line edits of all entries on one side,
// in order.
func innerEdits(entries []LineDiffEntry) []RangeMapping {
	var edits []RangeMapping
	for _, e := range entries {
		edits = append(edits, e.innerOrWhole()...)
	}
	return edits
}
