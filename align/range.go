package align

import "fmt"

// Range is a span between two positions, end exclusive.
type Range struct {
	Start Position
	End   Position
}

func (r Range) IsEmpty() bool {
	return r.Start.Compare(r.End) >= 0
}

func (r Range) String() string {
	return fmt.Sprintf("[%s, %s)", r.Start, r.End)
}

// LineRange is a span of whole lines, 1-indexed, end exclusive.
type LineRange struct {
	Start int
	End   int
}

func (r LineRange) Len() int {
	return r.End - r.Start
}

func (r LineRange) IsEmpty() bool {
	return r.End <= r.Start
}

// Delta shifts the range by n lines.
func (r LineRange) Delta(n int) LineRange {
	return LineRange{Start: r.Start + n, End: r.End + n}
}

// Join returns the smallest range covering both r and o.
func (r LineRange) Join(o LineRange) LineRange {
	return LineRange{Start: min(r.Start, o.Start), End: max(r.End, o.End)}
}

// Touches reports whether o overlaps or is directly adjacent to r.
// Empty ranges touch at their boundary; this is what lets a pure
// insertion merge into a neighboring group.
func (r LineRange) Touches(o LineRange) bool {
	return o.End >= r.Start && o.Start <= r.End
}

// ToRange converts the line range to a position range spanning from the
// start of its first line to the start of its first excluded line.
func (r LineRange) ToRange() Range {
	return Range{
		Start: Position{Line: r.Start, Col: 1},
		End:   Position{Line: r.End, Col: 1},
	}
}

func (r LineRange) String() string {
	return fmt.Sprintf("[%d, %d)", r.Start, r.End)
}

// RangeMapping is one intra-line edit: a span of the original text and
// the span of the modified text that replaced it.
type RangeMapping struct {
	Original Range
	Modified Range
}

// LineDiffEntry is one unit of a pairwise line diff as produced by the
// diff oracle: a base-side line range, the corresponding variant-side
// line range, and zero or more intra-line edits. Entries of one diff
// are sorted and non-overlapping on the base side; that precondition is
// the oracle's to uphold and is not validated here.
type LineDiffEntry struct {
	Original LineRange
	Modified LineRange
	Inner    []RangeMapping
}

// LineDelta is the variant-side line drift after this entry.
func (e LineDiffEntry) LineDelta() int {
	return e.Modified.End - e.Original.End
}

// innerOrWhole returns the entry's intra-line edits, or the whole entry
// as a single edit when the oracle gave no character detail. Without
// this, an entry with no inner changes would read as fully equal text.
func (e LineDiffEntry) innerOrWhole() []RangeMapping {
	if len(e.Inner) > 0 {
		return e.Inner
	}
	return []RangeMapping{{
		Original: e.Original.ToRange(),
		Modified: e.Modified.ToRange(),
	}}
}
