package align

import "sort"

// equalRangeMappings converts one side's intra-line edits into the
// complementary equal (unchanged) spans relative to the enclosing
// original/modified ranges. The gap before the first edit, between
// consecutive edits, and after the last edit each become one mapping;
// zero-length gaps are dropped.
func equalRangeMappings(edits []RangeMapping, original, modified Range) []RangeMapping {
	var result []RangeMapping

	equalOrigStart := original.Start
	equalModStart := modified.Start

	for _, e := range edits {
		m := RangeMapping{
			Original: Range{Start: equalOrigStart, End: e.Original.Start},
			Modified: Range{Start: equalModStart, End: e.Modified.Start},
		}
		if !m.Original.IsEmpty() {
			result = append(result, m)
		}
		equalOrigStart = e.Original.End
		equalModStart = e.Modified.End
	}

	final := RangeMapping{
		Original: Range{Start: equalOrigStart, End: original.End},
		Modified: Range{Start: equalModStart, End: modified.End},
	}
	if !final.Original.IsEmpty() {
		result = append(result, final)
	}

	return result
}

// CommonEqualSpan is a base-relative span together with the positions
// it maps to on whichever sides have equal-range coverage there. A nil
// side position means that side has an edit in progress over the span.
type CommonEqualSpan struct {
	Pos    Position
	Length TextLength
	Left   *Position
	Right  *Position
}

const (
	sideLeft  = 0
	sideRight = 1
)

type sweepEvent struct {
	side  int
	start bool
	pos   Position // base side
	out   Position // variant side
}

// commonEqualSpans sweeps both sides' equal-range lists and emits one
// span per segment of the base text, recording which sides are covered
// by an equal range there.
//
// The comparator orders end events before start events at equal base
// positions. This is load-bearing: an equal range ending exactly where
// another begins must read as continuous coverage, not as a zero-width
// gap. It is an explicit tie-break, not a stability artifact.
func commonEqualSpans(left, right []RangeMapping) []CommonEqualSpan {
	var events []sweepEvent
	for side, mappings := range [2][]RangeMapping{left, right} {
		for _, m := range mappings {
			events = append(events,
				sweepEvent{side: side, start: true, pos: m.Original.Start, out: m.Modified.Start},
				sweepEvent{side: side, start: false, pos: m.Original.End, out: m.Modified.End},
			)
		}
	}

	sort.Slice(events, func(i, j int) bool {
		a, b := events[i], events[j]
		if c := a.pos.Compare(b.pos); c != 0 {
			return c < 0
		}
		if a.start != b.start {
			return !a.start // end before start
		}
		return a.side < b.side
	})

	var result []CommonEqualSpan
	var open [2]*Position
	var lastPos *Position

	for i := range events {
		ev := events[i]
		if lastPos != nil && (open[sideLeft] != nil || open[sideRight] != nil) {
			length := LengthBetween(*lastPos, ev.pos)
			if !length.IsZero() {
				span := CommonEqualSpan{Pos: *lastPos, Length: length}
				if open[sideLeft] != nil {
					p := *open[sideLeft]
					span.Left = &p
				}
				if open[sideRight] != nil {
					p := *open[sideRight]
					span.Right = &p
				}
				result = append(result, span)

				for side := range open {
					if open[side] != nil {
						advanced := length.AddTo(*open[side])
						open[side] = &advanced
					}
				}
			}
		}

		pos := ev.pos
		lastPos = &pos
		if ev.start {
			out := ev.out
			open[ev.side] = &out
		} else {
			open[ev.side] = nil
		}
	}

	return result
}
