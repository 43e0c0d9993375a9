package align

import "fmt"

// Position is a point in a text, expressed as a 1-indexed line and a
// 1-indexed column with "before character N" semantics: column 1 is the
// start of the line, column len(line)+1 is past its last character.
type Position struct {
	Line int
	Col  int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Compare orders positions top-to-bottom, left-to-right.
func (p Position) Compare(o Position) int {
	if p.Line != o.Line {
		return p.Line - o.Line
	}
	return p.Col - o.Col
}

func (p Position) IsBefore(o Position) bool {
	return p.Compare(o) < 0
}

// TextLength is a relative span. Lines == 0 means "stays on the same
// line, Cols further right"; Lines > 0 means "Lines additional lines,
// ending Cols columns into the last one".
type TextLength struct {
	Lines int
	Cols  int
}

// LengthBetween measures the span from a to b. b must not precede a.
func LengthBetween(a, b Position) TextLength {
	if a.Line == b.Line {
		return TextLength{Lines: 0, Cols: b.Col - a.Col}
	}
	return TextLength{Lines: b.Line - a.Line, Cols: b.Col - 1}
}

// AddTo returns the position reached by advancing p by l.
func (l TextLength) AddTo(p Position) Position {
	if l.Lines == 0 {
		return Position{Line: p.Line, Col: p.Col + l.Cols}
	}
	return Position{Line: p.Line + l.Lines, Col: l.Cols + 1}
}

func (l TextLength) IsZero() bool {
	return l.Lines == 0 && l.Cols == 0
}

// GreaterThan orders lengths lexicographically: lines first, then
// columns.
func (l TextLength) GreaterThan(o TextLength) bool {
	if l.Lines != o.Lines {
		return l.Lines > o.Lines
	}
	return l.Cols > o.Cols
}
