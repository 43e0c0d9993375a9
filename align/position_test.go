package align

import (
	"mergeview/assert"
	"testing"
)

func TestLengthBetween_SameLine(t *testing.T) {
	l := LengthBetween(Position{Line: 3, Col: 2}, Position{Line: 3, Col: 7})
	assert.Equal(t, 0, l.Lines, "lines")
	assert.Equal(t, 5, l.Cols, "cols")
}

func TestLengthBetween_AcrossLines(t *testing.T) {
	l := LengthBetween(Position{Line: 2, Col: 4}, Position{Line: 5, Col: 3})
	assert.Equal(t, 3, l.Lines, "lines")
	assert.Equal(t, 2, l.Cols, "cols into last line")
}

func TestAddTo_RoundTrips(t *testing.T) {
	cases := []struct {
		a, b Position
	}{
		{Position{1, 1}, Position{1, 1}},
		{Position{1, 1}, Position{1, 9}},
		{Position{2, 5}, Position{4, 1}},
		{Position{3, 2}, Position{3, 2}},
	}
	for _, c := range cases {
		got := LengthBetween(c.a, c.b).AddTo(c.a)
		assert.Equal(t, c.b, got, "AddTo(LengthBetween) round trip")
	}
}

func TestTextLength_IsZero(t *testing.T) {
	assert.True(t, TextLength{}.IsZero(), "zero length")
	assert.False(t, TextLength{Lines: 1}.IsZero(), "one line")
	assert.False(t, TextLength{Cols: 1}.IsZero(), "one col")
}

func TestTextLength_GreaterThan(t *testing.T) {
	assert.True(t, TextLength{Lines: 2}.GreaterThan(TextLength{Lines: 1, Cols: 99}), "lines dominate")
	assert.True(t, TextLength{Lines: 1, Cols: 1}.GreaterThan(TextLength{Lines: 1}), "cols break ties")
	assert.False(t, TextLength{Lines: 1}.GreaterThan(TextLength{Lines: 1}), "equal is not greater")
}

func TestPosition_Compare(t *testing.T) {
	assert.True(t, Position{1, 9}.IsBefore(Position{2, 1}), "line order wins")
	assert.True(t, Position{2, 1}.IsBefore(Position{2, 2}), "col order within line")
	assert.Equal(t, 0, Position{4, 4}.Compare(Position{4, 4}), "equal positions")
}

func TestLineRange_Touches(t *testing.T) {
	assert.True(t, LineRange{1, 3}.Touches(LineRange{3, 5}), "adjacent ranges touch")
	assert.True(t, LineRange{1, 3}.Touches(LineRange{2, 4}), "overlapping ranges touch")
	assert.True(t, LineRange{1, 3}.Touches(LineRange{3, 3}), "empty range touches at boundary")
	assert.False(t, LineRange{1, 3}.Touches(LineRange{4, 6}), "separated ranges do not touch")
}

func TestLineRange_JoinDelta(t *testing.T) {
	assert.Equal(t, LineRange{1, 6}, LineRange{1, 3}.Join(LineRange{4, 6}), "join spans both")
	assert.Equal(t, LineRange{4, 6}, LineRange{2, 4}.Delta(2), "delta shifts both ends")
}
