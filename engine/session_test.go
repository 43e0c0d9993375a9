package engine

import (
	"testing"

	"mergeview/align"
	"mergeview/assert"
	"mergeview/types"
)

func testSession() *Session {
	return NewSession(
		types.MergeFile{Path: "a.txt", HasStages: true},
		types.Revisions{
			Base:  "one\ntwo\nthree\n",
			Left:  "one\ntwo left\nthree\n",
			Right: "one\ntwo right\nthree\n",
		},
	)
}

func TestNewSession_ComputesConflicts(t *testing.T) {
	s := testSession()

	assert.NotNil(t, s.View, "view computed on construction")
	assert.Len(t, s.View.Conflicts, 1, "both sides rewrote line 2")
	assert.Equal(t, align.LineRange{Start: 2, End: 3}, s.View.Conflicts[0].Base, "conflict on base line 2")
}

func TestNewSession_OneSidedChange(t *testing.T) {
	s := NewSession(
		types.MergeFile{Path: "a.txt"},
		types.Revisions{
			Base:  "one\ntwo\nthree\n",
			Left:  "one\ntwo\nthree\n",
			Right: "one\ntwo right\nthree\n",
		},
	)

	assert.Len(t, s.View.Conflicts, 0, "one-sided change is not a conflict")
}

func TestNewSession_EmptyBase(t *testing.T) {
	// Add/add conflict: no common ancestor content.
	s := NewSession(
		types.MergeFile{Path: "new.txt"},
		types.Revisions{
			Base:  "",
			Left:  "from left\n",
			Right: "from right\n",
		},
	)

	assert.Len(t, s.View.Conflicts, 1, "both sides added content")
}

func TestBlockLines(t *testing.T) {
	s := testSession()

	lines := s.blockLines(types.SideRight, align.LineRange{Start: 2, End: 3})
	assert.Equal(t, []string{"two right"}, lines, "right block content")

	lines = s.blockLines(types.SideBase, align.LineRange{Start: 1, End: 4})
	assert.Equal(t, []string{"one", "two", "three"}, lines, "whole base")
}

func TestBlockLines_OutOfBoundsClamped(t *testing.T) {
	s := testSession()

	assert.Len(t, s.blockLines(types.SideBase, align.LineRange{Start: 3, End: 99}), 1, "end clamped to text length")
	assert.Len(t, s.blockLines(types.SideBase, align.LineRange{Start: 5, End: 5}), 0, "empty range yields nothing")
}

func TestEventTypeFromString(t *testing.T) {
	assert.Equal(t, EventAcceptRight, EventTypeFromString("accept_right"), "known event")
	assert.Equal(t, EventType(""), EventTypeFromString("bogus"), "unknown event")
}
