package engine

import (
	"mergeview/align"
	"mergeview/text"
	"mergeview/types"
)

// Session is one merge in progress: a conflicted file, its three
// revisions, and the alignment computed from them.
type Session struct {
	File types.MergeFile
	Revs types.Revisions
	View *align.MergeView
}

// NewSession diffs both variants against the base and computes the
// merge view. Pure; safe to call off the event loop.
func NewSession(file types.MergeFile, revs types.Revisions) *Session {
	return &Session{
		File: file,
		Revs: revs,
		View: computeView(revs),
	}
}

func computeView(revs types.Revisions) *align.MergeView {
	left := text.LineDiffs(revs.Base, revs.Left)
	right := text.LineDiffs(revs.Base, revs.Right)
	return align.Compute(left, right, text.LineCount(revs.Base))
}

// sideText returns one revision's content.
func (s *Session) sideText(side types.Side) string {
	switch side {
	case types.SideLeft:
		return s.Revs.Left
	case types.SideRight:
		return s.Revs.Right
	default:
		return s.Revs.Base
	}
}

// blockLines extracts the lines of a line range from one side's text.
func (s *Session) blockLines(side types.Side, r align.LineRange) []string {
	lines := text.SplitLines(s.sideText(side))
	start, end := r.Start-1, r.End-1
	if start < 0 {
		start = 0
	}
	if end > len(lines) {
		end = len(lines)
	}
	if start >= end {
		return nil
	}
	return lines[start:end]
}
