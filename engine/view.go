package engine

import (
	"mergeview/align"
	"mergeview/logger"
	"mergeview/tracker"
	"mergeview/types"

	"github.com/neovim/go-client/nvim"
)

const conflictHighlightGroup = "MergeViewConflict"

// renderView pushes the current session into the editor: filler
// extmarks and conflict highlights on the working buffer, and the full
// payload to the Lua side for the other panes.
func (e *Engine) renderView() {
	if e.n == nil || e.session == nil {
		return
	}

	batch := e.n.NewBatch()
	batch.ClearBufferNamespace(e.buf, e.config.NsID, 0, -1)

	var extmarkID int
	for _, f := range e.session.View.LeftFillers {
		batch.SetBufferExtmark(e.buf, e.config.NsID, fillerRow(f), 0, fillerOpts(f), &extmarkID)
	}

	var hlID int
	for _, b := range e.tracker.Blocks() {
		if b.Resolved {
			continue
		}
		for line := b.Left.Start; line < b.Left.End; line++ {
			batch.AddBufferHighlight(e.buf, e.config.NsID, conflictHighlightGroup, line-1, 0, -1, &hlID)
		}
	}

	batch.ExecLua(`require('mergeview').on_merge_view(...)`, nil,
		viewPayload(e.session, e.tracker.Blocks()))

	if err := batch.Execute(); err != nil {
		logger.Error("render merge view: %v", err)
	}
}

// fillerRow maps a filler's 1-indexed AfterLine to the 0-indexed
// extmark row the virtual lines hang below. A filler above the first
// line hangs above row 0 instead.
func fillerRow(f align.Filler) int {
	if f.AfterLine < 1 {
		return 0
	}
	return f.AfterLine - 1
}

func fillerOpts(f align.Filler) map[string]any {
	virt := make([][][]any, f.Count)
	for i := range virt {
		virt[i] = [][]any{{"", "MergeViewFiller"}}
	}
	opts := map[string]any{"virt_lines": virt}
	if f.AfterLine < 1 {
		opts["virt_lines_above"] = true
	}
	return opts
}

// viewPayload converts a session and its tracked blocks into the map
// shipped to require('mergeview').on_merge_view.
func viewPayload(s *Session, blocks []tracker.Block) map[string]any {
	conflicts := make([]map[string]any, 0, len(blocks))
	for _, b := range blocks {
		conflicts = append(conflicts, map[string]any{
			"id":       b.ID,
			"base":     rangePayload(b.Base),
			"left":     rangePayload(b.Left),
			"right":    rangePayload(b.Right),
			"resolved": b.Resolved,
		})
	}

	return map[string]any{
		"path":         s.File.Path,
		"baseText":     s.Revs.Base,
		"rightText":    s.Revs.Right,
		"leftFillers":  fillerPayload(s.View.LeftFillers),
		"rightFillers": fillerPayload(s.View.RightFillers),
		"conflicts":    conflicts,
	}
}

func fillerPayload(fillers []align.Filler) []map[string]any {
	out := make([]map[string]any, 0, len(fillers))
	for _, f := range fillers {
		out = append(out, map[string]any{
			"afterLine": f.AfterLine,
			"count":     f.Count,
		})
	}
	return out
}

func rangePayload(r align.LineRange) map[string]any {
	return map[string]any{
		"startLine": r.Start,
		"endLine":   r.End, // exclusive
	}
}

// jumpConflict moves the cursor to the next or previous unresolved
// block in the working buffer.
func (e *Engine) jumpConflict(forward bool) {
	if e.n == nil || e.session == nil {
		return
	}

	var cursor [2]int
	win := nvim.Window(0)
	if err := e.n.Eval(`[line('.'), col('.')]`, &cursor); err != nil {
		logger.Error("read cursor: %v", err)
		return
	}

	var (
		block tracker.Block
		ok    bool
	)
	if forward {
		block, ok = e.tracker.Next(types.SideLeft, cursor[0])
	} else {
		block, ok = e.tracker.Prev(types.SideLeft, cursor[0])
	}
	if !ok {
		logger.Debug("no unresolved conflicts to jump to")
		return
	}

	batch := e.n.NewBatch()
	batch.SetWindowCursor(win, [2]int{block.Left.Start, 0})
	batch.ExecLua("vim.cmd('normal! zz')", nil, nil)
	if err := batch.Execute(); err != nil {
		logger.Error("jump to conflict: %v", err)
	}
}
