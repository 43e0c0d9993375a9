package engine

import (
	"mergeview/align"
	"mergeview/logger"
	"mergeview/tracker"
	"mergeview/types"
)

// acceptBlock resolves the conflict block under the cursor. Taking the
// left side keeps the working buffer as is; taking the right side
// replaces the block's lines with the right revision's lines. Either
// way the block is marked resolved and later ranges are re-tracked.
func (e *Engine) acceptBlock(side types.Side) {
	block, ok := e.blockAtCursor()
	if !ok {
		logger.Debug("accept: no unresolved block at cursor")
		return
	}

	if side == types.SideRight {
		lines := e.session.blockLines(types.SideRight, block.Right)
		if !e.replaceBlockLines(block.Left, lines) {
			return
		}
		e.tracker.ApplyEdit(types.SideLeft, block.Left.Start, block.Left.End, len(lines))
		e.tracker.SetRange(block.ID, types.SideLeft, align.LineRange{
			Start: block.Left.Start,
			End:   block.Left.Start + len(lines),
		})
	}

	e.tracker.Resolve(block.ID)
	logger.Info("block %s resolved: took %s", block.ID, side)
	e.notifyResolution(types.Resolution{BlockID: block.ID, Taken: side})
	e.renderView()
}

// discardBlock marks the block at the cursor handled without touching
// the buffer.
func (e *Engine) discardBlock() {
	block, ok := e.blockAtCursor()
	if !ok {
		logger.Debug("discard: no unresolved block at cursor")
		return
	}
	e.tracker.Resolve(block.ID)
	logger.Info("block %s discarded", block.ID)
	e.notifyResolution(types.Resolution{BlockID: block.ID, Taken: types.SideBase})
	e.renderView()
}

// replaceBlockLines swaps the working buffer lines of a block range.
func (e *Engine) replaceBlockLines(r align.LineRange, lines []string) bool {
	replacement := make([][]byte, len(lines))
	for i, l := range lines {
		replacement[i] = []byte(l)
	}

	batch := e.n.NewBatch()
	batch.SetBufferLines(e.buf, r.Start-1, r.End-1, false, replacement)
	if err := batch.Execute(); err != nil {
		logger.Error("replace block lines [%d,%d): %v", r.Start, r.End, err)
		return false
	}
	return true
}

// blockAtCursor finds the unresolved block covering the cursor line in
// the working buffer.
func (e *Engine) blockAtCursor() (blk tracker.Block, ok bool) {
	if e.n == nil || e.session == nil {
		return blk, false
	}

	var cursor [2]int
	if err := e.n.Eval(`[line('.'), col('.')]`, &cursor); err != nil {
		logger.Error("read cursor: %v", err)
		return blk, false
	}
	line := cursor[0]

	for _, b := range e.tracker.Blocks() {
		if b.Resolved {
			continue
		}
		if coversLine(b.Left, line) {
			return b, true
		}
	}
	return blk, false
}

// coversLine reports whether line falls inside r, treating an empty
// range as covering the line it sits on.
func coversLine(r align.LineRange, line int) bool {
	if r.IsEmpty() {
		return line == r.Start || line+1 == r.Start
	}
	return line >= r.Start && line < r.End
}

// notifyResolution tells the Lua side a block was handled.
func (e *Engine) notifyResolution(res types.Resolution) {
	batch := e.n.NewBatch()
	batch.ExecLua(`require('mergeview').on_resolution(...)`, nil, map[string]any{
		"id":    res.BlockID,
		"taken": res.Taken.String(),
	})
	if err := batch.Execute(); err != nil {
		logger.Error("notify resolution: %v", err)
	}
}
