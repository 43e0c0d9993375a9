// Package text computes the pairwise line diffs the alignment engine
// consumes. All diffing goes through diffmatchpatch: line-level tokens
// first, then a character-level pass with semantic cleanup inside each
// changed region.
package text

import (
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"mergeview/align"
)

// SplitLines splits text by newline and removes the trailing empty
// element if present.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// LineCount reports the number of lines in text, counting a final line
// without a trailing newline.
func LineCount(text string) int {
	return len(SplitLines(text))
}

// LineDiffs computes the line-level diff from original to modified as
// sorted, non-overlapping entries. A deletion immediately followed by
// an insertion is folded into one modification entry carrying
// character-level inner edits; pure deletions and insertions produce
// entries with an empty range on the missing side and no inner edits.
func LineDiffs(original, modified string) []align.LineDiffEntry {
	dmp := diffmatchpatch.New()
	chars1, chars2, lineArray := dmp.DiffLinesToChars(original, modified)
	diffs := dmp.DiffMain(chars1, chars2, false)
	lineDiffs := dmp.DiffCharsToLines(diffs, lineArray)

	var entries []align.LineDiffEntry
	origLine, modLine := 1, 1

	i := 0
	for i < len(lineDiffs) {
		d := lineDiffs[i]
		n := LineCount(d.Text)

		switch d.Type {
		case diffmatchpatch.DiffEqual:
			origLine += n
			modLine += n
			i++

		case diffmatchpatch.DiffDelete:
			if i+1 < len(lineDiffs) && lineDiffs[i+1].Type == diffmatchpatch.DiffInsert {
				ins := lineDiffs[i+1]
				insN := LineCount(ins.Text)
				entries = append(entries, align.LineDiffEntry{
					Original: align.LineRange{Start: origLine, End: origLine + n},
					Modified: align.LineRange{Start: modLine, End: modLine + insN},
					Inner:    charEdits(d.Text, ins.Text, origLine, modLine),
				})
				origLine += n
				modLine += insN
				i += 2
			} else {
				entries = append(entries, align.LineDiffEntry{
					Original: align.LineRange{Start: origLine, End: origLine + n},
					Modified: align.LineRange{Start: modLine, End: modLine},
				})
				origLine += n
				i++
			}

		case diffmatchpatch.DiffInsert:
			entries = append(entries, align.LineDiffEntry{
				Original: align.LineRange{Start: origLine, End: origLine},
				Modified: align.LineRange{Start: modLine, End: modLine + n},
			})
			modLine += n
			i++
		}
	}

	return entries
}

// charEdits computes the character-level edits between the original and
// modified text of one changed region. Positions are absolute in each
// full text: the region's texts start at line origStart / modStart,
// column 1. Adjacent delete and insert runs fold into one mapping.
func charEdits(origText, modText string, origStart, modStart int) []align.RangeMapping {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(origText, modText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var edits []align.RangeMapping
	origPos := align.Position{Line: origStart, Col: 1}
	modPos := align.Position{Line: modStart, Col: 1}

	i := 0
	for i < len(diffs) {
		if diffs[i].Type == diffmatchpatch.DiffEqual {
			origPos = advance(origPos, diffs[i].Text)
			modPos = advance(modPos, diffs[i].Text)
			i++
			continue
		}

		origEnd, modEnd := origPos, modPos
		for i < len(diffs) && diffs[i].Type != diffmatchpatch.DiffEqual {
			if diffs[i].Type == diffmatchpatch.DiffDelete {
				origEnd = advance(origEnd, diffs[i].Text)
			} else {
				modEnd = advance(modEnd, diffs[i].Text)
			}
			i++
		}

		edits = append(edits, align.RangeMapping{
			Original: align.Range{Start: origPos, End: origEnd},
			Modified: align.Range{Start: modPos, End: modEnd},
		})
		origPos, modPos = origEnd, modEnd
	}

	return edits
}

// advance moves a position past the given text. Columns are byte
// offsets within a line.
func advance(p align.Position, text string) align.Position {
	for {
		nl := strings.IndexByte(text, '\n')
		if nl < 0 {
			p.Col += len(text)
			return p
		}
		p.Line++
		p.Col = 1
		text = text[nl+1:]
	}
}
