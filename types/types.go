// Package types holds the small set of types shared across the daemon,
// the engine and the git layer.
package types

// Side identifies one of the three texts of a merge.
type Side int

const (
	SideBase Side = iota
	SideLeft
	SideRight
)

func (s Side) String() string {
	switch s {
	case SideBase:
		return "base"
	case SideLeft:
		return "left"
	case SideRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseSide maps the side names used on the Lua boundary. Unknown names
// fall back to SideBase.
func ParseSide(s string) Side {
	switch s {
	case "left", "ours":
		return SideLeft
	case "right", "theirs":
		return SideRight
	default:
		return SideBase
	}
}

// MergeFile describes one conflicted file and where its three revisions
// come from.
type MergeFile struct {
	Path      string // path relative to the repository root
	BaseRev   string // common ancestor revision (stage 1)
	LeftRev   string // ours (stage 2)
	RightRev  string // theirs (stage 3)
	HasStages bool   // true when the index carries conflict stages for Path
}

// Revisions is the content of the three texts of a merge session.
type Revisions struct {
	Base  string
	Left  string
	Right string
}

// Resolution records one accept/discard decision on a conflict block.
type Resolution struct {
	BlockID string
	Taken   Side // side whose lines were taken; SideBase for discard
}
