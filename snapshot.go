package vtengine

import "fmt"

// SnapshotDetail controls how much per-cell detail Snapshot includes.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailFull returns full cell-by-cell data.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot is a complete point-in-time capture of the visible viewport,
// adapted from the teacher's snapshot.go with image/sixel segments and
// font-driven styling stripped (both non-goals here).
type Snapshot struct {
	Size   SnapshotSize   `json:"size"`
	Cursor SnapshotCursor `json:"cursor"`
	Lines  []SnapshotLine `json:"lines"`
}

type SnapshotSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

type SnapshotCursor struct {
	Row     int  `json:"row"`
	Col     int  `json:"col"`
	Visible bool `json:"visible"`
}

type SnapshotLine struct {
	Text    string         `json:"text"`
	Wrapped bool           `json:"wrapped"`
	Cells   []SnapshotCell `json:"cells,omitempty"`
}

type SnapshotCell struct {
	Char string `json:"char"`
	Fg   string `json:"fg"`
	Bg   string `json:"bg"`
	Attrs string `json:"attrs,omitempty"`
}

// Snapshot captures the active viewport. detail == SnapshotDetailFull
// additionally populates each line's Cells.
func (e *Engine) Snapshot(detail SnapshotDetail) Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap := Snapshot{
		Size:   SnapshotSize{Rows: e.active.rows, Cols: e.active.cols},
		Cursor: SnapshotCursor{Row: e.active.y, Col: e.active.x, Visible: e.modes.has(ModeCursorVisible)},
		Lines:  make([]SnapshotLine, e.active.rows),
	}

	for y := 0; y < e.active.rows; y++ {
		row := e.active.viewport[y]
		line := SnapshotLine{Text: row.text(), Wrapped: row.Wrapped}
		if detail == SnapshotDetailFull {
			line.Cells = make([]SnapshotCell, len(row.Cells))
			for x, c := range row.Cells {
				line.Cells[x] = SnapshotCell{
					Char:  string(c.Char),
					Fg:    colorName(c.Style.Fg()),
					Bg:    colorName(c.Style.Bg()),
					Attrs: attrString(c.Style),
				}
			}
		}
		snap.Lines[y] = line
	}
	return snap
}

func colorName(index int) string {
	switch index {
	case ColorDefaultFG:
		return "default-fg"
	case ColorDefaultBG:
		return "default-bg"
	default:
		return fmt.Sprintf("%d", index)
	}
}

func attrString(s Style) string {
	var out string
	add := func(has bool, name string) {
		if !has {
			return
		}
		if out != "" {
			out += ","
		}
		out += name
	}
	add(s.Has(FlagBold), "bold")
	add(s.Has(FlagUnderline), "underline")
	add(s.Has(FlagBlink), "blink")
	add(s.Has(FlagInverse), "inverse")
	add(s.Has(FlagInvisible), "invisible")
	return out
}
