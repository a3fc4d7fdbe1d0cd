package vtengine

// Row is an ordered sequence of exactly Cols cells (spec §3). Wrapped
// records whether the row ended because a printable wrapped past the right
// margin (true) or because of an explicit newline (false); readers use it
// to decide whether two physical rows are one logical line.
type Row struct {
	Cells   []Cell
	Wrapped bool
}

// NewRow returns a row of cols blank cells using style.
func NewRow(cols int, style Style) Row {
	cells := make([]Cell, cols)
	blank := BlankCell(style)
	for i := range cells {
		cells[i] = blank
	}
	return Row{Cells: cells}
}

// Clone returns a deep copy (cells is a value slice, but Clone documents the
// intent and protects against aliasing when a Row is handed to scrollback).
func (r Row) Clone() Row {
	cells := make([]Cell, len(r.Cells))
	copy(cells, r.Cells)
	return Row{Cells: cells, Wrapped: r.Wrapped}
}

// ClearRange resets cells [start, end) to blanks of style.
func (r *Row) ClearRange(start, end int, style Style) {
	if start < 0 {
		start = 0
	}
	if end > len(r.Cells) {
		end = len(r.Cells)
	}
	blank := BlankCell(style)
	for i := start; i < end; i++ {
		r.Cells[i] = blank
	}
}

// InsertBlanks splices n blank cells at col, shifting cells right and
// dropping whatever falls off the right edge (spec §4.2 InsertBlanks / ICH).
func (r *Row) InsertBlanks(col, n int, style Style) {
	cols := len(r.Cells)
	if col < 0 || col >= cols || n <= 0 {
		return
	}
	if n > cols-col {
		n = cols - col
	}
	copy(r.Cells[col+n:cols], r.Cells[col:cols-n])
	blank := BlankCell(style)
	for i := col; i < col+n; i++ {
		r.Cells[i] = blank
	}
}

// DeleteChars removes n cells at col, shifting remaining cells left and
// filling the vacated right edge with style (spec §4.2 DeleteChars / DCH).
func (r *Row) DeleteChars(col, n int, style Style) {
	cols := len(r.Cells)
	if col < 0 || col >= cols || n <= 0 {
		return
	}
	if n > cols-col {
		n = cols - col
	}
	copy(r.Cells[col:cols-n], r.Cells[col+n:cols])
	blank := BlankCell(style)
	for i := cols - n; i < cols; i++ {
		r.Cells[i] = blank
	}
}

// Resize returns a new row of width cols, preserving existing content at
// the left and padding/truncating on the right.
func (r Row) Resize(cols int, style Style) Row {
	cells := make([]Cell, cols)
	blank := BlankCell(style)
	for i := range cells {
		if i < len(r.Cells) {
			cells[i] = r.Cells[i]
		} else {
			cells[i] = blank
		}
	}
	return Row{Cells: cells, Wrapped: r.Wrapped && cols >= len(r.Cells)}
}

// text renders the row as a string, skipping wide-spacer cells and trimming
// trailing blanks (spec LineContent convenience, grounded on teacher's
// Buffer.LineContent, which does the same last-non-space scan).
func (r Row) text() string {
	lastNonBlank := -1
	for i := len(r.Cells) - 1; i >= 0; i-- {
		c := r.Cells[i]
		if c.Char != ' ' && c.Char != 0 && !c.IsWideSpacer() {
			lastNonBlank = i
			break
		}
	}
	if lastNonBlank < 0 {
		return ""
	}

	runes := make([]rune, 0, lastNonBlank+1)
	for _, c := range r.Cells[:lastNonBlank+1] {
		if c.IsWideSpacer() {
			continue
		}
		if c.Char == 0 {
			runes = append(runes, ' ')
		} else {
			runes = append(runes, c.Char)
		}
	}
	return string(runes)
}
