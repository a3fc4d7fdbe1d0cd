package vtengine

// dirtyRange tracks the smallest row interval touched since the last
// flush, using the +inf/-inf sentinel trick from spec §4.2.
type dirtyRange struct {
	start int
	end   int
}

func newDirtyRange() dirtyRange {
	return dirtyRange{start: 1 << 30, end: -(1 << 30)}
}

func (d *dirtyRange) widen(y int) {
	if y < d.start {
		d.start = y
	}
	if y > d.end {
		d.end = y
	}
}

func (d *dirtyRange) widenRange(from, to int) {
	d.widen(from)
	d.widen(to)
}

func (d dirtyRange) isEmpty() bool { return d.start > d.end }

func (d *dirtyRange) reset() { *d = newDirtyRange() }

// Screen is one screen buffer: the grid, its scrollback (primary buffer
// only — the alternate buffer's scrollback cap is always 0), cursor
// position, scroll region and tab stops (spec §3 "Screen buffer" /
// "Alternate buffer"). SGR template, charset banks and terminal modes live
// one level up in Engine because spec's alt-buffer snapshot is shallow and
// explicitly does not include them.
type Screen struct {
	cols, rows int

	viewport []Row
	sb       *scrollback
	ybase    int
	ydisp    int

	// physicalScroll selects the repaint range of scrollUpRegion: only the
	// scrolled band (true) or the whole viewport (false). It does not change
	// how rows are stored or pushed to scrollback. Configured engine-wide via
	// WithPhysicalScroll.
	physicalScroll bool

	x, y int // cursor, relative to viewport top (spec §3 invariant)

	savedX, savedY int // DECSC/DECRC (spec §4.3: "saves (x,y) only")
	savedValid     bool

	scrollTop, scrollBottom int // [scrollTop, scrollBottom), row indices into viewport

	tabStops []bool

	dirty dirtyRange
}

// NewScreen allocates a blank screen. sbCap is the scrollback capacity (0
// for the alternate buffer).
func NewScreen(rows, cols, sbCap int, physicalScroll bool, style Style) *Screen {
	s := &Screen{
		cols:           cols,
		rows:           rows,
		sb:             newScrollback(sbCap),
		physicalScroll: physicalScroll,
		scrollTop:      0,
		scrollBottom:   rows,
		dirty:          newDirtyRange(),
	}
	s.viewport = make([]Row, rows)
	for i := range s.viewport {
		s.viewport[i] = NewRow(cols, style)
	}
	s.resetTabStops()
	return s
}

func (s *Screen) resetTabStops() {
	s.tabStops = make([]bool, s.cols)
	for i := 0; i < s.cols; i += 8 {
		s.tabStops[i] = true
	}
}

// Row returns the viewport row at y (0 <= y < rows), or nil if out of range.
func (s *Screen) Row(y int) *Row {
	if y < 0 || y >= s.rows {
		return nil
	}
	return &s.viewport[y]
}

// Cell returns a pointer to the cell at (y, x), or nil if out of range.
func (s *Screen) Cell(y, x int) *Cell {
	r := s.Row(y)
	if r == nil || x < 0 || x >= len(r.Cells) {
		return nil
	}
	return &r.Cells[x]
}

// MarkDirty widens the dirty range to include row y.
func (s *Screen) MarkDirty(y int) { s.dirty.widen(y) }

// MarkDirtyRange widens the dirty range to include [from, to].
func (s *Screen) MarkDirtyRange(from, to int) { s.dirty.widenRange(from, to) }

// TakeDirty returns the current dirty range and clears it. ok is false if
// nothing was dirtied.
func (s *Screen) TakeDirty() (start, end int, ok bool) {
	if s.dirty.isEmpty() {
		return 0, 0, false
	}
	start, end = s.dirty.start, s.dirty.end
	s.dirty.reset()
	return start, end, true
}

// scrollUpRegion shifts rows [top, bottom) up by one, evicting the row at
// top into scrollback when top == 0 (spec §4.2 "Scroll-up algorithm"). It
// returns the evicted-from-scrollback row (if scrollback itself overflowed
// its cap) so the caller can forward it to a collaborator, and whether such
// an eviction happened (only possible when top==0, i.e. the whole screen
// scrolls, not just a sub-region).
func (s *Screen) scrollUpRegion(style Style) (evicted Row, sawScrollback bool) {
	top, bottom := s.scrollTop, s.scrollBottom
	if top >= bottom || bottom > s.rows {
		return Row{}, false
	}

	if top == 0 {
		departing := s.viewport[0].Clone()
		ev, did := s.sb.push(departing)
		s.ybase = s.sb.len()
		if s.ydisp == s.ybase-1 || s.ydisp >= s.ybase {
			s.ydisp = s.ybase
		}
		if did {
			evicted, sawScrollback = ev, true
		}
	}

	copy(s.viewport[top:bottom-1], s.viewport[top+1:bottom])
	s.viewport[bottom-1] = NewRow(s.cols, EraseStyle(style))
	if s.physicalScroll {
		// Physical-scroll mode shifts a fixed grid in place, so only the
		// scrolled band needs repainting (spec §4.2 algorithm 2).
		s.MarkDirtyRange(top, bottom-1)
	} else {
		// Otherwise the whole viewport is marked for repaint.
		s.MarkDirtyRange(0, s.rows-1)
	}
	return evicted, sawScrollback
}

// scrollDownRegion shifts rows [top, bottom) down by one, inserting a blank
// row at top and dropping the row at bottom-1 (spec §4.2 "Scroll-down is
// the mirror" / "Reverse index").
func (s *Screen) scrollDownRegion(style Style) {
	top, bottom := s.scrollTop, s.scrollBottom
	if top >= bottom || bottom > s.rows {
		return
	}
	copy(s.viewport[top+1:bottom], s.viewport[top:bottom-1])
	s.viewport[top] = NewRow(s.cols, EraseStyle(style))
	s.MarkDirtyRange(top, bottom-1)
}

// InsertLines inserts n blank lines at y within [scrollTop,scrollBottom),
// pushing subsequent lines down and dropping overflow (CSI L / IL).
func (s *Screen) InsertLines(y, n int, style Style) {
	top, bottom := y, s.scrollBottom
	if y < s.scrollTop || y >= bottom {
		return
	}
	for i := 0; i < n && bottom-top > 0; i++ {
		copy(s.viewport[top+1:bottom], s.viewport[top:bottom-1])
		s.viewport[top] = NewRow(s.cols, EraseStyle(style))
	}
	s.MarkDirtyRange(top, bottom-1)
}

// DeleteLines removes n lines at y within [scrollTop,scrollBottom), pulling
// subsequent lines up and padding with blanks at the bottom (CSI M / DL).
func (s *Screen) DeleteLines(y, n int, style Style) {
	top, bottom := y, s.scrollBottom
	if y < s.scrollTop || y >= bottom {
		return
	}
	for i := 0; i < n && bottom-top > 0; i++ {
		copy(s.viewport[top:bottom-1], s.viewport[top+1:bottom])
		s.viewport[bottom-1] = NewRow(s.cols, EraseStyle(style))
	}
	s.MarkDirtyRange(top, bottom-1)
}

// ScrollbackLen returns the number of stored scrollback rows.
func (s *Screen) ScrollbackLen() int { return s.sb.len() }

// ScrollbackLine returns scrollback row index (0 = oldest).
func (s *Screen) ScrollbackLine(index int) (Row, bool) { return s.sb.line(index) }

// ClearScrollback discards all scrollback rows and resets ybase/ydisp.
func (s *Screen) ClearScrollback() {
	s.sb.clear()
	s.ybase = 0
	s.ydisp = 0
}

// SetScrollbackCap adjusts scrollback capacity, trimming if needed.
func (s *Screen) SetScrollbackCap(cap int) { s.sb.setCap(cap) }

// ScrollView moves the display offset by delta rows (negative = back into
// history), clamped to [0, ybase]. Returns the resulting offset and whether
// it is at the live bottom (spec §6 "manual-scroll{position,isBottom}").
func (s *Screen) ScrollView(delta int) (position int, isBottom bool) {
	s.ydisp = clampInt(s.ydisp+delta, 0, s.ybase)
	return s.ydisp, s.ydisp == s.ybase
}

// DisplayRow returns the row at display-relative index i (0 <= i < rows),
// resolving into scrollback or viewport depending on ydisp.
func (s *Screen) DisplayRow(i int) Row {
	abs := s.ydisp + i
	if abs < s.ybase {
		if row, ok := s.sb.line(abs); ok {
			return row
		}
		return NewRow(s.cols, DefaultStyle())
	}
	vi := abs - s.ybase
	if vi >= 0 && vi < len(s.viewport) {
		return s.viewport[vi]
	}
	return NewRow(s.cols, DefaultStyle())
}

// Clone returns a copy of the screen's grid, cursor, saved cursor, scroll
// region and tab stops. Scrollback rows are not copied: the copy gets an
// empty scrollback with the same capacity.
func (s *Screen) Clone() *Screen {
	c := &Screen{
		cols: s.cols, rows: s.rows,
		ybase: s.ybase, ydisp: s.ydisp,
		physicalScroll: s.physicalScroll,
		x: s.x, y: s.y,
		savedX: s.savedX, savedY: s.savedY, savedValid: s.savedValid,
		scrollTop: s.scrollTop, scrollBottom: s.scrollBottom,
		dirty: newDirtyRange(),
	}
	c.viewport = make([]Row, len(s.viewport))
	for i, r := range s.viewport {
		c.viewport[i] = r.Clone()
	}
	c.tabStops = make([]bool, len(s.tabStops))
	copy(c.tabStops, s.tabStops)
	c.sb = newScrollback(s.sb.cap)
	return c
}

// Resize changes geometry, preserving content at the top-left and extending
// tab stops (spec §4.7: non-positive dimensions are clamped to 1 by the
// caller before reaching here).
func (s *Screen) Resize(rows, cols int, style Style) {
	newViewport := make([]Row, rows)
	for i := range newViewport {
		if i < len(s.viewport) {
			newViewport[i] = s.viewport[i].Resize(cols, style)
		} else {
			newViewport[i] = NewRow(cols, style)
		}
	}
	s.viewport = newViewport
	s.cols, s.rows = cols, rows

	newTabs := make([]bool, cols)
	copy(newTabs, s.tabStops)
	for i := (len(s.tabStops) + 7) / 8 * 8; i < cols; i += 8 {
		newTabs[i] = true
	}
	s.tabStops = newTabs

	s.scrollTop = 0
	s.scrollBottom = rows
	s.x = clampInt(s.x, 0, cols)
	s.y = clampInt(s.y, 0, rows-1)
	s.dirty = newDirtyRange()
	s.MarkDirtyRange(0, rows-1)
}

// NextTabStop returns the next tab stop column after col, or cols-1 if none.
func (s *Screen) NextTabStop(col int) int {
	for c := col + 1; c < s.cols; c++ {
		if s.tabStops[c] {
			return c
		}
	}
	return s.cols - 1
}

// PrevTabStop returns the previous tab stop column before col, or 0 if none.
func (s *Screen) PrevTabStop(col int) int {
	for c := col - 1; c >= 0; c-- {
		if s.tabStops[c] {
			return c
		}
	}
	return 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
