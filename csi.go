package vtengine

import "strconv"

// CSI dispatches the ~40-command CSI table (spec §4.4 "CSI"). It is the
// single largest switch in the engine, mirroring how the spec itself frames
// CSI as "dispatch by final byte" rather than one Sink method per command.
func (e *Engine) CSI(p CSIParams) {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch {
	case p.Postfix == ' ' && p.Final == 'q':
		// DECSCUSR cursor style: accepted, no cursor-shape state is modeled.
		return
	case p.Postfix == '$' && p.Final == 'p':
		// DECRQM mode query: not modeled beyond accept-and-ignore.
		return
	}

	switch p.Final {
	case 'A':
		e.moveCursorBy(-p.ParamClamped(0, 1), 0)
	case 'B', 'e':
		e.moveCursorBy(p.ParamClamped(0, 1), 0)
	case 'C', 'a':
		e.moveCursorBy(0, p.ParamClamped(0, 1))
	case 'D':
		e.moveCursorBy(0, -p.ParamClamped(0, 1))
	case 'E':
		e.moveCursorBy(p.ParamClamped(0, 1), 0)
		e.active.x = 0
	case 'F':
		e.moveCursorBy(-p.ParamClamped(0, 1), 0)
		e.active.x = 0
	case 'G', '`':
		e.setCursorCol(p.ParamClamped(0, 1) - 1)
	case 'H', 'f':
		e.setCursorPos(p.ParamClamped(0, 1)-1, p.ParamClamped(1, 1)-1)
	case 'd':
		e.setCursorRow(p.ParamClamped(0, 1) - 1)
	case 'J':
		e.eraseInDisplay(p.Param(0, 0))
	case 'K':
		e.eraseInLine(p.Param(0, 0))
	case 'L':
		e.active.InsertLines(e.active.y, p.ParamClamped(0, 1), e.sgr)
	case 'M':
		e.active.DeleteLines(e.active.y, p.ParamClamped(0, 1), e.sgr)
	case 'P':
		if row := e.active.Row(e.active.y); row != nil {
			row.DeleteChars(e.active.x, p.ParamClamped(0, 1), e.sgr)
		}
	case 'X':
		if row := e.active.Row(e.active.y); row != nil {
			row.ClearRange(e.active.x, e.active.x+p.ParamClamped(0, 1), EraseStyle(e.sgr))
		}
	case '@':
		if row := e.active.Row(e.active.y); row != nil {
			row.InsertBlanks(e.active.x, p.ParamClamped(0, 1), e.sgr)
		}
	case 'S':
		for i, n := 0, p.ParamClamped(0, 1); i < n; i++ {
			e.active.scrollUpRegion(e.sgr)
		}
	case 'T':
		for i, n := 0, p.ParamClamped(0, 1); i < n; i++ {
			e.active.scrollDownRegion(e.sgr)
		}
	case 'Z':
		for i, n := 0, p.ParamClamped(0, 1); i < n; i++ {
			e.active.x = e.active.PrevTabStop(e.active.x)
		}
	case 'I':
		for i, n := 0, p.ParamClamped(0, 1); i < n; i++ {
			e.active.x = e.active.NextTabStop(e.active.x)
		}
	case 'b':
		e.repeatLastChar(p.ParamClamped(0, 1))
	case 'c':
		e.deviceAttributes(p.Prefix)
	case 'g':
		e.tabClear(p.Param(0, 0))
	case 'h':
		e.setModes(p, true)
	case 'l':
		e.setModes(p, false)
	case 'm':
		e.sgr = applySGR(e.sgr, p.Params, e.palette)
	case 'n':
		e.deviceStatusReport(p.Param(0, 0))
	case 'p':
		if p.Prefix == '!' {
			e.softReset()
		}
	case 'r':
		e.setScrollRegion(p.Param(0, 1), p.Param(1, e.active.rows))
	case 's':
		e.SaveCursorLocked()
	case 'u':
		e.RestoreCursorLocked()
	default:
		// unrecognized final byte: ignore (spec §7).
	}
}

func (e *Engine) moveCursorBy(dRow, dCol int) {
	s := e.active
	s.y = clampInt(s.y+dRow, 0, s.rows-1)
	s.x = clampInt(s.x+dCol, 0, s.cols-1)
}

func (e *Engine) setCursorCol(col int) {
	e.active.x = clampInt(col, 0, e.active.cols-1)
}

func (e *Engine) setCursorRow(row int) {
	top, bottom := 0, e.active.rows
	if e.modes.has(ModeOrigin) {
		top, bottom = e.active.scrollTop, e.active.scrollBottom
		row += e.active.scrollTop
	}
	e.active.y = clampInt(row, top, bottom-1)
}

// setCursorPos implements CUP/HVP, honoring origin mode (spec §4.2).
func (e *Engine) setCursorPos(row, col int) {
	top, bottom := 0, e.active.rows
	if e.modes.has(ModeOrigin) {
		top, bottom = e.active.scrollTop, e.active.scrollBottom
		row += e.active.scrollTop
	}
	e.active.y = clampInt(row, top, bottom-1)
	e.active.x = clampInt(col, 0, e.active.cols-1)
}

// eraseInDisplay implements ED: 0 = cursor-to-end, 1 = start-to-cursor, 2/3 = whole screen.
func (e *Engine) eraseInDisplay(mode int) {
	s := e.active
	style := EraseStyle(e.sgr)
	switch mode {
	case 0:
		if row := s.Row(s.y); row != nil {
			row.ClearRange(s.x, s.cols, style)
		}
		for y := s.y + 1; y < s.rows; y++ {
			s.viewport[y] = NewRow(s.cols, style)
		}
		s.MarkDirtyRange(s.y, s.rows-1)
	case 1:
		for y := 0; y < s.y; y++ {
			s.viewport[y] = NewRow(s.cols, style)
		}
		if row := s.Row(s.y); row != nil {
			row.ClearRange(0, s.x+1, style)
		}
		s.MarkDirtyRange(0, s.y)
	case 2, 3:
		for y := 0; y < s.rows; y++ {
			s.viewport[y] = NewRow(s.cols, style)
		}
		s.MarkDirtyRange(0, s.rows-1)
		if mode == 3 {
			s.ClearScrollback()
		}
	}
}

// eraseInLine implements EL: 0 = cursor-to-end, 1 = start-to-cursor, 2 = whole line.
func (e *Engine) eraseInLine(mode int) {
	s := e.active
	row := s.Row(s.y)
	if row == nil {
		return
	}
	style := EraseStyle(e.sgr)
	switch mode {
	case 0:
		row.ClearRange(s.x, s.cols, style)
	case 1:
		row.ClearRange(0, s.x+1, style)
	case 2:
		row.ClearRange(0, s.cols, style)
	}
	s.MarkDirty(s.y)
}

func (e *Engine) repeatLastChar(n int) {
	if e.lastPrintedRune == 0 {
		return
	}
	for i := 0; i < n; i++ {
		e.printLocked(e.lastPrintedRune)
	}
}

// deviceAttributes replies to DA1 (prefix 0) or DA2 (prefix '>'), varying
// the reported identity by termName (spec §6 "Response sequences emitted
// back", bit-exact for xterm/rxvt/screen/linux).
func (e *Engine) deviceAttributes(prefix byte) {
	if prefix == '>' {
		switch e.termName {
		case "rxvt":
			e.ev.emitData([]byte("\x1b[>85;95;0c"))
		case "screen":
			e.ev.emitData([]byte("\x1b[>83;40003;0c"))
		default:
			e.ev.emitData([]byte("\x1b[>0;276;0c"))
		}
		return
	}
	if e.termName == "linux" {
		e.ev.emitData([]byte("\x1b[?6c"))
		return
	}
	e.ev.emitData([]byte("\x1b[?1;2c"))
}

// tabClear implements TBC: 0 clears the stop at the cursor, 3 clears all.
func (e *Engine) tabClear(mode int) {
	s := e.active
	switch mode {
	case 0:
		if s.x >= 0 && s.x < len(s.tabStops) {
			s.tabStops[s.x] = false
		}
	case 3:
		for i := range s.tabStops {
			s.tabStops[i] = false
		}
	}
}

// setModes implements SM/RM, including DEC private modes (prefix '?').
func (e *Engine) setModes(p CSIParams, on bool) {
	for _, n := range p.Params {
		if p.Prefix == '?' {
			e.setDecMode(n, on)
		} else {
			e.setAnsiMode(n, on)
		}
	}
}

func (e *Engine) setAnsiMode(n int, on bool) {
	switch n {
	case 4:
		e.setMode(ModeInsert, on)
	case 20:
		e.setMode(ModeLineFeedNewLine, on)
	}
}

func (e *Engine) setDecMode(n int, on bool) {
	switch n {
	case 1:
		e.setMode(ModeAppCursor, on)
	case 3:
		e.setColumnMode(on)
	case 6:
		e.setMode(ModeOrigin, on)
	case 7:
		e.setMode(ModeWrap, on)
	case 9:
		e.setMode(ModeMouseX10, on)
	case 25:
		e.setMode(ModeCursorVisible, on)
	case 66:
		e.setMode(ModeKeypadApp, on)
	case 1000:
		e.setMode(ModeMouseVT200, on)
	case 1002:
		e.setMode(ModeMouseButtonEvent, on)
	case 1003:
		e.setMode(ModeMouseAnyEvent, on)
	case 1004:
		e.setMode(ModeFocusEvents, on)
	case 1005:
		e.setMode(ModeMouseUTF8, on)
	case 1006:
		e.setMode(ModeMouseSGR, on)
	case 1015:
		e.setMode(ModeMouseURXVT, on)
	case 47:
		e.setAltScreen(on, false)
	case 1047:
		e.setAltScreen(on, true)
	case 1049:
		if on {
			e.SaveCursorLocked()
		}
		e.setAltScreen(on, true)
		if !on {
			e.RestoreCursorLocked()
		}
	}
}

func (e *Engine) setMode(m Mode, on bool) {
	if on {
		e.modes |= m
	} else {
		e.modes &^= m
	}
}

// setColumnMode implements DECCOLM (CSI ?3h/l, spec §4.3): entering 132-col
// mode saves the current column count and resizes to 132; leaving it
// restores the saved count. Both screens are resized, matching Resize.
func (e *Engine) setColumnMode(on bool) {
	if on == e.modes.has(ModeColumn132) {
		return
	}
	e.setMode(ModeColumn132, on)
	if on {
		e.savedCols = e.cols
		e.resizeLocked(e.rows, 132)
	} else {
		cols := e.savedCols
		if cols <= 0 {
			cols = 80
		}
		e.resizeLocked(e.rows, cols)
	}
}

// setAltScreen switches the active screen. Entering always blanks the
// alternate buffer and homes its cursor, so every entry starts fresh (spec
// §3 "Alternate buffer"). clearOnExit (?1047/?1049) only marks the primary
// screen dirty on the way back.
func (e *Engine) setAltScreen(on, clearOnExit bool) {
	if on == e.onAlt {
		return
	}
	e.onAlt = on
	e.setMode(ModeAltScreen, on)
	if on {
		e.active = e.alt
		for y := range e.alt.viewport {
			e.alt.viewport[y] = NewRow(e.alt.cols, e.sgr)
		}
		e.alt.x, e.alt.y = 0, 0
		e.alt.MarkDirtyRange(0, e.alt.rows-1)
	} else {
		e.active = e.primary
		if clearOnExit {
			e.primary.MarkDirtyRange(0, e.primary.rows-1)
		}
	}
}

// deviceStatusReport implements DSR: Ps 5 reports OK, Ps 6 reports cursor
// position. Both the ANSI and DEC-private (prefix '?') forms reply with the
// identical byte sequence (spec's resolved Open Question).
func (e *Engine) deviceStatusReport(ps int) {
	switch ps {
	case 5:
		e.ev.emitData([]byte("\x1b[0n"))
	case 6:
		row, col := e.active.y+1, e.active.x+1
		e.ev.emitData([]byte("\x1b[" + strconv.Itoa(row) + ";" + strconv.Itoa(col) + "R"))
	}
}

// softReset implements DECSTR (CSI ! p): a lighter reset than RIS that
// leaves scrollback, screen contents and the alternate-screen buffer alone.
func (e *Engine) softReset() {
	e.modes &^= ModeInsert | ModeOrigin
	e.modes |= ModeWrap | ModeCursorVisible
	e.sgr = DefaultStyle()
	e.active.scrollTop, e.active.scrollBottom = 0, e.active.rows
	e.active.savedValid = false
}

// setScrollRegion implements DECSTBM (CSI r), clamping to the screen and
// resetting the cursor to the home position (origin-aware), per spec §4.2.
func (e *Engine) setScrollRegion(top, bottom int) {
	s := e.active
	top = clampInt(top-1, 0, s.rows-1)
	bottom = clampInt(bottom, top+1, s.rows)
	s.scrollTop, s.scrollBottom = top, bottom
	if e.modes.has(ModeOrigin) {
		s.y = top
	} else {
		s.y = 0
	}
	s.x = 0
}

// SaveCursorLocked/RestoreCursorLocked are SaveCursor/RestoreCursor without
// acquiring e.mu, for use from inside CSI (which already holds it) — CSI s/u
// (SCOSC/SCORC) and DECSET ?1049 share this with ESC 7/8.
func (e *Engine) SaveCursorLocked() {
	s := e.active
	s.savedX, s.savedY, s.savedValid = s.x, s.y, true
}

func (e *Engine) RestoreCursorLocked() {
	s := e.active
	if s.savedValid {
		s.x, s.y = s.savedX, s.savedY
	} else {
		s.x, s.y = 0, 0
	}
}

// OSC dispatches OSC ps ; pt sequences (spec §4.4 "OSC"). Only the window
// title family is modeled; anything else is accepted and ignored.
func (e *Engine) OSC(ps int, pt string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch ps {
	case 0, 1, 2:
		e.title = pt
		e.ev.emitTitle(pt)
	}
}

// DCS dispatches DCS prefix Pt ST sequences (spec §4.4 "DCS"). Only DECRQSS
// ($q) is modeled, replying for SGR (m), scroll region (r), DECSCL ("p) and
// DECSCA ("q) requests and with the invalid-request form for anything else;
// other prefixes are accepted and ignored.
func (e *Engine) DCS(prefix, pt string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if prefix != "$q" {
		return
	}
	switch pt {
	case "m":
		e.ev.emitData([]byte("\x1bP1$r" + sgrReportString(e.sgr) + "m\x1b\\"))
	case "r":
		reply := "\x1bP1$r" + strconv.Itoa(e.active.scrollTop+1) + ";" + strconv.Itoa(e.active.scrollBottom) + "r\x1b\\"
		e.ev.emitData([]byte(reply))
	case "\"p":
		e.ev.emitData([]byte("\x1bP1$r61\"p\x1b\\"))
	case "\"q":
		e.ev.emitData([]byte("\x1bP1$r0\"q\x1b\\"))
	default:
		e.ev.emitData([]byte("\x1bP0$r\x1b\\"))
	}
}

// sgrReportString renders style as the CSI parameter list DECRQSS ($q m)
// should echo back, e.g. "0;1;4;38;5;9".
func sgrReportString(s Style) string {
	out := "0"
	if s.Has(FlagBold) {
		out += ";1"
	}
	if s.Has(FlagUnderline) {
		out += ";4"
	}
	if s.Has(FlagBlink) {
		out += ";5"
	}
	if s.Has(FlagInverse) {
		out += ";7"
	}
	if s.Has(FlagInvisible) {
		out += ";8"
	}
	if fg := s.Fg(); fg != ColorDefaultFG {
		out += ";38;5;" + strconv.Itoa(fg)
	}
	if bg := s.Bg(); bg != ColorDefaultBG {
		out += ";48;5;" + strconv.Itoa(bg)
	}
	return out
}
