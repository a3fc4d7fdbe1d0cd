package vtengine

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
)

// Engine is the sole implementation of Sink.
var _ Sink = (*Engine)(nil)

// Position is a zero-based (row, col) grid coordinate.
type Position struct {
	Row, Col int
}

// Selection is a stream-wise text region, normalized so Start
// is always before or equal to End (spec §4.8 "Selection").
type Selection struct {
	Start, End Position
	Active     bool
}

// Engine is the public controller (C9): it owns the primary and alternate
// screens, the escape-sequence parser, the write scheduler, and the event
// emitter, and is the sole implementation of Sink. All exported methods are
// safe for concurrent use by readers (Cell, CursorPos, String, ...); Write
// itself is expected to be driven from a single goroutine, matching how a
// PTY reader pump is normally structured.
type Engine struct {
	mu sync.RWMutex

	cols, rows int
	sbCap      int
	savedCols  int // DECCOLM (?3): cols to restore to when 132-col mode is reset

	termName       string
	physicalScroll bool
	convertEOL     bool

	primary *Screen
	alt     *Screen
	active  *Screen
	onAlt   bool

	parser *Parser
	sched  *scheduler
	ev     *emitter

	palette *Palette

	charsets [4]Charset
	gl, gr   int

	sgr   Style
	modes Mode

	title      string
	titleStack []string

	selection Selection

	appCookie string

	lastPrintedRune rune // CSI b (REP)

	debug    bool
	warnings []Warning
}

// Option configures an Engine during construction.
type Option func(*Engine)

// WithSize sets the terminal dimensions. Values <= 0 fall back to 24x80.
func WithSize(rows, cols int) Option {
	return func(e *Engine) {
		if rows > 0 {
			e.rows = rows
		}
		if cols > 0 {
			e.cols = cols
		}
	}
}

// WithScrollback sets the primary buffer's scrollback capacity.
func WithScrollback(cap int) Option {
	return func(e *Engine) { e.sbCap = cap }
}

// WithPalette overrides the default 256-color palette.
func WithPalette(p *Palette) Option {
	return func(e *Engine) { e.palette = p }
}

// WithAppCookie sets the shared secret that gates AppStart application mode
// (spec §4.4 "AppStart"). An empty cookie (the default) disables it.
func WithAppCookie(cookie string) Option {
	return func(e *Engine) { e.appCookie = cookie }
}

// WithTermName sets the identity DA1/DA2 report (spec §6 "Response
// sequences emitted back"). Recognized values are "xterm" (the default),
// "rxvt", "screen", and "linux"; anything else is treated like "xterm".
func WithTermName(name string) Option {
	return func(e *Engine) { e.termName = name }
}

// WithPhysicalScroll selects how much of the viewport a scroll-up marks
// dirty: only the scrolled band when on, the whole viewport when off (the
// default). Row storage and scrollback handling are the same in both modes;
// departing rows go to the scrollback either way.
func WithPhysicalScroll(on bool) Option {
	return func(e *Engine) { e.physicalScroll = on }
}

// WithConvertEOL sets the initial LNM state (ModeLineFeedNewLine) so a bare
// line feed also returns to column 0, as if every LF were CR LF. A
// subsequent CSI 20h/20l (LNM) can still override it at runtime.
func WithConvertEOL(on bool) Option {
	return func(e *Engine) { e.convertEOL = on }
}

// WithDataWriter subscribes h to the byte-stream-output channel.
func WithDataWriter(h DataWriter) Option {
	return func(e *Engine) { e.ev.onData(h) }
}

// WithBell subscribes h to the bell channel.
func WithBell(h BellHandler) Option {
	return func(e *Engine) { e.ev.onBell(h) }
}

// WithTitle subscribes h to the title-change channel.
func WithTitle(h TitleHandler) Option {
	return func(e *Engine) { e.ev.onTitle(h) }
}

// WithRowDirty subscribes h to the row-dirty channel.
func WithRowDirty(h RowDirtyHandler) Option {
	return func(e *Engine) { e.ev.onRowDirty(h) }
}

// WithRefresh subscribes h to the coalesced-refresh channel.
func WithRefresh(h RefreshHandler) Option {
	return func(e *Engine) { e.ev.onRefresh(h) }
}

// WithManualScroll subscribes h to the manual-scroll channel.
func WithManualScroll(h ManualScrollHandler) Option {
	return func(e *Engine) { e.ev.onManualScroll(h) }
}

// WithApplicationMode subscribes h to the application-mode pass-through channel.
func WithApplicationMode(h ApplicationModeHandler) Option {
	return func(e *Engine) { e.ev.onAppMode(h) }
}

// WithUnknownKey subscribes h to the unknown-keydown channel.
func WithUnknownKey(h UnknownKeyHandler) Option {
	return func(e *Engine) { e.ev.onUnknownKey(h) }
}

// WithKeydown subscribes h to the keydown channel (spec §6 "key_down").
func WithKeydown(h KeydownHandler) Option {
	return func(e *Engine) { e.ev.onKeydown(h) }
}

// WithKeypress subscribes h to the keypress channel (spec §6 "key_press").
func WithKeypress(h KeypressHandler) Option {
	return func(e *Engine) { e.ev.onKeypress(h) }
}

// WithKey subscribes h to the key channel, fired by both KeyDown and
// KeyPress (spec §6: both "emit ... key").
func WithKey(h KeyHandler) Option {
	return func(e *Engine) { e.ev.onKey(h) }
}

// New creates an Engine with the given options, defaulting to 24x80 with
// wrap and cursor-visible set and a 1000-line scrollback.
func New(opts ...Option) *Engine {
	e := &Engine{
		cols:     80,
		rows:     24,
		sbCap:    1000,
		termName: "xterm",
		ev:       newEmitter(),
		gl:       0,
		gr:       1,
		modes:    ModeWrap | ModeCursorVisible,
		charsets: [4]Charset{CharsetASCII, CharsetASCII, CharsetASCII, CharsetASCII},
	}
	for _, o := range opts {
		o(e)
	}
	if e.palette == nil {
		e.palette = NewPalette(nil)
	}
	if e.convertEOL {
		e.modes |= ModeLineFeedNewLine
	}
	e.sgr = DefaultStyle()
	e.savedCols = e.cols

	e.primary = NewScreen(e.rows, e.cols, e.sbCap, e.physicalScroll, e.sgr)
	e.alt = NewScreen(e.rows, e.cols, 0, e.physicalScroll, e.sgr)
	e.active = e.primary

	e.parser = NewParser(e, e.appCookie)
	e.sched = newScheduler(e.parser, e.takeDirtyLocked, e.flushRefresh)

	return e
}

func (e *Engine) takeDirtyLocked() (int, int, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active.TakeDirty()
}

// flushRefresh is the scheduler's per-yield callback. RowDirty and Refresh
// share one underlying dirty-range tracker (screen.go's dirtyRange), so both
// fire together here rather than RowDirty being instrumented at every
// individual mutation site, which would just duplicate the scheduler's own
// batching.
func (e *Engine) flushRefresh(start, end int) {
	e.ev.emitRowDirty(start, end)
	e.ev.emitRefresh(start, end)
}

// Write feeds raw bytes through the parser (spec §4.5). It implements
// io.Writer.
func (e *Engine) Write(data []byte) (int, error) {
	e.mu.RLock()
	closed := e.ev.closed
	e.mu.RUnlock()
	if closed {
		return len(data), nil
	}
	e.sched.Submit(data)
	return len(data), nil
}

// WriteString is a convenience wrapper around Write.
func (e *Engine) WriteString(s string) (int, error) {
	return e.Write([]byte(s))
}

// Rows returns the terminal's row count.
func (e *Engine) Rows() int { e.mu.RLock(); defer e.mu.RUnlock(); return e.rows }

// Cols returns the terminal's column count.
func (e *Engine) Cols() int { e.mu.RLock(); defer e.mu.RUnlock(); return e.cols }

// Cell returns a copy of the cell at (row, col) in the visible viewport.
func (e *Engine) Cell(row, col int) Cell {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if c := e.active.Cell(row, col); c != nil {
		return *c
	}
	return Cell{}
}

// CursorPos returns the cursor's current (row, col).
func (e *Engine) CursorPos() (row, col int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active.y, e.active.x
}

// CursorVisible reports whether DECTCEM is set.
func (e *Engine) CursorVisible() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.modes.has(ModeCursorVisible)
}

// Title returns the current window title (OSC 0/1/2).
func (e *Engine) Title() string { e.mu.RLock(); defer e.mu.RUnlock(); return e.title }

// HasMode reports whether the given mode bit is currently set.
func (e *Engine) HasMode(m Mode) bool { e.mu.RLock(); defer e.mu.RUnlock(); return e.modes.has(m) }

// Palette returns the engine's color palette.
func (e *Engine) Palette() *Palette { e.mu.RLock(); defer e.mu.RUnlock(); return e.palette }

// IsAlternateScreen reports whether the alternate buffer is active.
func (e *Engine) IsAlternateScreen() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.onAlt
}

// ScrollRegion returns the current scroll region as [top, bottom).
func (e *Engine) ScrollRegion() (top, bottom int) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active.scrollTop, e.active.scrollBottom
}

// Resize changes the terminal geometry, preserving content at the top-left
// (spec §4.7). Both buffers are resized; the inactive one simply carries no
// visible effect until an alt-screen swap brings it back.
func (e *Engine) Resize(rows, cols int) {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.resizeLocked(rows, cols)
	if !e.modes.has(ModeColumn132) {
		e.savedCols = cols
	}
}

func (e *Engine) resizeLocked(rows, cols int) {
	e.rows, e.cols = rows, cols
	e.primary.Resize(rows, cols, e.sgr)
	e.alt.Resize(rows, cols, e.sgr)
}

// ScrollbackLen returns the number of lines in the primary buffer's scrollback.
func (e *Engine) ScrollbackLen() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.primary.ScrollbackLen()
}

// ScrollbackLine returns scrollback row index (0 = oldest) from the primary buffer.
func (e *Engine) ScrollbackLine(index int) (Row, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.primary.ScrollbackLine(index)
}

// ClearScrollback discards all scrollback lines.
func (e *Engine) ClearScrollback() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.primary.ClearScrollback()
}

// ScrollView moves the primary buffer's display offset (spec §6
// "manual-scroll"), emitting a manual-scroll event, and returns the result.
func (e *Engine) ScrollView(delta int) (position int, isBottom bool) {
	e.mu.Lock()
	position, isBottom = e.primary.ScrollView(delta)
	e.mu.Unlock()
	e.ev.emitManualScroll(position, isBottom)
	return position, isBottom
}

// IsWrapped reports whether the viewport row y ended via a wrap rather than
// an explicit newline.
func (e *Engine) IsWrapped(y int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if r := e.active.Row(y); r != nil {
		return r.Wrapped
	}
	return false
}

// SetSelection marks [start,end] as the active selection, normalizing order.
func (e *Engine) SetSelection(start, end Position) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if start.Row > end.Row || (start.Row == end.Row && start.Col > end.Col) {
		start, end = end, start
	}
	e.selection = Selection{Start: start, End: end, Active: true}
}

// ClearSelection deactivates the current selection.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selection.Active = false
}

// GetSelection returns the current selection state.
func (e *Engine) GetSelection() Selection {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selection
}

// IsSelected reports whether (row, col) falls within the active selection.
func (e *Engine) IsSelected(row, col int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	sel := e.selection
	if !sel.Active {
		return false
	}
	pos := Position{Row: row, Col: col}
	if pos.Row < sel.Start.Row || pos.Row > sel.End.Row {
		return false
	}
	if pos.Row == sel.Start.Row && pos.Col < sel.Start.Col {
		return false
	}
	if pos.Row == sel.End.Row && pos.Col > sel.End.Col {
		return false
	}
	return true
}

// GetSelectedText renders the active selection as plain text, one line per row.
func (e *Engine) GetSelectedText() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	sel := e.selection
	if !sel.Active {
		return ""
	}
	var out []byte
	for y := sel.Start.Row; y <= sel.End.Row; y++ {
		r := e.active.Row(y)
		if r == nil {
			continue
		}
		from, to := 0, len(r.Cells)
		if y == sel.Start.Row {
			from = sel.Start.Col
		}
		if y == sel.End.Row {
			to = sel.End.Col + 1
		}
		if from < 0 {
			from = 0
		}
		if to > len(r.Cells) {
			to = len(r.Cells)
		}
		if from < to {
			sub := Row{Cells: r.Cells[from:to]}
			out = append(out, []byte(sub.text())...)
		}
		if y != sel.End.Row {
			out = append(out, '\n')
		}
	}
	return string(out)
}

// LineContent returns viewport row y rendered as plain text.
func (e *Engine) LineContent(row int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if r := e.active.Row(row); r != nil {
		return r.text()
	}
	return ""
}

// String renders the entire active viewport as newline-joined text.
func (e *Engine) String() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []byte
	for y := 0; y < e.active.rows; y++ {
		if y > 0 {
			out = append(out, '\n')
		}
		out = append(out, []byte(e.active.viewport[y].text())...)
	}
	return string(out)
}

// Search returns the positions (row, start column) of pattern's occurrences
// in the visible viewport.
func (e *Engine) Search(pattern string) []Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var hits []Position
	if pattern == "" {
		return hits
	}
	for y := 0; y < e.active.rows; y++ {
		line := e.active.viewport[y].text()
		hits = append(hits, findAllPositions(line, pattern, y)...)
	}
	return hits
}

// SearchScrollback is Search over the primary buffer's scrollback history.
func (e *Engine) SearchScrollback(pattern string) []Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var hits []Position
	if pattern == "" {
		return hits
	}
	for i := 0; i < e.primary.ScrollbackLen(); i++ {
		row, ok := e.primary.ScrollbackLine(i)
		if !ok {
			continue
		}
		hits = append(hits, findAllPositions(row.text(), pattern, i)...)
	}
	return hits
}

func findAllPositions(line, pattern string, row int) []Position {
	var hits []Position
	for start := 0; start <= len(line); {
		idx := strings.Index(line[start:], pattern)
		if idx < 0 {
			break
		}
		col := 0
		for _, r := range line[:start+idx] {
			col += runeWidth(r)
		}
		hits = append(hits, Position{Row: row, Col: col})
		start += idx + 1
	}
	return hits
}

// HasDirty reports whether any row has changed since the last TakeDirty
// (grounded on teacher's Buffer.HasDirty).
func (e *Engine) HasDirty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return !e.active.dirty.isEmpty()
}

// DirtyCells returns the positions of every cell in the current dirty row
// range. Unlike the teacher's per-cell dirty list, dirtiness here is tracked
// per row range (spec §4.2's refreshStart/refreshEnd sentinels), so this
// returns every cell in the affected rows rather than only the cells that
// actually changed.
func (e *Engine) DirtyCells() []Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.active.dirty.isEmpty() {
		return nil
	}
	var cells []Position
	for y := e.active.dirty.start; y <= e.active.dirty.end && y < e.active.rows; y++ {
		if y < 0 {
			continue
		}
		for x := 0; x < e.active.cols; x++ {
			cells = append(cells, Position{Row: y, Col: x})
		}
	}
	return cells
}

// ClearDirty discards the current dirty range without emitting a refresh
// (use when a caller has repainted out of band).
func (e *Engine) ClearDirty() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.active.TakeDirty()
}

// Warning is one dropped/unrecognized sequence, recorded when WithDebug is
// set (spec §7: "no error escapes the public API" — debug visibility is
// opt-in and out of band, not a panic or error return).
type Warning struct {
	Kind   string
	Detail string
}

const maxWarnings = 64

// WithDebug enables the bounded warning ring Warnings() reads from.
func WithDebug() Option {
	return func(e *Engine) { e.debug = true }
}

// Warnings returns a copy of the recorded warnings since the last ClearWarnings.
func (e *Engine) Warnings() []Warning {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Warning(nil), e.warnings...)
}

// ClearWarnings discards all recorded warnings.
func (e *Engine) ClearWarnings() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.warnings = nil
}

// KeyDown feeds a key-down event through the input translator (C7, spec §6
// "key_down"). A successful mapping emits data, keydown, and key; a key
// with no mapping emits unknown-keydown instead.
func (e *Engine) KeyDown(ev KeyEvent) {
	e.mu.RLock()
	appCursor := e.modes.has(ModeAppCursor)
	appKeypad := e.modes.has(ModeKeypadApp)
	e.mu.RUnlock()

	seq, ok := TranslateKey(ev, appCursor, appKeypad)
	if !ok {
		e.ev.emitUnknownKey(ev)
		return
	}
	e.ev.emitKeydown(ev)
	e.ev.emitKey(ev)
	e.ev.emitData(seq)
}

// KeyPress feeds a printable-character key-press event (spec §6
// "key_press"): unlike KeyDown it always resolves to bytes, so it always
// emits keypress, key, and data.
func (e *Engine) KeyPress(ch rune, mod tcell.ModMask) {
	ev := KeyEvent{Key: tcell.KeyRune, Rune: ch, Mod: mod}
	e.ev.emitKeypress(ev)
	e.ev.emitKey(ev)
	e.ev.emitData([]byte(string(ch)))
}

// Mouse feeds a mouse event through the input translator (spec §6
// "mouse"), emitting data when some mouse-reporting mode is active.
func (e *Engine) Mouse(ev MouseEvent) {
	e.mu.RLock()
	modes := e.modes
	e.mu.RUnlock()
	if seq, ok := TranslateMouse(ev, modes); ok {
		e.ev.emitData(seq)
	}
}

// Focus feeds a focus in/out event (spec §6 "focus"): emits the DEC focus
// report ESC [I / ESC [O when ModeFocusEvents is set, else does nothing.
func (e *Engine) Focus(focused bool) {
	e.mu.RLock()
	enabled := e.modes.has(ModeFocusEvents)
	e.mu.RUnlock()
	if !enabled {
		return
	}
	if focused {
		e.ev.emitData([]byte("\x1b[I"))
	} else {
		e.ev.emitData([]byte("\x1b[O"))
	}
}

// Close clears all subscribers and renders further writes and handler calls
// no-ops (spec §5 "destroy()").
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.ev.close()
}
