package vtengine

// Events (spec §6 "Engine events (to collaborator)") are delivered
// synchronously, in production order (spec §5 ordering guarantees), by
// calling every subscriber for that channel in subscription order. This
// mirrors the teacher's Provider-interface idiom (small single-purpose
// interfaces with a Noop default) rather than a generic interface{} pub-sub:
// each channel has its own typed callback signature.

// DataWriter receives bytes the engine wants sent upstream to the PTY/remote
// program (spec §6 "Byte-stream output", the `data` event). The engine
// never performs I/O itself; this is the only way bytes leave it.
type DataWriter interface {
	WriteData(p []byte)
}

// DataWriterFunc adapts a function to a DataWriter.
type DataWriterFunc func(p []byte)

func (f DataWriterFunc) WriteData(p []byte) { f(p) }

// RowDirtyHandler is called when rows [start,end] (inclusive) change.
type RowDirtyHandler interface {
	RowDirty(start, end int)
}

type RowDirtyHandlerFunc func(start, end int)

func (f RowDirtyHandlerFunc) RowDirty(start, end int) { f(start, end) }

// RefreshHandler is called by the write scheduler (C6) when it wants the
// collaborator to repaint rows [start,end] (inclusive), coalescing whatever
// row-dirty events accumulated during the batch.
type RefreshHandler interface {
	Refresh(start, end int)
}

type RefreshHandlerFunc func(start, end int)

func (f RefreshHandlerFunc) Refresh(start, end int) { f(start, end) }

// BellHandler is called on BEL (0x07).
type BellHandler interface{ Bell() }

type BellHandlerFunc func()

func (f BellHandlerFunc) Bell() { f() }

// TitleHandler is called when OSC 0/1/2 sets the window title.
type TitleHandler interface{ TitleChanged(title string) }

type TitleHandlerFunc func(title string)

func (f TitleHandlerFunc) TitleChanged(title string) { f(title) }

// ManualScrollHandler is called when the user-visible scroll offset
// changes (spec §6 "manual-scroll{position,isBottom}").
type ManualScrollHandler interface{ ManualScroll(position int, isBottom bool) }

type ManualScrollHandlerFunc func(position int, isBottom bool)

func (f ManualScrollHandlerFunc) ManualScroll(position int, isBottom bool) { f(position, isBottom) }

// ApplicationModeHandler receives the bespoke application-mode pass-through
// channel (spec §4.4 AppStart/AppEnd): Start once with the cookie-matched
// params, then zero or more Data calls with raw bytes, then End.
type ApplicationModeHandler interface {
	ApplicationModeStart(params []string)
	ApplicationModeData(p []byte)
	ApplicationModeEnd()
}

// UnknownKeyHandler is called when InputTranslator cannot map a key event
// to a byte sequence (spec §6 "unknown-keydown").
type UnknownKeyHandler interface{ UnknownKey(key KeyEvent) }

type UnknownKeyHandlerFunc func(key KeyEvent)

func (f UnknownKeyHandlerFunc) UnknownKey(key KeyEvent) { f(key) }

// KeydownHandler is called when Engine.KeyDown resolves to a byte sequence
// (spec §6 "key_down" -> "keydown").
type KeydownHandler interface{ Keydown(key KeyEvent) }

type KeydownHandlerFunc func(key KeyEvent)

func (f KeydownHandlerFunc) Keydown(key KeyEvent) { f(key) }

// KeypressHandler is called by Engine.KeyPress (spec §6 "key_press" -> "keypress").
type KeypressHandler interface{ Keypress(key KeyEvent) }

type KeypressHandlerFunc func(key KeyEvent)

func (f KeypressHandlerFunc) Keypress(key KeyEvent) { f(key) }

// KeyHandler is called by both KeyDown and KeyPress, alongside their more
// specific channel (spec §6: both emit "key").
type KeyHandler interface{ Key(key KeyEvent) }

type KeyHandlerFunc func(key KeyEvent)

func (f KeyHandlerFunc) Key(key KeyEvent) { f(key) }

// emitter fans each channel out to its subscriber list, in subscription
// order (spec §5(c): "synchronously ... in the order they were produced").
type emitter struct {
	data         []DataWriter
	rowDirty     []RowDirtyHandler
	refresh      []RefreshHandler
	bell         []BellHandler
	title        []TitleHandler
	manualScroll []ManualScrollHandler
	appMode      []ApplicationModeHandler
	unknownKey   []UnknownKeyHandler
	keydown      []KeydownHandler
	keypress     []KeypressHandler
	key          []KeyHandler
	closed       bool
}

func newEmitter() *emitter { return &emitter{} }

func (e *emitter) onData(h DataWriter)                 { e.data = append(e.data, h) }
func (e *emitter) onRowDirty(h RowDirtyHandler)         { e.rowDirty = append(e.rowDirty, h) }
func (e *emitter) onRefresh(h RefreshHandler)           { e.refresh = append(e.refresh, h) }
func (e *emitter) onBell(h BellHandler)                 { e.bell = append(e.bell, h) }
func (e *emitter) onTitle(h TitleHandler)               { e.title = append(e.title, h) }
func (e *emitter) onManualScroll(h ManualScrollHandler) { e.manualScroll = append(e.manualScroll, h) }
func (e *emitter) onAppMode(h ApplicationModeHandler)   { e.appMode = append(e.appMode, h) }
func (e *emitter) onUnknownKey(h UnknownKeyHandler)     { e.unknownKey = append(e.unknownKey, h) }
func (e *emitter) onKeydown(h KeydownHandler)           { e.keydown = append(e.keydown, h) }
func (e *emitter) onKeypress(h KeypressHandler)         { e.keypress = append(e.keypress, h) }
func (e *emitter) onKey(h KeyHandler)                   { e.key = append(e.key, h) }

func (e *emitter) emitData(p []byte) {
	if e.closed || len(p) == 0 {
		return
	}
	for _, h := range e.data {
		h.WriteData(p)
	}
}

func (e *emitter) emitRowDirty(start, end int) {
	if e.closed {
		return
	}
	for _, h := range e.rowDirty {
		h.RowDirty(start, end)
	}
}

func (e *emitter) emitRefresh(start, end int) {
	if e.closed {
		return
	}
	for _, h := range e.refresh {
		h.Refresh(start, end)
	}
}

func (e *emitter) emitBell() {
	if e.closed {
		return
	}
	for _, h := range e.bell {
		h.Bell()
	}
}

func (e *emitter) emitTitle(title string) {
	if e.closed {
		return
	}
	for _, h := range e.title {
		h.TitleChanged(title)
	}
}

func (e *emitter) emitManualScroll(position int, isBottom bool) {
	if e.closed {
		return
	}
	for _, h := range e.manualScroll {
		h.ManualScroll(position, isBottom)
	}
}

func (e *emitter) emitAppModeStart(params []string) {
	if e.closed {
		return
	}
	for _, h := range e.appMode {
		h.ApplicationModeStart(params)
	}
}

func (e *emitter) emitAppModeData(p []byte) {
	if e.closed {
		return
	}
	for _, h := range e.appMode {
		h.ApplicationModeData(p)
	}
}

func (e *emitter) emitAppModeEnd() {
	if e.closed {
		return
	}
	for _, h := range e.appMode {
		h.ApplicationModeEnd()
	}
}

func (e *emitter) emitUnknownKey(key KeyEvent) {
	if e.closed {
		return
	}
	for _, h := range e.unknownKey {
		h.UnknownKey(key)
	}
}

func (e *emitter) emitKeydown(key KeyEvent) {
	if e.closed {
		return
	}
	for _, h := range e.keydown {
		h.Keydown(key)
	}
}

func (e *emitter) emitKeypress(key KeyEvent) {
	if e.closed {
		return
	}
	for _, h := range e.keypress {
		h.Keypress(key)
	}
}

func (e *emitter) emitKey(key KeyEvent) {
	if e.closed {
		return
	}
	for _, h := range e.key {
		h.Key(key)
	}
}

// close makes every subsequent emit a no-op (spec §5 "destroy() ... clears
// subscribers, and renders further write/handler calls no-ops").
func (e *emitter) close() {
	e.closed = true
	e.data, e.rowDirty, e.refresh, e.bell = nil, nil, nil, nil
	e.title, e.manualScroll, e.appMode, e.unknownKey = nil, nil, nil, nil
	e.keydown, e.keypress, e.key = nil, nil, nil
}
