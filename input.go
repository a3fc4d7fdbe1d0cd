package vtengine

import (
	"strconv"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// KeyEvent is the input InputTranslator (C7) accepts: a tcell key event plus
// the printable rune tcell already decoded for us (spec §4.6 "Input
// translator"). Mouse events are translated separately by TranslateMouse.
type KeyEvent struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// MouseEvent is the input TranslateMouse accepts (spec §4.6 "mouse
// reporting"). Buttons is the set of buttons currently held; Release is true
// on a button-up transition (tcell reports release as "no buttons held").
type MouseEvent struct {
	X, Y    int // 0-based cell coordinates
	Buttons tcell.ButtonMask
	Mod     tcell.ModMask
	Release bool
}

// TranslateKey maps a key event to the byte sequence it produces on the wire
// (spec §4.6), honoring appCursor (DECCKM) for the arrow/Home/End family.
// appKeypad (DECKPAM) does not change any mapping: there are no
// numeric-keypad cases. ok is false when no mapping exists and the engine
// should emit unknown-keydown instead.
func TranslateKey(ev KeyEvent, appCursor, appKeypad bool) (seq []byte, ok bool) {
	switch ev.Key {
	case tcell.KeyRune:
		return []byte(string(ev.Rune)), true
	case tcell.KeyEnter:
		return []byte{'\r'}, true
	case tcell.KeyTab:
		return []byte{'\t'}, true
	case tcell.KeyBacktab:
		return []byte("\x1b[Z"), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return []byte{0x7F}, true
	case tcell.KeyEscape:
		return []byte{0x1B}, true
	case tcell.KeyUp:
		return arrowSeq('A', appCursor), true
	case tcell.KeyDown:
		return arrowSeq('B', appCursor), true
	case tcell.KeyRight:
		return arrowSeq('C', appCursor), true
	case tcell.KeyLeft:
		return arrowSeq('D', appCursor), true
	case tcell.KeyHome:
		return arrowSeq('H', appCursor), true
	case tcell.KeyEnd:
		return arrowSeq('F', appCursor), true
	case tcell.KeyInsert:
		return []byte("\x1b[2~"), true
	case tcell.KeyDelete:
		return []byte("\x1b[3~"), true
	case tcell.KeyPgUp:
		return []byte("\x1b[5~"), true
	case tcell.KeyPgDn:
		return []byte("\x1b[6~"), true
	case tcell.KeyF1:
		return []byte("\x1bOP"), true
	case tcell.KeyF2:
		return []byte("\x1bOQ"), true
	case tcell.KeyF3:
		return []byte("\x1bOR"), true
	case tcell.KeyF4:
		return []byte("\x1bOS"), true
	case tcell.KeyF5:
		return []byte("\x1b[15~"), true
	case tcell.KeyF6:
		return []byte("\x1b[17~"), true
	case tcell.KeyF7:
		return []byte("\x1b[18~"), true
	case tcell.KeyF8:
		return []byte("\x1b[19~"), true
	case tcell.KeyF9:
		return []byte("\x1b[20~"), true
	case tcell.KeyF10:
		return []byte("\x1b[21~"), true
	case tcell.KeyF11:
		return []byte("\x1b[23~"), true
	case tcell.KeyF12:
		return []byte("\x1b[24~"), true
	}

	if ev.Key >= tcell.KeyCtrlA && ev.Key <= tcell.KeyCtrlZ {
		return []byte{byte(ev.Key)}, true
	}

	return nil, false
}

// arrowSeq picks the cursor-key introducer: ESC O x in application-cursor
// mode (DECCKM set), ESC [ x otherwise (spec §4.6).
func arrowSeq(final byte, appCursor bool) []byte {
	if appCursor {
		return []byte{0x1B, 'O', final}
	}
	return []byte{0x1B, '[', final}
}

// TranslateMouse encodes a mouse event per the active reporting mode (spec
// §4.6 "mouse reporting"): SGR, urxvt, and UTF-8 coordinate encodings each
// alter the wire form when their mode bit is set; the default is the
// legacy X10-ish byte form. ok is false when no mouse mode is enabled.
func TranslateMouse(ev MouseEvent, modes Mode) (seq []byte, ok bool) {
	if !modes.has(ModeMouseX10) && !modes.has(ModeMouseVT200) &&
		!modes.has(ModeMouseButtonEvent) && !modes.has(ModeMouseAnyEvent) {
		return nil, false
	}

	cb := mouseButtonCode(ev)

	switch {
	case modes.has(ModeMouseSGR):
		final := byte('M')
		if ev.Release {
			final = 'm'
		}
		return []byte(sgrMouseSeq(cb, ev.X+1, ev.Y+1, final)), true

	case modes.has(ModeMouseURXVT):
		b := cb
		if ev.Release {
			b = 3
		}
		seq := "\x1b[" + strconv.Itoa(b) + ";" + strconv.Itoa(ev.X+1) + ";" + strconv.Itoa(ev.Y+1) + "M"
		return []byte(seq), true

	case modes.has(ModeMouseUTF8):
		b := cb + 32
		if ev.Release {
			b = 3 + 32
		}
		buf := []byte{0x1B, '[', 'M', byte(b)}
		buf = utf8.AppendRune(buf, rune(ev.X+1+32))
		buf = utf8.AppendRune(buf, rune(ev.Y+1+32))
		return buf, true

	default:
		// Legacy encoding adds 32 to each field and caps at byte 255 (spec §4.6).
		b := cb + 32
		if ev.Release {
			b = 3 + 32
		}
		x := clampByteCoord(ev.X + 1 + 32)
		y := clampByteCoord(ev.Y + 1 + 32)
		return []byte{0x1B, '[', 'M', byte(b), x, y}, true
	}
}

func mouseButtonCode(ev MouseEvent) int {
	code := 0
	switch {
	case ev.Buttons&tcell.Button1 != 0:
		code = 0
	case ev.Buttons&tcell.Button2 != 0:
		code = 1
	case ev.Buttons&tcell.Button3 != 0:
		code = 2
	case ev.Buttons&tcell.WheelUp != 0:
		code = 64
	case ev.Buttons&tcell.WheelDown != 0:
		code = 65
	}
	if ev.Mod&tcell.ModShift != 0 {
		code |= 4
	}
	if ev.Mod&tcell.ModAlt != 0 {
		code |= 8
	}
	if ev.Mod&tcell.ModCtrl != 0 {
		code |= 16
	}
	return code
}

func sgrMouseSeq(cb, x, y int, final byte) string {
	return "\x1b[<" + strconv.Itoa(cb) + ";" + strconv.Itoa(x) + ";" + strconv.Itoa(y) + string(final)
}

func clampByteCoord(v int) byte {
	if v > 255 {
		return 255
	}
	if v < 0 {
		return 0
	}
	return byte(v)
}
