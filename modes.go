package vtengine

// Mode is a bitmask of terminal behavior flags (spec §3 "Parser state" /
// §4.3 modes table). Multiple modes are active simultaneously.
type Mode uint32

const (
	// ModeInsert is IRM (CSI 4h): printables shift the row right instead of overwriting.
	ModeInsert Mode = 1 << iota
	// ModeAppCursor is DECCKM (CSI ?1h): arrow keys emit ESC O _ instead of ESC [ _.
	ModeAppCursor
	// ModeColumn132 is DECCOLM (CSI ?3h): 132-column mode; resize saves/restores cols.
	ModeColumn132
	// ModeOrigin is DECOM (CSI ?6h): cursor positioning is relative to the scroll region.
	ModeOrigin
	// ModeWrap is DECAWM (CSI ?7h): printables at the right margin wrap to the next row.
	ModeWrap
	// ModeMouseX10 is X10 mouse reporting (CSI ?9h).
	ModeMouseX10
	// ModeMouseVT200 is VT200 mouse reporting: button press/release (CSI ?1000h).
	ModeMouseVT200
	// ModeMouseButtonEvent additionally reports motion while a button is held (CSI ?1002h).
	ModeMouseButtonEvent
	// ModeMouseAnyEvent reports all motion, button held or not (CSI ?1003h).
	ModeMouseAnyEvent
	// ModeFocusEvents emits ESC [I / ESC [O on focus in/out (CSI ?1004h).
	ModeFocusEvents
	// ModeMouseUTF8 selects UTF-8 mouse coordinate encoding (CSI ?1005h).
	ModeMouseUTF8
	// ModeMouseSGR selects SGR mouse encoding (CSI ?1006h).
	ModeMouseSGR
	// ModeMouseURXVT selects urxvt mouse encoding (CSI ?1015h).
	ModeMouseURXVT
	// ModeCursorVisible is DECTCEM (CSI ?25h).
	ModeCursorVisible
	// ModeAltScreen tracks whether the alternate screen is active (CSI ?47/?1047/?1049h).
	ModeAltScreen
	// ModeKeypadApp is DECKPAM/DECKPNM (ESC = / ESC >, also CSI ?66h): numpad emits function-key sequences.
	ModeKeypadApp
	// ModeLineFeedNewLine is LNM (CSI 20h): line feed also returns to column 0.
	ModeLineFeedNewLine
)

func (m Mode) has(flag Mode) bool { return m&flag != 0 }
