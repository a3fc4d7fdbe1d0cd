package vtengine

import "unicode/utf8"

// parserState is one of the 11 states from spec §2/§4.4.
type parserState int

const (
	stateNormal parserState = iota
	stateEscape
	stateCSI
	stateOSC
	stateDCS
	stateCharset
	stateIgnore
	stateAppStart
	stateAppEnd
	stateDecHash
	stateConsumeOne
)

// CSIParams is the fully-accumulated CSI sequence handed to Sink.CSI.
type CSIParams struct {
	Params  []int
	Prefix  byte // '?', '>', '!', or 0
	Postfix byte // '$', '"', ' ', '\'', or 0
	Final   byte
}

// Param returns Params[i] if present, else def. Per spec §4.4 a parameter
// of 0 where the command's default is 1 is clamped by the caller, not here
// — Param returns the raw value.
func (c CSIParams) Param(i, def int) int {
	if i < 0 || i >= len(c.Params) {
		return def
	}
	return c.Params[i]
}

// ParamClamped is Param but never returns less than 1, for the many CSI
// commands whose default and minimum are both 1 (spec §4.4 "Tie-breaks").
func (c CSIParams) ParamClamped(i, def int) int {
	v := c.Param(i, def)
	if v < 1 {
		return 1
	}
	return v
}

// Sink receives semantic actions dispatched by Parser as it consumes bytes.
// Engine is the only implementation; splitting the interface out keeps the
// state machine (this file) independent of grid/cursor mutation (screen.go
// / engine.go), mirroring the teacher's Handler-interface idiom.
type Sink interface {
	Print(r rune)

	Bell()
	LineFeed()
	VerticalTab()
	FormFeed()
	CarriageReturn()
	Backspace()
	HorizontalTab()
	ShiftOut()
	ShiftIn()

	Index()
	NextLineOp()
	ReverseIndexOp()
	SaveCursor()
	RestoreCursor()
	SetKeypadApplication(on bool)
	SelectCharset(bank int, cs Charset)
	SetGLevel(level int, right bool)
	SingleShift(bank int)
	FullReset()
	DecAlignmentTest()
	HorizontalTabSet()

	CSI(p CSIParams)
	OSC(ps int, pt string)
	DCS(prefix string, pt string)

	ApplicationModeStart(params []string)
	ApplicationModeData(p []byte)
	ApplicationModeEnd()

	Warn(kind, detail string)
}

// Parser is the escape-sequence state machine (spec §4.4, C5). It is
// byte-incremental: Feed may be called with arbitrarily small chunks
// (spec §4.5/§5) and state survives across calls, so a CSI sequence split
// across two Write calls produces the same result as one concatenated call.
type Parser struct {
	sink Sink
	state parserState

	// CSI accumulation
	params       []int
	currentParam int
	paramSet     bool
	prefix       byte
	postfix      byte

	// OSC accumulation
	oscDigits []byte
	oscPs     int
	oscHasPs  bool
	oscBuf    []byte
	oscInPt   bool

	// DCS accumulation
	dcsPrefix []byte
	dcsBuf    []byte

	// Charset (ESC ( / ) / * / +)
	pendingBank int

	// AppStart (application-mode cookie gate)
	appCookie   string
	appParams   []string
	appChunkBuf []byte

	// DecHash (ESC #)
	// no extra state needed beyond `state`

	// incremental UTF-8 decode buffer for printable runes in Normal state
	utf8Buf []byte

	// stateConsumeOne: run once the next byte arrives, then return to Normal.
	onConsumeOne func(b byte)
}

// NewParser creates a parser that dispatches to sink. appCookie is the
// shared secret gating AppStart (spec §4.4 "AppStart"); an empty cookie
// means application mode can never trigger.
func NewParser(sink Sink, appCookie string) *Parser {
	return &Parser{sink: sink, appCookie: appCookie}
}

// Feed processes data, advancing the state machine and dispatching to Sink.
func (p *Parser) Feed(data []byte) {
	for i := 0; i < len(data); i++ {
		b := data[i]
		switch p.state {
		case stateNormal:
			p.feedNormal(b)
		case stateEscape:
			p.feedEscape(b)
		case stateCSI:
			p.feedCSI(b)
		case stateOSC:
			p.feedOSC(b)
		case stateDCS:
			p.feedDCS(b)
		case stateCharset:
			p.feedCharset(b)
		case stateIgnore:
			p.feedIgnore(b)
		case stateAppStart:
			p.feedAppStart(b)
		case stateAppEnd:
			p.feedAppEnd(b)
		case stateDecHash:
			p.feedDecHash(b)
		case stateConsumeOne:
			if p.onConsumeOne != nil {
				p.onConsumeOne(b)
			}
			p.state = stateNormal
		}
	}
}

const (
	cBEL = 0x07
	cBS  = 0x08
	cHT  = 0x09
	cLF  = 0x0A
	cVT  = 0x0B
	cFF  = 0x0C
	cCR  = 0x0D
	cSO  = 0x0E
	cSI  = 0x0F
	cESC = 0x1B
)

func (p *Parser) feedNormal(b byte) {
	switch b {
	case cBEL:
		p.sink.Bell()
	case cLF:
		p.sink.LineFeed()
	case cVT:
		p.sink.VerticalTab()
	case cFF:
		p.sink.FormFeed()
	case cCR:
		p.sink.CarriageReturn()
	case cBS:
		p.sink.Backspace()
	case cHT:
		p.sink.HorizontalTab()
	case cSO:
		p.sink.ShiftOut()
	case cSI:
		p.sink.ShiftIn()
	case cESC:
		p.state = stateEscape
	default:
		if b < 0x20 || b == 0x7F {
			return // other C0 controls: silently dropped (spec §7)
		}
		if b < 0x80 {
			p.sink.Print(rune(b))
			return
		}
		p.utf8Buf = append(p.utf8Buf, b)
		r, size := utf8.DecodeRune(p.utf8Buf)
		if r == utf8.RuneError && size <= 1 {
			if len(p.utf8Buf) >= 4 {
				// malformed; drop and resync
				p.utf8Buf = nil
			}
			return
		}
		p.utf8Buf = nil
		p.sink.Print(r)
	}
}

func (p *Parser) feedEscape(b byte) {
	switch b {
	case '[':
		p.resetCSI()
		p.state = stateCSI
	case ']':
		p.resetOSC()
		p.state = stateOSC
	case 'P':
		p.resetDCS()
		p.state = stateDCS
	case '&':
		p.resetAppStart()
		p.state = stateAppStart
	case '_', '^':
		p.state = stateIgnore
	case 'c':
		p.sink.FullReset()
		p.state = stateNormal
	case 'D':
		p.sink.Index()
		p.state = stateNormal
	case 'E':
		p.sink.NextLineOp()
		p.state = stateNormal
	case 'M':
		p.sink.ReverseIndexOp()
		p.state = stateNormal
	case '7':
		p.sink.SaveCursor()
		p.state = stateNormal
	case '8':
		p.sink.RestoreCursor()
		p.state = stateNormal
	case '=':
		p.sink.SetKeypadApplication(true)
		p.state = stateNormal
	case '>':
		p.sink.SetKeypadApplication(false)
		p.state = stateNormal
	case '(':
		p.pendingBank = 0
		p.state = stateCharset
	case ')':
		p.pendingBank = 1
		p.state = stateCharset
	case '*':
		p.pendingBank = 2
		p.state = stateCharset
	case '+':
		p.pendingBank = 3
		p.state = stateCharset
	case 'H':
		p.sink.HorizontalTabSet()
		p.state = stateNormal
	case 'N':
		p.sink.SingleShift(2)
		p.state = stateNormal
	case 'O':
		p.sink.SingleShift(3)
		p.state = stateNormal
	case 'n':
		p.sink.SetGLevel(2, false)
		p.state = stateNormal
	case 'o':
		p.sink.SetGLevel(3, false)
		p.state = stateNormal
	case '|':
		p.sink.SetGLevel(3, true)
		p.state = stateNormal
	case '}':
		p.sink.SetGLevel(2, true)
		p.state = stateNormal
	case '~':
		p.sink.SetGLevel(1, true)
		p.state = stateNormal
	case '#':
		p.state = stateDecHash
	case '%':
		p.state = stateConsumeOne // select default/UTF-8: accept and discard one more byte
		p.onConsumeOne = nil
	default:
		p.sink.Warn("escape", string(b))
		p.state = stateNormal
	}
}

func (p *Parser) resetCSI() {
	p.params = p.params[:0]
	p.currentParam = 0
	p.paramSet = false
	p.prefix = 0
	p.postfix = 0
}

func (p *Parser) pushParam() {
	if p.paramSet || len(p.params) == 0 {
		p.params = append(p.params, p.currentParam)
	}
	p.currentParam = 0
	p.paramSet = false
}

func (p *Parser) feedCSI(b byte) {
	switch {
	case b >= '0' && b <= '9':
		p.currentParam = p.currentParam*10 + int(b-'0')
		p.paramSet = true
	case b == ';' || b == ':':
		p.pushParam()
	case len(p.params) == 0 && !p.paramSet && (b == '?' || b == '>' || b == '!'):
		p.prefix = b
	case b == '$' || b == '"' || b == ' ' || b == '\'':
		p.postfix = b
	default:
		p.pushParam()
		p.sink.CSI(CSIParams{Params: append([]int(nil), p.params...), Prefix: p.prefix, Postfix: p.postfix, Final: b})
		p.state = stateNormal
	}
}

func (p *Parser) resetOSC() {
	p.oscDigits = p.oscDigits[:0]
	p.oscPs = 0
	p.oscHasPs = false
	p.oscBuf = p.oscBuf[:0]
	p.oscInPt = false
}

func (p *Parser) feedOSC(b byte) {
	if !p.oscInPt {
		switch {
		case b >= '0' && b <= '9':
			p.oscDigits = append(p.oscDigits, b)
			return
		case b == ';':
			p.oscPs = atoiBytes(p.oscDigits)
			p.oscHasPs = true
			p.oscInPt = true
			return
		case b == cBEL:
			p.finishOSC()
			return
		case b == cESC:
			p.finishOSC()
			p.state = stateEscape // might be ST (ESC \); the Escape state consumes the next byte
			return
		default:
			// malformed OSC without Pt separator; ignore until terminator
			p.oscInPt = true
			return
		}
	}

	switch b {
	case cBEL:
		p.finishOSC()
	case cESC:
		p.finishOSCPendingST()
	default:
		p.oscBuf = append(p.oscBuf, b)
	}
}

// finishOSCPendingST handles ESC within a Pt string: the next byte should be
// '\' to complete ST; if not, we still terminate (lenient, spec §7).
func (p *Parser) finishOSCPendingST() {
	p.finishOSC()
	p.state = stateEscape
}

func (p *Parser) finishOSC() {
	if p.oscHasPs {
		p.sink.OSC(p.oscPs, string(p.oscBuf))
	} else {
		p.sink.OSC(atoiBytes(p.oscDigits), string(p.oscBuf))
	}
	p.state = stateNormal
}

func (p *Parser) resetDCS() {
	p.dcsPrefix = p.dcsPrefix[:0]
	p.dcsBuf = p.dcsBuf[:0]
}

func (p *Parser) feedDCS(b byte) {
	if len(p.dcsPrefix) < 2 && isDCSPrefixByte(b) && len(p.dcsBuf) == 0 {
		p.dcsPrefix = append(p.dcsPrefix, b)
		return
	}
	switch b {
	case cBEL:
		p.sink.DCS(string(p.dcsPrefix), string(p.dcsBuf))
		p.state = stateNormal
	case cESC:
		p.sink.DCS(string(p.dcsPrefix), string(p.dcsBuf))
		p.state = stateEscape // ST (ESC \): the Escape state consumes the '\'
	default:
		p.dcsBuf = append(p.dcsBuf, b)
	}
}

func isDCSPrefixByte(b byte) bool {
	switch b {
	case '$', '+', '"', '!', '>', '?', 'p', 'q', 'r', 'm':
		return true
	default:
		return false
	}
}

func (p *Parser) feedCharset(b byte) {
	if b == '/' {
		// ISO Latin-1 supplemental: consumes one more byte (spec §4.4).
		bank := p.pendingBank
		p.onConsumeOne = func(byte) { p.sink.SelectCharset(bank, CharsetISOLatin1) }
		p.state = stateConsumeOne
		return
	}
	if cs, ok := charsetFromFinal(b); ok {
		p.sink.SelectCharset(p.pendingBank, cs)
	} else {
		p.sink.Warn("charset", string(b))
	}
	p.state = stateNormal
}

func (p *Parser) feedIgnore(b byte) {
	if b == cBEL {
		p.state = stateNormal
	} else if b == cESC {
		p.state = stateEscape // ST (ESC \): the Escape state consumes the '\'
	}
}

func (p *Parser) resetAppStart() {
	p.appParams = p.appParams[:0]
	p.appChunkBuf = p.appChunkBuf[:0]
}

func (p *Parser) feedAppStart(b byte) {
	switch {
	case (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z') || (b >= '0' && b <= '9') || b == '-' || b == '/':
		p.appChunkBuf = append(p.appChunkBuf, b)
	case b == ';':
		p.appParams = append(p.appParams, string(p.appChunkBuf))
		p.appChunkBuf = p.appChunkBuf[:0]
	case b == cBEL:
		p.appParams = append(p.appParams, string(p.appChunkBuf))
		if len(p.appParams) > 0 && p.appCookie != "" && p.appParams[0] == p.appCookie {
			p.sink.ApplicationModeStart(append([]string(nil), p.appParams...))
			p.state = stateAppEnd
		} else {
			p.sink.Warn("app-mode", "cookie mismatch")
			p.state = stateNormal
		}
	default:
		// unexpected byte aborts app-start back to normal (malformed cookie header)
		p.sink.Warn("app-mode", "malformed header")
		p.state = stateNormal
	}
}

func (p *Parser) feedAppEnd(b byte) {
	if b == 0 {
		p.sink.ApplicationModeEnd()
		p.state = stateNormal
		return
	}
	p.sink.ApplicationModeData([]byte{b})
}

func (p *Parser) feedDecHash(b byte) {
	if b == '8' {
		p.sink.DecAlignmentTest()
	}
	p.state = stateNormal
}

func atoiBytes(b []byte) int {
	n := 0
	for _, c := range b {
		if c < '0' || c > '9' {
			continue
		}
		n = n*10 + int(c-'0')
	}
	return n
}
