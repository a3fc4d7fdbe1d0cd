package vtengine

import "testing"

// stubSink records every call for assertion, letting parser tests stay
// independent of Engine's grid semantics (mirrors how the teacher's own
// ansicode.Handler is tested against a fake before Terminal is wired in).
type stubSink struct {
	printed []rune
	csis    []CSIParams
	oscs    []struct {
		ps int
		pt string
	}
	dcs []struct {
		prefix string
		pt     string
	}
	warnings []string
	bells    int
	lf       int
	cr       int
	reset    int
	appStart [][]string
	appData  []byte
	appEnd   int
}

func (s *stubSink) Print(r rune)         { s.printed = append(s.printed, r) }
func (s *stubSink) Bell()                { s.bells++ }
func (s *stubSink) LineFeed()            { s.lf++ }
func (s *stubSink) VerticalTab()         {}
func (s *stubSink) FormFeed()            {}
func (s *stubSink) CarriageReturn()      { s.cr++ }
func (s *stubSink) Backspace()           {}
func (s *stubSink) HorizontalTab()       {}
func (s *stubSink) ShiftOut()            {}
func (s *stubSink) ShiftIn()             {}
func (s *stubSink) Index()               {}
func (s *stubSink) NextLineOp()          {}
func (s *stubSink) ReverseIndexOp()      {}
func (s *stubSink) SaveCursor()          {}
func (s *stubSink) RestoreCursor()       {}
func (s *stubSink) SetKeypadApplication(on bool)      {}
func (s *stubSink) SelectCharset(bank int, cs Charset) {}
func (s *stubSink) SetGLevel(level int, right bool)   {}
func (s *stubSink) SingleShift(bank int)              {}
func (s *stubSink) FullReset()                        { s.reset++ }
func (s *stubSink) DecAlignmentTest()                 {}
func (s *stubSink) HorizontalTabSet()                 {}

func (s *stubSink) CSI(p CSIParams) { s.csis = append(s.csis, p) }
func (s *stubSink) OSC(ps int, pt string) {
	s.oscs = append(s.oscs, struct {
		ps int
		pt string
	}{ps, pt})
}
func (s *stubSink) DCS(prefix, pt string) {
	s.dcs = append(s.dcs, struct {
		prefix string
		pt     string
	}{prefix, pt})
}

func (s *stubSink) ApplicationModeStart(params []string) { s.appStart = append(s.appStart, params) }
func (s *stubSink) ApplicationModeData(p []byte)         { s.appData = append(s.appData, p...) }
func (s *stubSink) ApplicationModeEnd()                  { s.appEnd++ }

func (s *stubSink) Warn(kind, detail string) { s.warnings = append(s.warnings, kind+":"+detail) }

func TestParserPrintsPlainText(t *testing.T) {
	sink := &stubSink{}
	p := NewParser(sink, "")

	p.Feed([]byte("Hi"))

	if string(sink.printed) != "Hi" {
		t.Errorf("expected 'Hi', got %q", string(sink.printed))
	}
}

func TestParserC0Controls(t *testing.T) {
	sink := &stubSink{}
	p := NewParser(sink, "")

	p.Feed([]byte{cBEL, cLF, cCR})

	if sink.bells != 1 || sink.lf != 1 || sink.cr != 1 {
		t.Errorf("expected one of each control, got bell=%d lf=%d cr=%d", sink.bells, sink.lf, sink.cr)
	}
}

func TestParserCSISimple(t *testing.T) {
	sink := &stubSink{}
	p := NewParser(sink, "")

	p.Feed([]byte("\x1b[31m"))

	if len(sink.csis) != 1 {
		t.Fatalf("expected one CSI dispatch, got %d", len(sink.csis))
	}
	got := sink.csis[0]
	if got.Final != 'm' || len(got.Params) != 1 || got.Params[0] != 31 {
		t.Errorf("expected CSI 31 m, got %+v", got)
	}
}

func TestParserCSISplitAcrossFeedCalls(t *testing.T) {
	sink := &stubSink{}
	p := NewParser(sink, "")

	p.Feed([]byte("\x1b[3"))
	p.Feed([]byte("1;4"))
	p.Feed([]byte("6m"))

	if len(sink.csis) != 1 {
		t.Fatalf("expected one CSI dispatch, got %d", len(sink.csis))
	}
	got := sink.csis[0]
	if len(got.Params) != 2 || got.Params[0] != 31 || got.Params[1] != 46 {
		t.Errorf("expected params [31 46], got %v", got.Params)
	}
}

func TestParserCSIPrefix(t *testing.T) {
	sink := &stubSink{}
	p := NewParser(sink, "")

	p.Feed([]byte("\x1b[?25h"))

	if len(sink.csis) != 1 {
		t.Fatalf("expected one CSI dispatch, got %d", len(sink.csis))
	}
	got := sink.csis[0]
	if got.Prefix != '?' || got.Final != 'h' || got.Params[0] != 25 {
		t.Errorf("expected prefix ? final h param 25, got %+v", got)
	}
}

func TestParserOSCTitle(t *testing.T) {
	sink := &stubSink{}
	p := NewParser(sink, "")

	p.Feed([]byte("\x1b]0;my title\x07"))

	if len(sink.oscs) != 1 || sink.oscs[0].ps != 0 || sink.oscs[0].pt != "my title" {
		t.Errorf("expected OSC 0 'my title', got %+v", sink.oscs)
	}
}

func TestParserDCSDecrqss(t *testing.T) {
	sink := &stubSink{}
	p := NewParser(sink, "")

	p.Feed([]byte("\x1bP$qm\x07"))

	if len(sink.dcs) != 1 || sink.dcs[0].prefix != "$q" || sink.dcs[0].pt != "m" {
		t.Errorf("expected DCS $q 'm', got %+v", sink.dcs)
	}
}

func TestParserUTF8AcrossChunks(t *testing.T) {
	sink := &stubSink{}
	p := NewParser(sink, "")

	// '中' is E4 B8 AD in UTF-8; split it across three separate Feed calls.
	b := []byte("中")
	p.Feed(b[0:1])
	p.Feed(b[1:2])
	p.Feed(b[2:3])

	if len(sink.printed) != 1 || sink.printed[0] != '中' {
		t.Errorf("expected one rune '中', got %q", string(sink.printed))
	}
}

func TestParserUnknownEscapeWarns(t *testing.T) {
	sink := &stubSink{}
	p := NewParser(sink, "")

	p.Feed([]byte{cESC, '!'})

	if len(sink.warnings) != 1 {
		t.Errorf("expected one warning for an unrecognized escape, got %v", sink.warnings)
	}
}

func TestParserAppModeCookieMatch(t *testing.T) {
	sink := &stubSink{}
	p := NewParser(sink, "secret")

	p.Feed([]byte("\x1b&secret;arg1\x07"))
	p.Feed([]byte{'h', 'i'})
	p.Feed([]byte{0})

	if len(sink.appStart) != 1 {
		t.Fatalf("expected application mode to start, got %d starts", len(sink.appStart))
	}
	if sink.appStart[0][0] != "secret" || sink.appStart[0][1] != "arg1" {
		t.Errorf("expected cookie+arg params, got %v", sink.appStart[0])
	}
	if string(sink.appData) != "hi" {
		t.Errorf("expected passthrough data 'hi', got %q", string(sink.appData))
	}
	if sink.appEnd != 1 {
		t.Error("expected application mode to end")
	}
}

func TestParserAppModeCookieMismatch(t *testing.T) {
	sink := &stubSink{}
	p := NewParser(sink, "secret")

	p.Feed([]byte("\x1b&wrong\x07"))

	if len(sink.appStart) != 0 {
		t.Error("expected application mode to not start on a cookie mismatch")
	}
	if len(sink.warnings) != 1 {
		t.Errorf("expected a warning for the cookie mismatch, got %v", sink.warnings)
	}
}

func TestParserLineDrawingCharsetDesignator(t *testing.T) {
	sink := &stubSink{}
	p := NewParser(sink, "")

	p.Feed([]byte("\x1b(0"))

	// SelectCharset isn't recorded by stubSink's no-op, so just confirm the
	// parser returned to Normal and resumed printing afterward.
	p.Feed([]byte("x"))
	if string(sink.printed) != "x" {
		t.Errorf("expected parser to resume Normal state, got %q", string(sink.printed))
	}
}
