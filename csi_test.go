package vtengine

import "testing"

func TestCursorMovement(t *testing.T) {
	e := New(WithSize(10, 10))

	e.WriteString("\x1b[5;5H") // CUP to row 5, col 5 (1-based)
	row, col := e.CursorPos()
	if row != 4 || col != 4 {
		t.Fatalf("expected (4,4), got (%d,%d)", row, col)
	}

	e.WriteString("\x1b[2B") // down 2
	row, _ = e.CursorPos()
	if row != 6 {
		t.Errorf("expected row 6, got %d", row)
	}

	e.WriteString("\x1b[3D") // left 3
	_, col = e.CursorPos()
	if col != 1 {
		t.Errorf("expected col 1, got %d", col)
	}
}

func TestCursorMovementClampsToScreen(t *testing.T) {
	e := New(WithSize(5, 5))

	e.WriteString("\x1b[100;100H")
	row, col := e.CursorPos()
	if row != 4 || col != 4 {
		t.Errorf("expected clamped to (4,4), got (%d,%d)", row, col)
	}
}

func TestEraseInLine(t *testing.T) {
	e := New(WithSize(2, 10))
	e.WriteString("0123456789")
	e.WriteString("\x1b[5G")   // column 5
	e.WriteString("\x1b[K")    // erase to end of line

	if e.LineContent(0) != "0123" {
		t.Errorf("expected '0123', got %q", e.LineContent(0))
	}
}

func TestEraseInDisplay(t *testing.T) {
	e := New(WithSize(3, 5))
	e.WriteString("aaaaa\r\nbbbbb\r\nccccc")
	e.WriteString("\x1b[H")   // home
	e.WriteString("\x1b[2J")  // clear whole screen

	for y := 0; y < 3; y++ {
		if e.LineContent(y) != "" {
			t.Errorf("expected row %d cleared, got %q", y, e.LineContent(y))
		}
	}
}

func TestInsertDeleteCharacters(t *testing.T) {
	e := New(WithSize(2, 10))
	e.WriteString("abcdef")
	e.WriteString("\x1b[2G")  // column 2 (0-based col 1)
	e.WriteString("\x1b[2@")  // insert 2 blanks

	if e.LineContent(0) != "a  bcdef" {
		t.Errorf("expected 'a  bcdef', got %q", e.LineContent(0))
	}

	e.WriteString("\x1b[2P") // delete 2 chars at current position
	if e.LineContent(0) != "abcdef" {
		t.Errorf("expected 'abcdef', got %q", e.LineContent(0))
	}
}

func TestRepeatLastChar(t *testing.T) {
	e := New(WithSize(2, 10))
	e.WriteString("x")
	e.WriteString("\x1b[3b") // REP: repeat 'x' 3 more times

	if e.LineContent(0) != "xxxx" {
		t.Errorf("expected 'xxxx', got %q", e.LineContent(0))
	}
}

func TestTabStopSet(t *testing.T) {
	e := New(WithSize(2, 20))

	e.WriteString("\x1b[6G") // column 6 (0-based col 5)
	e.WriteString("\x1bH")   // HTS: set a tab stop at col 5
	e.WriteString("\x1b[1G") // back to column 1 (0-based col 0)
	e.WriteString("\t")      // should land on the new stop at col 5

	_, col := e.CursorPos()
	if col != 5 {
		t.Errorf("expected cursor at col 5 after tab, got %d", col)
	}
}

func TestDeviceAttributes(t *testing.T) {
	var reply []byte
	e := New(WithDataWriter(DataWriterFunc(func(b []byte) { reply = append(reply, b...) })))

	e.WriteString("\x1b[c")
	if string(reply) != "\x1b[?1;2c" {
		t.Errorf("expected DA1 reply, got %q", string(reply))
	}

	reply = nil
	e.WriteString("\x1b[>c")
	if string(reply) != "\x1b[>0;276;0c" {
		t.Errorf("expected DA2 reply, got %q", string(reply))
	}
}

func TestDeviceAttributesByTermName(t *testing.T) {
	var reply []byte
	writer := DataWriterFunc(func(b []byte) { reply = append(reply, b...) })

	cases := []struct {
		term string
		da1  string
		da2  string
	}{
		{"xterm", "\x1b[?1;2c", "\x1b[>0;276;0c"},
		{"rxvt", "\x1b[?1;2c", "\x1b[>85;95;0c"},
		{"screen", "\x1b[?1;2c", "\x1b[>83;40003;0c"},
		{"linux", "\x1b[?6c", "\x1b[>0;276;0c"},
	}
	for _, c := range cases {
		e := New(WithTermName(c.term), WithDataWriter(writer))

		reply = nil
		e.WriteString("\x1b[c")
		if string(reply) != c.da1 {
			t.Errorf("term %q: expected DA1 %q, got %q", c.term, c.da1, string(reply))
		}

		reply = nil
		e.WriteString("\x1b[>c")
		if string(reply) != c.da2 {
			t.Errorf("term %q: expected DA2 %q, got %q", c.term, c.da2, string(reply))
		}
	}
}

func TestDECCOLMResizesAndRestores(t *testing.T) {
	e := New(WithSize(24, 80))

	e.WriteString("\x1b[?3h")
	if got := e.Cols(); got != 132 {
		t.Fatalf("expected 132 cols after DECCOLM set, got %d", got)
	}

	e.WriteString("\x1b[?3l")
	if got := e.Cols(); got != 80 {
		t.Errorf("expected cols restored to 80 after DECCOLM reset, got %d", got)
	}
}

func TestDecrqssReportsSCLAndSCA(t *testing.T) {
	var reply []byte
	e := New(WithDataWriter(DataWriterFunc(func(b []byte) { reply = append(reply, b...) })))

	reply = nil
	e.WriteString("\x1bP$q\"p\x07")
	if string(reply) != "\x1bP1$r61\"p\x1b\\" {
		t.Errorf("expected DECSCL reply, got %q", string(reply))
	}

	reply = nil
	e.WriteString("\x1bP$q\"q\x07")
	if string(reply) != "\x1bP1$r0\"q\x1b\\" {
		t.Errorf("expected DECSCA reply, got %q", string(reply))
	}
}

func TestSoftResetLeavesContentAlone(t *testing.T) {
	e := New(WithSize(5, 10))
	e.WriteString("\x1b[31mhi")
	e.WriteString("\x1b[!p") // DECSTR

	if e.LineContent(0) != "hi" {
		t.Errorf("expected content untouched by soft reset, got %q", e.LineContent(0))
	}
	top, bottom := e.ScrollRegion()
	if top != 0 || bottom != 5 {
		t.Errorf("expected scroll region reset to full screen, got [%d,%d)", top, bottom)
	}
}

func TestFullResetClearsScreenAndHomesCursor(t *testing.T) {
	e := New(WithSize(5, 10))
	e.WriteString("\x1b[31mhi")
	e.WriteString("\x1bc") // RIS

	if e.LineContent(0) != "" {
		t.Errorf("expected screen cleared after RIS, got %q", e.LineContent(0))
	}
	row, col := e.CursorPos()
	if row != 0 || col != 0 {
		t.Errorf("expected cursor home after RIS, got (%d,%d)", row, col)
	}
}

func TestOriginModeAffectsCursorAddressing(t *testing.T) {
	e := New(WithSize(10, 10))
	e.WriteString("\x1b[3;7r")   // scroll region rows 3-7
	e.WriteString("\x1b[?6h")   // DECOM on
	e.WriteString("\x1b[1;1H")  // home, now relative to the scroll region

	row, col := e.CursorPos()
	if row != 2 || col != 0 {
		t.Errorf("expected origin-relative home at (2,0), got (%d,%d)", row, col)
	}
}

func TestTitleOSC(t *testing.T) {
	e := New()
	e.WriteString("\x1b]2;my shell\x07")

	if e.Title() != "my shell" {
		t.Errorf("expected title 'my shell', got %q", e.Title())
	}
}

func TestDecrqssReportsSGR(t *testing.T) {
	var reply []byte
	e := New(WithDataWriter(DataWriterFunc(func(b []byte) { reply = append(reply, b...) })))

	e.WriteString("\x1b[1m")
	e.WriteString("\x1bP$qm\x07")

	want := "\x1bP1$r0;1m\x1b\\"
	if string(reply) != want {
		t.Errorf("expected %q, got %q", want, string(reply))
	}
}
