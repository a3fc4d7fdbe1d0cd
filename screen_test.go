package vtengine

import "testing"

func TestNewScreenDimensions(t *testing.T) {
	s := NewScreen(24, 80, 100, true, DefaultStyle())

	if s.rows != 24 || s.cols != 80 {
		t.Errorf("expected 24x80, got %dx%d", s.rows, s.cols)
	}
	if s.scrollBottom != 24 {
		t.Errorf("expected default scroll region to span full height, got bottom=%d", s.scrollBottom)
	}
}

func TestScreenDirtyTracking(t *testing.T) {
	s := NewScreen(5, 10, 0, true, DefaultStyle())

	if _, _, ok := s.TakeDirty(); ok {
		t.Error("expected no dirty rows on a fresh screen")
	}

	s.MarkDirty(2)
	s.MarkDirty(4)
	start, end, ok := s.TakeDirty()
	if !ok || start != 2 || end != 4 {
		t.Errorf("expected dirty range [2,4], got [%d,%d] ok=%v", start, end, ok)
	}

	if _, _, ok := s.TakeDirty(); ok {
		t.Error("expected TakeDirty to clear the range")
	}
}

func TestScreenScrollUpEvictsToScrollback(t *testing.T) {
	s := NewScreen(3, 5, 10, true, DefaultStyle())
	s.viewport[0].Cells[0].Char = 'a'
	s.viewport[1].Cells[0].Char = 'b'
	s.viewport[2].Cells[0].Char = 'c'

	s.scrollUpRegion(DefaultStyle())

	if s.ScrollbackLen() != 1 {
		t.Fatalf("expected 1 scrollback line, got %d", s.ScrollbackLen())
	}
	row, ok := s.ScrollbackLine(0)
	if !ok || row.Cells[0].Char != 'a' {
		t.Errorf("expected evicted row to hold 'a', got %q ok=%v", row.Cells[0].Char, ok)
	}
	if s.viewport[0].Cells[0].Char != 'b' {
		t.Errorf("expected row 0 to now hold 'b', got %q", s.viewport[0].Cells[0].Char)
	}
	if s.viewport[2].Cells[0].Char != ' ' {
		t.Errorf("expected new blank bottom row, got %q", s.viewport[2].Cells[0].Char)
	}
}

func TestScreenScrollUpPhysicalDirtiesOnlyScrolledBand(t *testing.T) {
	s := NewScreen(5, 5, 10, true, DefaultStyle())
	s.scrollTop, s.scrollBottom = 1, 4

	s.scrollUpRegion(DefaultStyle())

	start, end, ok := s.TakeDirty()
	if !ok || start != 1 || end != 3 {
		t.Errorf("expected physical scroll to dirty only [1,3], got [%d,%d] ok=%v", start, end, ok)
	}
}

func TestScreenScrollUpVirtualDirtiesWholeViewport(t *testing.T) {
	s := NewScreen(5, 5, 10, false, DefaultStyle())
	s.scrollTop, s.scrollBottom = 1, 4

	s.scrollUpRegion(DefaultStyle())

	start, end, ok := s.TakeDirty()
	if !ok || start != 0 || end != s.rows-1 {
		t.Errorf("expected virtual scroll to dirty the whole viewport [0,%d], got [%d,%d] ok=%v", s.rows-1, start, end, ok)
	}
}

func TestScreenScrollUpRespectsRegion(t *testing.T) {
	s := NewScreen(4, 5, 10, true, DefaultStyle())
	s.scrollTop, s.scrollBottom = 1, 3
	for y := 0; y < 4; y++ {
		s.viewport[y].Cells[0].Char = rune('a' + y)
	}

	s.scrollUpRegion(DefaultStyle())

	if s.ScrollbackLen() != 0 {
		t.Error("expected no scrollback eviction when scrolling a sub-region")
	}
	if s.viewport[0].Cells[0].Char != 'a' {
		t.Error("expected row outside the region to be untouched")
	}
	if s.viewport[1].Cells[0].Char != 'b' {
		t.Errorf("expected row 1 to become 'b', got %q", s.viewport[1].Cells[0].Char)
	}
	if s.viewport[3].Cells[0].Char != 'd' {
		t.Error("expected row outside the region (bottom) to be untouched")
	}
}

func TestScreenScrollViewClampsToYbase(t *testing.T) {
	s := NewScreen(3, 5, 10, true, DefaultStyle())
	for i := 0; i < 5; i++ {
		s.scrollUpRegion(DefaultStyle())
	}

	pos, isBottom := s.ScrollView(-100)
	if pos != 0 {
		t.Errorf("expected scroll-back to clamp at 0, got %d", pos)
	}
	if isBottom {
		t.Error("expected not at bottom after scrolling back")
	}

	pos, isBottom = s.ScrollView(100)
	if pos != s.ybase || !isBottom {
		t.Errorf("expected scroll-forward to clamp at ybase=%d, got %d isBottom=%v", s.ybase, pos, isBottom)
	}
}

func TestScreenInsertDeleteLines(t *testing.T) {
	s := NewScreen(4, 5, 0, true, DefaultStyle())
	for y := 0; y < 4; y++ {
		s.viewport[y].Cells[0].Char = rune('a' + y)
	}

	s.InsertLines(1, 1, DefaultStyle())
	if s.viewport[1].Cells[0].Char != ' ' {
		t.Errorf("expected blank inserted row, got %q", s.viewport[1].Cells[0].Char)
	}
	if s.viewport[2].Cells[0].Char != 'b' {
		t.Errorf("expected 'b' pushed down, got %q", s.viewport[2].Cells[0].Char)
	}

	s.DeleteLines(1, 1, DefaultStyle())
	if s.viewport[1].Cells[0].Char != 'b' {
		t.Errorf("expected 'b' pulled back up, got %q", s.viewport[1].Cells[0].Char)
	}
}

func TestScreenResizePreservesTopLeft(t *testing.T) {
	s := NewScreen(3, 5, 0, true, DefaultStyle())
	s.viewport[0].Cells[0].Char = 'x'

	s.Resize(4, 8, DefaultStyle())

	if s.rows != 4 || s.cols != 8 {
		t.Errorf("expected 4x8, got %dx%d", s.rows, s.cols)
	}
	if s.viewport[0].Cells[0].Char != 'x' {
		t.Error("expected top-left content preserved across resize")
	}
}

func TestScreenTabStops(t *testing.T) {
	s := NewScreen(3, 20, 0, true, DefaultStyle())

	if s.NextTabStop(0) != 8 {
		t.Errorf("expected default tab stop at 8, got %d", s.NextTabStop(0))
	}
	if s.PrevTabStop(8) != 0 {
		t.Errorf("expected previous tab stop at 0, got %d", s.PrevTabStop(8))
	}
}
