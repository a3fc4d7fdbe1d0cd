package vtengine

import "testing"

func TestScrollbackPushWithinCap(t *testing.T) {
	sb := newScrollback(3)

	for i := 0; i < 3; i++ {
		row := NewRow(1, DefaultStyle())
		row.Cells[0].Char = rune('a' + i)
		if _, evicted := sb.push(row); evicted {
			t.Fatalf("did not expect eviction on push %d", i)
		}
	}
	if sb.len() != 3 {
		t.Errorf("expected 3 rows, got %d", sb.len())
	}
}

func TestScrollbackPushEvictsOldest(t *testing.T) {
	sb := newScrollback(2)

	for i := 0; i < 3; i++ {
		row := NewRow(1, DefaultStyle())
		row.Cells[0].Char = rune('a' + i)
		sb.push(row)
	}

	if sb.len() != 2 {
		t.Fatalf("expected cap of 2, got %d", sb.len())
	}
	first, _ := sb.line(0)
	if first.Cells[0].Char != 'b' {
		t.Errorf("expected oldest surviving row to be 'b', got %q", first.Cells[0].Char)
	}
}

func TestScrollbackPop(t *testing.T) {
	sb := newScrollback(5)
	row := NewRow(1, DefaultStyle())
	row.Cells[0].Char = 'z'
	sb.push(row)

	got, ok := sb.pop()
	if !ok || got.Cells[0].Char != 'z' {
		t.Errorf("expected to pop 'z', got %q ok=%v", got.Cells[0].Char, ok)
	}
	if sb.len() != 0 {
		t.Error("expected scrollback empty after popping its only row")
	}
}

func TestScrollbackSetCapTrims(t *testing.T) {
	sb := newScrollback(10)
	for i := 0; i < 5; i++ {
		sb.push(NewRow(1, DefaultStyle()))
	}

	sb.setCap(2)
	if sb.len() != 2 {
		t.Errorf("expected trimmed to 2 rows, got %d", sb.len())
	}
}

func TestScrollbackClear(t *testing.T) {
	sb := newScrollback(5)
	sb.push(NewRow(1, DefaultStyle()))
	sb.clear()

	if sb.len() != 0 {
		t.Error("expected scrollback empty after clear")
	}
}
