package vtengine

import "testing"

func TestNewRowBlank(t *testing.T) {
	r := NewRow(10, DefaultStyle())

	if len(r.Cells) != 10 {
		t.Fatalf("expected 10 cells, got %d", len(r.Cells))
	}
	for i, c := range r.Cells {
		if c.Char != ' ' {
			t.Errorf("cell %d: expected blank, got %q", i, c.Char)
		}
	}
}

func TestRowCloneIndependent(t *testing.T) {
	r := NewRow(5, DefaultStyle())
	c := r.Clone()
	c.Cells[0].Char = 'X'

	if r.Cells[0].Char == 'X' {
		t.Error("expected Clone to not alias the original cells")
	}
}

func TestRowClearRange(t *testing.T) {
	r := NewRow(5, DefaultStyle())
	for i := range r.Cells {
		r.Cells[i].Char = 'a'
	}
	r.ClearRange(1, 3, DefaultStyle())

	want := "a  aa"
	if r.text() != want {
		t.Errorf("expected %q, got %q", want, r.text())
	}
}

func TestRowInsertBlanks(t *testing.T) {
	r := NewRow(5, DefaultStyle())
	for i := range r.Cells {
		r.Cells[i].Char = rune('a' + i)
	}
	r.InsertBlanks(1, 2, DefaultStyle())

	want := "a  bc"
	if r.text() != want {
		t.Errorf("expected %q, got %q", want, r.text())
	}
}

func TestRowDeleteChars(t *testing.T) {
	r := NewRow(5, DefaultStyle())
	for i := range r.Cells {
		r.Cells[i].Char = rune('a' + i)
	}
	r.DeleteChars(1, 2, DefaultStyle())

	want := "ade"
	if r.text() != want {
		t.Errorf("expected %q, got %q", want, r.text())
	}
}

func TestRowResizeWider(t *testing.T) {
	r := NewRow(3, DefaultStyle())
	r.Cells[0].Char = 'a'
	r2 := r.Resize(5, DefaultStyle())

	if len(r2.Cells) != 5 {
		t.Fatalf("expected 5 cells, got %d", len(r2.Cells))
	}
	if r2.Cells[0].Char != 'a' {
		t.Errorf("expected left content preserved, got %q", r2.Cells[0].Char)
	}
}

func TestRowResizeNarrower(t *testing.T) {
	r := NewRow(5, DefaultStyle())
	for i := range r.Cells {
		r.Cells[i].Char = rune('a' + i)
	}
	r2 := r.Resize(3, DefaultStyle())

	if r2.text() != "abc" {
		t.Errorf("expected truncated 'abc', got %q", r2.text())
	}
}

func TestRowTextSkipsWideSpacer(t *testing.T) {
	r := NewRow(3, DefaultStyle())
	r.Cells[0].Char = '中'
	r.Cells[1] = Cell{Char: ' ', Style: DefaultStyle().markWideSpacer()}
	r.Cells[2].Char = 'x'

	if r.text() != "中x" {
		t.Errorf("expected spacer cell to be skipped, got %q", r.text())
	}
}
