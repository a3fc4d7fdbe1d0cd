package vtengine

import (
	"image/color"
	"testing"
)

func TestNewPaletteDefaults16(t *testing.T) {
	p := NewPalette(nil)

	for i := 0; i < 16; i++ {
		if p[i] != DefaultNamed16[i] {
			t.Errorf("entry %d: expected default named color, got %v", i, p[i])
		}
	}
}

func TestNewPaletteCube(t *testing.T) {
	p := NewPalette(nil)

	// index 16 is the cube's (0,0,0) corner: pure black.
	if p[16].R != 0 || p[16].G != 0 || p[16].B != 0 {
		t.Errorf("expected cube origin to be black, got %v", p[16])
	}
	// index 231 is the cube's (5,5,5) corner: near white.
	last := p[231]
	if last.R != 255 || last.G != 255 || last.B != 255 {
		t.Errorf("expected cube corner to be white, got %v", last)
	}
}

func TestNewPaletteGrayscale(t *testing.T) {
	p := NewPalette(nil)

	if p[232].R != p[232].G || p[232].G != p[232].B {
		t.Errorf("expected grayscale entry to have equal channels, got %v", p[232])
	}
	if p[232].R >= p[255].R {
		t.Error("expected grayscale ramp to increase")
	}
}

func TestResolveSentinels(t *testing.T) {
	p := NewPalette(nil)

	if p.Resolve(ColorDefaultFG, true) != DefaultForeground {
		t.Error("expected default-fg sentinel to resolve to DefaultForeground")
	}
	if p.Resolve(ColorDefaultBG, false) != DefaultBackground {
		t.Error("expected default-bg sentinel to resolve to DefaultBackground")
	}
}

func TestNearestIndexExactMatch(t *testing.T) {
	p := NewPalette(nil)
	red := DefaultNamed16[1]

	idx := p.NearestIndex(red.R, red.G, red.B)
	if idx != 1 {
		t.Errorf("expected exact match to return index 1, got %d", idx)
	}
}

func TestNearestIndexClosest(t *testing.T) {
	p := NewPalette(nil)

	idx := p.NearestIndex(1, 1, 1) // almost black
	if p[idx].R > 10 || p[idx].G > 10 || p[idx].B > 10 {
		t.Errorf("expected near-black match, got %v at index %d", p[idx], idx)
	}
}

func TestNewPaletteSeedOverride(t *testing.T) {
	seed := make([]color.RGBA, 16)
	for i := range seed {
		seed[i] = color.RGBA{R: uint8(i), A: 255}
	}
	p := NewPalette(seed)

	if p[5].R != 5 {
		t.Errorf("expected seed override at index 5, got %v", p[5])
	}
}
