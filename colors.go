package vtengine

import "image/color"

// Palette holds the 256-entry color table: 16 named colors (configurable at
// construction), a 6x6x6 color cube, and a 24-step grayscale ramp — exactly
// the layout spec §3 describes.
type Palette [256]color.RGBA

// DefaultNamed16 is the xterm-style default for palette entries 0-15.
// Grounded on the teacher's colors.go DefaultPalette literal.
var DefaultNamed16 = [16]color.RGBA{
	{0, 0, 0, 255}, {205, 49, 49, 255}, {13, 188, 121, 255}, {229, 229, 16, 255},
	{36, 114, 200, 255}, {188, 63, 188, 255}, {17, 168, 205, 255}, {229, 229, 229, 255},
	{102, 102, 102, 255}, {241, 76, 76, 255}, {35, 209, 139, 255}, {245, 245, 67, 255},
	{59, 142, 234, 255}, {214, 112, 214, 255}, {41, 184, 219, 255}, {255, 255, 255, 255},
}

// DefaultForeground and DefaultBackground are the colors used for
// ColorDefaultFG / ColorDefaultBG.
var (
	DefaultForeground = color.RGBA{229, 229, 229, 255}
	DefaultBackground = color.RGBA{0, 0, 0, 255}
)

// NewPalette builds a 256-entry palette. seed16 overrides entries 0-15; a
// nil or short seed falls back to DefaultNamed16 for the missing entries.
func NewPalette(seed16 []color.RGBA) *Palette {
	var p Palette

	for i := 0; i < 16; i++ {
		if i < len(seed16) {
			p[i] = seed16[i]
		} else {
			p[i] = DefaultNamed16[i]
		}
	}

	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[i] = color.RGBA{R: cube(r), G: cube(g), B: cube(b), A: 255}
				i++
			}
		}
	}

	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		p[232+j] = color.RGBA{gray, gray, gray, 255}
	}

	return &p
}

func cube(n int) uint8 {
	if n == 0 {
		return 0
	}
	return uint8(n*40 + 55)
}

// Resolve turns a color-field index (0-255 palette, ColorDefaultFG/BG
// sentinels) into a concrete RGBA for rendering.
func (p *Palette) Resolve(index int, fg bool) color.RGBA {
	switch index {
	case ColorDefaultFG:
		return DefaultForeground
	case ColorDefaultBG:
		return DefaultBackground
	default:
		if index >= 0 && index < 256 {
			return p[index]
		}
		if fg {
			return DefaultForeground
		}
		return DefaultBackground
	}
}

// NearestIndex finds the palette entry closest to an RGB truecolor value
// using the weighted distance from spec §4.1: 30²·Δr² + 59²·Δg² + 11²·Δb².
// Used to fold SGR `38;2;r;g;b` / `48;2;r;g;b` truecolor requests onto the
// 256-color palette (spec's "true-color beyond the palette extension" is a
// non-goal, so truecolor input is always matched down to an index).
func (p *Palette) NearestIndex(r, g, b uint8) int {
	best, bestDist := 0, -1
	for i, c := range p {
		dr := int(r) - int(c.R)
		dg := int(g) - int(c.G)
		db := int(b) - int(c.B)
		dist := 30*30*dr*dr + 59*59*dg*dg + 11*11*db*db
		if bestDist < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}
