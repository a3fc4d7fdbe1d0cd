package vtengine

// Style packs background color, foreground color and a handful of boolean
// attributes into a single value, per spec §3:
//
//	bits 0-8:   background color index (0-255 palette, ColorDefaultBG = "default")
//	bits 9-17:  foreground color index (0-255 palette, ColorDefaultFG = "default")
//	bits 18-22: flags (bold, underline, blink, inverse, invisible)
//	bit  23:    internal wide-spacer marker (not an SGR attribute)
//	bits 24-31: reserved
//
// Style is a plain integer rather than a struct so it stays trivially
// comparable and copyable (a Cell is copied on every scroll/insert).
type Style uint32

const (
	bgShift    = 0
	fgShift    = 9
	flagsShift = 18
	colorMask  = 0x1FF // 9 bits
	flagsMask  = 0x1F  // 5 bits

	// ColorDefaultBG is the sentinel background index meaning "terminal default background".
	ColorDefaultBG = 256
	// ColorDefaultFG is the sentinel foreground index meaning "terminal default foreground".
	ColorDefaultFG = 257
)

// StyleFlag is one of the five boolean attributes SGR can toggle.
type StyleFlag uint32

const (
	FlagBold StyleFlag = 1 << iota
	FlagUnderline
	FlagBlink
	FlagInverse
	FlagInvisible

	flagWideSpacer StyleFlag = 1 << 5 // internal only, lives above the 5 public flag bits
)

// DefaultStyle returns the style new cells and a freshly reset cursor use:
// default background, default foreground, no attributes.
func DefaultStyle() Style {
	return packStyle(ColorDefaultBG, ColorDefaultFG, 0)
}

// EraseStyle returns the style used to blank cells (ED/EL/ECH): default
// background, but the *current* foreground is preserved by the caller before
// calling this — callers pass in the style whose background they want reset.
func EraseStyle(current Style) Style {
	return packStyle(ColorDefaultBG, current.Fg(), current.flagBits())
}

func packStyle(bg, fg int, flags uint32) Style {
	return Style(uint32(bg&colorMask)<<bgShift | uint32(fg&colorMask)<<fgShift | (flags&flagsMask)<<flagsShift)
}

// Bg returns the packed background color index.
func (s Style) Bg() int { return int(uint32(s)>>bgShift) & colorMask }

// Fg returns the packed foreground color index.
func (s Style) Fg() int { return int(uint32(s)>>fgShift) & colorMask }

func (s Style) flagBits() uint32 { return (uint32(s) >> flagsShift) & flagsMask }

// Has reports whether flag is set.
func (s Style) Has(flag StyleFlag) bool { return uint32(s)&(uint32(flag)<<flagsShift) != 0 }

// WithBg returns a copy of s with the background index replaced.
func (s Style) WithBg(bg int) Style {
	return Style(uint32(s)&^(colorMask<<bgShift) | uint32(bg&colorMask)<<bgShift)
}

// WithFg returns a copy of s with the foreground index replaced.
func (s Style) WithFg(fg int) Style {
	return Style(uint32(s)&^(colorMask<<fgShift) | uint32(fg&colorMask)<<fgShift)
}

// Set returns a copy of s with flag enabled.
func (s Style) Set(flag StyleFlag) Style { return Style(uint32(s) | uint32(flag)<<flagsShift) }

// Clear returns a copy of s with flag disabled.
func (s Style) Clear(flag StyleFlag) Style { return Style(uint32(s) &^ (uint32(flag) << flagsShift)) }

// Reversed swaps foreground and background, used when painting the cursor
// overlay (spec §3: "renderers interpret it as reverse-video of the
// underlying cell") and when the inverse attribute is active.
func (s Style) Reversed() Style {
	fg, bg := s.Fg(), s.Bg()
	return s.WithFg(bg).WithBg(fg)
}

func (s Style) isWideSpacer() bool  { return s.Has(flagWideSpacer) }
func (s Style) markWideSpacer() Style { return s.Set(flagWideSpacer) }

// Cell is a single grid position: a Unicode code point and its packed style.
// Wide glyphs (East-Asian-wide or emoji) occupy two adjacent cells: the
// first holds the glyph, the second holds a space with the same style and
// the internal wide-spacer marker set so insert/delete moves them together.
type Cell struct {
	Char  rune
	Style Style
}

// BlankCell returns a space cell carrying style (spec §4.1: blank_cell).
func BlankCell(style Style) Cell {
	return Cell{Char: ' ', Style: style}
}

// IsWide reports whether this cell holds a glyph that occupies two columns.
func (c Cell) IsWide() bool { return isWideRune(c.Char) }

// IsWideSpacer reports whether this cell is the second half of a wide glyph.
func (c Cell) IsWideSpacer() bool { return c.Style.isWideSpacer() }
