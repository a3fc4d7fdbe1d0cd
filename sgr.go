package vtengine

// applySGR folds CSI ... m parameters onto style, left to right (spec §4.1
// "apply_sgr"). A bare CSI m (empty Params) means a lone reset: empty params
// are treated as {0}.
func applySGR(style Style, params []int, pal *Palette) Style {
	if len(params) == 0 {
		params = []int{0}
	}
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			style = DefaultStyle()
		case p == 1:
			style = style.Set(FlagBold)
		case p == 4:
			style = style.Set(FlagUnderline)
		case p == 5:
			style = style.Set(FlagBlink)
		case p == 7:
			style = style.Set(FlagInverse)
		case p == 8:
			style = style.Set(FlagInvisible)
		case p == 22:
			style = style.Clear(FlagBold)
		case p == 24:
			style = style.Clear(FlagUnderline)
		case p == 25:
			style = style.Clear(FlagBlink)
		case p == 27:
			style = style.Clear(FlagInverse)
		case p == 28:
			style = style.Clear(FlagInvisible)
		case p >= 30 && p <= 37:
			style = style.WithFg(p - 30)
		case p == 38:
			idx, consumed := extendedColor(params[i+1:], pal)
			style = style.WithFg(idx)
			i += consumed
		case p == 39:
			style = style.WithFg(ColorDefaultFG)
		case p >= 40 && p <= 47:
			style = style.WithBg(p - 40)
		case p == 48:
			idx, consumed := extendedColor(params[i+1:], pal)
			style = style.WithBg(idx)
			i += consumed
		case p == 49:
			style = style.WithBg(ColorDefaultBG)
		case p >= 90 && p <= 97:
			style = style.WithFg(p - 90 + 8)
		case p >= 100 && p <= 107:
			style = style.WithBg(p - 100 + 8)
		}
	}
	return style
}

// extendedColor parses the tail of a 38/48 sequence: either "5;n" (palette
// index) or "2;r;g;b" (truecolor, folded to the nearest palette index via
// pal.NearestIndex since truecolor storage is a non-goal — spec §4.1).
// consumed is how many further params to skip.
func extendedColor(rest []int, pal *Palette) (idx, consumed int) {
	if len(rest) == 0 {
		return 0, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) >= 2 {
			return rest[1] & 0xFF, 2
		}
		return 0, 1
	case 2:
		if len(rest) >= 4 {
			r, g, b := rest[1], rest[2], rest[3]
			return pal.NearestIndex(clampColorByte(r), clampColorByte(g), clampColorByte(b)), 4
		}
		return 0, 1
	default:
		return 0, 1
	}
}

func clampColorByte(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
