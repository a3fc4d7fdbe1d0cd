package vtengine

// Charset identifies one of the named replacement tables a G0-G3 slot can
// hold (spec §4.4, Charset state). Only ASCII and SCLD line-drawing
// actually remap characters; the national variants are recognized (so
// selecting them doesn't fall through to "unknown final") but pass bytes
// through unchanged, matching how little real-world output still relies on
// the ISO-646 national variants.
type Charset int

const (
	CharsetASCII Charset = iota
	CharsetSCLD           // DEC Special Character and Line Drawing Set
	CharsetUK
	CharsetDutch
	CharsetFinnish
	CharsetFrench
	CharsetFrenchCanadian
	CharsetGerman
	CharsetItalian
	CharsetNorwegianDanish
	CharsetSpanish
	CharsetSwedish
	CharsetSwiss
	CharsetISOLatin1
)

// charsetFromFinal maps an ESC ( / ) / * / + final byte to a Charset, per
// the table in spec §4.4. ok is false for an unrecognized final.
func charsetFromFinal(b byte) (cs Charset, ok bool) {
	switch b {
	case '0':
		return CharsetSCLD, true
	case 'A':
		return CharsetUK, true
	case 'B':
		return CharsetASCII, true
	case '4':
		return CharsetDutch, true
	case 'C', '5':
		return CharsetFinnish, true
	case 'R':
		return CharsetFrench, true
	case 'Q':
		return CharsetFrenchCanadian, true
	case 'K':
		return CharsetGerman, true
	case 'Y':
		return CharsetItalian, true
	case 'E', '6':
		return CharsetNorwegianDanish, true
	case 'Z':
		return CharsetSpanish, true
	case 'H', '7':
		return CharsetSwedish, true
	case '=':
		return CharsetSwiss, true
	case '/':
		return CharsetISOLatin1, true
	default:
		return CharsetASCII, false
	}
}

// sclTable translates the lowercase letters xterm's SCLD set remaps to
// line-drawing glyphs. Anything not in the table passes through unchanged.
var sclTable = map[rune]rune{
	'`': '◆', // ◆
	'a': '▒', // ▒
	'b': '␉', 'c': '␌', 'd': '␍', 'e': '␊',
	'f': '°', 'g': '±', 'h': '␤', 'i': '␋',
	'j': '┘', // ┘
	'k': '┐', // ┐
	'l': '┌', // ┌
	'm': '└', // └
	'n': '┼', // ┼
	'o': '⎺', 'p': '⎻',
	'q': '─', // ─
	'r': '⎼', 's': '⎽',
	't': '├', // ├
	'u': '┤', // ┤
	'v': '┴', // ┴
	'w': '┬', // ┬
	'x': '│', // │
	'y': '≤', 'z': '≥',
	'{': 'π', '|': '≠', '}': '£', '~': '·',
}

// translate applies the charset's remapping to a single input rune.
func (cs Charset) translate(r rune) rune {
	if cs == CharsetSCLD {
		if mapped, ok := sclTable[r]; ok {
			return mapped
		}
	}
	return r
}
