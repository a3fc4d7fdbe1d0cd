package vtengine

import "github.com/mattn/go-runewidth"

// isWideRune reports whether r occupies two grid columns, per spec §4.4's
// wide-char test (fullwidth-form and CJK ranges, generalized here to the
// full Unicode East Asian Width property via go-runewidth rather than a
// hand-maintained range table).
func isWideRune(r rune) bool {
	return runewidth.RuneWidth(r) == 2
}

// runeWidth returns the on-screen column width of r: 0 for combining marks
// and most control characters, 1 normally, 2 for wide glyphs.
func runeWidth(r rune) int {
	return runewidth.RuneWidth(r)
}
