package vtengine

import "testing"

func TestCharsetFromFinal(t *testing.T) {
	cases := []struct {
		final byte
		want  Charset
	}{
		{'0', CharsetSCLD},
		{'B', CharsetASCII},
		{'A', CharsetUK},
		{'/', CharsetISOLatin1},
	}
	for _, c := range cases {
		got, ok := charsetFromFinal(c.final)
		if !ok || got != c.want {
			t.Errorf("final %q: expected %v, got %v ok=%v", c.final, c.want, got, ok)
		}
	}
}

func TestCharsetFromFinalUnknown(t *testing.T) {
	_, ok := charsetFromFinal('!')
	if ok {
		t.Error("expected unrecognized final byte to report ok=false")
	}
}

func TestSCLDTranslation(t *testing.T) {
	if got := CharsetSCLD.translate('q'); got != '─' {
		t.Errorf("expected SCLD 'q' to translate to a horizontal line glyph, got %q", got)
	}
}

func TestASCIIPassesThrough(t *testing.T) {
	if got := CharsetASCII.translate('q'); got != 'q' {
		t.Errorf("expected ASCII charset to pass 'q' through unchanged, got %q", got)
	}
}

func TestSCLDPassesThroughUnmappedRune(t *testing.T) {
	if got := CharsetSCLD.translate('Q'); got != 'Q' {
		t.Errorf("expected an unmapped rune to pass through, got %q", got)
	}
}
