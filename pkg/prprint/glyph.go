package prprint

import "unicode/utf8"

// glyph is a single text unit: byte for narrow text, rune for wide text.
// The trimming and grouping algorithms are written once over it.
type glyph interface {
	~byte | ~rune
}

func indexFrom[G glyph](s []G, c G, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == c {
			return i
		}
	}
	return -1
}

func isSign[G glyph](c G) bool { return c == '-' || c == '+' }

// trimZeros drops trailing '0' glyphs after the point, then the point itself
// unless keepPoint is set. Text without a point is returned as is.
func trimZeros[G glyph](s []G, point G, keepPoint bool) []G {
	p := indexFrom(s, point, 0)
	if p < 0 {
		return s
	}
	end := len(s)
	for end > p+1 && s[end-1] == '0' {
		end--
	}
	if end == p+1 && !keepPoint {
		end = p
	}
	return s[:end]
}

func narrow(r rune) bool { return r >= 0 && r < utf8.RuneSelf }

// TrimZeros removes trailing fractional zeros from already rendered text whose
// decimal point is point, and the point too when keepPoint is false.
func TrimZeros(s string, point rune, keepPoint bool) string {
	if narrow(point) {
		return string(trimZeros([]byte(s), byte(point), keepPoint))
	}
	return string(trimZeros([]rune(s), point, keepPoint))
}
