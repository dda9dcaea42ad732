package prprint

import (
	"errors"
	"fmt"
)

// ErrInvalidGrouping reports a group size that is zero or negative.
var ErrInvalidGrouping = errors.New("invalid grouping rule")

// Grouping is a resolved locale descriptor: group sizes counted from the
// decimal point outward, the thousands separator and the decimal point.
// The last size repeats once the sequence is exhausted; no sizes means no
// grouping. A Grouping is never modified by this package and may be shared.
type Grouping struct {
	Sizes []int
	Sep   rune
	Point rune
}

// Classic is the "C" locale: no grouping and '.' as decimal point.
var Classic = Grouping{Sep: ',', Point: '.'}

// NewGrouping copies sizes and validates them.
func NewGrouping(sizes []int, sep, point rune) (Grouping, error) {
	g := Grouping{Sizes: append([]int(nil), sizes...), Sep: sep, Point: point}
	if err := g.Validate(); err != nil {
		return Grouping{}, err
	}
	return g, nil
}

// Validate rejects non-positive group sizes and a zero point glyph.
func (g Grouping) Validate() error {
	for i, n := range g.Sizes {
		if n <= 0 {
			return fmt.Errorf("%w: size[%d] = %d", ErrInvalidGrouping, i, n)
		}
	}
	if g.Point == 0 {
		return fmt.Errorf("%w: missing decimal point", ErrInvalidGrouping)
	}
	if len(g.Sizes) > 0 && g.Sep == 0 {
		return fmt.Errorf("%w: missing thousands separator", ErrInvalidGrouping)
	}
	return nil
}

// Enabled reports whether the rule inserts separators at all.
func (g Grouping) Enabled() bool { return len(g.Sizes) > 0 }

func (g Grouping) point() rune {
	if g.Point == 0 {
		return '.'
	}
	return g.Point
}

// ApplyGrouping rewrites the ASCII decimal point of a rendered number to the
// locale point and inserts separators into its integer part. A leading '+' or
// '-' is never followed by a separator.
//
// The transform is not idempotent: separators already present count as digits.
func ApplyGrouping(s string, g Grouping) string {
	if narrow(g.Sep) && narrow(g.point()) {
		return string(group([]byte(s), g.Sizes, byte(g.Sep), byte(g.point())))
	}
	return string(group([]rune(s), g.Sizes, g.Sep, g.point()))
}

// SeparatorCount returns how many separators ApplyGrouping inserts into s.
func SeparatorCount(s string, g Grouping) int {
	if len(s) <= 1 {
		return 0
	}
	b := []byte(s)
	_, seps := layout(b, g.Sizes)
	return seps
}

// layout locates the end of the integer part and counts the separators the
// sizes call for.
func layout[G glyph](s []G, sizes []int) (intEnd, seps int) {
	intEnd = indexFrom(s, '.', 1)
	if intEnd < 0 {
		intEnd = len(s)
	}
	digits := intEnd
	if isSign(s[0]) {
		digits--
	}
	if len(sizes) == 0 {
		return intEnd, 0
	}
	last := len(sizes) - 1
	for i := 0; sizes[i] > 0 && digits > sizes[i]; {
		digits -= sizes[i]
		seps++
		if i < last {
			i++
		}
	}
	return intEnd, seps
}

func group[G glyph](s []G, sizes []int, sep, point G) []G {
	if len(s) <= 1 {
		return s
	}
	intEnd, seps := layout(s, sizes)
	if intEnd < len(s) {
		s[intEnd] = point
	}
	if seps == 0 {
		return s
	}

	start := 0
	if isSign(s[0]) {
		start = 1
	}
	out := make([]G, len(s)+seps)
	copy(out[intEnd+seps:], s[intEnd:])
	copy(out[:start], s[:start])

	w := intEnd + seps
	i, left := 0, sizes[0]
	for r := intEnd - 1; r >= start; r-- {
		w--
		out[w] = s[r]
		left--
		if left == 0 && r > start {
			w--
			out[w] = sep
			if i < len(sizes)-1 {
				i++
			}
			left = sizes[i]
		}
	}
	return out
}
