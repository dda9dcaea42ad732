package prprint

import (
	"math"
	"unsafe"

	"github.com/shopspring/decimal"
)

// Render writes v in fixed-point notation with exactly precision fractional
// digits, rounding half away from zero, then trims trailing fractional zeros
// when trim is set. Only ASCII '.', '+' and '-' are produced; locale glyphs
// are substituted by ApplyGrouping.
//
// The sign follows the sign bit, so -0.0 renders as "-0.00" at precision 2.
// Infinities render as "inf"/"-inf" and NaN as "nan" (never signed), upper-cased
// with Uppercase.
func Render[F Float](v F, precision int, trim bool, flags Flags) string {
	return string(AppendRender(nil, v, precision, trim, flags))
}

// AppendRender is like Render but appends to dst.
func AppendRender[F Float](dst []byte, v F, precision int, trim bool, flags Flags) []byte {
	x := float64(v)
	if math.IsNaN(x) {
		return appendSpecial(dst, "nan", flags)
	}
	if math.IsInf(x, 0) {
		if x < 0 {
			dst = append(dst, '-')
		} else if flags.Has(ShowPos) {
			dst = append(dst, '+')
		}
		return appendSpecial(dst, "inf", flags)
	}

	precision = clampPrecision(precision)
	if math.Signbit(x) {
		dst = append(dst, '-')
	} else if flags.Has(ShowPos) {
		dst = append(dst, '+')
	}
	start := len(dst)
	dst = append(dst, absDecimal(v).StringFixed(int32(precision))...)
	if precision == 0 {
		if flags.Has(ShowPoint) {
			dst = append(dst, '.')
		}
		return dst
	}
	if trim {
		dst = dst[:start+len(trimZeros(dst[start:], '.', flags.Has(ShowPoint)))]
	}
	return dst
}

func appendSpecial(dst []byte, token string, flags Flags) []byte {
	if !flags.Has(Uppercase) {
		return append(dst, token...)
	}
	for i := 0; i < len(token); i++ {
		dst = append(dst, token[i]&^0x20)
	}
	return dst
}

// absDecimal converts |v| using the shortest decimal that round-trips at the
// width of F, so float32 inputs do not pick up float64 noise digits.
func absDecimal[F Float](v F) decimal.Decimal {
	if unsafe.Sizeof(v) == 4 {
		return decimal.NewFromFloat32(float32(math.Abs(float64(v))))
	}
	return decimal.NewFromFloat(math.Abs(float64(v)))
}
