// Package prprint formats floating-point values as fixed-point decimal text
// with a chosen precision, optional zero trimming, a pre-rounding mode and
// locale digit grouping.
package prprint

import "math"

// Format rounds v according to p, renders it and applies the locale rule g.
// Non-finite values only get their sign and letters; they are never grouped.
func Format[F Float](v F, p Policy, g Grouping) string {
	v = Round(v, p.Precision, p.Round)
	s := Render(v, p.Precision, p.Trim, p.Flags)
	x := float64(v)
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return s
	}
	return ApplyGrouping(s, g)
}

// Pending is a policy waiting for a value. It is the explicit form of
// streaming a directive ahead of the number it applies to:
//
//	s := prprint.WithPolicy(prprint.NewPolicy(2, true, prprint.ToNearest)).Write(3.14159)
type Pending struct {
	policy   Policy
	grouping Grouping
}

// WithPolicy starts a pending format using the classic locale.
func WithPolicy(p Policy) Pending {
	return Pending{policy: p, grouping: Classic}
}

// Locale returns a copy of the pending format that groups with g.
func (pf Pending) Locale(g Grouping) Pending {
	pf.grouping = g
	return pf
}

// Policy returns the policy that Write will apply.
func (pf Pending) Policy() Policy { return pf.policy }

// Grouping returns the locale rule that Write will apply.
func (pf Pending) Grouping() Grouping { return pf.grouping }

// Write formats a float64.
func (pf Pending) Write(v float64) string { return Format(v, pf.policy, pf.grouping) }

// Write32 formats a float32 using float32 shortest digits.
func (pf Pending) Write32(v float32) string { return Format(v, pf.policy, pf.grouping) }
