package prprint

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// MaxPrecision is the largest number of fractional digits a Policy may request.
// Render and Round clamp to it, Validate rejects anything above it.
const MaxPrecision = 350

var (
	// ErrPrecisionRange reports a precision outside [0, MaxPrecision].
	ErrPrecisionRange = errors.New("precision out of range")
	// ErrUnknownRounding reports a rounding mode that is not one of the defined constants.
	ErrUnknownRounding = errors.New("unknown rounding mode")
)

// Rounding selects how a value is rounded before it is rendered.
type Rounding uint8

const (
	// Keep leaves the value alone; rendering still rounds half away from zero.
	Keep Rounding = iota
	// Upward rounds toward positive infinity.
	Upward
	// Downward rounds toward negative infinity.
	Downward
	// ToNearest rounds half away from zero.
	ToNearest
	// TowardZero truncates.
	TowardZero
)

var roundingNames = [...]string{
	Keep:       "keep",
	Upward:     "upward",
	Downward:   "downward",
	ToNearest:  "toNearest",
	TowardZero: "towardZero",
}

// roundingAliases provides user-friendly synonyms for rounding mode names.
// Keys are lower-case with separators removed.
var roundingAliases = map[string]Rounding{
	"keep":       Keep,
	"none":       Keep,
	"upward":     Upward,
	"up":         Upward,
	"ceil":       Upward,
	"ceiling":    Upward,
	"downward":   Downward,
	"down":       Downward,
	"floor":      Downward,
	"tonearest":  ToNearest,
	"nearest":    ToNearest,
	"halfaway":   ToNearest,
	"round":      ToNearest,
	"towardzero": TowardZero,
	"trunc":      TowardZero,
	"truncate":   TowardZero,
}

func (r Rounding) String() string {
	if int(r) < len(roundingNames) {
		return roundingNames[r]
	}
	return fmt.Sprintf("Rounding(%d)", uint8(r))
}

// Valid reports whether r is one of the defined modes.
func (r Rounding) Valid() bool { return int(r) < len(roundingNames) }

// NormalizeRoundingName lowers the name and drops '-', '_' and spaces.
func NormalizeRoundingName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(n)
}

// ParseRounding resolves a rounding mode by canonical name or alias.
func ParseRounding(name string) (Rounding, error) {
	if r, ok := roundingAliases[NormalizeRoundingName(name)]; ok {
		return r, nil
	}
	return Keep, fmt.Errorf("%w: %q. Try one of: %s", ErrUnknownRounding, name, strings.Join(RoundingNames(), ", "))
}

// RoundingNames returns the canonical rounding mode names.
func RoundingNames() []string {
	return append([]string(nil), roundingNames[:]...)
}

// RoundingAliases returns the accepted alias keys, sorted.
func RoundingAliases() []string {
	keys := make([]string, 0, len(roundingAliases))
	for k := range roundingAliases {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (r Rounding) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRounding, uint8(r))
	}
	return []byte(r.String()), nil
}

func (r *Rounding) UnmarshalText(text []byte) error {
	v, err := ParseRounding(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Flags are display options that only affect how digits are written.
type Flags uint8

const (
	// ShowPos prefixes non-negative values (and +inf) with '+'.
	ShowPos Flags = 1 << iota
	// ShowPoint keeps the decimal point even when no fractional digit follows it.
	ShowPoint
	// Uppercase writes INF and NAN instead of inf and nan.
	Uppercase
)

// Has reports whether all bits of f2 are set in f.
func (f Flags) Has(f2 Flags) bool { return f&f2 == f2 }

func (f Flags) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	if f.Has(ShowPos) {
		parts = append(parts, "showpos")
	}
	if f.Has(ShowPoint) {
		parts = append(parts, "showpoint")
	}
	if f.Has(Uppercase) {
		parts = append(parts, "uppercase")
	}
	return strings.Join(parts, "|")
}

// Policy describes how a single value is formatted. It is a small value type;
// the With* methods return modified copies.
type Policy struct {
	Precision int
	Trim      bool
	Round     Rounding
	Flags     Flags
}

// NewPolicy creates a policy with no display flags.
func NewPolicy(precision int, trim bool, mode Rounding) Policy {
	return Policy{Precision: precision, Trim: trim, Round: mode}
}

func (p Policy) WithPrecision(precision int) Policy {
	p.Precision = precision
	return p
}

func (p Policy) WithTrim(trim bool) Policy {
	p.Trim = trim
	return p
}

func (p Policy) WithRound(mode Rounding) Policy {
	p.Round = mode
	return p
}

func (p Policy) WithFlags(f Flags) Policy {
	p.Flags = f
	return p
}

// Validate checks the precision range and the rounding mode.
func (p Policy) Validate() error {
	if p.Precision < 0 || p.Precision > MaxPrecision {
		return fmt.Errorf("%w: %d (max %d)", ErrPrecisionRange, p.Precision, MaxPrecision)
	}
	if !p.Round.Valid() {
		return fmt.Errorf("%w: %d", ErrUnknownRounding, uint8(p.Round))
	}
	return nil
}

func clampPrecision(precision int) int {
	if precision < 0 {
		return 0
	}
	if precision > MaxPrecision {
		return MaxPrecision
	}
	return precision
}
