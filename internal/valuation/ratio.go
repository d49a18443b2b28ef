package valuation

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// UndefinedDisplay is rendered for a ratio whose denominator was zero.
const UndefinedDisplay = "—"

// jsonPlaces is the precision ratios are emitted with in JSON.
const jsonPlaces = 4

var hundred = decimal.NewFromInt(100)

// Ratio is a quotient that may be undefined. A zero or negative denominator yields the
// undefined ratio instead of NaN, Inf or a panic, so partially filled dashboards stay renderable.
// The zero value is undefined.
type Ratio struct {
	value   decimal.Decimal
	defined bool
}

// Divide returns num/den, or the undefined ratio when den is not positive.
func Divide(num, den decimal.Decimal) Ratio {
	if !den.IsPositive() {
		return Ratio{}
	}
	return Ratio{value: num.Div(den), defined: true}
}

// Percent returns num/den*100, or the undefined ratio when den is not positive.
func Percent(num, den decimal.Decimal) Ratio {
	r := Divide(num, den)
	if r.defined {
		r.value = r.value.Mul(hundred)
	}
	return r
}

// Defined reports whether the ratio has a value.
func (r Ratio) Defined() bool {
	return r.defined
}

// Value returns the ratio and whether it is defined.
func (r Ratio) Value() (decimal.Decimal, bool) {
	return r.value, r.defined
}

// AtLeast reports whether the ratio is defined and >= threshold.
func (r Ratio) AtLeast(threshold decimal.Decimal) bool {
	return r.defined && r.value.GreaterThanOrEqual(threshold)
}

// String formats the ratio with two decimals, or "—" when undefined.
func (r Ratio) String() string {
	if !r.defined {
		return UndefinedDisplay
	}
	return r.value.StringFixed(2)
}

// Multiple formats the ratio as a multiple, e.g. "1.71x".
func (r Ratio) Multiple() string {
	if !r.defined {
		return UndefinedDisplay
	}
	return r.value.StringFixed(2) + "x"
}

// MarshalJSON emits null for an undefined ratio.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.defined {
		return []byte("null"), nil
	}
	return []byte(r.value.Round(jsonPlaces).String()), nil
}

// UnmarshalJSON accepts null or a number.
func (r *Ratio) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*r = Ratio{}
		return nil
	}
	var d decimal.Decimal
	if err := json.Unmarshal(data, &d); err != nil {
		return err
	}
	*r = Ratio{value: d, defined: true}
	return nil
}

// Class is a coarse performance bucket shown as a badge next to a ratio.
type Class string

const (
	ClassStrong   Class = "strong"
	ClassModerate Class = "moderate"
	ClassWeak     Class = "weak"
	ClassUnrated  Class = "unrated"
)

var (
	one         = decimal.NewFromInt(1)
	two         = decimal.NewFromInt(2)
	oneAndAHalf = decimal.RequireFromString("1.5")
)

// ClassifyDPI buckets a DPI: >=1 strong, otherwise weak.
func ClassifyDPI(dpi Ratio) Class {
	switch {
	case !dpi.Defined():
		return ClassUnrated
	case dpi.AtLeast(one):
		return ClassStrong
	default:
		return ClassWeak
	}
}

// ClassifyTVPI buckets a TVPI: >=1.5 strong, [1.0,1.5) moderate, <1.0 weak.
func ClassifyTVPI(tvpi Ratio) Class {
	switch {
	case !tvpi.Defined():
		return ClassUnrated
	case tvpi.AtLeast(oneAndAHalf):
		return ClassStrong
	case tvpi.AtLeast(one):
		return ClassModerate
	default:
		return ClassWeak
	}
}

// ClassifyMOIC buckets a MOIC: >=2 strong, >=1 moderate, otherwise weak.
func ClassifyMOIC(moic Ratio) Class {
	switch {
	case !moic.Defined():
		return ClassUnrated
	case moic.AtLeast(two):
		return ClassStrong
	case moic.AtLeast(one):
		return ClassModerate
	default:
		return ClassWeak
	}
}
