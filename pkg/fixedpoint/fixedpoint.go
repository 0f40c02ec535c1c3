// Package fixedpoint implements the scaled-integer Price/Quantity scalar
// used throughout the order book. Prices and volumes are represented as a
// 64-bit signed integer scaled by Multiplier, giving exact equality and
// ordering without the rounding hazards of floating point at price-level
// granularity.
package fixedpoint

import (
	"fmt"
	"math"
)

// Multiplier is the fixed scale applied to every Price. i64 covers
// roughly ±9.2e12 at this scale, which is the admissible price/volume range.
const Multiplier int64 = 1_000_000

// Price is a scaled fixed-point scalar. It is used both for prices and for
// volumes/notionals; the spec does not distinguish the two at the type level.
type Price struct {
	scaled int64
}

// ZERO is the additive identity.
var ZERO = Price{scaled: 0}

// INFINITY is a saturating sentinel denoting the absence of a bound. It must
// never participate in arithmetic; it exists only so the empty side of a
// ladder can be compared against without special-casing every call site.
var INFINITY = Price{scaled: math.MaxInt64}

// FromInt builds a Price from a whole number.
func FromInt(v int64) Price {
	return Price{scaled: v * Multiplier}
}

// FromFloat builds a Price from a float64, scaling and truncating toward
// zero. It returns ErrOverflow if the scaled value does not fit in an int64.
func FromFloat(v float64) (Price, error) {
	scaled := v * float64(Multiplier)
	if scaled > float64(math.MaxInt64) || scaled < float64(math.MinInt64) {
		return Price{}, fmt.Errorf("%w: %g does not fit in a scaled int64", ErrOverflow, v)
	}
	return Price{scaled: int64(scaled)}, nil
}

// ToFloat converts back to a float64. For display and test assertions only;
// downstream bucketing/ordering must always use the scaled integer form.
func (p Price) ToFloat() float64 {
	return float64(p.scaled) / float64(Multiplier)
}

// Add returns p + other.
func (p Price) Add(other Price) Price {
	return Price{scaled: p.scaled + other.scaled}
}

// AddAssign adds other to p in place.
func (p *Price) AddAssign(other Price) {
	p.scaled += other.scaled
}

// Sub returns p - other.
func (p Price) Sub(other Price) Price {
	return Price{scaled: p.scaled - other.scaled}
}

// Cmp returns -1, 0, or 1 as p is less than, equal to, or greater than other.
func (p Price) Cmp(other Price) int {
	switch {
	case p.scaled < other.scaled:
		return -1
	case p.scaled > other.scaled:
		return 1
	default:
		return 0
	}
}

// LT reports whether p < other.
func (p Price) LT(other Price) bool { return p.scaled < other.scaled }

// LTE reports whether p <= other.
func (p Price) LTE(other Price) bool { return p.scaled <= other.scaled }

// GT reports whether p > other.
func (p Price) GT(other Price) bool { return p.scaled > other.scaled }

// GTE reports whether p >= other.
func (p Price) GTE(other Price) bool { return p.scaled >= other.scaled }

// Equal reports whether p == other.
func (p Price) Equal(other Price) bool { return p.scaled == other.scaled }

// IsZero reports whether p is exactly ZERO.
func (p Price) IsZero() bool { return p.scaled == 0 }

// IsPositive reports whether p > ZERO.
func (p Price) IsPositive() bool { return p.scaled > 0 }

// Sum folds a sequence of Prices with Add, returning ZERO for an empty slice.
func Sum(values []Price) Price {
	var total Price
	for _, v := range values {
		total.AddAssign(v)
	}
	return total
}

// String renders the scalar as a plain decimal, for logs and the book
// display only.
func (p Price) String() string {
	return fmt.Sprintf("%g", p.ToFloat())
}
