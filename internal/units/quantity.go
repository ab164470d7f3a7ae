package units

import (
	"fmt"
	"math"
)

// relTolerance is the relative tolerance accepted by quantity comparisons.
// Forcing parameters round-trip through text formats, so exact float
// equality is the wrong contract.
const relTolerance = 0.01

// Quantity is an immutable (value, unit) pair within category U.
type Quantity[U Unit] struct {
	value float64
	units U
}

// New builds a validated Quantity. It fails with ErrInvalidUnit when units
// is not in the category table, and with ErrValidation when the value is
// non-finite or outside the category's domain.
func New[U Unit](value float64, units U) (Quantity[U], error) {
	if _, ok := units.toBase(); !ok {
		return Quantity[U]{}, fmt.Errorf("%w: %q is not a %s unit", ErrInvalidUnit, string(units), units.Category())
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Quantity[U]{}, fmt.Errorf("%w: %s value must be finite", ErrValidation, units.Category())
	}
	if err := units.checkValue(value); err != nil {
		return Quantity[U]{}, err
	}
	return Quantity[U]{value: value, units: units}, nil
}

// MustNew is New for literals; it panics on invalid input.
func MustNew[U Unit](value float64, units U) Quantity[U] {
	q, err := New(value, units)
	if err != nil {
		panic(err)
	}
	return q
}

// NewFromString parses the unit string and builds a validated Quantity.
func NewFromString[U Unit](value float64, units string) (Quantity[U], error) {
	u, err := Parse[U](units)
	if err != nil {
		return Quantity[U]{}, err
	}
	return New(value, u)
}

// Value returns the magnitude in the quantity's own units.
func (q Quantity[U]) Value() float64 { return q.value }

// Units returns the quantity's unit.
func (q Quantity[U]) Units() U { return q.units }

func (q Quantity[U]) String() string {
	return fmt.Sprintf("%g %s", q.value, string(q.units))
}

// Convert returns the magnitude expressed in target units.
func (q Quantity[U]) Convert(target U) (float64, error) {
	from, ok := q.units.toBase()
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a %s unit", ErrInvalidUnit, string(q.units), q.units.Category())
	}
	to, ok := target.toBase()
	if !ok {
		return 0, fmt.Errorf("%w: %q is not a %s unit", ErrInvalidUnit, string(target), target.Category())
	}
	return q.value * from / to, nil
}

// ConvertTo returns a new Quantity expressed in target units.
func (q Quantity[U]) ConvertTo(target U) (Quantity[U], error) {
	v, err := q.Convert(target)
	if err != nil {
		return Quantity[U]{}, err
	}
	return New(v, target)
}

// Add returns q + other in q's units.
func (q Quantity[U]) Add(other Quantity[U]) (Quantity[U], error) {
	v, err := other.Convert(q.units)
	if err != nil {
		return Quantity[U]{}, err
	}
	return New(q.value+v, q.units)
}

// Sub returns q - other in q's units. The result is revalidated, so
// subtracting below zero in a non-negative category fails.
func (q Quantity[U]) Sub(other Quantity[U]) (Quantity[U], error) {
	v, err := other.Convert(q.units)
	if err != nil {
		return Quantity[U]{}, err
	}
	return New(q.value-v, q.units)
}

// MulScalar returns q scaled by f.
func (q Quantity[U]) MulScalar(f float64) (Quantity[U], error) {
	return New(q.value*f, q.units)
}

// DivScalar returns q divided by f.
func (q Quantity[U]) DivScalar(f float64) (Quantity[U], error) {
	if f == 0 {
		return Quantity[U]{}, fmt.Errorf("%w: division by zero scalar", ErrValidation)
	}
	return New(q.value/f, q.units)
}

// Div returns the dimensionless ratio q / other after converting other to
// q's units.
func (q Quantity[U]) Div(other Quantity[U]) (float64, error) {
	v, err := other.Convert(q.units)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, fmt.Errorf("%w: division by zero %s", ErrValidation, q.units.Category())
	}
	return q.value / v, nil
}

// Equal reports whether the two quantities agree within the relative
// tolerance after conversion to a common unit.
func (q Quantity[U]) Equal(other Quantity[U]) bool {
	v, err := other.Convert(q.units)
	if err != nil {
		return false
	}
	return tolerantEq(q.value, v)
}

// Less reports q < other beyond the comparison tolerance.
func (q Quantity[U]) Less(other Quantity[U]) bool {
	v, err := other.Convert(q.units)
	if err != nil {
		return false
	}
	return q.value < v && !tolerantEq(q.value, v)
}

// Greater reports q > other beyond the comparison tolerance.
func (q Quantity[U]) Greater(other Quantity[U]) bool {
	v, err := other.Convert(q.units)
	if err != nil {
		return false
	}
	return q.value > v && !tolerantEq(q.value, v)
}

// LessEq reports q <= other within the comparison tolerance.
func (q Quantity[U]) LessEq(other Quantity[U]) bool {
	return q.Less(other) || q.Equal(other)
}

// GreaterEq reports q >= other within the comparison tolerance.
func (q Quantity[U]) GreaterEq(other Quantity[U]) bool {
	return q.Greater(other) || q.Equal(other)
}

func tolerantEq(a, b float64) bool {
	if a == b {
		return true
	}
	denom := math.Max(math.Abs(a), math.Abs(b))
	return math.Abs(a-b) <= relTolerance*denom
}
