package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// Round-tripping a value through any unit pair within a category must come
// back within the comparison tolerance.

func roundTrip[U Unit](t *rapid.T, all []U) {
	from := rapid.SampledFrom(all).Draw(t, "from")
	to := rapid.SampledFrom(all).Draw(t, "to")
	v := rapid.Float64Range(0, 1e9).Draw(t, "v")

	q := MustNew(v, from)
	converted, err := q.ConvertTo(to)
	if err != nil {
		t.Fatalf("convert to %s: %v", to, err)
	}
	back, err := converted.Convert(from)
	if err != nil {
		t.Fatalf("convert back to %s: %v", from, err)
	}
	if !tolerantEq(v, back) {
		t.Fatalf("round trip %s -> %s: %g became %g", from, to, v, back)
	}
	if !q.Equal(converted) {
		t.Fatalf("%v not Equal to converted %v", q, converted)
	}
}

func TestQuantityRoundTrip(t *testing.T) {
	t.Run("length", rapid.MakeCheck(func(t *rapid.T) {
		roundTrip(t, []LengthUnit{Meters, Centimeters, Millimeters, Feet, Inch, Miles})
	}))
	t.Run("time", rapid.MakeCheck(func(t *rapid.T) {
		roundTrip(t, []TimeUnit{Seconds, Minutes, Hours, Days})
	}))
	t.Run("velocity", rapid.MakeCheck(func(t *rapid.T) {
		roundTrip(t, []VelocityUnit{MetersPerSecond, Knots, MilesPerHour})
	}))
	t.Run("discharge", rapid.MakeCheck(func(t *rapid.T) {
		roundTrip(t, []DischargeUnit{CubicMetersPerSecond, CubicFeetPerSecond})
	}))
	t.Run("intensity", rapid.MakeCheck(func(t *rapid.T) {
		roundTrip(t, []IntensityUnit{MillimetersPerHour, InchPerHour})
	}))
	t.Run("area", rapid.MakeCheck(func(t *rapid.T) {
		roundTrip(t, []AreaUnit{SquareMeters, SquareCentimeters, SquareMillimeters, SquareFeet, SquareMiles})
	}))
	t.Run("volume", rapid.MakeCheck(func(t *rapid.T) {
		roundTrip(t, []VolumeUnit{CubicMeters, CubicFeet})
	}))
}

// Addition commutes within tolerance regardless of the operand units.
func TestAddCommutes(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := MustNew(rapid.Float64Range(0, 1e6).Draw(t, "a"), Meters)
		b := MustNew(rapid.Float64Range(0, 1e6).Draw(t, "b"), Feet)

		ab, err := a.Add(b)
		if err != nil {
			t.Fatalf("a+b: %v", err)
		}
		ba, err := b.Add(a)
		if err != nil {
			t.Fatalf("b+a: %v", err)
		}
		assert.True(t, ab.Equal(ba), "a+b=%v b+a=%v", ab, ba)
	})
}
