// Package units models dimensional quantities for flood forcing inputs.
//
// # Categories
//
// A Quantity pairs a float value with a unit drawn from one of a fixed,
// closed set of categories: length, time, velocity, direction, discharge,
// rainfall intensity, area, and volume. Each category owns a conversion
// table mapping every unit in the category to a common base unit:
//
//	length:    meters (base), centimeters, millimeters, feet, inch, miles
//	time:      seconds (base), minutes, hours, days
//	velocity:  m/s (base), knots, mph
//	direction: deg N (degrees clockwise from true north)
//	discharge: m3/s (base), cfs
//	intensity: mm/hr (base), inch/hr
//	area:      m2 (base), cm2, mm2, sf, miles2
//	volume:    m3 (base), cf
//
// Conversion multiplies by the source unit's base factor and divides by the
// target's. Factors follow the international yard and pound agreement
// (1 ft = 0.3048 m exactly, 1 in = 25.4 mm exactly) and the international
// nautical mile (1 kn = 0.514444 m/s).
//
// # Validation domains
//
// Construction validates eagerly, never at first use:
//
//   - the value must be finite (no NaN, no infinities)
//   - length, velocity, discharge, intensity, area, and volume reject
//     negative values
//   - direction must lie within [0, 360]
//   - time offsets may be negative: a synthetic curve whose peak sits close
//     to the frame origin has a derived start of peak - duration/2, which
//     can precede the origin
//
// # Category safety
//
// The category is the type parameter, so arithmetic or comparison across
// categories does not compile. There is no runtime mixed-category error to
// handle; mixing velocity and length is unrepresentable.
//
// Comparisons convert both operands to a common unit and accept a 1%
// relative tolerance, so 1000 millimeters equals 1 meter even after a
// round-trip through a lossy serialization.
//
// Quantities are immutable value objects. Every arithmetic operation
// returns a new instance.
package units
