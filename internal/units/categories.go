package units

import "fmt"

// Unit is the constraint satisfied by every unit category. The method set is
// deliberately unexported so the category set stays closed: downstream
// packages instantiate Quantity with these categories but cannot add new
// ones.
type Unit interface {
	~string
	// Category names the unit's physical category for error messages.
	Category() string
	toBase() (float64, bool)
	checkValue(v float64) error
}

// Parse validates a unit string against category U's conversion table.
// Deserialization paths (TOML parameter files, HTTP requests) go through
// here so an unknown unit fails before a Quantity is built.
func Parse[U Unit](s string) (U, error) {
	u := U(s)
	if _, ok := u.toBase(); !ok {
		var zero U
		return zero, fmt.Errorf("%w: %q is not a %s unit", ErrInvalidUnit, s, zero.Category())
	}
	return u, nil
}

func nonNegative(category string, v float64) error {
	if v < 0 {
		return fmt.Errorf("%w: %s cannot be negative, got %g", ErrValidation, category, v)
	}
	return nil
}

// LengthUnit measures heights and water levels.
type LengthUnit string

const (
	Meters      LengthUnit = "meters"
	Centimeters LengthUnit = "centimeters"
	Millimeters LengthUnit = "millimeters"
	Feet        LengthUnit = "feet"
	Inch        LengthUnit = "inch"
	Miles       LengthUnit = "miles"
)

var lengthToMeters = map[LengthUnit]float64{
	Meters:      1,
	Centimeters: 0.01,
	Millimeters: 0.001,
	Feet:        0.3048,
	Inch:        0.0254,
	Miles:       1609.344,
}

func (u LengthUnit) Category() string           { return "length" }
func (u LengthUnit) toBase() (float64, bool)    { f, ok := lengthToMeters[u]; return f, ok }
func (u LengthUnit) checkValue(v float64) error { return nonNegative(u.Category(), v) }

// TimeUnit measures durations and offsets within a simulation window.
type TimeUnit string

const (
	Seconds TimeUnit = "seconds"
	Minutes TimeUnit = "minutes"
	Hours   TimeUnit = "hours"
	Days    TimeUnit = "days"
)

var timeToSeconds = map[TimeUnit]float64{
	Seconds: 1,
	Minutes: 60,
	Hours:   3600,
	Days:    86400,
}

func (u TimeUnit) Category() string        { return "time" }
func (u TimeUnit) toBase() (float64, bool) { f, ok := timeToSeconds[u]; return f, ok }

// Time offsets are relative to a frame origin and may be negative.
func (u TimeUnit) checkValue(float64) error { return nil }

// VelocityUnit measures wind speeds.
type VelocityUnit string

const (
	MetersPerSecond VelocityUnit = "m/s"
	Knots           VelocityUnit = "knots"
	MilesPerHour    VelocityUnit = "mph"
)

var velocityToMPS = map[VelocityUnit]float64{
	MetersPerSecond: 1,
	Knots:           0.514444,
	MilesPerHour:    0.44704,
}

func (u VelocityUnit) Category() string           { return "velocity" }
func (u VelocityUnit) toBase() (float64, bool)    { f, ok := velocityToMPS[u]; return f, ok }
func (u VelocityUnit) checkValue(v float64) error { return nonNegative(u.Category(), v) }

// DirectionUnit measures compass bearings, degrees clockwise from true north.
type DirectionUnit string

const DegreesNorth DirectionUnit = "deg N"

var directionToDegrees = map[DirectionUnit]float64{
	DegreesNorth: 1,
}

func (u DirectionUnit) Category() string        { return "direction" }
func (u DirectionUnit) toBase() (float64, bool) { f, ok := directionToDegrees[u]; return f, ok }

func (u DirectionUnit) checkValue(v float64) error {
	if v < 0 || v > 360 {
		return fmt.Errorf("%w: direction must be within [0, 360], got %g", ErrValidation, v)
	}
	return nil
}

// DischargeUnit measures river discharge.
type DischargeUnit string

const (
	CubicMetersPerSecond DischargeUnit = "m3/s"
	CubicFeetPerSecond   DischargeUnit = "cfs"
)

var dischargeToCMS = map[DischargeUnit]float64{
	CubicMetersPerSecond: 1,
	CubicFeetPerSecond:   0.02831685,
}

func (u DischargeUnit) Category() string           { return "discharge" }
func (u DischargeUnit) toBase() (float64, bool)    { f, ok := dischargeToCMS[u]; return f, ok }
func (u DischargeUnit) checkValue(v float64) error { return nonNegative(u.Category(), v) }

// IntensityUnit measures rainfall intensity.
type IntensityUnit string

const (
	MillimetersPerHour IntensityUnit = "mm/hr"
	InchPerHour        IntensityUnit = "inch/hr"
)

var intensityToMMH = map[IntensityUnit]float64{
	MillimetersPerHour: 1,
	InchPerHour:        25.4,
}

func (u IntensityUnit) Category() string           { return "intensity" }
func (u IntensityUnit) toBase() (float64, bool)    { f, ok := intensityToMMH[u]; return f, ok }
func (u IntensityUnit) checkValue(v float64) error { return nonNegative(u.Category(), v) }

// AreaUnit measures catchment and footprint areas.
type AreaUnit string

const (
	SquareMeters      AreaUnit = "m2"
	SquareCentimeters AreaUnit = "cm2"
	SquareMillimeters AreaUnit = "mm2"
	SquareFeet        AreaUnit = "sf"
	SquareMiles       AreaUnit = "miles2"
)

var areaToSquareMeters = map[AreaUnit]float64{
	SquareMeters:      1,
	SquareCentimeters: 1e-4,
	SquareMillimeters: 1e-6,
	SquareFeet:        0.09290304,
	SquareMiles:       2589988.110336,
}

func (u AreaUnit) Category() string           { return "area" }
func (u AreaUnit) toBase() (float64, bool)    { f, ok := areaToSquareMeters[u]; return f, ok }
func (u AreaUnit) checkValue(v float64) error { return nonNegative(u.Category(), v) }

// VolumeUnit measures water volumes.
type VolumeUnit string

const (
	CubicMeters VolumeUnit = "m3"
	CubicFeet   VolumeUnit = "cf"
)

var volumeToCubicMeters = map[VolumeUnit]float64{
	CubicMeters: 1,
	CubicFeet:   0.02831685,
}

func (u VolumeUnit) Category() string           { return "volume" }
func (u VolumeUnit) toBase() (float64, bool)    { f, ok := volumeToCubicMeters[u]; return f, ok }
func (u VolumeUnit) checkValue(v float64) error { return nonNegative(u.Category(), v) }
