package units

import "errors"

var (
	// ErrValidation reports a value outside its category's domain, such as a
	// negative length or a direction beyond 360 degrees. Raised at
	// construction, never deferred to first use.
	ErrValidation = errors.New("invalid quantity value")

	// ErrInvalidUnit reports a unit string that is not in its category's
	// conversion table.
	ErrInvalidUnit = errors.New("invalid unit")
)
