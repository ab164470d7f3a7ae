package timeseries

import "errors"

var (
	// ErrValidation reports bad constructor input: a non-positive duration,
	// missing or duplicate peak-value-vs-cumulative, start at or after end.
	// Always raised at construction, never deferred.
	ErrValidation = errors.New("invalid timeseries parameters")

	// ErrUnsupportedShape reports an unknown shape identifier. Construction
	// validates the shape, so hitting this from Data is defensive.
	ErrUnsupportedShape = errors.New("unsupported shape")

	// ErrMalformedFile reports a backing data file without at least one
	// parseable data column.
	ErrMalformedFile = errors.New("malformed data file")

	// ErrEmptyFile reports a backing data file with no content.
	ErrEmptyFile = errors.New("empty data file")

	// ErrMissingConfiguration reports an SCS shape with no reference curve:
	// none supplied in the parameters and no site-level default available.
	ErrMissingConfiguration = errors.New("missing SCS curve configuration")
)
