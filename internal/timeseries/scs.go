package timeseries

import (
	"bytes"
	"encoding/csv"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
)

// SCSDefaults is the site-level default reference curve consulted when an
// SCS-shaped timeseries is built without an explicit curve file or storm
// type. It is always passed explicitly — never read from a hidden global —
// so the engine stays testable without a live site configuration.
type SCSDefaults struct {
	File      string // path to the curve file; empty selects the embedded copy
	StormType string // column in the curve file, e.g. "type_2"
}

// The embedded copy of the standard SCS 24-hour rainfall distributions
// (types 1, 1A, 2 and 3) as cumulative fractions of total depth versus
// fraction of storm duration.
//
//go:embed scs_rainfall.csv
var embeddedSCSData []byte

// scsCurve is a reference cumulative-fraction storm distribution. Both axes
// are dimensionless fractions in [0, 1], strictly sorted in time.
type scsCurve struct {
	stormType    string
	fractions    []float64
	cumFractions []float64
}

// loadSCSCurve reads the named storm type from a curve file. An empty file
// name selects the embedded default distributions.
func loadSCSCurve(file, stormType string) (*scsCurve, error) {
	var r io.Reader
	if file == "" {
		r = bytes.NewReader(embeddedSCSData)
		file = "embedded scs_rainfall.csv"
	} else {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("open SCS curve file: %w", err)
		}
		defer f.Close()
		r = f
	}

	rows, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedFile, file, err)
	}
	if len(rows) < 3 {
		return nil, fmt.Errorf("%w: %s has no data rows", ErrMalformedFile, file)
	}

	col := -1
	for i, name := range rows[0] {
		if name == stormType {
			col = i
		}
	}
	if col <= 0 {
		return nil, fmt.Errorf("%w: storm type %q not found in %s", ErrValidation, stormType, file)
	}

	curve := &scsCurve{stormType: stormType}
	for lineNo, row := range rows[1:] {
		if col >= len(row) {
			return nil, fmt.Errorf("%w: %s line %d has %d columns", ErrMalformedFile, file, lineNo+2, len(row))
		}
		frac, err1 := strconv.ParseFloat(row[0], 64)
		val, err2 := strconv.ParseFloat(row[col], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("%w: %s line %d is not numeric", ErrMalformedFile, file, lineNo+2)
		}
		curve.fractions = append(curve.fractions, frac)
		curve.cumFractions = append(curve.cumFractions, val)
	}

	if !sort.Float64sAreSorted(curve.fractions) {
		return nil, fmt.Errorf("%w: %s time fractions are not ascending", ErrMalformedFile, file)
	}
	return curve, nil
}
