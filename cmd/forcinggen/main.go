// Command forcinggen renders a forcing onto a time grid and writes the result
// as CSV, for inspecting parameter files and gauge data offline.
//
// Usage:
//
//	go run ./cmd/forcinggen \
//	  -kind rainfall -params storm.toml \
//	  -start 2021-01-01T00:00:00Z -end 2021-01-01T06:00:00Z -step 10m \
//	  -out storm.csv
//
//	go run ./cmd/forcinggen \
//	  -kind water_level -csv gauge.csv -units meters -out resampled.csv
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/couchcryptid/flood-forcing/internal/config"
	"github.com/couchcryptid/flood-forcing/internal/forcing"
	"github.com/couchcryptid/flood-forcing/internal/timeseries"
	"github.com/couchcryptid/flood-forcing/internal/units"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

type options struct {
	paramsPath string
	csvPath    string
	unitsStr   string
	site       *timeseries.SCSDefaults
	frame      timeseries.TimeFrame
	hasFrame   bool
}

func run() error {
	kindStr := flag.String("kind", "", "forcing kind (rainfall, wind_speed, wind_direction, discharge, water_level)")
	paramsPath := flag.String("params", "", "TOML parameter file for a synthetic forcing")
	csvPath := flag.String("csv", "", "backing CSV file for a file-backed forcing")
	unitsStr := flag.String("units", "", "units of the backing CSV values")
	startStr := flag.String("start", "", "frame start (RFC3339)")
	endStr := flag.String("end", "", "frame end (RFC3339)")
	stepStr := flag.String("step", "", "frame step (Go duration, optional)")
	sitePath := flag.String("site", "", "site defaults YAML file (optional)")
	outPath := flag.String("out", "", "output CSV path (default stdout)")
	flag.Parse()

	kind := forcing.Kind(*kindStr)
	if !kind.Valid() {
		flag.Usage()
		return fmt.Errorf("unknown -kind %q", *kindStr)
	}
	if (*paramsPath == "") == (*csvPath == "") {
		flag.Usage()
		return fmt.Errorf("exactly one of -params and -csv is required")
	}

	site, err := config.LoadSite(*sitePath)
	if err != nil {
		return err
	}

	opts := options{
		paramsPath: *paramsPath,
		csvPath:    *csvPath,
		unitsStr:   *unitsStr,
		site:       site.SCSDefaults(),
	}

	if *startStr != "" || *endStr != "" {
		opts.frame, err = parseFrame(*startStr, *endStr, *stepStr)
		if err != nil {
			return err
		}
		opts.hasFrame = true
	} else if *paramsPath != "" {
		return fmt.Errorf("-start and -end are required with -params")
	}

	series, err := render(kind, opts)
	if err != nil {
		return err
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if err := writeCSV(out, series); err != nil {
		return err
	}

	log.Printf("%s: %d points", kind, series.Len())
	return nil
}

func parseFrame(startStr, endStr, stepStr string) (timeseries.TimeFrame, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return timeseries.TimeFrame{}, fmt.Errorf("invalid -start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return timeseries.TimeFrame{}, fmt.Errorf("invalid -end: %w", err)
	}
	if stepStr == "" {
		return timeseries.NewTimeFrame(start, end)
	}
	step, err := time.ParseDuration(stepStr)
	if err != nil {
		return timeseries.TimeFrame{}, fmt.Errorf("invalid -step: %w", err)
	}
	return timeseries.NewTimeFrameWithStep(start, end, step)
}

// render dispatches on the forcing kind to bind the matching unit category.
func render(kind forcing.Kind, o options) (timeseries.Series, error) {
	switch kind {
	case forcing.KindRainfall:
		return renderAs[units.IntensityUnit](o)
	case forcing.KindWindSpeed:
		return renderAs[units.VelocityUnit](o)
	case forcing.KindWindDirection:
		return renderAs[units.DirectionUnit](o)
	case forcing.KindDischarge:
		return renderAs[units.DischargeUnit](o)
	case forcing.KindWaterLevel:
		return renderAs[units.LengthUnit](o)
	default:
		return timeseries.Series{}, fmt.Errorf("unknown forcing kind %q", kind)
	}
}

func renderAs[U units.Unit](o options) (timeseries.Series, error) {
	if o.paramsPath != "" {
		ts, err := timeseries.Load[U](o.paramsPath, o.site)
		if err != nil {
			return timeseries.Series{}, err
		}
		return ts.Series(o.frame)
	}

	u, err := units.Parse[U](o.unitsStr)
	if err != nil {
		return timeseries.Series{}, err
	}
	ts, err := timeseries.OpenCSV(timeseries.CSVParams[U]{Path: o.csvPath, Units: u})
	if err != nil {
		return timeseries.Series{}, err
	}
	frame := o.frame
	if !o.hasFrame {
		// No frame given: replay the file on its own span.
		frame, err = ts.ReadTimeFrame()
		if err != nil {
			return timeseries.Series{}, err
		}
	}
	return ts.Series(frame)
}

func writeCSV(f *os.File, series timeseries.Series) error {
	w := csv.NewWriter(f)
	if err := w.Write([]string{"time", "value"}); err != nil {
		return err
	}
	for i := 0; i < series.Len(); i++ {
		ts, v := series.At(i)
		row := []string{
			ts.UTC().Format("2006-01-02 15:04:05"),
			strconv.FormatFloat(v, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
