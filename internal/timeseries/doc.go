// Package timeseries synthesizes and resamples physical forcing time
// series for coastal flood simulations.
//
// # Components
//
// A [TimeFrame] is a simulation window with a tick spacing derived from the
// window length (duration/1000, whole seconds). A [Synthetic] timeseries
// turns a handful of descriptive parameters — shape, duration, peak time,
// and either a peak value or a cumulative volume — into samples on that
// grid; a [CSVBacked] timeseries loads irregular samples from a delimited
// file. Both expose the same resampling contract: Series(frame) projects
// the timeseries, defined over its own local interval, onto the caller's
// frame grid.
//
// # Shapes
//
// Four curve families, dispatched through a flat shape table:
//
//	block     constant height; cumulative-driven blocks spread the volume
//	          evenly over the duration
//	triangle  linear ramp to the peak and back; cumulative-driven height is
//	          2*cumulative/duration so the area is exact
//	gaussian  bell centered on the interval, sigma = duration/6;
//	          cumulative-driven curves are normalized by their numerically
//	          integrated area
//	scs       a named reference storm distribution (SCS types 1, 1A, 2, 3)
//	          rescaled to the duration and differentiated against the
//	          target cumulative volume
//
// Curves driven by a cumulative volume conserve it under resampling: the
// trapezoid integral of the produced samples over [start, end] equals the
// requested cumulative within tolerance. Curves driven by a peak reproduce
// the peak exactly at the peak time.
//
// # Resampling policy
//
// Frame ticks strictly outside a timeseries' own interval are always
// exactly the fill value, never interpolated from neighbors. Ticks inside
// the interval come from the local data: nearest-neighbor snap limited to
// one grid step, with linear interpolation of interior gaps for file-backed
// data only (synthetic curves are already densely computed). When a backing
// file's native cadence disagrees with the grid, the longer of samples and
// local ticks is truncated to the shorter before assignment.
//
// # Parameter files
//
// Synthetic parameters round-trip through TOML: shape_type, nested
// {value, units} records for duration/peak_time/peak_value/cumulative, an
// optional fill_value, and scs_file_name/scs_type for the SCS shape. The
// reference distributions ship embedded; a site configuration can point at
// a replacement file.
//
// Everything here is deterministic and free of shared mutable state:
// computing many forcings over the same frame is safe from separate
// goroutines.
package timeseries
