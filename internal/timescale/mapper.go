// Package timescale converts between screen pixels and calendar durations.
//
// All functions are pure. Conversions snap to whole grid units: an
// accumulated pointer delta yields a nonzero duration only once it has
// crossed a full unit's worth of pixels, so partial-day drags never produce
// fractional-day shifts.
package timescale

import (
	"math"
	"time"

	"github.com/evanmahr/ganttline/internal/domain"
)

// PixelsToDuration converts a signed pixel delta into a signed calendar
// delta, truncated toward zero to whole grid units. pixelsPerUnit must be
// positive; that is a caller contract, not a checked error.
func PixelsToDuration(deltaPixels, pixelsPerUnit float64, unit domain.GridUnit) time.Duration {
	units := math.Trunc(deltaPixels / pixelsPerUnit)
	return time.Duration(units) * unit.Duration()
}

// DurationToPixels is the inverse of PixelsToDuration for whole-unit deltas.
func DurationToPixels(d time.Duration, pixelsPerUnit float64, unit domain.GridUnit) float64 {
	return float64(d) / float64(unit.Duration()) * pixelsPerUnit
}

// SnapToGrid truncates d toward zero to a whole number of grid units.
func SnapToGrid(d time.Duration, unit domain.GridUnit) time.Duration {
	return d.Truncate(unit.Duration())
}

// Units returns how many whole grid units d spans.
func Units(d time.Duration, unit domain.GridUnit) int {
	return int(d / unit.Duration())
}
