// Package sunlight computes where the Sun is in the sky and describes a sun
// for lighting a scene.
//
// The package has three layers:
//
//   - Engine, a deterministic solar position calculator for an observer
//     at a place, local date/time, time zone and daylight saving offset.
//   - Sun, a validated descriptor holding everything needed to describe a
//     sun: place and time, a manually authored azimuth/altitude, the world
//     direction of north, intensity and shadow intensity. A Sun created with
//     NewComputedSun derives its azimuth/altitude from the place and time
//     (through a transient Engine) unless manual control is on.
//   - Light, a directional light projected from a Sun.
//
// Setters validate their input and return false, leaving the receiver
// untouched, when it is out of range. Read accessors never fail.
//
// None of the types lock. A computed Sun writes its memo from Azimuth and
// Altitude, so those reads count as writes when a Sun is shared between
// goroutines.
package sunlight

import (
	"fmt"
	"math"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/thurmanmarka/sunlight/internal/logger"
	"github.com/thurmanmarka/sunlight/internal/metrics"
	"github.com/thurmanmarka/sunlight/internal/timeutil"
)

// Accuracy selects the solar position model used by an Engine.
type Accuracy int

const (
	// AccuracyMinimum is suitable for doing many calculations when rough
	// results are needed quickly.
	AccuracyMinimum Accuracy = iota

	// AccuracyMaximum is suitable for generating accurate tables of sun
	// positions (an ephemeris).
	AccuracyMaximum
)

// String returns "minimum" or "maximum".
func (a Accuracy) String() string {
	switch a {
	case AccuracyMinimum:
		return "minimum"
	case AccuracyMaximum:
		return "maximum"
	default:
		return fmt.Sprintf("Accuracy(%d)", int(a))
	}
}

// ParseAccuracy parses "minimum"/"min" or "maximum"/"max", ignoring case.
func ParseAccuracy(s string) (Accuracy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "minimum", "min", "":
		return AccuracyMinimum, nil
	case "maximum", "max":
		return AccuracyMaximum, nil
	default:
		return AccuracyMinimum, fmt.Errorf("unknown accuracy %q (use minimum or maximum)", s)
	}
}

const (
	minYear = 1800
	maxYear = 2199
)

// Defaults shared by NewEngine and NewSun: the Royal Observatory,
// Greenwich, at noon on 2000-01-01 local time.
const (
	defaultLatitude              = 51.4769
	defaultLongitude             = -0.0005
	defaultTimeZone              = 0.0
	defaultDaylightSavingMinutes = 60
	defaultYear                  = 2000
	defaultMonth                 = 1
	defaultDay                   = 1
	defaultHours                 = 12.0
	defaultNorth                 = 90.0
)

// MinYear returns the earliest year accepted by the date/time setters.
func MinYear() int { return minYear }

// MaxYear returns the latest year accepted by the date/time setters.
func MaxYear() int { return maxYear }

// DaysInMonth returns the number of days in month (1-12) of year using the
// Gregorian leap year rule, or 0 for an invalid month.
func DaysInMonth(month, year int) int {
	return timeutil.DaysInMonth(month, year)
}

// IsValidDateTime reports whether the given local date and clock time is
// within the range supported by Sun and Engine.
func IsValidDateTime(year, month, day, hour, min, sec int) bool {
	return validDate(year, month, day) &&
		hour >= 0 && hour <= 23 &&
		min >= 0 && min <= 59 &&
		sec >= 0 && sec <= 59
}

// RegisterMetrics registers the package's Prometheus collectors with reg,
// or with the default registry when reg is nil.
func RegisterMetrics(reg prometheus.Registerer) error {
	return metrics.Register(reg)
}

// -----------------------------
// Range checks shared by Engine and Sun. NaN fails every comparison, so it
// is rejected everywhere without a separate check.
// -----------------------------

func validDate(year, month, day int) bool {
	return year >= minYear && year <= maxYear &&
		month >= 1 && month <= 12 &&
		day >= 1 && day <= timeutil.DaysInMonth(month, year)
}

func validHours(h float64) bool        { return h >= 0 && h < 24 }
func validLatitude(lat float64) bool   { return lat >= -90 && lat <= 90 }
func validLongitude(lon float64) bool  { return lon >= -180 && lon <= 180 }
func validTimeZone(tz float64) bool    { return tz >= -12 && tz <= 13 }
func validDaylightSaving(min int) bool { return min >= 0 && min <= 120 }
func validAltitude(alt float64) bool   { return alt >= -90 && alt <= 90 }
func validAngle360(deg float64) bool   { return deg >= 0 && deg < 360 }
func validUnitInterval(v float64) bool { return v >= 0 && v <= 1 }
func validNonNegative(v float64) bool  { return v >= 0 && !math.IsInf(v, 1) }
func finite(v float64) bool            { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// rejected records a setter argument that failed validation.
func rejected(field string, value any) {
	metrics.Rejected(field)
	logger.Debug("rejected out-of-range value",
		zap.String("field", field),
		zap.Any("value", value))
}
