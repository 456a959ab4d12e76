package timeutil

import (
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/refraction"
	"github.com/soniakeys/unit"
)

// J2000 is the Julian Day of the J2000.0 epoch (2000-01-01 12:00 TT).
const J2000 = 2451545.0

// IsLeapYear reports whether year is a Gregorian leap year: divisible by 4,
// except centuries that are not divisible by 400.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in month (1-12) of year, or 0 for
// an invalid month.
func DaysInMonth(month, year int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	default:
		return 0
	}
}

// -----------------------------
// Julian Day
// -----------------------------

// JulianDay converts a proleptic Gregorian calendar date plus decimal hours
// into a Julian Day number.
func JulianDay(year, month, day int, hours float64) float64 {
	y := year
	m := month

	if m <= 2 {
		y -= 1
		m += 12
	}

	A := y / 100
	B := 2 - A + A/4

	jd := math.Floor(365.25*float64(y+4716)) +
		math.Floor(30.6001*float64(m+1)) +
		float64(day) + float64(B) - 1524.5 +
		hours/24.0

	return jd
}

// CalendarFromJulianDay is the inverse of JulianDay. The returned hours are
// in [0,24).
func CalendarFromJulianDay(jd float64) (year, month, day int, hours float64) {
	y, m, d := julian.JDToCalendar(jd)
	whole := math.Floor(d)
	hours = (d - whole) * 24.0
	if hours >= 24.0 {
		hours = math.Nextafter(24.0, 0)
	}
	return y, m, int(whole), hours
}

// -----------------------------
// Local/UTC shifting
// -----------------------------

// ShiftHours moves a calendar date and decimal hour by delta hours,
// letting the calendar roll over months and years as needed.
func ShiftHours(year, month, day int, hours, delta float64) (int, int, int, float64) {
	base := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)

	// Nanosecond resolution keeps round trips exact to well below a microsecond.
	ns := math.Round((hours + delta) * float64(time.Hour))
	t := base.Add(time.Duration(ns))

	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	h := float64(t.Sub(midnight)) / float64(time.Hour)

	return t.Year(), int(t.Month()), t.Day(), h
}

// -----------------------------
// Basic degree/radian helpers.
// -----------------------------

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180.0
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(r float64) float64 {
	return r * 180.0 / math.Pi
}

// Normalize360 wraps an angle into [0,360).
func Normalize360(d float64) float64 {
	d = math.Mod(d, 360.0)
	if d < 0 {
		d += 360.0
	}
	// math.Mod of a tiny negative value can round back up to 360.
	if d >= 360.0 {
		d = 0
	}
	return d
}

// Normalize24 wraps decimal hours into [0,24).
func Normalize24(h float64) float64 {
	h = math.Mod(h, 24.0)
	if h < 0 {
		h += 24.0
	}
	if h >= 24.0 {
		h = 0
	}
	return h
}

// ApproxRefraction returns atmospheric refraction in degrees at geometric
// altitude altDeg under standard conditions, using Saemundsson's formula.
// Add the result to the geometric altitude to get the apparent altitude.
func ApproxRefraction(altDeg float64) float64 {
	// Deep below the horizon refraction is not meaningful here.
	if altDeg < -1.0 {
		return 0
	}

	// Keep the denominator well away from its pole near -5.11°.
	alt := altDeg
	if alt < -0.5 {
		alt = -0.5
	}

	r := refraction.Saemundsson(unit.AngleFromDeg(alt)).Deg()
	if math.IsInf(r, 0) || math.IsNaN(r) {
		return 0
	}
	return r
}
