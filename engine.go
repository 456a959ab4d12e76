package sunlight

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/thurmanmarka/sunlight/internal/metrics"
	"github.com/thurmanmarka/sunlight/internal/sun"
	"github.com/thurmanmarka/sunlight/internal/timeutil"
)

// Engine calculates the position of the Sun for an observer at a place and
// local date/time.
//
// Setters validate their argument and return false without changing
// anything when it is out of range. The position is computed on the first
// read of Azimuth or Altitude after an input changed.
type Engine struct {
	accuracy Accuracy

	latitude   float64 // degrees, north positive
	longitude  float64 // degrees, east positive
	timeZone   float64 // hours east of UTC
	dstMinutes int

	year, month, day int
	hours            float64 // local decimal hours in [0,24)

	pos      sun.Horizontal
	posValid bool
}

// NewEngine returns an engine at the default location and time using the
// given accuracy. An unknown accuracy falls back to AccuracyMinimum.
func NewEngine(a Accuracy) *Engine {
	if a != AccuracyMinimum && a != AccuracyMaximum {
		a = AccuracyMinimum
	}
	return &Engine{
		accuracy:   a,
		latitude:   defaultLatitude,
		longitude:  defaultLongitude,
		timeZone:   defaultTimeZone,
		dstMinutes: 0,
		year:       defaultYear,
		month:      defaultMonth,
		day:        defaultDay,
		hours:      defaultHours,
	}
}

// Accuracy returns the position model in use.
func (e *Engine) Accuracy() Accuracy { return e.accuracy }

// SetAccuracy changes the position model. Unknown values are rejected.
func (e *Engine) SetAccuracy(a Accuracy) bool {
	if a != AccuracyMinimum && a != AccuracyMaximum {
		rejected("accuracy", int(a))
		return false
	}
	if a != e.accuracy {
		e.accuracy = a
		e.posValid = false
	}
	return true
}

// Latitude returns the observer latitude in degrees, north positive.
func (e *Engine) Latitude() float64 { return e.latitude }

// Longitude returns the observer longitude in degrees, east positive.
func (e *Engine) Longitude() float64 { return e.longitude }

// TimeZoneHours returns the time zone in hours east of UTC.
func (e *Engine) TimeZoneHours() float64 { return e.timeZone }

// DaylightSavingMinutes returns the daylight saving offset in minutes.
func (e *Engine) DaylightSavingMinutes() int { return e.dstMinutes }

// LocalDateTime returns the local calendar date and decimal hours.
func (e *Engine) LocalDateTime() (year, month, day int, hours float64) {
	return e.year, e.month, e.day, e.hours
}

// SetLatitude sets the observer latitude in [-90,90] degrees.
func (e *Engine) SetLatitude(lat float64) bool {
	if !validLatitude(lat) {
		rejected("latitude", lat)
		return false
	}
	e.latitude = lat
	e.posValid = false
	return true
}

// SetLongitude sets the observer longitude in [-180,180] degrees, east
// positive.
func (e *Engine) SetLongitude(lon float64) bool {
	if !validLongitude(lon) {
		rejected("longitude", lon)
		return false
	}
	e.longitude = lon
	e.posValid = false
	return true
}

// SetTimeZoneHours sets the standard time offset from UTC in [-12,13] hours.
func (e *Engine) SetTimeZoneHours(tz float64) bool {
	if !validTimeZone(tz) {
		rejected("time-zone", tz)
		return false
	}
	e.timeZone = tz
	e.posValid = false
	return true
}

// SetDaylightSavingMinutes sets the daylight saving offset in [0,120]
// minutes. Zero means no daylight saving.
func (e *Engine) SetDaylightSavingMinutes(minutes int) bool {
	if !validDaylightSaving(minutes) {
		rejected("daylight-saving-minutes", minutes)
		return false
	}
	e.dstMinutes = minutes
	e.posValid = false
	return true
}

// SetLocalDateTime sets the local date and decimal hours in [0,24).
func (e *Engine) SetLocalDateTime(year, month, day int, hours float64) bool {
	if !validDate(year, month, day) || !validHours(hours) {
		rejected("local-date-time", []float64{float64(year), float64(month), float64(day), hours})
		return false
	}
	e.year, e.month, e.day, e.hours = year, month, day, hours
	e.posValid = false
	return true
}

// SetLocalJulianDay sets the local date/time from a local Julian Day.
func (e *Engine) SetLocalJulianDay(jd float64) bool {
	if !finite(jd) {
		rejected("local-julian-day", jd)
		return false
	}
	y, m, d, h := timeutil.CalendarFromJulianDay(jd)
	if !validDate(y, m, d) || !validHours(h) {
		rejected("local-julian-day", jd)
		return false
	}
	e.year, e.month, e.day, e.hours = y, m, d, h
	e.posValid = false
	return true
}

// SetJulianDay sets the local date/time from a UTC Julian Day using the
// current time zone and daylight saving offset.
func (e *Engine) SetJulianDay(jd float64) bool {
	if !finite(jd) {
		rejected("julian-day", jd)
		return false
	}
	return e.SetLocalJulianDay(jd + e.offsetHours()/24.0)
}

// offsetHours is local time minus UTC.
func (e *Engine) offsetHours() float64 {
	return e.timeZone + float64(e.dstMinutes)/60.0
}

// LocalJulianDay returns the Julian Day of the local date/time.
func (e *Engine) LocalJulianDay() float64 {
	return timeutil.JulianDay(e.year, e.month, e.day, e.hours)
}

// JulianDay returns the Julian Day of the local date/time expressed in UTC.
func (e *Engine) JulianDay() float64 {
	return e.LocalJulianDay() - e.offsetHours()/24.0
}

// Azimuth returns the Sun's azimuth in degrees, eastward from north, in
// [0,360).
func (e *Engine) Azimuth() float64 {
	e.compute()
	return e.pos.Azimuth
}

// Altitude returns the Sun's altitude above the horizon in degrees. It is
// negative when the Sun is below the horizon.
func (e *Engine) Altitude() float64 {
	e.compute()
	return e.pos.Altitude
}

func (e *Engine) compute() {
	if e.posValid {
		return
	}
	e.pos = sun.Position(e.JulianDay(), e.latitude, e.longitude, e.accuracy == AccuracyMaximum)
	e.posValid = true
	metrics.EngineComputations.WithLabelValues(e.accuracy.String()).Inc()
}

// Equal reports whether two engines have the same configuration. The
// computed position is not compared.
func (e *Engine) Equal(o *Engine) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.accuracy == o.accuracy &&
		e.latitude == o.latitude &&
		e.longitude == o.longitude &&
		e.timeZone == o.timeZone &&
		e.dstMinutes == o.dstMinutes &&
		e.year == o.year &&
		e.month == o.month &&
		e.day == o.day &&
		e.hours == o.hours
}

// altitudeAt returns the altitude at local decimal hour h of the engine's
// current date without changing the engine.
func (e *Engine) altitudeAt(h float64) float64 {
	jd := timeutil.JulianDay(e.year, e.month, e.day, h) - e.offsetHours()/24.0
	return sun.Position(jd, e.latitude, e.longitude, e.accuracy == AccuracyMaximum).Altitude
}

// -----------------------------
// Horizon coordinates <-> solar vector
// -----------------------------

// ConvertHorizonCoordsToSolarVector returns the unit vector pointing at the
// given azimuth and altitude (degrees). North is +Y, east is +X and up is +Z.
func ConvertHorizonCoordsToSolarVector(azimuth, altitude float64) r3.Vec {
	az := timeutil.Deg2Rad(azimuth)
	alt := timeutil.Deg2Rad(altitude)
	return r3.Vec{
		X: math.Sin(az) * math.Cos(alt),
		Y: math.Cos(az) * math.Cos(alt),
		Z: math.Sin(alt),
	}
}

// ConvertSolarVectorToHorizonCoords is the inverse of
// ConvertHorizonCoordsToSolarVector. The vector need not be unit length.
// ok is false for zero or non-finite vectors.
func ConvertSolarVectorToHorizonCoords(v r3.Vec) (azimuth, altitude float64, ok bool) {
	if !finite(v.X) || !finite(v.Y) || !finite(v.Z) {
		return 0, 0, false
	}
	n := r3.Norm(v)
	if n == 0 || !finite(n) {
		return 0, 0, false
	}

	z := v.Z / n
	if z > 1 {
		z = 1
	} else if z < -1 {
		z = -1
	}
	altitude = timeutil.Rad2Deg(math.Asin(z))
	azimuth = timeutil.Normalize360(timeutil.Rad2Deg(math.Atan2(v.X, v.Y)))
	return azimuth, altitude, true
}
