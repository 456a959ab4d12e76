package sunlight

import (
	"github.com/thurmanmarka/sunlight/internal/digest"
	"github.com/thurmanmarka/sunlight/internal/metrics"
	"github.com/thurmanmarka/sunlight/internal/timeutil"
)

// Sun describes a sun: the observer's place and local time, a manually
// authored azimuth and altitude, the world direction of north and the
// light's intensity and shadow intensity.
//
// A Sun from NewSun stores its azimuth and altitude and returns them as
// set. A Sun from NewComputedSun derives them from the place and time
// whenever manual control is off, memoizing the result until an input
// changes.
//
// A computed Sun writes its memo inside Azimuth and Altitude. Callers that
// share one between goroutines must serialize those calls with any other
// access.
type Sun struct {
	north float64

	enableAllowed        bool
	enableOn             bool
	manualControlAllowed bool
	manualControlOn      bool

	azimuth  float64 // manual azimuth, degrees east of north
	altitude float64 // manual altitude, degrees

	latitude   float64
	longitude  float64
	timeZone   float64
	dstOn      bool
	dstMinutes int

	year, month, day int
	hours            float64

	intensity       float64
	shadowIntensity float64

	// Transient, not persisted.
	computed   bool
	accuracy   Accuracy
	cache      position
	cacheValid bool
}

type position struct {
	azimuth, altitude float64
}

// NewSun returns a Sun with default values that stores its azimuth and
// altitude.
func NewSun() *Sun {
	return &Sun{
		north:                defaultNorth,
		enableAllowed:        true,
		enableOn:             false,
		manualControlAllowed: true,
		manualControlOn:      false,
		latitude:             defaultLatitude,
		longitude:            defaultLongitude,
		timeZone:             defaultTimeZone,
		dstOn:                false,
		dstMinutes:           defaultDaylightSavingMinutes,
		year:                 defaultYear,
		month:                defaultMonth,
		day:                  defaultDay,
		hours:                defaultHours,
		intensity:            1.0,
		shadowIntensity:      1.0,
		accuracy:             AccuracyMinimum,
	}
}

// NewComputedSun returns a Sun with default values that computes its
// azimuth and altitude from the place and time unless manual control is on.
func NewComputedSun() *Sun {
	s := NewSun()
	s.computed = true
	return s
}

// Clone returns a copy of s, including its mode and memo.
func (s *Sun) Clone() *Sun {
	c := *s
	return &c
}

// IsComputed reports whether s derives its position from place and time.
func (s *Sun) IsComputed() bool { return s.computed }

// Accuracy returns the engine accuracy used by a computed Sun.
func (s *Sun) Accuracy() Accuracy { return s.accuracy }

// SetAccuracy sets the engine accuracy used by a computed Sun. It is not
// persisted.
func (s *Sun) SetAccuracy(a Accuracy) bool {
	if a != AccuracyMinimum && a != AccuracyMaximum {
		rejected("accuracy", int(a))
		return false
	}
	if a != s.accuracy {
		s.accuracy = a
		s.invalidate()
	}
	return true
}

func (s *Sun) invalidate() { s.cacheValid = false }

// -----------------------------
// Flags. The Allowed flags are hints for user interfaces and do not gate
// the corresponding On setters.
// -----------------------------

// EnableAllowed reports whether a user interface may switch the sun on.
func (s *Sun) EnableAllowed() bool { return s.enableAllowed }

// EnableOn reports whether the sun lights the scene.
func (s *Sun) EnableOn() bool { return s.enableOn }

// ManualControlAllowed reports whether a user interface may offer manual
// positioning.
func (s *Sun) ManualControlAllowed() bool { return s.manualControlAllowed }

// ManualControlOn reports whether the stored azimuth and altitude are used
// instead of the computed position.
func (s *Sun) ManualControlOn() bool { return s.manualControlOn }

// SetEnableAllowed sets the enable hint.
func (s *Sun) SetEnableAllowed(allowed bool) { s.enableAllowed = allowed }

// SetEnableOn switches the sun on or off.
func (s *Sun) SetEnableOn(on bool) { s.enableOn = on }

// SetManualControlAllowed sets the manual control hint.
func (s *Sun) SetManualControlAllowed(allowed bool) { s.manualControlAllowed = allowed }

// SetManualControlOn switches between the manual and computed position.
// Leaving manual control drops the memo.
func (s *Sun) SetManualControlOn(manual bool) {
	if s.manualControlOn && !manual {
		s.invalidate()
	}
	s.manualControlOn = manual
}

// -----------------------------
// North and the manual position
// -----------------------------

// North returns the world angle of north in degrees. It is zero along the
// world x-axis and increases anticlockwise.
func (s *Sun) North() float64 { return s.north }

// SetNorth sets the world angle of north in [0,360) degrees.
func (s *Sun) SetNorth(north float64) bool {
	if !validAngle360(north) {
		rejected("north", north)
		return false
	}
	s.north = north
	s.invalidate()
	return true
}

// Azimuth returns the Sun's azimuth in degrees, eastward from north. It is
// not affected by North.
//
// A stored Sun, or a computed Sun under manual control, returns the manual
// value. Otherwise the value is computed from the place and time.
func (s *Sun) Azimuth() float64 {
	if !s.computed || s.manualControlOn {
		return s.azimuth
	}
	return s.resolve().azimuth
}

// Altitude returns the Sun's altitude above the horizon in degrees, with
// the same rules as Azimuth.
func (s *Sun) Altitude() float64 {
	if !s.computed || s.manualControlOn {
		return s.altitude
	}
	return s.resolve().altitude
}

// resolve returns the memoized position, computing both values together
// when the memo is stale.
func (s *Sun) resolve() position {
	if s.cacheValid {
		metrics.CacheHit()
		return s.cache
	}
	metrics.CacheMiss()

	e := s.Engine()
	s.cache = position{azimuth: e.Azimuth(), altitude: e.Altitude()}
	s.cacheValid = true
	return s.cache
}

// Engine returns a new Engine seeded from the sun's place, time, time zone,
// daylight saving and accuracy. Out-of-range stored fields leave the
// engine's defaults in place.
func (s *Sun) Engine() *Engine {
	e := NewEngine(s.accuracy)
	e.SetLatitude(s.latitude)
	e.SetLongitude(s.longitude)
	e.SetTimeZoneHours(s.timeZone)
	if s.dstOn {
		e.SetDaylightSavingMinutes(s.dstMinutes)
	}
	e.SetLocalDateTime(s.year, s.month, s.day, s.hours)
	return e
}

// SetAzimuth sets the manual azimuth. Any finite angle is accepted and
// normalized into [0,360).
func (s *Sun) SetAzimuth(azimuth float64) bool {
	if !finite(azimuth) {
		rejected("azimuth", azimuth)
		return false
	}
	s.azimuth = timeutil.Normalize360(azimuth)
	return true
}

// SetAltitude sets the manual altitude in [-90,90] degrees.
func (s *Sun) SetAltitude(altitude float64) bool {
	if !validAltitude(altitude) {
		rejected("altitude", altitude)
		return false
	}
	s.altitude = altitude
	return true
}

// -----------------------------
// Place and time
// -----------------------------

// Latitude returns the observer latitude in degrees, north positive.
func (s *Sun) Latitude() float64 { return s.latitude }

// Longitude returns the observer longitude in degrees, east positive.
func (s *Sun) Longitude() float64 { return s.longitude }

// TimeZone returns the time zone in hours east of UTC.
func (s *Sun) TimeZone() float64 { return s.timeZone }

// DaylightSavingOn reports whether daylight saving is in effect.
func (s *Sun) DaylightSavingOn() bool { return s.dstOn }

// DaylightSavingMinutes returns the daylight saving offset in minutes.
func (s *Sun) DaylightSavingMinutes() int { return s.dstMinutes }

// SetLatitude sets the observer latitude in [-90,90] degrees.
func (s *Sun) SetLatitude(lat float64) bool {
	if !validLatitude(lat) {
		rejected("latitude", lat)
		return false
	}
	s.latitude = lat
	s.invalidate()
	return true
}

// SetLongitude sets the observer longitude in [-180,180] degrees, east
// positive.
func (s *Sun) SetLongitude(lon float64) bool {
	if !validLongitude(lon) {
		rejected("longitude", lon)
		return false
	}
	s.longitude = lon
	s.invalidate()
	return true
}

// SetTimeZone sets the observer's standard time offset in [-12,13] hours.
func (s *Sun) SetTimeZone(hours float64) bool {
	if !validTimeZone(hours) {
		rejected("time-zone", hours)
		return false
	}
	s.timeZone = hours
	s.invalidate()
	return true
}

// SetDaylightSavingOn sets whether the daylight saving offset applies.
func (s *Sun) SetDaylightSavingOn(on bool) {
	if on != s.dstOn {
		s.dstOn = on
		s.invalidate()
	}
}

// SetDaylightSavingMinutes sets the daylight saving offset in [0,120]
// minutes.
func (s *Sun) SetDaylightSavingMinutes(minutes int) bool {
	if !validDaylightSaving(minutes) {
		rejected("daylight-saving-minutes", minutes)
		return false
	}
	s.dstMinutes = minutes
	s.invalidate()
	return true
}

// LocalDateTime returns the observer's local date and decimal hours.
func (s *Sun) LocalDateTime() (year, month, day int, hours float64) {
	return s.year, s.month, s.day, s.hours
}

// SetLocalDateTime sets the observer's local date and decimal hours. The
// year must lie in [MinYear(), MaxYear()] and hours in [0,24).
func (s *Sun) SetLocalDateTime(year, month, day int, hours float64) bool {
	if !validDate(year, month, day) || !validHours(hours) {
		rejected("local-date-time", []float64{float64(year), float64(month), float64(day), hours})
		return false
	}
	s.year, s.month, s.day, s.hours = year, month, day, hours
	s.invalidate()
	return true
}

// offsetHours is local time minus UTC.
func (s *Sun) offsetHours() float64 {
	off := s.timeZone
	if s.dstOn {
		off += float64(s.dstMinutes) / 60.0
	}
	return off
}

// UTCDateTime returns the local date and time adjusted for the time zone
// and, when on, daylight saving.
func (s *Sun) UTCDateTime() (year, month, day int, hours float64) {
	return timeutil.ShiftHours(s.year, s.month, s.day, s.hours, -s.offsetHours())
}

// SetUTCDateTime sets the local date and time from a UTC date and time. It
// fails when the input is not a valid date or the local result leaves the
// supported year range.
func (s *Sun) SetUTCDateTime(year, month, day int, hours float64) bool {
	if month < 1 || month > 12 || day < 1 || day > timeutil.DaysInMonth(month, year) || !validHours(hours) {
		rejected("utc-date-time", []float64{float64(year), float64(month), float64(day), hours})
		return false
	}
	y, m, d, h := timeutil.ShiftHours(year, month, day, hours, s.offsetHours())
	if !validDate(y, m, d) || !validHours(h) {
		rejected("utc-date-time", []float64{float64(year), float64(month), float64(day), hours})
		return false
	}
	s.year, s.month, s.day, s.hours = y, m, d, h
	s.invalidate()
	return true
}

// -----------------------------
// Intensity
// -----------------------------

// Intensity returns the light intensity. It is 1 by default.
func (s *Sun) Intensity() float64 { return s.intensity }

// ShadowIntensity returns the shadow intensity. It is 1 by default; 0
// turns off shadows.
func (s *Sun) ShadowIntensity() float64 { return s.shadowIntensity }

// SetIntensity sets the light intensity. Negative values are rejected.
func (s *Sun) SetIntensity(v float64) bool {
	if !validNonNegative(v) {
		rejected("intensity", v)
		return false
	}
	s.intensity = v
	return true
}

// SetShadowIntensity sets the shadow intensity in [0,1].
func (s *Sun) SetShadowIntensity(v float64) bool {
	if !validUnitInterval(v) {
		rejected("shadow-intensity", v)
		return false
	}
	s.shadowIntensity = v
	return true
}

// -----------------------------
// Validation, equality and digest
// -----------------------------

// IsValid reports whether every field is within its range. Only a load
// from a node can leave a Sun invalid.
func (s *Sun) IsValid() bool {
	return validAngle360(s.north) &&
		validAngle360(s.azimuth) &&
		validAltitude(s.altitude) &&
		validLatitude(s.latitude) &&
		validLongitude(s.longitude) &&
		validTimeZone(s.timeZone) &&
		validDaylightSaving(s.dstMinutes) &&
		validDate(s.year, s.month, s.day) &&
		validHours(s.hours) &&
		validNonNegative(s.intensity) &&
		validUnitInterval(s.shadowIntensity)
}

// Equal reports whether s and o hold the same persisted values. The mode,
// accuracy and memo are not compared.
func (s *Sun) Equal(o *Sun) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.north == o.north &&
		s.enableAllowed == o.enableAllowed &&
		s.enableOn == o.enableOn &&
		s.manualControlAllowed == o.manualControlAllowed &&
		s.manualControlOn == o.manualControlOn &&
		s.azimuth == o.azimuth &&
		s.altitude == o.altitude &&
		s.latitude == o.latitude &&
		s.longitude == o.longitude &&
		s.timeZone == o.timeZone &&
		s.dstOn == o.dstOn &&
		s.dstMinutes == o.dstMinutes &&
		s.year == o.year &&
		s.month == o.month &&
		s.day == o.day &&
		s.hours == o.hours &&
		s.intensity == o.intensity &&
		s.shadowIntensity == o.shadowIntensity
}

// DataCRC folds the persisted fields into the running CRC-32 crc.
func (s *Sun) DataCRC(crc uint32) uint32 {
	crc = digest.Bool(crc, s.enableAllowed)
	crc = digest.Bool(crc, s.enableOn)
	crc = digest.Bool(crc, s.manualControlAllowed)
	crc = digest.Bool(crc, s.manualControlOn)
	crc = digest.Float64(crc, s.north)
	crc = digest.Float64(crc, s.azimuth)
	crc = digest.Float64(crc, s.altitude)
	crc = digest.Float64(crc, s.latitude)
	crc = digest.Float64(crc, s.longitude)
	crc = digest.Float64(crc, s.timeZone)
	crc = digest.Bool(crc, s.dstOn)
	crc = digest.Int(crc, s.dstMinutes)
	crc = digest.Int(crc, s.year)
	crc = digest.Int(crc, s.month)
	crc = digest.Int(crc, s.day)
	crc = digest.Float64(crc, s.hours)
	crc = digest.Float64(crc, s.intensity)
	crc = digest.Float64(crc, s.shadowIntensity)
	return crc
}

// DayEvents returns sunrise and sunset on the Sun's local date, using the
// Sun's place, time zone, daylight saving and accuracy.
func (s *Sun) DayEvents() (DayEvents, error) {
	return s.Engine().RiseSet()
}
