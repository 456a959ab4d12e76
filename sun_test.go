package sunlight_test

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thurmanmarka/sunlight"
	"github.com/thurmanmarka/sunlight/internal/metrics"
)

func TestSunDefaults(t *testing.T) {
	s := sunlight.NewSun()

	assert.True(t, s.IsValid())
	assert.False(t, s.IsComputed())
	assert.Equal(t, 90.0, s.North())
	assert.Equal(t, 1.0, s.Intensity())
	assert.Equal(t, 1.0, s.ShadowIntensity())
	assert.False(t, s.DaylightSavingOn())
	assert.Equal(t, 60, s.DaylightSavingMinutes())
	assert.Equal(t, sunlight.AccuracyMinimum, s.Accuracy())

	y, m, d, h := s.LocalDateTime()
	assert.Equal(t, []float64{2000, 1, 1, 12}, []float64{float64(y), float64(m), float64(d), h})

	assert.True(t, sunlight.NewComputedSun().IsComputed())
}

func TestSunAllowedFlagsAreHints(t *testing.T) {
	s := sunlight.NewSun()
	s.SetEnableAllowed(false)
	s.SetManualControlAllowed(false)

	s.SetEnableOn(true)
	s.SetManualControlOn(true)

	assert.True(t, s.EnableOn())
	assert.True(t, s.ManualControlOn())
	assert.False(t, s.EnableAllowed())
	assert.False(t, s.ManualControlAllowed())
}

func TestSunRejectsOutOfRange(t *testing.T) {
	s := sunlight.NewSun()
	require.True(t, s.SetLatitude(10))
	require.True(t, s.SetLocalDateTime(2024, 5, 6, 7.5))
	before := s.Clone()

	assert.False(t, s.SetLatitude(120))
	assert.False(t, s.SetLongitude(180.5))
	assert.False(t, s.SetTimeZone(-13))
	assert.False(t, s.SetDaylightSavingMinutes(150))
	assert.False(t, s.SetLocalDateTime(1700, 5, 6, 7.5))
	assert.False(t, s.SetLocalDateTime(2023, 2, 29, 7.5))
	assert.False(t, s.SetLocalDateTime(2024, 5, 6, -0.5))
	assert.False(t, s.SetNorth(360))
	assert.False(t, s.SetNorth(-1))
	assert.False(t, s.SetAltitude(90.01))
	assert.False(t, s.SetAzimuth(math.Inf(-1)))
	assert.False(t, s.SetAzimuth(math.NaN()))
	assert.False(t, s.SetIntensity(-0.1))
	assert.False(t, s.SetShadowIntensity(1.5))
	assert.False(t, s.SetAccuracy(sunlight.Accuracy(3)))

	assert.Equal(t, 10.0, s.Latitude())
	y, _, _, _ := s.LocalDateTime()
	assert.Equal(t, 2024, y)
	assert.True(t, s.Equal(before))
	assert.Equal(t, before.DataCRC(0), s.DataCRC(0))
}

func TestSunAzimuthNormalized(t *testing.T) {
	s := sunlight.NewSun()
	tests := map[float64]float64{
		123.4: 123.4,
		-90:   270,
		725:   5,
		360:   0,
		-720:  0,
	}
	for in, want := range tests {
		require.True(t, s.SetAzimuth(in))
		assert.InDelta(t, want, s.Azimuth(), 1e-9, "SetAzimuth(%v)", in)
	}

	require.True(t, s.SetAltitude(-90))
	require.True(t, s.SetAltitude(90))
	assert.Equal(t, 90.0, s.Altitude())
}

func TestStoredSunIgnoresPlaceAndTime(t *testing.T) {
	s := sunlight.NewSun()
	s.SetAzimuth(42)
	s.SetAltitude(12)

	s.SetLatitude(-60)
	s.SetLocalDateTime(2150, 7, 1, 3)

	assert.Equal(t, 42.0, s.Azimuth())
	assert.Equal(t, 12.0, s.Altitude())
}

func TestManualControlOverridesComputedPosition(t *testing.T) {
	s := sunlight.NewComputedSun()
	s.SetManualControlOn(true)
	require.True(t, s.SetAzimuth(123.4))
	require.True(t, s.SetAltitude(-12))

	for _, dt := range [][4]float64{{1850, 1, 1, 0}, {2024, 6, 21, 12}, {2199, 12, 31, 23.99}} {
		require.True(t, s.SetLocalDateTime(int(dt[0]), int(dt[1]), int(dt[2]), dt[3]))
		assert.Equal(t, 123.4, s.Azimuth())
		assert.Equal(t, -12.0, s.Altitude())
	}
}

func TestComputedSunMatchesEngine(t *testing.T) {
	for _, a := range []sunlight.Accuracy{sunlight.AccuracyMinimum, sunlight.AccuracyMaximum} {
		s := sunlight.NewComputedSun()
		require.True(t, s.SetAccuracy(a))
		s.SetLatitude(-33.8688)
		s.SetLongitude(151.2093)
		s.SetTimeZone(10)
		s.SetDaylightSavingOn(true)
		s.SetDaylightSavingMinutes(60)
		s.SetLocalDateTime(2023, 12, 25, 9.75)

		e := sunlight.NewEngine(a)
		e.SetLatitude(-33.8688)
		e.SetLongitude(151.2093)
		e.SetTimeZoneHours(10)
		e.SetDaylightSavingMinutes(60)
		e.SetLocalDateTime(2023, 12, 25, 9.75)

		assert.Equal(t, e.Azimuth(), s.Azimuth(), a.String())
		assert.Equal(t, e.Altitude(), s.Altitude(), a.String())

		// Daylight saving off moves the Sun back an hour.
		s.SetDaylightSavingOn(false)
		e.SetDaylightSavingMinutes(0)
		assert.Equal(t, e.Azimuth(), s.Azimuth(), a.String())
	}
}

func TestComputedSunCache(t *testing.T) {
	hits := func() float64 { return testutil.ToFloat64(metrics.SunCacheLookups.WithLabelValues("hit")) }
	misses := func() float64 { return testutil.ToFloat64(metrics.SunCacheLookups.WithLabelValues("miss")) }

	s := sunlight.NewComputedSun()
	s.SetLatitude(40)
	s.SetLocalDateTime(2024, 3, 1, 10)

	h0, m0 := hits(), misses()

	az1 := s.Azimuth()
	alt1 := s.Altitude()
	az2 := s.Azimuth()
	alt2 := s.Altitude()

	assert.Equal(t, az1, az2)
	assert.Equal(t, alt1, alt2)
	assert.Equal(t, 1.0, misses()-m0, "both values come from one computation")
	assert.Equal(t, 3.0, hits()-h0)

	require.True(t, s.SetLatitude(-40))
	az3 := s.Azimuth()
	assert.Equal(t, 2.0, misses()-m0, "latitude change invalidates")
	assert.NotEqual(t, az1, az3)

	// A rejected set keeps the memo.
	assert.False(t, s.SetLatitude(100))
	s.Altitude()
	assert.Equal(t, 2.0, misses()-m0)

	// Every positional input invalidates.
	invalidators := []func(){
		func() { s.SetLongitude(10) },
		func() { s.SetTimeZone(1) },
		func() { s.SetDaylightSavingOn(true) },
		func() { s.SetDaylightSavingMinutes(30) },
		func() { s.SetLocalDateTime(2024, 3, 2, 10) },
		func() { s.SetUTCDateTime(2024, 3, 2, 10) },
		func() { s.SetNorth(12) },
		func() { s.SetAccuracy(sunlight.AccuracyMaximum) },
	}
	for i, inv := range invalidators {
		before := misses()
		inv()
		s.Azimuth()
		assert.Equal(t, 1.0, misses()-before, "invalidator %d", i)
	}

	// Intensity does not feed the position.
	before := misses()
	s.SetIntensity(3)
	s.SetShadowIntensity(0)
	s.Azimuth()
	assert.Equal(t, 0.0, misses()-before)
}

func TestManualToggleCache(t *testing.T) {
	misses := func() float64 { return testutil.ToFloat64(metrics.SunCacheLookups.WithLabelValues("miss")) }

	s := sunlight.NewComputedSun()
	s.SetLocalDateTime(2024, 8, 1, 15)
	computed := s.Azimuth()
	m0 := misses()

	// Entering manual control keeps the memo; reads bypass it.
	s.SetManualControlOn(true)
	s.SetAzimuth(7)
	assert.Equal(t, 7.0, s.Azimuth())
	assert.Equal(t, 0.0, misses()-m0)

	// Leaving manual control always recomputes.
	s.SetManualControlOn(false)
	assert.Equal(t, computed, s.Azimuth())
	assert.Equal(t, 1.0, misses()-m0)

	// Setting false while already computed keeps the memo.
	s.SetManualControlOn(false)
	s.Azimuth()
	assert.Equal(t, 1.0, misses()-m0)
}

func TestUTCDateTimeRoundTrip(t *testing.T) {
	tests := []struct {
		name       string
		tz         float64
		dstOn      bool
		dstMinutes int
		y, m, d    int
		h          float64
	}{
		{"utc", 0, false, 60, 2024, 6, 15, 10.5},
		{"phoenix", -7, false, 60, 2025, 11, 28, 23.75},
		{"new york dst", -5, true, 60, 2024, 7, 4, 2.25},
		{"lord howe dst", 10.5, true, 30, 2024, 1, 1, 0.1},
		{"chatham dst", 12.75, true, 60, 2199, 12, 30, 23.9},
		{"kiribati", 13, false, 60, 1800, 1, 1, 12},
		{"leap day", -12, true, 120, 2024, 2, 29, 22.999},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := sunlight.NewSun()
			require.True(t, s.SetTimeZone(tt.tz))
			s.SetDaylightSavingOn(tt.dstOn)
			require.True(t, s.SetDaylightSavingMinutes(tt.dstMinutes))

			require.True(t, s.SetUTCDateTime(tt.y, tt.m, tt.d, tt.h))

			y, m, d, h := s.UTCDateTime()
			assert.Equal(t, tt.y, y)
			assert.Equal(t, tt.m, m)
			assert.Equal(t, tt.d, d)
			assert.InDelta(t, tt.h, h, 1e-9)
		})
	}
}

func TestUTCDateTimeOffsets(t *testing.T) {
	s := sunlight.NewSun()
	s.SetTimeZone(5)
	s.SetDaylightSavingOn(true)
	s.SetDaylightSavingMinutes(30)
	require.True(t, s.SetLocalDateTime(2024, 1, 1, 2))

	// 02:00 at UTC+5:30 is 20:30 the previous evening.
	y, m, d, h := s.UTCDateTime()
	assert.Equal(t, 2023, y)
	assert.Equal(t, 12, m)
	assert.Equal(t, 31, d)
	assert.InDelta(t, 20.5, h, 1e-9)

	s.SetDaylightSavingOn(false)
	_, _, _, h = s.UTCDateTime()
	assert.InDelta(t, 21.0, h, 1e-9)

	// The local result would be 2200-01-01.
	s.SetTimeZone(2)
	assert.False(t, s.SetUTCDateTime(2199, 12, 31, 23))
	y, _, _, _ = s.LocalDateTime()
	assert.Equal(t, 2024, y)

	// Invalid UTC input.
	assert.False(t, s.SetUTCDateTime(2024, 2, 30, 1))
	assert.False(t, s.SetUTCDateTime(2024, 2, 1, 24))

	// A UTC date just before the range can still land inside it.
	assert.True(t, s.SetUTCDateTime(1799, 12, 31, 23))
	y, m, d, h = s.LocalDateTime()
	assert.Equal(t, []int{1800, 1, 1}, []int{y, m, d})
	assert.InDelta(t, 1.5, h, 1e-9)
}

func TestSunEqualAndDataCRC(t *testing.T) {
	a := sunlight.NewSun()
	b := sunlight.NewComputedSun()

	assert.True(t, a.Equal(b), "mode is not persisted")
	assert.Equal(t, a.DataCRC(0), b.DataCRC(0))
	assert.Equal(t, a.DataCRC(7), a.DataCRC(7))
	assert.NotEqual(t, a.DataCRC(0), a.DataCRC(7), "seed participates")

	mutations := map[string]func(s *sunlight.Sun){
		"north":     func(s *sunlight.Sun) { s.SetNorth(0) },
		"enable":    func(s *sunlight.Sun) { s.SetEnableOn(true) },
		"manual":    func(s *sunlight.Sun) { s.SetManualControlOn(true) },
		"azimuth":   func(s *sunlight.Sun) { s.SetAzimuth(1) },
		"altitude":  func(s *sunlight.Sun) { s.SetAltitude(1) },
		"latitude":  func(s *sunlight.Sun) { s.SetLatitude(0) },
		"longitude": func(s *sunlight.Sun) { s.SetLongitude(1) },
		"time zone": func(s *sunlight.Sun) { s.SetTimeZone(1) },
		"dst on":    func(s *sunlight.Sun) { s.SetDaylightSavingOn(true) },
		"dst mins":  func(s *sunlight.Sun) { s.SetDaylightSavingMinutes(30) },
		"date":      func(s *sunlight.Sun) { s.SetLocalDateTime(2000, 1, 2, 12) },
		"hours":     func(s *sunlight.Sun) { s.SetLocalDateTime(2000, 1, 1, 12.5) },
		"intensity": func(s *sunlight.Sun) { s.SetIntensity(2) },
		"shadow":    func(s *sunlight.Sun) { s.SetShadowIntensity(0.5) },
	}
	for name, mutate := range mutations {
		c := a.Clone()
		mutate(c)
		assert.False(t, a.Equal(c), name)
		assert.NotEqual(t, a.DataCRC(0), c.DataCRC(0), name)
	}

	// Transient state does not affect the digest.
	c := b.Clone()
	c.Azimuth()
	c.SetAccuracy(sunlight.AccuracyMaximum)
	assert.Equal(t, b.DataCRC(0), c.DataCRC(0))

	var nilSun *sunlight.Sun
	assert.False(t, a.Equal(nilSun))
	assert.True(t, nilSun.Equal(nil))
}
