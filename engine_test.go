package sunlight_test

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/thurmanmarka/sunlight"
)

// angleDiff returns the smallest absolute difference between two angles
// in degrees.
func angleDiff(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		month, year, want int
	}{
		{2, 2000, 29},
		{2, 1900, 28},
		{2, 2024, 29},
		{2, 2023, 28},
		{1, 2023, 31},
		{4, 2023, 30},
		{12, 2199, 31},
		{13, 2023, 0},
	}

	for _, tt := range tests {
		if got := sunlight.DaysInMonth(tt.month, tt.year); got != tt.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tt.month, tt.year, got, tt.want)
		}
	}
}

func TestIsValidDateTime(t *testing.T) {
	tests := []struct {
		name                 string
		y, mo, d, h, mi, sec int
		want                 bool
	}{
		{"leap day", 2024, 2, 29, 12, 0, 0, true},
		{"no Feb 30", 2024, 2, 30, 12, 0, 0, false},
		{"first year", 1800, 1, 1, 0, 0, 0, true},
		{"last second", 2199, 12, 31, 23, 59, 59, true},
		{"before range", 1799, 12, 31, 23, 59, 59, false},
		{"after range", 2200, 1, 1, 0, 0, 0, false},
		{"hour 24", 2024, 1, 1, 24, 0, 0, false},
		{"minute 60", 2024, 1, 1, 0, 60, 0, false},
		{"negative second", 2024, 1, 1, 0, 0, -1, false},
		{"month 0", 2024, 0, 1, 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sunlight.IsValidDateTime(tt.y, tt.mo, tt.d, tt.h, tt.mi, tt.sec); got != tt.want {
				t.Errorf("IsValidDateTime() = %v, want %v", got, tt.want)
			}
		})
	}

	if sunlight.MinYear() != 1800 || sunlight.MaxYear() != 2199 {
		t.Errorf("year range = [%d, %d], want [1800, 2199]", sunlight.MinYear(), sunlight.MaxYear())
	}
}

func TestEngineDefaults(t *testing.T) {
	e := sunlight.NewEngine(sunlight.AccuracyMinimum)

	y, m, d, h := e.LocalDateTime()
	if y != 2000 || m != 1 || d != 1 || h != 12 {
		t.Errorf("LocalDateTime() = %d-%d-%d %.2f, want 2000-1-1 12", y, m, d, h)
	}
	if got := e.JulianDay(); got != 2451545.0 {
		t.Errorf("JulianDay() = %.6f, want 2451545", got)
	}
	if got := sunlight.NewEngine(sunlight.Accuracy(9)).Accuracy(); got != sunlight.AccuracyMinimum {
		t.Errorf("NewEngine(9).Accuracy() = %v, want minimum", got)
	}
}

func TestEngineJulianDays(t *testing.T) {
	e := sunlight.NewEngine(sunlight.AccuracyMinimum)
	e.SetTimeZoneHours(-7)
	e.SetDaylightSavingMinutes(60)
	e.SetLocalDateTime(2024, 7, 4, 18)

	// 18:00 local at UTC-6 is midnight UTC on the 5th.
	const want = 2460496.5
	if got := e.JulianDay(); math.Abs(got-want) > 1e-9 {
		t.Errorf("JulianDay() = %.9f, want %.9f", got, want)
	}
	if got := e.LocalJulianDay() - e.JulianDay(); math.Abs(got-(-6.0/24)) > 1e-9 {
		t.Errorf("LocalJulianDay()-JulianDay() = %.9f, want -0.25", got)
	}

	if !e.SetJulianDay(2460500.25) {
		t.Fatal("SetJulianDay() = false")
	}
	if got := e.JulianDay(); math.Abs(got-2460500.25) > 1e-8 {
		t.Errorf("JulianDay() after SetJulianDay = %.9f, want 2460500.25", got)
	}
	y, m, d, h := e.LocalDateTime()
	if y != 2024 || m != 7 || d != 8 || math.Abs(h-12) > 1e-6 {
		t.Errorf("LocalDateTime() = %d-%d-%d %.6f, want 2024-7-8 12", y, m, d, h)
	}

	if !e.SetLocalJulianDay(2451545.0) {
		t.Fatal("SetLocalJulianDay() = false")
	}
	if got := e.LocalJulianDay(); math.Abs(got-2451545.0) > 1e-8 {
		t.Errorf("LocalJulianDay() = %.9f, want 2451545", got)
	}

	// 1700-01-01 is outside the supported years.
	if e.SetLocalJulianDay(2341972.5) {
		t.Error("SetLocalJulianDay(1700) = true, want false")
	}
	if e.SetJulianDay(math.NaN()) {
		t.Error("SetJulianDay(NaN) = true, want false")
	}
}

func TestEngineRejectsOutOfRange(t *testing.T) {
	e := sunlight.NewEngine(sunlight.AccuracyMaximum)
	e.SetLatitude(40)
	az, alt := e.Azimuth(), e.Altitude()

	rejects := []struct {
		name string
		set  func() bool
	}{
		{"latitude 120", func() bool { return e.SetLatitude(120) }},
		{"latitude NaN", func() bool { return e.SetLatitude(math.NaN()) }},
		{"longitude -181", func() bool { return e.SetLongitude(-181) }},
		{"time zone 14", func() bool { return e.SetTimeZoneHours(14) }},
		{"time zone -12.5", func() bool { return e.SetTimeZoneHours(-12.5) }},
		{"dst 121", func() bool { return e.SetDaylightSavingMinutes(121) }},
		{"dst -1", func() bool { return e.SetDaylightSavingMinutes(-1) }},
		{"year 1700", func() bool { return e.SetLocalDateTime(1700, 6, 1, 12) }},
		{"Feb 30", func() bool { return e.SetLocalDateTime(2024, 2, 30, 12) }},
		{"hours 24", func() bool { return e.SetLocalDateTime(2024, 2, 1, 24) }},
		{"accuracy 7", func() bool { return e.SetAccuracy(sunlight.Accuracy(7)) }},
	}

	for _, tt := range rejects {
		if tt.set() {
			t.Errorf("%s accepted", tt.name)
		}
	}

	if got := e.Latitude(); got != 40 {
		t.Errorf("Latitude() = %v after rejected sets, want 40", got)
	}
	y, m, d, h := e.LocalDateTime()
	if y != 2000 || m != 1 || d != 1 || h != 12 {
		t.Errorf("LocalDateTime() = %d-%d-%d %.2f after rejected sets", y, m, d, h)
	}
	if e.Azimuth() != az || e.Altitude() != alt {
		t.Error("position changed after rejected sets")
	}
	if e.Accuracy() != sunlight.AccuracyMaximum {
		t.Errorf("Accuracy() = %v, want maximum", e.Accuracy())
	}
}

func TestEngineDeterministic(t *testing.T) {
	for _, a := range []sunlight.Accuracy{sunlight.AccuracyMinimum, sunlight.AccuracyMaximum} {
		e1 := sunlight.NewEngine(a)
		e2 := sunlight.NewEngine(a)
		for _, e := range []*sunlight.Engine{e1, e2} {
			e.SetLatitude(-33.8688)
			e.SetLongitude(151.2093)
			e.SetTimeZoneHours(10)
			e.SetDaylightSavingMinutes(60)
			e.SetLocalDateTime(2023, 12, 25, 9.75)
		}

		az, alt := e1.Azimuth(), e1.Altitude()
		for i := 0; i < 3; i++ {
			if e1.Azimuth() != az || e1.Altitude() != alt {
				t.Fatalf("%v: repeated reads differ", a)
			}
		}
		if e2.Azimuth() != az || e2.Altitude() != alt {
			t.Errorf("%v: equal engines disagree: (%v, %v) vs (%v, %v)",
				a, e2.Azimuth(), e2.Altitude(), az, alt)
		}
		if !e1.Equal(e2) {
			t.Errorf("%v: Equal() = false for identical configuration", a)
		}
	}
}

func TestEngineKnownPositions(t *testing.T) {
	tests := []struct {
		name            string
		lat, lon, tz    float64
		y, m, d         int
		h               float64
		wantAz, wantAlt float64
		tolAz, tolAlt   float64
	}{
		// Near the March equinox the noon Sun stands at 90-lat, due south.
		{"Greenwich equinox noon", 51.4769, -0.0005, 0, 2024, 3, 20, 12.125, 180, 38.5, 2, 1},
		// Sydney midsummer noon: Sun due north, ~79.6° high.
		{"Sydney solstice noon", -33.8688, 151.2093, 10, 2023, 12, 22, 11.9, 0, 79.6, 4, 1},
		// Quito: equinox sunrise is due east.
		{"Quito equinox morning", -0.1807, -78.4678, -5, 2024, 3, 20, 9.25, 90, 44, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, a := range []sunlight.Accuracy{sunlight.AccuracyMinimum, sunlight.AccuracyMaximum} {
				e := sunlight.NewEngine(a)
				e.SetLatitude(tt.lat)
				e.SetLongitude(tt.lon)
				e.SetTimeZoneHours(tt.tz)
				if !e.SetLocalDateTime(tt.y, tt.m, tt.d, tt.h) {
					t.Fatal("SetLocalDateTime() = false")
				}

				if d := angleDiff(e.Azimuth(), tt.wantAz); d > tt.tolAz {
					t.Errorf("%v: Azimuth() = %.3f, want %.1f ± %.1f", a, e.Azimuth(), tt.wantAz, tt.tolAz)
				}
				if d := math.Abs(e.Altitude() - tt.wantAlt); d > tt.tolAlt {
					t.Errorf("%v: Altitude() = %.3f, want %.1f ± %.1f", a, e.Altitude(), tt.wantAlt, tt.tolAlt)
				}
			}
		})
	}
}

func TestAccuracyTiersDiverge(t *testing.T) {
	lo := sunlight.NewEngine(sunlight.AccuracyMinimum)
	hi := sunlight.NewEngine(sunlight.AccuracyMaximum)
	for _, e := range []*sunlight.Engine{lo, hi} {
		e.SetLatitude(33.4484)
		e.SetLongitude(-112.0740)
		e.SetTimeZoneHours(-7)
		e.SetLocalDateTime(2025, 11, 28, 15.5)
	}

	if lo.Azimuth() == hi.Azimuth() && lo.Altitude() == hi.Altitude() {
		t.Fatal("minimum and maximum accuracy produced identical positions")
	}
	if d := angleDiff(lo.Azimuth(), hi.Azimuth()); d > 0.1 {
		t.Errorf("azimuth tiers differ by %.4f°, want < 0.1°", d)
	}
	if d := math.Abs(lo.Altitude() - hi.Altitude()); d > 0.2 {
		t.Errorf("altitude tiers differ by %.4f°, want < 0.2°", d)
	}
	if lo.Equal(hi) {
		t.Error("Equal() ignores accuracy")
	}

	// Switching accuracy recomputes.
	lo.SetAccuracy(sunlight.AccuracyMaximum)
	if lo.Azimuth() != hi.Azimuth() || lo.Altitude() != hi.Altitude() {
		t.Error("SetAccuracy(maximum) did not recompute the position")
	}
}

func TestHorizonVectorRoundTrip(t *testing.T) {
	for az := 0.0; az < 360; az += 7.5 {
		for alt := -89.0; alt <= 89; alt += 4.25 {
			v := sunlight.ConvertHorizonCoordsToSolarVector(az, alt)
			if n := r3.Norm(v); math.Abs(n-1) > 1e-12 {
				t.Fatalf("|v(%v, %v)| = %v, want 1", az, alt, n)
			}

			gotAz, gotAlt, ok := sunlight.ConvertSolarVectorToHorizonCoords(v)
			if !ok {
				t.Fatalf("ConvertSolarVectorToHorizonCoords(%v) not ok", v)
			}
			if angleDiff(gotAz, az) > 1e-9 || math.Abs(gotAlt-alt) > 1e-9 {
				t.Fatalf("round trip (%v, %v) -> (%v, %v)", az, alt, gotAz, gotAlt)
			}
			if gotAz < 0 || gotAz >= 360 {
				t.Fatalf("azimuth %v outside [0,360)", gotAz)
			}
		}
	}
}

func TestSolarVectorAxes(t *testing.T) {
	tests := []struct {
		name    string
		az, alt float64
		want    r3.Vec
	}{
		{"north", 0, 0, r3.Vec{Y: 1}},
		{"east", 90, 0, r3.Vec{X: 1}},
		{"south", 180, 0, r3.Vec{Y: -1}},
		{"west", 270, 0, r3.Vec{X: -1}},
		{"zenith", 0, 90, r3.Vec{Z: 1}},
	}

	for _, tt := range tests {
		got := sunlight.ConvertHorizonCoordsToSolarVector(tt.az, tt.alt)
		if r3.Norm(r3.Sub(got, tt.want)) > 1e-12 {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}

	// Length does not matter.
	az, alt, ok := sunlight.ConvertSolarVectorToHorizonCoords(r3.Vec{X: 5, Z: 5})
	if !ok || math.Abs(az-90) > 1e-12 || math.Abs(alt-45) > 1e-12 {
		t.Errorf("ConvertSolarVectorToHorizonCoords(5,0,5) = (%v, %v, %v), want (90, 45, true)", az, alt, ok)
	}

	for _, v := range []r3.Vec{{}, {X: math.NaN()}, {Y: math.Inf(1)}} {
		if _, _, ok := sunlight.ConvertSolarVectorToHorizonCoords(v); ok {
			t.Errorf("ConvertSolarVectorToHorizonCoords(%v) ok, want degenerate", v)
		}
	}
}

func TestParseAccuracy(t *testing.T) {
	tests := map[string]sunlight.Accuracy{
		"minimum": sunlight.AccuracyMinimum,
		"MIN":     sunlight.AccuracyMinimum,
		"":        sunlight.AccuracyMinimum,
		"maximum": sunlight.AccuracyMaximum,
		" max ":   sunlight.AccuracyMaximum,
	}
	for in, want := range tests {
		got, err := sunlight.ParseAccuracy(in)
		if err != nil || got != want {
			t.Errorf("ParseAccuracy(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := sunlight.ParseAccuracy("medium"); err == nil {
		t.Error("ParseAccuracy(medium) error = nil")
	}
}
