package sun

import (
	"math"

	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"github.com/thurmanmarka/sunlight/internal/timeutil"
)

// Equatorial represents equatorial coordinates (right ascension and declination)
// in degrees. RA is in degrees (0–360).
type Equatorial struct {
	RA  float64 // right ascension, degrees
	Dec float64 // declination, degrees
}

// Horizontal represents horizon coordinates in degrees. Azimuth increases
// eastwards from north; altitude is positive above the horizon.
type Horizontal struct {
	Azimuth  float64
	Altitude float64
}

// GeocentricEquatorialApprox returns an approximate geocentric RA/Dec for the
// Sun at Julian Day jd.
//
// This is the low-order model:
//
//	g   = mean anomaly of the Sun
//	q   = mean longitude of the Sun
//	L   = ecliptic longitude of the Sun
//	eps = obliquity of the ecliptic
//
// Good to roughly an arcminute, which is plenty for interactive use.
func GeocentricEquatorialApprox(jd float64) Equatorial {
	d := jd - timeutil.J2000

	// Mean anomaly of the Sun (deg)
	g := timeutil.Deg2Rad(357.529 + 0.98560028*d)

	// Mean longitude of the Sun (deg)
	q := timeutil.Deg2Rad(280.459 + 0.98564736*d)

	// Ecliptic longitude with equation of center
	L := q +
		timeutil.Deg2Rad(1.915)*math.Sin(g) +
		timeutil.Deg2Rad(0.020)*math.Sin(2*g)

	// Obliquity of the ecliptic (deg)
	eps := timeutil.Deg2Rad(23.439 - 0.00000036*d)

	// Convert to equatorial
	x := math.Cos(L)
	y := math.Cos(eps) * math.Sin(L)
	z := math.Sin(eps) * math.Sin(L)

	ra := math.Atan2(y, x)
	if ra < 0 {
		ra += 2 * math.Pi
	}
	dec := math.Asin(z)

	return Equatorial{
		RA:  timeutil.Rad2Deg(ra),
		Dec: timeutil.Rad2Deg(dec),
	}
}

// GeocentricEquatorialApparent returns the apparent geocentric RA/Dec of the
// Sun at Julian Day jd using the full Meeus solar theory (higher-order
// equation of center, nutation in longitude and obliquity, aberration).
//
// jd is used directly as JDE; the ΔT offset is ignored.
func GeocentricEquatorialApparent(jd float64) Equatorial {
	ra, dec := solar.ApparentEquatorial(jd)

	return Equatorial{
		RA:  timeutil.Normalize360(timeutil.Rad2Deg(math.Atan2(ra.Sin(), ra.Cos()))),
		Dec: dec.Deg(),
	}
}

// MeanSiderealDeg returns Greenwich mean sidereal time in degrees, using the
// linear approximation in days since J2000.
func MeanSiderealDeg(jd float64) float64 {
	d := jd - timeutil.J2000
	return timeutil.Normalize360(280.46061837 + 360.98564736629*d)
}

// ApparentSiderealDeg returns Greenwich apparent sidereal time in degrees,
// including the equation of the equinoxes.
func ApparentSiderealDeg(jd float64) float64 {
	return timeutil.Normalize360(sidereal.Apparent(jd).Angle().Deg())
}

// EquatorialToHorizontal converts equatorial coordinates into horizon
// coordinates for an observer at latitude lat (degrees) given local sidereal
// time lstDeg.
func EquatorialToHorizontal(eq Equatorial, lat, lstDeg float64) Horizontal {
	decRad := timeutil.Deg2Rad(eq.Dec)
	latRad := timeutil.Deg2Rad(lat)

	// Hour angle H = LST - RA, normalized to (-pi, pi]
	H := timeutil.Deg2Rad(lstDeg - eq.RA)
	for H > math.Pi {
		H -= 2 * math.Pi
	}
	for H <= -math.Pi {
		H += 2 * math.Pi
	}

	sinAlt := math.Sin(latRad)*math.Sin(decRad) + math.Cos(latRad)*math.Cos(decRad)*math.Cos(H)
	if sinAlt > 1 {
		sinAlt = 1
	} else if sinAlt < -1 {
		sinAlt = -1
	}
	alt := math.Asin(sinAlt)

	// Azimuth from north, increasing eastwards.
	y := -math.Cos(decRad) * math.Sin(H)
	x := math.Sin(decRad)*math.Cos(latRad) - math.Cos(decRad)*math.Cos(H)*math.Sin(latRad)
	az := math.Atan2(y, x)

	return Horizontal{
		Azimuth:  timeutil.Normalize360(timeutil.Rad2Deg(az)),
		Altitude: timeutil.Rad2Deg(alt),
	}
}

// Position returns the Sun's horizon coordinates at UT Julian Day jd for an
// observer at (lat, lon) degrees, east longitude positive.
//
// With precise == false the low-order series, mean sidereal time and the
// geometric altitude are used. With precise == true the apparent Meeus
// position, apparent sidereal time and refraction-corrected altitude are used.
func Position(jd, lat, lon float64, precise bool) Horizontal {
	if !precise {
		eq := GeocentricEquatorialApprox(jd)
		lst := timeutil.Normalize360(MeanSiderealDeg(jd) + lon)
		return EquatorialToHorizontal(eq, lat, lst)
	}

	eq := GeocentricEquatorialApparent(jd)
	lst := timeutil.Normalize360(ApparentSiderealDeg(jd) + lon)
	hz := EquatorialToHorizontal(eq, lat, lst)
	hz.Altitude += timeutil.ApproxRefraction(hz.Altitude)
	if hz.Altitude > 90 {
		hz.Altitude = 90
	}
	return hz
}
