package sun

import (
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/thurmanmarka/sunlight/internal/solver"
)

// StandardZenith is the almanac zenith angle (in degrees) for sunrise and
// sunset: 90°50', covering refraction plus the Sun's apparent radius. The
// go-sunrise approximation uses the same zenith.
const StandardZenith = 90.833

// ApparentHorizonAltitudeSun is the geometric altitude (in degrees) of the
// Sun's center when the apparent upper limb is on the horizon under
// "standard" conditions.
const ApparentHorizonAltitudeSun = 90 - StandardZenith

// UpperLimbAltitudeSun is the apparent (refracted) altitude of the Sun's
// center when its upper limb touches the horizon: one solar semi-diameter.
const UpperLimbAltitudeSun = -0.2667

// Events holds the local decimal hours of an upward and a downward crossing
// of some altitude during one local day.
type Events struct {
	Rise, Set       float64
	HasRise, HasSet bool
}

// EventsAtAltitude finds the hours in [0,24) when altitude crosses targetAlt
// (degrees): the upward crossing (rise-like) and the downward crossing
// (set-like).
func EventsAtAltitude(alt solver.AltitudeFunc, targetAlt float64) Events {
	const (
		steps = 49            // samples across the day (every 30 minutes)
		tol   = 15.0 / 3600.0 // hours
		end   = 24.0 - 1e-9   // stay inside the local day
	)

	var ev Events

	up := solver.FindAltitudeEvent(alt, 0, end, targetAlt, solver.CrossingUp, steps, tol)
	if up.OK {
		ev.Rise, ev.HasRise = up.Hours, true
	}

	down := solver.FindAltitudeEvent(alt, 0, end, targetAlt, solver.CrossingDown, steps, tol)
	if down.OK {
		ev.Set, ev.HasSet = down.Hours, true
	}

	return ev
}

// QuickRiseSet returns UTC sunrise and sunset for the UTC calendar date
// (year, month, day) at (lat, lon) from the go-sunrise approximation. The ok
// flags are false when the Sun does not rise or set on that date.
func QuickRiseSet(lat, lon float64, year, month, day int) (riseUTC, setUTC time.Time, okRise, okSet bool) {
	riseUTC, setUTC = sunrise.SunriseSunset(lat, lon, year, time.Month(month), day)
	return riseUTC, setUTC, !riseUTC.IsZero(), !setUTC.IsZero()
}
