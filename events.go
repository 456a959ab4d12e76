package sunlight

import (
	"errors"
	"fmt"
	"time"

	"github.com/thurmanmarka/sunlight/internal/sun"
	"github.com/thurmanmarka/sunlight/internal/timeutil"
)

// TwilightKind identifies the type of twilight based on the Sun's altitude
// below the horizon.
type TwilightKind int

const (
	// TwilightCivil corresponds to the Sun's center at -6 degrees altitude.
	TwilightCivil TwilightKind = iota

	// TwilightNautical corresponds to the Sun's center at -12 degrees altitude.
	TwilightNautical

	// TwilightAstronomical corresponds to the Sun's center at -18 degrees altitude.
	TwilightAstronomical
)

// String returns the lower-case name of the twilight kind.
func (k TwilightKind) String() string {
	switch k {
	case TwilightCivil:
		return "civil"
	case TwilightNautical:
		return "nautical"
	case TwilightAstronomical:
		return "astronomical"
	default:
		return fmt.Sprintf("TwilightKind(%d)", int(k))
	}
}

// Altitude returns the Sun's center altitude in degrees that defines k.
func (k TwilightKind) Altitude() (float64, bool) {
	switch k {
	case TwilightCivil:
		return -6.0, true
	case TwilightNautical:
		return -12.0, true
	case TwilightAstronomical:
		return -18.0, true
	default:
		return 0, false
	}
}

var (
	// ErrNoRiseNoSet is returned when the Sun neither rises nor sets through
	// the requested altitude on the engine's local date.
	ErrNoRiseNoSet = errors.New("sun does not rise or set on this date")

	// ErrUnknownTwilight is returned for a TwilightKind outside the defined set.
	ErrUnknownTwilight = errors.New("unknown twilight kind")
)

// DayEvents holds the upward (Rise) and downward (Set) crossings of an
// altitude during one local day, in local decimal hours [0,24).
type DayEvents struct {
	Rise, Set       float64
	HasRise, HasSet bool
}

// PhaseWindow is an interval of local decimal hours during which the Sun's
// altitude stays within a band. End is less than Start when the window
// crosses midnight.
type PhaseWindow struct {
	Start, End float64
}

// Duration returns the length of the window in hours.
func (w PhaseWindow) Duration() float64 {
	return hoursBetween(w.Start, w.End)
}

// hoursBetween returns the hours from a forward to b, wrapping past midnight.
func hoursBetween(a, b float64) float64 {
	d := b - a
	if d < 0 {
		d += 24
	}
	return d
}

// DaylightPhases holds the morning and evening windows of a band such as
// golden hour or blue hour.
type DaylightPhases struct {
	Morning, Evening       PhaseWindow
	HasMorning, HasEvening bool
}

// RiseSet returns sunrise and sunset on the engine's local date.
//
// With AccuracyMinimum the times come from the standard almanac
// approximation (zenith 90.833°). With AccuracyMaximum they are solved
// against the engine's own refracted altitude for the Sun's upper limb.
func (e *Engine) RiseSet() (DayEvents, error) {
	var ev DayEvents
	if e.accuracy == AccuracyMinimum {
		ev = e.quickRiseSet()
	} else {
		ev = fromEvents(sun.EventsAtAltitude(e.altitudeAt, e.horizonAltitude()))
	}
	if !ev.HasRise && !ev.HasSet {
		return DayEvents{}, ErrNoRiseNoSet
	}
	return ev, nil
}

// horizonAltitude returns the altitude of the Sun's center at sunrise and
// sunset in the engine's tier: geometric for Minimum, refracted for Maximum.
func (e *Engine) horizonAltitude() float64 {
	if e.accuracy == AccuracyMaximum {
		return sun.UpperLimbAltitudeSun
	}
	return sun.ApparentHorizonAltitudeSun
}

// quickRiseSet asks go-sunrise for the UTC date containing local noon and
// brings the results back to local hours.
func (e *Engine) quickRiseSet() DayEvents {
	offset := e.offsetHours()
	uy, um, ud, _ := timeutil.ShiftHours(e.year, e.month, e.day, 12, -offset)

	riseUTC, setUTC, okRise, okSet := sun.QuickRiseSet(e.latitude, e.longitude, uy, um, ud)

	var ev DayEvents
	if okRise {
		ev.Rise, ev.HasRise = localHours(riseUTC, offset), true
	}
	if okSet {
		ev.Set, ev.HasSet = localHours(setUTC, offset), true
	}
	return ev
}

func localHours(t time.Time, offset float64) float64 {
	t = t.UTC()
	h := float64(t.Hour()) + float64(t.Minute())/60 + float64(t.Second())/3600
	return timeutil.Normalize24(h + offset)
}

// Twilight returns dawn (Rise) and dusk (Set) of the given kind on the
// engine's local date.
func (e *Engine) Twilight(kind TwilightKind) (DayEvents, error) {
	target, ok := kind.Altitude()
	if !ok {
		return DayEvents{}, fmt.Errorf("%w: %d", ErrUnknownTwilight, int(kind))
	}
	ev := fromEvents(sun.EventsAtAltitude(e.altitudeAt, target))
	if !ev.HasRise && !ev.HasSet {
		return DayEvents{}, ErrNoRiseNoSet
	}
	return ev, nil
}

// DaylightHours returns the time from sunrise to the following sunset in
// hours. A sunset earlier on the clock than sunrise belongs to the next
// day. Without any crossing the result is 24 when the Sun stays up and 0
// when it stays down.
func (e *Engine) DaylightHours() (float64, error) {
	ev, err := e.RiseSet()
	switch {
	case errors.Is(err, ErrNoRiseNoSet):
		if e.altitudeAt(12) > e.horizonAltitude() {
			return 24, nil
		}
		return 0, nil
	case err != nil:
		return 0, err
	}

	switch {
	case ev.HasRise && ev.HasSet:
		return hoursBetween(ev.Rise, ev.Set), nil
	case ev.HasRise:
		// Up from sunrise through midnight.
		return 24 - ev.Rise, nil
	default:
		return ev.Set, nil
	}
}

// GoldenHour returns the windows when the Sun's center is between -4° and
// +6° altitude.
func (e *Engine) GoldenHour() (DaylightPhases, error) {
	return e.band(-4.0, 6.0)
}

// BlueHour returns the windows when the Sun's center is between -6° and
// -4° altitude.
func (e *Engine) BlueHour() (DaylightPhases, error) {
	return e.band(-6.0, -4.0)
}

func (e *Engine) band(lowAlt, highAlt float64) (DaylightPhases, error) {
	low := sun.EventsAtAltitude(e.altitudeAt, lowAlt)
	high := sun.EventsAtAltitude(e.altitudeAt, highAlt)

	var phases DaylightPhases

	// Morning: climbing from lowAlt to highAlt.
	if low.HasRise && high.HasRise {
		phases.Morning, phases.HasMorning = bandWindow(low.Rise, high.Rise)
	}

	// Evening: descending from highAlt to lowAlt.
	if high.HasSet && low.HasSet {
		phases.Evening, phases.HasEvening = bandWindow(high.Set, low.Set)
	}

	if !phases.HasMorning && !phases.HasEvening {
		return DaylightPhases{}, ErrNoRiseNoSet
	}
	return phases, nil
}

// bandWindow pairs two crossings of the same arc. Crossings taken from
// different days are at least half a day apart and are rejected.
func bandWindow(start, end float64) (PhaseWindow, bool) {
	d := hoursBetween(start, end)
	if d <= 0 || d >= 12 {
		return PhaseWindow{}, false
	}
	return PhaseWindow{Start: start, End: end}, true
}

func fromEvents(ev sun.Events) DayEvents {
	return DayEvents{
		Rise:    ev.Rise,
		Set:     ev.Set,
		HasRise: ev.HasRise,
		HasSet:  ev.HasSet,
	}
}
