package solver

// AltitudeFunc returns altitude in degrees at local decimal hour h.
type AltitudeFunc func(h float64) float64

// EventType describes whether we are looking for a rising or setting event.
type EventType int

const (
	// CrossingUp means altitude is increasing through the target value (rise).
	CrossingUp EventType = iota
	// CrossingDown means altitude is decreasing through the target value (set).
	CrossingDown
)

// Result holds the output of an altitude event search.
type Result struct {
	Hours float64 // approximate decimal hour of the event
	OK    bool    // true if an event was found
}

// FindAltitudeEvent searches for an hour in [start, end] where the altitude
// function crosses targetDeg in the direction specified by eventType.
// It samples the interval at `steps` points to bracket the first crossing,
// then bisects the bracket down to tol hours.
func FindAltitudeEvent(f AltitudeFunc, start, end, targetDeg float64, eventType EventType, steps int, tol float64) Result {
	if !(start < end) {
		return Result{OK: false}
	}
	if steps < 2 {
		steps = 2
	}
	if tol <= 0 {
		tol = 1.0 / 3600.0
	}

	interval := (end - start) / float64(steps-1)

	var (
		prevH   = start
		prevAlt = f(prevH) - targetDeg
	)

	for i := 1; i < steps; i++ {
		h := start + float64(i)*interval
		alt := f(h) - targetDeg

		if hasCrossing(prevAlt, alt, eventType) {
			return bisect(f, prevH, h, targetDeg, eventType, tol)
		}

		prevH, prevAlt = h, alt
	}

	return Result{OK: false}
}

func hasCrossing(a1, a2 float64, eventType EventType) bool {
	switch eventType {
	case CrossingUp:
		return a1 < 0 && a2 >= 0
	case CrossingDown:
		return a1 > 0 && a2 <= 0
	default:
		return a1*a2 <= 0
	}
}

func bisect(f AltitudeFunc, a, b, targetDeg float64, eventType EventType, tol float64) Result {
	altA := f(a) - targetDeg
	altB := f(b) - targetDeg

	if !hasCrossing(altA, altB, eventType) {
		return Result{OK: false}
	}

	for b-a > tol {
		mid := a + (b-a)/2
		altM := f(mid) - targetDeg

		if hasCrossing(altA, altM, eventType) {
			b = mid
		} else {
			a = mid
			altA = altM
		}
	}

	return Result{
		Hours: a + (b-a)/2,
		OK:    true,
	}
}
