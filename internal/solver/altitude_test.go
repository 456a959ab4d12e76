package solver

import (
	"math"
	"testing"
)

// dayCurve is a smooth stand-in for a solar altitude curve peaking at noon.
func dayCurve(h float64) float64 {
	return 40 * math.Sin((h-6)/12*math.Pi)
}

func TestFindAltitudeEvent(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		event  EventType
		want   float64
	}{
		{"rise at horizon", 0, CrossingUp, 6},
		{"set at horizon", 0, CrossingDown, 18},
		{"rise at 20 degrees", 20, CrossingUp, 8},
		{"set at 20 degrees", 20, CrossingDown, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := FindAltitudeEvent(dayCurve, 0, 24, tt.target, tt.event, 48, 1e-6)
			if !res.OK {
				t.Fatalf("no event found")
			}
			if math.Abs(res.Hours-tt.want) > 1e-4 {
				t.Errorf("event at %.6fh, want %.6fh", res.Hours, tt.want)
			}
		})
	}
}

func TestFindAltitudeEventNoCrossing(t *testing.T) {
	res := FindAltitudeEvent(dayCurve, 0, 24, 60, CrossingUp, 48, 1e-4)
	if res.OK {
		t.Errorf("found event at %.4fh for an unreachable altitude", res.Hours)
	}

	res = FindAltitudeEvent(dayCurve, 12, 12, 0, CrossingUp, 48, 1e-4)
	if res.OK {
		t.Errorf("found event in an empty interval")
	}
}
