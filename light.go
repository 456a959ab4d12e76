package sunlight

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/thurmanmarka/sunlight/internal/timeutil"
)

// Color is a linear RGBA color with components in [0,1].
type Color struct {
	R, G, B, A float32
}

// Colors used for the sun light's fixed terms.
var (
	Black = Color{0, 0, 0, 1}
	White = Color{1, 1, 1, 1}
)

// Vec4 returns c as an mgl32 vector for shader upload.
func (c Color) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{c.R, c.G, c.B, c.A}
}

// LightStyle identifies the kind of light.
type LightStyle int

const (
	LightStyleDirectional LightStyle = iota
)

// Light is a directional light projected from a Sun.
type Light struct {
	On    bool
	Style LightStyle

	// Direction is the unit vector the light travels along, from the sun
	// towards the scene.
	Direction r3.Vec

	Ambient, Diffuse, Specular Color

	Intensity       float64
	ShadowIntensity float64
}

// Direction32 returns Direction in single precision.
func (l Light) Direction32() mgl32.Vec3 {
	return mgl32.Vec3{float32(l.Direction.X), float32(l.Direction.Y), float32(l.Direction.Z)}
}

// Light returns a directional light for s. It uses the resolved azimuth
// and altitude and does not change s other than through the computed
// position memo.
func (s *Sun) Light() Light {
	return Light{
		On:              s.enableOn,
		Style:           LightStyleDirectional,
		Direction:       r3.Scale(-1, s.CalculateVectorFromAzimuthAndAltitude()),
		Ambient:         Black,
		Diffuse:         White,
		Specular:        White,
		Intensity:       s.intensity,
		ShadowIntensity: s.shadowIntensity,
	}
}

// northRotation rotates horizon coordinates (north along +Y) into world
// space, where north lies at s.north degrees anticlockwise from +X.
func (s *Sun) northRotation() r3.Rotation {
	return r3.NewRotation(timeutil.Deg2Rad(s.north-90), r3.Vec{Z: 1})
}

// CalculateVectorFromAzimuthAndAltitude returns the world-space unit vector
// pointing at the sun, taking North into account.
func (s *Sun) CalculateVectorFromAzimuthAndAltitude() r3.Vec {
	v := ConvertHorizonCoordsToSolarVector(s.Azimuth(), s.Altitude())
	return s.northRotation().Rotate(v)
}

// SetAzimuthAndAltitudeFromVector sets the manual azimuth and altitude from
// a world-space vector pointing at the sun, taking North into account. It
// does not turn on manual control. It returns false for zero or non-finite
// vectors.
func (s *Sun) SetAzimuthAndAltitudeFromVector(v r3.Vec) bool {
	inv := r3.NewRotation(-timeutil.Deg2Rad(s.north-90), r3.Vec{Z: 1})
	az, alt, ok := ConvertSolarVectorToHorizonCoords(inv.Rotate(v))
	if !ok {
		rejected("vector", []float64{v.X, v.Y, v.Z})
		return false
	}
	s.azimuth = az
	s.altitude = alt
	return true
}

// sunColorStops maps altitude in degrees to the color of sunlight.
var sunColorStops = []struct {
	alt     float64
	r, g, b float32
}{
	{-5, 0.45, 0.16, 0.10},
	{0, 1.00, 0.40, 0.20},
	{5, 1.00, 0.65, 0.35},
	{15, 1.00, 0.85, 0.65},
	{30, 1.00, 0.95, 0.88},
	{60, 1.00, 1.00, 1.00},
}

// SunColorFromAltitude returns a color for rendering sunlight when the sun
// is at the given altitude: deep red at the horizon, warming through orange
// to white high in the sky.
func SunColorFromAltitude(altitude float64) Color {
	if math.IsNaN(altitude) {
		return White
	}

	first := sunColorStops[0]
	if altitude <= first.alt {
		return Color{first.r, first.g, first.b, 1}
	}
	for i := 1; i < len(sunColorStops); i++ {
		hi := sunColorStops[i]
		if altitude > hi.alt {
			continue
		}
		if altitude == hi.alt {
			return Color{hi.r, hi.g, hi.b, 1}
		}
		lo := sunColorStops[i-1]
		t := float32((altitude - lo.alt) / (hi.alt - lo.alt))
		return Color{
			R: mgl32.Clamp(lo.r+(hi.r-lo.r)*t, 0, 1),
			G: mgl32.Clamp(lo.g+(hi.g-lo.g)*t, 0, 1),
			B: mgl32.Clamp(lo.b+(hi.b-lo.b)*t, 0, 1),
			A: 1,
		}
	}
	return White
}
