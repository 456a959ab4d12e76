package sunlight

import (
	"github.com/thurmanmarka/sunlight/internal/digest"
	"github.com/thurmanmarka/sunlight/node"
)

// Skylight is the diffuse light from the sky dome that accompanies a sun.
type Skylight struct {
	on              bool
	shadowIntensity float64
}

// NewSkylight returns a skylight that is off with full shadow intensity.
func NewSkylight() *Skylight {
	return &Skylight{shadowIntensity: 1.0}
}

// On reports whether the skylight is on.
func (k *Skylight) On() bool { return k.on }

// SetOn switches the skylight on or off.
func (k *Skylight) SetOn(on bool) { k.on = on }

// ShadowIntensity returns the skylight shadow intensity in [0,1].
func (k *Skylight) ShadowIntensity() float64 { return k.shadowIntensity }

// SetShadowIntensity sets the skylight shadow intensity in [0,1].
func (k *Skylight) SetShadowIntensity(v float64) bool {
	if !validUnitInterval(v) {
		rejected("skylight-shadow-intensity", v)
		return false
	}
	k.shadowIntensity = v
	return true
}

// Equal reports whether k and o hold the same settings.
func (k *Skylight) Equal(o *Skylight) bool {
	if k == nil || o == nil {
		return k == o
	}
	return k.on == o.on && k.shadowIntensity == o.shadowIntensity
}

// DataCRC folds the skylight state into crc.
func (k *Skylight) DataCRC(crc uint32) uint32 {
	crc = digest.Bool(crc, k.on)
	return digest.Float64(crc, k.shadowIntensity)
}

// LoadFromNode reads the skylight from r, keeping defaults for missing or
// malformed values.
func (k *Skylight) LoadFromNode(r node.Reader) {
	d := NewSkylight()
	k.on, _ = node.Bool(r, "on", d.on)
	k.shadowIntensity, _ = node.Float(r, "shadow-intensity", d.shadowIntensity)
}

// SaveToNode writes the skylight to w.
func (k *Skylight) SaveToNode(w node.Writer) {
	node.SetBool(w, "on", k.on)
	node.SetFloat(w, "shadow-intensity", k.shadowIntensity)
}
