package sunlight

import (
	"fmt"

	"github.com/thurmanmarka/sunlight/internal/digest"
	"github.com/thurmanmarka/sunlight/node"
)

// DitheringMethod selects how rendered output is dithered.
type DitheringMethod int

const (
	DitheringSimpleNoise DitheringMethod = iota
	DitheringFloydSteinberg
)

// String returns the method's persisted name.
func (m DitheringMethod) String() string {
	switch m {
	case DitheringSimpleNoise:
		return "simple-noise"
	case DitheringFloydSteinberg:
		return "floyd-steinberg"
	default:
		return fmt.Sprintf("DitheringMethod(%d)", int(m))
	}
}

// ParseDitheringMethod parses the names returned by DitheringMethod.String.
func ParseDitheringMethod(s string) (DitheringMethod, error) {
	switch s {
	case "simple-noise":
		return DitheringSimpleNoise, nil
	case "floyd-steinberg":
		return DitheringFloydSteinberg, nil
	default:
		return DitheringSimpleNoise, fmt.Errorf("unknown dithering method %q", s)
	}
}

// Dithering holds the dithering settings of a render.
type Dithering struct {
	on     bool
	method DitheringMethod
}

// NewDithering returns dithering that is off using Floyd-Steinberg.
func NewDithering() *Dithering {
	return &Dithering{method: DitheringFloydSteinberg}
}

// On reports whether dithering is on.
func (d *Dithering) On() bool { return d.on }

// SetOn switches dithering on or off.
func (d *Dithering) SetOn(on bool) { d.on = on }

// Method returns the dithering method.
func (d *Dithering) Method() DitheringMethod { return d.method }

// SetMethod sets the dithering method. Unknown methods are rejected.
func (d *Dithering) SetMethod(m DitheringMethod) bool {
	if m != DitheringSimpleNoise && m != DitheringFloydSteinberg {
		rejected("dithering-method", int(m))
		return false
	}
	d.method = m
	return true
}

// Equal reports whether d and o hold the same settings.
func (d *Dithering) Equal(o *Dithering) bool {
	if d == nil || o == nil {
		return d == o
	}
	return d.on == o.on && d.method == o.method
}

// DataCRC folds the dithering state into crc.
func (d *Dithering) DataCRC(crc uint32) uint32 {
	crc = digest.Bool(crc, d.on)
	return digest.Int(crc, int(d.method))
}

// LoadFromNode reads the dithering settings from r, keeping defaults for
// missing or malformed values.
func (d *Dithering) LoadFromNode(r node.Reader) {
	def := NewDithering()
	d.on, _ = node.Bool(r, "on", def.on)
	d.method = def.method
	if s, ok := r.Value("method"); ok {
		if m, err := ParseDitheringMethod(s); err == nil {
			d.method = m
		}
	}
}

// SaveToNode writes the dithering settings to w.
func (d *Dithering) SaveToNode(w node.Writer) {
	node.SetBool(w, "on", d.on)
	w.SetValue("method", d.method.String())
}
