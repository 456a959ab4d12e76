package sunlight

import (
	"go.uber.org/zap"

	"github.com/thurmanmarka/sunlight/internal/logger"
	"github.com/thurmanmarka/sunlight/node"
)

// Node keys of the persisted sun fields.
const (
	keyNorth                = "north"
	keyEnableAllowed        = "enable-allowed"
	keyEnableOn             = "enable-on"
	keyManualControlAllowed = "manual-control-allowed"
	keyManualControlOn      = "manual-control-on"
	keyAzimuth              = "azimuth"
	keyAltitude             = "altitude"
	keyLatitude             = "latitude"
	keyLongitude            = "longitude"
	keyTimeZone             = "time-zone"
	keyDaylightSavingOn     = "daylight-saving-on"
	keyDaylightSavingMins   = "daylight-saving-minutes"
	keyYear                 = "year"
	keyMonth                = "month"
	keyDay                  = "day"
	keyTime                 = "time"
	keyIntensity            = "intensity"
	keyShadowIntensity      = "shadow-intensity"
)

// NewSunFromNode returns a stored Sun loaded from r.
func NewSunFromNode(r node.Reader) *Sun {
	s := NewSun()
	s.LoadFromNode(r)
	return s
}

// NewComputedSunFromNode returns a computed Sun loaded from r.
func NewComputedSunFromNode(r node.Reader) *Sun {
	s := NewComputedSun()
	s.LoadFromNode(r)
	return s
}

// LoadFromNode replaces every persisted field with the value stored in r.
// Missing or unparseable values take the NewSun default. Values are not
// range checked; use IsValid after loading untrusted documents.
func (s *Sun) LoadFromNode(r node.Reader) {
	d := NewSun()
	l := loader{r: r}

	s.north = l.readFloat(keyNorth, d.north)
	s.enableAllowed = l.readBool(keyEnableAllowed, d.enableAllowed)
	s.enableOn = l.readBool(keyEnableOn, d.enableOn)
	s.manualControlAllowed = l.readBool(keyManualControlAllowed, d.manualControlAllowed)
	s.manualControlOn = l.readBool(keyManualControlOn, d.manualControlOn)
	s.azimuth = l.readFloat(keyAzimuth, d.azimuth)
	s.altitude = l.readFloat(keyAltitude, d.altitude)
	s.latitude = l.readFloat(keyLatitude, d.latitude)
	s.longitude = l.readFloat(keyLongitude, d.longitude)
	s.timeZone = l.readFloat(keyTimeZone, d.timeZone)
	s.dstOn = l.readBool(keyDaylightSavingOn, d.dstOn)
	s.dstMinutes = l.readInt(keyDaylightSavingMins, d.dstMinutes)
	s.year = l.readInt(keyYear, d.year)
	s.month = l.readInt(keyMonth, d.month)
	s.day = l.readInt(keyDay, d.day)
	s.hours = l.readFloat(keyTime, d.hours)
	s.intensity = l.readFloat(keyIntensity, d.intensity)
	s.shadowIntensity = l.readFloat(keyShadowIntensity, d.shadowIntensity)

	s.invalidate()

	if len(l.defaulted) > 0 {
		logger.Debug("sun fields loaded with defaults", zap.Strings("fields", l.defaulted))
	}
}

// SaveToNode writes every persisted field to w.
func (s *Sun) SaveToNode(w node.Writer) {
	node.SetFloat(w, keyNorth, s.north)
	node.SetBool(w, keyEnableAllowed, s.enableAllowed)
	node.SetBool(w, keyEnableOn, s.enableOn)
	node.SetBool(w, keyManualControlAllowed, s.manualControlAllowed)
	node.SetBool(w, keyManualControlOn, s.manualControlOn)
	node.SetFloat(w, keyAzimuth, s.azimuth)
	node.SetFloat(w, keyAltitude, s.altitude)
	node.SetFloat(w, keyLatitude, s.latitude)
	node.SetFloat(w, keyLongitude, s.longitude)
	node.SetFloat(w, keyTimeZone, s.timeZone)
	node.SetBool(w, keyDaylightSavingOn, s.dstOn)
	node.SetInt(w, keyDaylightSavingMins, s.dstMinutes)
	node.SetInt(w, keyYear, s.year)
	node.SetInt(w, keyMonth, s.month)
	node.SetInt(w, keyDay, s.day)
	node.SetFloat(w, keyTime, s.hours)
	node.SetFloat(w, keyIntensity, s.intensity)
	node.SetFloat(w, keyShadowIntensity, s.shadowIntensity)
}

// loader reads typed values from a node and remembers which fields fell
// back to their defaults.
type loader struct {
	r         node.Reader
	defaulted []string
}

func (l *loader) readFloat(name string, def float64) float64 {
	v, ok := node.Float(l.r, name, def)
	if !ok {
		l.defaulted = append(l.defaulted, name)
	}
	return v
}

func (l *loader) readInt(name string, def int) int {
	v, ok := node.Int(l.r, name, def)
	if !ok {
		l.defaulted = append(l.defaulted, name)
	}
	return v
}

func (l *loader) readBool(name string, def bool) bool {
	v, ok := node.Bool(l.r, name, def)
	if !ok {
		l.defaulted = append(l.defaulted, name)
	}
	return v
}
