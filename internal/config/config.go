// Package config handles sunlight tool configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/thurmanmarka/sunlight"
)

// ErrOutOfRange is wrapped by Validate and NewSun for settings outside
// their allowed range.
var ErrOutOfRange = errors.New("value out of range")

// Config holds all tool settings.
type Config struct {
	Observer ObserverConfig `yaml:"observer"`
	Scene    SceneConfig    `yaml:"scene"`
	Engine   EngineConfig   `yaml:"engine"`
	Output   OutputConfig   `yaml:"output"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ObserverConfig holds the observer's place and clock settings.
type ObserverConfig struct {
	Latitude              float64 `yaml:"latitude"`
	Longitude             float64 `yaml:"longitude"`
	TimeZone              float64 `yaml:"time_zone"`
	DaylightSaving        bool    `yaml:"daylight_saving"`
	DaylightSavingMinutes int     `yaml:"daylight_saving_minutes"`
}

// SceneConfig holds how the sun is placed and lit in a scene.
type SceneConfig struct {
	North           float64 `yaml:"north"`
	Intensity       float64 `yaml:"intensity"`
	ShadowIntensity float64 `yaml:"shadow_intensity"`
	Skylight        bool    `yaml:"skylight"`
}

// EngineConfig holds solar engine settings.
type EngineConfig struct {
	Accuracy string `yaml:"accuracy"` // "minimum" or "maximum"
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Format string `yaml:"format"` // "text", "json", "yaml" or "xml"
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Observer: ObserverConfig{
			Latitude:              51.4769,
			Longitude:             -0.0005,
			TimeZone:              0,
			DaylightSaving:        false,
			DaylightSavingMinutes: 60,
		},
		Scene: SceneConfig{
			North:           90,
			Intensity:       1,
			ShadowIntensity: 1,
			Skylight:        false,
		},
		Engine: EngineConfig{
			Accuracy: "minimum",
		},
		Output: OutputConfig{
			Format: "text",
		},
		Logging: LoggingConfig{
			Level:   "warn",
			LogFile: "",
		},
	}
}

var validFormats = map[string]bool{"text": true, "json": true, "yaml": true, "xml": true}

// DocumentFormat returns the format when it names a node document ("yaml"
// or "xml") rather than a position report.
func (o OutputConfig) DocumentFormat() (string, bool) {
	switch o.Format {
	case "yaml", "xml":
		return o.Format, true
	default:
		return "", false
	}
}

// Accuracy returns the configured engine accuracy.
func (c *Config) Accuracy() (sunlight.Accuracy, error) {
	return sunlight.ParseAccuracy(c.Engine.Accuracy)
}

// Validate checks every setting, returning all problems joined.
func (c *Config) Validate() error {
	var errs []error
	if _, err := c.Accuracy(); err != nil {
		errs = append(errs, fmt.Errorf("engine.accuracy: %w", err))
	}
	if !validFormats[c.Output.Format] {
		errs = append(errs, fmt.Errorf("output.format: unknown format %q", c.Output.Format))
	}
	if _, err := c.NewSun(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// NewSun returns a computed sun configured from the observer and scene
// settings, with the local date/time left at its default.
func (c *Config) NewSun() (*sunlight.Sun, error) {
	s := sunlight.NewComputedSun()

	a, err := c.Accuracy()
	if err != nil {
		return nil, fmt.Errorf("engine.accuracy: %w", err)
	}
	s.SetAccuracy(a)
	s.SetEnableOn(true)
	s.SetDaylightSavingOn(c.Observer.DaylightSaving)

	checks := []struct {
		field string
		ok    bool
	}{
		{"observer.latitude", s.SetLatitude(c.Observer.Latitude)},
		{"observer.longitude", s.SetLongitude(c.Observer.Longitude)},
		{"observer.time_zone", s.SetTimeZone(c.Observer.TimeZone)},
		{"observer.daylight_saving_minutes", s.SetDaylightSavingMinutes(c.Observer.DaylightSavingMinutes)},
		{"scene.north", s.SetNorth(c.Scene.North)},
		{"scene.intensity", s.SetIntensity(c.Scene.Intensity)},
		{"scene.shadow_intensity", s.SetShadowIntensity(c.Scene.ShadowIntensity)},
	}
	var errs []error
	for _, ch := range checks {
		if !ch.ok {
			errs = append(errs, fmt.Errorf("%s: %w", ch.field, ErrOutOfRange))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return s, nil
}
