package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/thurmanmarka/sunlight"
	"github.com/thurmanmarka/sunlight/internal/config"
	"github.com/thurmanmarka/sunlight/internal/logger"
	"github.com/thurmanmarka/sunlight/node"
)

func main() {
	log.SetFlags(0)

	// - If no args or first arg starts with "-", run position mode.
	// - Otherwise treat the first arg as a subcommand.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") {
		runPosition(os.Args[1:])
		return
	}

	switch os.Args[1] {
	case "doc":
		runDoc(os.Args[2:])
	case "config":
		runConfig(os.Args[2:])
	default:
		fmt.Fprintf(os.Stderr, "unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `sunlight – where the sun is, and the light it casts

Usage:
  sunlight [flags]             # Sun position, light and day events (default mode)
  sunlight doc [flags]         # Write the sun as a YAML or XML node document
  sunlight config [flags]      # Write a default config file

Observer flags (all modes except config):
  -config string
        path to a YAML config file
  -lat float, -lon float
        observer latitude/longitude in degrees (north/east positive)
  -tz float
        time zone in hours east of UTC
  -dst, -dst-minutes int
        daylight saving on, and its offset in minutes
  -date string, -time string
        local date YYYY-MM-DD and time HH:MM (defaults to now)
  -north float
        world angle of north in degrees
  -accuracy string
        minimum or maximum

For details:
  sunlight doc -h
`)
}

// ---------------------
// Shared observer flags
// ---------------------

type observerFlags struct {
	fs *flag.FlagSet

	configPath string
	lat, lon   float64
	tz         float64
	dst        bool
	dstMinutes int
	north      float64
	accuracy   string
	date       string
	clock      string
	logLevel   string
	logFile    string
}

func newObserverFlags(name string) *observerFlags {
	f := &observerFlags{fs: flag.NewFlagSet(name, flag.ExitOnError)}
	fs := f.fs
	fs.StringVar(&f.configPath, "config", "", "path to a YAML config file")
	fs.Float64Var(&f.lat, "lat", 0, "latitude in degrees (north positive)")
	fs.Float64Var(&f.lon, "lon", 0, "longitude in degrees (east positive, west negative)")
	fs.Float64Var(&f.tz, "tz", 0, "time zone in hours east of UTC (e.g. -7 for MST)")
	fs.BoolVar(&f.dst, "dst", false, "daylight saving in effect")
	fs.IntVar(&f.dstMinutes, "dst-minutes", 60, "daylight saving offset in minutes")
	fs.Float64Var(&f.north, "north", 90, "world angle of north in degrees, anticlockwise from +X")
	fs.StringVar(&f.accuracy, "accuracy", "", "engine accuracy: minimum or maximum")
	fs.StringVar(&f.date, "date", "", "local date in YYYY-MM-DD (optional, defaults to now)")
	fs.StringVar(&f.clock, "time", "12:00", "local time in HH:MM, used with -date")
	fs.StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&f.logFile, "log-file", "", "also log to this file")
	return f
}

// setup loads the config, applies explicitly set flags over it, starts
// logging and builds the sun.
func (f *observerFlags) setup(args []string) (*config.Config, *sunlight.Sun) {
	if err := f.fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		log.Fatal(err)
	}

	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "lat":
			cfg.Observer.Latitude = f.lat
		case "lon":
			cfg.Observer.Longitude = f.lon
		case "tz":
			cfg.Observer.TimeZone = f.tz
		case "dst":
			cfg.Observer.DaylightSaving = f.dst
		case "dst-minutes":
			cfg.Observer.DaylightSavingMinutes = f.dstMinutes
		case "north":
			cfg.Scene.North = f.north
		case "accuracy":
			cfg.Engine.Accuracy = f.accuracy
		case "log-level":
			cfg.Logging.Level = f.logLevel
		case "log-file":
			cfg.Logging.LogFile = f.logFile
		}
	})

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		log.Fatalf("failed to start logging: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid settings:\n%v", err)
	}
	s, err := cfg.NewSun()
	if err != nil {
		log.Fatal(err)
	}

	if f.date == "" {
		now := time.Now().UTC()
		h := float64(now.Hour()) + float64(now.Minute())/60 + float64(now.Second())/3600
		if !s.SetUTCDateTime(now.Year(), int(now.Month()), now.Day(), h) {
			log.Fatalf("current date %s is outside %d-%d", now.Format(time.DateOnly), sunlight.MinYear(), sunlight.MaxYear())
		}
	} else {
		t, err := time.Parse("2006-01-02 15:04", f.date+" "+f.clock)
		if err != nil {
			log.Fatalf("invalid -date/-time %q %q: %v", f.date, f.clock, err)
		}
		h := float64(t.Hour()) + float64(t.Minute())/60
		if !s.SetLocalDateTime(t.Year(), int(t.Month()), t.Day(), h) {
			log.Fatalf("date %s is outside %d-%d", f.date, sunlight.MinYear(), sunlight.MaxYear())
		}
	}

	logger.Debug("observer configured",
		zap.Float64("latitude", s.Latitude()),
		zap.Float64("longitude", s.Longitude()),
		zap.Float64("time_zone", s.TimeZone()),
		zap.Bool("daylight_saving", s.DaylightSavingOn()),
		zap.Stringer("accuracy", s.Accuracy()))

	return cfg, s
}

// ---------------------
// Position (default) mode
// ---------------------

func runPosition(args []string) {
	f := newObserverFlags("sunlight")
	jsonOut := f.fs.Bool("json", false, "output result as JSON")
	f.fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: sunlight [flags]

Flags:
`)
		f.fs.PrintDefaults()
	}

	cfg, s := f.setup(args)
	defer logger.Sync()

	switch docFmt, isDoc := cfg.Output.DocumentFormat(); {
	case *jsonOut || cfg.Output.Format == "json":
		printJSON(s)
	case isDoc:
		writeDoc(cfg, s, docFmt, "-")
	default:
		printHuman(s)
	}
}

func printHuman(s *sunlight.Sun) {
	e := s.Engine()
	y, m, d, h := s.LocalDateTime()
	uy, um, ud, uh := s.UTCDateTime()

	fmt.Printf("Sun for lat=%.6f lon=%.6f (%s accuracy)\n", s.Latitude(), s.Longitude(), s.Accuracy())
	fmt.Printf("Local: %04d-%02d-%02d %s (UTC%+.2f, DST %v)\n", y, m, d, clock(h), s.TimeZone(), s.DaylightSavingOn())
	fmt.Printf("UTC:   %04d-%02d-%02d %s\n", uy, um, ud, clock(uh))
	fmt.Printf("JD:    %.6f (local %.6f)\n\n", e.JulianDay(), e.LocalJulianDay())

	fmt.Printf("  Azimuth   : %8.3f°\n", s.Azimuth())
	fmt.Printf("  Altitude  : %8.3f°\n", s.Altitude())

	l := s.Light()
	fmt.Printf("  Direction : (%.4f, %.4f, %.4f) with north at %.1f°\n",
		l.Direction.X, l.Direction.Y, l.Direction.Z, s.North())
	c := sunlight.SunColorFromAltitude(s.Altitude())
	fmt.Printf("  Color     : (%.2f, %.2f, %.2f)\n\n", c.R, c.G, c.B)

	ev, err := s.DayEvents()
	switch {
	case err != nil:
		fmt.Printf("  Sunrise/sunset: %v\n", err)
	default:
		fmt.Printf("  Sunrise   : %s\n", eventClock(ev.Rise, ev.HasRise))
		fmt.Printf("  Sunset    : %s\n", eventClock(ev.Set, ev.HasSet))
	}
	if tw, err := e.Twilight(sunlight.TwilightCivil); err == nil {
		fmt.Printf("  Civil     : %s – %s\n", eventClock(tw.Rise, tw.HasRise), eventClock(tw.Set, tw.HasSet))
	}
}

type jsonLight struct {
	On              bool       `json:"on"`
	Direction       [3]float64 `json:"direction"`
	Color           [3]float32 `json:"color"`
	Intensity       float64    `json:"intensity"`
	ShadowIntensity float64    `json:"shadow_intensity"`
}

type jsonOutput struct {
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	TimeZone       float64   `json:"time_zone"`
	DaylightSaving bool      `json:"daylight_saving"`
	Accuracy       string    `json:"accuracy"`
	LocalTime      string    `json:"local_time"`
	UTCTime        string    `json:"utc_time"`
	JulianDay      float64   `json:"julian_day"`
	LocalJulianDay float64   `json:"local_julian_day"`
	Azimuth        float64   `json:"azimuth"`
	Altitude       float64   `json:"altitude"`
	Light          jsonLight `json:"light"`
	Sunrise        string    `json:"sunrise,omitempty"`
	Sunset         string    `json:"sunset,omitempty"`
}

func printJSON(s *sunlight.Sun) {
	e := s.Engine()
	y, m, d, h := s.LocalDateTime()
	uy, um, ud, uh := s.UTCDateTime()
	l := s.Light()
	c := sunlight.SunColorFromAltitude(s.Altitude())

	out := jsonOutput{
		Latitude:       s.Latitude(),
		Longitude:      s.Longitude(),
		TimeZone:       s.TimeZone(),
		DaylightSaving: s.DaylightSavingOn(),
		Accuracy:       s.Accuracy().String(),
		LocalTime:      fmt.Sprintf("%04d-%02d-%02dT%s", y, m, d, clock(h)),
		UTCTime:        fmt.Sprintf("%04d-%02d-%02dT%sZ", uy, um, ud, clock(uh)),
		JulianDay:      e.JulianDay(),
		LocalJulianDay: e.LocalJulianDay(),
		Azimuth:        s.Azimuth(),
		Altitude:       s.Altitude(),
		Light: jsonLight{
			On:              l.On,
			Direction:       [3]float64{l.Direction.X, l.Direction.Y, l.Direction.Z},
			Color:           [3]float32{c.R, c.G, c.B},
			Intensity:       l.Intensity,
			ShadowIntensity: l.ShadowIntensity,
		},
	}

	if ev, err := s.DayEvents(); err == nil {
		if ev.HasRise {
			out.Sunrise = clock(ev.Rise)
		}
		if ev.HasSet {
			out.Sunset = clock(ev.Set)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Fatalf("failed to encode JSON: %v", err)
	}
}

// ---------------------
// Doc subcommand
// ---------------------

func runDoc(args []string) {
	f := newObserverFlags("doc")
	format := f.fs.String("format", "", "document format: yaml or xml (default from config, else yaml)")
	outPath := f.fs.String("o", "-", "output file, - for stdout")
	manual := f.fs.Bool("manual", false, "freeze the computed position as a manual one")
	f.fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: sunlight doc [flags]

Writes the sun, skylight and dithering settings as a node document.

Flags:
`)
		f.fs.PrintDefaults()
	}

	cfg, s := f.setup(args)
	defer logger.Sync()

	if *manual {
		az, alt := s.Azimuth(), s.Altitude()
		s.SetManualControlOn(true)
		s.SetAzimuth(az)
		s.SetAltitude(alt)
	}

	fmtName := *format
	if fmtName == "" {
		fmtName = "yaml"
		if docFmt, ok := cfg.Output.DocumentFormat(); ok {
			fmtName = docFmt
		}
	}
	writeDoc(cfg, s, fmtName, *outPath)
}

// writeDoc writes the sun, skylight and dithering settings as a node
// document in format ("yaml" or "xml") to outPath, or stdout for "-".
func writeDoc(cfg *config.Config, s *sunlight.Sun, fmtName, outPath string) {
	sky := sunlight.NewSkylight()
	sky.SetOn(cfg.Scene.Skylight)
	dit := sunlight.NewDithering()

	var (
		root node.Node
		enc  func() ([]byte, error)
	)
	switch fmtName {
	case "yaml":
		y := node.NewYAML()
		root, enc = y, y.Marshal
	case "xml":
		x := node.NewXML("render-settings")
		root, enc = x, x.Marshal
	default:
		log.Fatalf("unsupported -format %q (use yaml or xml)", fmtName)
	}

	s.SaveToNode(root.AddChild("sun"))
	sky.SaveToNode(root.AddChild("skylight"))
	dit.SaveToNode(root.AddChild("dithering"))

	data, err := enc()
	if err != nil {
		log.Fatalf("failed to encode document: %v", err)
	}
	if fmtName == "xml" {
		data = append(data, '\n')
	}

	logger.Info("writing sun document",
		zap.String("format", fmtName),
		zap.String("path", outPath),
		zap.Uint32("crc", dit.DataCRC(sky.DataCRC(s.DataCRC(0)))))

	if outPath == "-" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		log.Fatalf("failed to write %s: %v", outPath, err)
	}
}

// ---------------------
// Config subcommand
// ---------------------

func runConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	outPath := fs.String("o", "", "output file, - for stdout (default: user config directory)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: sunlight config [flags]

Writes the default configuration.

Flags:
`)
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		log.Fatalf("failed to parse flags: %v", err)
	}

	cfg := config.Default()
	switch *outPath {
	case "":
		if err := cfg.Save(); err != nil {
			log.Fatalf("failed to save config: %v", err)
		}
		fmt.Printf("wrote %s\n", filepath.Join(config.ConfigDir(), "config.yaml"))
	case "-":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			log.Fatalf("failed to encode config: %v", err)
		}
		os.Stdout.Write(data)
	default:
		if err := cfg.SaveTo(*outPath); err != nil {
			log.Fatalf("failed to save config: %v", err)
		}
		fmt.Printf("wrote %s\n", *outPath)
	}
}

// ---------------------
// Shared helpers
// ---------------------

func clock(h float64) string {
	m := int(h*60 + 0.5)
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func eventClock(h float64, ok bool) string {
	if !ok {
		return "none"
	}
	return clock(h)
}
