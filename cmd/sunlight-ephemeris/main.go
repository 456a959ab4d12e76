package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap"

	"github.com/thurmanmarka/sunlight"
	"github.com/thurmanmarka/sunlight/internal/logger"
)

type stats struct {
	count int
	sum   float64
	min   float64
	max   float64
}

func (s *stats) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	if s.count == 0 {
		s.min, s.max = v, v
	} else {
		if v < s.min {
			s.min = v
		}
		if v > s.max {
			s.max = v
		}
	}
	s.sum += v
	s.count++
}

func (s *stats) mean() float64 {
	if s.count == 0 {
		return math.NaN()
	}
	return s.sum / float64(s.count)
}

func (s *stats) print(title string) {
	fmt.Printf("\n%s:\n", title)
	if s.count == 0 {
		fmt.Println("  no data")
		return
	}
	fmt.Printf("  count: %d\n", s.count)
	fmt.Printf("  min:   %.3f\n", s.min)
	fmt.Printf("  max:   %.3f\n", s.max)
	fmt.Printf("  mean:  %.3f\n", s.mean())
}

// diffMinutes returns a-b in minutes, or NaN when either event is missing.
func diffMinutes(a float64, okA bool, b float64, okB bool) float64 {
	if !okA || !okB {
		return math.NaN()
	}
	return (a - b) * 60
}

// Prints one row per day between -from and -to comparing the minimum and
// maximum accuracy tiers:
//
//	date,min_rise,max_rise,min_set,max_set,rise_diff,set_diff,noon_alt_diff
//	2025-01-01,07:32,07:33,17:12,17:12,-0.412,0.288,0.0041
//
// Rise and set are local clock times for the time zone given by -tz.
// Differences are minimum minus maximum, in minutes for events and degrees
// for the local-noon altitude.
func main() {
	var (
		lat      = flag.Float64("lat", 0, "latitude in degrees (north positive)")
		lon      = flag.Float64("lon", 0, "longitude in degrees (east positive, west negative)")
		tz       = flag.Float64("tz", 0, "time zone in hours east of UTC")
		fromS    = flag.String("from", "", "first local date YYYY-MM-DD")
		toS      = flag.String("to", "", "last local date YYYY-MM-DD (defaults to -from)")
		twilight = flag.String("twilight", "", "twilight kind: civil, nautical, astronomical (default: sunrise/sunset)")
		outCSV   = flag.String("outcsv", "", "optional path to write per-day CSV")
		verbose  = flag.Bool("verbose", false, "print per-day rows instead of only the summary")
		showMet  = flag.Bool("metrics", false, "print engine counters after the run")
		logLevel = flag.String("log-level", "warn", "log level: debug, info, warn or error")
	)

	flag.Parse()
	log.SetFlags(0)

	if err := logger.Init(*logLevel, ""); err != nil {
		log.Fatalf("failed to start logging: %v", err)
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	if err := sunlight.RegisterMetrics(reg); err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	if *fromS == "" {
		log.Fatalf("missing -from (first date)")
	}
	if *toS == "" {
		*toS = *fromS
	}
	from, err := time.Parse(time.DateOnly, *fromS)
	if err != nil {
		log.Fatalf("invalid -from %q: %v", *fromS, err)
	}
	to, err := time.Parse(time.DateOnly, *toS)
	if err != nil {
		log.Fatalf("invalid -to %q: %v", *toS, err)
	}
	if to.Before(from) {
		log.Fatalf("-to %s is before -from %s", *toS, *fromS)
	}

	var (
		useTwilight  bool
		twilightKind sunlight.TwilightKind
	)
	if *twilight != "" {
		useTwilight = true
		switch strings.ToLower(*twilight) {
		case "civil":
			twilightKind = sunlight.TwilightCivil
		case "nautical":
			twilightKind = sunlight.TwilightNautical
		case "astronomical":
			twilightKind = sunlight.TwilightAstronomical
		default:
			log.Fatalf("unknown twilight kind %q (use civil, nautical, or astronomical)", *twilight)
		}
	}

	modeDesc := "SUNRISE/SUNSET"
	if useTwilight {
		modeDesc = strings.ToUpper(twilightKind.String()) + " TWILIGHT"
	}

	if *lat == 0 && *lon == 0 {
		log.Println("warning: lat=0 lon=0 (Gulf of Guinea). Did you mean to set -lat/-lon?")
	}

	low := newEngine(sunlight.AccuracyMinimum, *lat, *lon, *tz)
	high := newEngine(sunlight.AccuracyMaximum, *lat, *lon, *tz)

	var outWriter *csv.Writer
	if *outCSV != "" {
		outFile, err := os.Create(*outCSV)
		if err != nil {
			log.Fatalf("failed to create outcsv %q: %v", *outCSV, err)
		}
		defer outFile.Close()

		outWriter = csv.NewWriter(outFile)
		defer outWriter.Flush()

		if err := outWriter.Write([]string{
			"date",
			"mode",
			"min_rise",
			"max_rise",
			"min_set",
			"max_set",
			"rise_diff",
			"set_diff",
			"noon_alt_diff",
		}); err != nil {
			log.Fatalf("failed to write outcsv header: %v", err)
		}
	}

	var (
		riseStats stats
		setStats  stats
		noonStats stats
		skipped   int
		totalRows int
	)

	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		totalRows++
		dateStr := d.Format(time.DateOnly)

		if !low.SetLocalDateTime(d.Year(), int(d.Month()), d.Day(), 12) ||
			!high.SetLocalDateTime(d.Year(), int(d.Month()), d.Day(), 12) {
			logger.Warn("date outside supported range, skipping",
				zap.String("date", dateStr),
				zap.Int("min_year", sunlight.MinYear()),
				zap.Int("max_year", sunlight.MaxYear()))
			skipped++
			continue
		}
		noonDiff := low.Altitude() - high.Altitude()

		lowEv, lowErr := events(low, useTwilight, twilightKind)
		highEv, highErr := events(high, useTwilight, twilightKind)
		if lowErr != nil || highErr != nil {
			logger.Debug("no events",
				zap.String("date", dateStr),
				zap.NamedError("minimum", lowErr),
				zap.NamedError("maximum", highErr))
		}

		riseDiff := diffMinutes(lowEv.Rise, lowEv.HasRise, highEv.Rise, highEv.HasRise)
		setDiff := diffMinutes(lowEv.Set, lowEv.HasSet, highEv.Set, highEv.HasSet)

		riseStats.add(riseDiff)
		setStats.add(setDiff)
		noonStats.add(noonDiff)

		if *verbose {
			fmt.Printf("%s %s: rise %s/%s (%+.2f min), set %s/%s (%+.2f min), noon alt %+.4f°\n",
				dateStr, modeDesc,
				clock(lowEv.Rise, lowEv.HasRise), clock(highEv.Rise, highEv.HasRise), riseDiff,
				clock(lowEv.Set, lowEv.HasSet), clock(highEv.Set, highEv.HasSet), setDiff,
				noonDiff)
		}

		if outWriter != nil {
			rec := []string{
				dateStr,
				modeDesc,
				clock(lowEv.Rise, lowEv.HasRise),
				clock(highEv.Rise, highEv.HasRise),
				clock(lowEv.Set, lowEv.HasSet),
				clock(highEv.Set, highEv.HasSet),
				csvFloat(riseDiff),
				csvFloat(setDiff),
				csvFloat(noonDiff),
			}
			if err := outWriter.Write(rec); err != nil {
				logger.Error("failed to write outcsv row", zap.String("date", dateStr), zap.Error(err))
			}
		}
	}

	fmt.Println("=== sunlight ephemeris summary ===")
	fmt.Printf("Mode:    %s\n", modeDesc)
	fmt.Printf("Lat/Lon: %.4f / %.4f\n", *lat, *lon)
	fmt.Printf("TZ:      UTC%+.2f\n", *tz)
	fmt.Printf("Days:    %d (processed), %d skipped\n", totalRows-skipped, skipped)

	riseStats.print("Rise difference (minutes, minimum - maximum)")
	setStats.print("Set difference (minutes, minimum - maximum)")
	noonStats.print("Local-noon altitude difference (degrees, minimum - maximum)")

	if *showMet {
		if err := printMetrics(reg); err != nil {
			log.Fatalf("failed to gather metrics: %v", err)
		}
	}
}

func newEngine(a sunlight.Accuracy, lat, lon, tz float64) *sunlight.Engine {
	e := sunlight.NewEngine(a)
	if !e.SetLatitude(lat) {
		log.Fatalf("latitude %v out of range [-90, 90]", lat)
	}
	if !e.SetLongitude(lon) {
		log.Fatalf("longitude %v out of range [-180, 180]", lon)
	}
	if !e.SetTimeZoneHours(tz) {
		log.Fatalf("time zone %v out of range [-12, 13]", tz)
	}
	return e
}

func events(e *sunlight.Engine, twilight bool, kind sunlight.TwilightKind) (sunlight.DayEvents, error) {
	if twilight {
		return e.Twilight(kind)
	}
	return e.RiseSet()
}

func printMetrics(g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}

	fmt.Println("\nEngine counters:")
	for _, mf := range families {
		if mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, m := range mf.GetMetric() {
			fmt.Printf("  %s{%s} %.0f\n", mf.GetName(), labels(m), m.GetCounter().GetValue())
		}
	}
	return nil
}

func labels(m *dto.Metric) string {
	parts := make([]string, 0, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		parts = append(parts, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}

func clock(h float64, ok bool) string {
	if !ok {
		return ""
	}
	m := int(h*60 + 0.5)
	if m >= 24*60 {
		m = 24*60 - 1
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

func csvFloat(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return fmt.Sprintf("%.6f", v)
}
