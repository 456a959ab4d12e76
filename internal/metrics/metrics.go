// Package metrics holds the Prometheus collectors for solar computations.
//
// Collectors are created eagerly and only exported once Register is called,
// so the library never touches the default registry on its own.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// EngineComputations counts full sun position evaluations, labeled by
	// accuracy tier ("minimum" or "maximum").
	EngineComputations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sunlight_engine_computations_total",
		Help: "Total number of sun position computations, labeled by accuracy.",
	}, []string{"accuracy"})

	// SunCacheLookups counts computed-sun position reads, labeled by
	// result ("hit" or "miss").
	SunCacheLookups = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sunlight_sun_cache_lookups_total",
		Help: "Computed sun position reads, labeled by cache result.",
	}, []string{"result"})

	// RejectedInputs counts setter calls rejected by range validation,
	// labeled by field.
	RejectedInputs = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sunlight_rejected_inputs_total",
		Help: "Setter calls rejected by range validation, labeled by field.",
	}, []string{"field"})
)

// Register registers all collectors against reg, defaulting to the global
// Prometheus registry when nil. Registering twice on the same registry is
// not an error.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	for name, c := range map[string]prometheus.Collector{
		"sunlight_engine_computations_total": EngineComputations,
		"sunlight_sun_cache_lookups_total":   SunCacheLookups,
		"sunlight_rejected_inputs_total":     RejectedInputs,
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return fmt.Errorf("register %s: %w", name, err)
		}
	}
	return nil
}

// CacheHit records a computed-sun read served from the memo.
func CacheHit() { SunCacheLookups.WithLabelValues("hit").Inc() }

// CacheMiss records a computed-sun read that had to recompute.
func CacheMiss() { SunCacheLookups.WithLabelValues("miss").Inc() }

// Rejected records a rejected setter argument for field.
func Rejected(field string) { RejectedInputs.WithLabelValues(field).Inc() }
