package universe

import (
	"time"

	"sectorgen/internal/warpgraph"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sectorgen_generation_duration_seconds",
		Help:    "Wall-clock time to generate a universe graph",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10},
	}, []string{"kind"})

	generatedSectors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sectorgen_generated_sectors_total",
		Help: "Sectors generated and persisted, by universe kind",
	}, []string{"kind"})

	connectivityRepairs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sectorgen_connectivity_repairs_total",
		Help: "Lanes added while merging strongly connected components",
	}, []string{"method"})

	oneWayShortfall = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sectorgen_one_way_shortfall_total",
		Help: "One-way conversions skipped by the dead-end safety check",
	})

	routeQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sectorgen_route_queries_total",
		Help: "Shortest-path queries by outcome",
	}, []string{"result"})

	routeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sectorgen_route_duration_seconds",
		Help:    "Shortest-path query duration",
		Buckets: []float64{0.00001, 0.0001, 0.001, 0.01, 0.1},
	})
)

func observeGeneration(kind Kind, started time.Time, g *warpgraph.Graph) {
	generationDuration.WithLabelValues(string(kind)).Observe(time.Since(started).Seconds())
	generatedSectors.WithLabelValues(string(kind)).Add(float64(g.Len()))
	connectivityRepairs.WithLabelValues("restored").Add(float64(g.Stats.RestoredLanes))
	connectivityRepairs.WithLabelValues("bridged").Add(float64(g.Stats.BridgeLanes))
	if short := g.Stats.OneWayTarget - g.Stats.OneWayLanes; short > 0 {
		oneWayShortfall.Add(float64(short))
	}
}

func observeRoute(started time.Time, found bool) {
	routeDuration.Observe(time.Since(started).Seconds())
	if found {
		routeQueries.WithLabelValues("found").Inc()
	} else {
		routeQueries.WithLabelValues("unreachable").Inc()
	}
}
