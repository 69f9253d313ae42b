package querycache

import "github.com/prometheus/client_golang/prometheus"

var (
	hits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dompet_querycache_hits_total",
		Help: "Reads served from a fresh cache entry.",
	}, []string{"cache"})

	misses = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dompet_querycache_misses_total",
		Help: "Reads that found no fresh entry.",
	}, []string{"cache"})

	sets = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dompet_querycache_sets_total",
		Help: "Entries written.",
	}, []string{"cache"})

	invalidations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dompet_querycache_invalidations_total",
		Help: "Entries marked stale.",
	}, []string{"cache"})

	refetchErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dompet_querycache_refetch_errors_total",
		Help: "Keys whose refetch failed.",
	}, []string{"cache"})
)

// Collectors returns the package metrics for registration by the binary.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{hits, misses, sets, invalidations, refetchErrors}
}
