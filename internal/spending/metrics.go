package spending

import "github.com/prometheus/client_golang/prometheus"

var (
	recomputeFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dompet_spending_recompute_failures_total",
		Help: "Spending totals that could not be recomputed after a ledger write.",
	})

	mutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "dompet_spending_mutations_total",
		Help: "Ledger mutations handled by the coordinator.",
	}, []string{"op", "result"})
)

// Collectors returns the package metrics for registration by the binary.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{recomputeFailures, mutations}
}
