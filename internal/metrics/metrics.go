package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	leadsFiltered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leadsieve_leads_filtered_total",
			Help: "Total leads classified by the keyword filter, by outcome.",
		},
		[]string{"outcome"},
	)

	suggestionsMined = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "leadsieve_suggestions_mined_total",
			Help: "Total keyword suggestions mined from rejected leads.",
		},
	)

	uploadRows = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leadsieve_upload_rows",
			Help:    "Row count per uploaded batch.",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8),
		},
	)

	filterDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "leadsieve_filter_pass_seconds",
			Help:    "Wall time of one filtering pass.",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var initOnce sync.Once

// Init registers all collectors. Must be called once at startup.
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(leadsFiltered, suggestionsMined, uploadRows, filterDuration)
	})
}

func RecordLeadOutcome(outcome string) {
	leadsFiltered.WithLabelValues(outcome).Inc()
}

func RecordPass(rows, suggestions int, seconds float64) {
	uploadRows.Observe(float64(rows))
	suggestionsMined.Add(float64(suggestions))
	filterDuration.Observe(seconds)
}
