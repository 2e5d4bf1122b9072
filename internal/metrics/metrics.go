package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ViabilityAnalyses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webmarcas_viability_analyses_total",
			Help: "Total number of viability analyses by outcome",
		},
		[]string{"outcome"},
	)

	ViabilityEnrichment = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webmarcas_viability_enrichment_total",
			Help: "Total number of enrichment attempts by result",
		},
		[]string{"result"},
	)

	ViabilityDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "webmarcas_viability_duration_seconds",
			Help:    "Duration of viability analyses in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10, 20, 30},
		},
	)

	ContractRenders = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webmarcas_contract_renders_total",
			Help: "Total number of rendered contracts by payment method",
		},
		[]string{"payment_method"},
	)
)

// Enrichment results.
const (
	EnrichmentApplied  = "applied"
	EnrichmentFailed   = "failed"
	EnrichmentDisabled = "disabled"
)
