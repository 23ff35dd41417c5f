package handlers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/kozaktomas/physiognomy/internal/evaluator"
)

var (
	// analysesTotal counts completed analyses.
	// Labels: source (landmarks, mesh, interpret)
	analysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "physiognomy",
		Subsystem: "analysis",
		Name:      "total",
		Help:      "Total face analyses evaluated",
	}, []string{"source"})

	// traitMatches counts matched rules per category.
	traitMatches = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "physiognomy",
		Subsystem: "analysis",
		Name:      "trait_matches_total",
		Help:      "Total rule matches by category",
	}, []string{"category"})

	// categoryFallbacks counts categories that ended with the neutral entry.
	categoryFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "physiognomy",
		Subsystem: "analysis",
		Name:      "fallbacks_total",
		Help:      "Total categories with no matching rule",
	}, []string{"category"})

	// interpretations counts interpretation results.
	// Labels: source (provider model or fallback)
	interpretations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "physiognomy",
		Subsystem: "interpret",
		Name:      "total",
		Help:      "Total interpretations by source",
	}, []string{"source"})

	// analysisDuration measures evaluation latency.
	analysisDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "physiognomy",
		Subsystem: "analysis",
		Name:      "duration_seconds",
		Help:      "Face analysis latency in seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})
)

func observeReport(source string, report *evaluator.Report) {
	analysesTotal.WithLabelValues(source).Inc()
	for _, c := range report.Categories() {
		if c.Outcome == evaluator.FallbackApplied {
			categoryFallbacks.WithLabelValues(c.Name).Inc()
			continue
		}
		traitMatches.WithLabelValues(c.Name).Add(float64(len(c.Traits)))
	}
}
