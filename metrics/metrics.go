package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Qualification outcomes.
const (
	OutcomeQualified = "qualified"
	OutcomeNoMatch   = "no_match"
	OutcomeError     = "error"
)

var (
	QualificationRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "loan_qualification_runs_total",
			Help: "Total number of qualification runs by outcome",
		},
		[]string{"outcome"},
	)

	QualificationStageRows = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "loan_qualification_stage_rows",
			Help:    "Rate sheet rows surviving each filter stage",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{"stage"},
	)

	QualificationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "loan_qualification_duration_seconds",
			Help: "Duration of a qualification run including the rate sheet load",
		},
	)

	RateSheetLoads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rate_sheet_loads_total",
			Help: "Rate sheet loads by source and result",
		},
		[]string{"source", "result"},
	)
)
