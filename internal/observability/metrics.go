package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AssessmentRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_runs_total",
			Help: "Total assessment runs by outcome",
		},
		[]string{"outcome"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assessment_cache_lookups_total",
			Help: "Fingerprint cache lookups by result",
		},
		[]string{"result"},
	)

	LLMCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "llm_call_duration_seconds",
			Help:    "Duration of text-generation calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"agent"},
	)

	LLMCallErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_call_errors_total",
			Help: "Failed text-generation calls by agent",
		},
		[]string{"agent"},
	)

	FollowUpAnswers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "follow_up_answers_total",
			Help: "Follow-up answers processed by outcome",
		},
		[]string{"outcome"},
	)
)
