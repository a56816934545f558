// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	QuestionsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civicqa_questions_processed_total",
			Help: "Total number of questions answered, by primary intent",
		},
		[]string{"intent"},
	)

	QuestionsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civicqa_questions_failed_total",
			Help: "Total number of questions that failed on store access",
		},
		[]string{"error_code"},
	)

	SearchBranchHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "civicqa_search_branch_hits_total",
			Help: "Which lookup branch produced the answer",
		},
		[]string{"branch"},
	)

	NoMatchResponses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "civicqa_no_match_responses_total",
			Help: "Questions that produced a not-found response",
		},
	)

	QuestionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "civicqa_question_duration_seconds",
			Help: "End-to-end duration of question processing in seconds",
		},
		[]string{"intent"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "civicqa_active_sessions",
			Help: "Number of conversation sessions currently held",
		},
	)
)
