package ai

import (
	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "babystory_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"operation", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "babystory_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "babystory_ai_prompt_tokens",
			Help:    "Estimated prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20),
		},
		[]string{"operation"},
	)
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "babystory_ai_completion_tokens",
			Help:    "Estimated completion token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20),
		},
		[]string{"operation"},
	)
)

// countTokens estimates the token count for metrics. Estimates only: not
// every provider reports usage, so everything is counted the same way.
func countTokens(text string) int {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return 0
	}
	return len(enc.Encode(text, nil, nil))
}

func observePromptTokens(operation, text string) {
	if n := countTokens(text); n > 0 {
		aiPromptTokens.WithLabelValues(operation).Observe(float64(n))
	}
}

func observeCompletionTokens(operation, text string) {
	if n := countTokens(text); n > 0 {
		aiCompletionTokens.WithLabelValues(operation).Observe(float64(n))
	}
}
