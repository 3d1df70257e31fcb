package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storyRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "babystory_story_requests_total",
		Help: "Story generation requests by final outcome.",
	}, []string{"status"})

	storyStageDegraded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "babystory_story_stage_degraded_total",
		Help: "Pipeline stages that failed but were skipped instead of aborting the request.",
	}, []string{"stage"})

	storyPipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "babystory_story_pipeline_duration_seconds",
		Help:    "End-to-end duration of the story generation pipeline.",
		Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
	})
)
