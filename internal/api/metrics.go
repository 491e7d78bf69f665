package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "triage_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	batchSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "triage_batch_size",
		Help:    "Number of tasks per submitted batch.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 10),
	}, []string{"endpoint"})

	taskScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "triage_task_score",
		Help:    "Distribution of computed task priority scores.",
		Buckets: prometheus.LinearBuckets(0, 25, 10),
	})

	batchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "triage_batch_failures_total",
		Help: "Batches rejected by the scoring core, by endpoint and reason.",
	}, []string{"endpoint", "reason"})
)
