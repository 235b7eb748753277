package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var turnsByIntent = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "chat_turns_total",
	Help: "Chat turns labelled by routed intent",
}, []string{"intent"})

var retrievalSearches = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "retrieval_searches_total",
	Help: "Knowledge base searches, labelled by whether the relaxed threshold was needed",
}, []string{"relaxed"})

var summarizationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "summarization_failures_total",
	Help: "Failed summarizer calls labelled by stage (chunk or fusion)",
}, []string{"stage"})

var uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "uploads_total",
	Help: "Uploads labelled by file type and outcome",
}, []string{"file_type", "outcome"})

var activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "active_sessions",
	Help: "Number of sessions held in memory",
})

// HttpStatusRecorder remembers the status written by the wrapped handler.
type HttpStatusRecorder struct {
	http.ResponseWriter
	Status int
}

func (r *HttpStatusRecorder) WriteHeader(code int) {
	r.Status = code
	r.ResponseWriter.WriteHeader(code)
}

func IncrementActiveSessions() {
	activeSessions.Inc()
}

func DecrementActiveSessions() {
	activeSessions.Dec()
}

func CaptureIntent(intent string) {
	turnsByIntent.WithLabelValues(intent).Inc()
}

func CaptureRetrievalFallback(relaxed bool) {
	retrievalSearches.WithLabelValues(strconv.FormatBool(relaxed)).Inc()
}

func CaptureSummarizationFailure(stage string) {
	summarizationFailures.WithLabelValues(stage).Inc()
}

func CaptureUpload(fileType, outcome string) {
	uploadsTotal.WithLabelValues(fileType, outcome).Inc()
}

var turnDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "chat_turn_duration_seconds",
	Help:    "Total time spent answering one chat turn.",
	Buckets: []float64{.1, .5, 1, 2, 5, 10, 30},
}, []string{"status"})

var dependencyLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "dependency_latency_seconds",
	Help:    "Latency of external service calls.",
	Buckets: []float64{.05, .1, .25, .5, 1, 2, 5, 10},
}, []string{"service"})

func CaptureExecutionMetrics(label string, timeElapsed time.Duration) {
	dependencyLatency.WithLabelValues(label).Observe(timeElapsed.Seconds())
}

func CaptureTurnMetrics(label string, timeElapsed time.Duration) {
	turnDuration.WithLabelValues(label).Observe(timeElapsed.Seconds())
}
