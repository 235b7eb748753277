package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCaptureRetrievalFallback(t *testing.T) {
	before := testutil.ToFloat64(retrievalSearches.WithLabelValues("true"))
	CaptureRetrievalFallback(true)
	CaptureRetrievalFallback(false)
	assert.Equal(t, before+1, testutil.ToFloat64(retrievalSearches.WithLabelValues("true")))
}

func TestCaptureSummarizationFailure(t *testing.T) {
	before := testutil.ToFloat64(summarizationFailures.WithLabelValues("fusion"))
	CaptureSummarizationFailure("fusion")
	assert.Equal(t, before+1, testutil.ToFloat64(summarizationFailures.WithLabelValues("fusion")))
}

func TestActiveSessions(t *testing.T) {
	before := testutil.ToFloat64(activeSessions)
	IncrementActiveSessions()
	IncrementActiveSessions()
	DecrementActiveSessions()
	assert.Equal(t, before+1, testutil.ToFloat64(activeSessions))
}

func TestHistogramsAcceptObservations(t *testing.T) {
	CaptureExecutionMetrics("embedding", 20*time.Millisecond)
	CaptureTurnMetrics("ok", time.Second)
	assert.Positive(t, testutil.CollectAndCount(dependencyLatency))
	assert.Positive(t, testutil.CollectAndCount(turnDuration))
}

func TestHttpStatusRecorder(t *testing.T) {
	rec := httptest.NewRecorder()
	sr := &HttpStatusRecorder{ResponseWriter: rec, Status: http.StatusOK}
	sr.WriteHeader(http.StatusTeapot)
	assert.Equal(t, http.StatusTeapot, sr.Status)
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
