package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/akolanti/cogcompanion/internal/config"
	"github.com/akolanti/cogcompanion/internal/metrics"
	"github.com/akolanti/cogcompanion/pkg/logger_i"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

// Chain runs every request through trace injection, authentication and the
// per-IP rate limiter before the handler.
type Chain struct {
	authToken string
	limiter   *IPRateLimiter
}

// NewChain builds the middleware. An empty authToken disables authentication.
func NewChain(authToken string, perSecond float64, burst int) *Chain {
	return &Chain{
		authToken: authToken,
		limiter:   NewIPRateLimiter(rate.Limit(perSecond), burst),
	}
}

// RunLimiterEviction drops idle client buckets until ctx is done.
func (c *Chain) RunLimiterEviction(ctx context.Context) {
	c.limiter.RunEviction(ctx, config.LimiterSweepInterval, config.LimiterIdleTimeout)
}

func (c *Chain) Wrap(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK} //metrics
		re := c.processRequest(requestResponseStruct{req: r, writer: rec})

		if !re.badRequest.isBadRequest {
			next(rec, re.req)
		}

		metrics.HttpRequestsTotal.WithLabelValues(routePattern(r), strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func (c *Chain) processRequest(re requestResponseStruct) requestResponseStruct {
	re.logger = logger_i.NewLogger("middleware")
	steps := []func(requestResponseStruct) requestResponseStruct{
		injectTrace,
		c.authenticate,
		c.rateLimiter,
	}
	for _, step := range steps {
		re = step(re)
		if re.badRequest.isBadRequest {
			handleBadRequest(re)
			return re
		}
	}
	re.logger.Info("New request received", "method", re.req.Method, "path", re.req.URL.Path)
	return re
}

// routePattern keeps session ids out of metric labels.
func routePattern(r *http.Request) string {
	if rc := chi.RouteContext(r.Context()); rc != nil {
		if p := rc.RoutePattern(); p != "" {
			return p
		}
	}
	return r.URL.Path
}
