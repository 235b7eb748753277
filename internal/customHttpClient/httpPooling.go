package customHttpClient

import (
	"net/http"

	"github.com/akolanti/cogcompanion/internal/config"
)

var customTransport = &http.Transport{
	Proxy:               http.ProxyFromEnvironment,
	MaxIdleConns:        config.MaxIdleConns,
	MaxIdleConnsPerHost: config.MaxIdleConnsPerHost,
	IdleConnTimeout:     config.IdleConnTimeout,
	ForceAttemptHTTP2:   true,
}

var pooled = &http.Client{Transport: customTransport}

// Pooled is the process-wide client for the model provider apis. Per-call
// deadlines come from the request context.
func Pooled() *http.Client {
	return pooled
}
