package marketdata

import (
	"net/http"
	"time"

	"github.com/finquery/finquery/internal/httpclient"
	"github.com/finquery/finquery/internal/ratelimit"
)

// Config controls one Client. The zero value is usable; unset fields fall
// back to the defaults below. A Config is read-only once the Client is built
// and may be shared across goroutines.
type Config struct {
	// UserAgent is sent on every request. Empty means a fresh random agent
	// per request, which the remote tolerates better than a fixed one.
	UserAgent string

	// Timeout bounds each transport attempt.
	Timeout time.Duration

	// MaxRetries is the total attempt budget per request: 3 means at most
	// three transport calls.
	MaxRetries uint

	// BaseDelay and MaxDelay shape the exponential backoff between attempts.
	BaseDelay time.Duration
	MaxDelay  time.Duration

	// BatchSize is the chunk size for batch operations.
	BatchSize int

	// Concurrency bounds parallel fetches within a chunk.
	Concurrency int

	// Proxy, when set, routes all requests through a forward proxy.
	Proxy *httpclient.ProxyConfig

	// RateLimit is the local politeness budget; zero fields are unlimited.
	RateLimit ratelimit.Limits

	// Transport overrides the wire transport. When set, Proxy is ignored;
	// tests and callers with custom instrumentation use this.
	Transport http.RoundTripper
}

const (
	defaultTimeout     = 30 * time.Second
	defaultMaxRetries  = 3
	defaultBaseDelay   = 500 * time.Millisecond
	defaultMaxDelay    = 10 * time.Second
	defaultBatchSize   = 20
	defaultConcurrency = 4
)

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = defaultBaseDelay
	}
	if c.MaxDelay <= 0 {
		c.MaxDelay = defaultMaxDelay
	}
	if c.BatchSize == 0 {
		c.BatchSize = defaultBatchSize
	}
	if c.Concurrency <= 0 {
		c.Concurrency = defaultConcurrency
	}
	return c
}
