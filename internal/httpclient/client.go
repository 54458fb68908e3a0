package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/finquery/finquery/internal/logger"
	"github.com/finquery/finquery/internal/ratelimit"
	"github.com/finquery/finquery/internal/retry"
	"github.com/finquery/finquery/types"
)

// ProxyConfig routes requests through an explicit forward proxy. It is passed
// per client rather than through the process environment, so concurrent
// clients can use different proxies.
type ProxyConfig struct {
	Scheme   string // defaults to "http"
	Host     string
	Port     int
	Username string
	Password string
}

// URL renders the proxy as a url.URL with embedded credentials.
func (p *ProxyConfig) URL() (*url.URL, error) {
	if p.Host == "" || p.Port <= 0 {
		return nil, types.NewProxyError(fmt.Sprintf("invalid proxy address %q:%d", p.Host, p.Port), nil)
	}
	scheme := p.Scheme
	if scheme == "" {
		scheme = "http"
	}
	u := &url.URL{
		Scheme: scheme,
		Host:   fmt.Sprintf("%s:%d", p.Host, p.Port),
	}
	if p.Username != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u, nil
}

type RetryConfig struct {
	// MaxAttempts is the total transport attempt budget, not a count of
	// retries after the first try.
	MaxAttempts uint
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

type ClientConfig struct {
	Timeout   time.Duration
	Proxy     *ProxyConfig
	RateLimit ratelimit.Limits
	Retry     RetryConfig
	// Transport overrides the wire transport; tests stub it.
	Transport http.RoundTripper
}

// Client performs classified, retried GETs. Responses are sorted into the
// FetchError taxonomy: 2xx passes through, 429 is rate-limited and retryable,
// other 4xx are terminal, 5xx and transport failures are retryable.
type Client struct {
	httpClient *http.Client
	limiter    *ratelimit.Limiter
	retryer    *retry.Retryer
}

func NewClient(cfg ClientConfig) (*Client, error) {
	transport := cfg.Transport
	if transport == nil {
		t := &http.Transport{}
		if cfg.Proxy != nil {
			proxyURL, err := cfg.Proxy.URL()
			if err != nil {
				return nil, err
			}
			t.Proxy = http.ProxyURL(proxyURL)
		}
		transport = t
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout, Transport: transport},
		limiter:    ratelimit.NewLimiter(cfg.RateLimit),
		retryer:    retry.NewRetryer(cfg.Retry.MaxAttempts, cfg.Retry.BaseDelay, cfg.Retry.MaxDelay),
	}, nil
}

// Get fetches url and returns the raw body of a 2xx response. Any other
// outcome is a *types.FetchError; retryable failures are re-attempted within
// the client's budget, and exhaustion wraps retry.ErrBudgetExhausted around
// the final cause.
func (c *Client) Get(ctx context.Context, rawURL string, headers map[string]string) ([]byte, error) {
	var body []byte

	err := c.retryer.Do(ctx, func() (bool, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return false, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return false, types.NewValidationError("invalid request URL: " + rawURL)
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return classifyTransportError(err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return true, types.NewNetworkError("reading response body", 0, err)
		}

		switch {
		case resp.StatusCode >= 200 && resp.StatusCode < 300:
			body = data
			return false, nil
		case resp.StatusCode == http.StatusTooManyRequests:
			logger.Debugf("httpclient: rate limited by remote (429)")
			return true, types.NewRateLimitError("remote rate limit hit")
		case resp.StatusCode >= 400 && resp.StatusCode < 500:
			return false, types.NewNetworkError("client error from remote", resp.StatusCode, nil)
		default:
			return true, types.NewNetworkError("server error from remote", resp.StatusCode, nil)
		}
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// classifyTransportError maps a wire-level failure onto the error taxonomy
// and decides whether another attempt is worthwhile.
func classifyTransportError(err error) (bool, error) {
	switch {
	case isProxyError(err):
		return false, types.NewProxyError("proxy connection failed", err)
	case isTimeout(err):
		return true, types.NewTimeoutError("request timed out", err)
	default:
		return true, types.NewNetworkError("transport failure", 0, err)
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

func isProxyError(err error) bool {
	// net/http reports CONNECT failures through a net.OpError with the
	// "proxyconnect" op; that is the only reliable marker it exposes.
	var oe *net.OpError
	return errors.As(err, &oe) && oe.Op == "proxyconnect"
}
