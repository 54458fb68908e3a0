// Package marketdata is the public entry point: it fetches OHLCV series and
// fundamentals for instruments and hands back normalized records.
package marketdata

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/finquery/finquery/internal/httpclient"
	"github.com/finquery/finquery/internal/yahoo"
	"github.com/finquery/finquery/types"
)

// Client fetches market data for instruments. It is stateless apart from its
// transport and safe for concurrent use; every fetch is an independent
// transaction against the remote service.
type Client struct {
	cfg  Config
	http httpclient.Getter
}

// New builds a Client from cfg. A negative BatchSize or an unusable proxy is
// rejected here, before any request is made.
func New(cfg Config) (*Client, error) {
	if cfg.BatchSize < 0 {
		return nil, types.NewValidationError(fmt.Sprintf("batch size must be positive, got %d", cfg.BatchSize))
	}
	cfg = cfg.withDefaults()

	hc, err := httpclient.NewClient(httpclient.ClientConfig{
		Timeout:   cfg.Timeout,
		Proxy:     cfg.Proxy,
		RateLimit: cfg.RateLimit,
		Transport: cfg.Transport,
		Retry: httpclient.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   cfg.BaseDelay,
			MaxDelay:    cfg.MaxDelay,
		},
	})
	if err != nil {
		return nil, err
	}

	return &Client{cfg: cfg, http: hc}, nil
}

// FetchData retrieves the bar series for one instrument. Interval/range
// compatibility is checked before any I/O; an empty parsed series is reported
// as a validation error, distinct from transport failures.
func (c *Client) FetchData(ctx context.Context, instrument types.Instrument, rng types.Range, interval types.Interval) (*types.InstrumentSeries, error) {
	if err := instrument.Validate(); err != nil {
		return nil, err
	}
	if err := types.ValidatePair(interval, rng); err != nil {
		return nil, err
	}

	symbol := instrument.RemoteSymbol()
	body, err := c.http.Get(ctx, yahoo.ChartURL(symbol, interval, rng), c.headers())
	if err != nil {
		return nil, err
	}

	series, err := yahoo.ParseSeries(body)
	if err != nil {
		return nil, err
	}
	if len(series.Bars) == 0 {
		return nil, types.NewValidationError("no data available for symbol: " + symbol)
	}

	if series.Symbol == "" {
		series.Symbol = symbol
	}
	series.Interval = interval
	series.Range = rng
	return series, nil
}

// FetchInfo retrieves fundamentals for one instrument. There is no
// interval/range involved, so only the instrument itself is validated.
func (c *Client) FetchInfo(ctx context.Context, instrument types.Instrument) (*types.InstrumentInfo, error) {
	if err := instrument.Validate(); err != nil {
		return nil, err
	}

	symbol := instrument.RemoteSymbol()
	body, err := c.http.Get(ctx, yahoo.SummaryURL(symbol), c.headers())
	if err != nil {
		return nil, err
	}

	info, err := yahoo.ParseInfo(body)
	if err != nil {
		return nil, err
	}
	if info.Symbol == "" {
		info.Symbol = symbol
	}
	return info, nil
}

// GetCurrentPrice is sugar over FetchData with the shortest interval and
// range, returning the close of the most recent bar.
func (c *Client) GetCurrentPrice(ctx context.Context, instrument types.Instrument) (float64, error) {
	series, err := c.FetchData(ctx, instrument, types.Range1d, types.Interval1m)
	if err != nil {
		return 0, err
	}
	last, ok := series.Last()
	if !ok {
		return 0, types.NewValidationError("no data available for symbol: " + instrument.RemoteSymbol())
	}
	return last.Close, nil
}

func (c *Client) headers() map[string]string {
	ua := c.cfg.UserAgent
	if ua == "" {
		ua = uuid.NewString()
	}
	return map[string]string{
		"User-Agent": ua,
		"Accept":     "application/json",
	}
}
