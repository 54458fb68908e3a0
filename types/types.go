package types

// Interval is the sampling granularity of a bar series.
type Interval string

const (
	Interval1m  Interval = "1m"
	Interval2m  Interval = "2m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval90m Interval = "90m"
	Interval1h  Interval = "1h"
	Interval1d  Interval = "1d"
	Interval5d  Interval = "5d"
	Interval1wk Interval = "1wk"
	Interval1mo Interval = "1mo"
	Interval3mo Interval = "3mo"
)

// Range is the total lookback window of a fetch.
type Range string

const (
	Range1d  Range = "1d"
	Range5d  Range = "5d"
	Range1mo Range = "1mo"
	Range3mo Range = "3mo"
	Range6mo Range = "6mo"
	Range1y  Range = "1y"
	Range2y  Range = "2y"
	Range5y  Range = "5y"
	Range10y Range = "10y"
	RangeYtd Range = "ytd"
	RangeMax Range = "max"
)

var validIntervals = map[Interval]bool{
	Interval1m: true, Interval2m: true, Interval5m: true, Interval15m: true,
	Interval30m: true, Interval90m: true, Interval1h: true, Interval1d: true,
	Interval5d: true, Interval1wk: true, Interval1mo: true, Interval3mo: true,
}

var validRanges = map[Range]bool{
	Range1d: true, Range5d: true, Range1mo: true, Range3mo: true, Range6mo: true,
	Range1y: true, Range2y: true, Range5y: true, Range10y: true,
	RangeYtd: true, RangeMax: true,
}

// Intraday reports whether the interval is finer than one hour. The remote
// service only serves such granularities for short lookback windows.
func (i Interval) Intraday() bool {
	switch i {
	case Interval1m, Interval2m, Interval5m, Interval15m, Interval30m:
		return true
	}
	return false
}

// Valid reports whether the interval is part of the remote vocabulary.
func (i Interval) Valid() bool { return validIntervals[i] }

// Valid reports whether the range is part of the remote vocabulary.
func (r Range) Valid() bool { return validRanges[r] }

// Short reports whether the range is a single- or five-day window.
func (r Range) Short() bool { return r == Range1d || r == Range5d }

// ValidatePair checks that interval and range are individually known and
// mutually compatible: sub-hour intervals are only served for 1d/5d ranges.
func ValidatePair(interval Interval, rng Range) error {
	if !interval.Valid() {
		return NewValidationError("unsupported interval: " + string(interval))
	}
	if !rng.Valid() {
		return NewValidationError("unsupported range: " + string(rng))
	}
	if interval.Intraday() && !rng.Short() {
		return NewValidationError("interval " + string(interval) + " is only available for 1d and 5d ranges, got " + string(rng))
	}
	return nil
}

// Bar is one OHLCV sample. Timestamp is seconds since epoch and strictly
// increases within a series.
type Bar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	AdjClose  float64 `json:"adjClose"`
	Volume    int64   `json:"volume"`
}

// InstrumentSeries is the normalized result of one chart fetch. It is built
// once per fetch and never mutated afterwards.
type InstrumentSeries struct {
	Symbol   string   `json:"symbol"`
	Interval Interval `json:"interval"`
	Range    Range    `json:"range"`
	Currency string   `json:"currency,omitempty"`
	Exchange string   `json:"exchange,omitempty"`
	IsCrypto bool     `json:"isCrypto,omitempty"`
	IsForex  bool     `json:"isForex,omitempty"`
	Bars     []Bar    `json:"bars"`
}

// Closes returns the close column in chronological order.
func (s *InstrumentSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Last returns the most recent bar, or false when the series is empty.
func (s *InstrumentSeries) Last() (Bar, bool) {
	if len(s.Bars) == 0 {
		return Bar{}, false
	}
	return s.Bars[len(s.Bars)-1], true
}

// InstrumentInfo holds fundamentals from the summary endpoint. Every field is
// independently optional; the remote omits whole modules for some instrument
// kinds (crypto has no P/E, funds have no profit margins).
type InstrumentInfo struct {
	Symbol            string   `json:"symbol"`
	ShortName         string   `json:"shortName,omitempty"`
	LongName          string   `json:"longName,omitempty"`
	Currency          string   `json:"currency,omitempty"`
	Exchange          string   `json:"exchange,omitempty"`
	Sector            string   `json:"sector,omitempty"`
	Industry          string   `json:"industry,omitempty"`
	Website           string   `json:"website,omitempty"`
	MarketCap         *float64 `json:"marketCap,omitempty"`
	RegularPrice      *float64 `json:"regularMarketPrice,omitempty"`
	PreviousClose     *float64 `json:"previousClose,omitempty"`
	TrailingPE        *float64 `json:"trailingPE,omitempty"`
	ForwardPE         *float64 `json:"forwardPE,omitempty"`
	PriceToBook       *float64 `json:"priceToBook,omitempty"`
	DividendYield     *float64 `json:"dividendYield,omitempty"`
	Beta              *float64 `json:"beta,omitempty"`
	ProfitMargins     *float64 `json:"profitMargins,omitempty"`
	GrossMargins      *float64 `json:"grossMargins,omitempty"`
	RevenueGrowth     *float64 `json:"revenueGrowth,omitempty"`
	TotalRevenue      *float64 `json:"totalRevenue,omitempty"`
	TotalCash         *float64 `json:"totalCash,omitempty"`
	TotalDebt         *float64 `json:"totalDebt,omitempty"`
	FiftyTwoWeekHigh  *float64 `json:"fiftyTwoWeekHigh,omitempty"`
	FiftyTwoWeekLow   *float64 `json:"fiftyTwoWeekLow,omitempty"`
	AverageVolume     *float64 `json:"averageVolume,omitempty"`
	SharesOutstanding *float64 `json:"sharesOutstanding,omitempty"`
}
