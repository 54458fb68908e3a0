package yahoo

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"github.com/finquery/finquery/types"
)

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol         string `json:"symbol"`
				Currency       string `json:"currency"`
				ExchangeName   string `json:"exchangeName"`
				InstrumentType string `json:"instrumentType"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []*float64 `json:"open"`
					High   []*float64 `json:"high"`
					Low    []*float64 `json:"low"`
					Close  []*float64 `json:"close"`
					Volume []*int64   `json:"volume"`
				} `json:"quote"`
				Adjclose []struct {
					Adjclose []*float64 `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// ParseSeries decodes a chart response body into a normalized series. Rows
// with a null close are dropped: the remote emits null quote entries for
// buckets where trading was halted. Interval and Range are left for the
// caller to stamp; the body does not echo the requested range.
func ParseSeries(body []byte) (*types.InstrumentSeries, error) {
	var data chartResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, types.NewParseError("malformed chart response", err)
	}

	if e := data.Chart.Error; e != nil {
		return nil, types.NewAPIError(e.Code+": "+e.Description, 0)
	}
	if len(data.Chart.Result) == 0 {
		return nil, types.NewParseError("chart response has no result", nil)
	}

	result := data.Chart.Result[0]
	series := &types.InstrumentSeries{
		Symbol:   result.Meta.Symbol,
		Currency: result.Meta.Currency,
		Exchange: result.Meta.ExchangeName,
		IsCrypto: result.Meta.InstrumentType == "CRYPTOCURRENCY",
		IsForex:  result.Meta.InstrumentType == "CURRENCY",
	}

	if len(result.Indicators.Quote) == 0 {
		return series, nil
	}
	quote := result.Indicators.Quote[0]

	var adj []*float64
	if len(result.Indicators.Adjclose) > 0 {
		adj = result.Indicators.Adjclose[0].Adjclose
	}

	series.Bars = make([]types.Bar, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		bar := types.Bar{
			Timestamp: ts,
			Close:     *quote.Close[i],
			AdjClose:  *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			bar.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			bar.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			bar.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			bar.Volume = *quote.Volume[i]
		}
		if i < len(adj) && adj[i] != nil {
			bar.AdjClose = *adj[i]
		}
		series.Bars = append(series.Bars, bar)
	}

	return series, nil
}

// ParseInfo decodes a quoteSummary response body. Every fundamental is
// independently optional, and numeric fields arrive as {raw, fmt} objects, so
// extraction is path-based rather than a struct grammar.
func ParseInfo(body []byte) (*types.InstrumentInfo, error) {
	if !gjson.ValidBytes(body) {
		return nil, types.NewParseError("malformed summary response", nil)
	}
	root := gjson.ParseBytes(body)

	if e := root.Get("quoteSummary.error"); e.Exists() && e.Type != gjson.Null {
		return nil, types.NewAPIError(e.Get("code").String()+": "+e.Get("description").String(), 0)
	}

	result := root.Get("quoteSummary.result.0")
	if !result.Exists() {
		return nil, types.NewParseError("summary response has no result", nil)
	}

	info := &types.InstrumentInfo{
		Symbol:    result.Get("price.symbol").String(),
		ShortName: result.Get("price.shortName").String(),
		LongName:  result.Get("price.longName").String(),
		Currency:  result.Get("price.currency").String(),
		Exchange:  result.Get("price.exchangeName").String(),
		Sector:    result.Get("assetProfile.sector").String(),
		Industry:  result.Get("assetProfile.industry").String(),
		Website:   result.Get("assetProfile.website").String(),

		MarketCap:         optFloat(result, "price.marketCap"),
		RegularPrice:      optFloat(result, "price.regularMarketPrice"),
		PreviousClose:     optFloat(result, "summaryDetail.previousClose"),
		TrailingPE:        optFloat(result, "summaryDetail.trailingPE"),
		ForwardPE:         optFloat(result, "summaryDetail.forwardPE"),
		DividendYield:     optFloat(result, "summaryDetail.dividendYield"),
		Beta:              optFloat(result, "summaryDetail.beta"),
		FiftyTwoWeekHigh:  optFloat(result, "summaryDetail.fiftyTwoWeekHigh"),
		FiftyTwoWeekLow:   optFloat(result, "summaryDetail.fiftyTwoWeekLow"),
		AverageVolume:     optFloat(result, "summaryDetail.averageVolume"),
		PriceToBook:       optFloat(result, "defaultKeyStatistics.priceToBook"),
		SharesOutstanding: optFloat(result, "defaultKeyStatistics.sharesOutstanding"),
		ProfitMargins:     optFloat(result, "financialData.profitMargins"),
		GrossMargins:      optFloat(result, "financialData.grossMargins"),
		RevenueGrowth:     optFloat(result, "financialData.revenueGrowth"),
		TotalRevenue:      optFloat(result, "financialData.totalRevenue"),
		TotalCash:         optFloat(result, "financialData.totalCash"),
		TotalDebt:         optFloat(result, "financialData.totalDebt"),
	}

	return info, nil
}

// optFloat reads a numeric fundamental, accepting both the {raw, fmt} object
// shape and a bare number.
func optFloat(result gjson.Result, path string) *float64 {
	v := result.Get(path + ".raw")
	if !v.Exists() {
		v = result.Get(path)
	}
	if !v.Exists() || v.Type != gjson.Number {
		return nil
	}
	f := v.Float()
	return &f
}
