// Package yahoo adapts the remote quote service's wire contract: it builds
// endpoint URLs and turns raw response bodies into normalized records. The
// JSON grammars live here and nowhere else.
package yahoo

import (
	"fmt"
	"net/url"

	"github.com/finquery/finquery/types"
)

const baseURL = "https://query2.finance.yahoo.com"

// summaryModules are the quoteSummary modules fetched for instrument info.
const summaryModules = "price,summaryDetail,defaultKeyStatistics,assetProfile,financialData"

// ChartURL builds the history endpoint URL for one symbol.
func ChartURL(symbol string, interval types.Interval, rng types.Range) string {
	q := url.Values{}
	q.Set("interval", string(interval))
	q.Set("range", string(rng))
	q.Set("includeAdjustedClose", "true")
	return fmt.Sprintf("%s/v8/finance/chart/%s?%s", baseURL, url.PathEscape(symbol), q.Encode())
}

// SummaryURL builds the fundamentals endpoint URL for one symbol.
func SummaryURL(symbol string) string {
	q := url.Values{}
	q.Set("modules", summaryModules)
	return fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", baseURL, url.PathEscape(symbol), q.Encode())
}
