package nivesh

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultChartBaseURL is the public chart service for market-traded equities.
const DefaultChartBaseURL = "https://query1.finance.yahoo.com"

// chartQuoter resolves an equity's last close from a Yahoo-style chart
// endpoint: the most recent non-empty session within a short trailing
// window. It is the primary source for market-traded equities.
type chartQuoter struct {
	client *http.Client
	base   string
}

// Chart API response
type chartResponse struct {
	Chart *chart `json:"chart"`
}
type chart struct {
	Result []*chartResult `json:"result"`
	Error  *chartError    `json:"error"`
}
type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
type chartResult struct {
	Indicators *chartIndicators `json:"indicators"`
	Timestamps []float64        `json:"timestamp"`
}
type chartIndicators struct {
	Quote []*chartQuote `json:"quote"`
}
type chartQuote struct {
	Close []float64 `json:"close"`
}

func (q *chartQuoter) Latest(ctx context.Context, symbol string) (float64, error) {
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?range=5d&interval=1d", q.base, url.PathEscape(symbol))

	var body chartResponse
	if err := jwget(ctx, q.client, addr, &body); err != nil {
		return 0, fmt.Errorf("error retrieving chart for %q: %w", symbol, err)
	}
	if body.Chart == nil || len(body.Chart.Result) == 0 {
		if body.Chart != nil && body.Chart.Error != nil {
			return 0, fmt.Errorf("chart service error for %q: %s: %s",
				symbol, body.Chart.Error.Code, body.Chart.Error.Description)
		}
		return 0, fmt.Errorf("empty chart for %q", symbol)
	}
	result := body.Chart.Result[0]
	if result.Indicators == nil || len(result.Indicators.Quote) == 0 {
		return 0, fmt.Errorf("chart for %q has no quote data", symbol)
	}
	closes := result.Indicators.Quote[0].Close
	// walk back to the most recent session that actually closed: empty
	// sessions come through as zeros.
	for i := len(closes) - 1; i >= 0; i-- {
		if closes[i] > 0 {
			return closes[i], nil
		}
	}
	return 0, fmt.Errorf("no close price in trailing window for %q", symbol)
}
