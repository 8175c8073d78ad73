package nivesh

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// DefaultMFAPIBaseURL is the public NAV service for Indian mutual funds.
const DefaultMFAPIBaseURL = "https://api.mfapi.in"

// mfapiQuoter resolves a mutual fund's latest published net asset value
// from an mfapi.in-style service. This is the single authoritative source
// for funds: there is no fallback.
type mfapiQuoter struct {
	client *http.Client
	base   string
}

/*
	{
	    "meta": { "scheme_code": 120503, ... },
	    "data": [ { "date": "27-08-2026", "nav": "104.3561" } ],
	    "status": "SUCCESS"
	}
*/
type mfapiResponse struct {
	Data []struct {
		Date string      `json:"date"`
		Nav  json.Number `json:"nav"`
	} `json:"data"`
}

func (q *mfapiQuoter) Latest(ctx context.Context, symbol string) (float64, error) {
	addr := fmt.Sprintf("%s/mf/%s/latest", q.base, url.PathEscape(symbol))

	var body mfapiResponse
	if err := jwget(ctx, q.client, addr, &body); err != nil {
		return 0, fmt.Errorf("error retrieving NAV for %q: %w", symbol, err)
	}
	if len(body.Data) == 0 {
		return 0, fmt.Errorf("no NAV published for %q", symbol)
	}
	// the service returns the nav as a string
	nav, err := body.Data[0].Nav.Float64()
	if err != nil {
		return 0, fmt.Errorf("cannot read NAV for %q: %w", symbol, err)
	}
	if nav <= 0 {
		return 0, fmt.Errorf("empty NAV for %q: %v", symbol, nav)
	}
	return nav, nil
}
