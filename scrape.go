package nivesh

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// DefaultScrapeBaseURL is the fallback quote endpoint for equities whose
// chart lookup failed.
const DefaultScrapeBaseURL = "https://quote.niveshdata.in/refresh"

// scrapePath extracts the last traded price from the rendered payload.
const scrapePath = "$.last"

// scrapeQuoter extracts one numeric field out of a rendered quote payload
// with a jsonpath expression. Secondary source only: it is slower and the
// payload shape is not a stable contract.
type scrapeQuoter struct {
	client *http.Client
	base   string
}

func (q *scrapeQuoter) Latest(ctx context.Context, symbol string) (float64, error) {
	addr := q.base + "?symbol=" + url.QueryEscape(symbol)

	var jobj any
	if err := jwget(ctx, q.client, addr, &jobj); err != nil {
		return 0, fmt.Errorf("error retrieving %q: %w", symbol, err)
	}
	jval, err := jsonpath.Get(scrapePath, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing %q: %q %w", symbol, scrapePath, err)
	}
	// jsonpath is never clear about whether it returns a list of one answer
	// or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}

	val, ok := jval.(float64)
	if !ok {
		// sometimes the value comes back as a localized string
		sval, ok := jval.(string)
		if !ok {
			return 0, fmt.Errorf("cannot read value for %q: neither a float nor a string", symbol)
		}
		sval = strings.ReplaceAll(sval, ",", ".")
		sval = strings.ReplaceAll(sval, " ", "")
		val, err = strconv.ParseFloat(sval, 64)
		if err != nil {
			return 0, fmt.Errorf("cannot read value for %q: invalid string %q: %w", symbol, sval, err)
		}
	}
	if val == 0 {
		return 0, fmt.Errorf("empty quote for %q", symbol)
	}
	return val, nil
}
