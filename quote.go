package nivesh

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
)

// ErrPriceUnavailable is returned when an instrument's current price cannot
// be resolved. The instrument is then excluded from the report; the error
// never aborts a whole valuation run.
var ErrPriceUnavailable = errors.New("price unavailable")

// A Quoter resolves the latest market price of an instrument.
type Quoter interface {
	Latest(ctx context.Context, symbol string) (float64, error)
}

// fallback chains two quoters: when the primary fails, the secondary is
// tried before giving up.
type fallback struct {
	primary, secondary Quoter
}

func (f fallback) Latest(ctx context.Context, symbol string) (float64, error) {
	price, err := f.primary.Latest(ctx, symbol)
	if err == nil {
		return price, nil
	}
	log.Printf("primary quote for %q failed (%v), trying fallback", symbol, err)
	return f.secondary.Latest(ctx, symbol)
}

// OracleConfig carries everything an Oracle needs. It is built once by the
// caller and passed in explicitly; there is no process-wide default.
type OracleConfig struct {
	MFAPIBaseURL  string        // NAV service for mutual funds
	ChartBaseURL  string        // chart service for market-traded equities
	ScrapeBaseURL string        // scrape-style fallback for equities
	Timeout       time.Duration // per-lookup timeout, 0 means DefaultTimeout
	Workers       int           // concurrent lookups, 0 means DefaultWorkers
}

const (
	DefaultTimeout = 10 * time.Second
	DefaultWorkers = 4
)

// Oracle resolves current prices, dispatching on the instrument's kind.
// Each kind owns its quote chain; unknown kinds never resolve.
type Oracle struct {
	quoters map[AssetKind]Quoter
	workers int
}

// NewOracle builds an Oracle from the given configuration.
func NewOracle(cfg OracleConfig) *Oracle {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	client := daily(cfg.Timeout)

	equity := fallback{
		primary:   &chartQuoter{client: client, base: cfg.ChartBaseURL},
		secondary: &scrapeQuoter{client: client, base: cfg.ScrapeBaseURL},
	}
	return &Oracle{
		workers: cfg.Workers,
		quoters: map[AssetKind]Quoter{
			MutualFund:   &mfapiQuoter{client: client, base: cfg.MFAPIBaseURL},
			IndianEquity: equity,
			AusEquity:    equity,
		},
	}
}

// NewOracleWith builds an Oracle from explicit per-kind quoters. Used in
// tests and by callers with bespoke quote sources.
func NewOracleWith(quoters map[AssetKind]Quoter, workers int) *Oracle {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Oracle{quoters: quoters, workers: workers}
}

// Resolve returns the latest price for one instrument. Any transport or
// parse failure, timeout included, is downgraded to ErrPriceUnavailable
// here: nothing past this boundary ever sees a quote-service error.
func (o *Oracle) Resolve(ctx context.Context, kind AssetKind, symbol string) (float64, error) {
	q, ok := o.quoters[kind]
	if !ok {
		log.Printf("no quoter for kind %q (symbol %q)", kind, symbol)
		return 0, fmt.Errorf("kind %q: %w", kind, ErrPriceUnavailable)
	}
	price, err := q.Latest(ctx, symbol)
	if err != nil {
		log.Printf("error fetching price for %s (%s): %v", symbol, kind, err)
		return 0, fmt.Errorf("%s: %v: %w", symbol, err, ErrPriceUnavailable)
	}
	return price, nil
}

// instrument pairs a symbol with its kind, for batch resolution.
type instrument struct {
	Symbol string
	Kind   AssetKind
}

// resolveAll resolves prices for distinct instruments concurrently with a
// bounded worker pool. Instruments whose price is unavailable are absent
// from the returned map.
func (o *Oracle) resolveAll(ctx context.Context, instruments []instrument) map[string]float64 {
	prices := make(map[string]float64, len(instruments))

	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, o.workers)

	for _, ins := range instruments {
		wg.Add(1)
		sem <- struct{}{}
		go func(ins instrument) {
			defer wg.Done()
			defer func() { <-sem }()
			price, err := o.Resolve(ctx, ins.Kind, ins.Symbol)
			if err != nil {
				return // already logged and downgraded by Resolve
			}
			mu.Lock()
			prices[ins.Symbol] = price
			mu.Unlock()
		}(ins)
	}
	wg.Wait()
	return prices
}
