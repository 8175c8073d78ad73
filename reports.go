package nivesh

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mkundra/nivesh/date"
)

// ErrNoData is returned when the ledger holds nothing to report on.
var ErrNoData = errors.New("no data")

// Report is the structured portfolio summary: ordered groups of valued
// positions plus a grand total. It carries raw values alongside formatted
// strings; rendering it as text, a table or markup belongs to the
// presentation layer.
type Report struct {
	Date     date.Date // valuation date
	Time     time.Time // generation time
	Currency string    // reporting currency of the grand total
	Groups   []Group
	Total    Totals
}

// Group is all positions of one asset kind, with the kind's subtotals.
type Group struct {
	Kind   AssetKind
	Label  string
	Rows   []Row
	Totals Totals
}

// Row is a valued position plus its display strings.
type Row struct {
	Position
	Fmt RowStrings
}

// RowStrings are the kind-appropriate display strings of a row. Monetary
// aggregates go through the injected currency formatter; unit prices stay
// plain grouped numbers.
type RowStrings struct {
	LatestPrice string
	Units       string
	Invested    string
	Current     string
	Realized    string
	Unrealized  string
	AverageCost string
	Return      string
	Weight      string
	Annualized  string // "N/A" when the solver did not converge
	MinPrice    string
	MaxPrice    string
	Note        string // data-quality warning, usually empty
}

// Totals accumulates the four monetary aggregates of a group or of the
// whole portfolio. The other columns of a total row stay blank.
type Totals struct {
	Invested   Money
	Current    Money
	Realized   Money
	Unrealized Money
	Fmt        TotalsStrings
}

// TotalsStrings are the display strings of a Totals.
type TotalsStrings struct {
	Invested   string
	Current    string
	Realized   string
	Unrealized string
}

func (t *Totals) add(p Position) {
	t.Invested = t.Invested.Add(p.Invested)
	t.Current = t.Current.Add(p.CurrentValue)
	t.Realized = t.Realized.Add(p.Realized)
	t.Unrealized = t.Unrealized.Add(p.Unrealized)
}

// addNominal accumulates a position's aggregates re-denominated in the
// reporting currency, without any exchange conversion. Kind groups are
// single-currency; the portfolio-wide total is a nominal sum, the way the
// portfolio weight formula expects it.
func (t *Totals) addNominal(p Position, currency string) {
	t.Invested = t.Invested.Add(nominal(p.Invested, currency))
	t.Current = t.Current.Add(nominal(p.CurrentValue, currency))
	t.Realized = t.Realized.Add(nominal(p.Realized, currency))
	t.Unrealized = t.Unrealized.Add(nominal(p.Unrealized, currency))
}

// nominal re-labels a monetary value in another currency, keeping the digits.
func nominal(m Money, currency string) Money {
	return Money{value: m.value, cur: currency}
}

func (t *Totals) format(f Formatters) {
	t.Fmt = TotalsStrings{
		Invested:   f.Format(t.Invested),
		Current:    f.Format(t.Current),
		Realized:   f.Format(t.Realized),
		Unrealized: f.Format(t.Unrealized),
	}
}

// DefaultCurrency is the reporting currency of the portfolio-wide totals.
const DefaultCurrency = "INR"

// ReportOptions tunes a report generation run.
type ReportOptions struct {
	On         date.Date  // valuation date; zero means today
	Currency   string     // reporting currency for grand totals; "" means DefaultCurrency
	Formatters Formatters // nil means DefaultFormatters
}

// GenerateReport loads the named ledger from src, values every instrument
// whose price resolves and aggregates the result into a Report.
//
// An empty ledger fails with ErrNoData. An instrument whose price cannot
// be resolved is excluded entirely, from rows and totals alike; it is
// never shown with a stale or zero price.
func GenerateReport(ctx context.Context, src Source, name string, oracle *Oracle, opts ReportOptions) (*Report, error) {
	if opts.On.IsZero() {
		opts.On = date.Today()
	}
	if opts.Formatters == nil {
		opts.Formatters = DefaultFormatters()
	}

	table, err := src.Load(name)
	if err != nil {
		return nil, fmt.Errorf("cannot load ledger %q: %w", name, err)
	}
	ledger, err := DecodeLedger(table)
	if errors.Is(err, ErrEmptyLedger) {
		return nil, fmt.Errorf("ledger %q: %v: %w", name, err, ErrNoData)
	}
	if err != nil {
		return nil, err
	}
	if ledger.Len() == 0 {
		return nil, fmt.Errorf("ledger %q has no valid transactions: %w", name, ErrNoData)
	}

	report := NewReport(ledger, oracle.resolveAll(ctx, ledgerInstruments(ledger)), opts)
	return report, nil
}

// ledgerInstruments lists the distinct instruments of a ledger, each with
// the kind of its first transaction.
func ledgerInstruments(ledger *Ledger) []instrument {
	instruments := make([]instrument, 0, len(ledger.Symbols()))
	for _, symbol := range ledger.Symbols() {
		instruments = append(instruments, instrument{
			Symbol: symbol,
			Kind:   ledger.Transactions(symbol)[0].Kind,
		})
	}
	return instruments
}

// NewReport values every instrument of the ledger that has a resolved
// price and aggregates positions into kind groups with totals and
// portfolio weights. It is deterministic: the same ledger and the same
// prices always produce the same Report.
func NewReport(ledger *Ledger, prices map[string]float64, opts ReportOptions) *Report {
	if opts.Formatters == nil {
		opts.Formatters = DefaultFormatters()
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}

	report := &Report{Date: opts.On, Time: time.Now(), Currency: opts.Currency}

	// First pass: value the instruments that have a price.
	positions := make([]Position, 0, len(ledger.Symbols()))
	for _, symbol := range ledger.Symbols() {
		price, ok := prices[symbol]
		if !ok {
			continue // excluded: no price, no row, no share of any total
		}
		p := valuePosition(ledger.Transactions(symbol), price, opts.On)
		report.Total.addNominal(p, opts.Currency)
		positions = append(positions, p)
	}

	// Second pass: weights need the grand total current value.
	grandCurrent := report.Total.Current.AsFloat()
	byKind := make(map[AssetKind][]Position)
	for i := range positions {
		if grandCurrent != 0 {
			positions[i].Weight = Percent(positions[i].CurrentValue.AsFloat() / grandCurrent * 100)
		}
		byKind[positions[i].Kind] = append(byKind[positions[i].Kind], positions[i])
	}

	for _, kind := range []AssetKind{MutualFund, IndianEquity, AusEquity, UnknownKind} {
		group := byKind[kind]
		if len(group) == 0 {
			continue
		}
		sort.SliceStable(group, func(i, j int) bool {
			if !group[i].Invested.Equal(group[j].Invested) {
				return group[i].Invested.GreaterThan(group[j].Invested)
			}
			return group[i].Symbol < group[j].Symbol
		})
		g := Group{Kind: kind, Label: kind.Label()}
		for _, p := range group {
			g.Totals.add(p)
			g.Rows = append(g.Rows, Row{Position: p, Fmt: formatRow(p, opts.Formatters)})
		}
		g.Totals.format(opts.Formatters)
		report.Groups = append(report.Groups, g)
	}

	report.Total.format(opts.Formatters)
	return report
}

func formatRow(p Position, f Formatters) RowStrings {
	rs := RowStrings{
		LatestPrice: groupThousands(p.LatestPrice.AsFloat()),
		Units:       groupThousands(p.NetUnits.AsFloat()),
		Invested:    f.Format(p.Invested),
		Current:     f.Format(p.CurrentValue),
		Realized:    f.Format(p.Realized),
		Unrealized:  f.Format(p.Unrealized),
		AverageCost: groupThousands(p.AverageCost.AsFloat()),
		Return:      p.Return.String(),
		Weight:      p.Weight.String(),
		Annualized:  "N/A",
		MinPrice:    groupThousands(p.MinPrice.AsFloat()),
		MaxPrice:    groupThousands(p.MaxPrice.AsFloat()),
	}
	if p.HasAnnualized {
		rs.Annualized = p.Annualized.String()
	}
	if p.Shortfall.IsPositive() {
		rs.Note = fmt.Sprintf("sells exceed recorded lots by %s units", p.Shortfall)
	}
	return rs
}
