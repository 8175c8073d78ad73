package nivesh

import (
	"log"

	"github.com/mkundra/nivesh/date"
)

// Position is the derived state of a single instrument after FIFO matching
// all of its transactions and marking the open lots to the latest price.
// It is computed once per report generation and never mutated afterwards.
type Position struct {
	Symbol string
	Name   string
	Kind   AssetKind

	NetUnits     Quantity
	LatestPrice  Money
	Invested     Money // total capital put into buys
	CurrentValue Money // NetUnits × LatestPrice
	Realized     Money // P/L locked in by completed sells
	Unrealized   Money // CurrentValue − cost of remaining lots
	AverageCost  Money // weighted average price over remaining lots, zero when flat
	MinPrice     Money // lowest transaction price observed
	MaxPrice     Money // highest transaction price observed

	Return Percent // (LatestPrice − AverageCost) / AverageCost
	Weight Percent // share of the whole portfolio's current value; set by the aggregator

	Annualized    Percent // XIRR of the instrument's cash flows
	HasAnnualized bool    // false when the solver did not converge

	// Shortfall is the number of sold units that exceeded recorded lots.
	// Non-zero means the ledger sold more than it ever bought: a
	// data-quality problem surfaced on the row, not an engine error.
	Shortfall Quantity
}

// Oversold replays the FIFO matching of a date-sorted transaction list and
// returns the total units sold in excess of recorded lots. Zero means the
// ledger is internally consistent for that instrument.
func Oversold(txns []Transaction) (shortfall Quantity) {
	var queue lotQueue
	for _, tx := range txns {
		switch tx.Side {
		case Buy:
			queue.push(tx.Units, tx.Price)
		case Sell:
			_, unmatched := queue.sell(tx.Units, tx.Price)
			shortfall = shortfall.Add(unmatched)
		}
	}
	return shortfall
}

// valuePosition runs the FIFO lot matcher over an instrument's transactions
// (already sorted by date), marks the remainder to latestPrice and solves
// for the annualized return as of the valuation date.
func valuePosition(txns []Transaction, latestPrice float64, on date.Date) Position {
	first := txns[0]
	currency := first.Kind.Currency()
	p := Position{
		Symbol:      first.Symbol,
		Name:        first.Name,
		Kind:        first.Kind,
		LatestPrice: M(latestPrice, currency),
	}

	var queue lotQueue
	var flows []cashFlow

	for _, tx := range txns {
		amount := tx.Price.Mul(tx.Units)
		switch tx.Side {
		case Buy:
			p.NetUnits = p.NetUnits.Add(tx.Units)
			p.Invested = p.Invested.Add(amount)
			queue.push(tx.Units, tx.Price)
			flows = append(flows, cashFlow{Date: tx.Date, Amount: -amount.AsFloat()})
		case Sell:
			p.NetUnits = p.NetUnits.Sub(tx.Units)
			flows = append(flows, cashFlow{Date: tx.Date, Amount: amount.AsFloat()})
			realized, unmatched := queue.sell(tx.Units, tx.Price)
			p.Realized = p.Realized.Add(realized)
			if unmatched.IsPositive() {
				p.Shortfall = p.Shortfall.Add(unmatched)
				log.Printf("warning: %s: sell of %s units on %s exceeds recorded lots by %s",
					tx.Symbol, tx.Units, tx.Date, unmatched)
			}
		}
		if p.MinPrice.IsZero() || tx.Price.LessThan(p.MinPrice) {
			p.MinPrice = tx.Price
		}
		if tx.Price.GreaterThan(p.MaxPrice) {
			p.MaxPrice = tx.Price
		}
	}

	p.CurrentValue = p.LatestPrice.Mul(p.NetUnits)
	costBasis := queue.costOfRemaining()
	p.Unrealized = p.CurrentValue.Sub(costBasis)
	if !p.NetUnits.IsZero() {
		p.AverageCost = costBasis.Div(p.NetUnits)
	} else {
		p.AverageCost = M(0, currency)
	}
	if avg := p.AverageCost.AsFloat(); avg != 0 {
		p.Return = Percent((p.LatestPrice.AsFloat() - avg) / avg * 100)
	}

	// Synthetic full liquidation at the valuation date closes the series.
	flows = append(flows, cashFlow{Date: on, Amount: p.CurrentValue.AsFloat()})
	if rate, ok := xirr(flows); ok {
		p.Annualized = Percent(rate * 100)
		p.HasAnnualized = true
	}

	return p
}
