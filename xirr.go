package nivesh

import (
	"math"

	"github.com/mkundra/nivesh/date"
)

// cashFlow is one dated flow of an instrument's cash-flow series. Outflows
// (buys) are negative, inflows (sells and the final synthetic liquidation)
// positive.
type cashFlow struct {
	Date   date.Date
	Amount float64
}

const (
	xirrMaxIterations = 100
	xirrTolerance     = 1e-6
	xirrLow           = -0.9999
	xirrHigh          = 10
)

// xirr solves for the annualized internal rate of return of an irregularly
// dated series: the rate r at which the series discounted by
// cf/(1+r)^(days/365) nets to zero, with day zero anchored at the first
// flow. It bisects r over (-0.9999, 10) for up to 100 iterations and
// reports ok=false when it does not converge, or when the series has no
// negative flow to anchor an investment.
func xirr(flows []cashFlow) (rate float64, ok bool) {
	if len(flows) < 2 {
		return 0, false
	}
	hasOutflow := false
	for _, cf := range flows {
		if cf.Amount < 0 {
			hasOutflow = true
			break
		}
	}
	if !hasOutflow {
		return 0, false
	}

	anchor := flows[0].Date
	xnpv := func(r float64) (npv float64) {
		for _, cf := range flows {
			years := float64(cf.Date.Sub(anchor)) / 365.0
			npv += cf.Amount / math.Pow(1+r, years)
		}
		return npv
	}

	low, high := float64(xirrLow), float64(xirrHigh)
	for i := 0; i < xirrMaxIterations; i++ {
		mid := (low + high) / 2
		npv := xnpv(mid)
		if math.Abs(npv) < xirrTolerance {
			return mid, true
		}
		if npv > 0 {
			low = mid
		} else {
			high = mid
		}
	}
	return 0, false
}
