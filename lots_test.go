package nivesh

import "testing"

func inr(v float64) Money { return M(v, "INR") }

func TestLotQueueFIFO(t *testing.T) {
	var q lotQueue
	q.push(Q(10), inr(100))
	q.push(Q(10), inr(120))

	// Selling 5 must consume the oldest lot first.
	realized, unmatched := q.sell(Q(5), inr(150))
	if !unmatched.IsZero() {
		t.Fatalf("unmatched = %s, want 0", unmatched)
	}
	if want := inr(250); !realized.Equal(want) {
		t.Errorf("realized = %s, want %s", realized, want)
	}

	remaining := q.remaining()
	if len(remaining) != 2 {
		t.Fatalf("remaining lots = %d, want 2", len(remaining))
	}
	if !remaining[0].Units.Equal(Q(5)) || !remaining[0].Price.Equal(inr(100)) {
		t.Errorf("oldest lot = %s@%s, want 5@₹100.00", remaining[0].Units, remaining[0].Price)
	}
	if !remaining[1].Units.Equal(Q(10)) || !remaining[1].Price.Equal(inr(120)) {
		t.Errorf("newest lot = %s@%s, want 10@₹120.00", remaining[1].Units, remaining[1].Price)
	}
}

func TestLotQueueFullLiquidation(t *testing.T) {
	// For a uniform sell price, realized P/L of a full liquidation is the
	// sum over all buys of (sell - buy) × units.
	var q lotQueue
	buys := []struct {
		units float64
		price float64
	}{{10, 100}, {5, 110}, {20, 95}}
	var want float64
	for _, b := range buys {
		q.push(Q(b.units), inr(b.price))
		want += (150 - b.price) * b.units
	}

	realized, unmatched := q.sell(Q(35), inr(150))
	if !unmatched.IsZero() {
		t.Fatalf("unmatched = %s, want 0", unmatched)
	}
	if !realized.Equal(inr(want)) {
		t.Errorf("realized = %s, want %s", realized, inr(want))
	}
	if len(q.remaining()) != 0 {
		t.Errorf("remaining lots = %d, want 0", len(q.remaining()))
	}
	if !q.units().IsZero() {
		t.Errorf("remaining units = %s, want 0", q.units())
	}
}

func TestLotQueueOversell(t *testing.T) {
	var q lotQueue
	q.push(Q(10), inr(100))

	realized, unmatched := q.sell(Q(15), inr(120))
	if want := Q(5); !unmatched.Equal(want) {
		t.Errorf("unmatched = %s, want %s", unmatched, want)
	}
	// Only the recorded 10 units contribute to realized P/L: no negative
	// lot is fabricated for the remainder.
	if want := inr(200); !realized.Equal(want) {
		t.Errorf("realized = %s, want %s", realized, want)
	}
	if len(q.remaining()) != 0 {
		t.Errorf("remaining lots = %d, want 0", len(q.remaining()))
	}
}

func TestLotQueueSuccessivePartials(t *testing.T) {
	var q lotQueue
	q.push(Q(10), inr(100))
	q.push(Q(10), inr(200))

	// First partial leaves 4 in the oldest lot.
	if realized, _ := q.sell(Q(6), inr(110)); !realized.Equal(inr(60)) {
		t.Errorf("first sell realized = %s, want ₹60.00", realized)
	}
	// Second sell crosses the lot boundary: 4 from the first, 2 from the second.
	realized, _ := q.sell(Q(6), inr(210))
	want := inr((210-100)*4 + (210-200)*2)
	if !realized.Equal(want) {
		t.Errorf("second sell realized = %s, want %s", realized, want)
	}
	if !q.units().Equal(Q(8)) {
		t.Errorf("remaining units = %s, want 8", q.units())
	}
	if want := inr(8 * 200); !q.costOfRemaining().Equal(want) {
		t.Errorf("cost of remaining = %s, want %s", q.costOfRemaining(), want)
	}
}
