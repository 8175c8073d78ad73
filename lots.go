package nivesh

// lot represents a single unconsumed (or partially consumed) buy batch,
// used for FIFO cost basis calculations.
type lot struct {
	Units Quantity
	Price Money // price per unit at purchase
}

// lotQueue is a FIFO queue of open lots. It is a slice with an explicit
// head index: consuming from the front advances head instead of shifting
// the slice. Not safe for concurrent use.
type lotQueue struct {
	lots []lot
	head int
}

// push appends a new lot at the back of the queue.
func (q *lotQueue) push(units Quantity, price Money) {
	q.lots = append(q.lots, lot{Units: units, Price: price})
}

// sell consumes up to quantityToSell from the oldest lots first. For each
// consumed slice it accrues (sellPrice - lot.Price) × consumed into the
// realized P/L. A partially consumed lot shrinks in place; a fully consumed
// one is popped. If the queue runs out, the rest is returned as unmatched:
// no negative lot is ever fabricated.
func (q *lotQueue) sell(quantityToSell Quantity, sellPrice Money) (realized Money, unmatched Quantity) {
	for q.head < len(q.lots) && quantityToSell.IsPositive() {
		current := &q.lots[q.head]
		if current.Units.GreaterThan(quantityToSell) {
			// Partial sale from this lot
			realized = realized.Add(sellPrice.Sub(current.Price).Mul(quantityToSell))
			current.Units = current.Units.Sub(quantityToSell)
			quantityToSell = Q(0)
		} else {
			// Full sale of this lot
			realized = realized.Add(sellPrice.Sub(current.Price).Mul(current.Units))
			quantityToSell = quantityToSell.Sub(current.Units)
			q.head++
		}
	}
	return realized, quantityToSell
}

// remaining returns the unconsumed lots, oldest first.
func (q *lotQueue) remaining() []lot {
	return q.lots[q.head:]
}

// units returns the total units across remaining lots.
func (q *lotQueue) units() (total Quantity) {
	for _, l := range q.remaining() {
		total = total.Add(l.Units)
	}
	return total
}

// costOfRemaining returns the total cost of remaining lots, i.e. the cost
// basis of the open position.
func (q *lotQueue) costOfRemaining() (cost Money) {
	for _, l := range q.remaining() {
		cost = cost.Add(l.Price.Mul(l.Units))
	}
	return cost
}
