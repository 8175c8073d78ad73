package nivesh

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/mkundra/nivesh/date"
)

// ErrEmptyLedger is returned when a ledger table has no header or no rows.
// It is fatal to the summary request it belongs to.
var ErrEmptyLedger = errors.New("ledger has no data")

// Transaction is a single parsed ledger entry. It is immutable once parsed.
type Transaction struct {
	Date   date.Date
	Symbol string // instrument identifier, e.g. a scheme code or a ticker
	Name   string // display name
	Price  Money  // price per unit, in the kind's trading currency
	Units  Quantity
	Side   Side
	Kind   AssetKind
}

// NewBuy creates a buy transaction.
func NewBuy(on date.Date, symbol, name string, kind AssetKind, units, price float64) Transaction {
	return Transaction{Date: on, Symbol: symbol, Name: name, Kind: kind,
		Units: Q(units), Price: M(price, kind.Currency()), Side: Buy}
}

// NewSell creates a sell transaction.
func NewSell(on date.Date, symbol, name string, kind AssetKind, units, price float64) Transaction {
	return Transaction{Date: on, Symbol: symbol, Name: name, Kind: kind,
		Units: Q(units), Price: M(price, kind.Currency()), Side: Sell}
}

// Ledger holds parsed transactions grouped by instrument symbol. Within a
// symbol, transactions keep their input order; processing re-sorts them by
// date with input order breaking ties.
type Ledger struct {
	symbols      []string // in order of first appearance
	transactions map[string][]Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make(map[string][]Transaction)}
}

// Append adds a transaction to the ledger.
func (l *Ledger) Append(tx Transaction) {
	if _, ok := l.transactions[tx.Symbol]; !ok {
		l.symbols = append(l.symbols, tx.Symbol)
	}
	l.transactions[tx.Symbol] = append(l.transactions[tx.Symbol], tx)
}

// Symbols returns the instrument symbols in order of first appearance.
func (l *Ledger) Symbols() []string { return l.symbols }

// Transactions returns the symbol's transactions sorted by ascending date,
// ties keeping input order. The returned slice is a copy.
func (l *Ledger) Transactions(symbol string) []Transaction {
	src := l.transactions[symbol]
	txns := make([]Transaction, len(src))
	copy(txns, src)
	sort.SliceStable(txns, func(i, j int) bool { return txns[i].Date.Before(txns[j].Date) })
	return txns
}

// Len returns the total number of transactions in the ledger.
func (l *Ledger) Len() int {
	n := 0
	for _, txns := range l.transactions {
		n += len(txns)
	}
	return n
}

// Table is a raw tabular ledger: a header naming the columns and one row of
// cells per transaction.
type Table struct {
	Header []string
	Rows   [][]string
}

// Source provides raw ledger tables by name. Implementations decide where
// the bytes live; the engine only sees header and rows.
type Source interface {
	Load(name string) (Table, error)
}

// Ledger column names. The date column uses the dd-mm-yyyy format.
const (
	colSymbol = "symbol"
	colName   = "name"
	colDate   = "date"
	colPrice  = "price"
	colUnits  = "units"
	colSide   = "side" // optional, defaults to "buy"
	colKind   = "kind" // optional, defaults to "mutual_fund"
)

// DecodeLedger parses a raw table into a Ledger.
//
// A missing or empty header, or a table with no rows, fails with
// ErrEmptyLedger. A malformed row (missing required field, unparsable
// number or date, non-positive units, negative price) is logged and
// skipped; the rest of the table still parses. Blank rows are skipped
// silently.
func DecodeLedger(t Table) (*Ledger, error) {
	if len(t.Header) == 0 {
		return nil, fmt.Errorf("missing header: %w", ErrEmptyLedger)
	}
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("no rows: %w", ErrEmptyLedger)
	}

	cols := make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{colSymbol, colName, colDate, colPrice, colUnits} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("header misses column %q: %w", required, ErrEmptyLedger)
		}
	}

	cell := func(row []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	ledger := NewLedger()
	for n, row := range t.Rows {
		if isBlank(row) {
			continue
		}
		tx, err := decodeRow(row, cell)
		if err != nil {
			log.Printf("warning: skipping ledger row %d: %v", n+1, err)
			continue
		}
		ledger.Append(tx)
	}
	return ledger, nil
}

func decodeRow(row []string, cell func([]string, string) string) (Transaction, error) {
	symbol := cell(row, colSymbol)
	if symbol == "" {
		return Transaction{}, fmt.Errorf("missing %q", colSymbol)
	}
	name := cell(row, colName)
	if name == "" {
		return Transaction{}, fmt.Errorf("missing %q", colName)
	}
	on, err := date.ParseLedger(cell(row, colDate))
	if err != nil {
		return Transaction{}, err
	}
	price, err := strconv.ParseFloat(cell(row, colPrice), 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid %q: %w", colPrice, err)
	}
	if price < 0 {
		return Transaction{}, fmt.Errorf("negative %q: %v", colPrice, price)
	}
	units, err := strconv.ParseFloat(cell(row, colUnits), 64)
	if err != nil {
		return Transaction{}, fmt.Errorf("invalid %q: %w", colUnits, err)
	}
	if units <= 0 {
		return Transaction{}, fmt.Errorf("non-positive %q: %v", colUnits, units)
	}
	side, err := ParseSide(cell(row, colSide))
	if err != nil {
		return Transaction{}, err
	}
	kind := MutualFund
	if s := cell(row, colKind); s != "" {
		kind = ParseAssetKind(s)
	}

	return Transaction{
		Date:   on,
		Symbol: symbol,
		Name:   name,
		Price:  M(price, kind.Currency()),
		Units:  Q(units),
		Side:   side,
		Kind:   kind,
	}, nil
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
