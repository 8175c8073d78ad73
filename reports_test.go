package nivesh

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mkundra/nivesh/date"
)

// stubQuoter serves canned prices and fails for anything unlisted.
type stubQuoter map[string]float64

func (s stubQuoter) Latest(_ context.Context, symbol string) (float64, error) {
	if p, ok := s[symbol]; ok {
		return p, nil
	}
	return 0, fmt.Errorf("no quote for %q", symbol)
}

func testOracle(prices map[string]float64) *Oracle {
	q := stubQuoter(prices)
	return NewOracleWith(map[AssetKind]Quoter{
		MutualFund:   q,
		IndianEquity: q,
		AusEquity:    q,
	}, 2)
}

func testTable() Table {
	return Table{
		Header: testHeader,
		Rows: [][]string{
			{"MF1", "Small Fund", "01-01-2023", "100", "10", "buy", "mutual_fund"},
			{"MF2", "Big Fund", "01-01-2023", "500", "100", "buy", "mutual_fund"},
			{"MF2", "Big Fund", "01-06-2023", "550", "20", "sell", "mutual_fund"},
			{"INF1", "Infosys", "01-02-2023", "1400", "10", "buy", "indian_equity"},
			{"BAD", "No Price Corp", "01-02-2023", "10", "100", "buy", "indian_equity"},
		},
	}
}

func testPrices() map[string]float64 {
	return map[string]float64{"MF1": 120, "MF2": 600, "INF1": 1500}
}

func TestGenerateReport(t *testing.T) {
	src := MemSource{"transactions.csv": testTable()}
	on := date.New(2024, time.January, 1)

	report, err := GenerateReport(context.Background(), src, "transactions.csv",
		testOracle(testPrices()), ReportOptions{On: on})
	if err != nil {
		t.Fatal(err)
	}

	if len(report.Groups) != 2 {
		t.Fatalf("groups = %d, want 2 (mutual funds, indian equity)", len(report.Groups))
	}
	funds, equity := report.Groups[0], report.Groups[1]
	if funds.Kind != MutualFund || equity.Kind != IndianEquity {
		t.Fatalf("group order = %v, %v; want mutual_fund then indian_equity", funds.Kind, equity.Kind)
	}

	// rows sort by invested capital descending within a group
	if funds.Rows[0].Symbol != "MF2" || funds.Rows[1].Symbol != "MF1" {
		t.Errorf("fund rows = %s, %s; want MF2 first (bigger invested)",
			funds.Rows[0].Symbol, funds.Rows[1].Symbol)
	}

	// the instrument without a price is absent from rows and totals alike
	for _, g := range report.Groups {
		for _, row := range g.Rows {
			if row.Symbol == "BAD" {
				t.Error("instrument with failed price lookup must be excluded")
			}
		}
	}
	wantInvested := inr(10*100 + 100*500 + 10*1400)
	if !report.Total.Invested.Equal(wantInvested) {
		t.Errorf("total invested = %s, want %s (BAD excluded)", report.Total.Invested, wantInvested)
	}

	// portfolio weights of included instruments sum to 100%
	var weights float64
	for _, g := range report.Groups {
		for _, row := range g.Rows {
			weights += float64(row.Weight)
		}
	}
	if math.Abs(weights-100) > 0.01 {
		t.Errorf("weights sum = %v, want 100 ± 0.01", weights)
	}

	// group totals add up the group's rows
	wantFunds := inr(10*120 + 80*600)
	if !funds.Totals.Current.Equal(wantFunds) {
		t.Errorf("fund group current = %s, want %s", funds.Totals.Current, wantFunds)
	}
}

func TestGenerateReportNoData(t *testing.T) {
	tests := []struct {
		name  string
		table Table
	}{
		{name: "empty table", table: Table{}},
		{name: "header only", table: Table{Header: testHeader}},
		{name: "all rows malformed", table: Table{
			Header: testHeader,
			Rows:   [][]string{{"A", "Alpha", "not-a-date", "1", "1", "buy", "mutual_fund"}},
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			src := MemSource{"transactions.csv": tc.table}
			_, err := GenerateReport(context.Background(), src, "transactions.csv",
				testOracle(nil), ReportOptions{})
			if !errors.Is(err, ErrNoData) {
				t.Errorf("error = %v, want ErrNoData", err)
			}
		})
	}
}

func TestReportIdempotence(t *testing.T) {
	ledger, err := DecodeLedger(testTable())
	if err != nil {
		t.Fatal(err)
	}
	opts := ReportOptions{On: date.New(2024, time.January, 1)}

	a := NewReport(ledger, testPrices(), opts)
	b := NewReport(ledger, testPrices(), opts)

	diff := cmp.Diff(a, b,
		cmp.Comparer(func(x, y Money) bool { return x.Equal(y) }),
		cmp.Comparer(func(x, y Quantity) bool { return x.Equal(y) }),
		cmp.Comparer(func(x, y date.Date) bool { return x == y }),
		cmpopts.IgnoreFields(Report{}, "Time"),
	)
	if diff != "" {
		t.Errorf("identical inputs produced different reports (-first +second):\n%s", diff)
	}
}

func TestReportFormattedStrings(t *testing.T) {
	ledger := NewLedger()
	ledger.Append(NewBuy(date.New(2023, time.January, 1), "MF", "Megafund", MutualFund, 10000, 500))
	ledger.Append(NewBuy(date.New(2023, time.January, 1), "BHP", "BHP Group", AusEquity, 100, 40))
	// oversold instrument to check the row note
	ledger.Append(NewBuy(date.New(2023, time.January, 1), "OV", "Oversold", MutualFund, 10, 100))
	ledger.Append(NewSell(date.New(2023, time.June, 1), "OV", "Oversold", MutualFund, 12, 100))

	report := NewReport(ledger, map[string]float64{"MF": 520, "BHP": 45, "OV": 100},
		ReportOptions{On: date.New(2024, time.January, 1)})

	funds := report.Groups[0]
	if got, want := funds.Rows[0].Fmt.Invested, "₹50.00 L"; got != want {
		t.Errorf("INR invested = %q, want %q (Indian system)", got, want)
	}
	if got, want := funds.Rows[0].Fmt.Current, "₹52.00 L"; got != want {
		t.Errorf("INR current = %q, want %q", got, want)
	}

	aus := report.Groups[1]
	if aus.Kind != AusEquity {
		t.Fatalf("second group = %v, want aus_equity", aus.Kind)
	}
	if got, want := aus.Rows[0].Fmt.Invested, "A$4,000.00"; got != want {
		t.Errorf("AUD invested = %q, want %q (plain notation)", got, want)
	}

	over := funds.Rows[1]
	if over.Symbol != "OV" {
		t.Fatalf("expected OV second in the fund group, got %s", over.Symbol)
	}
	if over.Fmt.Note == "" {
		t.Error("oversold instrument must carry a data-quality note")
	}
	if over.Fmt.Annualized == "" {
		t.Error("annualized column must never be empty")
	}
}
