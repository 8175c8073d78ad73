package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/mkundra/nivesh"
	"github.com/mkundra/nivesh/date"
)

func TestSummaryMarkdown(t *testing.T) {
	ledger := nivesh.NewLedger()
	ledger.Append(nivesh.NewBuy(date.New(2023, time.January, 1), "MF1", "Axis Bluechip", nivesh.MutualFund, 100, 45))
	ledger.Append(nivesh.NewBuy(date.New(2023, time.March, 1), "BHP.AX", "BHP Group", nivesh.AusEquity, 25, 44))

	report := nivesh.NewReport(ledger,
		map[string]float64{"MF1": 50, "BHP.AX": 46},
		nivesh.ReportOptions{On: date.New(2024, time.January, 1)})

	doc := SummaryMarkdown(report)

	for _, want := range []string{
		"# Portfolio Summary on 2024-01-01",
		"## Mutual Funds",
		"## Australian Equity",
		"Axis Bluechip",
		"BHP Group",
		"**Total**",
		"## Grand Total",
		"XIRR",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("markdown misses %q:\n%s", want, doc)
		}
	}
	// presentation stays out of the engine: the report's raw values are
	// untouched, only strings are assembled here
	if report.Groups[0].Rows[0].Fmt.Invested == "" {
		t.Error("report rows must already carry formatted strings")
	}
}
