// Package renderer turns structured reports into markdown. It owns all
// presentation concerns; the engine only ever hands it values.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/mkundra/nivesh"
	md "github.com/nao1215/markdown"
)

var summaryHeader = []string{
	"Instrument", "Latest Price", "Units", "Invested", "Current",
	"Realized P/L", "Unrealized P/L", "Avg Cost", "% Return",
	"% Portfolio", "XIRR", "Min", "Max",
}

// SummaryMarkdown renders a portfolio report as a markdown document, one
// table per asset-kind group, each closed by its total row, and a grand
// total at the end.
func SummaryMarkdown(r *nivesh.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Summary on %s", r.Date))

	var notes []string
	for _, g := range r.Groups {
		doc.H2(g.Label)

		table := md.TableSet{Header: summaryHeader}
		for _, row := range g.Rows {
			name := row.Name
			if row.Fmt.Note != "" {
				name += " ⚠"
				notes = append(notes, fmt.Sprintf("%s: %s", row.Name, row.Fmt.Note))
			}
			table.Rows = append(table.Rows, []string{
				name,
				row.Fmt.LatestPrice,
				row.Fmt.Units,
				row.Fmt.Invested,
				row.Fmt.Current,
				row.Fmt.Realized,
				row.Fmt.Unrealized,
				row.Fmt.AverageCost,
				row.Fmt.Return,
				row.Fmt.Weight,
				row.Fmt.Annualized,
				row.Fmt.MinPrice,
				row.Fmt.MaxPrice,
			})
		}
		table.Rows = append(table.Rows, totalRow(md.Bold("Total"), g.Totals))
		doc.Table(table)
	}

	doc.H2("Grand Total")
	doc.Table(md.TableSet{
		Header: []string{"", "Invested", "Current", "Realized P/L", "Unrealized P/L"},
		Rows: [][]string{{
			md.Bold("Portfolio"),
			r.Total.Fmt.Invested,
			r.Total.Fmt.Current,
			r.Total.Fmt.Realized,
			r.Total.Fmt.Unrealized,
		}},
	})

	if len(notes) > 0 {
		doc.H2("Data Quality")
		doc.BulletList(notes...)
	}

	return doc.String()
}

// totalRow synthesizes a group total row; non-additive columns stay blank.
func totalRow(label string, t nivesh.Totals) []string {
	return []string{
		label, "", "",
		t.Fmt.Invested,
		t.Fmt.Current,
		t.Fmt.Realized,
		t.Fmt.Unrealized,
		"", "", "", "", "", "",
	}
}
