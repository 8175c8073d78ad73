package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mkundra/nivesh"
	"github.com/mkundra/nivesh/date"
	"github.com/mkundra/nivesh/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	configFile string
	ledgerFile string
	date       string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio valuation summary" }
func (*summaryCmd) Usage() string {
	return `niv summary [-c <config>] [-l <ledger>] [-d <date>]

  Values every instrument of the transaction ledger at current market
  prices and displays realized/unrealized P/L, XIRR and portfolio weights,
  grouped by asset kind.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "c", "", "Configuration file. Defaults to "+DefaultConfigFile+" if present.")
	f.StringVar(&c.ledgerFile, "l", "", "Ledger file to report on. Defaults to the configured one.")
	f.StringVar(&c.date, "d", "", "Valuation date (YYYY-MM-DD). Defaults to today.")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.ledgerFile == "" {
		c.ledgerFile = cfg.LedgerFile
	}

	opts := nivesh.ReportOptions{}
	if c.date != "" {
		on, err := date.Parse(c.date)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
			return subcommands.ExitUsageError
		}
		opts.On = on
	}

	src := nivesh.DirSource{Dir: cfg.LedgerDir}
	report, err := nivesh.GenerateReport(ctx, src, c.ledgerFile, cfg.oracle(), opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.SummaryMarkdown(report))
	return subcommands.ExitSuccess
}
