package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/mkundra/nivesh"
)

// checkCmd holds the flags for the 'check' subcommand.
type checkCmd struct {
	configFile string
	ledgerFile string
}

func (*checkCmd) Name() string     { return "check" }
func (*checkCmd) Synopsis() string { return "validate the transaction ledger" }
func (*checkCmd) Usage() string {
	return `niv check [-c <config>] [-l <ledger>]

  Parses the transaction ledger without fetching any prices. Malformed
  rows are reported as warnings, and sells exceeding recorded holdings are
  flagged per instrument.
`
}

func (c *checkCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.configFile, "c", "", "Configuration file. Defaults to "+DefaultConfigFile+" if present.")
	f.StringVar(&c.ledgerFile, "l", "", "Ledger file to check. Defaults to the configured one.")
}

func (c *checkCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig(c.configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if c.ledgerFile == "" {
		c.ledgerFile = cfg.LedgerFile
	}

	src := nivesh.DirSource{Dir: cfg.LedgerDir}
	table, err := src.Load(c.ledgerFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger, err := nivesh.DecodeLedger(table)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("%s: %d transactions across %d instruments\n",
		c.ledgerFile, ledger.Len(), len(ledger.Symbols()))

	// Replay the lot matching with a neutral price to surface oversells
	// without touching the network.
	clean := true
	for _, symbol := range ledger.Symbols() {
		if shortfall := nivesh.Oversold(ledger.Transactions(symbol)); shortfall.IsPositive() {
			fmt.Printf("warning: %s: sells exceed recorded lots by %s units\n", symbol, shortfall)
			clean = false
		}
	}
	if clean {
		fmt.Println("ledger is consistent: no sell exceeds recorded holdings")
	}
	return subcommands.ExitSuccess
}
