package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mkundra/nivesh"
)

// Config is everything the CLI needs to assemble an engine run. There is
// no process-wide state: the loaded Config is passed down explicitly.
type Config struct {
	LedgerDir  string // directory holding ledger CSV files
	LedgerFile string // default ledger file name

	MFAPIBaseURL  string
	ChartBaseURL  string
	ScrapeBaseURL string
	Timeout       time.Duration
	Workers       int
}

// DefaultConfigFile is looked up when -c is not given.
const DefaultConfigFile = "niv.toml"

func defaultConfig() Config {
	return Config{
		LedgerDir:     ".",
		LedgerFile:    "transactions.csv",
		MFAPIBaseURL:  nivesh.DefaultMFAPIBaseURL,
		ChartBaseURL:  nivesh.DefaultChartBaseURL,
		ScrapeBaseURL: nivesh.DefaultScrapeBaseURL,
		Timeout:       nivesh.DefaultTimeout,
		Workers:       nivesh.DefaultWorkers,
	}
}

// loadConfig reads the TOML configuration file, falling back to defaults
// for anything unset. A missing default file is not an error; a missing
// explicit file is.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()

	if path == "" {
		path = DefaultConfigFile
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
		return cfg, fmt.Errorf("error loading config %s: %w", path, err)
	}

	if v := k.String("ledger.dir"); v != "" {
		cfg.LedgerDir = v
	}
	if v := k.String("ledger.file"); v != "" {
		cfg.LedgerFile = v
	}
	if v := k.String("quotes.mfapi_url"); v != "" {
		cfg.MFAPIBaseURL = v
	}
	if v := k.String("quotes.chart_url"); v != "" {
		cfg.ChartBaseURL = v
	}
	if v := k.String("quotes.scrape_url"); v != "" {
		cfg.ScrapeBaseURL = v
	}
	if v := k.Int("quotes.timeout_seconds"); v > 0 {
		cfg.Timeout = time.Duration(v) * time.Second
	}
	if v := k.Int("quotes.workers"); v > 0 {
		cfg.Workers = v
	}
	return cfg, nil
}

// oracle builds the price oracle described by the configuration.
func (c Config) oracle() *nivesh.Oracle {
	return nivesh.NewOracle(nivesh.OracleConfig{
		MFAPIBaseURL:  c.MFAPIBaseURL,
		ChartBaseURL:  c.ChartBaseURL,
		ScrapeBaseURL: c.ScrapeBaseURL,
		Timeout:       c.Timeout,
		Workers:       c.Workers,
	})
}
