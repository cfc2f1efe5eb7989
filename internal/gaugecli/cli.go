package gaugecli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/okian/loanscope/internal/domain/model"
)

// Default configuration constants.
const (
	defaultScoringURL = "http://localhost:9090/predict_proba"
	defaultTimeout    = 5 * time.Second
)

// Parse reads args (without the program name) into a Config. Flag errors
// and usage are written to stderr; -help returns flag.ErrHelp.
func Parse(args []string, stderr io.Writer) (*Config, error) {
	fs := flag.NewFlagSet("gauge", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { ShowHelp(stderr) }

	var (
		cfg      Config
		birth    string
		gender   string
		credit   string
		property string
	)
	fs.StringVar(&cfg.ScoringURL, "scoring-url", defaultScoringURL, "Scoring service endpoint")
	fs.DurationVar(&cfg.Timeout, "timeout", defaultTimeout, "Scoring call timeout")
	fs.BoolVar(&cfg.Simulate, "simulate", false, "Score with the in-process simulated model")
	fs.StringVar(&cfg.DataFile, "data", "", "Client dataset (CSV); omit for manual entry")
	fs.Int64Var(&cfg.ClientID, "client", 0, "Client number")
	fs.StringVar(&birth, "birth", "", "Birth date, YYYY-MM-DD (manual entry)")
	fs.Int64Var(&cfg.Entry.IDPublishDaysAgo, "id-days", 0, "Days since the ID document was updated (manual entry)")
	fs.BoolVar(&cfg.Entry.SameRegisteredAndContactCity, "same-city", true, "Permanent address matches contact address (manual entry)")
	fs.StringVar(&cfg.Entry.OrganizationType, "org", "", "Organization type (manual entry)")
	fs.StringVar(&credit, "credit", "0.5,0.5,0.5", "Three credit scores in [0,1] (manual entry)")
	fs.StringVar(&property, "property", "0.5,0.5,0.5,0.5,0.5", "Five property scores in [0,1] (manual entry)")
	fs.StringVar(&gender, "gender", "", "Male or Female (manual entry)")
	fs.BoolVar(&cfg.Entry.OwnsCar, "car", false, "Owns a car (manual entry)")
	fs.BoolVar(&cfg.JSON, "json", false, "Print the assessment as JSON")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected argument %q", ErrUsage, fs.Arg(0))
	}
	if cfg.ClientID <= 0 {
		return nil, fmt.Errorf("%w: -client is required", ErrUsage)
	}
	if cfg.Manual() {
		if err := manualEntry(&cfg, birth, gender, credit, property); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

func manualEntry(cfg *Config, birth, gender, credit, property string) error {
	cfg.Entry.ClientID = cfg.ClientID
	if birth != "" {
		t, err := time.Parse(time.DateOnly, birth)
		if err != nil {
			return fmt.Errorf("%w: -birth: %w", ErrUsage, err)
		}
		cfg.Entry.BirthDate = t
	}
	if gender != "" {
		g, ok := model.ParseGender(gender)
		if !ok {
			return fmt.Errorf("%w: -gender must be Male or Female", ErrUsage)
		}
		cfg.Entry.Gender = g
	}
	var cs [3]float64
	if err := parseScores("credit", credit, cs[:]); err != nil {
		return err
	}
	var ps [5]float64
	if err := parseScores("property", property, ps[:]); err != nil {
		return err
	}
	cfg.Entry.CreditScores, cfg.Entry.PropertyScores = &cs, &ps
	return nil
}

// parseScores fills dst from a comma-separated list of exactly len(dst) floats.
func parseScores(name, raw string, dst []float64) error {
	parts := strings.Split(raw, ",")
	if len(parts) != len(dst) {
		return fmt.Errorf("%w: -%s needs %d comma-separated values, got %d", ErrUsage, name, len(dst), len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return fmt.Errorf("%w: -%s: %w", ErrUsage, name, err)
		}
		dst[i] = v
	}
	return nil
}

// IsHelp reports whether err is the result of -help.
func IsHelp(err error) bool { return errors.Is(err, flag.ErrHelp) }

// ShowHelp prints usage information for the gauge tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `loanscope gauge
===============

Scores one client and prints its loan-approval gauge.

Usage:
  gauge -data clients.csv -client 100002 [options]
  gauge -client 100002 -birth 1990-04-12 -org Bank -gender Female [options]

Options:
  -scoring-url string   Scoring service endpoint (default "http://localhost:9090/predict_proba")
  -timeout duration     Scoring call timeout (default 5s)
  -simulate             Score with the in-process simulated model
  -data string          Client dataset (CSV); omit for manual entry
  -client int           Client number
  -birth string         Birth date, YYYY-MM-DD
  -id-days int          Days since the ID document was updated
  -same-city            Permanent address matches contact address (default true)
  -org string           Organization type, e.g. "Business Entity Type 3"
  -credit string        Three credit scores in [0,1] (default "0.5,0.5,0.5")
  -property string      Five property scores in [0,1] (default "0.5,0.5,0.5,0.5,0.5")
  -gender string        Male or Female
  -car                  Owns a car
  -json                 Print the assessment as JSON
  -verbose              Enable verbose logging
  -help                 Show this help message
`)
}
