// Package gaugecli is the terminal rendition of the eligibility gauge: it
// scores one client, loaded from a dataset or typed as flags, and prints the
// card, the tier and the gauge bands.
package gaugecli

import (
	"time"

	"github.com/okian/loanscope/internal/domain/request"
)

// Config holds the parsed command line.
type Config struct {
	ScoringURL string        // Scoring service endpoint
	Timeout    time.Duration // Bound on the scoring call
	Simulate   bool          // Use the in-process simulated model
	DataFile   string        // Dataset to look the client up in; empty means manual entry
	ClientID   int64         // Client to look up, or the manual entry's identifier
	Entry      request.ManualEntry
	JSON       bool // Print the assessment as JSON
	Verbose    bool // Enable debug logging
}

// Manual reports whether the client comes from flags rather than a dataset.
func (c *Config) Manual() bool { return c.DataFile == "" }
