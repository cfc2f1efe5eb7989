// Package types contains the read shapes handed to presentation layers.
package types

import (
	"github.com/okian/loanscope/internal/domain/features"
	"github.com/okian/loanscope/internal/domain/interpret"
)

// Assessment is one scored client: the display card plus the interpreted score.
type Assessment struct {
	ClientID int64            `json:"client_id"`
	Profile  features.Profile `json:"profile"`
	Score    interpret.Result `json:"score"`
	Display  string           `json:"display"`
}

// BatchRow is one client's outcome in a batch run. Exactly one of
// ProbabilityPercent and Error is set; a failed call is never a 0% score.
type BatchRow struct {
	ClientID           int64          `json:"client_id"`
	ProbabilityPercent *float64       `json:"probability_percent,omitempty"`
	Tier               interpret.Tier `json:"tier,omitempty"`
	Error              string         `json:"error,omitempty"`
}

// Failed reports whether the row carries an error instead of a score.
func (r BatchRow) Failed() bool { return r.Error != "" }

// BatchReport summarizes a batch scoring run.
type BatchReport struct {
	BatchID string     `json:"batch_id"`
	Scored  int        `json:"scored"`
	Failed  int        `json:"failed"`
	Rows    []BatchRow `json:"rows"`
}

// IngestReport summarizes one dataset upload.
type IngestReport struct {
	Loaded     int `json:"loaded"`
	Dropped    int `json:"dropped"`
	Duplicates int `json:"duplicates"`
}
