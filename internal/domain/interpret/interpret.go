// Package interpret turns a scoring probability into a risk tier and a gauge
// description for the presentation layer.
package interpret

import (
	"fmt"
	"math"
	"strconv"

	"github.com/okian/loanscope/internal/domain/model"
)

const percentScale = 100

// Tier is a risk-severity label derived from the probability percentage.
type Tier string

const (
	TierExcellent Tier = "excellent"
	TierHigh      Tier = "high"
	TierModerate  Tier = "moderate"
	TierLow       Tier = "low"
	TierVeryLow   Tier = "very_low"
)

type tierRule struct {
	atLeast float64
	tier    Tier
	message string
}

// Highest threshold first.
var tierRules = []tierRule{
	{80, TierExcellent, "This score indicates an excellent likelihood of loan approval. Congratulations, this is a very strong candidate."},
	{60, TierHigh, "This score indicates a high likelihood of loan approval based on our assessment criteria."},
	{40, TierModerate, "This score shows a moderate likelihood of loan approval. There may be some conditions or additional verifications needed."},
	{20, TierLow, "This score suggests a lower likelihood of loan approval. Consider reviewing the client's details or criteria."},
	{math.Inf(-1), TierVeryLow, "This score indicates a very low likelihood of loan approval. It's advisable to assess if the application aligns with the lending criteria."},
}

// Tiers returns every tier, most favourable first.
func Tiers() []Tier {
	out := make([]Tier, len(tierRules))
	for i, r := range tierRules {
		out[i] = r.tier
	}
	return out
}

// Message returns the advisory text for t, or "" for an unknown tier.
func (t Tier) Message() string {
	for _, r := range tierRules {
		if r.tier == t {
			return r.message
		}
	}
	return ""
}

// Result is the interpretation of one scoring response.
type Result struct {
	// ProbabilityPercent keeps full precision; round only for display.
	ProbabilityPercent float64   `json:"probability_percent"`
	Tier               Tier      `json:"tier"`
	Message            string    `json:"message"`
	Bands              []Band    `json:"bands"`
	Threshold          Threshold `json:"threshold"`
	Ticks              []Tick    `json:"ticks"`
}

// Interpret maps a raw probability in [0,1] to a Result.
func Interpret(rawProbability float64) (Result, error) {
	if math.IsNaN(rawProbability) || rawProbability < 0 || rawProbability > 1 {
		return Result{}, model.Invalid("prediction", "probability must be within [0,1], got %v", rawProbability)
	}
	pct := rawProbability * percentScale
	rule := tierFor(pct)
	return Result{
		ProbabilityPercent: pct,
		Tier:               rule.tier,
		Message:            rule.message,
		Bands:              Bands(),
		Threshold:          thresholdAt(pct),
		Ticks:              Ticks(),
	}, nil
}

func tierFor(pct float64) tierRule {
	for _, r := range tierRules {
		if pct >= r.atLeast {
			return r
		}
	}
	return tierRules[len(tierRules)-1]
}

// Display renders the percentage rounded to two decimals, e.g. "42.70%".
func (r Result) Display() string {
	return fmt.Sprintf("%.2f%%", r.ProbabilityPercent)
}

// ExportCSV renders the two-column download of the original dashboard. The
// percentage is written at full precision.
func ExportCSV(clientID int64, r Result) string {
	return "Client number,Prediction Score\n" +
		strconv.FormatInt(clientID, 10) + "," +
		strconv.FormatFloat(r.ProbabilityPercent, 'f', -1, 64)
}
