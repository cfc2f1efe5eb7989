// Package features derives human-readable buckets from raw client fields.
//
// Every function here is pure and safe for concurrent use.
package features

import (
	"fmt"
	"math"
	"strings"

	"github.com/okian/loanscope/internal/domain/model"
)

const (
	daysPerYear  = 365
	daysPerMonth = 30
	decade       = 10

	// oldestBirthDays bounds DAYS_BIRTH at 150 years.
	oldestBirthDays = -150 * daysPerYear
)

// Seniority thresholds for the ID document, in (negative) days.
const (
	tenTenureDays  = -3650
	fiveTenureDays = -1825
	oneTenureDays  = -365
)

// AgeBucket maps a negative birth delta to its decade, e.g. 34 years -> "30s".
func AgeBucket(daysSinceBirth int64) (string, error) {
	if daysSinceBirth >= 0 {
		return "", model.Invalid("DAYS_BIRTH", "must be negative, got %d", daysSinceBirth)
	}
	if daysSinceBirth < oldestBirthDays {
		return "", model.Invalid("DAYS_BIRTH", "older than 150 years, got %d", daysSinceBirth)
	}
	age := daysSinceBirth / -daysPerYear
	return fmt.Sprintf("%ds", age/decade*decade), nil
}

// TenureBucket buckets the time since the ID document was issued. Comparisons
// are strict, so an exact boundary falls into the less senior bucket.
func TenureBucket(daysSinceIDPublish int64) string {
	switch {
	case daysSinceIDPublish < tenTenureDays:
		return "> 10 years"
	case daysSinceIDPublish < fiveTenureDays:
		return "5-10 years"
	case daysSinceIDPublish < oneTenureDays:
		return "1-5 years"
	default:
		return "< 1 year"
	}
}

type incomeStep struct {
	below float64
	label string
}

var incomeSteps = []incomeStep{
	{100_000, "<$100,000"},
	{200_000, "$100,000 - $199,999"},
	{300_000, "$200,000 - $299,999"},
	{400_000, "$300,000 - $399,999"},
	{500_000, "$400,000 - $499,999"},
}

const topIncomeBracket = "$500,000+"

// IncomeBracket returns the income bracket. A value exactly on a bound
// belongs to the higher bracket.
func IncomeBracket(income float64) string {
	for _, s := range incomeSteps {
		if income < s.below {
			return s.label
		}
	}
	return topIncomeBracket
}

// PhoneChangeMonths returns whole months since the last phone change.
func PhoneChangeMonths(days *int64) (int, error) {
	if days == nil {
		return 0, model.Invalid("DAYS_LAST_PHONE_CHANGE", "value absent and no default supplied")
	}
	return monthsFrom(*days), nil
}

// PhoneChangeMonthsOr is PhoneChangeMonths with an explicit default for absent values.
func PhoneChangeMonthsOr(days *int64, fallback int) int {
	if days == nil {
		return fallback
	}
	return monthsFrom(*days)
}

func monthsFrom(days int64) int {
	return int(math.Abs(float64(days)) / daysPerMonth)
}

// DisplayValue returns the first "/"-delimited segment of a categorical value.
func DisplayValue(s string) string {
	head, _, _ := strings.Cut(s, "/")
	return strings.TrimSpace(head)
}
