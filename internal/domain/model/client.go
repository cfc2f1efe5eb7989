// Package model contains domain models passed between layers.
package model

import "strings"

// Gender of the client as captured by the ingestion layer.
type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
)

// ParseGender accepts the display names and the one-letter dataset codes.
func ParseGender(s string) (Gender, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "M", "MALE":
		return GenderMale, true
	case "F", "FEMALE":
		return GenderFemale, true
	}
	return "", false
}

// Valid reports whether g is one of the two known values.
func (g Gender) Valid() bool { return g == GenderMale || g == GenderFemale }

// Code returns the one-letter code used by the scoring service.
func (g Gender) Code() string {
	if g == GenderFemale {
		return "F"
	}
	return "M"
}

// ClientRecord holds one client's raw attributes. Day deltas are relative to
// "today" and are never positive. Values are treated as immutable: every
// derivation returns a new value.
type ClientRecord struct {
	Identifier                   int64
	DaysSinceBirth               int64
	DaysSinceIDPublish           int64
	SameRegisteredAndContactCity bool
	OrganizationType             string
	CreditScoreSources           [3]float64
	PropertyScores               [5]float64
	Gender                       Gender
	OwnsCar                      bool
	OwnsRealty                   bool
	TotalIncome                  float64
	IncomeType                   string
	EducationType                string
	FamilyStatus                 string
	HousingType                  string
	TotalCreditAmount            float64

	// DaysSinceLastPhoneChange is optional; nil means the column was absent.
	DaysSinceLastPhoneChange *int64

	// Entered marks a record typed into the prediction form. It carries no
	// income, credit, realty or household details.
	Entered bool
}

// PropertyScore names, in PropertyScores order.
const (
	PropertyYearsBeginExpluatation = iota
	PropertyCommonArea
	PropertyFloorsMax
	PropertyLivingApartments
	PropertyYearsBuild
)
