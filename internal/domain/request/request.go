// Package request assembles the payload accepted by the remote scoring service.
package request

import (
	"math"
	"strings"

	"github.com/okian/loanscope/internal/domain/model"
)

// Wire names of the scoring payload. They are part of the service contract and
// must not be renamed, reordered or abbreviated.
const (
	FieldClientID            = "SK_ID_CURR"
	FieldDaysBirth           = "DAYS_BIRTH"
	FieldDaysIDPublish       = "DAYS_ID_PUBLISH"
	FieldRegCityNotLiveCity  = "REG_CITY_NOT_LIVE_CITY"
	FieldOrganizationType    = "ORGANIZATION_TYPE"
	FieldExtSource1          = "EXT_SOURCE_1"
	FieldExtSource2          = "EXT_SOURCE_2"
	FieldExtSource3          = "EXT_SOURCE_3"
	FieldYearsBeginExpluat   = "YEARS_BEGINEXPLUATATION_MODE"
	FieldCommonAreaMode      = "COMMONAREA_MODE"
	FieldFloorsMaxMode       = "FLOORSMAX_MODE"
	FieldLivingApartmentMode = "LIVINGAPARTMENTS_MODE"
	FieldYearsBuildMedi      = "YEARS_BUILD_MEDI"
	FieldCodeGender          = "CODE_GENDER"
	FieldFlagOwnCar          = "FLAG_OWN_CAR"
)

var fieldNames = []string{
	FieldClientID, FieldDaysBirth, FieldDaysIDPublish, FieldRegCityNotLiveCity,
	FieldOrganizationType, FieldExtSource1, FieldExtSource2, FieldExtSource3,
	FieldYearsBeginExpluat, FieldCommonAreaMode, FieldFloorsMaxMode,
	FieldLivingApartmentMode, FieldYearsBuildMedi, FieldCodeGender, FieldFlagOwnCar,
}

// FieldNames returns the 15 wire names in payload order.
func FieldNames() []string {
	out := make([]string, len(fieldNames))
	copy(out, fieldNames)
	return out
}

// ScoringRequest is the exact field subset the scoring service accepts.
type ScoringRequest struct {
	ClientID                   int64   `json:"SK_ID_CURR"`
	DaysBirth                  int64   `json:"DAYS_BIRTH"`
	DaysIDPublish              int64   `json:"DAYS_ID_PUBLISH"`
	RegCityNotLiveCity         int     `json:"REG_CITY_NOT_LIVE_CITY"`
	OrganizationType           string  `json:"ORGANIZATION_TYPE"`
	ExtSource1                 float64 `json:"EXT_SOURCE_1"`
	ExtSource2                 float64 `json:"EXT_SOURCE_2"`
	ExtSource3                 float64 `json:"EXT_SOURCE_3"`
	YearsBeginExpluatationMode float64 `json:"YEARS_BEGINEXPLUATATION_MODE"`
	CommonAreaMode             float64 `json:"COMMONAREA_MODE"`
	FloorsMaxMode              float64 `json:"FLOORSMAX_MODE"`
	LivingApartmentsMode       float64 `json:"LIVINGAPARTMENTS_MODE"`
	YearsBuildMedi             float64 `json:"YEARS_BUILD_MEDI"`
	CodeGender                 string  `json:"CODE_GENDER"`
	FlagOwnCar                 string  `json:"FLAG_OWN_CAR"`
}

// FromRecord builds the payload from an ingested record (record-lookup path).
func FromRecord(rec model.ClientRecord) (ScoringRequest, error) {
	if err := check(rec); err != nil {
		return ScoringRequest{}, err
	}
	return assemble(rec), nil
}

func check(rec model.ClientRecord) error {
	switch {
	case rec.Identifier <= 0:
		return model.Missing(FieldClientID)
	case rec.DaysSinceBirth == 0:
		return model.Missing(FieldDaysBirth)
	case rec.DaysSinceBirth > 0:
		return model.Invalid(FieldDaysBirth, "must be negative, got %d", rec.DaysSinceBirth)
	case rec.DaysSinceIDPublish > 0:
		return model.Invalid(FieldDaysIDPublish, "must not be positive, got %d", rec.DaysSinceIDPublish)
	case strings.TrimSpace(rec.OrganizationType) == "":
		return model.Missing(FieldOrganizationType)
	case !rec.Gender.Valid():
		return model.Missing(FieldCodeGender)
	}

	credit := []string{FieldExtSource1, FieldExtSource2, FieldExtSource3}
	for i, v := range rec.CreditScoreSources {
		if !finite(v) {
			return model.Missing(credit[i])
		}
	}
	property := []string{FieldYearsBeginExpluat, FieldCommonAreaMode, FieldFloorsMaxMode, FieldLivingApartmentMode, FieldYearsBuildMedi}
	for i, v := range rec.PropertyScores {
		if !finite(v) {
			return model.Missing(property[i])
		}
	}
	return nil
}

// assemble is shared by both construction paths so the payload shape cannot drift.
func assemble(rec model.ClientRecord) ScoringRequest {
	return ScoringRequest{
		ClientID:                   rec.Identifier,
		DaysBirth:                  rec.DaysSinceBirth,
		DaysIDPublish:              rec.DaysSinceIDPublish,
		RegCityNotLiveCity:         flag(rec.SameRegisteredAndContactCity),
		OrganizationType:           rec.OrganizationType,
		ExtSource1:                 rec.CreditScoreSources[0],
		ExtSource2:                 rec.CreditScoreSources[1],
		ExtSource3:                 rec.CreditScoreSources[2],
		YearsBeginExpluatationMode: rec.PropertyScores[model.PropertyYearsBeginExpluatation],
		CommonAreaMode:             rec.PropertyScores[model.PropertyCommonArea],
		FloorsMaxMode:              rec.PropertyScores[model.PropertyFloorsMax],
		LivingApartmentsMode:       rec.PropertyScores[model.PropertyLivingApartments],
		YearsBuildMedi:             rec.PropertyScores[model.PropertyYearsBuild],
		CodeGender:                 rec.Gender.Code(),
		FlagOwnCar:                 yn(rec.OwnsCar),
	}
}

// flag encodes the city-match flag; 1 means the registered and contact city match.
func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

func yn(b bool) string {
	if b {
		return "Y"
	}
	return "N"
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
