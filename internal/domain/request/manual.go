package request

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/okian/loanscope/internal/domain/features"
	"github.com/okian/loanscope/internal/domain/model"
)

const hoursPerDay = 24

// ManualEntry is a client profile typed into the custom prediction form.
// Offsets are entered as positive "days ago" and stored negated.
type ManualEntry struct {
	ClientID                     int64        `json:"client_id" validate:"required,min=100000,max=999999"`
	BirthDate                    time.Time    `json:"birth_date"`
	IDPublishDaysAgo             int64        `json:"id_publish_days_ago" validate:"min=0"`
	SameRegisteredAndContactCity bool         `json:"same_city"`
	OrganizationType             string       `json:"organization_type" validate:"required,organization_type"`
	CreditScores                 *[3]float64  `json:"credit_scores" validate:"required,dive,gte=0,lte=1"`
	PropertyScores               *[5]float64  `json:"property_scores" validate:"required,dive,gte=0,lte=1"`
	Gender                       model.Gender `json:"gender" validate:"required,oneof=Male Female"`
	OwnsCar                      bool         `json:"owns_car"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("organization_type", func(fl validator.FieldLevel) bool {
		return features.IsKnownOrganizationType(fl.Field().String())
	})
	return v
}

// Record validates the entry and converts it to a ClientRecord relative to today.
func (e ManualEntry) Record(today time.Time) (model.ClientRecord, error) {
	if err := validate.Struct(e); err != nil {
		return model.ClientRecord{}, translate(err)
	}
	if e.BirthDate.IsZero() {
		return model.ClientRecord{}, model.Missing("birth_date")
	}
	age := daysBetween(e.BirthDate, today)
	if age <= 0 {
		return model.ClientRecord{}, model.Invalid("birth_date", "must be before %s", today.Format(time.DateOnly))
	}
	return model.ClientRecord{
		Identifier:                   e.ClientID,
		DaysSinceBirth:               -age,
		DaysSinceIDPublish:           -e.IDPublishDaysAgo,
		SameRegisteredAndContactCity: e.SameRegisteredAndContactCity,
		OrganizationType:             e.OrganizationType,
		CreditScoreSources:           *e.CreditScores,
		PropertyScores:               *e.PropertyScores,
		Gender:                       e.Gender,
		OwnsCar:                      e.OwnsCar,
		Entered:                      true,
	}, nil
}

// FromManualEntry builds the payload from form input (manual-entry path).
func FromManualEntry(e ManualEntry, today time.Time) (ScoringRequest, error) {
	rec, err := e.Record(today)
	if err != nil {
		return ScoringRequest{}, err
	}
	return FromRecord(rec)
}

// daysBetween counts calendar days from one date to another, ignoring clock time.
func daysBetween(from, to time.Time) int64 {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int64(t.Sub(f).Hours() / hoursPerDay)
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Join(model.ErrInvalidInput, err)
	}
	fe := verrs[0]
	if fe.Tag() == "required" {
		return model.Missing(fe.Field())
	}
	return model.Invalid(fe.Field(), "failed %q check (value %v)", fe.Tag(), fe.Value())
}
