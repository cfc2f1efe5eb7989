package features

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/okian/loanscope/internal/domain/model"
)

// Profile is the display card for one client. Every value is already
// bucketized or formatted for presentation.
type Profile struct {
	ClientID          int64  `json:"client_id"`
	Age               string `json:"age"`
	Gender            string `json:"gender"`
	JobField          string `json:"job_field"`
	Income            string `json:"income,omitempty"`
	EducationType     string `json:"education_type,omitempty"`
	IncomeType        string `json:"income_type,omitempty"`
	FamilyStatus      string `json:"family_status,omitempty"`
	HousingType       string `json:"housing_type,omitempty"`
	IDTenure          string `json:"id_tenure"`
	SameCity          string `json:"same_city"`
	OwnsCar           string `json:"owns_car"`
	OwnsRealty        string `json:"owns_realty,omitempty"`
	TotalCredit       string `json:"total_credit,omitempty"`
	PhoneChangeMonths *int   `json:"phone_change_months,omitempty"`
}

var amountPrinter = message.NewPrinter(language.English)

// Summarize derives the display card for rec.
func Summarize(rec model.ClientRecord) (Profile, error) {
	age, err := AgeBucket(rec.DaysSinceBirth)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{
		ClientID: rec.Identifier,
		Age:      age,
		Gender:   string(rec.Gender),
		JobField: OrganizationCategory(rec.OrganizationType),
		IDTenure: TenureBucket(rec.DaysSinceIDPublish),
		SameCity: yesNo(rec.SameRegisteredAndContactCity),
		OwnsCar:  yesNo(rec.OwnsCar),
	}
	// The prediction form does not collect these; leave them off the card.
	if !rec.Entered {
		p.Income = IncomeBracket(rec.TotalIncome)
		p.EducationType = DisplayValue(rec.EducationType)
		p.IncomeType = DisplayValue(rec.IncomeType)
		p.FamilyStatus = DisplayValue(rec.FamilyStatus)
		p.HousingType = DisplayValue(rec.HousingType)
		p.OwnsRealty = yesNo(rec.OwnsRealty)
		p.TotalCredit = FormatAmount(rec.TotalCreditAmount)
	}
	if months, err := PhoneChangeMonths(rec.DaysSinceLastPhoneChange); err == nil {
		p.PhoneChangeMonths = &months
	}
	return p, nil
}

// FormatAmount renders a currency amount truncated to whole units, e.g. "$1,250,000".
func FormatAmount(v float64) string {
	return amountPrinter.Sprintf("$%d", int64(v))
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
