package features_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/okian/loanscope/internal/domain/features"
	"github.com/okian/loanscope/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestAgeBucket(t *testing.T) {
	Convey("Given birth deltas in days", t, func() {
		Convey("When the client is 34 years old", func() {
			bucket, err := features.AgeBucket(-34*365 - 100)

			Convey("Then the bucket is the decade", func() {
				So(err, ShouldBeNil)
				So(bucket, ShouldEqual, "30s")
			})
		})

		Convey("When the delta is one day short of a decade", func() {
			bucket, err := features.AgeBucket(-(40*365 - 1))

			Convey("Then the age truncates instead of rounding", func() {
				So(err, ShouldBeNil)
				So(bucket, ShouldEqual, "30s")
			})
		})

		Convey("When sweeping negative deltas", func() {
			Convey("Then every bucket ends in 0s and matches the decade of the truncated age", func() {
				for d := int64(-1); d > -45000; d -= 97 {
					bucket, err := features.AgeBucket(d)
					So(err, ShouldBeNil)
					So(strings.HasSuffix(bucket, "0s"), ShouldBeTrue)
					want := (-d / 365) / 10 * 10
					So(bucket, ShouldEqual, fmt.Sprintf("%ds", want))
				}
			})
		})

		Convey("When the delta is zero or positive", func() {
			_, errZero := features.AgeBucket(0)
			_, errPos := features.AgeBucket(12000)

			Convey("Then it fails with invalid input", func() {
				So(errors.Is(errZero, model.ErrInvalidInput), ShouldBeTrue)
				So(errors.Is(errPos, model.ErrInvalidInput), ShouldBeTrue)
			})
		})

		Convey("When the delta is past any plausible age", func() {
			_, errMin := features.AgeBucket(math.MinInt64)
			_, errOld := features.AgeBucket(-151 * 365)
			bucket, errEdge := features.AgeBucket(-150 * 365)

			Convey("Then it fails with invalid input instead of wrapping around", func() {
				So(errors.Is(errMin, model.ErrInvalidInput), ShouldBeTrue)
				So(errors.Is(errOld, model.ErrInvalidInput), ShouldBeTrue)
				So(errEdge, ShouldBeNil)
				So(bucket, ShouldEqual, "150s")
			})
		})
	})
}

func TestTenureBucket(t *testing.T) {
	Convey("Given ID publication deltas", t, func() {
		Convey("Then exact thresholds fall into the less senior bucket", func() {
			So(features.TenureBucket(-3650), ShouldEqual, "5-10 years")
			So(features.TenureBucket(-3651), ShouldEqual, "> 10 years")
			So(features.TenureBucket(-1825), ShouldEqual, "1-5 years")
			So(features.TenureBucket(-1826), ShouldEqual, "5-10 years")
			So(features.TenureBucket(-365), ShouldEqual, "< 1 year")
			So(features.TenureBucket(-366), ShouldEqual, "1-5 years")
		})

		Convey("And today is less than a year", func() {
			So(features.TenureBucket(0), ShouldEqual, "< 1 year")
		})
	})
}

func TestIncomeBracket(t *testing.T) {
	Convey("Given incomes around the bracket bounds", t, func() {
		Convey("Then a bound belongs to the higher bracket", func() {
			So(features.IncomeBracket(100000), ShouldEqual, "$100,000 - $199,999")
			So(features.IncomeBracket(99999.99), ShouldEqual, "<$100,000")
			So(features.IncomeBracket(200000), ShouldEqual, "$200,000 - $299,999")
			So(features.IncomeBracket(399999), ShouldEqual, "$300,000 - $399,999")
			So(features.IncomeBracket(400000), ShouldEqual, "$400,000 - $499,999")
			So(features.IncomeBracket(500000), ShouldEqual, "$500,000+")
			So(features.IncomeBracket(0), ShouldEqual, "<$100,000")
		})

		Convey("And the top bracket is open-ended", func() {
			So(features.IncomeBracket(1e9), ShouldEqual, "$500,000+")
		})
	})
}

func TestPhoneChangeMonths(t *testing.T) {
	Convey("Given days since the last phone change", t, func() {
		days := int64(-91)

		Convey("When the value is present", func() {
			months, err := features.PhoneChangeMonths(&days)

			Convey("Then whole months are returned", func() {
				So(err, ShouldBeNil)
				So(months, ShouldEqual, 3)
			})
		})

		Convey("When the value is absent", func() {
			_, err := features.PhoneChangeMonths(nil)

			Convey("Then it fails unless a default is supplied", func() {
				So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
				So(features.PhoneChangeMonthsOr(nil, -1), ShouldEqual, -1)
				So(features.PhoneChangeMonthsOr(&days, -1), ShouldEqual, 3)
			})
		})
	})
}

func TestDisplayValue(t *testing.T) {
	Convey("Given categorical values with alternatives", t, func() {
		So(features.DisplayValue("Secondary / secondary special"), ShouldEqual, "Secondary")
		So(features.DisplayValue("House / apartment"), ShouldEqual, "House")
		So(features.DisplayValue("Working"), ShouldEqual, "Working")
		So(features.DisplayValue(""), ShouldEqual, "")
	})
}

func TestSummarize(t *testing.T) {
	Convey("Given an ingested client record", t, func() {
		phone := int64(-400)
		rec := model.ClientRecord{
			Identifier:                   100002,
			DaysSinceBirth:               -9461,
			DaysSinceIDPublish:           -2120,
			SameRegisteredAndContactCity: false,
			OrganizationType:             "Business Entity Type 3",
			Gender:                       model.GenderMale,
			OwnsCar:                      false,
			OwnsRealty:                   true,
			TotalIncome:                  202500,
			IncomeType:                   "Working",
			EducationType:                "Secondary / secondary special",
			FamilyStatus:                 "Single / not married",
			HousingType:                  "House / apartment",
			TotalCreditAmount:            406597.5,
			DaysSinceLastPhoneChange:     &phone,
		}

		Convey("When summarizing it", func() {
			p, err := features.Summarize(rec)

			Convey("Then every card value is bucketized", func() {
				So(err, ShouldBeNil)
				So(p.ClientID, ShouldEqual, 100002)
				So(p.Age, ShouldEqual, "20s")
				So(p.Gender, ShouldEqual, "Male")
				So(p.JobField, ShouldEqual, "Other")
				So(p.Income, ShouldEqual, "$200,000 - $299,999")
				So(p.EducationType, ShouldEqual, "Secondary")
				So(p.FamilyStatus, ShouldEqual, "Single")
				So(p.HousingType, ShouldEqual, "House")
				So(p.IDTenure, ShouldEqual, "5-10 years")
				So(p.SameCity, ShouldEqual, "No")
				So(p.OwnsCar, ShouldEqual, "No")
				So(p.OwnsRealty, ShouldEqual, "Yes")
				So(p.TotalCredit, ShouldEqual, "$406,597")
				So(p.PhoneChangeMonths, ShouldNotBeNil)
				So(*p.PhoneChangeMonths, ShouldEqual, 13)
			})
		})

		Convey("When the phone change column is absent", func() {
			rec.DaysSinceLastPhoneChange = nil
			p, err := features.Summarize(rec)

			Convey("Then the card omits it", func() {
				So(err, ShouldBeNil)
				So(p.PhoneChangeMonths, ShouldBeNil)
			})
		})

		Convey("When the record was typed into the prediction form", func() {
			rec.Entered = true
			p, err := features.Summarize(rec)

			Convey("Then the card leaves out the fields the form never collects", func() {
				So(err, ShouldBeNil)
				So(p.Income, ShouldBeEmpty)
				So(p.EducationType, ShouldBeEmpty)
				So(p.IncomeType, ShouldBeEmpty)
				So(p.FamilyStatus, ShouldBeEmpty)
				So(p.HousingType, ShouldBeEmpty)
				So(p.OwnsRealty, ShouldBeEmpty)
				So(p.TotalCredit, ShouldBeEmpty)
				So(p.Age, ShouldEqual, "20s")
				So(p.OwnsCar, ShouldEqual, "No")

				raw, err := json.Marshal(p)
				So(err, ShouldBeNil)
				So(string(raw), ShouldNotContainSubstring, "income")
				So(string(raw), ShouldNotContainSubstring, "total_credit")
			})
		})

		Convey("When the birth delta is not negative", func() {
			rec.DaysSinceBirth = 10
			_, err := features.Summarize(rec)

			Convey("Then summarizing fails", func() {
				So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
			})
		})
	})
}

func TestFormatAmount(t *testing.T) {
	Convey("Given credit amounts", t, func() {
		So(features.FormatAmount(1250000), ShouldEqual, "$1,250,000")
		So(features.FormatAmount(999.99), ShouldEqual, "$999")
		So(features.FormatAmount(0), ShouldEqual, "$0")
		So(features.FormatAmount(math.Floor(45000.7)), ShouldEqual, "$45,000")
	})
}
