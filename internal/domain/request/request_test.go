package request_test

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/okian/loanscope/internal/domain/model"
	"github.com/okian/loanscope/internal/domain/request"
	. "github.com/smartystreets/goconvey/convey"
)

var today = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

func sampleRecord() model.ClientRecord {
	return model.ClientRecord{
		Identifier:                   100002,
		DaysSinceBirth:               -9461,
		DaysSinceIDPublish:           -2120,
		SameRegisteredAndContactCity: true,
		OrganizationType:             "Business Entity Type 3",
		CreditScoreSources:           [3]float64{0.083, 0.263, 0.139},
		PropertyScores:               [5]float64{0.972, 0.014, 0.083, 0.022, 0.625},
		Gender:                       model.GenderMale,
		OwnsCar:                      false,
		TotalIncome:                  202500,
	}
}

func sampleEntry() request.ManualEntry {
	return request.ManualEntry{
		ClientID:                     100002,
		BirthDate:                    time.Date(1990, time.January, 1, 0, 0, 0, 0, time.UTC),
		IDPublishDaysAgo:             2120,
		SameRegisteredAndContactCity: true,
		OrganizationType:             "Business Entity Type 3",
		CreditScores:                 &[3]float64{0.5, 0.5, 0.5},
		PropertyScores:               &[5]float64{0.5, 0.5, 0.5, 0.5, 0.5},
		Gender:                       model.GenderFemale,
		OwnsCar:                      true,
	}
}

func wireKeys(req request.ScoringRequest) map[string]any {
	raw, err := json.Marshal(req)
	So(err, ShouldBeNil)
	var m map[string]any
	So(json.Unmarshal(raw, &m), ShouldBeNil)
	return m
}

func TestFromRecord(t *testing.T) {
	Convey("Given an ingested client record", t, func() {
		rec := sampleRecord()

		Convey("When assembling the scoring request", func() {
			req, err := request.FromRecord(rec)

			Convey("Then fields are copied verbatim", func() {
				So(err, ShouldBeNil)
				So(req.ClientID, ShouldEqual, 100002)
				So(req.DaysBirth, ShouldEqual, -9461)
				So(req.DaysIDPublish, ShouldEqual, -2120)
				So(req.RegCityNotLiveCity, ShouldEqual, 1)
				So(req.ExtSource2, ShouldEqual, 0.263)
				So(req.YearsBuildMedi, ShouldEqual, 0.625)
				So(req.CodeGender, ShouldEqual, "M")
				So(req.FlagOwnCar, ShouldEqual, "N")
			})

			Convey("And the payload carries exactly the 15 wire names", func() {
				m := wireKeys(req)
				So(len(m), ShouldEqual, 15)
				for _, name := range request.FieldNames() {
					_, ok := m[name]
					So(ok, ShouldBeTrue)
				}
			})

			Convey("And the wire names keep their contract order", func() {
				raw, _ := json.Marshal(req)
				So(string(raw), ShouldStartWith, `{"SK_ID_CURR":100002,"DAYS_BIRTH":-9461,"DAYS_ID_PUBLISH":-2120,"REG_CITY_NOT_LIVE_CITY":1,"ORGANIZATION_TYPE"`)
				So(string(raw), ShouldEndWith, `"CODE_GENDER":"M","FLAG_OWN_CAR":"N"}`)
			})
		})

		Convey("When a required field is absent", func() {
			noID := sampleRecord()
			noID.Identifier = 0
			noOrg := sampleRecord()
			noOrg.OrganizationType = "  "
			noGender := sampleRecord()
			noGender.Gender = ""
			nanScore := sampleRecord()
			nanScore.PropertyScores[3] = math.NaN()
			infScore := sampleRecord()
			infScore.CreditScoreSources[0] = math.Inf(1)

			Convey("Then assembly fails with missing field naming the wire field", func() {
				for name, r := range map[string]model.ClientRecord{
					request.FieldClientID:            noID,
					request.FieldOrganizationType:    noOrg,
					request.FieldCodeGender:          noGender,
					request.FieldLivingApartmentMode: nanScore,
					request.FieldExtSource1:          infScore,
				} {
					_, err := request.FromRecord(r)
					So(errors.Is(err, model.ErrMissingField), ShouldBeTrue)
					var fe *model.FieldError
					So(errors.As(err, &fe), ShouldBeTrue)
					So(fe.Field, ShouldEqual, name)
				}
			})
		})

		Convey("When a day delta has the wrong sign", func() {
			born := sampleRecord()
			born.DaysSinceBirth = 9461
			published := sampleRecord()
			published.DaysSinceIDPublish = 30

			Convey("Then assembly fails with invalid input", func() {
				_, errBirth := request.FromRecord(born)
				_, errPub := request.FromRecord(published)
				So(errors.Is(errBirth, model.ErrInvalidInput), ShouldBeTrue)
				So(errors.Is(errPub, model.ErrInvalidInput), ShouldBeTrue)
			})
		})
	})
}

func TestFromManualEntry(t *testing.T) {
	Convey("Given a manually entered profile", t, func() {
		entry := sampleEntry()

		Convey("When assembling the scoring request", func() {
			req, err := request.FromManualEntry(entry, today)

			Convey("Then offsets are converted to negative day counts", func() {
				So(err, ShouldBeNil)
				So(req.DaysBirth, ShouldEqual, -12492)
				So(req.DaysIDPublish, ShouldEqual, -2120)
				So(req.CodeGender, ShouldEqual, "F")
				So(req.FlagOwnCar, ShouldEqual, "Y")
				So(req.RegCityNotLiveCity, ShouldEqual, 1)
			})

			Convey("And the payload shape matches the record-lookup path", func() {
				rec, recErr := entry.Record(today)
				So(recErr, ShouldBeNil)
				fromRecord, recErr := request.FromRecord(rec)
				So(recErr, ShouldBeNil)
				So(fromRecord, ShouldResemble, req)

				lookup, _ := request.FromRecord(sampleRecord())
				a, b := wireKeys(req), wireKeys(lookup)
				So(len(a), ShouldEqual, len(b))
				for k := range a {
					_, ok := b[k]
					So(ok, ShouldBeTrue)
				}
			})
		})

		Convey("When an ID was issued today", func() {
			entry.IDPublishDaysAgo = 0
			req, err := request.FromManualEntry(entry, today)

			Convey("Then the delta is zero", func() {
				So(err, ShouldBeNil)
				So(req.DaysIDPublish, ShouldEqual, 0)
			})
		})

		Convey("When the client id is outside the 6-digit range", func() {
			entry.ClientID = 99999
			_, err := request.FromManualEntry(entry, today)

			Convey("Then it fails with invalid input", func() {
				So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
			})
		})

		Convey("When required fields are left blank", func() {
			noOrg := sampleEntry()
			noOrg.OrganizationType = ""
			noBirth := sampleEntry()
			noBirth.BirthDate = time.Time{}
			noID := sampleEntry()
			noID.ClientID = 0

			Convey("Then it fails with missing field", func() {
				for _, e := range []request.ManualEntry{noOrg, noBirth, noID} {
					_, err := request.FromManualEntry(e, today)
					So(errors.Is(err, model.ErrMissingField), ShouldBeTrue)
				}
			})
		})

		Convey("When a score array is left out", func() {
			noCredit := sampleEntry()
			noCredit.CreditScores = nil
			noProperty := sampleEntry()
			noProperty.PropertyScores = nil

			Convey("Then it fails with missing field naming the array", func() {
				_, err := request.FromManualEntry(noCredit, today)
				So(errors.Is(err, model.ErrMissingField), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "credit_scores")

				_, err = request.FromManualEntry(noProperty, today)
				So(errors.Is(err, model.ErrMissingField), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "property_scores")
			})
		})

		Convey("When values fall outside their domains", func() {
			badOrg := sampleEntry()
			badOrg.OrganizationType = "Space Exploration"
			badScore := sampleEntry()
			badScore.CreditScores[1] = 1.2
			badDays := sampleEntry()
			badDays.IDPublishDaysAgo = -5
			future := sampleEntry()
			future.BirthDate = today.AddDate(0, 0, 1)
			badGender := sampleEntry()
			badGender.Gender = "Other"

			Convey("Then each fails with invalid input", func() {
				for _, e := range []request.ManualEntry{badOrg, badScore, badDays, future, badGender} {
					_, err := request.FromManualEntry(e, today)
					So(errors.Is(err, model.ErrInvalidInput), ShouldBeTrue)
				}
			})
		})
	})
}
