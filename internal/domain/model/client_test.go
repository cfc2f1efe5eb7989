package model_test

import (
	"errors"
	"testing"

	model "github.com/okian/loanscope/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestParseGender(t *testing.T) {
	convey.Convey("Given gender inputs from the dataset and the form", t, func() {
		convey.Convey("When parsing dataset codes", func() {
			m, okM := model.ParseGender("M")
			f, okF := model.ParseGender("f")

			convey.Convey("Then they map to the display values", func() {
				convey.So(okM, convey.ShouldBeTrue)
				convey.So(okF, convey.ShouldBeTrue)
				convey.So(m, convey.ShouldEqual, model.GenderMale)
				convey.So(f, convey.ShouldEqual, model.GenderFemale)
			})
		})

		convey.Convey("When parsing the dataset placeholder XNA", func() {
			g, ok := model.ParseGender("XNA")

			convey.Convey("Then it is rejected", func() {
				convey.So(ok, convey.ShouldBeFalse)
				convey.So(g.Valid(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("Then codes round-trip to the wire letters", func() {
			convey.So(model.GenderMale.Code(), convey.ShouldEqual, "M")
			convey.So(model.GenderFemale.Code(), convey.ShouldEqual, "F")
		})
	})
}

func TestFieldError(t *testing.T) {
	convey.Convey("Given field errors", t, func() {
		invalid := model.Invalid("DAYS_BIRTH", "must be negative, got %d", 5)
		missing := model.Missing("ORGANIZATION_TYPE")

		convey.Convey("Then they unwrap to their kinds", func() {
			convey.So(errors.Is(invalid, model.ErrInvalidInput), convey.ShouldBeTrue)
			convey.So(errors.Is(invalid, model.ErrMissingField), convey.ShouldBeFalse)
			convey.So(errors.Is(missing, model.ErrMissingField), convey.ShouldBeTrue)
		})

		convey.Convey("And they name the field", func() {
			convey.So(invalid.Error(), convey.ShouldEqual, "invalid input: DAYS_BIRTH: must be negative, got 5")
			convey.So(missing.Error(), convey.ShouldEqual, "missing field: ORGANIZATION_TYPE")

			var fe *model.FieldError
			convey.So(errors.As(missing, &fe), convey.ShouldBeTrue)
			convey.So(fe.Field, convey.ShouldEqual, "ORGANIZATION_TYPE")
		})
	})
}
