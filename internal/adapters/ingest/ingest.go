// Package ingest turns an uploaded client dataset into ClientRecords.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/okian/loanscope/internal/domain/model"
	"github.com/okian/loanscope/internal/domain/request"
)

// Descriptive columns loaded next to the 15 scoring fields.
const (
	ColumnOwnRealty       = "FLAG_OWN_REALTY"
	ColumnIncomeTotal     = "AMT_INCOME_TOTAL"
	ColumnIncomeType      = "NAME_INCOME_TYPE"
	ColumnEducationType   = "NAME_EDUCATION_TYPE"
	ColumnFamilyStatus    = "NAME_FAMILY_STATUS"
	ColumnHousingType     = "NAME_HOUSING_TYPE"
	ColumnCredit          = "AMT_CREDIT"
	ColumnLastPhoneChange = "DAYS_LAST_PHONE_CHANGE"
)

// ctxCheckEvery is how many rows are read between context checks.
const ctxCheckEvery = 1024

var infoColumns = []string{
	ColumnOwnRealty, ColumnIncomeTotal, ColumnIncomeType, ColumnEducationType,
	ColumnFamilyStatus, ColumnHousingType, ColumnCredit,
}

// Columns returns the required columns; DAYS_LAST_PHONE_CHANGE is optional.
func Columns() []string {
	return append(request.FieldNames(), infoColumns...)
}

// Dataset is the result of one upload.
type Dataset struct {
	Records []model.ClientRecord
	// Dropped counts rows with a missing or unparsable required value.
	Dropped int
	// Duplicates counts rows whose identifier was already seen; the first wins.
	Duplicates int
}

// Parse reads a CSV with a header row. Extra columns are ignored and column
// order is free. Rows that cannot produce a complete record are dropped and
// counted, never half-filled.
func Parse(ctx context.Context, r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
	}
	idx, err := indexHeader(header)
	if err != nil {
		return nil, err
	}

	ds := &Dataset{}
	seen := make(map[int64]struct{})
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedCSV, err)
		}
		rec, ok := idx.record(row)
		if !ok {
			ds.Dropped++
			continue
		}
		if _, dup := seen[rec.Identifier]; dup {
			ds.Duplicates++
			continue
		}
		seen[rec.Identifier] = struct{}{}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

type columnIndex map[string]int

func indexHeader(header []string) (columnIndex, error) {
	idx := make(columnIndex, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, dup := idx[h]; !dup {
			idx[h] = i
		}
	}
	var missing []string
	for _, c := range Columns() {
		if _, ok := idx[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return idx, nil
}

// rowReader accumulates the first failure so record stays linear.
type rowReader struct {
	idx columnIndex
	row []string
	ok  bool
}

func (r *rowReader) raw(col string) string {
	i, present := r.idx[col]
	if !present || i >= len(r.row) {
		r.ok = false
		return ""
	}
	v := strings.TrimSpace(r.row[i])
	if v == "" || strings.EqualFold(v, "nan") || strings.EqualFold(v, "na") {
		r.ok = false
	}
	return v
}

func (r *rowReader) float(col string) float64 {
	v := r.raw(col)
	if !r.ok {
		return 0
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		r.ok = false
		return 0
	}
	return f
}

// integer accepts "123" and the "123.0" spelling that float-typed exports produce.
func (r *rowReader) integer(col string) int64 {
	f := r.float(col)
	if !r.ok {
		return 0
	}
	if f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		r.ok = false
		return 0
	}
	return int64(f)
}

func (r *rowReader) text(col string) string {
	return r.raw(col)
}

func (r *rowReader) flag(col string) bool {
	switch strings.ToUpper(r.raw(col)) {
	case "Y", "1", "TRUE", "YES":
		return true
	case "N", "0", "FALSE", "NO":
		return false
	}
	r.ok = false
	return false
}

func (idx columnIndex) record(row []string) (model.ClientRecord, bool) {
	r := &rowReader{idx: idx, row: row, ok: true}

	rec := model.ClientRecord{
		Identifier:         r.integer(request.FieldClientID),
		DaysSinceBirth:     r.integer(request.FieldDaysBirth),
		DaysSinceIDPublish: r.integer(request.FieldDaysIDPublish),
		// A dataset value of 1 means registered and contact city match.
		SameRegisteredAndContactCity: r.flag(request.FieldRegCityNotLiveCity),
		OrganizationType:             r.text(request.FieldOrganizationType),
		CreditScoreSources: [3]float64{
			r.float(request.FieldExtSource1),
			r.float(request.FieldExtSource2),
			r.float(request.FieldExtSource3),
		},
		PropertyScores: [5]float64{
			model.PropertyYearsBeginExpluatation: r.float(request.FieldYearsBeginExpluat),
			model.PropertyCommonArea:             r.float(request.FieldCommonAreaMode),
			model.PropertyFloorsMax:              r.float(request.FieldFloorsMaxMode),
			model.PropertyLivingApartments:       r.float(request.FieldLivingApartmentMode),
			model.PropertyYearsBuild:             r.float(request.FieldYearsBuildMedi),
		},
		OwnsCar:           r.flag(request.FieldFlagOwnCar),
		OwnsRealty:        r.flag(ColumnOwnRealty),
		TotalIncome:       r.float(ColumnIncomeTotal),
		IncomeType:        r.text(ColumnIncomeType),
		EducationType:     r.text(ColumnEducationType),
		FamilyStatus:      r.text(ColumnFamilyStatus),
		HousingType:       r.text(ColumnHousingType),
		TotalCreditAmount: r.float(ColumnCredit),
	}
	gender, known := model.ParseGender(r.raw(request.FieldCodeGender))
	if !known {
		r.ok = false
	}
	rec.Gender = gender

	if !r.ok || rec.Identifier <= 0 || rec.DaysSinceBirth >= 0 || rec.DaysSinceIDPublish > 0 {
		return model.ClientRecord{}, false
	}

	if i, present := idx[ColumnLastPhoneChange]; present && i < len(row) {
		opt := &rowReader{idx: idx, row: row, ok: true}
		if days := opt.integer(ColumnLastPhoneChange); opt.ok {
			rec.DaysSinceLastPhoneChange = &days
		}
	}
	return rec, true
}
