package gaugecli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/okian/loanscope/internal/domain/interpret"
	"github.com/okian/loanscope/internal/domain/types"
)

// One cell per two percentage points, both ends included.
const (
	gaugeCells = 51
	cellSpan   = 100.0 / (gaugeCells - 1)
)

// Render prints the card, the score and the gauge for a.
func Render(w io.Writer, a types.Assessment) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	p := a.Profile
	rows := [][2]string{
		{"Client number", fmt.Sprint(a.ClientID)},
		{"Age", p.Age},
		{"Gender", p.Gender},
		{"Job field", p.JobField},
		{"Income", p.Income},
		{"Education", p.EducationType},
		{"Income type", p.IncomeType},
		{"Family status", p.FamilyStatus},
		{"Housing", p.HousingType},
		{"ID document age", p.IDTenure},
		{"Same city", p.SameCity},
		{"Owns a car", p.OwnsCar},
		{"Owns realty", p.OwnsRealty},
		{"Total credit", p.TotalCredit},
	}
	if p.PhoneChangeMonths != nil {
		rows = append(rows, [2]string{"Months since phone change", fmt.Sprint(*p.PhoneChangeMonths)})
	}
	for _, r := range rows {
		if r[1] == "" {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	s := a.Score
	var b strings.Builder
	fmt.Fprintf(&b, "\nProbability of loan approval: %s (%s)\n", s.Display(), strings.ReplaceAll(string(s.Tier), "_", " "))
	b.WriteString(tickLine(s.Ticks) + "\n")
	b.WriteString(gaugeBar(s) + "\n")
	b.WriteString(markerLine(s.Threshold.Value) + "\n")
	b.WriteString(s.Message + "\n\nBands:\n")
	for _, band := range s.Bands {
		fmt.Fprintf(&b, "  %5.1f - %5.1f  %s\n", band.Lower, band.Upper, band.Color)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// gaugeBar draws filled cells up to the percentage, with '|' on dividers.
func gaugeBar(r interpret.Result) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < gaugeCells; i++ {
		at := float64(i) * cellSpan
		switch {
		case isDivider(r.Bands, at):
			b.WriteByte('|')
		case at <= r.ProbabilityPercent:
			b.WriteByte('#')
		default:
			b.WriteByte('.')
		}
	}
	b.WriteByte(']')
	return b.String()
}

func isDivider(bands []interpret.Band, at float64) bool {
	for _, band := range bands {
		if band.Color == interpret.ColorDivider && at >= band.Lower && at <= band.Upper {
			return true
		}
	}
	return false
}

// cell maps a percentage to its column, counting the opening bracket.
func cell(pct float64) int {
	return 1 + int(pct/cellSpan+0.5)
}

func tickLine(ticks []interpret.Tick) string {
	line := []byte(strings.Repeat(" ", gaugeCells+6))
	for _, t := range ticks {
		copy(line[cell(t.Value):], t.Label)
	}
	return strings.TrimRight(string(line), " ")
}

func markerLine(pct float64) string {
	return strings.Repeat(" ", cell(pct)) + "^"
}
