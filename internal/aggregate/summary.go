package aggregate

import (
	"github.com/district-ledger/backend/internal/models"
	"github.com/district-ledger/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Dataset holds the documents a report is computed from.
type Dataset struct {
	Sunday    []models.SundayServiceReport
	Midweek   []models.MidweekServiceReport
	Special   []models.SpecialServiceReport
	Tithes    []models.TitheReport
	Offerings []models.OfferingReport
}

// Summary is the aggregate of a Dataset.
//
// Income is the income recorded in services: the Sunday service total,
// midweek offerings and special service offerings. Tithe and offering
// reports are itemizations and reported separately.
type Summary struct {
	Sunday   SundayTotals   `json:"sunday"`
	Midweek  ServiceTotals  `json:"midweek"`
	Special  ServiceTotals  `json:"special"`
	Tithe    TitheTotals    `json:"tithe"`
	Offering OfferingTotals `json:"offering"`

	SundayIncome  decimal.Decimal `json:"sundayIncome"`
	MidweekIncome decimal.Decimal `json:"midweekIncome"`
	SpecialIncome decimal.Decimal `json:"specialIncome"`
	TotalIncome   decimal.Decimal `json:"totalIncome"` // Sunday + midweek + special income

	TotalAttendance      int     `json:"totalAttendance"`      // Corrected Sunday attendance plus midweek and special service attendance
	RawAttendance        int     `json:"rawAttendance"`        // TotalAttendance without correction
	AttendanceCorrection int     `json:"attendanceCorrection"` // RawAttendance - TotalAttendance
	OverlapRatio         float64 `json:"overlapRatio"`         // Ratio used for the correction

	ReportCount       int             `json:"reportCount"`       // Number of service reports
	AverageIncome     decimal.Decimal `json:"averageIncome"`     // TotalIncome per service report
	TitheShare        decimal.Decimal `json:"titheShare"`        // Sunday tithes as percentage of TotalIncome
	IncomePerAttendee decimal.Decimal `json:"incomePerAttendee"` // TotalIncome per corrected attendee
}

// Summarize folds the whole dataset.
func Summarize(d Dataset, c Correction) Summary {
	s := Summary{
		Sunday:       SumSunday(d.Sunday, c),
		Midweek:      SumMidweek(d.Midweek),
		Special:      SumSpecial(d.Special),
		Tithe:        SumTithe(d.Tithes),
		Offering:     SumOffering(d.Offerings),
		OverlapRatio: c.Overlap,
	}

	s.SundayIncome = s.Sunday.Total
	s.MidweekIncome = s.Midweek.Offering
	s.SpecialIncome = s.Special.Offering
	s.TotalIncome = decimal.Sum(s.SundayIncome, s.MidweekIncome, s.SpecialIncome)

	s.TotalAttendance = s.Sunday.Attendance + s.Midweek.Attendance + s.Special.Attendance
	s.RawAttendance = s.Sunday.RawAttendance + s.Midweek.Attendance + s.Special.Attendance
	s.AttendanceCorrection = s.RawAttendance - s.TotalAttendance

	s.ReportCount = s.Sunday.Reports + s.Midweek.Reports + s.Special.Reports
	s.AverageIncome = Divide(s.TotalIncome, decimal.NewFromInt(int64(s.ReportCount)))
	s.TitheShare = Percent(s.Sunday.Tithes, s.TotalIncome)
	s.IncomePerAttendee = Divide(s.TotalIncome, decimal.NewFromInt(int64(s.TotalAttendance)))

	return s
}

// AssemblySummary is the summary of one assembly.
type AssemblySummary struct {
	Assembly string `json:"assembly" example:"EMMANUEL"`
	Summary
}

// ByAssembly summarizes the documents of each assembly separately.
// The result is sorted by assembly name.
func ByAssembly(d Dataset, c Correction) []AssemblySummary {
	groups := d.split(func(h models.Header) string { return h.Assembly })

	result := make([]AssemblySummary, 0, len(groups))
	for assembly, group := range groups {
		result = append(result, AssemblySummary{Assembly: assembly, Summary: Summarize(*group, c)})
	}

	slices.SortFunc(result, func(a, b AssemblySummary) int {
		switch {
		case a.Assembly < b.Assembly:
			return -1
		case a.Assembly > b.Assembly:
			return 1
		}
		return 0
	})
	return result
}

// PeriodSummary is the summary of one period.
type PeriodSummary struct {
	Period types.Period `json:"month" example:"November-2025" swaggertype:"string"`
	Summary
}

// ByPeriod summarizes the documents of each period separately.
// The result is in calendar order.
func ByPeriod(d Dataset, c Correction) []PeriodSummary {
	groups := d.split(func(h models.Header) string { return h.Period.String() })

	result := make([]PeriodSummary, 0, len(groups))
	for period, group := range groups {
		result = append(result, PeriodSummary{Period: types.Period(period), Summary: Summarize(*group, c)})
	}

	slices.SortFunc(result, func(a, b PeriodSummary) int {
		switch {
		case a.Period.Before(b.Period):
			return -1
		case b.Period.Before(a.Period):
			return 1
		case a.Period < b.Period:
			// Invalid periods sort last, by name
			return -1
		case a.Period > b.Period:
			return 1
		}
		return 0
	})
	return result
}

// split groups all documents by key.
func (d Dataset) split(key func(models.Header) string) map[string]*Dataset {
	groups := make(map[string]*Dataset)
	group := func(h models.Header) *Dataset {
		k := key(h)
		g, ok := groups[k]
		if !ok {
			g = &Dataset{}
			groups[k] = g
		}
		return g
	}

	for _, r := range d.Sunday {
		g := group(r.Header)
		g.Sunday = append(g.Sunday, r)
	}

	for _, r := range d.Midweek {
		g := group(r.Header)
		g.Midweek = append(g.Midweek, r)
	}

	for _, r := range d.Special {
		g := group(r.Header)
		g.Special = append(g.Special, r)
	}

	for _, r := range d.Tithes {
		g := group(r.Header)
		g.Tithes = append(g.Tithes, r)
	}

	for _, r := range d.Offerings {
		g := group(r.Header)
		g.Offerings = append(g.Offerings, r)
	}

	return groups
}
