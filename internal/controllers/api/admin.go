package api

import (
	"context"
	"net/http"

	"github.com/district-ledger/backend/internal/aggregate"
	"github.com/district-ledger/backend/internal/httputil"
	"github.com/district-ledger/backend/internal/models"
	"github.com/district-ledger/backend/internal/narrative"
	"github.com/district-ledger/backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AssemblyPerformance is the standing of one assembly in the district.
type AssemblyPerformance struct {
	Assembly        string          `json:"assembly" example:"EMMANUEL"`
	TotalIncome     decimal.Decimal `json:"totalIncome" example:"5120"`
	AverageIncome   decimal.Decimal `json:"averageIncome" example:"2560"`  // Income per service report
	IncomeShare     decimal.Decimal `json:"incomeShare" example:"80.16"`   // Percentage of the district income
	TotalAttendance int             `json:"totalAttendance" example:"345"` // Corrected attendance
	Reports         int             `json:"reports" example:"3"`           // Number of service reports
}

// RawData holds the documents the admin report was computed from.
type RawData struct {
	SundayServiceReports  []models.SundayServiceReport  `json:"sundayServiceReports"`
	MidweekServiceReports []models.MidweekServiceReport `json:"midweekServiceReports"`
	SpecialServiceReports []models.SpecialServiceReport `json:"specialServiceReports"`
	TitheReports          []models.TitheReport          `json:"titheReports"`
	OfferingReports       []models.OfferingReport       `json:"offeringReports"`
}

type AdminFinancialData struct {
	TitheSummary         aggregate.TitheTotals     `json:"titheSummary"`
	OfferingSummary      aggregate.OfferingTotals  `json:"offeringSummary"`
	SundayServiceSummary aggregate.SundayTotals    `json:"sundayServiceSummary"`
	MonthlyTrends        []aggregate.PeriodSummary `json:"monthlyTrends"`       // One summary per period, in calendar order
	AssemblyPerformance  []AssemblyPerformance     `json:"assemblyPerformance"` // Assemblies by income, highest first
	RawData              RawData                   `json:"rawData"`
}

type AdminFinancialResponse struct {
	Success     bool                        `json:"success" example:"true"`
	Data        AdminFinancialData          `json:"data"`
	Summary     aggregate.Summary           `json:"summary"`
	PerAssembly []aggregate.AssemblySummary `json:"perAssembly"` // Sorted by assembly name
}

// performance ranks the assemblies by income.
func performance(a narrative.Admin) []AssemblyPerformance {
	ranked := a.Ranked()
	result := make([]AssemblyPerformance, 0, len(ranked))
	for _, s := range ranked {
		result = append(result, AssemblyPerformance{
			Assembly:        s.Assembly,
			TotalIncome:     s.TotalIncome,
			AverageIncome:   s.AverageIncome,
			IncomeShare:     aggregate.Percent(s.TotalIncome, a.Summary.TotalIncome),
			TotalAttendance: s.TotalAttendance,
			Reports:         s.ReportCount,
		})
	}
	return result
}

// @Summary		District financial report
// @Description	Returns the aggregated figures of all reports matching the filter, per assembly and per period
// @Tags			Admin
// @Produce		json
// @Success		200			{object}	AdminFinancialResponse
// @Failure		400			{object}	httputil.HTTPError
// @Failure		401			{object}	httputil.HTTPError
// @Failure		403			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			assembly	query		string	false	"Assembly, all assemblies if not set"
// @Param			month		query		string	false	"Month name or number"
// @Param			year		query		string	false	"Year"
// @Param			startDate	query		string	false	"Earliest submission date"
// @Param			endDate		query		string	false	"Latest submission date"
// @Router			/api/admin/financial-reports [get]
func (co Controller) GetAdminFinancialReports(c *gin.Context) {
	var q QueryFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	f, err := q.filter()
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	d, a, err := co.admin(c.Request.Context(), f)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, AdminFinancialResponse{
		Success: true,
		Data: AdminFinancialData{
			TitheSummary:         a.Summary.Tithe,
			OfferingSummary:      a.Summary.Offering,
			SundayServiceSummary: a.Summary.Sunday,
			MonthlyTrends:        aggregate.ByPeriod(d, co.Correction),
			AssemblyPerformance:  performance(a),
			RawData: RawData{
				SundayServiceReports:  d.Sunday,
				MidweekServiceReports: d.Midweek,
				SpecialServiceReports: d.Special,
				TitheReports:          d.Tithes,
				OfferingReports:       d.Offerings,
			},
		},
		Summary:     a.Summary,
		PerAssembly: a.PerAssembly,
	})
}

// admin loads the dataset for the filter and computes the district report.
func (co Controller) admin(ctx context.Context, f store.Filter) (aggregate.Dataset, narrative.Admin, error) {
	d, err := co.dataset(ctx, f)
	if err != nil {
		return aggregate.Dataset{}, narrative.Admin{}, err
	}

	return d, narrative.Admin{
		Scope:       scope(f),
		Period:      period(f),
		Summary:     aggregate.Summarize(d, co.Correction),
		PerAssembly: aggregate.ByAssembly(d, co.Correction),
	}, nil
}

// DetailedQuery are the query parameters of the detailed report.
type DetailedQuery struct {
	QueryFilter
	Page int `form:"page"` // The page to return, starting at 1
}

type DetailedPagination struct {
	Page  int   `json:"page" example:"1"`
	Limit int   `json:"limit" example:"50"`
	Total int64 `json:"total" example:"31"` // Number of reports matching the filter
	Pages int   `json:"pages" example:"1"`
}

// DetailedSummary covers all reports matching the filter, not only the page.
type DetailedSummary struct {
	Reports              int             `json:"reports" example:"31"`
	Services             int             `json:"services" example:"118"`
	TotalAttendance      int             `json:"totalAttendance" example:"4520"`      // Corrected attendance
	RawAttendance        int             `json:"rawAttendance" example:"5710"`        // Attendance as counted
	AttendanceCorrection int             `json:"attendanceCorrection" example:"1190"` // RawAttendance - TotalAttendance
	OverlapRatio         float64         `json:"overlapRatio" example:"0.75"`
	Tithes               decimal.Decimal `json:"tithes" example:"31000"`
	Offerings            decimal.Decimal `json:"offerings" example:"18000"`
	TotalIncome          decimal.Decimal `json:"totalIncome" example:"52000"`
	AverageIncome        decimal.Decimal `json:"averageIncome" example:"1677.42"` // Income per report
}

type DetailedData struct {
	Reports    []models.SundayServiceReport `json:"reports"`
	Pagination DetailedPagination           `json:"pagination"`
	Summary    DetailedSummary              `json:"summary"`
}

type DetailedResponse struct {
	Success bool         `json:"success" example:"true"`
	Data    DetailedData `json:"data"`
}

// @Summary		Detailed Sunday service reports
// @Description	Returns one page of Sunday service reports and a summary over all reports matching the filter
// @Tags			Admin
// @Produce		json
// @Success		200			{object}	DetailedResponse
// @Failure		400			{object}	httputil.HTTPError
// @Failure		401			{object}	httputil.HTTPError
// @Failure		403			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			assembly	query		string	false	"Assembly, all assemblies if not set"
// @Param			month		query		string	false	"Month name or number"
// @Param			year		query		string	false	"Year"
// @Param			serviceType	query		string	false	"Service type"
// @Param			page		query		int		false	"Page, starting at 1"
// @Param			limit		query		int		false	"Reports per page"
// @Router			/api/admin/reports/detailed [get]
func (co Controller) GetDetailedReports(c *gin.Context) {
	var q DetailedQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	f, err := q.filter()
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	reports, err := co.Store.Sunday.All(c.Request.Context(), f)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	page := max(q.Page, 1)
	limit := store.Page{Limit: q.Limit}.Bounded().Limit
	total := len(reports)

	start := total
	if page-1 < (total+limit-1)/limit {
		start = (page - 1) * limit
	}
	end := min(start+limit, total)

	t := aggregate.SumSunday(reports, co.Correction)
	c.JSON(http.StatusOK, DetailedResponse{
		Success: true,
		Data: DetailedData{
			Reports: reports[start:end],
			Pagination: DetailedPagination{
				Page:  page,
				Limit: limit,
				Total: int64(total),
				Pages: (total + limit - 1) / limit,
			},
			Summary: DetailedSummary{
				Reports:              t.Reports,
				Services:             t.Services,
				TotalAttendance:      t.Attendance,
				RawAttendance:        t.RawAttendance,
				AttendanceCorrection: t.AttendanceCorrection(),
				OverlapRatio:         co.Correction.Overlap,
				Tithes:               t.Tithes,
				Offerings:            t.Offerings,
				TotalIncome:          t.Total,
				AverageIncome:        aggregate.Divide(t.Total, decimal.NewFromInt(int64(t.Reports))),
			},
		},
	})
}
