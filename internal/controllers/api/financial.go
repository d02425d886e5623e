package api

import (
	"net/http"

	"github.com/district-ledger/backend/internal/aggregate"
	"github.com/district-ledger/backend/internal/httputil"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// FinancialReport is the financial report of one assembly.
type FinancialReport struct {
	Assembly string `json:"assembly" example:"EMMANUEL"`
	Period   string `json:"period" example:"November-2025"` // The period, or "All periods"

	Sunday   aggregate.SundayTotals   `json:"sunday"`
	Midweek  aggregate.ServiceTotals  `json:"midweek"`
	Special  aggregate.ServiceTotals  `json:"special"`
	Tithe    aggregate.TitheTotals    `json:"tithe"`
	Offering aggregate.OfferingTotals `json:"offering"`

	TotalIncome         decimal.Decimal `json:"totalIncome" example:"5000"`
	TotalAttendance     int             `json:"totalAttendance" example:"315"`     // Attendance as counted
	CorrectedAttendance int             `json:"correctedAttendance" example:"225"` // Attendance corrected for people counted in main service and Sunday Bible Study
	TitheShare          decimal.Decimal `json:"titheShare" example:"60"`           // Sunday tithes as percentage of the total income
	IncomePerAttendee   decimal.Decimal `json:"incomePerAttendee" example:"22.22"` // Total income per corrected attendee
}

type FinancialReportResponse struct {
	Success bool            `json:"success" example:"true"`
	Data    FinancialReport `json:"data"`
}

// @Summary		Assembly financial report
// @Description	Returns the totals of all reports of one assembly
// @Tags			Financial reports
// @Produce		json
// @Success		200			{object}	FinancialReportResponse
// @Failure		400			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			assembly	query		string	true	"The assembly"
// @Param			month		query		string	false	"Month name or number"
// @Param			year		query		string	false	"Year"
// @Router			/api/financial-reports [get]
func (co Controller) GetFinancialReport(c *gin.Context) {
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

	if f.AssemblyName() == "" {
		httputil.NewError(c, http.StatusBadRequest, errAssemblyMissing)
		return
	}

	d, err := co.dataset(c.Request.Context(), f)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	s := aggregate.Summarize(d, co.Correction)
	c.JSON(http.StatusOK, FinancialReportResponse{
		Success: true,
		Data: FinancialReport{
			Assembly:            f.AssemblyName(),
			Period:              period(f),
			Sunday:              s.Sunday,
			Midweek:             s.Midweek,
			Special:             s.Special,
			Tithe:               s.Tithe,
			Offering:            s.Offering,
			TotalIncome:         s.TotalIncome,
			TotalAttendance:     s.RawAttendance,
			CorrectedAttendance: s.TotalAttendance,
			TitheShare:          s.TitheShare,
			IncomePerAttendee:   s.IncomePerAttendee,
		},
	})
}
