package api

import (
	"errors"
	"net/http"

	"github.com/district-ledger/backend/internal/aggregate"
	"github.com/district-ledger/backend/internal/httputil"
	"github.com/district-ledger/backend/internal/models"
	"github.com/district-ledger/backend/internal/narrative"
	"github.com/district-ledger/backend/internal/store"
	"github.com/district-ledger/backend/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type NarrativeReportRequest struct {
	Assembly string                   `json:"assembly" example:"EMMANUEL"`
	Month    string                   `json:"month" example:"November-2025"`
	Data     map[string]models.Amount `json:"data" swaggertype:"object,number"` // Label to figure
}

type NarrativeReportResponse struct {
	Success  bool               `json:"success" example:"true"`
	Report   string             `json:"report"`
	Metadata narrative.Metadata `json:"metadata"`
}

// @Summary		Narrative report
// @Description	Writes a narrative report on a set of labelled figures. When no language model
// @Description	is available, a report is built from the figures.
// @Tags			Narrative reports
// @Accept		json
// @Produce		json
// @Success		200		{object}	NarrativeReportResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			request	body		NarrativeReportRequest	true	"Figures"
// @Router			/api/ai/report [post]
func (co Controller) CreateNarrativeReport(c *gin.Context) {
	var r NarrativeReportRequest
	if err := httputil.BindData(c, &r); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	data := make(map[string]decimal.Decimal, len(r.Data))
	for label, v := range r.Data {
		data[label] = v.Decimal
	}

	report, meta, err := co.Narrator.Narrate(c.Request.Context(), narrative.Report{
		Assembly: assemblyLabel(r.Assembly),
		Month:    monthLabel(r.Month),
		Data:     data,
	})
	if err != nil {
		httputil.NewError(c, http.StatusInternalServerError, store.ErrGeneral)
		return
	}

	c.JSON(http.StatusOK, NarrativeReportResponse{Success: true, Report: report, Metadata: meta})
}

type FinancialTotalsRequest struct {
	Tithes                  models.Amount `json:"tithes" swaggertype:"number" example:"3000"`
	Offerings               models.Amount `json:"offerings" swaggertype:"number" example:"2000"`
	SpecialOfferings        models.Amount `json:"specialOfferings" swaggertype:"number"`
	MidweekOfferings        models.Amount `json:"midweekOfferings" swaggertype:"number"`
	SpecialServiceOfferings models.Amount `json:"specialServiceOfferings" swaggertype:"number"`
	TotalIncome             models.Amount `json:"totalIncome" swaggertype:"number" example:"5000"` // Computed from the other figures when not set
	Attendance              models.Count  `json:"attendance" swaggertype:"integer" example:"240"`
}

type FinancialNarrativeRequest struct {
	Assembly string                 `json:"assembly" example:"EMMANUEL"`
	Month    string                 `json:"month" example:"November-2025"`
	Totals   FinancialTotalsRequest `json:"totals"`
}

type FinancialNarrativeData struct {
	Report string `json:"report"`
}

type FinancialNarrativeResponse struct {
	Success         bool                   `json:"success" example:"true"`
	FormattedReport string                 `json:"formatted_report"`
	Data            FinancialNarrativeData `json:"data"`
	Metadata        narrative.Metadata     `json:"metadata"`
}

// @Summary		Financial narrative report
// @Description	Writes the financial report of an assembly from the totals that are sent
// @Tags			Narrative reports
// @Accept		json
// @Produce		json
// @Success		200		{object}	FinancialNarrativeResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			request	body		FinancialNarrativeRequest	true	"Totals"
// @Router			/api/ai/financial-report [post]
// @Router			/api/generate/financial-report [post]
func (co Controller) CreateFinancialNarrative(c *gin.Context) {
	var r FinancialNarrativeRequest
	if err := httputil.BindData(c, &r); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	totals := narrative.FinancialTotals{
		Tithes:                  r.Totals.Tithes.Decimal,
		Offerings:               r.Totals.Offerings.Decimal,
		SpecialOfferings:        r.Totals.SpecialOfferings.Decimal,
		MidweekOfferings:        r.Totals.MidweekOfferings.Decimal,
		SpecialServiceOfferings: r.Totals.SpecialServiceOfferings.Decimal,
		TotalIncome:             r.Totals.TotalIncome.Decimal,
		Attendance:              int(r.Totals.Attendance),
	}
	totals.Complete()

	report, meta, err := co.Narrator.Narrate(c.Request.Context(), narrative.Financial{
		Assembly: assemblyLabel(r.Assembly),
		Month:    monthLabel(r.Month),
		Totals:   totals,
	})
	if err != nil {
		httputil.NewError(c, http.StatusInternalServerError, store.ErrGeneral)
		return
	}

	c.JSON(http.StatusOK, FinancialNarrativeResponse{
		Success:         true,
		FormattedReport: report,
		Data:            FinancialNarrativeData{Report: report},
		Metadata:        meta,
	})
}

// AdminNarrativeRequest selects the documents of the district report.
// All fields are optional.
type AdminNarrativeRequest struct {
	Assembly string `json:"assembly" example:"EMMANUEL"`
	Month    string `json:"month" example:"November"`
	Year     string `json:"year" example:"2025"`
}

type AdminNarrativeData struct {
	Report  string            `json:"report"`
	Summary aggregate.Summary `json:"summary"`
}

type AdminNarrativeResponse struct {
	Success  bool               `json:"success" example:"true"`
	Data     AdminNarrativeData `json:"data"`
	Metadata narrative.Metadata `json:"metadata"`
}

// @Summary		District narrative report
// @Description	Computes the district report from the stored documents and writes it as narrative
// @Tags			Admin
// @Accept		json
// @Produce		json
// @Success		200		{object}	AdminNarrativeResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		403		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			request	body		AdminNarrativeRequest	false	"Selection"
// @Router			/api/admin/ai/financial-report [post]
func (co Controller) CreateAdminNarrative(c *gin.Context) {
	var r AdminNarrativeRequest
	if err := httputil.BindData(c, &r); err != nil && !errors.Is(err, httputil.ErrRequestBodyEmpty) {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	f, err := QueryFilter{Assembly: r.Assembly, Month: r.Month, Year: r.Year}.filter()
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	_, a, err := co.admin(c.Request.Context(), f)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	report, meta, err := co.Narrator.Narrate(c.Request.Context(), a)
	if err != nil {
		httputil.NewError(c, http.StatusInternalServerError, store.ErrGeneral)
		return
	}

	c.JSON(http.StatusOK, AdminNarrativeResponse{
		Success:  true,
		Data:     AdminNarrativeData{Report: report, Summary: a.Summary},
		Metadata: meta,
	})
}

// assemblyLabel returns the canonical assembly name, or a placeholder.
func assemblyLabel(s string) string {
	if name := types.AssemblyName(s); name != "" {
		return name
	}
	return "Unknown assembly"
}

// monthLabel returns the canonical period if s is one, s otherwise.
func monthLabel(s string) string {
	if p, err := types.ParsePeriod(s); err == nil {
		return p.String()
	}

	if s == "" {
		return "Unknown period"
	}
	return s
}
