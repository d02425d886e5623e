package api_test

import (
	"context"
	"errors"
	"net/http"

	"github.com/district-ledger/backend/internal/controllers/api"
	"github.com/district-ledger/backend/internal/narrative"
	"github.com/district-ledger/backend/test"
)

type generator struct {
	text   string
	err    error
	prompt string
}

func (g *generator) Name() string  { return "fake" }
func (g *generator) Model() string { return "fake-1" }

func (g *generator) Generate(_ context.Context, _, prompt string) (string, error) {
	g.prompt = prompt
	return g.text, g.err
}

func financialBody() map[string]any {
	return map[string]any{
		"assembly": "emmanuel",
		"month":    "november 2025",
		"totals": map[string]any{
			"tithes":     3000,
			"offerings":  "2000",
			"attendance": "240",
			"vigil":      "ignored",
		},
	}
}

func (suite *TestSuiteStandard) TestFinancialNarrativeFallback() {
	for _, path := range []string{"ai/financial-report", "generate/financial-report"} {
		suite.Run(path, func() {
			r := suite.request(http.MethodPost, "http://example.com/api/"+path, financialBody())
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

			var response api.FinancialNarrativeResponse
			test.DecodeResponse(suite.T(), &r, &response)

			suite.Assert().True(response.Success)
			suite.Assert().Equal(narrative.SourceFallback, response.Metadata.Source)
			suite.Assert().NotEmpty(response.Metadata.FallbackReason)
			suite.Assert().Equal(response.FormattedReport, response.Data.Report)
			suite.Assert().Contains(response.FormattedReport, "Financial report for EMMANUEL, November-2025")
			suite.Assert().Contains(response.FormattedReport, "Total income: 5000.00")
			suite.Assert().Contains(response.FormattedReport, "Tithes: 3000.00 (60.00%)")
			suite.Assert().Contains(response.FormattedReport, "Attendance: 240")
		})
	}
}

func (suite *TestSuiteStandard) TestFinancialNarrativeGeneratorFails() {
	suite.controller.Narrator = narrative.New(&generator{err: errors.New("quota exceeded")}, 0)

	r := suite.request(http.MethodPost, "http://example.com/api/ai/financial-report", financialBody())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.FinancialNarrativeResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Success)
	suite.Assert().Equal(narrative.SourceFallback, response.Metadata.Source)
	suite.Assert().Contains(response.Metadata.FallbackReason, "quota exceeded")
	suite.Assert().Contains(response.FormattedReport, "Total income: 5000.00")
}

func (suite *TestSuiteStandard) TestFinancialNarrativeGenerated() {
	g := &generator{text: "  EMMANUEL had a strong November.  "}
	suite.controller.Narrator = narrative.New(g, 0)

	r := suite.request(http.MethodPost, "http://example.com/api/generate/financial-report", financialBody())
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.FinancialNarrativeResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("EMMANUEL had a strong November.", response.FormattedReport)
	suite.Assert().Equal("fake", response.Metadata.Source)
	suite.Assert().Equal("fake-1", response.Metadata.Model)
	suite.Assert().Empty(response.Metadata.FallbackReason)
	suite.Assert().Contains(g.prompt, `"totalIncome": "5000"`, "The prompt must carry the computed total")
}

func (suite *TestSuiteStandard) TestNarrativeReport() {
	r := suite.request(http.MethodPost, "http://example.com/api/ai/report", map[string]any{
		"assembly": "Grace",
		"month":    "2025-10",
		"data":     map[string]any{"Welfare": "12.5", "Tithes": 900, "Broken": "n/a"},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.NarrativeReportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Success)
	suite.Assert().Equal(narrative.SourceFallback, response.Metadata.Source)
	suite.Assert().Contains(response.Report, "Report for GRACE, October-2025")
	suite.Assert().Contains(response.Report, "Broken: 0.00\nTithes: 900.00\nWelfare: 12.50")
}

func (suite *TestSuiteStandard) TestNarrativeReportEmptyBody() {
	for _, path := range []string{"ai/report", "ai/financial-report"} {
		r := suite.request(http.MethodPost, "http://example.com/api/"+path, "")
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestAdminNarrative() {
	suite.seed()

	r := suite.request(http.MethodPost, "http://example.com/api/admin/ai/financial-report", map[string]any{"month": "November", "year": "2025"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.AdminNarrativeResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Success)
	suite.Assert().Equal(narrative.SourceFallback, response.Metadata.Source)
	suite.Assert().Contains(response.Data.Report, "District financial report: All assemblies, November-2025")
	suite.Assert().Contains(response.Data.Report, "Total income: 5160.00")
	suite.Assert().Contains(response.Data.Report, "- EMMANUEL: 5120.00")
	suite.Assert().Equal("5160", response.Data.Summary.TotalIncome.String())
}

func (suite *TestSuiteStandard) TestAdminNarrativeWithoutBody() {
	suite.seed()

	r := suite.request(http.MethodPost, "http://example.com/api/admin/ai/financial-report", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.AdminNarrativeResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Contains(response.Data.Report, "All assemblies, All periods")
	suite.Assert().Equal("6385", response.Data.Summary.TotalIncome.String())
}

func (suite *TestSuiteStandard) TestAdminNarrativeInvalidSelection() {
	r := suite.request(http.MethodPost, "http://example.com/api/admin/ai/financial-report", map[string]any{"year": "twenty"})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
}
