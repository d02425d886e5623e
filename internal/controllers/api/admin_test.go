package api_test

import (
	"net/http"

	"github.com/district-ledger/backend/internal/controllers/api"
	"github.com/district-ledger/backend/internal/types"
	"github.com/district-ledger/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestAdminFinancialReports() {
	suite.seed()

	r := suite.request(http.MethodGet, "http://example.com/api/admin/financial-reports", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.AdminFinancialResponse
	test.DecodeResponse(suite.T(), &r, &response)

	s := response.Summary
	suite.Assert().True(response.Success)
	suite.Assert().True(decimal.NewFromInt(6385).Equal(s.TotalIncome), s.TotalIncome.String())
	suite.Assert().True(decimal.Sum(s.SundayIncome, s.MidweekIncome, s.SpecialIncome).Equal(s.TotalIncome))

	perAssembly := decimal.Zero
	for _, a := range response.PerAssembly {
		perAssembly = perAssembly.Add(a.TotalIncome)
	}
	suite.Assert().True(perAssembly.Equal(s.TotalIncome), "The income of all assemblies must add up to the total")

	suite.Require().Len(response.PerAssembly, 2)
	suite.Assert().Equal("EMMANUEL", response.PerAssembly[0].Assembly)
	suite.Assert().Equal("GRACE", response.PerAssembly[1].Assembly)

	data := response.Data
	suite.Assert().True(decimal.NewFromInt(75).Equal(data.TitheSummary.Total))
	suite.Assert().True(decimal.NewFromInt(3300).Equal(data.SundayServiceSummary.Tithes), data.SundayServiceSummary.Tithes.String())

	suite.Require().Len(data.MonthlyTrends, 2)
	suite.Assert().Equal(types.Period("October-2025"), data.MonthlyTrends[0].Period)
	suite.Assert().Equal(types.Period("November-2025"), data.MonthlyTrends[1].Period)

	suite.Require().Len(data.AssemblyPerformance, 2)
	suite.Assert().Equal("EMMANUEL", data.AssemblyPerformance[0].Assembly)
	suite.Assert().Equal("80.19", data.AssemblyPerformance[0].IncomeShare.StringFixed(2))

	suite.Assert().Len(data.RawData.SundayServiceReports, 2)
	suite.Assert().Len(data.RawData.MidweekServiceReports, 2)
	suite.Assert().Len(data.RawData.SpecialServiceReports, 1)
	suite.Assert().Len(data.RawData.TitheReports, 1)
	suite.Assert().Len(data.RawData.OfferingReports, 0)
}

func (suite *TestSuiteStandard) TestAdminFinancialReportsFiltered() {
	suite.seed()

	r := suite.request(http.MethodGet, "http://example.com/api/admin/financial-reports?month=November-2025", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.AdminFinancialResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(decimal.NewFromInt(5160).Equal(response.Summary.TotalIncome), response.Summary.TotalIncome.String())
	suite.Assert().Len(response.Data.MonthlyTrends, 1)
}

func (suite *TestSuiteStandard) TestAdminFinancialReportsEmpty() {
	r := suite.request(http.MethodGet, "http://example.com/api/admin/financial-reports", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.AdminFinancialResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Summary.TotalIncome.IsZero())
	suite.Assert().Len(response.PerAssembly, 0)
	suite.Assert().Len(response.Data.AssemblyPerformance, 0)
}

func (suite *TestSuiteStandard) TestDetailedReports() {
	suite.seed()
	suite.sunday("HOPE", "November-2025", service(40, 40, 2, "200", "100"))

	url := "http://example.com/api/admin/reports/detailed?month=November&year=2025&limit=1&page=2"

	r := suite.request(http.MethodGet, url, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var first api.DetailedResponse
	test.DecodeResponse(suite.T(), &r, &first)

	suite.Assert().Len(first.Data.Reports, 1)
	suite.Assert().Equal(api.DetailedPagination{Page: 2, Limit: 1, Total: 2, Pages: 2}, first.Data.Pagination)

	summary := first.Data.Summary
	suite.Assert().Equal(2, summary.Reports)
	suite.Assert().Equal(397, summary.RawAttendance)
	suite.Assert().Equal(277, summary.TotalAttendance)
	suite.Assert().Equal(120, summary.AttendanceCorrection)
	suite.Assert().Equal(0.75, summary.OverlapRatio)
	suite.Assert().True(decimal.NewFromInt(5300).Equal(summary.TotalIncome), summary.TotalIncome.String())

	// Reading twice gives the same result
	r = suite.request(http.MethodGet, url, nil)
	var second api.DetailedResponse
	test.DecodeResponse(suite.T(), &r, &second)
	suite.Assert().Equal(first, second)
}

func (suite *TestSuiteStandard) TestDetailedReportsPageOutOfRange() {
	suite.seed()

	r := suite.request(http.MethodGet, "http://example.com/api/admin/reports/detailed?page=5", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.DetailedResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Len(response.Data.Reports, 0)
	suite.Assert().Equal(int64(2), response.Data.Pagination.Total)
	suite.Assert().Equal(1, response.Data.Pagination.Pages)
}

func (suite *TestSuiteStandard) TestDetailedReportsHugePage() {
	suite.seed()

	r := suite.request(http.MethodGet, "http://example.com/api/admin/reports/detailed?page=4611686018427387904&limit=500", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.DetailedResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Len(response.Data.Reports, 0)
	suite.Assert().Equal(4611686018427387904, response.Data.Pagination.Page)
	suite.Assert().Equal(int64(2), response.Data.Pagination.Total)
	suite.Assert().Equal(2, response.Data.Summary.Reports)
	suite.Assert().Equal(3, response.Data.Summary.Services)
}

func (suite *TestSuiteStandard) TestSubmissionStatus() {
	suite.seed()
	suite.sunday("OUTSIDER", "November-2025", service(5, 0, 0, "10", "0"))

	r := suite.request(http.MethodGet, "http://example.com/api/admin/submission-status?month=nov&year=2025", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.SubmissionStatusResponse
	test.DecodeResponse(suite.T(), &r, &response)

	data := response.Data
	suite.Assert().Equal("November-2025", data.Period)
	suite.Assert().Equal(11, data.Total, "The roster and every assembly that submitted")
	suite.Assert().Equal(0, data.Complete)

	statuses := map[string]api.AssemblyStatus{}
	for _, s := range data.Assemblies {
		statuses[s.Assembly] = s
	}

	emmanuel := statuses["EMMANUEL"]
	suite.Assert().True(emmanuel.Registered)
	suite.Assert().True(emmanuel.Submitted[api.KindSunday])
	suite.Assert().True(emmanuel.Submitted[api.KindMidweek])
	suite.Assert().True(emmanuel.Submitted[api.KindTithe])
	suite.Assert().False(emmanuel.Submitted[api.KindOffering])
	suite.Assert().Equal([]string{api.KindSpecial, api.KindOffering, api.KindSubmission}, emmanuel.Missing)
	suite.Assert().NotNil(emmanuel.LastSubmission)

	grace := statuses["GRACE"]
	suite.Assert().False(grace.Submitted[api.KindSunday], "October reports must not count for November")
	suite.Assert().True(grace.Submitted[api.KindMidweek])

	bethel := statuses["BETHEL"]
	suite.Assert().Len(bethel.Missing, 6)
	suite.Assert().Nil(bethel.LastSubmission)

	outsider := statuses["OUTSIDER"]
	suite.Assert().False(outsider.Registered)
	suite.Assert().True(outsider.Submitted[api.KindSunday])
}

func (suite *TestSuiteStandard) TestSubmissionStatusNeedsPeriod() {
	for _, query := range []string{"", "?month=November", "?year=2025"} {
		r := suite.request(http.MethodGet, "http://example.com/api/admin/submission-status"+query, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}
}
