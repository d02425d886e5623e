package api_test

import (
	"net/http"

	"github.com/district-ledger/backend/internal/controllers/api"
	"github.com/district-ledger/backend/test"
	"github.com/shopspring/decimal"
)

// seed stores the documents of two assemblies over two months.
func (suite *TestSuiteStandard) seed() {
	suite.sunday("EMMANUEL", "November-2025",
		service(100, 80, 5, "1000", "500"),
		service(90, 40, 0, "2000", "1500"),
	)
	suite.midweek("EMMANUEL", "November-2025", 30, "120")
	suite.tithes("EMMANUEL", "November-2025", "50", "0", "25")

	suite.sunday("GRACE", "October-2025", map[string]any{"mainAttendance": 50, "tithes": "300", "vigil": 20, "districtSupport": "5"})
	suite.special("GRACE", "October-2025", 200, "900")
	suite.midweek("GRACE", "November-2025", 10, "40")
}

func (suite *TestSuiteStandard) TestFinancialReport() {
	suite.seed()

	r := suite.request(http.MethodGet, "http://example.com/api/financial-reports?assembly=emmanuel&month=November&year=2025", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.FinancialReportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	report := response.Data
	suite.Assert().True(response.Success)
	suite.Assert().Equal("EMMANUEL", report.Assembly)
	suite.Assert().Equal("November-2025", report.Period)

	suite.Assert().True(decimal.NewFromInt(3000).Equal(report.Sunday.Tithes), report.Sunday.Tithes.String())
	suite.Assert().True(decimal.NewFromInt(2000).Equal(report.Sunday.Offerings), report.Sunday.Offerings.String())
	suite.Assert().True(decimal.NewFromInt(5120).Equal(report.TotalIncome), report.TotalIncome.String())
	suite.Assert().True(decimal.NewFromInt(75).Equal(report.Tithe.Total), report.Tithe.Total.String())

	// 315 counted, 90 removed for main and SBS overlap, plus midweek
	suite.Assert().Equal(345, report.TotalAttendance)
	suite.Assert().Equal(255, report.CorrectedAttendance)
	suite.Assert().Equal("58.59", report.TitheShare.StringFixed(2))
	suite.Assert().Equal("20.08", report.IncomePerAttendee.StringFixed(2))
}

func (suite *TestSuiteStandard) TestFinancialReportAllPeriods() {
	suite.seed()

	r := suite.request(http.MethodGet, "http://example.com/api/financial-reports?assembly=GRACE", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.FinancialReportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal("All periods", response.Data.Period)
	suite.Assert().True(decimal.NewFromInt(1265).Equal(response.Data.TotalIncome), response.Data.TotalIncome.String())
}

func (suite *TestSuiteStandard) TestFinancialReportEmpty() {
	r := suite.request(http.MethodGet, "http://example.com/api/financial-reports?assembly=HOPE&month=March&year=2024", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.FinancialReportResponse
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Data.TotalIncome.IsZero())
	suite.Assert().True(response.Data.TitheShare.IsZero())
	suite.Assert().True(response.Data.IncomePerAttendee.IsZero())
}

func (suite *TestSuiteStandard) TestFinancialReportFails() {
	for _, query := range []string{"", "?assembly=all", "?assembly=GRACE&month=13"} {
		r := suite.request(http.MethodGet, "http://example.com/api/financial-reports"+query, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}
}
