package api_test

import (
	"net/http"
	"strings"

	"github.com/district-ledger/backend/internal/models"
	"github.com/district-ledger/backend/internal/store"
	"github.com/district-ledger/backend/internal/types"
	"github.com/district-ledger/backend/test"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestCreateSunday() {
	r := suite.request(http.MethodPost, "http://example.com/api/sunday-service-reports", map[string]any{
		"assembly":    " emmanuel ",
		"month":       "November-2025",
		"submittedBy": "Secretary",
		"records": []map[string]any{
			service(100, 80, 5, "1000", "500"),
			{"date": "2025-11-09", "mainAttendance": "", "tithes": "abc"},
			service(90, 40, 0, "2000.50", "1,500"),
		},
	})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response created[models.SundayServiceReport]
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().True(response.Success)
	suite.Assert().Equal("Sunday service report for EMMANUEL, November-2025 created", response.Message)

	report := response.Data
	suite.Assert().NotEmpty(report.ID)
	suite.Assert().Equal("EMMANUEL", report.Assembly)
	suite.Require().Len(report.Records, 2, "The record without values must be dropped")

	suite.Assert().True(decimal.NewFromInt(1500).Equal(report.Records[0].Total), report.Records[0].Total.String())
	suite.Assert().Equal(185, report.Records[0].TotalAttendance)
	suite.Assert().True(decimal.RequireFromString("3500.5").Equal(report.Records[1].Total), report.Records[1].Total.String())
}

func (suite *TestSuiteStandard) TestCreateReplaces() {
	first := suite.tithes("GRACE", "October-2025", "100")
	second := suite.tithes("grace", "october 2025", "40", "60", "25")

	suite.Assert().Equal(first.ID, second.ID, "Replacing must keep the ID")
	suite.Assert().Equal(first.CreatedAt, second.CreatedAt, "Replacing must keep the creation time")

	r := suite.request(http.MethodGet, "http://example.com/api/tithe-reports?assembly=grace", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response listed[models.TitheReport]
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Require().Len(response.Data, 1)
	suite.Assert().True(decimal.NewFromInt(125).Equal(response.Data[0].Records[0].Total), "The second payload must be stored")
}

func (suite *TestSuiteStandard) TestCreateReplaceStatus() {
	body := map[string]any{
		"assembly": "HOPE",
		"month":    "2025-11",
		"records":  []map[string]any{{"general": 10}},
	}

	r := suite.request(http.MethodPost, "http://example.com/api/offering-reports", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	r = suite.request(http.MethodPost, "http://example.com/api/offering-reports", body)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)
	suite.Assert().Contains(r.Body.String(), "Offering report for HOPE, November-2025 updated")
}

func (suite *TestSuiteStandard) TestPeriodForms() {
	for _, month := range []string{"november 2025", "2025-11", "November-2025", "Nov-2025"} {
		suite.midweek("BETHEL", month, 20, "30")
	}

	for _, query := range []string{"month=November-2025", "month=nov&year=2025", "month=11&year=2025", "year=2025"} {
		r := suite.request(http.MethodGet, "http://example.com/api/midweek-service-reports?"+query, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

		var response listed[models.MidweekServiceReport]
		test.DecodeResponse(suite.T(), &r, &response)

		suite.Require().Len(response.Data, 1, query)
		suite.Assert().Equal(types.Period("November-2025"), response.Data[0].Period)
	}
}

func (suite *TestSuiteStandard) TestCreateFails() {
	tests := []struct {
		name string
		path string
		body any
		err  string
	}{
		{"No records", "sunday-service-reports", map[string]any{"assembly": "GRACE", "month": "November-2025", "records": []any{}}, "no valid records"},
		{"All zero", "tithe-reports", map[string]any{"assembly": "GRACE", "month": "November-2025", "records": []map[string]any{{"name": "Ama", "week1": 0, "week2": "", "week3": "x"}}}, "no valid records"},
		{"Missing records", "submissions", map[string]any{"assembly": "GRACE", "month": "November-2025"}, "no valid records"},
		{"No assembly", "midweek-service-reports", map[string]any{"month": "November-2025", "records": []map[string]any{{"offering": 5}}}, "the assembly must be set"},
		{"All assemblies", "midweek-service-reports", map[string]any{"assembly": "all", "month": "November-2025", "records": []map[string]any{{"offering": 5}}}, "the assembly must be set"},
		{"No month", "special-service-reports", map[string]any{"assembly": "GRACE", "records": []map[string]any{{"offering": 5}}}, "the month must be set"},
		{"Invalid month", "offering-reports", map[string]any{"assembly": "GRACE", "month": "Smarch-2025", "records": []map[string]any{{"general": 5}}}, "the month must be given as"},
		{"Broken JSON", "offering-reports", `{ "assembly": "GRACE", `, "contains invalid or un-parseable data"},
		{"Empty body", "offering-reports", "", "the request body must not be empty"},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "http://example.com/api/"+tt.path, tt.body)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
			suite.Assert().Contains(strings.ToLower(test.DecodeError(suite.T(), &r)), strings.ToLower(tt.err))
		})
	}
}

func (suite *TestSuiteStandard) TestListFilters() {
	suite.special("GRACE", "October-2025", 200, "900")
	suite.special("GRACE", "November-2025", 150, "400")
	suite.special("EMMANUEL", "November-2025", 90, "300")
	suite.special("HOPE", "November-2024", 30, "50")

	tests := []struct {
		query string
		count int
	}{
		{"", 4},
		{"assembly=all", 4},
		{"assembly=grace", 2},
		{"month=November", 3},
		{"year=2025", 3},
		{"assembly=GRACE&month=November&year=2025", 1},
		{"month=december", 0},
		{"limit=2", 2},
		{"offset=3", 1},
	}

	for _, tt := range tests {
		suite.Run(tt.query, func() {
			r := suite.request(http.MethodGet, "http://example.com/api/special-service-reports?"+tt.query, nil)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

			var response listed[models.SpecialServiceReport]
			test.DecodeResponse(suite.T(), &r, &response)
			suite.Assert().Len(response.Data, tt.count)
		})
	}
}

func (suite *TestSuiteStandard) TestListPagination() {
	suite.special("GRACE", "October-2025", 200, "900")
	suite.special("GRACE", "November-2025", 150, "400")
	suite.special("HOPE", "November-2025", 30, "50")

	r := suite.request(http.MethodGet, "http://example.com/api/special-service-reports?offset=1&limit=1", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response listed[models.SpecialServiceReport]
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Equal(1, response.Pagination.Count)
	suite.Assert().Equal(int64(3), response.Pagination.Total)
	suite.Assert().Equal(uint(1), response.Pagination.Offset)
	suite.Assert().Equal(1, response.Pagination.Limit)
}

func (suite *TestSuiteStandard) TestListOffsetBeyondEnd() {
	suite.special("GRACE", "October-2025", 200, "900")

	r := suite.request(http.MethodGet, "http://example.com/api/special-service-reports?offset=18446744073709551615", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response listed[models.SpecialServiceReport]
	test.DecodeResponse(suite.T(), &r, &response)

	suite.Assert().Len(response.Data, 0)
	suite.Assert().Equal(int64(1), response.Pagination.Total)
	suite.Assert().Equal(uint(store.MaxOffset), response.Pagination.Offset)
}

func (suite *TestSuiteStandard) TestListInvalidQuery() {
	for _, query := range []string{"month=Smarch", "year=20x5", "startDate=yesterday", "offset=-1"} {
		r := suite.request(http.MethodGet, "http://example.com/api/tithe-reports?"+query, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestGetAndDelete() {
	report := suite.midweek("SHILOH", "November-2025", 12, "40")
	url := "http://example.com/api/midweek-service-reports/" + report.ID

	r := suite.request(http.MethodGet, url, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response created[models.MidweekServiceReport]
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal(report.ID, response.Data.ID)

	r = suite.request(http.MethodOptions, url, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, DELETE", r.Header().Get("allow"))

	r = suite.request(http.MethodDelete, url, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = suite.request(http.MethodGet, url, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	suite.Assert().Equal("there is no midweek service report matching your query", test.DecodeError(suite.T(), &r))

	r = suite.request(http.MethodDelete, url, nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDetailInvalidID() {
	for _, method := range []string{http.MethodGet, http.MethodDelete, http.MethodOptions} {
		r := suite.request(method, "http://example.com/api/submissions/not-a-uuid", nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestOptionsList() {
	for _, path := range []string{"sunday-service-reports", "midweek-service-reports", "special-service-reports", "tithe-reports", "offering-reports", "submissions"} {
		r := suite.request(http.MethodOptions, "http://example.com/api/"+path, nil)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
		suite.Assert().Equal("OPTIONS, GET, POST", r.Header().Get("allow"), path)
	}
}

func (suite *TestSuiteStandard) TestSubmission() {
	s := post[models.Submission](suite, "submissions", map[string]any{
		"assembly": "REHOBOTH",
		"month":    "November-2025",
		"records":  []map[string]any{{"week": "Week 1", "tithe": "900", "offering": 350, "welfare": "40", "missionaryFund": 25, "remarks": "Harvest week"}},
	})

	suite.Require().Len(s.Records, 1)
	suite.Assert().True(decimal.NewFromInt(1315).Equal(s.Records[0].Total), s.Records[0].Total.String())
	suite.Assert().Equal("Harvest week", s.Records[0].Remarks)
}

func (suite *TestSuiteStandard) TestClosedDB() {
	report := suite.midweek("SHILOH", "November-2025", 12, "40")
	suite.CloseDB()

	tests := []struct {
		method string
		path   string
		body   any
	}{
		{http.MethodGet, "midweek-service-reports", nil},
		{http.MethodGet, "midweek-service-reports/" + report.ID, nil},
		{http.MethodDelete, "midweek-service-reports/" + report.ID, nil},
		{http.MethodPost, "midweek-service-reports", map[string]any{"assembly": "SHILOH", "month": "November-2025", "records": []map[string]any{{"offering": 5}}}},
		{http.MethodGet, "financial-reports?assembly=SHILOH", nil},
		{http.MethodGet, "admin/financial-reports", nil},
		{http.MethodGet, "admin/reports/detailed", nil},
		{http.MethodGet, "admin/submission-status?month=November-2025", nil},
		{http.MethodPost, "admin/ai/financial-report", map[string]any{}},
	}

	for _, tt := range tests {
		suite.Run(tt.method+" "+tt.path, func() {
			r := suite.request(tt.method, "http://example.com/api/"+tt.path, tt.body)
			test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
			suite.Assert().Equal("an error occurred on the server during your request", test.DecodeError(suite.T(), &r))
		})
	}

	r := suite.request(http.MethodGet, "http://example.com/healthz", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
