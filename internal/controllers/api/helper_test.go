package api_test

import (
	"net/http"
	"net/http/httptest"

	"github.com/district-ledger/backend/internal/models"
	"github.com/district-ledger/backend/test"
)

// created is the body of a successful create or replace.
type created[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

type listed[T any] struct {
	Success    bool     `json:"success"`
	Data       []T      `json:"data"`
	Pagination struct {
		Count  int   `json:"count"`
		Total  int64 `json:"total"`
		Offset uint  `json:"offset"`
		Limit  int   `json:"limit"`
	} `json:"pagination"`
}

func (suite *TestSuiteStandard) request(method, url string, body any, headers ...map[string]string) httptest.ResponseRecorder {
	return test.Request(suite.T(), suite.controller, method, url, body, headers...)
}

// post submits a document and asserts the status.
func post[T any](suite *TestSuiteStandard, path string, body any, status ...int) T {
	if len(status) == 0 {
		status = []int{http.StatusCreated, http.StatusOK}
	}

	r := suite.request(http.MethodPost, "http://example.com/api/"+path, body)
	test.AssertHTTPStatus(suite.T(), &r, status...)

	var response created[T]
	if r.Code < 300 {
		test.DecodeResponse(suite.T(), &r, &response)
	}
	return response.Data
}

func (suite *TestSuiteStandard) sunday(assembly, month string, records ...map[string]any) models.SundayServiceReport {
	return post[models.SundayServiceReport](suite, "sunday-service-reports", map[string]any{
		"assembly":    assembly,
		"month":       month,
		"submittedBy": "Secretary",
		"records":     records,
	})
}

func (suite *TestSuiteStandard) midweek(assembly, month string, attendance int, offering string) models.MidweekServiceReport {
	return post[models.MidweekServiceReport](suite, "midweek-service-reports", map[string]any{
		"assembly": assembly,
		"month":    month,
		"records":  []map[string]any{{"day": "Wednesday", "attendance": attendance, "offering": offering}},
	})
}

func (suite *TestSuiteStandard) special(assembly, month string, attendance int, offering string) models.SpecialServiceReport {
	return post[models.SpecialServiceReport](suite, "special-service-reports", map[string]any{
		"assembly": assembly,
		"month":    month,
		"records":  []map[string]any{{"serviceName": "Harvest", "attendance": attendance, "offering": offering}},
	})
}

func (suite *TestSuiteStandard) tithes(assembly, month string, weeks ...string) models.TitheReport {
	record := map[string]any{"name": "Kofi Mensah"}
	for i, w := range weeks {
		record["week"+string(rune('1'+i))] = w
	}

	return post[models.TitheReport](suite, "tithe-reports", map[string]any{
		"assembly": assembly,
		"month":    month,
		"records":  []map[string]any{record},
	})
}

// service is a Sunday record with attendance and the two main amounts.
func service(main, sbs, visitors int, tithes, offerings string) map[string]any {
	return map[string]any{
		"date":                 "2025-11-02",
		"mainAttendance":       main,
		"bibleStudyAttendance": sbs,
		"visitors":             visitors,
		"tithes":               tithes,
		"offerings":            offerings,
	}
}
