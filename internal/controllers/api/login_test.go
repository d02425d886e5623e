package api_test

import (
	"net/http"

	"github.com/district-ledger/backend/internal/auth"
	"github.com/district-ledger/backend/internal/controllers/api"
	"github.com/district-ledger/backend/test"
)

func (suite *TestSuiteStandard) login(assembly, password string) api.LoginResponse {
	r := suite.request(http.MethodPost, "http://example.com/api/login", map[string]string{"assembly": assembly, "password": password})
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response api.LoginResponse
	test.DecodeResponse(suite.T(), &r, &response)
	return response
}

func (suite *TestSuiteStandard) TestLogin() {
	response := suite.login("Emmanuel", "EMMANUEL")

	suite.Assert().True(response.Success)
	suite.Assert().Equal("Logged in as EMMANUEL", response.Message)
	suite.Assert().Equal(auth.Session{Assembly: "EMMANUEL", Role: auth.RoleAssembly}, response.Data, "Without a secret, no token is issued")
}

func (suite *TestSuiteStandard) TestLoginAdmin() {
	response := suite.login("district office", "District Office")
	suite.Assert().Equal(auth.RoleAdmin, response.Data.Role)
}

func (suite *TestSuiteStandard) TestLoginFails() {
	tests := []struct {
		name   string
		body   any
		status int
	}{
		{"Wrong password", map[string]string{"assembly": "EMMANUEL", "password": "grace"}, http.StatusUnauthorized},
		{"Unknown assembly", map[string]string{"assembly": "ATLANTIS", "password": "atlantis"}, http.StatusUnauthorized},
		{"Missing password", map[string]string{"assembly": "EMMANUEL"}, http.StatusBadRequest},
		{"Missing assembly", map[string]string{"password": "emmanuel"}, http.StatusBadRequest},
		{"Blank assembly", map[string]string{"assembly": "   ", "password": "emmanuel"}, http.StatusBadRequest},
		{"Empty body", "", http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodPost, "http://example.com/api/login", tt.body)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)

			var e struct {
				Success bool   `json:"success"`
				Error   string `json:"error"`
			}
			test.DecodeResponse(suite.T(), &r, &e)
			suite.Assert().False(e.Success)
			suite.Assert().NotEmpty(e.Error)
		})
	}
}

func (suite *TestSuiteStandard) TestAuthenticationEnabled() {
	suite.controller.Auth = auth.New(nil, nil, "test-secret")

	assembly := suite.login("grace", "grace")
	suite.Require().NotEmpty(assembly.Data.Token)

	admin := suite.login("DISTRICT", "district")
	suite.Require().NotEmpty(admin.Data.Token)

	bearer := func(token string) map[string]string {
		return map[string]string{"Authorization": "Bearer " + token}
	}

	tests := []struct {
		name    string
		path    string
		headers []map[string]string
		status  int
	}{
		{"Reports without token", "tithe-reports", nil, http.StatusUnauthorized},
		{"Reports with invalid token", "tithe-reports", []map[string]string{bearer("garbage")}, http.StatusUnauthorized},
		{"Reports as assembly", "tithe-reports", []map[string]string{bearer(assembly.Data.Token)}, http.StatusOK},
		{"Reports as admin", "tithe-reports", []map[string]string{bearer(admin.Data.Token)}, http.StatusOK},
		{"Admin without token", "admin/financial-reports", nil, http.StatusUnauthorized},
		{"Admin as assembly", "admin/financial-reports", []map[string]string{bearer(assembly.Data.Token)}, http.StatusForbidden},
		{"Admin as admin", "admin/financial-reports", []map[string]string{bearer(admin.Data.Token)}, http.StatusOK},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			r := suite.request(http.MethodGet, "http://example.com/api/"+tt.path, nil, tt.headers...)
			test.AssertHTTPStatus(suite.T(), &r, tt.status)
		})
	}

	// Preflight requests never carry credentials
	r := suite.request(http.MethodOptions, "http://example.com/api/admin/financial-reports", nil)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
}
