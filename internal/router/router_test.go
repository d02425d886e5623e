package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/district-ledger/backend/internal/aggregate"
	"github.com/district-ledger/backend/internal/auth"
	"github.com/district-ledger/backend/internal/config"
	"github.com/district-ledger/backend/internal/controllers/api"
	"github.com/district-ledger/backend/internal/narrative"
	"github.com/district-ledger/backend/internal/router"
	"github.com/district-ledger/backend/test"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cfg(t *testing.T, env map[string]string) config.Config {
	if _, ok := env["API_URL"]; !ok {
		env["API_URL"] = "http://example.com"
	}

	c, err := config.Parse(func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	})
	require.Nil(t, err)
	return c
}

func controller(t *testing.T) api.Controller {
	return api.Controller{
		Store:      test.Store(t),
		Auth:       auth.New(nil, nil, ""),
		Narrator:   narrative.New(nil, 0),
		Correction: aggregate.NewCorrection(aggregate.DefaultOverlap),
	}
}

func routes(r *gin.Engine) []string {
	var paths []string
	for _, route := range r.Routes() {
		paths = append(paths, route.Path)
	}
	return paths
}

func TestGinMode(t *testing.T) {
	r, teardown, err := router.Config(cfg(t, map[string]string{"GIN_MODE": "debug"}))
	defer teardown()
	require.Nil(t, err, "Error on router initialization")

	router.AttachRoutes(controller(t), false, r.Group("/"))
	assert.True(t, gin.IsDebugging())

	gin.SetMode(gin.ReleaseMode)
}

func TestPprofOn(t *testing.T) {
	r, teardown, err := router.Config(cfg(t, map[string]string{"ENABLE_PPROF": "true"}))
	defer teardown()
	require.Nil(t, err, "Error on router initialization")

	router.AttachRoutes(controller(t), true, r.Group("/"))
	assert.Contains(t, routes(r), "/debug/pprof/")
}

func TestPprofOff(t *testing.T) {
	r, teardown, err := router.Config(cfg(t, map[string]string{}))
	defer teardown()
	require.Nil(t, err, "Error on router initialization")

	router.AttachRoutes(controller(t), false, r.Group("/"))

	for _, path := range routes(r) {
		assert.NotContains(t, path, "pprof", "pprof routes are registered erroneously! Route: %s", path)
	}
}

func TestRoutes(t *testing.T) {
	r, teardown, err := router.Config(cfg(t, map[string]string{}))
	defer teardown()
	require.Nil(t, err)

	router.AttachRoutes(controller(t), false, r.Group("/"))

	paths := routes(r)
	for _, path := range []string{
		"/",
		"/version",
		"/healthz",
		"/metrics",
		"/docs/*any",
		"/api/login",
		"/api/sunday-service-reports",
		"/api/midweek-service-reports/:id",
		"/api/special-service-reports",
		"/api/tithe-reports",
		"/api/offering-reports",
		"/api/submissions/:id",
		"/api/financial-reports",
		"/api/ai/report",
		"/api/ai/financial-report",
		"/api/generate/financial-report",
		"/api/admin/financial-reports",
		"/api/admin/reports/detailed",
		"/api/admin/submission-status",
		"/api/admin/ai/financial-report",
	} {
		assert.Contains(t, paths, path)
	}
}

// TestTeardown verifies that a second router can be configured after the first one is torn down.
func TestTeardown(t *testing.T) {
	_, teardown, err := router.Config(cfg(t, map[string]string{}))
	require.Nil(t, err)
	teardown()

	_, teardown, err = router.Config(cfg(t, map[string]string{}))
	require.Nil(t, err)
	teardown()
}

func TestDoubleConfig(t *testing.T) {
	_, teardown, err := router.Config(cfg(t, map[string]string{}))
	require.Nil(t, err)
	defer teardown()

	_, second, err := router.Config(cfg(t, map[string]string{}))
	defer second()
	assert.NotNil(t, err, "metrics must not be registered twice")
}

// TestCorsSetting checks that setting of CORS works.
// It does not check all headers as this is already done in testing of the module.
func TestCorsSetting(t *testing.T) {
	r, teardown, err := router.Config(cfg(t, map[string]string{"CORS_ALLOW_ORIGINS": "http://localhost:3000 https://example.com"}))
	defer teardown()
	require.Nil(t, err)

	router.AttachRoutes(controller(t), false, r.Group("/"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "http://example.com/version", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	r.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMethodNotAllowed(t *testing.T) {
	r, teardown, err := router.Config(cfg(t, map[string]string{}))
	defer teardown()
	require.Nil(t, err)

	router.AttachRoutes(controller(t), false, r.Group("/"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPut, "http://example.com/version", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Contains(t, w.Body.String(), "not allowed")
}

func TestMetrics(t *testing.T) {
	r, teardown, err := router.Config(cfg(t, map[string]string{}))
	defer teardown()
	require.Nil(t, err)

	router.AttachRoutes(controller(t), false, r.Group("/"))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "http://example.com/version", nil)
	r.ServeHTTP(w, req)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "http://example.com/metrics", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `requests_total{code="200",method="GET",url="/version"}`), w.Body.String())
}

func TestDocs(t *testing.T) {
	r, teardown, err := router.Config(cfg(t, map[string]string{}))
	defer teardown()
	require.Nil(t, err)

	router.AttachRoutes(controller(t), false, r.Group("/"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "http://example.com/docs/doc.json", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var doc struct {
		Info struct {
			Title string `json:"title"`
		} `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.Nil(t, json.Unmarshal(w.Body.Bytes(), &doc), w.Body.String())

	assert.Equal(t, "District Ledger", doc.Info.Title)
	assert.Contains(t, doc.Paths["/api/sunday-service-reports"], "post")
	assert.Contains(t, doc.Paths["/api/submissions/{id}"], "delete")
	assert.Contains(t, doc.Paths["/api/admin/reports/detailed"], "get")
	assert.Contains(t, doc.Paths["/api/generate/financial-report"], "post")
	assert.Contains(t, doc.Paths["/healthz"], "get")
}

func TestURLMiddleware(t *testing.T) {
	u, _ := url.Parse("https://ledger.example.com:8081/backend")

	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	r.Use(router.URLMiddleware(u))
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("baseURL"))
	})

	req, _ := http.NewRequest(http.MethodGet, "https://example.com/", nil)
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://ledger.example.com:8081/backend", w.Body.String())
}
