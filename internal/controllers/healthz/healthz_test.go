package healthz_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/district-ledger/backend/internal/controllers/healthz"
	"github.com/district-ledger/backend/internal/store/gormstore"
	"github.com/district-ledger/backend/test"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type unreachable struct{}

func (unreachable) Ping(context.Context) error  { return errors.New("connection refused") }
func (unreachable) Close(context.Context) error { return nil }
func (unreachable) Name() string                { return "unreachable" }

func serve(co healthz.Controller, method string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	_, r := gin.CreateTestContext(w)
	co.RegisterRoutes(r.Group("/healthz"))

	req, _ := http.NewRequest(method, "http://example.com/healthz", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestOptions(t *testing.T) {
	w := serve(healthz.Controller{Backend: unreachable{}}, http.MethodOptions)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "OPTIONS, GET", w.Header().Get("allow"))
}

func TestGet(t *testing.T) {
	s, err := gormstore.Open(test.TmpFile(t))
	require.Nil(t, err)
	defer s.Close(context.Background())

	w := serve(healthz.Controller{Backend: s.Backend}, http.MethodGet)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestGetClosed(t *testing.T) {
	s, err := gormstore.Open(test.TmpFile(t))
	require.Nil(t, err)
	require.Nil(t, s.Close(context.Background()))

	w := serve(healthz.Controller{Backend: s.Backend}, http.MethodGet)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestGetUnreachable(t *testing.T) {
	w := serve(healthz.Controller{Backend: unreachable{}}, http.MethodGet)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "an error occurred on the server")
}
