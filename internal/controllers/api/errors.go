package api

import (
	"errors"
	"net/http"

	"github.com/district-ledger/backend/internal/auth"
	"github.com/district-ledger/backend/internal/store"
)

// status returns the HTTP status for an error.
func status(err error) int {
	if errors.Is(err, store.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, store.ErrNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, auth.ErrInvalidCredentials) {
		return http.StatusUnauthorized
	}

	return http.StatusBadRequest
}

var (
	errNoValidRecords  = errors.New("no valid records: every record is empty or all of its values are zero")
	errAssemblyMissing = errors.New("the assembly must be set")
	errMonthMissing    = errors.New("the month must be set")
	errPeriodMissing   = errors.New("the month and year query parameters must be set")
	errInvalidDate     = errors.New("dates must be given as YYYY-MM-DD or RFC 3339")
)
