package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/district-ledger/backend/internal/store"
	"github.com/district-ledger/backend/internal/types"
)

// QueryFilter holds the query parameters shared by all list endpoints.
type QueryFilter struct {
	Assembly    string `form:"assembly"`    // Assembly name, "all" for every assembly
	Month       string `form:"month"`       // Month name or number. A full period like "November-2025" also sets the year
	Year        string `form:"year"`        // Four digit year
	StartDate   string `form:"startDate"`   // Earliest submission date, YYYY-MM-DD or RFC 3339
	EndDate     string `form:"endDate"`     // Latest submission date, inclusive
	ServiceType string `form:"serviceType"` // Service type
	Offset      uint   `form:"offset"`      // The offset of the first document returned. Defaults to 0.
	Limit       int    `form:"limit"`       // Maximum number of documents to return. Defaults to 50.
}

// filter parses the query parameters into a store.Filter.
func (q QueryFilter) filter() (store.Filter, error) {
	f := store.Filter{
		Assembly:    q.Assembly,
		ServiceType: strings.TrimSpace(q.ServiceType),
	}

	if month := strings.TrimSpace(q.Month); month != "" {
		m, err := types.ParseMonth(month)
		if err != nil {
			p, perr := types.ParsePeriod(month)
			if perr != nil {
				return store.Filter{}, err
			}
			m = p.Month()
			f.Year = p.Year()
		}
		f.Month = m
	}

	if year := strings.TrimSpace(q.Year); year != "" {
		y, err := types.ParseYear(year)
		if err != nil {
			return store.Filter{}, err
		}
		f.Year = y
	}

	var err error
	if f.From, err = parseDate(q.StartDate, false); err != nil {
		return store.Filter{}, err
	}

	if f.To, err = parseDate(q.EndDate, true); err != nil {
		return store.Filter{}, err
	}

	return f, nil
}

func (q QueryFilter) page() store.Page {
	return store.Page{Offset: q.Offset, Limit: q.Limit}.Bounded()
}

// parseDate parses a date or a timestamp. Plain dates are the start of
// the day, or the last instant of it when end is set.
func parseDate(s string, end bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}

	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, errInvalidDate
	}

	if end {
		return t.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
	}
	return t, nil
}

// scope describes the assemblies a filter selects.
func scope(f store.Filter) string {
	if name := f.AssemblyName(); name != "" {
		return name
	}
	return "All assemblies"
}

// period describes the periods a filter selects.
func period(f store.Filter) string {
	if p, ok := f.Period(); ok {
		return p.String()
	}

	if f.Month != 0 {
		return f.Month.String()
	}

	if f.Year != 0 {
		return strconv.Itoa(f.Year)
	}
	return "All periods"
}

type Pagination struct {
	Count  int   `json:"count" example:"25"`  // The amount of documents returned
	Total  int64 `json:"total" example:"827"` // The total amount of documents matching the filter
	Offset uint  `json:"offset" example:"50"` // The offset of the first document
	Limit  int   `json:"limit" example:"25"`  // The limit used
}

// Response is the body of all successful responses with a single object.
type Response struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message,omitempty" example:"Sunday service report created"`
	Data    any    `json:"data,omitempty" swaggertype:"object"`
}

// ListResponse is the body of successful list responses.
type ListResponse struct {
	Success    bool       `json:"success" example:"true"`
	Data       any        `json:"data" swaggertype:"array,object"`
	Pagination Pagination `json:"pagination"`
}
