// Package types implements special types for the district ledger.
package types

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrInvalidPeriod = errors.New("the month must be given as <MonthName>-<Year>, e.g. November-2025")
	ErrInvalidMonth  = errors.New("the month must be a month name or a number between 1 and 12")
	ErrInvalidYear   = errors.New("the year must be a four digit number")
)

// Period is a calendar month in its canonical "<MonthName>-<Year>" form,
// e.g. "November-2025".
//
// Every report document is keyed by an assembly and a Period, so there
// must only ever be one string per calendar month. Use ParsePeriod or
// NewPeriod to construct values.
type Period string

var (
	namedPeriod   = regexp.MustCompile(`^([A-Za-z]+)[\s\-/_]+([0-9]{4})$`)
	numericPeriod = regexp.MustCompile(`^([0-9]{4})-([0-9]{1,2})$`)
)

// NewPeriod returns the period for a month in a year.
func NewPeriod(year int, month time.Month) Period {
	return Period(fmt.Sprintf("%s-%04d", month.String(), year))
}

// PeriodOf returns the period in which a time occurs.
func PeriodOf(t time.Time) Period {
	return NewPeriod(t.Year(), t.Month())
}

// ParsePeriod parses "November-2025", "november 2025", "Nov-2025" and
// "2025-11" into the canonical Period.
func ParsePeriod(s string) (Period, error) {
	s = strings.TrimSpace(s)

	if m := numericPeriod.FindStringSubmatch(s); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, err := ParseMonth(m[2])
		if err != nil {
			return "", ErrInvalidPeriod
		}
		return NewPeriod(year, month), nil
	}

	m := namedPeriod.FindStringSubmatch(s)
	if m == nil {
		return "", ErrInvalidPeriod
	}

	month, err := ParseMonth(m[1])
	if err != nil {
		return "", ErrInvalidPeriod
	}

	year, _ := strconv.Atoi(m[2])
	return NewPeriod(year, month), nil
}

// ParseMonth parses a month name ("november", "Nov") or number ("11").
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidMonth
	}

	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > 12 {
			return 0, ErrInvalidMonth
		}
		return time.Month(n), nil
	}

	// Casers are stateful, never share them between goroutines
	name := cases.Title(language.English).String(strings.ToLower(s))
	for m := time.January; m <= time.December; m++ {
		full := m.String()
		if name == full || (len(name) >= 3 && strings.HasPrefix(full, name)) {
			return m, nil
		}
	}

	return 0, ErrInvalidMonth
}

// ParseYear parses a four digit year.
func ParseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) != 4 {
		return 0, ErrInvalidYear
	}

	year, err := strconv.Atoi(s)
	if err != nil || year < 1 {
		return 0, ErrInvalidYear
	}

	return year, nil
}

// String returns the canonical form.
func (p Period) String() string {
	return string(p)
}

// Valid reports if the period is in canonical form.
func (p Period) Valid() bool {
	_, _, ok := p.split()
	return ok
}

func (p Period) split() (time.Month, int, bool) {
	name, yearString, found := strings.Cut(string(p), "-")
	if !found {
		return 0, 0, false
	}

	year, err := ParseYear(yearString)
	if err != nil {
		return 0, 0, false
	}

	for m := time.January; m <= time.December; m++ {
		if m.String() == name {
			return m, year, true
		}
	}
	return 0, 0, false
}

// Month returns the calendar month, 0 for invalid periods.
func (p Period) Month() time.Month {
	m, _, _ := p.split()
	return m
}

// Year returns the year, 0 for invalid periods.
func (p Period) Year() int {
	_, y, _ := p.split()
	return y
}

// Time returns 00:00 UTC on the first day of the period.
// Invalid periods return the zero time.
func (p Period) Time() time.Time {
	m, y, ok := p.split()
	if !ok {
		return time.Time{}
	}
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// Before reports whether p is earlier in the calendar than q.
// Invalid periods sort after all valid ones.
func (p Period) Before(q Period) bool {
	if !p.Valid() {
		return false
	}
	if !q.Valid() {
		return true
	}
	return p.Time().Before(q.Time())
}

// MonthPrefix returns the prefix all periods of a month share, e.g. "November-".
func MonthPrefix(m time.Month) string {
	return m.String() + "-"
}

// YearSuffix returns the suffix all periods of a year share, e.g. "-2025".
func YearSuffix(year int) string {
	return fmt.Sprintf("-%04d", year)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// The value is canonicalized with ParsePeriod. Empty strings and null
// leave the period empty.
func (p *Period) UnmarshalJSON(data []byte) error {
	value := strings.Trim(string(data), `"`)
	if value == "" || value == "null" {
		*p = ""
		return nil
	}

	parsed, err := ParsePeriod(value)
	if err != nil {
		return err
	}

	*p = parsed
	return nil
}
