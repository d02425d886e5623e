package store

import (
	"math"
	"strings"
	"time"

	"github.com/district-ledger/backend/internal/models"
	"github.com/district-ledger/backend/internal/types"
)

const (
	DefaultLimit = 50
	MaxLimit     = 500
	MaxOffset    = math.MaxInt32
)

// Filter selects documents.
//
// The zero value of every field means no restriction on it.
type Filter struct {
	Assembly    string     // Assembly name, matched in canonical form. "all" matches every assembly
	Month       time.Month // Month of the period
	Year        int        // Year of the period
	From        time.Time  // Earliest creation time, inclusive
	To          time.Time  // Latest creation time, inclusive
	ServiceType string     // Service type, case-insensitive
}

// AssemblyName returns the canonical assembly name the filter restricts
// to, or "" if it matches all assemblies.
func (f Filter) AssemblyName() string {
	if types.IsAllAssemblies(f.Assembly) {
		return ""
	}
	return types.AssemblyName(f.Assembly)
}

// Period returns the exact period to match when month and year are set.
func (f Filter) Period() (types.Period, bool) {
	if f.Month == 0 || f.Year == 0 {
		return "", false
	}
	return types.NewPeriod(f.Year, f.Month), true
}

// PeriodPrefix returns the prefix to match when only the month is set.
func (f Filter) PeriodPrefix() (string, bool) {
	if f.Month == 0 || f.Year != 0 {
		return "", false
	}
	return types.MonthPrefix(f.Month), true
}

// PeriodSuffix returns the suffix to match when only the year is set.
func (f Filter) PeriodSuffix() (string, bool) {
	if f.Year == 0 || f.Month != 0 {
		return "", false
	}
	return types.YearSuffix(f.Year), true
}

// Matches reports if a document header is selected by the filter.
func (f Filter) Matches(h models.Header) bool {
	if name := f.AssemblyName(); name != "" && h.Assembly != name {
		return false
	}

	period := h.Period.String()
	if p, ok := f.Period(); ok && h.Period != p {
		return false
	}

	if prefix, ok := f.PeriodPrefix(); ok && !strings.HasPrefix(period, prefix) {
		return false
	}

	if suffix, ok := f.PeriodSuffix(); ok && !strings.HasSuffix(period, suffix) {
		return false
	}

	if !f.From.IsZero() && h.CreatedAt.Before(f.From) {
		return false
	}

	if !f.To.IsZero() && h.CreatedAt.After(f.To) {
		return false
	}

	if f.ServiceType != "" && !strings.EqualFold(h.ServiceType, strings.TrimSpace(f.ServiceType)) {
		return false
	}

	return true
}

// Page selects a window of a sorted result.
type Page struct {
	Offset uint // Number of documents to skip
	Limit  int  // Maximum number of documents, DefaultLimit if not positive
}

// Bounded returns the page with the limit defaulted and capped at MaxLimit
// and the offset capped at MaxOffset.
func (p Page) Bounded() Page {
	if p.Offset > MaxOffset {
		p.Offset = MaxOffset
	}

	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}

	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
