// Package aggregate folds report documents into totals, breakdowns per
// assembly and period, and derived ratios.
//
// All functions are pure. Missing numbers are zero in the documents
// already, so nothing here rejects input.
package aggregate

import (
	"math"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Divide returns n / d rounded to two decimal places, 0 if d is 0.
func Divide(n, d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return n.DivRound(d, 2)
}

// Percent returns n as a percentage of d rounded to two decimal places,
// 0 if d is 0.
func Percent(n, d decimal.Decimal) decimal.Decimal {
	if d.IsZero() {
		return decimal.Zero
	}
	return n.Mul(hundred).DivRound(d, 2)
}

// DefaultOverlap is the share of the smaller of main service and Sunday
// Bible Study attendance assumed to have attended both.
//
// It is an estimate, not a measured value.
const DefaultOverlap = 0.75

// Correction estimates unique attendance for services where main service
// and Sunday Bible Study attendance were counted separately and people
// attending both were counted twice.
type Correction struct {
	Overlap float64 // Share of the smaller count that attended both, in [0, 1]
}

// NewCorrection returns a Correction with the ratio clamped to [0, 1].
// NaN falls back to DefaultOverlap.
func NewCorrection(ratio float64) Correction {
	if math.IsNaN(ratio) {
		ratio = DefaultOverlap
	}
	return Correction{Overlap: math.Min(1, math.Max(0, ratio))}
}

// Overlapping returns the estimated number of people counted in both.
func (c Correction) Overlapping(main, bibleStudy int) int {
	main, bibleStudy = max(main, 0), max(bibleStudy, 0)
	ratio := math.Min(1, math.Max(0, c.Overlap))

	return int(math.Floor(ratio * float64(min(main, bibleStudy))))
}

// Unique returns the estimated number of distinct attendees. The result
// is never below the larger and never above the sum of both counts.
func (c Correction) Unique(main, bibleStudy int) int {
	main, bibleStudy = max(main, 0), max(bibleStudy, 0)

	unique := main + bibleStudy - c.Overlapping(main, bibleStudy)
	return min(max(unique, main, bibleStudy), main+bibleStudy)
}
