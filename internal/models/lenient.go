package models

import (
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// fields holds the raw members of a JSON object.
//
// Record rows are entered by hand in the assembly offices. Their numeric
// members arrive as numbers, numeric strings, empty strings or not at all.
// Anything that is not a number counts as zero, only a body that is not a
// JSON object at all is rejected.
type fields map[string]json.RawMessage

func decodeFields(data []byte) (fields, error) {
	var f fields
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return f, nil
}

// amount returns the member as decimal, zero if it is missing or not a number.
func (f fields) amount(key string) decimal.Decimal {
	raw, ok := f[key]
	if !ok {
		return decimal.Zero
	}

	s := strings.TrimSpace(strings.Trim(strings.TrimSpace(string(raw)), `"`))
	if s == "" || s == "null" {
		return decimal.Zero
	}

	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// count returns the member as non-negative integer, rounded down.
func (f fields) count(key string) int {
	d := f.amount(key)
	if d.IsNegative() {
		return 0
	}

	n := d.Floor().IntPart()
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(n)
}

// text returns the member as string. Numbers are returned in their JSON form.
func (f fields) text(key string) string {
	raw, ok := f[key]
	if !ok {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	if string(raw) == "null" {
		return ""
	}
	return strings.TrimSpace(string(raw))
}

// nonZero reports if any of the values is non-zero.
func nonZero(amounts []decimal.Decimal, counts ...int) bool {
	for _, a := range amounts {
		if !a.IsZero() {
			return true
		}
	}

	for _, c := range counts {
		if c != 0 {
			return true
		}
	}
	return false
}

// sum adds up all values.
func sum(amounts []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Amount is a decimal that decodes like the monetary members of records:
// anything that is not a number is zero.
type Amount struct {
	decimal.Decimal
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	a.Decimal = fields{"v": data}.amount("v")
	return nil
}

// Count is a non-negative integer that decodes like the attendance
// members of records.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	*c = Count(fields{"v": data}.count("v"))
	return nil
}
