package models

import (
	"github.com/shopspring/decimal"
)

// TitheReport holds the tithes of the members of one assembly for one period.
type TitheReport struct {
	Header  `bson:",inline"`
	Records []TitheRecord `json:"records" gorm:"serializer:json;type:text" bson:"records"`
}

// TitheRecord holds the tithes of one member, one value per week.
type TitheRecord struct {
	Name  string          `json:"name" bson:"name" example:"Kofi Mensah"`
	Week1 decimal.Decimal `json:"week1" bson:"week1" example:"50"`
	Week2 decimal.Decimal `json:"week2" bson:"week2"`
	Week3 decimal.Decimal `json:"week3" bson:"week3"`
	Week4 decimal.Decimal `json:"week4" bson:"week4"`
	Week5 decimal.Decimal `json:"week5" bson:"week5"`
	Total decimal.Decimal `json:"total" bson:"total" example:"50"` // Sum of all weeks, computed on submission
}

func (TitheReport) TableName() string {
	return "tithe_reports"
}

// Normalize drops members without tithes and computes the totals.
func (r *TitheReport) Normalize() int {
	kept := make([]TitheRecord, 0, len(r.Records))
	for _, record := range r.Records {
		if !nonZero(record.Weeks()) {
			continue
		}
		record.Total = sum(record.Weeks())
		kept = append(kept, record)
	}

	r.Records = kept
	return len(kept)
}

// Weeks returns the weekly values in order.
func (t TitheRecord) Weeks() []decimal.Decimal {
	return []decimal.Decimal{t.Week1, t.Week2, t.Week3, t.Week4, t.Week5}
}

func (t *TitheRecord) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}

	*t = TitheRecord{
		Name:  f.text("name"),
		Week1: f.amount("week1"),
		Week2: f.amount("week2"),
		Week3: f.amount("week3"),
		Week4: f.amount("week4"),
		Week5: f.amount("week5"),
		Total: f.amount("total"),
	}
	return nil
}
