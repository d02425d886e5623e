package models

import (
	"github.com/shopspring/decimal"
)

// OfferingReport holds the weekly offerings of one assembly for one period,
// split into their named categories.
type OfferingReport struct {
	Header  `bson:",inline"`
	Records []OfferingRecord `json:"records" gorm:"serializer:json;type:text" bson:"records"`
}

// OfferingRecord holds the offerings of one week.
type OfferingRecord struct {
	Week         string          `json:"week" bson:"week" example:"Week 2"`
	Date         string          `json:"date" bson:"date" example:"2025-11-09"`
	General      decimal.Decimal `json:"general" bson:"general" example:"300"`
	Special      decimal.Decimal `json:"special" bson:"special"`
	Thanksgiving decimal.Decimal `json:"thanksgiving" bson:"thanksgiving"`
	SeedSowing   decimal.Decimal `json:"seedSowing" bson:"seedSowing"`
	Total        decimal.Decimal `json:"total" bson:"total" example:"300"` // Sum of all categories, computed on submission
}

func (OfferingReport) TableName() string {
	return "offering_reports"
}

// Normalize drops empty weeks and computes the totals.
func (r *OfferingReport) Normalize() int {
	kept := make([]OfferingRecord, 0, len(r.Records))
	for _, record := range r.Records {
		if !nonZero(record.Amounts()) {
			continue
		}
		record.Total = sum(record.Amounts())
		kept = append(kept, record)
	}

	r.Records = kept
	return len(kept)
}

// Amounts returns all offering categories.
func (o OfferingRecord) Amounts() []decimal.Decimal {
	return []decimal.Decimal{o.General, o.Special, o.Thanksgiving, o.SeedSowing}
}

func (o *OfferingRecord) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}

	*o = OfferingRecord{
		Week:         f.text("week"),
		Date:         f.text("date"),
		General:      f.amount("general"),
		Special:      f.amount("special"),
		Thanksgiving: f.amount("thanksgiving"),
		SeedSowing:   f.amount("seedSowing"),
		Total:        f.amount("total"),
	}
	return nil
}
