package models

import (
	"github.com/shopspring/decimal"
)

// MidweekServiceReport holds the midweek services of one assembly for one period.
type MidweekServiceReport struct {
	Header  `bson:",inline"`
	Records []MidweekRecord `json:"records" gorm:"serializer:json;type:text" bson:"records"`
}

// MidweekRecord is a single midweek service.
type MidweekRecord struct {
	Day        string          `json:"day" bson:"day" example:"Wednesday"`
	Date       string          `json:"date" bson:"date" example:"2025-11-05"`
	Attendance int             `json:"attendance" bson:"attendance" example:"45"`
	Offering   decimal.Decimal `json:"offering" bson:"offering" example:"120.50"`
	Total      decimal.Decimal `json:"total" bson:"total" example:"120.50"` // Equal to the offering, computed on submission
}

func (MidweekServiceReport) TableName() string {
	return "midweek_service_reports"
}

// Normalize drops empty records and computes the derived fields.
func (r *MidweekServiceReport) Normalize() int {
	kept := make([]MidweekRecord, 0, len(r.Records))
	for _, record := range r.Records {
		if !nonZero([]decimal.Decimal{record.Offering}, record.Attendance) {
			continue
		}
		record.Total = record.Offering
		kept = append(kept, record)
	}

	r.Records = kept
	return len(kept)
}

func (m *MidweekRecord) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}

	*m = MidweekRecord{
		Day:        f.text("day"),
		Date:       f.text("date"),
		Attendance: f.count("attendance"),
		Offering:   f.amount("offering"),
		Total:      f.amount("total"),
	}
	return nil
}
