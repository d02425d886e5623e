package models

import (
	"github.com/shopspring/decimal"
)

// SpecialServiceReport holds special services (conventions, crusades,
// harvests) of one assembly for one period.
type SpecialServiceReport struct {
	Header  `bson:",inline"`
	Records []SpecialRecord `json:"records" gorm:"serializer:json;type:text" bson:"records"`
}

// SpecialRecord is a single special service.
type SpecialRecord struct {
	ServiceName string          `json:"serviceName" bson:"serviceName" example:"Harvest"`
	Date        string          `json:"date" bson:"date" example:"2025-11-16"`
	Attendance  int             `json:"attendance" bson:"attendance" example:"310"`
	Offering    decimal.Decimal `json:"offering" bson:"offering" example:"2450"`
}

func (SpecialServiceReport) TableName() string {
	return "special_service_reports"
}

// Normalize drops empty records.
func (r *SpecialServiceReport) Normalize() int {
	kept := make([]SpecialRecord, 0, len(r.Records))
	for _, record := range r.Records {
		if !nonZero([]decimal.Decimal{record.Offering}, record.Attendance) {
			continue
		}
		kept = append(kept, record)
	}

	r.Records = kept
	return len(kept)
}

func (s *SpecialRecord) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}

	*s = SpecialRecord{
		ServiceName: f.text("serviceName"),
		Date:        f.text("date"),
		Attendance:  f.count("attendance"),
		Offering:    f.amount("offering"),
	}
	return nil
}
