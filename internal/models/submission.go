package models

import (
	"github.com/shopspring/decimal"
)

// Submission is the simple weekly entry form: one record per week with
// the headline financial figures.
//
// It overlaps with the Sunday service and tithe reports and is not
// reconciled with them.
type Submission struct {
	Header  `bson:",inline"`
	Records []SubmissionRecord `json:"records" gorm:"serializer:json;type:text" bson:"records"`
}

// SubmissionRecord holds the figures of one week.
type SubmissionRecord struct {
	Week           string          `json:"week" bson:"week" example:"Week 1"`
	Date           string          `json:"date" bson:"date" example:"2025-11-02"`
	Tithe          decimal.Decimal `json:"tithe" bson:"tithe" example:"900"`
	Offering       decimal.Decimal `json:"offering" bson:"offering" example:"350"`
	Welfare        decimal.Decimal `json:"welfare" bson:"welfare" example:"40"`
	MissionaryFund decimal.Decimal `json:"missionaryFund" bson:"missionaryFund" example:"25"`
	Total          decimal.Decimal `json:"total" bson:"total" example:"1315"` // Sum of all figures, computed on submission
	Remarks        string          `json:"remarks" bson:"remarks"`
}

func (Submission) TableName() string {
	return "submissions"
}

// Normalize drops empty weeks and computes the totals.
func (r *Submission) Normalize() int {
	kept := make([]SubmissionRecord, 0, len(r.Records))
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

// Amounts returns all monetary figures.
func (s SubmissionRecord) Amounts() []decimal.Decimal {
	return []decimal.Decimal{s.Tithe, s.Offering, s.Welfare, s.MissionaryFund}
}

func (s *SubmissionRecord) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}

	*s = SubmissionRecord{
		Week:           f.text("week"),
		Date:           f.text("date"),
		Tithe:          f.amount("tithe"),
		Offering:       f.amount("offering"),
		Welfare:        f.amount("welfare"),
		MissionaryFund: f.amount("missionaryFund"),
		Total:          f.amount("total"),
		Remarks:        f.text("remarks"),
	}
	return nil
}
