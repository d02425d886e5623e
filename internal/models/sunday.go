package models

import (
	"github.com/shopspring/decimal"
)

// SundayServiceReport holds the Sunday services of one assembly for one period.
type SundayServiceReport struct {
	Header  `bson:",inline"`
	Records []SundayRecord `json:"records" gorm:"serializer:json;type:text" bson:"records"`
}

// SundayRecord is a single Sunday service.
type SundayRecord struct {
	Date                 string `json:"date" bson:"date" example:"2025-11-02"`
	Week                 string `json:"week" bson:"week" example:"Week 1"`
	MainAttendance       int    `json:"mainAttendance" bson:"mainAttendance" example:"120"`
	BibleStudyAttendance int    `json:"bibleStudyAttendance" bson:"bibleStudyAttendance" example:"80"` // Sunday Bible Study (SBS)
	Visitors             int    `json:"visitors" bson:"visitors" example:"4"`

	Tithes           decimal.Decimal `json:"tithes" bson:"tithes" example:"1000"`
	Offerings        decimal.Decimal `json:"offerings" bson:"offerings" example:"500"`
	SpecialOfferings decimal.Decimal `json:"specialOfferings" bson:"specialOfferings"`
	EducationFund    decimal.Decimal `json:"educationFund" bson:"educationFund"`
	PastorsWarfare   decimal.Decimal `json:"pastorsWarfare" bson:"pastorsWarfare"`
	Vigil            decimal.Decimal `json:"vigil" bson:"vigil"`
	Thanksgiving     decimal.Decimal `json:"thanksgiving" bson:"thanksgiving"`
	RetireesFund     decimal.Decimal `json:"retireesFund" bson:"retireesFund"`
	MissionariesFund decimal.Decimal `json:"missionariesFund" bson:"missionariesFund"`
	YouthOfferings   decimal.Decimal `json:"youthOfferings" bson:"youthOfferings"`
	DistrictSupport  decimal.Decimal `json:"districtSupport" bson:"districtSupport"`

	Total           decimal.Decimal `json:"total" bson:"total" example:"1500"`                    // Sum of all monetary fields, computed on submission
	TotalAttendance int             `json:"totalAttendance" bson:"totalAttendance" example:"204"` // Main + SBS + visitors as recorded, not corrected for overlap
}

func (SundayServiceReport) TableName() string {
	return "sunday_service_reports"
}

// Normalize drops empty records and computes the derived fields.
func (r *SundayServiceReport) Normalize() int {
	kept := make([]SundayRecord, 0, len(r.Records))
	for _, record := range r.Records {
		if !record.HasValue() {
			continue
		}
		record.Derive()
		kept = append(kept, record)
	}

	r.Records = kept
	return len(kept)
}

// Amounts returns all monetary fields.
func (s SundayRecord) Amounts() []decimal.Decimal {
	return []decimal.Decimal{
		s.Tithes,
		s.Offerings,
		s.SpecialOfferings,
		s.EducationFund,
		s.PastorsWarfare,
		s.Vigil,
		s.Thanksgiving,
		s.RetireesFund,
		s.MissionariesFund,
		s.YouthOfferings,
		s.DistrictSupport,
	}
}

// HasValue reports if any attendance or monetary field is non-zero.
func (s SundayRecord) HasValue() bool {
	return nonZero(s.Amounts(), s.MainAttendance, s.BibleStudyAttendance, s.Visitors)
}

// Derive sets Total and TotalAttendance from the sub-fields.
func (s *SundayRecord) Derive() {
	s.Total = sum(s.Amounts())
	s.TotalAttendance = s.MainAttendance + s.BibleStudyAttendance + s.Visitors
}

func (s *SundayRecord) UnmarshalJSON(data []byte) error {
	f, err := decodeFields(data)
	if err != nil {
		return err
	}

	*s = SundayRecord{
		Date:                 f.text("date"),
		Week:                 f.text("week"),
		MainAttendance:       f.count("mainAttendance"),
		BibleStudyAttendance: f.count("bibleStudyAttendance"),
		Visitors:             f.count("visitors"),
		Tithes:               f.amount("tithes"),
		Offerings:            f.amount("offerings"),
		SpecialOfferings:     f.amount("specialOfferings"),
		EducationFund:        f.amount("educationFund"),
		PastorsWarfare:       f.amount("pastorsWarfare"),
		Vigil:                f.amount("vigil"),
		Thanksgiving:         f.amount("thanksgiving"),
		RetireesFund:         f.amount("retireesFund"),
		MissionariesFund:     f.amount("missionariesFund"),
		YouthOfferings:       f.amount("youthOfferings"),
		DistrictSupport:      f.amount("districtSupport"),
		Total:                f.amount("total"),
		TotalAttendance:      f.count("totalAttendance"),
	}
	return nil
}
