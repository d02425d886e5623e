package aggregate

import (
	"github.com/district-ledger/backend/internal/models"
	"github.com/shopspring/decimal"
)

// SundayTotals are the field-wise sums of Sunday service reports.
type SundayTotals struct {
	Reports              int `json:"reports"`              // Number of reports
	Services             int `json:"services"`             // Number of services in all reports
	MainAttendance       int `json:"mainAttendance"`       // Main service attendance
	BibleStudyAttendance int `json:"bibleStudyAttendance"` // Sunday Bible Study attendance
	Visitors             int `json:"visitors"`             // Visitors
	RawAttendance        int `json:"rawAttendance"`        // Main + SBS + visitors as recorded
	Attendance           int `json:"attendance"`           // Attendance corrected for people attending main service and SBS

	Tithes           decimal.Decimal `json:"tithes"`
	Offerings        decimal.Decimal `json:"offerings"`
	SpecialOfferings decimal.Decimal `json:"specialOfferings"`
	EducationFund    decimal.Decimal `json:"educationFund"`
	PastorsWarfare   decimal.Decimal `json:"pastorsWarfare"`
	Vigil            decimal.Decimal `json:"vigil"`
	Thanksgiving     decimal.Decimal `json:"thanksgiving"`
	RetireesFund     decimal.Decimal `json:"retireesFund"`
	MissionariesFund decimal.Decimal `json:"missionariesFund"`
	YouthOfferings   decimal.Decimal `json:"youthOfferings"`
	DistrictSupport  decimal.Decimal `json:"districtSupport"`
	Total            decimal.Decimal `json:"total"` // Sum of all monetary fields
}

// AttendanceCorrection is the number of attendees removed by the correction.
func (t SundayTotals) AttendanceCorrection() int {
	return t.RawAttendance - t.Attendance
}

// SumSunday sums all records of all reports.
func SumSunday(reports []models.SundayServiceReport, c Correction) SundayTotals {
	var t SundayTotals
	t.Reports = len(reports)

	for _, report := range reports {
		for _, r := range report.Records {
			t.Services++
			t.MainAttendance += r.MainAttendance
			t.BibleStudyAttendance += r.BibleStudyAttendance
			t.Visitors += r.Visitors
			t.RawAttendance += r.MainAttendance + r.BibleStudyAttendance + r.Visitors
			t.Attendance += c.Unique(r.MainAttendance, r.BibleStudyAttendance) + max(r.Visitors, 0)

			t.Tithes = t.Tithes.Add(r.Tithes)
			t.Offerings = t.Offerings.Add(r.Offerings)
			t.SpecialOfferings = t.SpecialOfferings.Add(r.SpecialOfferings)
			t.EducationFund = t.EducationFund.Add(r.EducationFund)
			t.PastorsWarfare = t.PastorsWarfare.Add(r.PastorsWarfare)
			t.Vigil = t.Vigil.Add(r.Vigil)
			t.Thanksgiving = t.Thanksgiving.Add(r.Thanksgiving)
			t.RetireesFund = t.RetireesFund.Add(r.RetireesFund)
			t.MissionariesFund = t.MissionariesFund.Add(r.MissionariesFund)
			t.YouthOfferings = t.YouthOfferings.Add(r.YouthOfferings)
			t.DistrictSupport = t.DistrictSupport.Add(r.DistrictSupport)
		}
	}

	t.Total = decimal.Sum(t.Tithes,
		t.Offerings,
		t.SpecialOfferings,
		t.EducationFund,
		t.PastorsWarfare,
		t.Vigil,
		t.Thanksgiving,
		t.RetireesFund,
		t.MissionariesFund,
		t.YouthOfferings,
		t.DistrictSupport,
	)
	return t
}

// ServiceTotals are the sums of midweek or special service reports.
type ServiceTotals struct {
	Reports    int             `json:"reports"`    // Number of reports
	Services   int             `json:"services"`   // Number of services in all reports
	Attendance int             `json:"attendance"` // Attendance of all services
	Offering   decimal.Decimal `json:"offering"`   // Offerings of all services
}

// SumMidweek sums all records of all reports.
func SumMidweek(reports []models.MidweekServiceReport) ServiceTotals {
	t := ServiceTotals{Reports: len(reports)}
	for _, report := range reports {
		for _, r := range report.Records {
			t.Services++
			t.Attendance += r.Attendance
			t.Offering = t.Offering.Add(r.Offering)
		}
	}
	return t
}

// SumSpecial sums all records of all reports.
func SumSpecial(reports []models.SpecialServiceReport) ServiceTotals {
	t := ServiceTotals{Reports: len(reports)}
	for _, report := range reports {
		for _, r := range report.Records {
			t.Services++
			t.Attendance += r.Attendance
			t.Offering = t.Offering.Add(r.Offering)
		}
	}
	return t
}

// TitheTotals are the sums of tithe reports.
type TitheTotals struct {
	Reports int               `json:"reports"` // Number of reports
	Members int               `json:"members"` // Number of member rows in all reports
	Weeks   []decimal.Decimal `json:"weeks"`   // Tithes per week of the month, five entries
	Total   decimal.Decimal   `json:"total"`   // Tithes of all weeks
}

// SumTithe sums all records of all reports.
func SumTithe(reports []models.TitheReport) TitheTotals {
	t := TitheTotals{
		Reports: len(reports),
		Weeks:   []decimal.Decimal{decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero},
	}

	for _, report := range reports {
		for _, r := range report.Records {
			t.Members++
			for i, w := range r.Weeks() {
				t.Weeks[i] = t.Weeks[i].Add(w)
			}
		}
	}

	t.Total = decimal.Sum(decimal.Zero, t.Weeks...)
	return t
}

// OfferingTotals are the sums of offering reports.
type OfferingTotals struct {
	Reports      int             `json:"reports"` // Number of reports
	Weeks        int             `json:"weeks"`   // Number of weekly rows in all reports
	General      decimal.Decimal `json:"general"`
	Special      decimal.Decimal `json:"special"`
	Thanksgiving decimal.Decimal `json:"thanksgiving"`
	SeedSowing   decimal.Decimal `json:"seedSowing"`
	Total        decimal.Decimal `json:"total"` // Sum of all categories
}

// SumOffering sums all records of all reports.
func SumOffering(reports []models.OfferingReport) OfferingTotals {
	t := OfferingTotals{Reports: len(reports)}
	for _, report := range reports {
		for _, r := range report.Records {
			t.Weeks++
			t.General = t.General.Add(r.General)
			t.Special = t.Special.Add(r.Special)
			t.Thanksgiving = t.Thanksgiving.Add(r.Thanksgiving)
			t.SeedSowing = t.SeedSowing.Add(r.SeedSowing)
		}
	}

	t.Total = decimal.Sum(t.General, t.Special, t.Thanksgiving, t.SeedSowing)
	return t
}

// SubmissionTotals are the sums of weekly submissions.
type SubmissionTotals struct {
	Reports        int             `json:"reports"` // Number of submissions
	Weeks          int             `json:"weeks"`   // Number of weekly rows in all submissions
	Tithe          decimal.Decimal `json:"tithe"`
	Offering       decimal.Decimal `json:"offering"`
	Welfare        decimal.Decimal `json:"welfare"`
	MissionaryFund decimal.Decimal `json:"missionaryFund"`
	Total          decimal.Decimal `json:"total"` // Sum of all figures
}

// SumSubmissions sums all records of all submissions.
func SumSubmissions(submissions []models.Submission) SubmissionTotals {
	t := SubmissionTotals{Reports: len(submissions)}
	for _, s := range submissions {
		for _, r := range s.Records {
			t.Weeks++
			t.Tithe = t.Tithe.Add(r.Tithe)
			t.Offering = t.Offering.Add(r.Offering)
			t.Welfare = t.Welfare.Add(r.Welfare)
			t.MissionaryFund = t.MissionaryFund.Add(r.MissionaryFund)
		}
	}

	t.Total = decimal.Sum(t.Tithe, t.Offering, t.Welfare, t.MissionaryFund)
	return t
}
