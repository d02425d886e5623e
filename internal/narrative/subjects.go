package narrative

import (
	"strings"
	"text/template"

	"github.com/district-ledger/backend/internal/aggregate"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var funcs = template.FuncMap{
	"money": func(d decimal.Decimal) string {
		return d.StringFixed(2)
	},
	"percent": func(n, d decimal.Decimal) string {
		return aggregate.Percent(n, d).StringFixed(2) + "%"
	},
}

func render(t *template.Template, data any) (string, error) {
	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", err
	}
	return strings.TrimSpace(b.String()), nil
}

// Report is a free form set of labelled figures of one assembly.
type Report struct {
	Assembly string                     `json:"assembly" example:"EMMANUEL"`
	Month    string                     `json:"month" example:"November-2025"`
	Data     map[string]decimal.Decimal `json:"data"`
}

var reportTemplate = template.Must(template.New("report").Funcs(funcs).Parse(`
Report for {{ .Assembly }}, {{ .Month }}

{{ range $label, $value := .Data }}{{ $label }}: {{ money $value }}
{{ else }}No figures were submitted for this period.
{{ end }}
This report was generated from the submitted figures without further analysis.
`))

func (r Report) Instruction() string {
	return "Summarize the labelled figures of the assembly for the given month in two short paragraphs."
}

func (r Report) Fallback() (string, error) {
	return render(reportTemplate, r)
}

// FinancialTotals are the income figures of one assembly as sent by a client.
type FinancialTotals struct {
	Tithes                  decimal.Decimal `json:"tithes" example:"3000"`
	Offerings               decimal.Decimal `json:"offerings" example:"2000"`
	SpecialOfferings        decimal.Decimal `json:"specialOfferings"`
	MidweekOfferings        decimal.Decimal `json:"midweekOfferings"`
	SpecialServiceOfferings decimal.Decimal `json:"specialServiceOfferings"`
	TotalIncome             decimal.Decimal `json:"totalIncome" example:"5000"` // Sum of all income, computed when it is zero
	Attendance              int             `json:"attendance" example:"240"`
}

// Complete sets TotalIncome from the single figures if it is zero.
func (t *FinancialTotals) Complete() {
	if t.TotalIncome.IsZero() {
		t.TotalIncome = decimal.Sum(t.Tithes, t.Offerings, t.SpecialOfferings, t.MidweekOfferings, t.SpecialServiceOfferings)
	}
}

// Financial is the financial report of one assembly.
type Financial struct {
	Assembly string          `json:"assembly" example:"EMMANUEL"`
	Month    string          `json:"month" example:"November-2025"`
	Totals   FinancialTotals `json:"totals"`
}

var financialTemplate = template.Must(template.New("financial").Funcs(funcs).Parse(`
Financial report for {{ .Assembly }}, {{ .Month }}

Total income: {{ money .Totals.TotalIncome }}
Tithes: {{ money .Totals.Tithes }} ({{ percent .Totals.Tithes .Totals.TotalIncome }})
Offerings: {{ money .Totals.Offerings }} ({{ percent .Totals.Offerings .Totals.TotalIncome }})
Special offerings: {{ money .Totals.SpecialOfferings }}
Midweek offerings: {{ money .Totals.MidweekOfferings }}
Special service offerings: {{ money .Totals.SpecialServiceOfferings }}
Attendance: {{ .Totals.Attendance }}
`))

func (f Financial) Instruction() string {
	return "Write the monthly financial report of the assembly. Describe the total income, the share of tithes and offerings and the attendance."
}

func (f Financial) Fallback() (string, error) {
	f.Totals.Complete()
	return render(financialTemplate, f)
}

// Admin is the district report over one or more assemblies.
type Admin struct {
	Scope       string                      `json:"scope" example:"All assemblies"` // The assembly or "All assemblies"
	Period      string                      `json:"period" example:"November-2025"` // The period or "All periods"
	Summary     aggregate.Summary           `json:"summary"`
	PerAssembly []aggregate.AssemblySummary `json:"perAssembly"`
}

var adminTemplate = template.Must(template.New("admin").Funcs(funcs).Parse(`
District financial report: {{ .Scope }}, {{ .Period }}

Total income: {{ money .Summary.TotalIncome }} from {{ .Summary.ReportCount }} service reports
Sunday services: {{ money .Summary.SundayIncome }}
Midweek services: {{ money .Summary.MidweekIncome }}
Special services: {{ money .Summary.SpecialIncome }}
Tithes: {{ money .Summary.Sunday.Tithes }} ({{ .Summary.TitheShare.StringFixed 2 }}% of income)

Attendance: {{ .Summary.TotalAttendance }} ({{ .Summary.RawAttendance }} counted, {{ .Summary.AttendanceCorrection }} estimated double counts removed)
Income per attendee: {{ money .Summary.IncomePerAttendee }}
{{ if .PerAssembly }}
Assemblies by income:
{{ range .Ranked }}- {{ .Assembly }}: {{ money .TotalIncome }}, average {{ money .AverageIncome }} per report
{{ end }}{{ end }}`))

func (a Admin) Instruction() string {
	return "Write the district financial report. Describe the total income, the contribution of each service kind, the attendance and compare the assemblies."
}

func (a Admin) Fallback() (string, error) {
	return render(adminTemplate, a)
}

// Ranked returns the assemblies ordered by income, highest first.
func (a Admin) Ranked() []aggregate.AssemblySummary {
	ranked := slices.Clone(a.PerAssembly)
	slices.SortStableFunc(ranked, func(x, y aggregate.AssemblySummary) int {
		return y.TotalIncome.Cmp(x.TotalIncome)
	})
	return ranked
}
