package api

import (
	"context"
	"net/http"
	"time"

	"github.com/district-ledger/backend/internal/aggregate"
	"github.com/district-ledger/backend/internal/httputil"
	"github.com/district-ledger/backend/internal/models"
	"github.com/district-ledger/backend/internal/store"
	"github.com/gin-gonic/gin"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

// Kinds of documents as used in the submission status.
const (
	KindSunday     = "sunday-service-reports"
	KindMidweek    = "midweek-service-reports"
	KindSpecial    = "special-service-reports"
	KindTithe      = "tithe-reports"
	KindOffering   = "offering-reports"
	KindSubmission = "submissions"
)

var kinds = []string{KindSunday, KindMidweek, KindSpecial, KindTithe, KindOffering, KindSubmission}

// AssemblyStatus lists the document kinds an assembly submitted for a period.
type AssemblyStatus struct {
	Assembly       string          `json:"assembly" example:"EMMANUEL"`
	Submitted      map[string]bool `json:"submitted"`                                               // Document kind to whether it was submitted
	Missing        []string        `json:"missing"`                                                 // Kinds not submitted yet
	Complete       bool            `json:"complete" example:"false"`                                // All kinds were submitted
	LastSubmission *time.Time      `json:"lastSubmission,omitempty" example:"2025-11-30T18:02:11Z"` // Latest update of any document
	Registered     bool            `json:"registered" example:"true"`                               // The assembly is on the roster
}

type SubmissionStatusData struct {
	Period     string           `json:"period" example:"November-2025"`
	Assemblies []AssemblyStatus `json:"assemblies"`
	Complete   int              `json:"complete" example:"4"` // Number of assemblies that submitted every kind
	Total      int              `json:"total" example:"10"`
}

type SubmissionStatusResponse struct {
	Success bool                 `json:"success" example:"true"`
	Data    SubmissionStatusData `json:"data"`
}

// headers loads the headers of all documents for the filter, per kind.
func (co Controller) headers(ctx context.Context, f store.Filter) (map[string][]models.Header, error) {
	var (
		d           aggregate.Dataset
		submissions []models.Submission
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d, err = co.dataset(gctx, f)
		return
	})

	g.Go(func() (err error) {
		submissions, err = co.Store.Submissions.All(gctx, f)
		return
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := map[string][]models.Header{}
	for _, r := range d.Sunday {
		result[KindSunday] = append(result[KindSunday], r.Header)
	}
	for _, r := range d.Midweek {
		result[KindMidweek] = append(result[KindMidweek], r.Header)
	}
	for _, r := range d.Special {
		result[KindSpecial] = append(result[KindSpecial], r.Header)
	}
	for _, r := range d.Tithes {
		result[KindTithe] = append(result[KindTithe], r.Header)
	}
	for _, r := range d.Offerings {
		result[KindOffering] = append(result[KindOffering], r.Header)
	}
	for _, r := range submissions {
		result[KindSubmission] = append(result[KindSubmission], r.Header)
	}
	return result, nil
}

// @Summary		Submission status
// @Description	Returns for every assembly which document kinds were submitted for the period
// @Tags			Admin
// @Produce		json
// @Success		200		{object}	SubmissionStatusResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		403		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			month	query		string	true	"Month name or number, or a full period like November-2025"
// @Param			year	query		string	false	"Year, required unless month is a full period"
// @Router			/api/admin/submission-status [get]
func (co Controller) GetSubmissionStatus(c *gin.Context) {
	var q QueryFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	f, err := q.filter()
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	p, ok := f.Period()
	if !ok {
		httputil.NewError(c, http.StatusBadRequest, errPeriodMissing)
		return
	}

	// Only the period selects, all other parameters are ignored
	headers, err := co.headers(c.Request.Context(), store.Filter{Month: f.Month, Year: f.Year})
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, SubmissionStatusResponse{
		Success: true,
		Data:    co.submissionStatus(p.String(), headers),
	})
}

func (co Controller) submissionStatus(period string, headers map[string][]models.Header) SubmissionStatusData {
	roster := co.Auth.Roster()
	statuses := map[string]*AssemblyStatus{}

	entry := func(name string) *AssemblyStatus {
		s, ok := statuses[name]
		if !ok {
			s = &AssemblyStatus{Assembly: name, Submitted: map[string]bool{}}
			for _, k := range kinds {
				s.Submitted[k] = false
			}
			_, s.Registered = slices.BinarySearch(roster, name)
			statuses[name] = s
		}
		return s
	}

	for _, name := range roster {
		entry(name)
	}

	for kind, hs := range headers {
		for _, h := range hs {
			s := entry(h.Assembly)
			s.Submitted[kind] = true
			if s.LastSubmission == nil || h.UpdatedAt.After(*s.LastSubmission) {
				updated := h.UpdatedAt
				s.LastSubmission = &updated
			}
		}
	}

	data := SubmissionStatusData{Period: period, Assemblies: make([]AssemblyStatus, 0, len(statuses))}
	for _, s := range statuses {
		s.Missing = []string{}
		for _, k := range kinds {
			if !s.Submitted[k] {
				s.Missing = append(s.Missing, k)
			}
		}

		s.Complete = len(s.Missing) == 0
		if s.Complete {
			data.Complete++
		}
		data.Assemblies = append(data.Assemblies, *s)
	}

	slices.SortFunc(data.Assemblies, func(a, b AssemblyStatus) int {
		switch {
		case a.Assembly < b.Assembly:
			return -1
		case a.Assembly > b.Assembly:
			return 1
		}
		return 0
	})

	data.Total = len(data.Assemblies)
	return data
}
