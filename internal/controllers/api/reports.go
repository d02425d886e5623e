package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/district-ledger/backend/internal/httputil"
	"github.com/district-ledger/backend/internal/models"
	"github.com/district-ledger/backend/internal/store"
	"github.com/district-ledger/backend/internal/types"
	"github.com/gin-gonic/gin"
)

// reports serves the endpoints of one document kind.
type reports[T any, D models.Document[T]] struct {
	name       string // Human readable name of the kind, e.g. "Tithe report"
	collection store.Collection[T, D]
}

func newReports[T any, D models.Document[T]](name string, c store.Collection[T, D]) reports[T, D] {
	return reports[T, D]{name: name, collection: c}
}

// registerReports registers the routes for one document kind with
// the RouterGroup that is passed.
func registerReports[T any, D models.Document[T]](r *gin.RouterGroup, h reports[T, D]) {
	// Root group
	{
		r.OPTIONS("", h.OptionsList)
		r.GET("", h.List)
		r.POST("", h.Create)
	}

	// Document with ID
	{
		r.OPTIONS("/:id", h.OptionsDetail)
		r.GET("/:id", h.Get)
		r.DELETE("/:id", h.Delete)
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Router			/api/sunday-service-reports [options]
// @Router			/api/midweek-service-reports [options]
// @Router			/api/special-service-reports [options]
// @Router			/api/tithe-reports [options]
// @Router			/api/offering-reports [options]
// @Router			/api/submissions [options]
func (h reports[T, D]) OptionsList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reports
// @Success		204
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/api/sunday-service-reports/{id} [options]
// @Router			/api/midweek-service-reports/{id} [options]
// @Router			/api/special-service-reports/{id} [options]
// @Router			/api/tithe-reports/{id} [options]
// @Router			/api/offering-reports/{id} [options]
// @Router			/api/submissions/{id} [options]
func (h reports[T, D]) OptionsDetail(c *gin.Context) {
	_, ok := h.get(c)
	if !ok {
		return
	}

	httputil.OptionsGetDelete(c)
}

// Create stores the document for its assembly and month. An existing
// document for both is replaced.
//
// @Summary		Submit report
// @Description	Creates the report of an assembly for a month or replaces the existing one. Records without any non-zero value are dropped, totals are computed.
// @Tags			Reports
// @Accept			json
// @Produce		json
// @Success		200		{object}	Response	"Existing report replaced"
// @Success		201		{object}	Response	"Report created"
// @Failure		400		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			report	body		models.SundayServiceReport	true	"The report. The records differ per kind, see the models"
// @Router			/api/sunday-service-reports [post]
// @Router			/api/midweek-service-reports [post]
// @Router			/api/special-service-reports [post]
// @Router			/api/tithe-reports [post]
// @Router			/api/offering-reports [post]
// @Router			/api/submissions [post]
func (h reports[T, D]) Create(c *gin.Context) {
	var doc T
	if err := httputil.BindData(c, &doc); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	d := D(&doc)
	header := d.Meta()
	header.Assembly = types.AssemblyName(header.Assembly)
	header.SubmittedBy = strings.TrimSpace(header.SubmittedBy)
	header.ServiceType = strings.TrimSpace(header.ServiceType)

	if header.Assembly == "" || types.IsAllAssemblies(header.Assembly) {
		httputil.NewError(c, http.StatusBadRequest, errAssemblyMissing)
		return
	}

	if header.Period == "" {
		httputil.NewError(c, http.StatusBadRequest, errMonthMissing)
		return
	}

	if d.Normalize() == 0 {
		httputil.NewError(c, http.StatusBadRequest, errNoValidRecords)
		return
	}

	created, err := h.collection.Upsert(c.Request.Context(), d)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	code, verb := http.StatusOK, "updated"
	if created {
		code, verb = http.StatusCreated, "created"
	}

	c.JSON(code, Response{
		Success: true,
		Message: fmt.Sprintf("%s for %s, %s %s", h.name, header.Assembly, header.Period, verb),
		Data:    doc,
	})
}

// @Summary		List reports
// @Description	Returns the reports matching the filter, newest first
// @Tags			Reports
// @Produce		json
// @Success		200			{object}	ListResponse
// @Failure		400			{object}	httputil.HTTPError
// @Failure		500			{object}	httputil.HTTPError
// @Param			assembly	query		string	false	"Filter by assembly, 'all' for every assembly"
// @Param			month		query		string	false	"Filter by month name or number"
// @Param			year		query		string	false	"Filter by year"
// @Param			startDate	query		string	false	"Submitted at or after this date"
// @Param			endDate		query		string	false	"Submitted at or before this date"
// @Param			serviceType	query		string	false	"Filter by service type"
// @Param			offset		query		uint	false	"The offset of the first report returned. Defaults to 0."
// @Param			limit		query		int		false	"Maximum number of reports to return. Defaults to 50, at most 500."
// @Router			/api/sunday-service-reports [get]
// @Router			/api/midweek-service-reports [get]
// @Router			/api/special-service-reports [get]
// @Router			/api/tithe-reports [get]
// @Router			/api/offering-reports [get]
// @Router			/api/submissions [get]
func (h reports[T, D]) List(c *gin.Context) {
	var q QueryFilter
	if err := c.ShouldBindQuery(&q); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	filter, err := q.filter()
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	page := q.page()
	docs, total, err := h.collection.Find(c.Request.Context(), filter, page)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, ListResponse{
		Success: true,
		Data:    docs,
		Pagination: Pagination{
			Count:  len(docs),
			Total:  total,
			Offset: page.Offset,
			Limit:  page.Limit,
		},
	})
}

// @Summary		Get report
// @Description	Returns a specific report
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	Response
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/api/sunday-service-reports/{id} [get]
// @Router			/api/midweek-service-reports/{id} [get]
// @Router			/api/special-service-reports/{id} [get]
// @Router			/api/tithe-reports/{id} [get]
// @Router			/api/offering-reports/{id} [get]
// @Router			/api/submissions/{id} [get]
func (h reports[T, D]) Get(c *gin.Context) {
	doc, ok := h.get(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    doc,
	})
}

// @Summary		Delete report
// @Description	Deletes a report
// @Tags			Reports
// @Produce		json
// @Success		200	{object}	Response
// @Failure		400	{object}	httputil.HTTPError
// @Failure		404	{object}	httputil.HTTPError
// @Failure		500	{object}	httputil.HTTPError
// @Param			id	path		string	true	"ID formatted as string"
// @Router			/api/sunday-service-reports/{id} [delete]
// @Router			/api/midweek-service-reports/{id} [delete]
// @Router			/api/special-service-reports/{id} [delete]
// @Router			/api/tithe-reports/{id} [delete]
// @Router			/api/offering-reports/{id} [delete]
// @Router			/api/submissions/{id} [delete]
func (h reports[T, D]) Delete(c *gin.Context) {
	id, err := httputil.ParseUUID(c.Param("id"))
	if err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	if err := h.collection.Delete(c.Request.Context(), id); err != nil {
		httputil.NewError(c, status(err), err)
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Message: h.name + " deleted",
	})
}

// get returns the document identified by the id path parameter. It writes
// the error response and returns false if there is none.
func (h reports[T, D]) get(c *gin.Context) (T, bool) {
	var doc T

	id, err := httputil.ParseUUID(c.Param("id"))
	if err != nil {
		httputil.NewError(c, status(err), err)
		return doc, false
	}

	doc, err = h.collection.Get(c.Request.Context(), id)
	if err != nil {
		httputil.NewError(c, status(err), err)
		return doc, false
	}

	return doc, true
}
