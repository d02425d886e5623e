// Package api contains the handlers of the /api endpoints.
package api

import (
	"github.com/district-ledger/backend/internal/aggregate"
	"github.com/district-ledger/backend/internal/auth"
	"github.com/district-ledger/backend/internal/httputil"
	"github.com/district-ledger/backend/internal/narrative"
	"github.com/district-ledger/backend/internal/store"
	"github.com/gin-gonic/gin"
)

// Controller holds the dependencies of all handlers.
type Controller struct {
	Store      *store.Store
	Auth       *auth.Authenticator
	Narrator   *narrative.Narrator
	Correction aggregate.Correction
}

// RegisterRoutes registers all /api routes with the RouterGroup that is passed.
func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/login", httputil.OptionsPost)
	r.POST("/login", co.Login)

	// Everything else requires a session when authentication is enabled
	protected := r.Group("", co.Auth.Middleware(""))

	registerReports(protected.Group("/sunday-service-reports"), newReports("Sunday service report", co.Store.Sunday))
	registerReports(protected.Group("/midweek-service-reports"), newReports("Midweek service report", co.Store.Midweek))
	registerReports(protected.Group("/special-service-reports"), newReports("Special service report", co.Store.Special))
	registerReports(protected.Group("/tithe-reports"), newReports("Tithe report", co.Store.Tithes))
	registerReports(protected.Group("/offering-reports"), newReports("Offering report", co.Store.Offerings))
	registerReports(protected.Group("/submissions"), newReports("Submission", co.Store.Submissions))

	protected.OPTIONS("/financial-reports", httputil.OptionsGet)
	protected.GET("/financial-reports", co.GetFinancialReport)

	protected.OPTIONS("/ai/report", httputil.OptionsPost)
	protected.POST("/ai/report", co.CreateNarrativeReport)
	protected.OPTIONS("/ai/financial-report", httputil.OptionsPost)
	protected.POST("/ai/financial-report", co.CreateFinancialNarrative)
	protected.OPTIONS("/generate/financial-report", httputil.OptionsPost)
	protected.POST("/generate/financial-report", co.CreateFinancialNarrative)

	admin := r.Group("/admin", co.Auth.Middleware(auth.RoleAdmin))
	{
		admin.OPTIONS("/financial-reports", httputil.OptionsGet)
		admin.GET("/financial-reports", co.GetAdminFinancialReports)
		admin.OPTIONS("/reports/detailed", httputil.OptionsGet)
		admin.GET("/reports/detailed", co.GetDetailedReports)
		admin.OPTIONS("/submission-status", httputil.OptionsGet)
		admin.GET("/submission-status", co.GetSubmissionStatus)
		admin.OPTIONS("/ai/financial-report", httputil.OptionsPost)
		admin.POST("/ai/financial-report", co.CreateAdminNarrative)
	}
}
