package healthz

import (
	"net/http"

	"github.com/district-ledger/backend/internal/httputil"
	"github.com/district-ledger/backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Controller reports the health of the storage backend.
type Controller struct {
	Backend store.Backend
}

func (co Controller) RegisterRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", Options)
	r.GET("", co.Get)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get health
// @Description	Returns the application health and, if not healthy, an error
// @Tags			General
// @Produce		json
// @Success		204
// @Failure		500	{object}	httputil.HTTPError
// @Router			/healthz [get]
func (co Controller) Get(c *gin.Context) {
	if err := co.Backend.Ping(c.Request.Context()); err != nil {
		log.Error().Str("backend", co.Backend.Name()).Msgf("%T: %v", err, err.Error())
		httputil.NewError(c, http.StatusInternalServerError, store.ErrGeneral)
		return
	}

	c.Status(http.StatusNoContent)
}
