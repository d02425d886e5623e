package root

import (
	"net/http"

	"github.com/district-ledger/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// Version is set at build time with -ldflags "-X".
var Version = "0.0.0"

type VersionResponse struct {
	Data VersionObject `json:"data"` // Data object for the version endpoint
}

type VersionObject struct {
	Version string `json:"version" example:"1.1.0"` // the running version of the backend
}

func RegisterVersionRoutes(r *gin.RouterGroup) {
	r.GET("", GetVersion)
	r.OPTIONS("", OptionsVersion)
}

// @Summary		API version
// @Description	Returns the software version of the API
// @Tags			General
// @Success		200	{object}	VersionResponse
// @Router			/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, VersionResponse{
		Data: VersionObject{
			Version: Version,
		},
	})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/version [options]
func OptionsVersion(c *gin.Context) {
	httputil.OptionsGet(c)
}
