package api

import (
	"errors"
	"net/http"

	"github.com/district-ledger/backend/internal/auth"
	"github.com/district-ledger/backend/internal/httputil"
	"github.com/district-ledger/backend/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type LoginRequest struct {
	Assembly string `json:"assembly" binding:"required" example:"EMMANUEL"`
	Password string `json:"password" binding:"required" example:"emmanuel"`
}

type LoginResponse struct {
	Success bool         `json:"success" example:"true"`
	Message string       `json:"message" example:"Logged in as EMMANUEL"`
	Data    auth.Session `json:"data"`
}

// @Summary		Log in
// @Description	Checks the credentials of an assembly. When authentication is enabled, the response contains the session token.
// @Tags			Authentication
// @Accept		json
// @Produce		json
// @Success		200		{object}	LoginResponse
// @Failure		400		{object}	httputil.HTTPError
// @Failure		401		{object}	httputil.HTTPError
// @Failure		500		{object}	httputil.HTTPError
// @Param			request	body		LoginRequest	true	"Credentials"
// @Router			/api/login [post]
func (co Controller) Login(c *gin.Context) {
	var r LoginRequest
	if err := httputil.BindData(c, &r); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	session, err := co.Auth.Login(r.Assembly, r.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrMissingCredentials):
			httputil.NewError(c, http.StatusBadRequest, err)
		case errors.Is(err, auth.ErrInvalidCredentials):
			httputil.NewError(c, http.StatusUnauthorized, err)
		default:
			log.Error().Str("assembly", r.Assembly).Msgf("%T: %v", err, err.Error())
			httputil.NewError(c, http.StatusInternalServerError, store.ErrGeneral)
		}
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Message: "Logged in as " + session.Assembly,
		Data:    session,
	})
}
