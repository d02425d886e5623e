package auth

import (
	"net/http"
	"strings"

	"github.com/district-ledger/backend/internal/httputil"
	"github.com/gin-gonic/gin"
)

// ContextAssembly is the gin context key of the authenticated assembly.
const ContextAssembly = "assembly"

// Middleware requires a valid token with the role. An empty role accepts
// every valid token. Without a secret, all requests pass.
func (a *Authenticator) Middleware(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.Enabled() || c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			httputil.AbortWithError(c, http.StatusUnauthorized, ErrMissingToken)
			return
		}

		claims, err := a.Validate(strings.TrimSpace(token))
		if err != nil {
			httputil.AbortWithError(c, http.StatusUnauthorized, err)
			return
		}

		if role != "" && claims.Role != role {
			httputil.AbortWithError(c, http.StatusForbidden, ErrForbidden)
			return
		}

		c.Set(ContextAssembly, claims.Assembly)
		c.Next()
	}
}
