package middleware

import (
	"net/http"

	"github.com/edublog/edublog/api"
	"github.com/edublog/edublog/blog/application"
	"github.com/edublog/edublog/blog/domain"
	"github.com/gin-gonic/gin"
)

// RequireSession rejects requests on write routes when no valid session
// exists. The repository re-checks on every write; this only gives the
// shell an early 401.
func RequireSession(auth *application.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auth.IsAuthenticated(c.Request.Context()) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: domain.ErrNotAuthorized.Error()})
			return
		}
		c.Next()
	}
}
