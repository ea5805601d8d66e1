package rest

import (
	"errors"
	"net/http"

	"github.com/edublog/edublog/api"
	"github.com/edublog/edublog/blog/domain"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// respondError maps the domain error taxonomy onto HTTP statuses.
// Remote-layer failures never reach here: the repository recovers them
// locally before an operation returns.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	switch {
	case domain.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrNotAuthorized), errors.Is(err, domain.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
	}

	c.JSON(status, api.ErrorResponse{Error: err.Error()})
}
