package rest

import (
	"net/http"

	"github.com/edublog/edublog/api"
	"github.com/edublog/edublog/blog/domain"
	"github.com/gin-gonic/gin"
)

func (a *API) Login(c *gin.Context) {
	var req api.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	session, err := a.auth.Login(c.Request.Context(), domain.Credentials{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.SessionResponse{
		Authenticated: true,
		Username:      session.Username,
		Role:          session.Role,
		ExpiresAt:     session.ExpiresAt,
	})
}

func (a *API) Logout(c *gin.Context) {
	if err := a.auth.Logout(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (a *API) GetSession(c *gin.Context) {
	session, ok := a.auth.CurrentSession(c.Request.Context())
	if !ok {
		c.JSON(http.StatusOK, api.SessionResponse{Authenticated: false})
		return
	}

	c.JSON(http.StatusOK, api.SessionResponse{
		Authenticated: true,
		Username:      session.Username,
		Role:          session.Role,
		ExpiresAt:     session.ExpiresAt,
	})
}

func (a *API) GetCSRFToken(c *gin.Context) {
	token, err := a.auth.GenerateCSRFToken(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.CSRFResponse{Token: token})
}
