package rest

import (
	"net/http"

	"github.com/edublog/edublog/api"
	"github.com/edublog/edublog/blog/domain"
	"github.com/gin-gonic/gin"
)

func (a *API) SubmitContact(c *gin.Context) {
	var req api.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, &domain.ValidationError{Field: "body", Reason: "invalid JSON"})
		return
	}

	if !a.auth.VerifyCSRFToken(c.Request.Context(), req.CSRFToken) {
		respondError(c, &domain.ValidationError{Field: "csrfToken", Reason: "missing or stale"})
		return
	}

	err := a.contact.SaveMessage(c.Request.Context(), domain.ContactMessage{
		StudentName:    req.StudentName,
		StudentEmail:   req.StudentEmail,
		Subject:        req.Subject,
		RelatedContent: req.RelatedContent,
		Message:        req.Message,
		Newsletter:     req.Newsletter,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusCreated)
}
