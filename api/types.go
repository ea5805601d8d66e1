// Package api holds the wire types of the HTTP shell.
package api

import (
	"time"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Authenticated bool      `json:"authenticated"`
	Username      string    `json:"username,omitempty"`
	Role          string    `json:"role,omitempty"`
	ExpiresAt     time.Time `json:"expiresAt,omitempty"`
}

type RenderRequest struct {
	Markdown string `json:"markdown"`
}

type RenderResponse struct {
	HTML string `json:"html"`
}

type ContactRequest struct {
	StudentName    string `json:"studentName"`
	StudentEmail   string `json:"studentEmail"`
	Subject        string `json:"subject"`
	RelatedContent string `json:"relatedContent"`
	Message        string `json:"message"`
	Newsletter     bool   `json:"newsletter"`
	CSRFToken      string `json:"csrfToken"`
}

type CSRFResponse struct {
	Token string `json:"token"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
