package domain

import (
	"time"
)

// ContactMessage captures a visitor inquiry. The collection is append-only
// in the Local Cache, newest first.
type ContactMessage struct {
	StudentName    string    `json:"studentName"`
	StudentEmail   string    `json:"studentEmail"`
	Subject        string    `json:"subject"`
	RelatedContent string    `json:"relatedContent,omitempty"`
	Message        string    `json:"message"`
	Newsletter     bool      `json:"newsletter"`
	Timestamp      time.Time `json:"timestamp"`
	IsRead         bool      `json:"isRead"`
}
