package application

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/edublog/edublog/blog/domain"
)

// ContactService appends visitor inquiries to the messages blob in the
// local cache, newest first. The collection is effectively write-only;
// Messages exists for the dashboard shell.
type ContactService struct {
	cache domain.LocalCache
}

func NewContactService(cache domain.LocalCache) *ContactService {
	return &ContactService{
		cache: cache,
	}
}

// SaveMessage validates, sanitizes and stores a contact message.
func (s *ContactService) SaveMessage(ctx context.Context, msg domain.ContactMessage) error {
	if msg.StudentName == "" {
		return &domain.ValidationError{Field: "studentName"}
	}
	if msg.StudentEmail == "" {
		return &domain.ValidationError{Field: "studentEmail"}
	}
	if msg.Subject == "" {
		return &domain.ValidationError{Field: "subject"}
	}
	if msg.Message == "" {
		return &domain.ValidationError{Field: "message"}
	}

	msg.StudentName = SanitizeText(msg.StudentName)
	msg.StudentEmail = SanitizeText(msg.StudentEmail)
	msg.Subject = SanitizeText(msg.Subject)
	msg.RelatedContent = SanitizeText(msg.RelatedContent)
	msg.Message = SanitizeText(msg.Message)
	msg.Timestamp = time.Now().UTC()
	msg.IsRead = false

	messages, err := s.Messages(ctx)
	if err != nil {
		return err
	}

	messages = append([]domain.ContactMessage{msg}, messages...)

	blob, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to encode messages: %w", err)
	}
	if err := s.cache.Set(ctx, domain.KeyMessages, string(blob)); err != nil {
		return fmt.Errorf("failed to store messages: %w", err)
	}

	return nil
}

// Messages returns the stored inquiries, newest first.
func (s *ContactService) Messages(ctx context.Context) ([]domain.ContactMessage, error) {
	raw, ok, err := s.cache.Get(ctx, domain.KeyMessages)
	if err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	if !ok {
		return []domain.ContactMessage{}, nil
	}

	var messages []domain.ContactMessage
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}

	return messages, nil
}
