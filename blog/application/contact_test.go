package application

import (
	"context"
	"testing"

	"github.com/edublog/edublog/blog/domain"
)

func testMessage() domain.ContactMessage {
	return domain.ContactMessage{
		StudentName:  "Ada",
		StudentEmail: "ada@example.com",
		Subject:      "Question about pointers",
		Message:      "When should I return a pointer?",
	}
}

func TestSaveMessageValidation(t *testing.T) {
	svc := NewContactService(newFakeCache())

	tests := []struct {
		name   string
		mutate func(*domain.ContactMessage)
	}{
		{"Missing name", func(m *domain.ContactMessage) { m.StudentName = "" }},
		{"Missing email", func(m *domain.ContactMessage) { m.StudentEmail = "" }},
		{"Missing subject", func(m *domain.ContactMessage) { m.Subject = "" }},
		{"Missing message", func(m *domain.ContactMessage) { m.Message = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := testMessage()
			tt.mutate(&msg)

			if err := svc.SaveMessage(context.Background(), msg); !domain.IsValidation(err) {
				t.Errorf("SaveMessage = %v, want ValidationError", err)
			}
		})
	}
}

func TestSaveMessageNewestFirst(t *testing.T) {
	svc := NewContactService(newFakeCache())

	first := testMessage()
	first.Subject = "first"
	second := testMessage()
	second.Subject = "second"

	if err := svc.SaveMessage(context.Background(), first); err != nil {
		t.Fatalf("SaveMessage failed: %v", err)
	}
	if err := svc.SaveMessage(context.Background(), second); err != nil {
		t.Fatalf("SaveMessage failed: %v", err)
	}

	messages, err := svc.Messages(context.Background())
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}

	if len(messages) != 2 {
		t.Fatalf("stored %d messages, want 2", len(messages))
	}
	if messages[0].Subject != "second" || messages[1].Subject != "first" {
		t.Errorf("order = [%q, %q], want newest first", messages[0].Subject, messages[1].Subject)
	}
	if messages[0].Timestamp.IsZero() {
		t.Error("timestamp was not assigned")
	}
	if messages[0].IsRead {
		t.Error("new message marked as read")
	}
}

func TestSaveMessageSanitizesFields(t *testing.T) {
	svc := NewContactService(newFakeCache())

	msg := testMessage()
	msg.StudentName = "<script>alert(1)</script>"
	msg.Message = "a & b <i>c</i>"

	if err := svc.SaveMessage(context.Background(), msg); err != nil {
		t.Fatalf("SaveMessage failed: %v", err)
	}

	messages, err := svc.Messages(context.Background())
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}

	if messages[0].StudentName != "&lt;script&gt;alert(1)&lt;/script&gt;" {
		t.Errorf("name not escaped: %q", messages[0].StudentName)
	}
	if messages[0].Message != "a &amp; b &lt;i&gt;c&lt;/i&gt;" {
		t.Errorf("message not escaped: %q", messages[0].Message)
	}
}

func TestMessagesEmptyCache(t *testing.T) {
	svc := NewContactService(newFakeCache())

	messages, err := svc.Messages(context.Background())
	if err != nil {
		t.Fatalf("Messages failed: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("Messages on empty cache = %d entries, want 0", len(messages))
	}
}
