package service

import (
	"strings"
	"testing"

	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/wiselms"
)

func TestRenderMessagesSubstitutesPlaceholders(t *testing.T) {
	req := model.BulkEmailRequest{
		ClassID: "c1",
		Subject: "Term 3 update",
		Body:    "<p>Hi {{parent_name}}, an update about {{student_name}}.</p>",
	}
	roster := []wiselms.StudentWithParent{
		{
			Student: wiselms.Student{ID: "s1", Name: "Sam Perera"},
			Parent:  wiselms.Parent{Name: "Jordan Perera", Email: "jordan@example.com"},
		},
		{
			Student: wiselms.Student{ID: "s2", Name: "Alex Wu"},
			Parent:  wiselms.Parent{Name: "Min Wu", Email: "min@example.com"},
		},
	}

	messages, skipped := renderMessages(req, roster, "job-1")

	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(messages) != 2 {
		t.Fatalf("messages = %d, want 2", len(messages))
	}

	first := messages[0]
	if first.ToEmail != "jordan@example.com" || first.ToName != "Jordan Perera" {
		t.Errorf("recipient = %s <%s>", first.ToName, first.ToEmail)
	}
	if first.Subject != "Term 3 update" {
		t.Errorf("subject = %s", first.Subject)
	}
	if !strings.Contains(first.HTMLBody, "Hi Jordan Perera") {
		t.Errorf("html body missing parent name: %s", first.HTMLBody)
	}
	if !strings.Contains(first.HTMLBody, "about Sam Perera") {
		t.Errorf("html body missing student name: %s", first.HTMLBody)
	}
	if strings.Contains(first.HTMLBody, "{{") {
		t.Errorf("unsubstituted placeholder in body: %s", first.HTMLBody)
	}
	if first.JobID != "job-1" {
		t.Errorf("job id = %s", first.JobID)
	}

	if !strings.Contains(messages[1].HTMLBody, "Min Wu") || !strings.Contains(messages[1].HTMLBody, "Alex Wu") {
		t.Errorf("second message not rendered per recipient: %s", messages[1].HTMLBody)
	}
}

func TestRenderMessagesSkipsMissingParentEmail(t *testing.T) {
	req := model.BulkEmailRequest{Subject: "s", Body: "b"}
	roster := []wiselms.StudentWithParent{
		{
			Student: wiselms.Student{ID: "s1", Name: "Sam"},
			Parent:  wiselms.Parent{Name: "No Email"},
		},
		{
			Student: wiselms.Student{ID: "s2", Name: "Alex"},
			Parent:  wiselms.Parent{Name: "Min", Email: "min@example.com"},
		},
	}

	messages, skipped := renderMessages(req, roster, "job-2")

	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(messages) != 1 {
		t.Fatalf("messages = %d, want 1", len(messages))
	}
	if messages[0].ToEmail != "min@example.com" {
		t.Errorf("kept recipient = %s", messages[0].ToEmail)
	}
}

func TestStripTags(t *testing.T) {
	got := stripTags("<p>Hello <b>world</b></p>")
	if got != "Hello world" {
		t.Errorf("stripTags = %q", got)
	}
}
