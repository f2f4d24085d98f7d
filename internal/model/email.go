package model

// EmailMessage is one outbound email queued for the mail worker.
type EmailMessage struct {
	ToName   string `json:"to_name"`
	ToEmail  string `json:"to_email"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
	TextBody string `json:"text_body"`
	JobID    string `json:"job_id,omitempty"`
}

// BulkEmailRequest is the admin payload for composing a bulk email to the
// parents of every student in a WiseLMS class. The body may reference
// {{parent_name}} and {{student_name}} placeholders, substituted per
// recipient.
type BulkEmailRequest struct {
	ClassID string `json:"class_id" binding:"required"`
	Subject string `json:"subject" binding:"required,min=2,max=255"`
	Body    string `json:"body" binding:"required,min=2,max=20000"`
}

// BulkEmailResult summarizes a compose run: how many messages were queued
// and how many students were skipped for want of a parent contact.
type BulkEmailResult struct {
	JobID   string `json:"job_id"`
	Queued  int    `json:"queued"`
	Skipped int    `json:"skipped"`
}
