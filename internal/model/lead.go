package model

import "time"

// LeadStatus tracks a consultation lead through its follow-up lifecycle.
type LeadStatus string

const (
	LeadStatusNew       LeadStatus = "NEW"
	LeadStatusContacted LeadStatus = "CONTACTED"
	LeadStatusEnrolled  LeadStatus = "ENROLLED"
	LeadStatusClosed    LeadStatus = "CLOSED"
)

// Lead represents a consultation/registration request captured from the
// marketing site's multi-step form.
type Lead struct {
	ID          int        `json:"id"`
	ParentName  string     `json:"parent_name"`
	ParentEmail string     `json:"parent_email"`
	ParentPhone string     `json:"parent_phone"`
	StudentName string     `json:"student_name"`
	YearLevel   string     `json:"year_level"`
	Subjects    []string   `json:"subjects"`
	Message     string     `json:"message,omitempty"`
	Source      string     `json:"source"`
	Status      LeadStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateLeadRequest is the public payload submitted by the consultation form.
type CreateLeadRequest struct {
	ParentName  string   `json:"parent_name" binding:"required,min=2,max=100"`
	ParentEmail string   `json:"parent_email" binding:"required,email,max=255"`
	ParentPhone string   `json:"parent_phone" binding:"required,min=8,max=20"`
	StudentName string   `json:"student_name" binding:"required,min=2,max=100"`
	YearLevel   string   `json:"year_level" binding:"required,min=1,max=30"`
	Subjects    []string `json:"subjects" binding:"required,min=1,dive,min=2,max=100"`
	Message     string   `json:"message" binding:"max=2000"`
	Source      string   `json:"source" binding:"omitempty,oneof=consultation registration trial"`
}

// UpdateLeadStatusRequest is the admin payload for moving a lead through
// the follow-up pipeline.
type UpdateLeadStatusRequest struct {
	Status LeadStatus `json:"status" binding:"required,oneof=NEW CONTACTED ENROLLED CLOSED"`
}
