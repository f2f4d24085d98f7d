package model

import "time"

// Course represents a local course listing shown on the marketing site.
// It is independent of the WiseLMS catalog; the two are linked only through
// the admin dashboard where listings are authored.
type Course struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	SubjectID   int       `json:"subject_id"`
	SubjectName string    `json:"subject_name,omitempty"`
	YearLevel   string    `json:"year_level"`
	Description string    `json:"description"`
	PriceCents  int       `json:"price_cents"`
	Published   bool      `json:"published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateCourseRequest is the payload for creating or updating a course listing.
type CreateCourseRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=200"`
	SubjectID   int    `json:"subject_id" binding:"required,min=1"`
	YearLevel   string `json:"year_level" binding:"required,min=1,max=30"`
	Description string `json:"description" binding:"max=5000"`
	PriceCents  int    `json:"price_cents" binding:"min=0"`
	Published   bool   `json:"published"`
}
