package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/repository"
)

// SubjectService handles subject business logic.
type SubjectService struct {
	subjectRepo *repository.SubjectRepository
	log         zerolog.Logger
}

// NewSubjectService creates a new SubjectService.
func NewSubjectService(subjectRepo *repository.SubjectRepository, log zerolog.Logger) *SubjectService {
	return &SubjectService{
		subjectRepo: subjectRepo,
		log:         log.With().Str("component", "subject_service").Logger(),
	}
}

// List retrieves all subjects.
func (s *SubjectService) List(ctx context.Context) ([]model.Subject, error) {
	return s.subjectRepo.List(ctx)
}

// GetBySlug retrieves a subject by its landing-page slug.
func (s *SubjectService) GetBySlug(ctx context.Context, slug string) (*model.Subject, error) {
	return s.subjectRepo.GetBySlug(ctx, slug)
}

// Create creates a new subject.
func (s *SubjectService) Create(ctx context.Context, subject *model.Subject) error {
	return s.subjectRepo.Create(ctx, subject)
}

// Update modifies an existing subject.
func (s *SubjectService) Update(ctx context.Context, subject *model.Subject) error {
	return s.subjectRepo.Update(ctx, subject)
}

// Delete removes a subject. Foreign key constraints on courses prevent
// deleting a subject that still has listings; the handler maps that error.
func (s *SubjectService) Delete(ctx context.Context, id int) error {
	return s.subjectRepo.Delete(ctx, id)
}
