package service

import (
	"context"

	"github.com/milkyano-media/aspire-backend/internal/model"
	"github.com/milkyano-media/aspire-backend/internal/repository"
)

// CourseService handles local course listing business logic.
type CourseService struct {
	courseRepo *repository.CourseRepository
}

// NewCourseService creates a new CourseService.
func NewCourseService(courseRepo *repository.CourseRepository) *CourseService {
	return &CourseService{courseRepo: courseRepo}
}

// GetByID retrieves a course listing by its ID.
func (s *CourseService) GetByID(ctx context.Context, id int) (*model.Course, error) {
	return s.courseRepo.GetByID(ctx, id)
}

// List retrieves all course listings for the admin dashboard.
func (s *CourseService) List(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.List(ctx, false)
}

// ListPublished retrieves the published listings shown on the marketing site.
func (s *CourseService) ListPublished(ctx context.Context) ([]model.Course, error) {
	return s.courseRepo.List(ctx, true)
}

// Create creates a new course listing.
func (s *CourseService) Create(ctx context.Context, course *model.Course) error {
	return s.courseRepo.Create(ctx, course)
}

// Update modifies an existing course listing.
func (s *CourseService) Update(ctx context.Context, course *model.Course) error {
	return s.courseRepo.Update(ctx, course)
}

// Delete removes a course listing.
func (s *CourseService) Delete(ctx context.Context, id int) error {
	return s.courseRepo.Delete(ctx, id)
}
