package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/milkyano-media/aspire-backend/internal/wiselms"
)

// EnrollmentGateway is the slice of the WiseLMS client the enrollment sync
// needs. Narrowed to an interface so webhook tests can stub the remote API.
type EnrollmentGateway interface {
	GetCourses(ctx context.Context, classType string) ([]wiselms.Course, error)
	AssignStudentToCourse(ctx context.Context, studentID, courseID string, assign bool) error
}

// EnrollmentService keeps students' membership in "Activities" companion
// courses in step with their regular classroom membership. The sync is
// best-effort and stateless: each webhook delivery re-reads the live
// catalog, and nothing serializes overlapping deliveries for the same
// student.
type EnrollmentService struct {
	lms EnrollmentGateway
	log zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService.
func NewEnrollmentService(lms EnrollmentGateway, log zerolog.Logger) *EnrollmentService {
	return &EnrollmentService{
		lms: lms,
		log: log.With().Str("component", "enrollment_service").Logger(),
	}
}

// SyncActivitiesMembership enrolls (assign=true) or unenrolls (assign=false)
// a student in the Activities companion course derived from classroomName.
// A classroom with no matching published companion course is a normal
// nothing-to-do outcome, not an error.
func (s *EnrollmentService) SyncActivitiesMembership(ctx context.Context, classroomName, studentID string, assign bool) error {
	courses, err := s.lms.GetCourses(ctx, wiselms.ClassTypeLive)
	if err != nil {
		return err
	}

	target := wiselms.FindActivitiesCourse(classroomName, courses)
	if target == nil {
		s.log.Info().
			Str("classroom", classroomName).
			Str("student_id", studentID).
			Msg("No matching Activities course, nothing to do")
		return nil
	}

	if err := s.lms.AssignStudentToCourse(ctx, studentID, target.ID, assign); err != nil {
		return err
	}

	s.log.Info().
		Str("classroom", classroomName).
		Str("student_id", studentID).
		Str("activities_course", target.Name).
		Bool("assign", assign).
		Msg("Activities membership synced")
	return nil
}
