package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/models"
	"github.com/collegecoursera/api/internal/repository"
)

// EnrollmentService handles enrolling, unenrolling and lecture progress.
type EnrollmentService interface {
	Enroll(ctx context.Context, caller guard.Identity, courseID uint) (dto.EnrollmentResponse, error)
	Unenroll(ctx context.Context, caller guard.Identity, courseID uint) error
	ListMine(ctx context.Context, caller guard.Identity) ([]dto.EnrollmentResponse, error)
	Progress(ctx context.Context, caller guard.Identity, courseID uint) (dto.EnrollmentProgressResponse, error)
	CompleteLecture(ctx context.Context, caller guard.Identity, lectureID uint) (dto.EnrollmentProgressResponse, error)
}

type enrollmentService struct {
	enrollments repository.EnrollmentRepository
	courses     repository.CourseRepository
	content     repository.ContentRepository
	logger      zerolog.Logger
}

// NewEnrollmentService constructs an EnrollmentService instance.
func NewEnrollmentService(enrollments repository.EnrollmentRepository, courses repository.CourseRepository, content repository.ContentRepository, logger zerolog.Logger) EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		courses:     courses,
		content:     content,
		logger:      logger.With().Str("component", "enrollment_service").Logger(),
	}
}

func (s *enrollmentService) Enroll(ctx context.Context, caller guard.Identity, courseID uint) (dto.EnrollmentResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentResponse{}, ErrCourseNotFound
		}
		return dto.EnrollmentResponse{}, err
	}

	enrollment := models.Enrollment{
		StudentID: caller.UserID,
		CourseID:  courseID,
	}
	if err := s.enrollments.Create(ctx, &enrollment); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return dto.EnrollmentResponse{}, ErrAlreadyEnrolled
		}
		return dto.EnrollmentResponse{}, err
	}

	created, err := s.enrollments.GetByID(ctx, enrollment.ID)
	if err != nil {
		return dto.EnrollmentResponse{}, err
	}

	s.logger.Info().Uint("course_id", courseID).Uint("student_id", caller.UserID).Msg("student enrolled")

	return dto.NewEnrollmentResponse(created), nil
}

func (s *enrollmentService) Unenroll(ctx context.Context, caller guard.Identity, courseID uint) error {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return err
	}

	enrollment, err := s.enrollments.GetByStudentAndCourse(ctx, caller.UserID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEnrollmentNotFound
		}
		return err
	}

	return s.enrollments.Delete(ctx, enrollment.ID)
}

func (s *enrollmentService) ListMine(ctx context.Context, caller guard.Identity) ([]dto.EnrollmentResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return nil, err
	}

	enrollments, err := s.enrollments.ListByStudent(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return dto.NewEnrollmentResponseSlice(enrollments), nil
}

func (s *enrollmentService) Progress(ctx context.Context, caller guard.Identity, courseID uint) (dto.EnrollmentProgressResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return dto.EnrollmentProgressResponse{}, err
	}

	enrollment, err := s.enrollments.GetByStudentAndCourse(ctx, caller.UserID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentProgressResponse{}, ErrEnrollmentNotFound
		}
		return dto.EnrollmentProgressResponse{}, err
	}

	return s.progressFor(ctx, enrollment)
}

func (s *enrollmentService) CompleteLecture(ctx context.Context, caller guard.Identity, lectureID uint) (dto.EnrollmentProgressResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return dto.EnrollmentProgressResponse{}, err
	}

	courseID, _, err := s.content.LectureCourseOwner(ctx, lectureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentProgressResponse{}, ErrLectureNotFound
		}
		return dto.EnrollmentProgressResponse{}, err
	}

	enrollment, err := s.enrollments.GetByStudentAndCourse(ctx, caller.UserID, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentProgressResponse{}, ErrNotEnrolled
		}
		return dto.EnrollmentProgressResponse{}, err
	}

	if err := s.enrollments.CompleteLecture(ctx, enrollment.ID, lectureID); err != nil {
		return dto.EnrollmentProgressResponse{}, err
	}

	return s.progressFor(ctx, enrollment)
}

func (s *enrollmentService) progressFor(ctx context.Context, enrollment models.Enrollment) (dto.EnrollmentProgressResponse, error) {
	total, err := s.enrollments.CountLectures(ctx, enrollment.CourseID)
	if err != nil {
		return dto.EnrollmentProgressResponse{}, err
	}

	completed, err := s.enrollments.CountCompletedLectures(ctx, enrollment.ID)
	if err != nil {
		return dto.EnrollmentProgressResponse{}, err
	}

	percent := 0.0
	if total > 0 {
		percent = float64(completed) / float64(total) * 100
	}

	return dto.EnrollmentProgressResponse{
		EnrollmentID:      enrollment.ID,
		CourseID:          enrollment.CourseID,
		TotalLectures:     total,
		CompletedLectures: completed,
		ProgressPercent:   percent,
	}, nil
}
