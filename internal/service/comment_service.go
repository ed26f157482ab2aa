package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/models"
	"github.com/collegecoursera/api/internal/repository"
	"github.com/collegecoursera/api/internal/utils"
)

// ErrParentCommentMismatch is returned when a reply targets a comment from a
// different course.
var ErrParentCommentMismatch = errors.New("parent comment belongs to another course")

// CommentService handles threaded course discussion. Posting requires
// enrollment; replies nest one level under a top-level comment.
type CommentService interface {
	ListByCourse(ctx context.Context, courseID uint, page, limit int) ([]dto.CommentResponse, *utils.Pagination, error)
	Create(ctx context.Context, caller guard.Identity, courseID uint, payload dto.CommentCreateRequest) (dto.CommentResponse, error)
	Update(ctx context.Context, caller guard.Identity, commentID uint, payload dto.CommentUpdateRequest) (dto.CommentResponse, error)
	Delete(ctx context.Context, caller guard.Identity, commentID uint) error
}

type commentService struct {
	comments    repository.CommentRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
}

// NewCommentService constructs a CommentService instance.
func NewCommentService(comments repository.CommentRepository, courses repository.CourseRepository, enrollments repository.EnrollmentRepository, validate *validator.Validate, logger zerolog.Logger) CommentService {
	return &commentService{
		comments:    comments,
		courses:     courses,
		enrollments: enrollments,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "comment_service").Logger(),
	}
}

func (s *commentService) ListByCourse(ctx context.Context, courseID uint, page, limit int) ([]dto.CommentResponse, *utils.Pagination, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrCourseNotFound
		}
		return nil, nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	comments, total, err := s.comments.ListByCourse(ctx, courseID, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}

	return dto.NewCommentResponseSlice(comments), utils.NewPagination(page, limit, total), nil
}

func (s *commentService) Create(ctx context.Context, caller guard.Identity, courseID uint, payload dto.CommentCreateRequest) (dto.CommentResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return dto.CommentResponse{}, err
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.CommentResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CommentResponse{}, ErrCourseNotFound
		}
		return dto.CommentResponse{}, err
	}

	enrolled, err := s.enrollments.Exists(ctx, caller.UserID, courseID)
	if err != nil {
		return dto.CommentResponse{}, err
	}
	if !enrolled {
		return dto.CommentResponse{}, ErrNotEnrolled
	}

	if payload.ParentCommentID != nil {
		parent, err := s.comments.GetByID(ctx, *payload.ParentCommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return dto.CommentResponse{}, ErrCommentNotFound
			}
			return dto.CommentResponse{}, err
		}
		if parent.CourseID != courseID {
			return dto.CommentResponse{}, ErrParentCommentMismatch
		}
	}

	comment := models.Comment{
		StudentID:       caller.UserID,
		CourseID:        courseID,
		ParentCommentID: payload.ParentCommentID,
		CommentText:     s.sanitizer.Sanitize(payload.CommentText),
	}
	if err := s.comments.Create(ctx, &comment); err != nil {
		return dto.CommentResponse{}, err
	}

	created, err := s.comments.GetByID(ctx, comment.ID)
	if err != nil {
		return dto.CommentResponse{}, err
	}
	return dto.NewCommentResponse(created), nil
}

func (s *commentService) Update(ctx context.Context, caller guard.Identity, commentID uint, payload dto.CommentUpdateRequest) (dto.CommentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CommentResponse{}, err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CommentResponse{}, ErrCommentNotFound
		}
		return dto.CommentResponse{}, err
	}

	if err := guard.Authorize(caller, guard.Check{
		Relation:       guard.IsResourceOwner,
		OwnerID:        comment.StudentID,
		DenyAsNotFound: true,
	}); err != nil {
		return dto.CommentResponse{}, err
	}

	comment.CommentText = s.sanitizer.Sanitize(payload.CommentText)
	if err := s.comments.Update(ctx, &comment); err != nil {
		return dto.CommentResponse{}, err
	}

	return dto.NewCommentResponse(comment), nil
}

func (s *commentService) Delete(ctx context.Context, caller guard.Identity, commentID uint) error {
	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if err := guard.Authorize(caller, guard.Check{
		Relation:       guard.IsResourceOwner,
		OwnerID:        comment.StudentID,
		DenyAsNotFound: true,
	}); err != nil {
		return err
	}

	return s.comments.Delete(ctx, commentID)
}
