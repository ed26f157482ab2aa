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

// ReviewService handles course reviews. Creating requires enrollment, one
// review per (student, course); every mutation triggers a rating recompute.
type ReviewService interface {
	ListByCourse(ctx context.Context, courseID uint, page, limit int) ([]dto.ReviewResponse, *utils.Pagination, error)
	Create(ctx context.Context, caller guard.Identity, courseID uint, payload dto.ReviewCreateRequest) (dto.ReviewResponse, error)
	Update(ctx context.Context, caller guard.Identity, reviewID uint, payload dto.ReviewUpdateRequest) (dto.ReviewResponse, error)
	Delete(ctx context.Context, caller guard.Identity, reviewID uint) error
}

type reviewService struct {
	reviews     repository.ReviewRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	aggregator  RatingAggregator
	validator   *validator.Validate
	sanitizer   *bluemonday.Policy
	logger      zerolog.Logger
}

// NewReviewService constructs a ReviewService instance.
func NewReviewService(reviews repository.ReviewRepository, courses repository.CourseRepository, enrollments repository.EnrollmentRepository, aggregator RatingAggregator, validate *validator.Validate, logger zerolog.Logger) ReviewService {
	return &reviewService{
		reviews:     reviews,
		courses:     courses,
		enrollments: enrollments,
		aggregator:  aggregator,
		validator:   validate,
		sanitizer:   bluemonday.StrictPolicy(),
		logger:      logger.With().Str("component", "review_service").Logger(),
	}
}

func (s *reviewService) ListByCourse(ctx context.Context, courseID uint, page, limit int) ([]dto.ReviewResponse, *utils.Pagination, error) {
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

	reviews, total, err := s.reviews.ListByCourse(ctx, courseID, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, err
	}

	return dto.NewReviewResponseSlice(reviews), utils.NewPagination(page, limit, total), nil
}

func (s *reviewService) Create(ctx context.Context, caller guard.Identity, courseID uint, payload dto.ReviewCreateRequest) (dto.ReviewResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return dto.ReviewResponse{}, err
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReviewResponse{}, err
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReviewResponse{}, ErrCourseNotFound
		}
		return dto.ReviewResponse{}, err
	}

	enrolled, err := s.enrollments.Exists(ctx, caller.UserID, courseID)
	if err != nil {
		return dto.ReviewResponse{}, err
	}
	if !enrolled {
		return dto.ReviewResponse{}, ErrNotEnrolled
	}

	if _, err := s.reviews.GetByStudentAndCourse(ctx, caller.UserID, courseID); err == nil {
		return dto.ReviewResponse{}, ErrAlreadyReviewed
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return dto.ReviewResponse{}, err
	}

	review := models.Review{
		StudentID: caller.UserID,
		CourseID:  courseID,
		Rating:    payload.Rating,
		Comment:   s.sanitizer.Sanitize(payload.Comment),
	}
	if err := s.reviews.Create(ctx, &review); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return dto.ReviewResponse{}, ErrAlreadyReviewed
		}
		return dto.ReviewResponse{}, err
	}

	recomputeRating(ctx, s.aggregator, courseID, s.logger)

	created, err := s.reviews.GetByID(ctx, review.ID)
	if err != nil {
		return dto.ReviewResponse{}, err
	}
	return dto.NewReviewResponse(created), nil
}

func (s *reviewService) Update(ctx context.Context, caller guard.Identity, reviewID uint, payload dto.ReviewUpdateRequest) (dto.ReviewResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ReviewResponse{}, err
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ReviewResponse{}, ErrReviewNotFound
		}
		return dto.ReviewResponse{}, err
	}

	if err := guard.Authorize(caller, guard.Check{
		Relation:       guard.IsResourceOwner,
		OwnerID:        review.StudentID,
		DenyAsNotFound: true,
	}); err != nil {
		return dto.ReviewResponse{}, err
	}

	review.Rating = payload.Rating
	review.Comment = s.sanitizer.Sanitize(payload.Comment)

	if err := s.reviews.Update(ctx, &review); err != nil {
		return dto.ReviewResponse{}, err
	}

	recomputeRating(ctx, s.aggregator, review.CourseID, s.logger)

	return dto.NewReviewResponse(review), nil
}

func (s *reviewService) Delete(ctx context.Context, caller guard.Identity, reviewID uint) error {
	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrReviewNotFound
		}
		return err
	}

	if err := guard.Authorize(caller, guard.Check{
		Relation:       guard.IsResourceOwner,
		OwnerID:        review.StudentID,
		DenyAsNotFound: true,
	}); err != nil {
		return err
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		return err
	}

	recomputeRating(ctx, s.aggregator, review.CourseID, s.logger)
	return nil
}
