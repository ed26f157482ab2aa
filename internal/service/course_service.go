package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/models"
	"github.com/collegecoursera/api/internal/repository"
	"github.com/collegecoursera/api/internal/utils"
)

// CourseService handles the public catalogue and course lifecycle.
type CourseService interface {
	List(ctx context.Context, filter dto.CourseListFilter) ([]dto.CourseResponse, *utils.Pagination, error)
	Search(ctx context.Context, filter dto.CourseSearchFilter) ([]dto.CourseResponse, error)
	Get(ctx context.Context, id uint) (dto.CourseDetailResponse, error)
	Create(ctx context.Context, caller guard.Identity, payload dto.CourseCreateRequest) (dto.CourseResponse, error)
	Update(ctx context.Context, caller guard.Identity, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error)
	Delete(ctx context.Context, caller guard.Identity, id uint) error
}

type courseService struct {
	courses   repository.CourseRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewCourseService constructs a CourseService instance.
func NewCourseService(courses repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) CourseService {
	return &courseService{
		courses:   courses,
		validator: validate,
		logger:    logger.With().Str("component", "course_service").Logger(),
	}
}

func (s *courseService) List(ctx context.Context, filter dto.CourseListFilter) ([]dto.CourseResponse, *utils.Pagination, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, nil, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	courses, total, err := s.courses.List(ctx, repository.CourseFilter{
		Search:     filter.Search,
		Tags:       filter.Tags,
		Department: filter.Department,
		SortBy:     filter.SortBy,
		SortOrder:  filter.SortOrder,
		Offset:     (page - 1) * limit,
		Limit:      limit,
	})
	if err != nil {
		return nil, nil, err
	}

	return s.toResponses(ctx, courses), utils.NewPagination(page, limit, total), nil
}

func (s *courseService) Search(ctx context.Context, filter dto.CourseSearchFilter) ([]dto.CourseResponse, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, err
	}

	courses, _, err := s.courses.List(ctx, repository.CourseFilter{
		Search:            filter.Query,
		Tags:              filter.Tags,
		Department:        filter.Department,
		MinRating:         filter.MinRating,
		IsProfessorCourse: filter.IsProfessorCourse,
		SortBy:            "average_rating",
		SortOrder:         "desc",
		Limit:             50,
	})
	if err != nil {
		return nil, err
	}

	return s.toResponses(ctx, courses), nil
}

func (s *courseService) Get(ctx context.Context, id uint) (dto.CourseDetailResponse, error) {
	course, err := s.courses.GetDetail(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseDetailResponse{}, ErrCourseNotFound
		}
		return dto.CourseDetailResponse{}, err
	}

	count, err := s.courses.CountEnrollments(ctx, id)
	if err != nil {
		return dto.CourseDetailResponse{}, err
	}

	return dto.NewCourseDetailResponse(course, count), nil
}

func (s *courseService) Create(ctx context.Context, caller guard.Identity, payload dto.CourseCreateRequest) (dto.CourseResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return dto.CourseResponse{}, err
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	tags := make([]models.CourseTag, 0, len(payload.Tags))
	for _, tag := range payload.Tags {
		tags = append(tags, models.CourseTag{TagName: tag})
	}

	course := models.Course{
		Title:             payload.Title,
		Description:       payload.Description,
		DepartmentOrClub:  payload.DepartmentOrClub,
		CreatorID:         caller.UserID,
		IsProfessorCourse: caller.IsProfessor,
		Tags:              tags,
	}

	if err := s.courses.Create(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	created, err := s.courses.GetByID(ctx, course.ID)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	s.logger.Info().Uint("course_id", course.ID).Uint("creator_id", caller.UserID).Msg("course created")

	return dto.NewCourseResponse(created, 0), nil
}

func (s *courseService) Update(ctx context.Context, caller guard.Identity, id uint, payload dto.CourseUpdateRequest) (dto.CourseResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.CourseResponse{}, err
	}

	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.CourseResponse{}, ErrCourseNotFound
		}
		return dto.CourseResponse{}, err
	}

	if err := guard.Authorize(caller, guard.Check{
		Relation:       guard.IsResourceOwner,
		OwnerID:        course.CreatorID,
		DenyAsNotFound: true,
	}); err != nil {
		return dto.CourseResponse{}, err
	}

	if payload.Title != nil {
		course.Title = *payload.Title
	}
	if payload.Description != nil {
		course.Description = *payload.Description
	}
	if payload.DepartmentOrClub != nil {
		course.DepartmentOrClub = *payload.DepartmentOrClub
	}

	course.Tags = nil
	if err := s.courses.Update(ctx, &course); err != nil {
		return dto.CourseResponse{}, err
	}

	if payload.Tags != nil {
		if err := s.courses.ReplaceTags(ctx, course.ID, payload.Tags); err != nil {
			return dto.CourseResponse{}, err
		}
	}

	updated, err := s.courses.GetByID(ctx, course.ID)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	count, err := s.courses.CountEnrollments(ctx, course.ID)
	if err != nil {
		return dto.CourseResponse{}, err
	}

	return dto.NewCourseResponse(updated, count), nil
}

func (s *courseService) Delete(ctx context.Context, caller guard.Identity, id uint) error {
	course, err := s.courses.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	if err := guard.Authorize(caller, guard.Check{
		Relation:       guard.IsOwnerOrAdmin,
		OwnerID:        course.CreatorID,
		DenyAsNotFound: true,
	}); err != nil {
		return err
	}

	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Uint("course_id", id).Uint("caller_id", caller.UserID).Msg("course deleted")
	return nil
}

func (s *courseService) toResponses(ctx context.Context, courses []models.Course) []dto.CourseResponse {
	responses := make([]dto.CourseResponse, 0, len(courses))
	for _, course := range courses {
		count, err := s.courses.CountEnrollments(ctx, course.ID)
		if err != nil {
			s.logger.Warn().Err(err).Uint("course_id", course.ID).Msg("enrollment count unavailable")
		}
		responses = append(responses, dto.NewCourseResponse(course, count))
	}
	return responses
}
