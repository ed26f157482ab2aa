package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/repository"
)

// UserService handles the caller's own profile and the aggregated dashboard.
type UserService interface {
	Profile(ctx context.Context, caller guard.Identity) (dto.UserResponse, error)
	UpdateProfile(ctx context.Context, caller guard.Identity, payload dto.ProfileUpdateRequest) (dto.UserResponse, error)
	Dashboard(ctx context.Context, caller guard.Identity) (dto.DashboardResponse, error)
}

type userService struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	submissions repository.SubmissionRepository
	reviews     repository.ReviewRepository
	cache       *redis.Client
	cacheTTL    time.Duration
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewUserService constructs a UserService instance. The cache client may be
// nil, in which case every dashboard read hits the database.
func NewUserService(
	users repository.UserRepository,
	courses repository.CourseRepository,
	enrollments repository.EnrollmentRepository,
	submissions repository.SubmissionRepository,
	reviews repository.ReviewRepository,
	cache *redis.Client,
	cacheTTL time.Duration,
	validate *validator.Validate,
	logger zerolog.Logger,
) UserService {
	return &userService{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		submissions: submissions,
		reviews:     reviews,
		cache:       cache,
		cacheTTL:    cacheTTL,
		validator:   validate,
		logger:      logger.With().Str("component", "user_service").Logger(),
	}
}

func (s *userService) Profile(ctx context.Context, caller guard.Identity) (dto.UserResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, caller guard.Identity, payload dto.ProfileUpdateRequest) (dto.UserResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return dto.UserResponse{}, err
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if payload.FullName != nil {
		user.FullName = *payload.FullName
	}
	if payload.ProfilePictureURL != nil {
		user.ProfilePictureURL = *payload.ProfilePictureURL
	}

	user.Interests = nil
	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	if payload.Interests != nil {
		if err := s.users.ReplaceInterests(ctx, user.ID, payload.Interests); err != nil {
			return dto.UserResponse{}, err
		}
	}

	s.invalidateDashboard(ctx, caller.UserID)

	updated, err := s.users.GetByID(ctx, user.ID)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.NewUserResponse(updated), nil
}

func (s *userService) Dashboard(ctx context.Context, caller guard.Identity) (dto.DashboardResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return dto.DashboardResponse{}, err
	}

	cacheKey := dashboardCacheKey(caller.UserID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey).Result(); err == nil {
			var response dto.DashboardResponse
			if unmarshalErr := json.Unmarshal([]byte(cached), &response); unmarshalErr == nil {
				s.logger.Debug().Uint("user_id", caller.UserID).Msg("dashboard cache hit")
				response.CacheHit = true
				return response, nil
			}
		} else if err != redis.Nil {
			s.logger.Warn().Err(err).Msg("failed to read dashboard cache")
		}
	}

	user, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.DashboardResponse{}, ErrUserNotFound
		}
		return dto.DashboardResponse{}, err
	}

	enrollments, err := s.enrollments.ListByStudent(ctx, caller.UserID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	created, err := s.courses.ListByCreator(ctx, caller.UserID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	createdResponses := make([]dto.CourseResponse, 0, len(created))
	for _, course := range created {
		count, err := s.courses.CountEnrollments(ctx, course.ID)
		if err != nil {
			return dto.DashboardResponse{}, err
		}
		createdResponses = append(createdResponses, dto.NewCourseResponse(course, count))
	}

	submissions, err := s.submissions.ListByStudent(ctx, caller.UserID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}
	submissionResponses := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		submissionResponses = append(submissionResponses, dto.NewSubmissionResponse(submission))
	}

	reviews, err := s.reviews.ListByStudent(ctx, caller.UserID)
	if err != nil {
		return dto.DashboardResponse{}, err
	}

	response := dto.DashboardResponse{
		User:            dto.NewUserResponse(user),
		EnrolledCourses: dto.NewEnrollmentResponseSlice(enrollments),
		CreatedCourses:  createdResponses,
		Submissions:     submissionResponses,
		Reviews:         dto.NewReviewResponseSlice(reviews),
	}

	if s.cache != nil {
		if payload, err := json.Marshal(response); err == nil {
			if err := s.cache.Set(ctx, cacheKey, payload, s.cacheTTL).Err(); err != nil {
				s.logger.Warn().Err(err).Msg("failed to store dashboard cache")
			}
		}
	}

	return response, nil
}

func (s *userService) invalidateDashboard(ctx context.Context, userID uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, dashboardCacheKey(userID)).Err(); err != nil {
		s.logger.Warn().Err(err).Uint("user_id", userID).Msg("failed to invalidate dashboard cache")
	}
}

func dashboardCacheKey(userID uint) string {
	return fmt.Sprintf("dashboard:user:%d", userID)
}
