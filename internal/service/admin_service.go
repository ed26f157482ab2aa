package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/repository"
	"github.com/collegecoursera/api/internal/utils"
)

// AdminService covers the moderation surface: user and course management,
// platform statistics and final-grade assignment. Every operation requires
// the admin role; the route-level middleware enforces it too, the service
// check keeps the invariant when services are reused elsewhere.
type AdminService interface {
	ListUsers(ctx context.Context, caller guard.Identity, filter dto.AdminUserFilter) ([]dto.AdminUserResponse, *utils.Pagination, error)
	GetUser(ctx context.Context, caller guard.Identity, userID uint) (dto.AdminUserResponse, error)
	UpdateUserRole(ctx context.Context, caller guard.Identity, userID uint, payload dto.AdminUpdateRoleRequest) (dto.UserResponse, error)
	DeleteUser(ctx context.Context, caller guard.Identity, userID uint) error

	DeleteCourse(ctx context.Context, caller guard.Identity, courseID uint) error

	PlatformStats(ctx context.Context, caller guard.Identity) (dto.PlatformStats, error)
	CourseStats(ctx context.Context, caller guard.Identity) (dto.CourseStats, error)
	UserStats(ctx context.Context, caller guard.Identity) (dto.UserStats, error)
	EnrollmentStats(ctx context.Context, caller guard.Identity) (dto.EnrollmentStats, error)

	UpdateFinalGrade(ctx context.Context, caller guard.Identity, enrollmentID uint, payload dto.AdminUpdateFinalGradeRequest) (dto.EnrollmentResponse, error)
}

type adminService struct {
	users       repository.UserRepository
	courses     repository.CourseRepository
	enrollments repository.EnrollmentRepository
	stats       repository.StatsRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAdminService constructs an AdminService instance.
func NewAdminService(users repository.UserRepository, courses repository.CourseRepository, enrollments repository.EnrollmentRepository, stats repository.StatsRepository, validate *validator.Validate, logger zerolog.Logger) AdminService {
	return &adminService{
		users:       users,
		courses:     courses,
		enrollments: enrollments,
		stats:       stats,
		validator:   validate,
		logger:      logger.With().Str("component", "admin_service").Logger(),
	}
}

func (s *adminService) ListUsers(ctx context.Context, caller guard.Identity, filter dto.AdminUserFilter) ([]dto.AdminUserResponse, *utils.Pagination, error) {
	if err := s.requireAdmin(caller); err != nil {
		return nil, nil, err
	}
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

	users, total, err := s.users.List(ctx, repository.UserFilter{
		Search: filter.Search,
		Role:   filter.Role,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, nil, err
	}

	responses := make([]dto.AdminUserResponse, 0, len(users))
	for _, user := range users {
		createdCourses, err := s.users.CountCreatedCourses(ctx, user.ID)
		if err != nil {
			return nil, nil, err
		}
		enrollments, err := s.users.CountEnrollments(ctx, user.ID)
		if err != nil {
			return nil, nil, err
		}
		responses = append(responses, dto.NewAdminUserResponse(user, createdCourses, enrollments))
	}

	return responses, utils.NewPagination(page, limit, total), nil
}

func (s *adminService) GetUser(ctx context.Context, caller guard.Identity, userID uint) (dto.AdminUserResponse, error) {
	if err := s.requireAdmin(caller); err != nil {
		return dto.AdminUserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AdminUserResponse{}, ErrUserNotFound
		}
		return dto.AdminUserResponse{}, err
	}

	createdCourses, err := s.users.CountCreatedCourses(ctx, userID)
	if err != nil {
		return dto.AdminUserResponse{}, err
	}
	enrollments, err := s.users.CountEnrollments(ctx, userID)
	if err != nil {
		return dto.AdminUserResponse{}, err
	}

	return dto.NewAdminUserResponse(user, createdCourses, enrollments), nil
}

func (s *adminService) UpdateUserRole(ctx context.Context, caller guard.Identity, userID uint, payload dto.AdminUpdateRoleRequest) (dto.UserResponse, error) {
	if err := s.requireAdmin(caller); err != nil {
		return dto.UserResponse{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.UserResponse{}, ErrUserNotFound
		}
		return dto.UserResponse{}, err
	}

	if payload.IsProfessor != nil {
		user.IsProfessor = *payload.IsProfessor
	}
	if payload.IsAdmin != nil {
		user.IsAdmin = *payload.IsAdmin
	}

	if err := s.users.Update(ctx, &user); err != nil {
		return dto.UserResponse{}, err
	}

	s.logger.Info().
		Uint("user_id", userID).
		Uint("admin_id", caller.UserID).
		Bool("is_professor", user.IsProfessor).
		Bool("is_admin", user.IsAdmin).
		Msg("user role updated")

	return dto.NewUserResponse(user), nil
}

func (s *adminService) DeleteUser(ctx context.Context, caller guard.Identity, userID uint) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}

	s.logger.Info().Uint("user_id", userID).Uint("admin_id", caller.UserID).Msg("user deleted")
	return nil
}

func (s *adminService) DeleteCourse(ctx context.Context, caller guard.Identity, courseID uint) error {
	if err := s.requireAdmin(caller); err != nil {
		return err
	}

	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCourseNotFound
		}
		return err
	}

	if err := s.courses.Delete(ctx, courseID); err != nil {
		return err
	}

	s.logger.Info().Uint("course_id", courseID).Uint("admin_id", caller.UserID).Msg("course removed by admin")
	return nil
}

func (s *adminService) PlatformStats(ctx context.Context, caller guard.Identity) (dto.PlatformStats, error) {
	if err := s.requireAdmin(caller); err != nil {
		return dto.PlatformStats{}, err
	}
	return s.stats.PlatformStats(ctx)
}

func (s *adminService) CourseStats(ctx context.Context, caller guard.Identity) (dto.CourseStats, error) {
	if err := s.requireAdmin(caller); err != nil {
		return dto.CourseStats{}, err
	}

	byDepartment, err := s.stats.CoursesByDepartment(ctx)
	if err != nil {
		return dto.CourseStats{}, err
	}

	topRated, err := s.stats.TopRatedCourses(ctx, 10)
	if err != nil {
		return dto.CourseStats{}, err
	}
	topResponses := make([]dto.CourseResponse, 0, len(topRated))
	for _, course := range topRated {
		topResponses = append(topResponses, dto.NewCourseResponse(course, 0))
	}

	var total int64
	for _, row := range byDepartment {
		total += row.Count
	}

	return dto.CourseStats{
		TotalCourses:        total,
		CoursesByDepartment: byDepartment,
		TopRatedCourses:     topResponses,
	}, nil
}

func (s *adminService) UserStats(ctx context.Context, caller guard.Identity) (dto.UserStats, error) {
	if err := s.requireAdmin(caller); err != nil {
		return dto.UserStats{}, err
	}

	byRole, err := s.stats.UsersByRole(ctx)
	if err != nil {
		return dto.UserStats{}, err
	}

	active, err := s.stats.ActiveUserCount(ctx)
	if err != nil {
		return dto.UserStats{}, err
	}

	var total int64
	for _, row := range byRole {
		total += row.Count
	}

	return dto.UserStats{
		TotalUsers:  total,
		UsersByRole: byRole,
		ActiveUsers: active,
	}, nil
}

func (s *adminService) EnrollmentStats(ctx context.Context, caller guard.Identity) (dto.EnrollmentStats, error) {
	if err := s.requireAdmin(caller); err != nil {
		return dto.EnrollmentStats{}, err
	}

	byCourse, err := s.stats.EnrollmentsByCourse(ctx, 10)
	if err != nil {
		return dto.EnrollmentStats{}, err
	}

	averageGrade, err := s.stats.AverageFinalGrade(ctx)
	if err != nil {
		return dto.EnrollmentStats{}, err
	}

	stats, err := s.stats.PlatformStats(ctx)
	if err != nil {
		return dto.EnrollmentStats{}, err
	}

	return dto.EnrollmentStats{
		TotalEnrollments:    stats.TotalEnrollments,
		EnrollmentsByCourse: byCourse,
		AverageFinalGrade:   averageGrade,
	}, nil
}

func (s *adminService) UpdateFinalGrade(ctx context.Context, caller guard.Identity, enrollmentID uint, payload dto.AdminUpdateFinalGradeRequest) (dto.EnrollmentResponse, error) {
	if err := s.requireAdmin(caller); err != nil {
		return dto.EnrollmentResponse{}, err
	}
	if err := s.validator.Struct(payload); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	enrollment, err := s.enrollments.GetByID(ctx, enrollmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.EnrollmentResponse{}, ErrEnrollmentNotFound
		}
		return dto.EnrollmentResponse{}, err
	}

	grade := payload.FinalGrade
	enrollment.FinalGrade = &grade

	if err := s.enrollments.Update(ctx, &enrollment); err != nil {
		return dto.EnrollmentResponse{}, err
	}

	s.logger.Info().
		Uint("enrollment_id", enrollmentID).
		Uint("admin_id", caller.UserID).
		Float64("final_grade", grade).
		Msg("final grade assigned")

	return dto.NewEnrollmentResponse(enrollment), nil
}

func (s *adminService) requireAdmin(caller guard.Identity) error {
	return guard.Authorize(caller, guard.Check{Relation: guard.IsAdmin})
}
