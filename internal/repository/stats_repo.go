package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/models"
)

// StatsRepository aggregates platform-wide numbers for the admin views.
type StatsRepository interface {
	PlatformStats(ctx context.Context) (dto.PlatformStats, error)
	CoursesByDepartment(ctx context.Context) ([]dto.DepartmentCount, error)
	TopRatedCourses(ctx context.Context, limit int) ([]models.Course, error)
	UsersByRole(ctx context.Context) ([]dto.RoleCount, error)
	ActiveUserCount(ctx context.Context) (int64, error)
	EnrollmentsByCourse(ctx context.Context, limit int) ([]dto.CourseEnrollmentCount, error)
	AverageFinalGrade(ctx context.Context) (float64, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository instantiates the repository.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) PlatformStats(ctx context.Context) (dto.PlatformStats, error) {
	var stats dto.PlatformStats
	db := r.db.WithContext(ctx)

	counts := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.User{}, &stats.TotalUsers},
		{&models.Course{}, &stats.TotalCourses},
		{&models.Enrollment{}, &stats.TotalEnrollments},
		{&models.Review{}, &stats.TotalReviews},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dest).Error; err != nil {
			return dto.PlatformStats{}, err
		}
	}

	var average *float64
	if err := db.Model(&models.Course{}).
		Select("AVG(average_rating)").Scan(&average).Error; err != nil {
		return dto.PlatformStats{}, err
	}
	if average != nil {
		stats.AverageRating = *average
	}

	if err := db.Model(&models.Course{}).
		Where("is_professor_course = ?", true).
		Count(&stats.ProfessorCourses).Error; err != nil {
		return dto.PlatformStats{}, err
	}
	stats.StudentCourses = stats.TotalCourses - stats.ProfessorCourses

	return stats, nil
}

func (r *statsRepository) CoursesByDepartment(ctx context.Context) ([]dto.DepartmentCount, error) {
	var rows []dto.DepartmentCount
	err := r.db.WithContext(ctx).Model(&models.Course{}).
		Select("department_or_club, COUNT(id) AS count").
		Group("department_or_club").
		Order("count DESC").
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) TopRatedCourses(ctx context.Context, limit int) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Preload("Creator").
		Preload("Tags").
		Order("average_rating DESC").
		Limit(limit).
		Find(&courses).Error
	return courses, err
}

func (r *statsRepository) UsersByRole(ctx context.Context) ([]dto.RoleCount, error) {
	var rows []dto.RoleCount
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Select("is_professor, is_admin, COUNT(id) AS count").
		Group("is_professor").
		Group("is_admin").
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) ActiveUserCount(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id IN (?)", r.db.Model(&models.Enrollment{}).Select("student_id")).
		Count(&count).Error
	return count, err
}

func (r *statsRepository) EnrollmentsByCourse(ctx context.Context, limit int) ([]dto.CourseEnrollmentCount, error) {
	var rows []dto.CourseEnrollmentCount
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Select("course_id, COUNT(id) AS count").
		Group("course_id").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

func (r *statsRepository) AverageFinalGrade(ctx context.Context) (float64, error) {
	var average *float64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Select("AVG(final_grade)").Scan(&average).Error
	if err != nil || average == nil {
		return 0, err
	}
	return *average, nil
}
