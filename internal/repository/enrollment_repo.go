package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/models"
)

// EnrollmentRepository defines data operations for enrollments and progress.
type EnrollmentRepository interface {
	GetByID(ctx context.Context, id uint) (models.Enrollment, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (models.Enrollment, error)
	Exists(ctx context.Context, studentID, courseID uint) (bool, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Enrollment, error)
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Delete(ctx context.Context, id uint) error
	Update(ctx context.Context, enrollment *models.Enrollment) error
	CompleteLecture(ctx context.Context, enrollmentID, lectureID uint) error
	CountLectures(ctx context.Context, courseID uint) (int64, error)
	CountCompletedLectures(ctx context.Context, enrollmentID uint) (int64, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository instantiates the repository.
func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

func (r *enrollmentRepository) GetByID(ctx context.Context, id uint) (models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Creator").
		Preload("Course.Tags").
		First(&enrollment, id).Error; err != nil {
		return models.Enrollment{}, err
	}
	return enrollment, nil
}

func (r *enrollmentRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (models.Enrollment, error) {
	var enrollment models.Enrollment
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment).Error; err != nil {
		return models.Enrollment{}, err
	}
	return enrollment, nil
}

func (r *enrollmentRepository) Exists(ctx context.Context, studentID, courseID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *enrollmentRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	if err := r.db.WithContext(ctx).
		Preload("Course").
		Preload("Course.Creator").
		Preload("Course.Tags").
		Where("student_id = ?", studentID).
		Order("enrolled_at DESC").
		Find(&enrollments).Error; err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (r *enrollmentRepository) Create(ctx context.Context, enrollment *models.Enrollment) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(enrollment).Error)
}

func (r *enrollmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Enrollment{}, id).Error
}

func (r *enrollmentRepository) Update(ctx context.Context, enrollment *models.Enrollment) error {
	return r.db.WithContext(ctx).Save(enrollment).Error
}

func (r *enrollmentRepository) CompleteLecture(ctx context.Context, enrollmentID, lectureID uint) error {
	completion := models.LectureCompletion{EnrollmentID: enrollmentID, LectureID: lectureID}
	err := r.db.WithContext(ctx).Create(&completion).Error
	// Completing a lecture twice is a no-op, not an error.
	if translateDuplicate(err) == ErrDuplicate {
		return nil
	}
	return err
}

func (r *enrollmentRepository) CountLectures(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Lecture{}).
		Joins("JOIN modules ON modules.id = lectures.module_id").
		Where("modules.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}

func (r *enrollmentRepository) CountCompletedLectures(ctx context.Context, enrollmentID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.LectureCompletion{}).
		Where("enrollment_id = ?", enrollmentID).
		Count(&count).Error
	return count, err
}
