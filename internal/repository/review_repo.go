package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/models"
)

// ReviewRepository defines data operations for course reviews.
type ReviewRepository interface {
	GetByID(ctx context.Context, id uint) (models.Review, error)
	GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (models.Review, error)
	ListByCourse(ctx context.Context, courseID uint, offset, limit int) ([]models.Review, int64, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Review, error)
	// RatingsByCourse projects only the rating values, for aggregation.
	RatingsByCourse(ctx context.Context, courseID uint) ([]int, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id uint) error
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository instantiates the repository.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) GetByID(ctx context.Context, id uint) (models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).Preload("Student").First(&review, id).Error; err != nil {
		return models.Review{}, err
	}
	return review, nil
}

func (r *reviewRepository) GetByStudentAndCourse(ctx context.Context, studentID, courseID uint) (models.Review, error) {
	var review models.Review
	if err := r.db.WithContext(ctx).
		Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&review).Error; err != nil {
		return models.Review{}, err
	}
	return review, nil
}

func (r *reviewRepository) ListByCourse(ctx context.Context, courseID uint, offset, limit int) ([]models.Review, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Review{}).Where("course_id = ?", courseID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	if err := query.
		Preload("Student").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, 0, err
	}

	return reviews, total, nil
}

func (r *reviewRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

func (r *reviewRepository) RatingsByCourse(ctx context.Context, courseID uint) ([]int, error) {
	var ratings []int
	err := r.db.WithContext(ctx).Model(&models.Review{}).
		Where("course_id = ?", courseID).
		Pluck("rating", &ratings).Error
	return ratings, err
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(review).Error)
}

func (r *reviewRepository) Update(ctx context.Context, review *models.Review) error {
	return r.db.WithContext(ctx).Save(review).Error
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Review{}, id).Error
}
