package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/models"
)

// CommentRepository defines data operations for threaded course comments.
type CommentRepository interface {
	GetByID(ctx context.Context, id uint) (models.Comment, error)
	// ListByCourse returns top-level comments with one level of replies.
	ListByCourse(ctx context.Context, courseID uint, offset, limit int) ([]models.Comment, int64, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Comment, error)
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id uint) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository instantiates the repository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) GetByID(ctx context.Context, id uint) (models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).Preload("Student").First(&comment, id).Error; err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

func (r *commentRepository) ListByCourse(ctx context.Context, courseID uint, offset, limit int) ([]models.Comment, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("course_id = ? AND parent_comment_id IS NULL", courseID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	if err := query.
		Preload("Student").
		Preload("Replies", func(db *gorm.DB) *gorm.DB { return db.Order("comments.created_at ASC") }).
		Preload("Replies.Student").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&comments).Error; err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *commentRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).
		Preload("Student").
		Where("student_id = ?", studentID).
		Order("created_at DESC").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select("Replies").Delete(&models.Comment{ID: id}).Error
}
