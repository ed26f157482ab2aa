package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/models"
)

// SubmissionRepository defines data operations for graded submissions.
type SubmissionRepository interface {
	GetByStudentAndAssignment(ctx context.Context, studentID, assignmentID uint) (models.Submission, error)
	ListByStudent(ctx context.Context, studentID uint) ([]models.Submission, error)
	// CreateWithAnswers persists the submission and its marked answers in a
	// single transaction. Returns ErrDuplicate when the (student, assignment)
	// uniqueness constraint is violated.
	CreateWithAnswers(ctx context.Context, submission *models.Submission) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository instantiates the repository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) GetByStudentAndAssignment(ctx context.Context, studentID, assignmentID uint) (models.Submission, error) {
	var submission models.Submission
	if err := r.db.WithContext(ctx).
		Preload("Answers").
		Where("student_id = ? AND assignment_id = ?", studentID, assignmentID).
		First(&submission).Error; err != nil {
		return models.Submission{}, err
	}
	return submission, nil
}

func (r *submissionRepository) ListByStudent(ctx context.Context, studentID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	if err := r.db.WithContext(ctx).
		Preload("Answers").
		Where("student_id = ?", studentID).
		Order("submitted_at DESC").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}

func (r *submissionRepository) CreateWithAnswers(ctx context.Context, submission *models.Submission) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(submission).Error
	})
	return translateDuplicate(err)
}
