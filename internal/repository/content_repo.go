package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/models"
)

// ContentRepository defines data operations for the course content tree:
// modules, lectures, assignments and questions. Every lookup also resolves
// the owning course's creator so services can run ownership checks.
type ContentRepository interface {
	ListModules(ctx context.Context, courseID uint) ([]models.Module, error)
	GetModule(ctx context.Context, id uint) (models.Module, error)
	ModuleCourseOwner(ctx context.Context, moduleID uint) (courseID, creatorID uint, err error)
	CreateModule(ctx context.Context, module *models.Module) error
	UpdateModule(ctx context.Context, module *models.Module) error
	DeleteModule(ctx context.Context, id uint) error

	GetLecture(ctx context.Context, id uint) (models.Lecture, error)
	LectureCourseOwner(ctx context.Context, lectureID uint) (courseID, creatorID uint, err error)
	CreateLecture(ctx context.Context, lecture *models.Lecture) error
	UpdateLecture(ctx context.Context, lecture *models.Lecture) error
	DeleteLecture(ctx context.Context, id uint) error

	GetAssignment(ctx context.Context, id uint) (models.Assignment, error)
	GetAssignmentWithQuestions(ctx context.Context, id uint) (models.Assignment, error)
	AssignmentCourseOwner(ctx context.Context, assignmentID uint) (courseID, creatorID uint, err error)
	CreateAssignment(ctx context.Context, assignment *models.Assignment) error
	UpdateAssignment(ctx context.Context, assignment *models.Assignment) error
	DeleteAssignment(ctx context.Context, id uint) error

	GetQuestion(ctx context.Context, id uint) (models.Question, error)
	QuestionCourseOwner(ctx context.Context, questionID uint) (courseID, creatorID uint, err error)
	CreateQuestion(ctx context.Context, question *models.Question) error
	UpdateQuestion(ctx context.Context, question *models.Question) error
	DeleteQuestion(ctx context.Context, id uint) error
}

type contentRepository struct {
	db *gorm.DB
}

// NewContentRepository instantiates the repository.
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) ListModules(ctx context.Context, courseID uint) ([]models.Module, error) {
	var modules []models.Module
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Preload("Lectures", func(db *gorm.DB) *gorm.DB { return db.Order("lectures.order_index ASC") }).
		Preload("Assignments", func(db *gorm.DB) *gorm.DB { return db.Order("assignments.order_index ASC") }).
		Preload("Assignments.Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.order_index ASC") }).
		Order("order_index ASC").
		Find(&modules).Error
	return modules, err
}

func (r *contentRepository) GetModule(ctx context.Context, id uint) (models.Module, error) {
	var module models.Module
	if err := r.db.WithContext(ctx).First(&module, id).Error; err != nil {
		return models.Module{}, err
	}
	return module, nil
}

func (r *contentRepository) ModuleCourseOwner(ctx context.Context, moduleID uint) (uint, uint, error) {
	var row struct {
		CourseID  uint
		CreatorID uint
	}
	err := r.db.WithContext(ctx).Model(&models.Module{}).
		Select("modules.course_id, courses.creator_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("modules.id = ?", moduleID).
		Take(&row).Error
	return row.CourseID, row.CreatorID, err
}

func (r *contentRepository) CreateModule(ctx context.Context, module *models.Module) error {
	return r.db.WithContext(ctx).Create(module).Error
}

func (r *contentRepository) UpdateModule(ctx context.Context, module *models.Module) error {
	return r.db.WithContext(ctx).Save(module).Error
}

func (r *contentRepository) DeleteModule(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Module{}, id).Error
}

func (r *contentRepository) GetLecture(ctx context.Context, id uint) (models.Lecture, error) {
	var lecture models.Lecture
	if err := r.db.WithContext(ctx).First(&lecture, id).Error; err != nil {
		return models.Lecture{}, err
	}
	return lecture, nil
}

func (r *contentRepository) LectureCourseOwner(ctx context.Context, lectureID uint) (uint, uint, error) {
	var row struct {
		CourseID  uint
		CreatorID uint
	}
	err := r.db.WithContext(ctx).Model(&models.Lecture{}).
		Select("modules.course_id, courses.creator_id").
		Joins("JOIN modules ON modules.id = lectures.module_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("lectures.id = ?", lectureID).
		Take(&row).Error
	return row.CourseID, row.CreatorID, err
}

func (r *contentRepository) CreateLecture(ctx context.Context, lecture *models.Lecture) error {
	return r.db.WithContext(ctx).Create(lecture).Error
}

func (r *contentRepository) UpdateLecture(ctx context.Context, lecture *models.Lecture) error {
	return r.db.WithContext(ctx).Save(lecture).Error
}

func (r *contentRepository) DeleteLecture(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Lecture{}, id).Error
}

func (r *contentRepository) GetAssignment(ctx context.Context, id uint) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).First(&assignment, id).Error; err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

func (r *contentRepository) GetAssignmentWithQuestions(ctx context.Context, id uint) (models.Assignment, error) {
	var assignment models.Assignment
	if err := r.db.WithContext(ctx).
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.order_index ASC") }).
		First(&assignment, id).Error; err != nil {
		return models.Assignment{}, err
	}
	return assignment, nil
}

func (r *contentRepository) AssignmentCourseOwner(ctx context.Context, assignmentID uint) (uint, uint, error) {
	var row struct {
		CourseID  uint
		CreatorID uint
	}
	err := r.db.WithContext(ctx).Model(&models.Assignment{}).
		Select("modules.course_id, courses.creator_id").
		Joins("JOIN modules ON modules.id = assignments.module_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("assignments.id = ?", assignmentID).
		Take(&row).Error
	return row.CourseID, row.CreatorID, err
}

func (r *contentRepository) CreateAssignment(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *contentRepository) UpdateAssignment(ctx context.Context, assignment *models.Assignment) error {
	return r.db.WithContext(ctx).Save(assignment).Error
}

func (r *contentRepository) DeleteAssignment(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Assignment{}, id).Error
}

func (r *contentRepository) GetQuestion(ctx context.Context, id uint) (models.Question, error) {
	var question models.Question
	if err := r.db.WithContext(ctx).First(&question, id).Error; err != nil {
		return models.Question{}, err
	}
	return question, nil
}

func (r *contentRepository) QuestionCourseOwner(ctx context.Context, questionID uint) (uint, uint, error) {
	var row struct {
		CourseID  uint
		CreatorID uint
	}
	err := r.db.WithContext(ctx).Model(&models.Question{}).
		Select("modules.course_id, courses.creator_id").
		Joins("JOIN assignments ON assignments.id = questions.assignment_id").
		Joins("JOIN modules ON modules.id = assignments.module_id").
		Joins("JOIN courses ON courses.id = modules.course_id").
		Where("questions.id = ?", questionID).
		Take(&row).Error
	return row.CourseID, row.CreatorID, err
}

func (r *contentRepository) CreateQuestion(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

func (r *contentRepository) UpdateQuestion(ctx context.Context, question *models.Question) error {
	return r.db.WithContext(ctx).Save(question).Error
}

func (r *contentRepository) DeleteQuestion(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Question{}, id).Error
}
