package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/collegecoursera/api/internal/models"
)

// CourseFilter narrows catalogue listings.
type CourseFilter struct {
	Search            string
	Tags              []string
	Department        string
	MinRating         *float64
	IsProfessorCourse *bool
	SortBy            string
	SortOrder         string
	Offset            int
	Limit             int
}

// CourseRepository defines data operations for courses.
type CourseRepository interface {
	List(ctx context.Context, filter CourseFilter) ([]models.Course, int64, error)
	GetByID(ctx context.Context, id uint) (models.Course, error)
	GetDetail(ctx context.Context, id uint) (models.Course, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id uint) error
	ReplaceTags(ctx context.Context, courseID uint, tags []string) error
	UpdateRating(ctx context.Context, courseID uint, average float64, total int) error
	CountEnrollments(ctx context.Context, courseID uint) (int64, error)
}

type courseRepository struct {
	db *gorm.DB
}

// NewCourseRepository instantiates the repository.
func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) baseQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Course{}).
		Preload("Creator").
		Preload("Creator.Interests").
		Preload("Tags")
}

func (r *courseRepository) List(ctx context.Context, filter CourseFilter) ([]models.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Course{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.
			Joins("JOIN users ON users.id = courses.creator_id").
			Where("courses.title LIKE ? OR courses.description LIKE ? OR courses.department_or_club LIKE ? OR users.full_name LIKE ?",
				pattern, pattern, pattern, pattern)
	}

	if len(filter.Tags) > 0 {
		query = query.Where("courses.id IN (?)",
			r.db.Model(&models.CourseTag{}).Select("course_id").Where("tag_name IN ?", filter.Tags))
	}

	if filter.Department != "" {
		query = query.Where("courses.department_or_club = ?", filter.Department)
	}

	if filter.MinRating != nil {
		query = query.Where("courses.average_rating >= ?", *filter.MinRating)
	}

	if filter.IsProfessorCourse != nil {
		query = query.Where("courses.is_professor_course = ?", *filter.IsProfessorCourse)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := filter.SortBy
	switch sortBy {
	case "title", "average_rating", "total_ratings", "created_at":
	default:
		sortBy = "created_at"
	}
	order := "DESC"
	if filter.SortOrder == "asc" {
		order = "ASC"
	}

	var courses []models.Course
	if err := query.
		Preload("Creator").
		Preload("Tags").
		Order("courses." + sortBy + " " + order).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&courses).Error; err != nil {
		return nil, 0, err
	}

	return courses, total, nil
}

func (r *courseRepository) GetByID(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.baseQuery(ctx).First(&course, id).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *courseRepository) GetDetail(ctx context.Context, id uint) (models.Course, error) {
	var course models.Course
	if err := r.baseQuery(ctx).
		Preload("Modules", func(db *gorm.DB) *gorm.DB { return db.Order("modules.order_index ASC") }).
		Preload("Modules.Lectures", func(db *gorm.DB) *gorm.DB { return db.Order("lectures.order_index ASC") }).
		Preload("Modules.Assignments", func(db *gorm.DB) *gorm.DB { return db.Order("assignments.order_index ASC") }).
		Preload("Modules.Assignments.Questions", func(db *gorm.DB) *gorm.DB { return db.Order("questions.order_index ASC") }).
		Preload("Reviews", func(db *gorm.DB) *gorm.DB { return db.Order("reviews.created_at DESC").Limit(10) }).
		Preload("Reviews.Student").
		First(&course, id).Error; err != nil {
		return models.Course{}, err
	}
	return course, nil
}

func (r *courseRepository) ListByCreator(ctx context.Context, creatorID uint) ([]models.Course, error) {
	var courses []models.Course
	if err := r.baseQuery(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&courses).Error; err != nil {
		return nil, err
	}
	return courses, nil
}

func (r *courseRepository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepository) Update(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Save(course).Error
}

func (r *courseRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&models.Course{ID: id}).Error
}

func (r *courseRepository) ReplaceTags(ctx context.Context, courseID uint, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", courseID).Delete(&models.CourseTag{}).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		rows := make([]models.CourseTag, 0, len(tags))
		for _, tag := range tags {
			rows = append(rows, models.CourseTag{CourseID: courseID, TagName: tag})
		}
		return tx.Create(&rows).Error
	})
}

func (r *courseRepository) UpdateRating(ctx context.Context, courseID uint, average float64, total int) error {
	return r.db.WithContext(ctx).Model(&models.Course{}).
		Where("id = ?", courseID).
		Updates(map[string]interface{}{
			"average_rating": average,
			"total_ratings":  total,
		}).Error
}

func (r *courseRepository) CountEnrollments(ctx context.Context, courseID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}
