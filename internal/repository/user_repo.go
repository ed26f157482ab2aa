package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/models"
)

// UserFilter narrows admin user listings.
type UserFilter struct {
	Search string
	Role   string
	Offset int
	Limit  int
}

// UserRepository defines data operations for user accounts.
type UserRepository interface {
	GetByID(ctx context.Context, id uint) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ReplaceInterests(ctx context.Context, userID uint, tags []string) error
	List(ctx context.Context, filter UserFilter) ([]models.User, int64, error)
	CountCreatedCourses(ctx context.Context, userID uint) (int64, error)
	CountEnrollments(ctx context.Context, userID uint) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository instantiates the repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Interests").First(&user, id).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Interests").
		Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(user).Error)
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.User{}, id).Error
}

func (r *userRepository) ReplaceInterests(ctx context.Context, userID uint, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserInterest{}).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		interests := make([]models.UserInterest, 0, len(tags))
		for _, tag := range tags {
			interests = append(interests, models.UserInterest{UserID: userID, TagName: tag})
		}
		return tx.Create(&interests).Error
	})
}

func (r *userRepository) List(ctx context.Context, filter UserFilter) ([]models.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.User{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("full_name LIKE ? OR email LIKE ?", pattern, pattern)
	}

	switch filter.Role {
	case "professor":
		query = query.Where("is_professor = ?", true)
	case "admin":
		query = query.Where("is_admin = ?", true)
	case "student":
		query = query.Where("is_professor = ? AND is_admin = ?", false, false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	if err := query.Preload("Interests").
		Order("created_at DESC").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *userRepository) CountCreatedCourses(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Course{}).
		Where("creator_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *userRepository) CountEnrollments(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("student_id = ?", userID).Count(&count).Error
	return count, err
}
