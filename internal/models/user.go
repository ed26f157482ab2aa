package models

import "time"

// User represents an account that can create courses, enroll, review and comment.
type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Email             string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash      string         `gorm:"size:255;not null" json:"-"`
	FullName          string         `gorm:"size:255;not null" json:"full_name"`
	ProfilePictureURL string         `gorm:"size:512" json:"profile_picture_url"`
	IsProfessor       bool           `gorm:"not null;default:false" json:"is_professor"`
	IsAdmin           bool           `gorm:"not null;default:false" json:"is_admin"`
	Interests         []UserInterest `gorm:"constraint:OnDelete:CASCADE" json:"interests"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// UserInterest tags a user with a subject they care about.
type UserInterest struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	TagName string `gorm:"size:64;not null" json:"tag_name"`
}

// IsStudent reports whether the user carries no elevated role.
func (u User) IsStudent() bool {
	return !u.IsProfessor && !u.IsAdmin
}
