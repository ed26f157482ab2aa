package models

import "time"

// Course is a published course with derived rating columns.
//
// AverageRating and TotalRatings are never authored directly; they are
// recomputed from the course's review set whenever that set changes.
type Course struct {
	ID                uint         `gorm:"primaryKey" json:"id"`
	Title             string       `gorm:"size:255;not null" json:"title"`
	Description       string       `gorm:"type:text;not null" json:"description"`
	DepartmentOrClub  string       `gorm:"size:255;not null" json:"department_or_club"`
	CreatorID         uint         `gorm:"not null;index" json:"creator_id"`
	IsProfessorCourse bool         `gorm:"not null;default:false" json:"is_professor_course"`
	AverageRating     float64      `gorm:"not null;default:0" json:"average_rating"`
	TotalRatings      int          `gorm:"not null;default:0" json:"total_ratings"`
	Creator           User         `gorm:"foreignKey:CreatorID" json:"creator"`
	Tags              []CourseTag  `gorm:"constraint:OnDelete:CASCADE" json:"tags"`
	Modules           []Module     `gorm:"constraint:OnDelete:CASCADE" json:"modules,omitempty"`
	Enrollments       []Enrollment `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reviews           []Review     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Comments          []Comment    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt         time.Time    `json:"created_at"`
	UpdatedAt         time.Time    `json:"updated_at"`
}

// CourseTag labels a course for discovery and filtering.
type CourseTag struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	CourseID uint   `gorm:"not null;index" json:"course_id"`
	TagName  string `gorm:"size:64;not null" json:"tag_name"`
}
