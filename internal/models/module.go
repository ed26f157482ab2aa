package models

import "time"

// Module groups lectures and assignments within a course.
type Module struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	CourseID    uint         `gorm:"not null;index" json:"course_id"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	OrderIndex  int          `gorm:"not null;default:0" json:"order_index"`
	Lectures    []Lecture    `gorm:"constraint:OnDelete:CASCADE" json:"lectures,omitempty"`
	Assignments []Assignment `gorm:"constraint:OnDelete:CASCADE" json:"assignments,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Lecture is a single piece of module content.
type Lecture struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ModuleID   uint      `gorm:"not null;index" json:"module_id"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	ContentURL string    `gorm:"size:512" json:"content_url"`
	OrderIndex int       `gorm:"not null;default:0" json:"order_index"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
