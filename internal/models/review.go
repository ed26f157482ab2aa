package models

import "time"

// Review is a student's 1-5 star rating plus optional comment for a course.
//
// The (student, course) pair is unique; only the authoring student may
// update or delete the review. Every create/update/delete triggers a rating
// recomputation for the owning course.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_reviews_student_course" json:"student_id"`
	CourseID  uint      `gorm:"not null;uniqueIndex:idx_reviews_student_course" json:"course_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	Student   User      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
