package models

import "time"

// Comment is a threaded discussion entry on a course.
//
// Replies reference their parent through ParentCommentID; deleting a parent
// cascades to its replies.
type Comment struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	StudentID       uint      `gorm:"not null;index" json:"student_id"`
	CourseID        uint      `gorm:"not null;index" json:"course_id"`
	ParentCommentID *uint     `gorm:"index" json:"parent_comment_id"`
	CommentText     string    `gorm:"type:text;not null" json:"comment_text"`
	Student         User      `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	Replies         []Comment `gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE" json:"replies,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
