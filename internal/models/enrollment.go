package models

import "time"

// Enrollment grants a student participation rights in a course.
//
// Its existence is the precondition for reviews, comments and progress
// tracking on that course. The (student, course) pair is unique.
type Enrollment struct {
	ID                uint                `gorm:"primaryKey" json:"id"`
	StudentID         uint                `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"student_id"`
	CourseID          uint                `gorm:"not null;uniqueIndex:idx_enrollments_student_course" json:"course_id"`
	FinalGrade        *float64            `json:"final_grade"`
	EnrolledAt        time.Time           `gorm:"autoCreateTime" json:"enrolled_at"`
	Course            Course              `gorm:"foreignKey:CourseID" json:"course,omitempty"`
	CompletedLectures []LectureCompletion `gorm:"foreignKey:EnrollmentID;constraint:OnDelete:CASCADE" json:"completed_lectures,omitempty"`
}

// LectureCompletion marks a lecture as finished within an enrollment.
type LectureCompletion struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EnrollmentID uint      `gorm:"not null;uniqueIndex:idx_lecture_completions" json:"enrollment_id"`
	LectureID    uint      `gorm:"not null;uniqueIndex:idx_lecture_completions" json:"lecture_id"`
	CompletedAt  time.Time `gorm:"autoCreateTime" json:"completed_at"`
}
