package models

import "time"

// Submission is a student's one-time graded attempt at an assignment.
//
// The (student, assignment) pair is unique: a student may submit an
// assignment at most once. Score and answers are immutable after creation;
// no exposed operation updates or deletes them.
type Submission struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	StudentID    uint      `gorm:"not null;uniqueIndex:idx_submissions_student_assignment" json:"student_id"`
	AssignmentID uint      `gorm:"not null;uniqueIndex:idx_submissions_student_assignment" json:"assignment_id"`
	Score        float64   `gorm:"not null" json:"score"`
	SubmittedAt  time.Time `gorm:"autoCreateTime" json:"submitted_at"`
	Answers      []Answer  `gorm:"constraint:OnDelete:CASCADE" json:"answers,omitempty"`
}

// Answer records one question's response within a submission.
type Answer struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	SubmissionID   uint   `gorm:"not null;index" json:"submission_id"`
	QuestionID     uint   `gorm:"not null" json:"question_id"`
	SelectedOption string `gorm:"size:1;not null" json:"selected_option"`
	IsCorrect      bool   `gorm:"not null" json:"is_correct"`
}
