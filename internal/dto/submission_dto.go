package dto

import (
	"time"

	"github.com/collegecoursera/api/internal/models"
)

// SubmitAnswer is one answer within an assignment submission.
type SubmitAnswer struct {
	QuestionID     uint   `json:"questionId" validate:"required,gt=0"`
	SelectedOption string `json:"selectedOption" validate:"required,oneof=A B C D"`
}

// SubmitAssignmentRequest is the payload for grading an assignment attempt.
type SubmitAssignmentRequest struct {
	Answers []SubmitAnswer `json:"answers" validate:"required,dive"`
}

// SubmitAssignmentResponse reports the graded outcome of a submission.
type SubmitAssignmentResponse struct {
	Submission     SubmissionResponse `json:"submission"`
	Score          float64            `json:"score"`
	CorrectAnswers int                `json:"correctAnswers"`
	TotalQuestions int                `json:"totalQuestions"`
}

// SubmissionResponse serializes a persisted submission.
type SubmissionResponse struct {
	ID           uint             `json:"id"`
	StudentID    uint             `json:"student_id"`
	AssignmentID uint             `json:"assignment_id"`
	Score        float64          `json:"score"`
	SubmittedAt  time.Time        `json:"submitted_at"`
	Answers      []AnswerResponse `json:"answers,omitempty"`
}

// AnswerResponse serializes one recorded answer.
type AnswerResponse struct {
	ID             uint   `json:"id"`
	QuestionID     uint   `json:"question_id"`
	SelectedOption string `json:"selected_option"`
	IsCorrect      bool   `json:"is_correct"`
}

// NewSubmissionResponse converts a Submission model into a DTO.
func NewSubmissionResponse(submission models.Submission) SubmissionResponse {
	answers := make([]AnswerResponse, 0, len(submission.Answers))
	for _, answer := range submission.Answers {
		answers = append(answers, AnswerResponse{
			ID:             answer.ID,
			QuestionID:     answer.QuestionID,
			SelectedOption: answer.SelectedOption,
			IsCorrect:      answer.IsCorrect,
		})
	}

	return SubmissionResponse{
		ID:           submission.ID,
		StudentID:    submission.StudentID,
		AssignmentID: submission.AssignmentID,
		Score:        submission.Score,
		SubmittedAt:  submission.SubmittedAt,
		Answers:      answers,
	}
}

// AssignmentResultsResponse pairs an assignment's questions, answer key
// included, with the caller's graded submission.
type AssignmentResultsResponse struct {
	Assignment AssignmentResponse  `json:"assignment"`
	AnswerKey  map[uint]string     `json:"answer_key"`
	Submission *SubmissionResponse `json:"submission"`
}
