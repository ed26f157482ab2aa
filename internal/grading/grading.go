// Package grading scores multiple-choice assignment submissions against an
// answer key. Grading is a pure function of (questions, answers); persistence
// and duplicate-submission enforcement live in the enclosing service.
package grading

import (
	"errors"

	"github.com/collegecoursera/api/internal/models"
)

// ErrNoQuestions is returned when an assignment has no questions to grade.
// A percentage over zero questions is undefined, so grading is rejected
// rather than producing a NaN score.
var ErrNoQuestions = errors.New("cannot grade an assignment with no questions")

// AnswerInput is one submitted answer.
type AnswerInput struct {
	QuestionID     uint
	SelectedOption string
}

// MarkedAnswer is an answer with its derived correctness flag.
type MarkedAnswer struct {
	QuestionID     uint
	SelectedOption string
	IsCorrect      bool
}

// Result is the outcome of grading a submission.
type Result struct {
	Score          float64
	CorrectCount   int
	TotalQuestions int
	Marked         []MarkedAnswer
}

// Grade scores the submitted answers against the assignment's question set.
//
// Answers are matched to questions by id, not by position, so the result is
// independent of answer order. An answer referencing a question id outside
// the assignment is never rejected; it simply cannot match and is marked
// incorrect. The score is an unrounded percentage in [0, 100]; rounding is a
// presentation concern.
func Grade(questions []models.Question, answers []AnswerInput) (Result, error) {
	if len(questions) == 0 {
		return Result{}, ErrNoQuestions
	}

	byID := make(map[uint]models.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	marked := make([]MarkedAnswer, 0, len(answers))
	correct := 0
	for _, answer := range answers {
		question, ok := byID[answer.QuestionID]
		isCorrect := ok && question.CorrectOption == answer.SelectedOption
		if isCorrect {
			correct++
		}
		marked = append(marked, MarkedAnswer{
			QuestionID:     answer.QuestionID,
			SelectedOption: answer.SelectedOption,
			IsCorrect:      isCorrect,
		})
	}

	return Result{
		Score:          float64(correct) / float64(len(questions)) * 100,
		CorrectCount:   correct,
		TotalQuestions: len(questions),
		Marked:         marked,
	}, nil
}
