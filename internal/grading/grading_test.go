package grading

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/collegecoursera/api/internal/models"
)

func makeQuestions(correct ...string) []models.Question {
	questions := make([]models.Question, 0, len(correct))
	for i, option := range correct {
		questions = append(questions, models.Question{
			ID:            uint(i + 1),
			CorrectOption: option,
		})
	}
	return questions
}

func TestGradeFullMarks(t *testing.T) {
	questions := makeQuestions("A", "B", "C", "D")
	answers := []AnswerInput{
		{QuestionID: 1, SelectedOption: "A"},
		{QuestionID: 2, SelectedOption: "B"},
		{QuestionID: 3, SelectedOption: "C"},
		{QuestionID: 4, SelectedOption: "D"},
	}

	result, err := Grade(questions, answers)
	require.NoError(t, err)
	require.Equal(t, float64(100), result.Score)
	require.Equal(t, 4, result.CorrectCount)
	require.Equal(t, 4, result.TotalQuestions)
	for _, marked := range result.Marked {
		require.True(t, marked.IsCorrect)
	}
}

func TestGradeAllWrongAndEmpty(t *testing.T) {
	questions := makeQuestions("A", "A", "A")

	wrong := []AnswerInput{
		{QuestionID: 1, SelectedOption: "B"},
		{QuestionID: 2, SelectedOption: "C"},
		{QuestionID: 3, SelectedOption: "D"},
	}
	result, err := Grade(questions, wrong)
	require.NoError(t, err)
	require.Equal(t, float64(0), result.Score)
	require.Equal(t, 0, result.CorrectCount)

	empty, err := Grade(questions, nil)
	require.NoError(t, err)
	require.Equal(t, float64(0), empty.Score)
	require.Equal(t, 3, empty.TotalQuestions)
	require.Empty(t, empty.Marked)
}

func TestGradeSingleCorrectOfN(t *testing.T) {
	questions := makeQuestions("A", "B", "C", "D")
	answers := []AnswerInput{{QuestionID: 2, SelectedOption: "B"}}

	result, err := Grade(questions, answers)
	require.NoError(t, err)
	require.Equal(t, float64(25), result.Score)
	require.Equal(t, 1, result.CorrectCount)
}

func TestGradeOrderIndependent(t *testing.T) {
	questions := makeQuestions("A", "B", "C", "D")
	answers := []AnswerInput{
		{QuestionID: 1, SelectedOption: "A"},
		{QuestionID: 2, SelectedOption: "C"},
		{QuestionID: 3, SelectedOption: "C"},
		{QuestionID: 4, SelectedOption: "A"},
	}

	baseline, err := Grade(questions, answers)
	require.NoError(t, err)

	correctness := make(map[uint]bool, len(baseline.Marked))
	for _, marked := range baseline.Marked {
		correctness[marked.QuestionID] = marked.IsCorrect
	}

	shuffled := make([]AnswerInput, len(answers))
	copy(shuffled, answers)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(shuffled), func(a, b int) {
			shuffled[a], shuffled[b] = shuffled[b], shuffled[a]
		})

		result, err := Grade(questions, shuffled)
		require.NoError(t, err)
		require.Equal(t, baseline.Score, result.Score)
		require.Equal(t, baseline.CorrectCount, result.CorrectCount)
		for _, marked := range result.Marked {
			require.Equal(t, correctness[marked.QuestionID], marked.IsCorrect)
		}
	}
}

func TestGradeUnknownQuestionNeverMatches(t *testing.T) {
	questions := makeQuestions("A", "B")
	answers := []AnswerInput{
		{QuestionID: 1, SelectedOption: "A"},
		{QuestionID: 99, SelectedOption: "A"},
	}

	result, err := Grade(questions, answers)
	require.NoError(t, err)
	require.Equal(t, float64(50), result.Score)
	require.Equal(t, 1, result.CorrectCount)
	require.False(t, result.Marked[1].IsCorrect)
}

func TestGradeNoQuestions(t *testing.T) {
	_, err := Grade(nil, []AnswerInput{{QuestionID: 1, SelectedOption: "A"}})
	require.ErrorIs(t, err, ErrNoQuestions)
}
