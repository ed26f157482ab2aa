package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/grading"
	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/models"
	"github.com/collegecoursera/api/internal/repository"
)

// AssignmentService handles the student side of assignments: the one-shot
// graded submission, reading back a recorded attempt, and the results view
// that reveals the answer key once a submission exists.
type AssignmentService interface {
	Submit(ctx context.Context, caller guard.Identity, assignmentID uint, payload dto.SubmitAssignmentRequest) (dto.SubmitAssignmentResponse, error)
	GetSubmission(ctx context.Context, caller guard.Identity, assignmentID uint) (dto.SubmissionResponse, error)
	Results(ctx context.Context, caller guard.Identity, assignmentID uint) (dto.AssignmentResultsResponse, error)
	ListMine(ctx context.Context, caller guard.Identity) ([]dto.SubmissionResponse, error)
}

type assignmentService struct {
	content     repository.ContentRepository
	submissions repository.SubmissionRepository
	validator   *validator.Validate
	logger      zerolog.Logger
}

// NewAssignmentService constructs an AssignmentService instance.
func NewAssignmentService(content repository.ContentRepository, submissions repository.SubmissionRepository, validate *validator.Validate, logger zerolog.Logger) AssignmentService {
	return &assignmentService{
		content:     content,
		submissions: submissions,
		validator:   validate,
		logger:      logger.With().Str("component", "assignment_service").Logger(),
	}
}

func (s *assignmentService) Submit(ctx context.Context, caller guard.Identity, assignmentID uint, payload dto.SubmitAssignmentRequest) (dto.SubmitAssignmentResponse, error) {
	tracer := otel.Tracer("github.com/collegecoursera/api/internal/service/assignment")
	ctx, span := tracer.Start(ctx, "assignment.submit")
	span.SetAttributes(
		attribute.Int64("assignment.id", int64(assignmentID)),
		attribute.Int64("assignment.student_id", int64(caller.UserID)),
	)
	defer span.End()

	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return dto.SubmitAssignmentResponse{}, err
	}
	if err := s.validator.Struct(payload); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation_failed")
		return dto.SubmitAssignmentResponse{}, err
	}

	assignment, err := s.content.GetAssignmentWithQuestions(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "assignment_not_found")
			return dto.SubmitAssignmentResponse{}, ErrAssignmentNotFound
		}
		span.RecordError(err)
		return dto.SubmitAssignmentResponse{}, err
	}

	if _, err := s.submissions.GetByStudentAndAssignment(ctx, caller.UserID, assignmentID); err == nil {
		span.SetStatus(codes.Error, "already_submitted")
		return dto.SubmitAssignmentResponse{}, ErrAlreadySubmitted
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		span.RecordError(err)
		return dto.SubmitAssignmentResponse{}, err
	}

	answers := make([]grading.AnswerInput, 0, len(payload.Answers))
	for _, answer := range payload.Answers {
		answers = append(answers, grading.AnswerInput{
			QuestionID:     answer.QuestionID,
			SelectedOption: answer.SelectedOption,
		})
	}

	result, err := grading.Grade(assignment.Questions, answers)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "grading_failed")
		return dto.SubmitAssignmentResponse{}, err
	}

	recorded := make([]models.Answer, 0, len(result.Marked))
	for _, marked := range result.Marked {
		recorded = append(recorded, models.Answer{
			QuestionID:     marked.QuestionID,
			SelectedOption: marked.SelectedOption,
			IsCorrect:      marked.IsCorrect,
		})
	}

	submission := models.Submission{
		StudentID:    caller.UserID,
		AssignmentID: assignmentID,
		Score:        result.Score,
		Answers:      recorded,
	}

	if err := s.submissions.CreateWithAnswers(ctx, &submission); err != nil {
		// The pre-check and the insert race; the constraint is authoritative.
		if errors.Is(err, repository.ErrDuplicate) {
			span.SetStatus(codes.Error, "already_submitted")
			return dto.SubmitAssignmentResponse{}, ErrAlreadySubmitted
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "submission_create_failed")
		return dto.SubmitAssignmentResponse{}, err
	}

	span.SetAttributes(
		attribute.Float64("assignment.score", result.Score),
		attribute.Int("assignment.correct_count", result.CorrectCount),
	)

	s.logger.Info().
		Uint("assignment_id", assignmentID).
		Uint("student_id", caller.UserID).
		Float64("score", result.Score).
		Msg("assignment submitted")

	return dto.SubmitAssignmentResponse{
		Submission:     dto.NewSubmissionResponse(submission),
		Score:          result.Score,
		CorrectAnswers: result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
	}, nil
}

func (s *assignmentService) GetSubmission(ctx context.Context, caller guard.Identity, assignmentID uint) (dto.SubmissionResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return dto.SubmissionResponse{}, err
	}

	submission, err := s.submissions.GetByStudentAndAssignment(ctx, caller.UserID, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.SubmissionResponse{}, ErrSubmissionNotFound
		}
		return dto.SubmissionResponse{}, err
	}

	return dto.NewSubmissionResponse(submission), nil
}

func (s *assignmentService) Results(ctx context.Context, caller guard.Identity, assignmentID uint) (dto.AssignmentResultsResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return dto.AssignmentResultsResponse{}, err
	}

	assignment, err := s.content.GetAssignmentWithQuestions(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResultsResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResultsResponse{}, err
	}

	// The answer key is only revealed after the caller's own submission
	// exists; until then, grading could still be gamed.
	submission, err := s.submissions.GetByStudentAndAssignment(ctx, caller.UserID, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResultsResponse{}, ErrSubmissionNotFound
		}
		return dto.AssignmentResultsResponse{}, err
	}

	answerKey := make(map[uint]string, len(assignment.Questions))
	for _, question := range assignment.Questions {
		answerKey[question.ID] = question.CorrectOption
	}

	response := dto.NewSubmissionResponse(submission)
	return dto.AssignmentResultsResponse{
		Assignment: dto.NewAssignmentResponse(assignment),
		AnswerKey:  answerKey,
		Submission: &response,
	}, nil
}

func (s *assignmentService) ListMine(ctx context.Context, caller guard.Identity) ([]dto.SubmissionResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return nil, err
	}

	submissions, err := s.submissions.ListByStudent(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, submission := range submissions {
		responses = append(responses, dto.NewSubmissionResponse(submission))
	}
	return responses, nil
}
