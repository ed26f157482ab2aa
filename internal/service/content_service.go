package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/models"
	"github.com/collegecoursera/api/internal/repository"
)

// ContentService manages the course content tree: modules, lectures,
// assignments and questions. Every mutation requires the caller to own the
// enclosing course; ownership failures read as not-found so outsiders cannot
// probe other creators' content.
type ContentService interface {
	ListModules(ctx context.Context, courseID uint) ([]dto.ModuleResponse, error)
	CreateModule(ctx context.Context, caller guard.Identity, payload dto.ModuleCreateRequest) (dto.ModuleResponse, error)
	UpdateModule(ctx context.Context, caller guard.Identity, moduleID uint, payload dto.ModuleUpdateRequest) (dto.ModuleResponse, error)
	DeleteModule(ctx context.Context, caller guard.Identity, moduleID uint) error

	CreateLecture(ctx context.Context, caller guard.Identity, moduleID uint, payload dto.LectureCreateRequest) (dto.LectureResponse, error)
	UpdateLecture(ctx context.Context, caller guard.Identity, lectureID uint, payload dto.LectureUpdateRequest) (dto.LectureResponse, error)
	DeleteLecture(ctx context.Context, caller guard.Identity, lectureID uint) error

	GetAssignment(ctx context.Context, caller guard.Identity, assignmentID uint) (dto.AssignmentResponse, error)
	CreateAssignment(ctx context.Context, caller guard.Identity, moduleID uint, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error)
	UpdateAssignment(ctx context.Context, caller guard.Identity, assignmentID uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, caller guard.Identity, assignmentID uint) error

	CreateQuestion(ctx context.Context, caller guard.Identity, assignmentID uint, payload dto.QuestionCreateRequest) (dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, caller guard.Identity, questionID uint, payload dto.QuestionUpdateRequest) (dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, caller guard.Identity, questionID uint) error
}

type contentService struct {
	content   repository.ContentRepository
	courses   repository.CourseRepository
	validator *validator.Validate
	logger    zerolog.Logger
}

// NewContentService constructs a ContentService instance.
func NewContentService(content repository.ContentRepository, courses repository.CourseRepository, validate *validator.Validate, logger zerolog.Logger) ContentService {
	return &contentService{
		content:   content,
		courses:   courses,
		validator: validate,
		logger:    logger.With().Str("component", "content_service").Logger(),
	}
}

func (s *contentService) ListModules(ctx context.Context, courseID uint) ([]dto.ModuleResponse, error) {
	if _, err := s.courses.GetByID(ctx, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}

	modules, err := s.content.ListModules(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return dto.NewModuleResponseSlice(modules), nil
}

func (s *contentService) CreateModule(ctx context.Context, caller guard.Identity, payload dto.ModuleCreateRequest) (dto.ModuleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ModuleResponse{}, err
	}

	course, err := s.courses.GetByID(ctx, payload.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.ModuleResponse{}, ErrCourseNotFound
		}
		return dto.ModuleResponse{}, err
	}

	if err := s.authorizeOwner(caller, course.CreatorID); err != nil {
		return dto.ModuleResponse{}, err
	}

	module := models.Module{
		CourseID:   payload.CourseID,
		Title:      payload.Title,
		OrderIndex: payload.OrderIndex,
	}
	if err := s.content.CreateModule(ctx, &module); err != nil {
		return dto.ModuleResponse{}, err
	}

	return dto.NewModuleResponse(module), nil
}

func (s *contentService) UpdateModule(ctx context.Context, caller guard.Identity, moduleID uint, payload dto.ModuleUpdateRequest) (dto.ModuleResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.ModuleResponse{}, err
	}

	if err := s.authorizeModule(ctx, caller, moduleID); err != nil {
		return dto.ModuleResponse{}, err
	}

	module, err := s.content.GetModule(ctx, moduleID)
	if err != nil {
		return dto.ModuleResponse{}, err
	}

	if payload.Title != nil {
		module.Title = *payload.Title
	}
	if payload.OrderIndex != nil {
		module.OrderIndex = *payload.OrderIndex
	}

	if err := s.content.UpdateModule(ctx, &module); err != nil {
		return dto.ModuleResponse{}, err
	}
	return dto.NewModuleResponse(module), nil
}

func (s *contentService) DeleteModule(ctx context.Context, caller guard.Identity, moduleID uint) error {
	if err := s.authorizeModule(ctx, caller, moduleID); err != nil {
		return err
	}
	return s.content.DeleteModule(ctx, moduleID)
}

func (s *contentService) CreateLecture(ctx context.Context, caller guard.Identity, moduleID uint, payload dto.LectureCreateRequest) (dto.LectureResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LectureResponse{}, err
	}

	if err := s.authorizeModule(ctx, caller, moduleID); err != nil {
		return dto.LectureResponse{}, err
	}

	lecture := models.Lecture{
		ModuleID:   moduleID,
		Title:      payload.Title,
		ContentURL: payload.ContentURL,
		OrderIndex: payload.OrderIndex,
	}
	if err := s.content.CreateLecture(ctx, &lecture); err != nil {
		return dto.LectureResponse{}, err
	}

	return dto.NewLectureResponse(lecture), nil
}

func (s *contentService) UpdateLecture(ctx context.Context, caller guard.Identity, lectureID uint, payload dto.LectureUpdateRequest) (dto.LectureResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.LectureResponse{}, err
	}

	if err := s.authorizeLecture(ctx, caller, lectureID); err != nil {
		return dto.LectureResponse{}, err
	}

	lecture, err := s.content.GetLecture(ctx, lectureID)
	if err != nil {
		return dto.LectureResponse{}, err
	}

	if payload.Title != nil {
		lecture.Title = *payload.Title
	}
	if payload.ContentURL != nil {
		lecture.ContentURL = *payload.ContentURL
	}
	if payload.OrderIndex != nil {
		lecture.OrderIndex = *payload.OrderIndex
	}

	if err := s.content.UpdateLecture(ctx, &lecture); err != nil {
		return dto.LectureResponse{}, err
	}
	return dto.NewLectureResponse(lecture), nil
}

func (s *contentService) DeleteLecture(ctx context.Context, caller guard.Identity, lectureID uint) error {
	if err := s.authorizeLecture(ctx, caller, lectureID); err != nil {
		return err
	}
	return s.content.DeleteLecture(ctx, lectureID)
}

func (s *contentService) GetAssignment(ctx context.Context, caller guard.Identity, assignmentID uint) (dto.AssignmentResponse, error) {
	if err := guard.Authorize(caller, guard.Check{Relation: guard.IsAuthenticated}); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.content.GetAssignmentWithQuestions(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.AssignmentResponse{}, ErrAssignmentNotFound
		}
		return dto.AssignmentResponse{}, err
	}
	return dto.NewAssignmentResponse(assignment), nil
}

func (s *contentService) CreateAssignment(ctx context.Context, caller guard.Identity, moduleID uint, payload dto.AssignmentCreateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	if err := s.authorizeModule(ctx, caller, moduleID); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment := models.Assignment{
		ModuleID:    moduleID,
		Title:       payload.Title,
		Description: payload.Description,
		OrderIndex:  payload.OrderIndex,
	}
	if err := s.content.CreateAssignment(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}

	return dto.NewAssignmentResponse(assignment), nil
}

func (s *contentService) UpdateAssignment(ctx context.Context, caller guard.Identity, assignmentID uint, payload dto.AssignmentUpdateRequest) (dto.AssignmentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.AssignmentResponse{}, err
	}

	if err := s.authorizeAssignment(ctx, caller, assignmentID); err != nil {
		return dto.AssignmentResponse{}, err
	}

	assignment, err := s.content.GetAssignment(ctx, assignmentID)
	if err != nil {
		return dto.AssignmentResponse{}, err
	}

	if payload.Title != nil {
		assignment.Title = *payload.Title
	}
	if payload.Description != nil {
		assignment.Description = *payload.Description
	}
	if payload.OrderIndex != nil {
		assignment.OrderIndex = *payload.OrderIndex
	}

	if err := s.content.UpdateAssignment(ctx, &assignment); err != nil {
		return dto.AssignmentResponse{}, err
	}
	return dto.NewAssignmentResponse(assignment), nil
}

func (s *contentService) DeleteAssignment(ctx context.Context, caller guard.Identity, assignmentID uint) error {
	if err := s.authorizeAssignment(ctx, caller, assignmentID); err != nil {
		return err
	}
	return s.content.DeleteAssignment(ctx, assignmentID)
}

func (s *contentService) CreateQuestion(ctx context.Context, caller guard.Identity, assignmentID uint, payload dto.QuestionCreateRequest) (dto.QuestionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuestionResponse{}, err
	}

	if err := s.authorizeAssignment(ctx, caller, assignmentID); err != nil {
		return dto.QuestionResponse{}, err
	}

	question := models.Question{
		AssignmentID:  assignmentID,
		QuestionText:  payload.QuestionText,
		OptionA:       payload.OptionA,
		OptionB:       payload.OptionB,
		OptionC:       payload.OptionC,
		OptionD:       payload.OptionD,
		CorrectOption: payload.CorrectOption,
		OrderIndex:    payload.OrderIndex,
	}
	if err := s.content.CreateQuestion(ctx, &question); err != nil {
		return dto.QuestionResponse{}, err
	}

	return dto.NewQuestionResponse(question), nil
}

func (s *contentService) UpdateQuestion(ctx context.Context, caller guard.Identity, questionID uint, payload dto.QuestionUpdateRequest) (dto.QuestionResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.QuestionResponse{}, err
	}

	if err := s.authorizeQuestion(ctx, caller, questionID); err != nil {
		return dto.QuestionResponse{}, err
	}

	question, err := s.content.GetQuestion(ctx, questionID)
	if err != nil {
		return dto.QuestionResponse{}, err
	}

	if payload.QuestionText != nil {
		question.QuestionText = *payload.QuestionText
	}
	if payload.OptionA != nil {
		question.OptionA = *payload.OptionA
	}
	if payload.OptionB != nil {
		question.OptionB = *payload.OptionB
	}
	if payload.OptionC != nil {
		question.OptionC = *payload.OptionC
	}
	if payload.OptionD != nil {
		question.OptionD = *payload.OptionD
	}
	if payload.CorrectOption != nil {
		question.CorrectOption = *payload.CorrectOption
	}
	if payload.OrderIndex != nil {
		question.OrderIndex = *payload.OrderIndex
	}

	if err := s.content.UpdateQuestion(ctx, &question); err != nil {
		return dto.QuestionResponse{}, err
	}
	return dto.NewQuestionResponse(question), nil
}

func (s *contentService) DeleteQuestion(ctx context.Context, caller guard.Identity, questionID uint) error {
	if err := s.authorizeQuestion(ctx, caller, questionID); err != nil {
		return err
	}
	return s.content.DeleteQuestion(ctx, questionID)
}

func (s *contentService) authorizeOwner(caller guard.Identity, creatorID uint) error {
	return guard.Authorize(caller, guard.Check{
		Relation:       guard.IsResourceOwner,
		OwnerID:        creatorID,
		DenyAsNotFound: true,
	})
}

func (s *contentService) authorizeModule(ctx context.Context, caller guard.Identity, moduleID uint) error {
	_, creatorID, err := s.content.ModuleCourseOwner(ctx, moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrModuleNotFound
		}
		return err
	}
	return s.authorizeOwner(caller, creatorID)
}

func (s *contentService) authorizeLecture(ctx context.Context, caller guard.Identity, lectureID uint) error {
	_, creatorID, err := s.content.LectureCourseOwner(ctx, lectureID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLectureNotFound
		}
		return err
	}
	return s.authorizeOwner(caller, creatorID)
}

func (s *contentService) authorizeAssignment(ctx context.Context, caller guard.Identity, assignmentID uint) error {
	_, creatorID, err := s.content.AssignmentCourseOwner(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrAssignmentNotFound
		}
		return err
	}
	return s.authorizeOwner(caller, creatorID)
}

func (s *contentService) authorizeQuestion(ctx context.Context, caller guard.Identity, questionID uint) error {
	_, creatorID, err := s.content.QuestionCourseOwner(ctx, questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrQuestionNotFound
		}
		return err
	}
	return s.authorizeOwner(caller, creatorID)
}
