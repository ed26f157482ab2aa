package dto

import "github.com/collegecoursera/api/internal/models"

// ModuleCreateRequest adds a module to a course the caller owns.
type ModuleCreateRequest struct {
	CourseID   uint   `json:"course_id" validate:"required,gt=0"`
	Title      string `json:"title" validate:"required,min=2,max=255"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
}

// ModuleUpdateRequest edits a module's title or position.
type ModuleUpdateRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=2,max=255"`
	OrderIndex *int    `json:"order_index" validate:"omitempty,gte=0"`
}

// LectureCreateRequest adds a lecture to a module.
type LectureCreateRequest struct {
	Title      string `json:"title" validate:"required,min=2,max=255"`
	ContentURL string `json:"content_url" validate:"omitempty,url"`
	OrderIndex int    `json:"order_index" validate:"gte=0"`
}

// LectureUpdateRequest edits a lecture.
type LectureUpdateRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=2,max=255"`
	ContentURL *string `json:"content_url" validate:"omitempty,url"`
	OrderIndex *int    `json:"order_index" validate:"omitempty,gte=0"`
}

// AssignmentCreateRequest adds an assignment to a module.
type AssignmentCreateRequest struct {
	Title       string `json:"title" validate:"required,min=2,max=255"`
	Description string `json:"description"`
	OrderIndex  int    `json:"order_index" validate:"gte=0"`
}

// AssignmentUpdateRequest edits an assignment.
type AssignmentUpdateRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=2,max=255"`
	Description *string `json:"description"`
	OrderIndex  *int    `json:"order_index" validate:"omitempty,gte=0"`
}

// QuestionCreateRequest adds a multiple-choice question to an assignment.
type QuestionCreateRequest struct {
	QuestionText  string `json:"question_text" validate:"required,min=3"`
	OptionA       string `json:"option_a" validate:"required"`
	OptionB       string `json:"option_b" validate:"required"`
	OptionC       string `json:"option_c" validate:"required"`
	OptionD       string `json:"option_d" validate:"required"`
	CorrectOption string `json:"correct_option" validate:"required,oneof=A B C D"`
	OrderIndex    int    `json:"order_index" validate:"gte=0"`
}

// QuestionUpdateRequest edits a question.
type QuestionUpdateRequest struct {
	QuestionText  *string `json:"question_text" validate:"omitempty,min=3"`
	OptionA       *string `json:"option_a" validate:"omitempty"`
	OptionB       *string `json:"option_b" validate:"omitempty"`
	OptionC       *string `json:"option_c" validate:"omitempty"`
	OptionD       *string `json:"option_d" validate:"omitempty"`
	CorrectOption *string `json:"correct_option" validate:"omitempty,oneof=A B C D"`
	OrderIndex    *int    `json:"order_index" validate:"omitempty,gte=0"`
}

// ModuleResponse is the module tree projection returned with courses.
type ModuleResponse struct {
	ID          uint                 `json:"id"`
	CourseID    uint                 `json:"course_id"`
	Title       string               `json:"title"`
	OrderIndex  int                  `json:"order_index"`
	Lectures    []LectureResponse    `json:"lectures"`
	Assignments []AssignmentResponse `json:"assignments"`
}

// LectureResponse serializes a lecture.
type LectureResponse struct {
	ID         uint   `json:"id"`
	ModuleID   uint   `json:"module_id"`
	Title      string `json:"title"`
	ContentURL string `json:"content_url"`
	OrderIndex int    `json:"order_index"`
}

// AssignmentResponse serializes an assignment with its questions. The
// correct option is omitted so the answer key never reaches students.
type AssignmentResponse struct {
	ID          uint               `json:"id"`
	ModuleID    uint               `json:"module_id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	OrderIndex  int                `json:"order_index"`
	Questions   []QuestionResponse `json:"questions"`
}

// QuestionResponse serializes a question without the answer key.
type QuestionResponse struct {
	ID           uint   `json:"id"`
	AssignmentID uint   `json:"assignment_id"`
	QuestionText string `json:"question_text"`
	OptionA      string `json:"option_a"`
	OptionB      string `json:"option_b"`
	OptionC      string `json:"option_c"`
	OptionD      string `json:"option_d"`
	OrderIndex   int    `json:"order_index"`
}

// NewModuleResponse converts a Module model with its nested content.
func NewModuleResponse(module models.Module) ModuleResponse {
	lectures := make([]LectureResponse, 0, len(module.Lectures))
	for _, lecture := range module.Lectures {
		lectures = append(lectures, NewLectureResponse(lecture))
	}

	assignments := make([]AssignmentResponse, 0, len(module.Assignments))
	for _, assignment := range module.Assignments {
		assignments = append(assignments, NewAssignmentResponse(assignment))
	}

	return ModuleResponse{
		ID:          module.ID,
		CourseID:    module.CourseID,
		Title:       module.Title,
		OrderIndex:  module.OrderIndex,
		Lectures:    lectures,
		Assignments: assignments,
	}
}

// NewModuleResponseSlice converts module models into DTOs.
func NewModuleResponseSlice(modules []models.Module) []ModuleResponse {
	responses := make([]ModuleResponse, 0, len(modules))
	for _, module := range modules {
		responses = append(responses, NewModuleResponse(module))
	}
	return responses
}

// NewLectureResponse converts a Lecture model.
func NewLectureResponse(lecture models.Lecture) LectureResponse {
	return LectureResponse{
		ID:         lecture.ID,
		ModuleID:   lecture.ModuleID,
		Title:      lecture.Title,
		ContentURL: lecture.ContentURL,
		OrderIndex: lecture.OrderIndex,
	}
}

// NewAssignmentResponse converts an Assignment model, hiding answer keys.
func NewAssignmentResponse(assignment models.Assignment) AssignmentResponse {
	questions := make([]QuestionResponse, 0, len(assignment.Questions))
	for _, question := range assignment.Questions {
		questions = append(questions, NewQuestionResponse(question))
	}

	return AssignmentResponse{
		ID:          assignment.ID,
		ModuleID:    assignment.ModuleID,
		Title:       assignment.Title,
		Description: assignment.Description,
		OrderIndex:  assignment.OrderIndex,
		Questions:   questions,
	}
}

// NewQuestionResponse converts a Question model, hiding the answer key.
func NewQuestionResponse(question models.Question) QuestionResponse {
	return QuestionResponse{
		ID:           question.ID,
		AssignmentID: question.AssignmentID,
		QuestionText: question.QuestionText,
		OptionA:      question.OptionA,
		OptionB:      question.OptionB,
		OptionC:      question.OptionC,
		OptionD:      question.OptionD,
		OrderIndex:   question.OrderIndex,
	}
}
