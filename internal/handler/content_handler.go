package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/service"
	"github.com/collegecoursera/api/internal/utils"
)

// ContentHandler wires the course content authoring routes: modules,
// lectures, assignments and questions.
type ContentHandler struct {
	service service.ContentService
	logger  zerolog.Logger
}

// NewContentHandler constructs the handler.
func NewContentHandler(service service.ContentService, logger zerolog.Logger) *ContentHandler {
	return &ContentHandler{
		service: service,
		logger:  logger.With().Str("component", "content_handler").Logger(),
	}
}

// RegisterCourseRoutes attaches the module listing nested under courses.
func (h *ContentHandler) RegisterCourseRoutes(router fiber.Router) {
	router.Get("/:id/modules", h.listModules)
}

// RegisterModuleRoutes attaches the module authoring endpoints.
func (h *ContentHandler) RegisterModuleRoutes(router fiber.Router) {
	router.Post("", h.createModule)
	router.Put("/:id", h.updateModule)
	router.Delete("/:id", h.deleteModule)
	router.Post("/:id/lectures", h.createLecture)
	router.Post("/:id/assignments", h.createAssignment)
}

// RegisterLectureRoutes attaches the lecture authoring endpoints.
func (h *ContentHandler) RegisterLectureRoutes(router fiber.Router) {
	router.Put("/:id", h.updateLecture)
	router.Delete("/:id", h.deleteLecture)
}

// RegisterAssignmentRoutes attaches the assignment authoring endpoints.
func (h *ContentHandler) RegisterAssignmentRoutes(router fiber.Router) {
	router.Get("/:id", h.getAssignment)
	router.Put("/:id", h.updateAssignment)
	router.Delete("/:id", h.deleteAssignment)
	router.Post("/:id/questions", h.createQuestion)
}

// RegisterQuestionRoutes attaches the question authoring endpoints.
func (h *ContentHandler) RegisterQuestionRoutes(router fiber.Router) {
	router.Put("/:id", h.updateQuestion)
	router.Delete("/:id", h.deleteQuestion)
}

func (h *ContentHandler) listModules(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	modules, err := h.service.ListModules(c.UserContext(), courseID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "modules retrieved", modules)
}

func (h *ContentHandler) createModule(c *fiber.Ctx) error {
	var payload dto.ModuleCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	module, err := h.service.CreateModule(c.UserContext(), identityFromContext(c), payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "module created", module)
}

func (h *ContentHandler) updateModule(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ModuleUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	module, err := h.service.UpdateModule(c.UserContext(), identityFromContext(c), id, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "module updated", module)
}

func (h *ContentHandler) deleteModule(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteModule(c.UserContext(), identityFromContext(c), id); err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "module deleted", nil)
}

func (h *ContentHandler) createLecture(c *fiber.Ctx) error {
	moduleID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.LectureCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	lecture, err := h.service.CreateLecture(c.UserContext(), identityFromContext(c), moduleID, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "lecture created", lecture)
}

func (h *ContentHandler) updateLecture(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.LectureUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	lecture, err := h.service.UpdateLecture(c.UserContext(), identityFromContext(c), id, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "lecture updated", lecture)
}

func (h *ContentHandler) deleteLecture(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteLecture(c.UserContext(), identityFromContext(c), id); err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "lecture deleted", nil)
}

func (h *ContentHandler) getAssignment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	assignment, err := h.service.GetAssignment(c.UserContext(), identityFromContext(c), id)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment retrieved", assignment)
}

func (h *ContentHandler) createAssignment(c *fiber.Ctx) error {
	moduleID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AssignmentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.CreateAssignment(c.UserContext(), identityFromContext(c), moduleID, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment created", assignment)
}

func (h *ContentHandler) updateAssignment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AssignmentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	assignment, err := h.service.UpdateAssignment(c.UserContext(), identityFromContext(c), id, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment updated", assignment)
}

func (h *ContentHandler) deleteAssignment(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteAssignment(c.UserContext(), identityFromContext(c), id); err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "assignment deleted", nil)
}

func (h *ContentHandler) createQuestion(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.QuestionCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	question, err := h.service.CreateQuestion(c.UserContext(), identityFromContext(c), assignmentID, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "question created", question)
}

func (h *ContentHandler) updateQuestion(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.QuestionUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	question, err := h.service.UpdateQuestion(c.UserContext(), identityFromContext(c), id, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "question updated", question)
}

func (h *ContentHandler) deleteQuestion(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteQuestion(c.UserContext(), identityFromContext(c), id); err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "question deleted", nil)
}
