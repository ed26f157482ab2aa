package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/observability"
	"github.com/collegecoursera/api/internal/service"
	"github.com/collegecoursera/api/internal/utils"
)

// AssignmentHandler wires the student-facing assignment routes: submit,
// read back a submission, and the post-submission results view.
type AssignmentHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewAssignmentHandler constructs the handler.
func NewAssignmentHandler(service service.AssignmentService, logger zerolog.Logger) *AssignmentHandler {
	return &AssignmentHandler{
		service: service,
		logger:  logger.With().Str("component", "assignment_handler").Logger(),
	}
}

// Register attaches the assignment submission endpoints.
func (h *AssignmentHandler) Register(router fiber.Router) {
	router.Post("/:id/submit", h.submit)
	router.Get("/:id/submission", h.getSubmission)
	router.Get("/:id/results", h.results)
}

// RegisterUserRoutes attaches the caller-scoped submission listing.
func (h *AssignmentHandler) RegisterUserRoutes(router fiber.Router) {
	router.Get("/submissions", h.listMine)
}

func (h *AssignmentHandler) submit(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.SubmitAssignmentRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Submit(c.UserContext(), identityFromContext(c), assignmentID, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	observability.SubmissionsGraded().Inc()

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "assignment submitted", response)
}

func (h *AssignmentHandler) getSubmission(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	submission, err := h.service.GetSubmission(c.UserContext(), identityFromContext(c), assignmentID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submission retrieved", submission)
}

func (h *AssignmentHandler) results(c *fiber.Ctx) error {
	assignmentID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	results, err := h.service.Results(c.UserContext(), identityFromContext(c), assignmentID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "results retrieved", results)
}

func (h *AssignmentHandler) listMine(c *fiber.Ctx) error {
	submissions, err := h.service.ListMine(c.UserContext(), identityFromContext(c))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "submissions retrieved", submissions)
}
