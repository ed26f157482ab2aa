package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegecoursera/api/internal/service"
	"github.com/collegecoursera/api/internal/utils"
)

// EnrollmentHandler wires enrollment and lecture progress routes.
type EnrollmentHandler struct {
	service service.EnrollmentService
	logger  zerolog.Logger
}

// NewEnrollmentHandler constructs the handler.
func NewEnrollmentHandler(service service.EnrollmentService, logger zerolog.Logger) *EnrollmentHandler {
	return &EnrollmentHandler{
		service: service,
		logger:  logger.With().Str("component", "enrollment_handler").Logger(),
	}
}

// RegisterCourseRoutes attaches the endpoints nested under courses.
func (h *EnrollmentHandler) RegisterCourseRoutes(router fiber.Router, auth fiber.Handler) {
	router.Post("/:id/enroll", auth, h.enroll)
	router.Delete("/:id/enroll", auth, h.unenroll)
	router.Get("/:id/progress", auth, h.progress)
}

// RegisterEnrollmentRoutes attaches the caller-scoped listing.
func (h *EnrollmentHandler) RegisterEnrollmentRoutes(router fiber.Router) {
	router.Get("", h.listMine)
}

// RegisterLectureRoutes attaches the lecture completion endpoint.
func (h *EnrollmentHandler) RegisterLectureRoutes(router fiber.Router) {
	router.Post("/:id/complete", h.completeLecture)
}

func (h *EnrollmentHandler) enroll(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	enrollment, err := h.service.Enroll(c.UserContext(), identityFromContext(c), courseID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "enrolled", enrollment)
}

func (h *EnrollmentHandler) unenroll(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Unenroll(c.UserContext(), identityFromContext(c), courseID); err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "unenrolled", nil)
}

func (h *EnrollmentHandler) listMine(c *fiber.Ctx) error {
	enrollments, err := h.service.ListMine(c.UserContext(), identityFromContext(c))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "enrollments retrieved", enrollments)
}

func (h *EnrollmentHandler) progress(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	progress, err := h.service.Progress(c.UserContext(), identityFromContext(c), courseID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "progress retrieved", progress)
}

func (h *EnrollmentHandler) completeLecture(c *fiber.Ctx) error {
	lectureID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	progress, err := h.service.CompleteLecture(c.UserContext(), identityFromContext(c), lectureID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "lecture completed", progress)
}
