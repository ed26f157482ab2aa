package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/service"
	"github.com/collegecoursera/api/internal/utils"
)

// AdminHandler wires the moderation and statistics routes.
type AdminHandler struct {
	service service.AdminService
	logger  zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(service service.AdminService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		service: service,
		logger:  logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches the admin endpoints.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Get("/users", h.listUsers)
	router.Get("/users/:id", h.getUser)
	router.Put("/users/:id/role", h.updateUserRole)
	router.Delete("/users/:id", h.deleteUser)

	router.Delete("/courses/:id", h.deleteCourse)

	router.Get("/stats", h.platformStats)
	router.Get("/stats/courses", h.courseStats)
	router.Get("/stats/users", h.userStats)
	router.Get("/stats/enrollments", h.enrollmentStats)

	router.Put("/enrollments/:id/grade", h.updateFinalGrade)
}

func (h *AdminHandler) listUsers(c *fiber.Ctx) error {
	filter := dto.AdminUserFilter{
		Page:   parseQueryInt(c, "page"),
		Limit:  parseQueryInt(c, "limit"),
		Search: c.Query("search"),
		Role:   c.Query("role"),
	}

	users, pagination, err := h.service.ListUsers(c.UserContext(), identityFromContext(c), filter)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendPaginated(c, users, pagination)
}

func (h *AdminHandler) getUser(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	user, err := h.service.GetUser(c.UserContext(), identityFromContext(c), id)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "user retrieved", user)
}

func (h *AdminHandler) updateUserRole(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AdminUpdateRoleRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	user, err := h.service.UpdateUserRole(c.UserContext(), identityFromContext(c), id, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "user role updated", user)
}

func (h *AdminHandler) deleteUser(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteUser(c.UserContext(), identityFromContext(c), id); err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "user deleted", nil)
}

func (h *AdminHandler) deleteCourse(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.DeleteCourse(c.UserContext(), identityFromContext(c), id); err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course deleted", nil)
}

func (h *AdminHandler) platformStats(c *fiber.Ctx) error {
	stats, err := h.service.PlatformStats(c.UserContext(), identityFromContext(c))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "stats retrieved", stats)
}

func (h *AdminHandler) courseStats(c *fiber.Ctx) error {
	stats, err := h.service.CourseStats(c.UserContext(), identityFromContext(c))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course stats retrieved", stats)
}

func (h *AdminHandler) userStats(c *fiber.Ctx) error {
	stats, err := h.service.UserStats(c.UserContext(), identityFromContext(c))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "user stats retrieved", stats)
}

func (h *AdminHandler) enrollmentStats(c *fiber.Ctx) error {
	stats, err := h.service.EnrollmentStats(c.UserContext(), identityFromContext(c))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "enrollment stats retrieved", stats)
}

func (h *AdminHandler) updateFinalGrade(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.AdminUpdateFinalGradeRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	enrollment, err := h.service.UpdateFinalGrade(c.UserContext(), identityFromContext(c), id, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "final grade updated", enrollment)
}
