package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/service"
	"github.com/collegecoursera/api/internal/utils"
)

// UserHandler wires the caller-scoped profile and dashboard routes.
type UserHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewUserHandler constructs the handler.
func NewUserHandler(service service.UserService, logger zerolog.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		logger:  logger.With().Str("component", "user_handler").Logger(),
	}
}

// Register attaches the user endpoints.
func (h *UserHandler) Register(router fiber.Router) {
	router.Get("/profile", h.profile)
	router.Put("/profile", h.updateProfile)
	router.Get("/dashboard", h.dashboard)
}

func (h *UserHandler) profile(c *fiber.Ctx) error {
	profile, err := h.service.Profile(c.UserContext(), identityFromContext(c))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *UserHandler) updateProfile(c *fiber.Ctx) error {
	var payload dto.ProfileUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	profile, err := h.service.UpdateProfile(c.UserContext(), identityFromContext(c), payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "profile updated", profile)
}

func (h *UserHandler) dashboard(c *fiber.Ctx) error {
	dashboard, err := h.service.Dashboard(c.UserContext(), identityFromContext(c))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	if dashboard.CacheHit {
		c.Set("X-Cache", "HIT")
	}

	return utils.SendSuccess(c, "dashboard retrieved", dashboard)
}
