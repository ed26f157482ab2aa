package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/service"
	"github.com/collegecoursera/api/internal/utils"
)

// AuthHandler wires authentication HTTP routes.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("component", "auth_handler").Logger(),
	}
}

// RegisterPublic attaches the unauthenticated endpoints.
func (h *AuthHandler) RegisterPublic(router fiber.Router) {
	router.Post("/register", h.register)
	router.Post("/login", h.login)
}

// RegisterProtected attaches endpoints that require a resolved identity.
func (h *AuthHandler) RegisterProtected(router fiber.Router, auth fiber.Handler) {
	router.Get("/me", auth, h.me)
	router.Post("/logout", auth, h.logout)
}

func (h *AuthHandler) register(c *fiber.Ctx) error {
	var payload dto.RegisterRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Register(c.UserContext(), payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "account created", response)
}

func (h *AuthHandler) login(c *fiber.Ctx) error {
	var payload dto.LoginRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	response, err := h.service.Login(c.UserContext(), payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "login successful", response)
}

// logout acknowledges the client discarding its token. Tokens are
// stateless, so there is nothing to invalidate server-side.
func (h *AuthHandler) logout(c *fiber.Ctx) error {
	return utils.SendSuccess(c, "logout successful", nil)
}

func (h *AuthHandler) me(c *fiber.Ctx) error {
	identity := identityFromContext(c)

	response, err := h.service.CurrentUser(c.UserContext(), identity.UserID)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "user retrieved", response)
}
