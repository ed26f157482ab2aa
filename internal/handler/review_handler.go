package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/service"
	"github.com/collegecoursera/api/internal/utils"
)

// ReviewHandler wires the course review routes.
type ReviewHandler struct {
	service service.ReviewService
	logger  zerolog.Logger
}

// NewReviewHandler constructs the handler.
func NewReviewHandler(service service.ReviewService, logger zerolog.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  logger.With().Str("component", "review_handler").Logger(),
	}
}

// RegisterCourseRoutes attaches the endpoints nested under courses.
func (h *ReviewHandler) RegisterCourseRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/:id/reviews", h.listByCourse)
	router.Post("/:id/reviews", auth, h.create)
}

// RegisterReviewRoutes attaches the review-scoped endpoints.
func (h *ReviewHandler) RegisterReviewRoutes(router fiber.Router) {
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *ReviewHandler) listByCourse(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	reviews, pagination, err := h.service.ListByCourse(c.UserContext(), courseID, parseQueryInt(c, "page"), parseQueryInt(c, "limit"))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendPaginated(c, reviews, pagination)
}

func (h *ReviewHandler) create(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ReviewCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	review, err := h.service.Create(c.UserContext(), identityFromContext(c), courseID, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "review created", review)
}

func (h *ReviewHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.ReviewUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	review, err := h.service.Update(c.UserContext(), identityFromContext(c), id, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "review updated", review)
}

func (h *ReviewHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), identityFromContext(c), id); err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "review deleted", nil)
}
