package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/service"
	"github.com/collegecoursera/api/internal/utils"
)

// CommentHandler wires the threaded course discussion routes.
type CommentHandler struct {
	service service.CommentService
	logger  zerolog.Logger
}

// NewCommentHandler constructs the handler.
func NewCommentHandler(service service.CommentService, logger zerolog.Logger) *CommentHandler {
	return &CommentHandler{
		service: service,
		logger:  logger.With().Str("component", "comment_handler").Logger(),
	}
}

// RegisterCourseRoutes attaches the endpoints nested under courses.
func (h *CommentHandler) RegisterCourseRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/:id/comments", h.listByCourse)
	router.Post("/:id/comments", auth, h.create)
}

// RegisterCommentRoutes attaches the comment-scoped endpoints.
func (h *CommentHandler) RegisterCommentRoutes(router fiber.Router) {
	router.Put("/:id", h.update)
	router.Delete("/:id", h.delete)
}

func (h *CommentHandler) listByCourse(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	comments, pagination, err := h.service.ListByCourse(c.UserContext(), courseID, parseQueryInt(c, "page"), parseQueryInt(c, "limit"))
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendPaginated(c, comments, pagination)
}

func (h *CommentHandler) create(c *fiber.Ctx) error {
	courseID, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CommentCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	comment, err := h.service.Create(c.UserContext(), identityFromContext(c), courseID, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "comment created", comment)
}

func (h *CommentHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CommentUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	comment, err := h.service.Update(c.UserContext(), identityFromContext(c), id, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "comment updated", comment)
}

func (h *CommentHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), identityFromContext(c), id); err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "comment deleted", nil)
}
