package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegecoursera/api/internal/dto"
	"github.com/collegecoursera/api/internal/service"
	"github.com/collegecoursera/api/internal/utils"
)

// CourseHandler wires the course catalogue HTTP routes.
type CourseHandler struct {
	service service.CourseService
	logger  zerolog.Logger
}

// NewCourseHandler constructs the handler.
func NewCourseHandler(service service.CourseService, logger zerolog.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		logger:  logger.With().Str("component", "course_handler").Logger(),
	}
}

// RegisterPublic attaches the read-only catalogue endpoints.
func (h *CourseHandler) RegisterPublic(router fiber.Router) {
	router.Get("", h.list)
	router.Get("/search", h.search)
	router.Get("/:id", h.get)
}

// RegisterProtected attaches the endpoints requiring a resolved identity.
func (h *CourseHandler) RegisterProtected(router fiber.Router, auth fiber.Handler) {
	router.Post("", auth, h.create)
	router.Put("/:id", auth, h.update)
	router.Delete("/:id", auth, h.delete)
}

func (h *CourseHandler) list(c *fiber.Ctx) error {
	filter := dto.CourseListFilter{
		Page:       parseQueryInt(c, "page"),
		Limit:      parseQueryInt(c, "limit"),
		Search:     c.Query("search"),
		Department: c.Query("department"),
		SortBy:     c.Query("sortBy"),
		SortOrder:  c.Query("sortOrder"),
	}
	if tags := c.Query("tags"); tags != "" {
		filter.Tags = splitAndTrim(tags)
	}

	courses, pagination, err := h.service.List(c.UserContext(), filter)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendPaginated(c, courses, pagination)
}

func (h *CourseHandler) search(c *fiber.Ctx) error {
	filter := dto.CourseSearchFilter{
		Query:      c.Query("q"),
		Department: c.Query("department"),
	}
	if tags := c.Query("tags"); tags != "" {
		filter.Tags = splitAndTrim(tags)
	}
	if raw := strings.TrimSpace(c.Query("minRating")); raw != "" {
		if minRating, err := strconv.ParseFloat(raw, 64); err == nil {
			filter.MinRating = &minRating
		}
	}
	if raw := strings.TrimSpace(c.Query("isProfessorCourse")); raw != "" {
		if isProfessor, err := strconv.ParseBool(raw); err == nil {
			filter.IsProfessorCourse = &isProfessor
		}
	}

	courses, err := h.service.Search(c.UserContext(), filter)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "courses retrieved", courses)
}

func (h *CourseHandler) get(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	course, err := h.service.Get(c.UserContext(), id)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course retrieved", course)
}

func (h *CourseHandler) create(c *fiber.Ctx) error {
	var payload dto.CourseCreateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.service.Create(c.UserContext(), identityFromContext(c), payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "course created", course)
}

func (h *CourseHandler) update(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.CourseUpdateRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	course, err := h.service.Update(c.UserContext(), identityFromContext(c), id, payload)
	if err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course updated", course)
}

func (h *CourseHandler) delete(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := h.service.Delete(c.UserContext(), identityFromContext(c), id); err != nil {
		return handleError(c, h.logger, err)
	}

	return utils.SendSuccess(c, "course deleted", nil)
}
