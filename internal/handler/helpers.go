package handler

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegecoursera/api/internal/grading"
	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/middleware"
	"github.com/collegecoursera/api/internal/service"
	"github.com/collegecoursera/api/internal/utils"
)

func parseUintParam(c *fiber.Ctx, key string) (uint, error) {
	value := strings.TrimSpace(c.Params(key))
	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil || parsed == 0 {
		return 0, errors.New("invalid " + key + " parameter")
	}
	return uint(parsed), nil
}

func parseQueryInt(c *fiber.Ctx, key string) int {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}

func splitAndTrim(input string) []string {
	parts := strings.Split(input, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func identityFromContext(c *fiber.Ctx) guard.Identity {
	return middleware.IdentityFromContext(c)
}

func requestLogger(base zerolog.Logger, c *fiber.Ctx) *zerolog.Logger {
	logger := base
	if c != nil {
		if correlation := middleware.GetCorrelationID(c); correlation != "" {
			logger = base.With().Str("correlation_id", correlation).Logger()
		}
	}
	return &logger
}

// handleError maps the shared error taxonomy onto HTTP responses. Anything
// unrecognised is logged and reported as an internal error without leaking
// the underlying cause.
func handleError(c *fiber.Ctx, logger zerolog.Logger, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return utils.SendError(c, fiber.StatusBadRequest, formatValidationError(validationErrors))
	}

	switch {
	case errors.Is(err, guard.ErrUnauthorized):
		return utils.SendError(c, fiber.StatusUnauthorized, "authentication required")
	case errors.Is(err, guard.ErrForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "insufficient permissions")
	case errors.Is(err, guard.ErrNotFound),
		errors.Is(err, service.ErrCourseNotFound),
		errors.Is(err, service.ErrModuleNotFound),
		errors.Is(err, service.ErrLectureNotFound),
		errors.Is(err, service.ErrAssignmentNotFound),
		errors.Is(err, service.ErrQuestionNotFound),
		errors.Is(err, service.ErrReviewNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrEnrollmentNotFound),
		errors.Is(err, service.ErrSubmissionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrAlreadySubmitted),
		errors.Is(err, service.ErrAlreadyReviewed),
		errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrNotEnrolled),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrParentCommentMismatch),
		errors.Is(err, grading.ErrNoQuestions):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	requestLogger(logger, c).Error().Err(err).Msg("request failed")
	return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
}

func formatValidationError(errs validator.ValidationErrors) string {
	fields := make([]string, 0, len(errs))
	for _, fieldError := range errs {
		fields = append(fields, fieldError.Field())
	}
	return "validation failed on: " + strings.Join(fields, ", ")
}
