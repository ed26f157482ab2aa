package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/collegecoursera/api/internal/config"
	"github.com/collegecoursera/api/internal/guard"
	"github.com/collegecoursera/api/internal/handler"
	"github.com/collegecoursera/api/internal/models"
	"github.com/collegecoursera/api/internal/repository"
	"github.com/collegecoursera/api/internal/router"
	"github.com/collegecoursera/api/internal/service"
	"github.com/collegecoursera/api/internal/utils"
)

const testUserHeader = "X-Test-User"

// identityInjector stands in for the JWT middleware: it resolves the user
// named by the test header and stores the same locals the real one does.
func identityInjector(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(testUserHeader)
		if header == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, "missing or invalid authorization header")
		}

		id, err := strconv.ParseUint(header, 10, 64)
		if err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		var user models.User
		if err := db.First(&user, uint(id)).Error; err != nil {
			return utils.SendError(c, fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals("identity", guard.Identity{
			UserID:      user.ID,
			Email:       user.Email,
			IsProfessor: user.IsProfessor,
			IsAdmin:     user.IsAdmin,
		})
		c.Locals("user_id", user.ID)
		return c.Next()
	}
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.UserInterest{},
		&models.Course{},
		&models.CourseTag{},
		&models.Module{},
		&models.Lecture{},
		&models.Assignment{},
		&models.Question{},
		&models.Submission{},
		&models.Answer{},
		&models.Enrollment{},
		&models.LectureCompletion{},
		&models.Review{},
		&models.Comment{},
	))

	logger := zerolog.New(io.Discard)
	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	contentRepo := repository.NewContentRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	ratingAggregator := service.NewRatingAggregator(reviewRepo, courseRepo, logger)

	cfg := config.Config{
		AppName:         "test",
		RateLimitMax:    1000,
		RateLimitWindow: time.Minute,
	}

	app := fiber.New()
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(service.NewAuthService(userRepo, validate, "test-secret", time.Hour, logger), logger),
		CourseHandler:     handler.NewCourseHandler(service.NewCourseService(courseRepo, validate, logger), logger),
		ContentHandler:    handler.NewContentHandler(service.NewContentService(contentRepo, courseRepo, validate, logger), logger),
		AssignmentHandler: handler.NewAssignmentHandler(service.NewAssignmentService(contentRepo, submissionRepo, validate, logger), logger),
		ReviewHandler:     handler.NewReviewHandler(service.NewReviewService(reviewRepo, courseRepo, enrollmentRepo, ratingAggregator, validate, logger), logger),
		CommentHandler:    handler.NewCommentHandler(service.NewCommentService(commentRepo, courseRepo, enrollmentRepo, validate, logger), logger),
		EnrollmentHandler: handler.NewEnrollmentHandler(service.NewEnrollmentService(enrollmentRepo, courseRepo, contentRepo, logger), logger),
		UserHandler:       handler.NewUserHandler(service.NewUserService(userRepo, courseRepo, enrollmentRepo, submissionRepo, reviewRepo, nil, time.Minute, validate, logger), logger),
		AdminHandler:      handler.NewAdminHandler(service.NewAdminService(userRepo, courseRepo, enrollmentRepo, statsRepo, validate, logger), logger),
		JWTMiddleware:     identityInjector(db),
	})

	return app, db
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()

	user := models.User{Email: email, PasswordHash: "x", FullName: "Test User"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedCourse(t *testing.T, db *gorm.DB, creatorID uint) models.Course {
	t.Helper()

	course := models.Course{
		Title:            "Distributed Systems",
		Description:      "Consensus, replication and failure models.",
		DepartmentOrClub: "Computer Science",
		CreatorID:        creatorID,
	}
	require.NoError(t, db.Create(&course).Error)
	return course
}

type apiEnvelope struct {
	Success    bool              `json:"success"`
	Data       json.RawMessage   `json:"data"`
	Message    string            `json:"message"`
	Pagination *utils.Pagination `json:"pagination"`
}

func doRequest(t *testing.T, app *fiber.App, method, target string, userID uint, body any) (*http.Response, apiEnvelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userID != 0 {
		req.Header.Set(testUserHeader, fmt.Sprintf("%d", userID))
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var envelope apiEnvelope
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &envelope))

	return resp, envelope
}
