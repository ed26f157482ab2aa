package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/collegecoursera/api/internal/config"
	"github.com/collegecoursera/api/internal/database"
	"github.com/collegecoursera/api/internal/handler"
	"github.com/collegecoursera/api/internal/middleware"
	"github.com/collegecoursera/api/internal/repository"
	"github.com/collegecoursera/api/internal/router"
	"github.com/collegecoursera/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

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

	authService := service.NewAuthService(userRepo, validate, cfg.JWTSecret, cfg.TokenTTL, logger)
	courseService := service.NewCourseService(courseRepo, validate, logger)
	contentService := service.NewContentService(contentRepo, courseRepo, validate, logger)
	assignmentService := service.NewAssignmentService(contentRepo, submissionRepo, validate, logger)
	enrollmentService := service.NewEnrollmentService(enrollmentRepo, courseRepo, contentRepo, logger)
	reviewService := service.NewReviewService(reviewRepo, courseRepo, enrollmentRepo, ratingAggregator, validate, logger)
	commentService := service.NewCommentService(commentRepo, courseRepo, enrollmentRepo, validate, logger)
	userService := service.NewUserService(userRepo, courseRepo, enrollmentRepo, submissionRepo, reviewRepo, redisClient, cfg.DashboardCacheTTL, validate, logger)
	adminService := service.NewAdminService(userRepo, courseRepo, enrollmentRepo, statsRepo, validate, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:       handler.NewAuthHandler(authService, logger),
		CourseHandler:     handler.NewCourseHandler(courseService, logger),
		ContentHandler:    handler.NewContentHandler(contentService, logger),
		AssignmentHandler: handler.NewAssignmentHandler(assignmentService, logger),
		ReviewHandler:     handler.NewReviewHandler(reviewService, logger),
		CommentHandler:    handler.NewCommentHandler(commentService, logger),
		EnrollmentHandler: handler.NewEnrollmentHandler(enrollmentService, logger),
		UserHandler:       handler.NewUserHandler(userService, logger),
		AdminHandler:      handler.NewAdminHandler(adminService, logger),
		JWTMiddleware:     middleware.JWTProtected(cfg.JWTSecret, userRepo),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
