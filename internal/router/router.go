package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/collegecoursera/api/internal/config"
	"github.com/collegecoursera/api/internal/handler"
	"github.com/collegecoursera/api/internal/middleware"
	"github.com/collegecoursera/api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	CourseHandler     *handler.CourseHandler
	ContentHandler    *handler.ContentHandler
	AssignmentHandler *handler.AssignmentHandler
	ReviewHandler     *handler.ReviewHandler
	CommentHandler    *handler.CommentHandler
	EnrollmentHandler *handler.EnrollmentHandler
	UserHandler       *handler.UserHandler
	AdminHandler      *handler.AdminHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", observability.MetricsHandler())

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	api := app.Group("/api",
		middleware.RateLimit("api", cfg.RateLimitMax, cfg.RateLimitWindow),
		func(c *fiber.Ctx) error {
			c.Set("X-Application", cfg.AppName)
			return c.Next()
		})

	if deps.AuthHandler != nil {
		auth := api.Group("/auth")
		deps.AuthHandler.RegisterPublic(auth)
		deps.AuthHandler.RegisterProtected(auth, jwtMiddleware)
	}

	// The courses prefix mixes public and protected routes, so the JWT
	// middleware is attached per-route rather than on the group. A group
	// handler mounts as prefix middleware and would gate the public
	// catalogue and review/comment listings too.
	courses := api.Group("/courses")

	if deps.CourseHandler != nil {
		deps.CourseHandler.RegisterPublic(courses)
		deps.CourseHandler.RegisterProtected(courses, jwtMiddleware)
	}

	if deps.ContentHandler != nil {
		deps.ContentHandler.RegisterCourseRoutes(courses)

		modules := api.Group("/modules", jwtMiddleware)
		deps.ContentHandler.RegisterModuleRoutes(modules)

		lectures := api.Group("/lectures", jwtMiddleware)
		deps.ContentHandler.RegisterLectureRoutes(lectures)

		assignments := api.Group("/assignments", jwtMiddleware)
		deps.ContentHandler.RegisterAssignmentRoutes(assignments)

		questions := api.Group("/questions", jwtMiddleware)
		deps.ContentHandler.RegisterQuestionRoutes(questions)

		if deps.AssignmentHandler != nil {
			deps.AssignmentHandler.Register(assignments)
		}
	}

	if deps.ReviewHandler != nil {
		deps.ReviewHandler.RegisterCourseRoutes(courses, jwtMiddleware)
		deps.ReviewHandler.RegisterReviewRoutes(api.Group("/reviews", jwtMiddleware))
	}

	if deps.CommentHandler != nil {
		deps.CommentHandler.RegisterCourseRoutes(courses, jwtMiddleware)
		deps.CommentHandler.RegisterCommentRoutes(api.Group("/comments", jwtMiddleware))
	}

	if deps.EnrollmentHandler != nil {
		deps.EnrollmentHandler.RegisterCourseRoutes(courses, jwtMiddleware)
		deps.EnrollmentHandler.RegisterEnrollmentRoutes(api.Group("/enrollments", jwtMiddleware))
		deps.EnrollmentHandler.RegisterLectureRoutes(api.Group("/lectures", jwtMiddleware))
	}

	if deps.UserHandler != nil {
		users := api.Group("/users", jwtMiddleware)
		deps.UserHandler.Register(users)
		if deps.AssignmentHandler != nil {
			deps.AssignmentHandler.RegisterUserRoutes(users)
		}
	}

	if deps.AdminHandler != nil {
		admin := api.Group("/admin", jwtMiddleware, middleware.RequireAdmin())
		deps.AdminHandler.Register(admin)
	}
}
