package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/campusly/lms-platform/docs"
	"github.com/campusly/lms-platform/internal/api/handler"
	"github.com/campusly/lms-platform/internal/api/middleware"
	"github.com/campusly/lms-platform/internal/core/domain"
	"github.com/campusly/lms-platform/internal/core/ports"
)

// Deps carries the wired services the router exposes.
type Deps struct {
	Signup       ports.SignupService
	Guard        ports.CooldownGuard
	Applications ports.ApplicationReviewService
	Readiness    map[string]handler.Pinger
	JWTSecret    string
	Log          zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())

	// --- Signup workflow (public) ---
	signupHandler := handler.NewSignupHandler(deps.Signup)
	cooldownHandler := handler.NewCooldownHandler(deps.Guard)

	signup := e.Group("/v1/signup")
	signup.POST("/student", signupHandler.Student)
	signup.POST("/instructor", signupHandler.Instructor)
	signup.GET("/cooldown", cooldownHandler.Status)
	signup.DELETE("/cooldown", cooldownHandler.Clear)
	signup.GET("/cooldown/stream", cooldownHandler.Stream)

	// --- Instructor application review (admin only) ---
	applicationHandler := handler.NewApplicationHandler(deps.Applications)

	admin := e.Group("/v1/instructor-applications", middleware.Auth(deps.JWTSecret), middleware.RBAC(domain.RoleAdmin))
	admin.GET("", applicationHandler.List)
	admin.PATCH("/:id", applicationHandler.Review)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
