package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/unmatched/taskboard/internal/api/handler"
	"github.com/unmatched/taskboard/internal/api/middleware"
	"github.com/unmatched/taskboard/internal/core/domain"
	"github.com/unmatched/taskboard/internal/core/ports"
)

// Deps carries the injected dependencies the router wires into handlers.
// The entry point owns construction and teardown of every handle here.
type Deps struct {
	Logger    zerolog.Logger
	JWTSecret string
	Tasks     ports.TaskService
	Users     ports.UserService
	Auth      ports.AuthService
	Mongo     *mongo.Database
	Redis     *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("taskboard"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	taskHandler := handler.NewTaskHandler(d.Tasks, d.Users)
	userHandler := handler.NewUserHandler(d.Users)
	statsHandler := handler.NewStatsHandler(d.Tasks)

	// --- Public routes ---
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)

	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(d.Mongo, d.Redis)
	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Authenticated routes ---
	auth := middleware.Auth(d.JWTSecret)
	apiGroup := e.Group("/api", auth)

	// Route-level role gates mirror the coarse rules; the permission
	// evaluator re-checks inside the service, including the
	// assignee-or-admin relation on transitions.
	canCreate := middleware.RequireRole(domain.RoleStaff, domain.RoleDeveloper, domain.RoleAdmin)
	canAssign := middleware.RequireRole(domain.RoleDeveloper, domain.RoleAdmin)
	adminOnly := middleware.RequireRole(domain.RoleAdmin)

	apiGroup.GET("/tasks", taskHandler.List)
	apiGroup.POST("/tasks", taskHandler.Create, canCreate)
	apiGroup.GET("/tasks/:id", taskHandler.Get)
	apiGroup.PUT("/tasks/:id/status", taskHandler.UpdateStatus, canAssign)
	apiGroup.PUT("/tasks/:id/assign", taskHandler.Assign, canAssign)

	apiGroup.GET("/users", userHandler.List, adminOnly)
	apiGroup.PUT("/users/:id/role", userHandler.UpdateRole, adminOnly)
	apiGroup.GET("/developers", userHandler.Developers)

	apiGroup.GET("/statistics", statsHandler.Get)

	apiGroup.POST("/discord/link", userHandler.LinkDiscord)
	apiGroup.GET("/discord/status", userHandler.DiscordStatus)
	apiGroup.DELETE("/discord/link", userHandler.UnlinkDiscord)

	return e
}
