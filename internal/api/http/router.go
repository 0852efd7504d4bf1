package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/portfolio-backend/internal/api/http/handlers"
	"github.com/spec-kit/portfolio-backend/internal/auth"
	"github.com/spec-kit/portfolio-backend/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Projects       *handlers.ProjectsHandler
	Skills         *handlers.SkillsHandler
	Messages       *handlers.MessagesHandler
	Users          *handlers.UsersHandler
	Metrics        *handlers.MetricsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes. The auth gate runs on every /api request
// and only attaches a principal; guards on each group decide access.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api", cfg.AuthMiddleware.Handle)

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/logout", cfg.Auth.Logout)
	authGroup.Get("/me", auth.RequireAuthenticated(), cfg.Auth.Me)

	api.Get("/projects", cfg.Projects.List)
	api.Get("/projects/:id", cfg.Projects.Get)

	api.Get("/skills", cfg.Skills.List)
	api.Get("/skills/project/:projectId", cfg.Skills.ListByProject)
	api.Get("/skills/created-after/:date", cfg.Skills.ListCreatedAfter)
	api.Get("/skills/:name", cfg.Skills.GetByName)

	api.Post("/messages", cfg.Messages.Submit)

	admin := api.Group("/admin", auth.RequireRole(domain.RoleAdmin))

	projects := admin.Group("/projects")
	projects.Get("/", cfg.Projects.List)
	projects.Get("/status/:status", cfg.Projects.ListByStatus)
	projects.Get("/search", cfg.Projects.Search)
	projects.Get("/skill/:skillName", cfg.Projects.ListBySkill)
	projects.Get("/created-after/:date", cfg.Projects.ListCreatedAfter)
	projects.Post("/", cfg.Projects.Create)
	projects.Put("/:id", cfg.Projects.Update)
	projects.Delete("/:id", cfg.Projects.Delete)

	skills := admin.Group("/skills")
	skills.Post("/", cfg.Skills.Create)
	skills.Put("/:id", cfg.Skills.Update)
	skills.Delete("/:id", cfg.Skills.Delete)

	messages := admin.Group("/messages")
	messages.Get("/", cfg.Messages.List)
	messages.Get("/unread", cfg.Messages.ListUnread)
	messages.Get("/search", cfg.Messages.Search)
	messages.Get("/search/:keyword", cfg.Messages.Search)
	messages.Get("/after/:date", cfg.Messages.ListCreatedAfter)
	messages.Get("/email/:email", cfg.Messages.ListByEmail)
	messages.Get("/:id", cfg.Messages.Get)
	messages.Patch("/:id/read", cfg.Messages.MarkRead)
	messages.Delete("/:id", cfg.Messages.Delete)

	users := admin.Group("/users")
	users.Get("/", cfg.Users.List)
	users.Get("/role/:role", cfg.Users.ListByRole)
	users.Get("/email/:email", cfg.Users.GetByEmail)
	users.Get("/username/:username", cfg.Users.GetByUsername)
	users.Get("/created-after/:date", cfg.Users.ListCreatedAfter)
	users.Post("/", cfg.Users.Create)
	users.Delete("/:id", cfg.Users.Delete)

	admin.Get("/roles", cfg.Users.Roles)
	admin.Get("/roles/:name", cfg.Users.Role)

	admin.Get("/metrics", cfg.Metrics.Snapshot)
}
