package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/scaffold-report-service/internal/api/http/handlers"
	"github.com/spec-kit/scaffold-report-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Users     *handlers.UsersHandler
	Clients   *handlers.ClientsHandler
	Projects  *handlers.ProjectsHandler
	Scaffolds *handlers.ScaffoldsHandler
	Dashboard *handlers.DashboardHandler
	Guard     *auth.Guard
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	// Logout is deliberately outside the guard: it must accept any
	// bearer token, including one that is already revoked or expired.
	authGroup.Post("/logout", cfg.Auth.Logout)

	users := api.Group("/users", cfg.Guard.Handle)
	users.Get("/me", cfg.Users.Me)
	users.Put("/me", cfg.Users.UpdateMe)
	users.Get("/", auth.RequireAdmin(), cfg.Users.List)
	users.Post("/", auth.RequireAdmin(), cfg.Users.Create)
	users.Get("/:id", auth.RequireAdmin(), cfg.Users.Get)
	users.Put("/:id", auth.RequireAdmin(), cfg.Users.Update)
	users.Delete("/:id", auth.RequireAdmin(), cfg.Users.Delete)

	clients := api.Group("/clients", cfg.Guard.Handle, auth.RequireAdmin())
	clients.Get("/", cfg.Clients.List)
	clients.Post("/", cfg.Clients.Create)
	clients.Get("/:id", cfg.Clients.Get)
	clients.Put("/:id", cfg.Clients.Update)
	clients.Delete("/:id", cfg.Clients.Delete)

	projects := api.Group("/projects", cfg.Guard.Handle)
	projects.Get("/", cfg.Projects.List)
	projects.Get("/:id", cfg.Projects.Get)
	projects.Post("/", auth.RequireAdmin(), cfg.Projects.Create)
	projects.Put("/:id", auth.RequireAdmin(), cfg.Projects.Update)
	projects.Delete("/:id", auth.RequireAdmin(), cfg.Projects.Delete)
	projects.Get("/:id/users", auth.RequireAdmin(), cfg.Projects.AssignedUsers)
	projects.Post("/:id/users", auth.RequireAdmin(), cfg.Projects.AssignUsers)
	projects.Get("/:id/report/pdf", auth.RequireAdmin(), cfg.Projects.ReportPDF)
	projects.Get("/:id/report/excel", auth.RequireAdmin(), cfg.Projects.ReportExcel)

	scaffolds := api.Group("/scaffolds", cfg.Guard.Handle)
	scaffolds.Post("/", cfg.Scaffolds.Create)
	scaffolds.Get("/my-history", cfg.Scaffolds.MyHistory)
	scaffolds.Get("/project/:projectId", cfg.Scaffolds.ListByProject)
	scaffolds.Put("/:id/disassemble", cfg.Scaffolds.Disassemble)

	dashboard := api.Group("/dashboard", cfg.Guard.Handle, auth.RequireAdmin())
	dashboard.Get("/summary", cfg.Dashboard.Summary)
}
