package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gearguard/maintenance-service/internal/api/http/handlers"
	"github.com/gearguard/maintenance-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Requests       *handlers.RequestsHandler
	Kanban         *handlers.KanbanHandler
	Equipment      *handlers.EquipmentHandler
	Teams          *handlers.TeamsHandler
	Users          *handlers.UsersHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes. Capability gates mirror the role
// permission table; row-level visibility is enforced in the services.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Auth.Login)

	api := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	api.Post("/auth/logout", cfg.Auth.Logout)
	api.Get("/auth/me", cfg.Auth.Me)

	requests := api.Group("/requests")
	requests.Post("", auth.RequireCapability(auth.CanCreateRequests), cfg.Requests.Create)
	requests.Get("", cfg.Requests.List)
	requests.Get("/calendar", cfg.Requests.Calendar)
	requests.Get("/my-tasks", cfg.Requests.MyTasks)
	requests.Get("/:id", cfg.Requests.Get)
	requests.Patch("/:id/status", auth.RequireCapability(auth.CanManageAllRequests, auth.CanUpdateAssignedTasks), cfg.Requests.UpdateStatus)
	requests.Post("/:id/complete", auth.RequireCapability(auth.CanManageAllRequests, auth.CanUpdateAssignedTasks), cfg.Requests.Complete)
	requests.Patch("/:id/technician", auth.RequireCapability(auth.CanAssignTechnicians), cfg.Requests.Assign)
	requests.Post("/:id/pick", auth.RequireCapability(auth.CanPickTasks), cfg.Requests.Pick)
	requests.Delete("/:id", auth.RequireCapability(auth.CanDeleteRequests), cfg.Requests.Delete)
	requests.Get("/:id/activity", cfg.Requests.Activity)

	kanban := api.Group("/kanban")
	kanban.Get("", cfg.Kanban.Board)
	kanban.Post("/:id/move", auth.RequireCapability(auth.CanManageAllRequests, auth.CanUpdateAssignedTasks), cfg.Kanban.Move)
	kanban.Get("/:id/targets", cfg.Kanban.Targets)

	equipment := api.Group("/equipment")
	equipment.Get("", cfg.Equipment.List)
	equipment.Get("/:id", cfg.Equipment.Get)
	equipment.Post("", auth.RequireCapability(auth.CanManageEquipment), cfg.Equipment.Create)
	equipment.Put("/:id", auth.RequireCapability(auth.CanManageEquipment), cfg.Equipment.Update)
	equipment.Post("/:id/scrap", auth.RequireCapability(auth.CanScrapEquipment), cfg.Equipment.Scrap)

	catalogs := api.Group("/catalogs")
	catalogs.Get("/categories", cfg.Equipment.Categories)
	catalogs.Get("/departments", cfg.Equipment.Departments)
	catalogs.Get("/locations", cfg.Equipment.Locations)

	teams := api.Group("/teams")
	teams.Get("", cfg.Teams.List)
	teams.Get("/:id", cfg.Teams.Get)
	teams.Post("", auth.RequireCapability(auth.CanManageTeams), cfg.Teams.Create)
	teams.Put("/:id", auth.RequireCapability(auth.CanManageTeams), cfg.Teams.Update)

	users := api.Group("/users")
	users.Get("", auth.RequireCapability(auth.CanManageUsers), cfg.Users.List)
	users.Get("/technicians", auth.RequireCapability(auth.CanAssignTechnicians, auth.CanManageEquipment), cfg.Users.Technicians)

	api.Get("/dashboard/stats", auth.RequireCapability(auth.CanViewDashboard), cfg.Dashboard.Stats)
}
