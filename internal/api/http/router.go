package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/travault/crm-service/internal/api/http/handlers"
	"github.com/travault/crm-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Actions        *handlers.ActionsHandler
	Subjects       *handlers.SubjectsHandler
	Emails         *handlers.EmailsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	app.Post("/auth/login", cfg.Users.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Get("/auth/me", cfg.Users.Me)

	protected.Get("/users", cfg.Users.ListUsers)
	protected.Post("/users", auth.RequireAdmin(), cfg.Users.CreateUser)

	protected.Get("/tickets", cfg.Tickets.ListTickets)
	protected.Post("/tickets", cfg.Tickets.CreateTicket)
	protected.Get("/tickets/closed", auth.RequireAdmin(), cfg.Tickets.ListClosedTickets)
	protected.Get("/tickets/:id", cfg.Tickets.GetTicket)
	protected.Put("/tickets/:id", cfg.Tickets.EditTicket)
	protected.Patch("/tickets/:id/field", cfg.Tickets.UpdateTicketField)
	protected.Post("/tickets/:id/reopen", auth.RequireAdmin(), cfg.Tickets.ReopenTicket)
	protected.Delete("/tickets/:id", auth.RequireAdmin(), cfg.Tickets.DeleteTicket)

	protected.Get("/tickets/:id/actions", cfg.Actions.ListActions)
	protected.Post("/tickets/:id/actions", cfg.Actions.AddAction)
	protected.Put("/actions/:id", cfg.Actions.EditAction)
	protected.Delete("/actions/:id", auth.RequireAdmin(), cfg.Actions.DeleteAction)

	protected.Get("/emails/:kind", cfg.Emails.Preview)

	protected.Get("/subjects", cfg.Subjects.ListSubjects)
	protected.Post("/subjects", cfg.Subjects.CreateSubject)
	protected.Put("/subjects/:id", cfg.Subjects.RenameSubject)
	protected.Delete("/subjects/:id", cfg.Subjects.DeleteSubject)
}
