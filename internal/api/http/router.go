package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/supportiq/helpdesk/internal/api/http/handlers"
	"github.com/supportiq/helpdesk/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Tickets        *handlers.TicketsHandler
	Agent          *handlers.AgentHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)

	// Static segments before :id so /agent/pending and /my are not captured.
	tickets.Get("/agent/pending", auth.RequireAgent(), cfg.Agent.PendingQueue)
	tickets.Get("/my", auth.RequireUser(), cfg.Tickets.ListTickets)

	tickets.Post("", auth.RequireUser(), cfg.Tickets.CreateTicket)
	tickets.Get("/:id", auth.RequireUser(), cfg.Tickets.GetTicket)
	tickets.Post("/:id/generate-draft", auth.RequireAgent(), cfg.Agent.GenerateDraft)
	tickets.Get("/:id/messages", auth.RequireAnyRole(), cfg.Tickets.ListMessages)
	tickets.Post("/:id/reply", auth.RequireAnyRole(), cfg.Tickets.AddReply)
	tickets.Post("/:id/close", auth.RequireAnyRole(), cfg.Tickets.CloseTicket)
}
