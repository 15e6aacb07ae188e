package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rolfmarquardtjr/clickticket/internal/api/http/handlers"
	"github.com/rolfmarquardtjr/clickticket/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Agents         *handlers.AgentsHandler
	Tickets        *handlers.TicketsHandler
	Board          *handlers.BoardHandler
	CustomFields   *handlers.CustomFieldsHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/agents/login", cfg.Agents.Login)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Get("/agents/me", cfg.Agents.Me)
	authProtected.Post("/agents/change-password", cfg.Agents.ChangePassword)
	authProtected.Post("/agents/register", auth.RequireAdmin(), cfg.Agents.Register)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	tickets.Post("", cfg.Tickets.CreateTicket)
	tickets.Get("", cfg.Tickets.ListTickets)
	tickets.Get("/:id", cfg.Tickets.GetTicket)
	tickets.Patch("/:id/status", cfg.Tickets.ChangeStatus)
	tickets.Patch("/:id/transfer", cfg.Tickets.Transfer)
	tickets.Post("/:id/attachments", cfg.Tickets.UploadAttachments)
	tickets.Delete("/:id/attachments/:attachmentID", cfg.Tickets.DeleteAttachment)

	app.Get("/board", cfg.AuthMiddleware.Handle, cfg.Board.Board)

	fields := app.Group("/custom-fields", cfg.AuthMiddleware.Handle)
	fields.Get("", cfg.CustomFields.List)
	fields.Get("/:id", cfg.CustomFields.Get)
	fields.Post("", auth.RequireAdmin(), cfg.CustomFields.Create)
}
