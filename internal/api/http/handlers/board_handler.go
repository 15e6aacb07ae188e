package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rolfmarquardtjr/clickticket/internal/api/dto"
	"github.com/rolfmarquardtjr/clickticket/internal/auth"
	"github.com/rolfmarquardtjr/clickticket/internal/service"
	apperrors "github.com/rolfmarquardtjr/clickticket/pkg/util"
)

// BoardHandler exposes the kanban projection endpoints.
type BoardHandler struct {
	tickets *service.TicketService
}

// NewBoardHandler constructs handler.
func NewBoardHandler(ticketService *service.TicketService) *BoardHandler {
	return &BoardHandler{tickets: ticketService}
}

// Board GET /board. An area_id query narrows the projection to one area;
// without it every area contributes to the overview.
func (h *BoardHandler) Board(c *fiber.Ctx) error {
	if _, ok := auth.AgentFromContext(c); !ok {
		return apperrors.NewUnauthorized("agent required")
	}
	var areaID *string
	if v := c.Query("area_id"); v != "" {
		areaID = &v
	}
	columns, err := h.tickets.Board(c.Context(), areaID, service.DefaultBoardColumns())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBoardResponse(columns)})
}
