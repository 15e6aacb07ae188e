package dto

import (
	"github.com/rolfmarquardtjr/clickticket/internal/domain"
	"github.com/rolfmarquardtjr/clickticket/internal/service"
)

// BoardColumnResponse is one populated kanban column.
type BoardColumnResponse struct {
	Key       domain.TicketStatus `json:"key"`
	Label     string              `json:"label"`
	Color     string              `json:"color,omitempty"`
	Count     int                 `json:"count"`
	SLAAtRisk int                 `json:"sla_at_risk"`
	VIPCount  int                 `json:"vip_count"`
	Tickets   []TicketResponse    `json:"tickets"`
}

// BoardResponse is the full board projection.
type BoardResponse struct {
	Columns []BoardColumnResponse `json:"columns"`
}

// NewBoardResponse maps the projected columns.
func NewBoardResponse(columns []service.BoardColumnView) BoardResponse {
	out := make([]BoardColumnResponse, 0, len(columns))
	for _, col := range columns {
		tickets := make([]TicketResponse, 0, len(col.Tickets))
		for _, view := range col.Tickets {
			tickets = append(tickets, NewTicketResponse(view))
		}
		out = append(out, BoardColumnResponse{
			Key:       col.Key,
			Label:     col.Label,
			Color:     col.Color,
			Count:     col.Count,
			SLAAtRisk: col.SLAAtRisk,
			VIPCount:  col.VIPCount,
			Tickets:   tickets,
		})
	}
	return BoardResponse{Columns: out}
}
