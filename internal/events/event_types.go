package events

import (
	"time"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated       EventType = "ticket_created"
	EventTicketStatusChanged EventType = "ticket_status_changed"
	EventTicketTransferred   EventType = "ticket_transferred"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	TicketID  string      `json:"ticket_id"`
	AgentID   string      `json:"agent_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	AreaID   string             `json:"area_id"`
	ClientID string             `json:"client_id"`
	Impact   domain.ImpactLevel `json:"impact"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	FromStatus domain.TicketStatus `json:"from_status"`
	ToStatus   domain.TicketStatus `json:"to_status"`
	Notes      string              `json:"notes,omitempty"`
}

// TicketTransferredPayload payload.
type TicketTransferredPayload struct {
	FromAreaID string `json:"from_area_id"`
	ToAreaID   string `json:"to_area_id"`
	Notes      string `json:"notes,omitempty"`
}
