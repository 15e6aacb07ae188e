package domain

import "time"

// TicketStatus enumerates lifecycle states for tickets.
type TicketStatus string

const (
	TicketStatusNovo              TicketStatus = "novo"
	TicketStatusEmAnalise         TicketStatus = "em_analise"
	TicketStatusAguardandoCliente TicketStatus = "aguardando_cliente"
	TicketStatusEmExecucao        TicketStatus = "em_execucao"
	TicketStatusResolvido         TicketStatus = "resolvido"
	TicketStatusEncerrado         TicketStatus = "encerrado"
)

// AllStatuses lists every valid status in board order.
var AllStatuses = []TicketStatus{
	TicketStatusNovo,
	TicketStatusEmAnalise,
	TicketStatusAguardandoCliente,
	TicketStatusEmExecucao,
	TicketStatusResolvido,
	TicketStatusEncerrado,
}

// IsValidStatus reports whether the value is one of the six defined statuses.
func IsValidStatus(status TicketStatus) bool {
	for _, candidate := range AllStatuses {
		if candidate == status {
			return true
		}
	}
	return false
}

// ImpactLevel enumerates ticket severity driving SLA thresholds.
type ImpactLevel string

const (
	ImpactBaixo ImpactLevel = "baixo"
	ImpactMedio ImpactLevel = "medio"
	ImpactAlto  ImpactLevel = "alto"
)

// IsValidImpact reports whether the value is a known impact level.
func IsValidImpact(impact ImpactLevel) bool {
	return impact == ImpactBaixo || impact == ImpactMedio || impact == ImpactAlto
}

// OriginChannel identifies how a ticket entered the system.
type OriginChannel string

const (
	OriginManual  OriginChannel = "manual"
	OriginEmail   OriginChannel = "email"
	OriginPortal  OriginChannel = "portal"
	OriginPhone   OriginChannel = "telefone"
	OriginWebhook OriginChannel = "webhook"
)

// HighImpactMinDescription is the minimum description length required when
// opening a ticket with impact alto.
const HighImpactMinDescription = 20

// Ticket is the aggregate driven through the lifecycle workflow.
type Ticket struct {
	ID            string
	ExternalKey   string
	OriginChannel OriginChannel
	OriginContact string
	OriginRef     string
	ClientID      string
	ProductID     *string
	AreaID        string
	Category      string
	Subcategory   string
	Impact        ImpactLevel
	Description   string
	Status        TicketStatus
	CreatedAt     time.Time
	UpdatedAt     time.Time
	// Frozen SLA snapshot, populated when the ticket enters the terminal
	// status. Closed tickets stop tracking the clock.
	FrozenSLATier  *SLATier
	FrozenSLAHours *int
}

// IsClosed reports whether the ticket sits in the terminal status.
func (t *Ticket) IsClosed() bool {
	return IsTerminal(t.Status)
}
