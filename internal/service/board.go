package service

import "github.com/rolfmarquardtjr/clickticket/internal/domain"

// TicketView is the ticket representation returned by the workflow engine:
// the ticket plus its computed SLA snapshot and client VIP flag. Board and
// detail views consume this shape.
type TicketView struct {
	Ticket    domain.Ticket
	SLA       domain.SLAResult
	ClientVIP bool
}

// BoardColumn defines a display column mapped onto a status key. Custom
// kanban columns relabel and recolor statuses; they never change the
// transition graph.
type BoardColumn struct {
	Key   domain.TicketStatus
	Label string
	Color string
}

// DefaultBoardColumns returns the six-status column set in board order.
func DefaultBoardColumns() []BoardColumn {
	return []BoardColumn{
		{Key: domain.TicketStatusNovo, Label: "Novo"},
		{Key: domain.TicketStatusEmAnalise, Label: "Em análise"},
		{Key: domain.TicketStatusAguardandoCliente, Label: "Aguardando cliente"},
		{Key: domain.TicketStatusEmExecucao, Label: "Em execução"},
		{Key: domain.TicketStatusResolvido, Label: "Resolvido"},
		{Key: domain.TicketStatusEncerrado, Label: "Encerrado"},
	}
}

// BoardColumnView is a populated column with its aggregates.
type BoardColumnView struct {
	Key       domain.TicketStatus
	Label     string
	Color     string
	Tickets   []TicketView
	Count     int
	SLAAtRisk int
	VIPCount  int
}

// ProjectBoard partitions tickets by status into the given ordered columns
// and computes per-column aggregates: total count, tickets whose SLA tier is
// risco or quebrado among non-terminal tickets, and VIP-client tickets. Pure
// function of its inputs.
func ProjectBoard(tickets []TicketView, columns []BoardColumn) []BoardColumnView {
	if len(columns) == 0 {
		columns = DefaultBoardColumns()
	}

	byStatus := make(map[domain.TicketStatus][]TicketView)
	for _, view := range tickets {
		byStatus[view.Ticket.Status] = append(byStatus[view.Ticket.Status], view)
	}

	result := make([]BoardColumnView, 0, len(columns))
	for _, col := range columns {
		members := byStatus[col.Key]
		view := BoardColumnView{
			Key:     col.Key,
			Label:   col.Label,
			Color:   col.Color,
			Tickets: members,
			Count:   len(members),
		}
		for _, member := range members {
			if !domain.IsTerminal(member.Ticket.Status) &&
				(member.SLA.Tier == domain.SLATierRisco || member.SLA.Tier == domain.SLATierQuebrado) {
				view.SLAAtRisk++
			}
			if member.ClientVIP {
				view.VIPCount++
			}
		}
		result = append(result, view)
	}
	return result
}
