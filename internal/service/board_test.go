package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
)

func boardTicket(status domain.TicketStatus, tier domain.SLATier, vip bool) TicketView {
	return TicketView{
		Ticket:    domain.Ticket{Status: status},
		SLA:       domain.SLAResult{Tier: tier},
		ClientVIP: vip,
	}
}

func TestProjectBoardPartitionsByStatus(t *testing.T) {
	tickets := []TicketView{
		boardTicket(domain.TicketStatusNovo, domain.SLATierOK, false),
		boardTicket(domain.TicketStatusNovo, domain.SLATierRisco, true),
		boardTicket(domain.TicketStatusEmExecucao, domain.SLATierQuebrado, false),
		boardTicket(domain.TicketStatusEncerrado, domain.SLATierOK, false),
	}

	columns := ProjectBoard(tickets, DefaultBoardColumns())
	require.Len(t, columns, 6)

	byKey := make(map[domain.TicketStatus]BoardColumnView, len(columns))
	for _, col := range columns {
		byKey[col.Key] = col
	}

	assert.Equal(t, 2, byKey[domain.TicketStatusNovo].Count)
	assert.Equal(t, 1, byKey[domain.TicketStatusEmExecucao].Count)
	assert.Equal(t, 1, byKey[domain.TicketStatusEncerrado].Count)
	assert.Equal(t, 0, byKey[domain.TicketStatusEmAnalise].Count)
}

func TestProjectBoardAggregates(t *testing.T) {
	tickets := []TicketView{
		boardTicket(domain.TicketStatusNovo, domain.SLATierRisco, true),
		boardTicket(domain.TicketStatusNovo, domain.SLATierQuebrado, false),
		boardTicket(domain.TicketStatusNovo, domain.SLATierOK, true),
	}

	columns := ProjectBoard(tickets, DefaultBoardColumns())
	novo := columns[0]
	assert.Equal(t, domain.TicketStatusNovo, novo.Key)
	assert.Equal(t, 3, novo.Count)
	assert.Equal(t, 2, novo.SLAAtRisk)
	assert.Equal(t, 2, novo.VIPCount)
}

func TestProjectBoardTerminalNeverAtRisk(t *testing.T) {
	// A closed ticket with a frozen quebrado tier does not count toward risk.
	tickets := []TicketView{
		boardTicket(domain.TicketStatusEncerrado, domain.SLATierQuebrado, false),
	}
	columns := ProjectBoard(tickets, DefaultBoardColumns())
	closed := columns[5]
	assert.Equal(t, domain.TicketStatusEncerrado, closed.Key)
	assert.Equal(t, 1, closed.Count)
	assert.Equal(t, 0, closed.SLAAtRisk)
}

func TestProjectBoardCustomColumns(t *testing.T) {
	custom := []BoardColumn{
		{Key: domain.TicketStatusNovo, Label: "Entrada", Color: "#ff0000"},
		{Key: domain.TicketStatusEncerrado, Label: "Arquivo", Color: "#999999"},
	}
	tickets := []TicketView{
		boardTicket(domain.TicketStatusNovo, domain.SLATierOK, false),
		boardTicket(domain.TicketStatusEmAnalise, domain.SLATierOK, false),
	}

	columns := ProjectBoard(tickets, custom)
	require.Len(t, columns, 2)
	assert.Equal(t, "Entrada", columns[0].Label)
	assert.Equal(t, "#ff0000", columns[0].Color)
	assert.Equal(t, 1, columns[0].Count)
	// Statuses without a column simply do not appear.
	assert.Equal(t, 0, columns[1].Count)
}

func TestProjectBoardEmptyColumnsDefaults(t *testing.T) {
	columns := ProjectBoard(nil, nil)
	require.Len(t, columns, 6)
	for i, status := range domain.AllStatuses {
		assert.Equal(t, status, columns[i].Key)
		assert.Equal(t, 0, columns[i].Count)
	}
}
