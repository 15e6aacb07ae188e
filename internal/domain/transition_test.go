package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct {
		from TicketStatus
		to   TicketStatus
	}{
		{TicketStatusNovo, TicketStatusEmAnalise},
		{TicketStatusNovo, TicketStatusEmExecucao},
		{TicketStatusEmAnalise, TicketStatusEmExecucao},
		{TicketStatusEmAnalise, TicketStatusAguardandoCliente},
		{TicketStatusAguardandoCliente, TicketStatusEmAnalise},
		{TicketStatusEmExecucao, TicketStatusResolvido},
		{TicketStatusEmExecucao, TicketStatusAguardandoCliente},
		{TicketStatusResolvido, TicketStatusEncerrado},
	}
	allowedSet := make(map[[2]TicketStatus]bool, len(allowed))
	for _, edge := range allowed {
		allowedSet[[2]TicketStatus{edge.from, edge.to}] = true
		assert.True(t, CanTransition(edge.from, edge.to), "%s -> %s should be allowed", edge.from, edge.to)
	}

	// Every edge outside the table is rejected, including self loops.
	for _, from := range AllStatuses {
		for _, to := range AllStatuses {
			if allowedSet[[2]TicketStatus{from, to}] {
				continue
			}
			assert.False(t, CanTransition(from, to), "%s -> %s should be rejected", from, to)
		}
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition("arquivado", TicketStatusNovo))
	assert.False(t, CanTransition(TicketStatusNovo, "arquivado"))
}

func TestIsTerminal(t *testing.T) {
	for _, status := range AllStatuses {
		if status == TicketStatusEncerrado {
			assert.True(t, IsTerminal(status))
			continue
		}
		assert.False(t, IsTerminal(status), "%s should not be terminal", status)
	}
}

func TestAllowedTargetsReturnsCopy(t *testing.T) {
	targets := AllowedTargets(TicketStatusNovo)
	assert.Equal(t, []TicketStatus{TicketStatusEmAnalise, TicketStatusEmExecucao}, targets)

	targets[0] = TicketStatusEncerrado
	assert.Equal(t, []TicketStatus{TicketStatusEmAnalise, TicketStatusEmExecucao}, AllowedTargets(TicketStatusNovo))
}

func TestAllowedTargetsTerminalEmpty(t *testing.T) {
	assert.Empty(t, AllowedTargets(TicketStatusEncerrado))
}

func TestIsValidStatus(t *testing.T) {
	for _, status := range AllStatuses {
		assert.True(t, IsValidStatus(status))
	}
	assert.False(t, IsValidStatus("closed"))
	assert.False(t, IsValidStatus(""))
}

func TestTicketIsClosed(t *testing.T) {
	ticket := Ticket{Status: TicketStatusResolvido}
	assert.False(t, ticket.IsClosed())

	ticket.Status = TicketStatusEncerrado
	assert.True(t, ticket.IsClosed())
}
