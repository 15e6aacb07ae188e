package domain

// transitionTable is the fixed directed graph over the six statuses. Custom
// board columns only relabel these keys for display; they never add edges.
var transitionTable = map[TicketStatus][]TicketStatus{
	TicketStatusNovo:              {TicketStatusEmAnalise, TicketStatusEmExecucao},
	TicketStatusEmAnalise:         {TicketStatusEmExecucao, TicketStatusAguardandoCliente},
	TicketStatusAguardandoCliente: {TicketStatusEmAnalise},
	TicketStatusEmExecucao:        {TicketStatusResolvido, TicketStatusAguardandoCliente},
	TicketStatusResolvido:         {TicketStatusEncerrado},
	TicketStatusEncerrado:         {},
}

// AllowedTargets returns the statuses reachable from the given status.
func AllowedTargets(status TicketStatus) []TicketStatus {
	targets := transitionTable[status]
	out := make([]TicketStatus, len(targets))
	copy(out, targets)
	return out
}

// IsTerminal reports whether the status has no outgoing transitions.
func IsTerminal(status TicketStatus) bool {
	return status == TicketStatusEncerrado
}

// CanTransition reports whether the edge from→to exists in the rule table.
func CanTransition(from, to TicketStatus) bool {
	for _, candidate := range transitionTable[from] {
		if candidate == to {
			return true
		}
	}
	return false
}
