package domain

import "time"

// SLATier classifies remaining time against the policy window.
type SLATier string

const (
	SLATierOK       SLATier = "ok"
	SLATierRisco    SLATier = "risco"
	SLATierQuebrado SLATier = "quebrado"
)

// SLAOwnerType identifies which entity an SLA policy is attached to.
type SLAOwnerType string

const (
	SLAOwnerClient  SLAOwnerType = "client"
	SLAOwnerProduct SLAOwnerType = "product"
)

// SLAPolicy is a named tuple of hour thresholds per impact level. When both a
// client and a product policy could apply, the highest Priority wins.
type SLAPolicy struct {
	ID         string
	Name       string
	OwnerType  SLAOwnerType
	OwnerID    string
	HoursBaixo int
	HoursMedio int
	HoursAlto  int
	Priority   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// System default thresholds used when no policy applies.
const (
	DefaultHoursAlto  = 4
	DefaultHoursMedio = 24
	DefaultHoursBaixo = 48
)

// DefaultSLAPolicy returns the built-in fallback policy.
func DefaultSLAPolicy() SLAPolicy {
	return SLAPolicy{
		Name:       "default",
		HoursBaixo: DefaultHoursBaixo,
		HoursMedio: DefaultHoursMedio,
		HoursAlto:  DefaultHoursAlto,
	}
}

// HoursFor returns the window in hours for the given impact level.
func (p SLAPolicy) HoursFor(impact ImpactLevel) int {
	switch impact {
	case ImpactAlto:
		return p.HoursAlto
	case ImpactMedio:
		return p.HoursMedio
	default:
		return p.HoursBaixo
	}
}

// SLAResult is the computed remaining-time snapshot for a ticket.
type SLAResult struct {
	Tier           SLATier
	HoursRemaining int
	Deadline       time.Time
}
