package service

import (
	"context"
	"math"
	"time"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
	"github.com/rolfmarquardtjr/clickticket/internal/repository"
)

// slaRiskFraction is the share of the window below which a ticket is at risk.
const slaRiskFraction = 0.2

// EvaluateSLA computes the remaining-time snapshot for a ticket opened at
// createdAt under the given policy. Remaining hours are whole hours and can
// be negative once the deadline has passed.
func EvaluateSLA(createdAt time.Time, impact domain.ImpactLevel, policy domain.SLAPolicy, now time.Time) domain.SLAResult {
	window := time.Duration(policy.HoursFor(impact)) * time.Hour
	deadline := createdAt.Add(window)
	remaining := deadline.Sub(now)

	hours := int(math.Floor(remaining.Hours()))

	tier := domain.SLATierOK
	switch {
	case remaining <= 0:
		tier = domain.SLATierQuebrado
	case remaining.Hours() <= window.Hours()*slaRiskFraction:
		tier = domain.SLATierRisco
	}

	return domain.SLAResult{
		Tier:           tier,
		HoursRemaining: hours,
		Deadline:       deadline,
	}
}

// ResolvePolicy picks between a client policy and a product policy by highest
// priority, falling back to the system default when neither applies.
func ResolvePolicy(clientPolicy, productPolicy *domain.SLAPolicy) domain.SLAPolicy {
	switch {
	case clientPolicy != nil && productPolicy != nil:
		if productPolicy.Priority > clientPolicy.Priority {
			return *productPolicy
		}
		return *clientPolicy
	case clientPolicy != nil:
		return *clientPolicy
	case productPolicy != nil:
		return *productPolicy
	default:
		return domain.DefaultSLAPolicy()
	}
}

// SLAResolver loads applicable policies and evaluates tickets against them.
type SLAResolver struct {
	policies repository.SLAPolicyRepository
	now      func() time.Time
}

// NewSLAResolver constructs the resolver.
func NewSLAResolver(policies repository.SLAPolicyRepository) *SLAResolver {
	return &SLAResolver{policies: policies, now: time.Now}
}

// PolicyFor resolves the applicable policy for a client/product pair.
func (r *SLAResolver) PolicyFor(ctx context.Context, clientID string, productID *string) (domain.SLAPolicy, error) {
	clientPolicy, err := r.policies.GetByOwner(ctx, domain.SLAOwnerClient, clientID)
	if err != nil {
		return domain.SLAPolicy{}, err
	}
	var productPolicy *domain.SLAPolicy
	if productID != nil {
		productPolicy, err = r.policies.GetByOwner(ctx, domain.SLAOwnerProduct, *productID)
		if err != nil {
			return domain.SLAPolicy{}, err
		}
	}
	return ResolvePolicy(clientPolicy, productPolicy), nil
}

// Evaluate computes the ticket's SLA snapshot. Terminal tickets return their
// frozen values; the clock stops when a ticket is closed.
func (r *SLAResolver) Evaluate(ctx context.Context, ticket *domain.Ticket) (domain.SLAResult, error) {
	if ticket.IsClosed() && ticket.FrozenSLATier != nil && ticket.FrozenSLAHours != nil {
		return domain.SLAResult{
			Tier:           *ticket.FrozenSLATier,
			HoursRemaining: *ticket.FrozenSLAHours,
		}, nil
	}
	policy, err := r.PolicyFor(ctx, ticket.ClientID, ticket.ProductID)
	if err != nil {
		return domain.SLAResult{}, err
	}
	return EvaluateSLA(ticket.CreatedAt, ticket.Impact, policy, r.now()), nil
}
