package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
)

// SLAPolicyRepository persists SLA policies attached to clients or products.
type SLAPolicyRepository interface {
	Create(ctx context.Context, policy *domain.SLAPolicy) error
	GetByOwner(ctx context.Context, ownerType domain.SLAOwnerType, ownerID string) (*domain.SLAPolicy, error)
}

type slaPolicyRepository struct {
	pool *pgxpool.Pool
}

// NewSLAPolicyRepository constructs the repository.
func NewSLAPolicyRepository(pool *pgxpool.Pool) SLAPolicyRepository {
	return &slaPolicyRepository{pool: pool}
}

func (r *slaPolicyRepository) Create(ctx context.Context, policy *domain.SLAPolicy) error {
	const query = `
        INSERT INTO sla_policies (name, owner_type, owner_id, hours_baixo, hours_medio, hours_alto, priority)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		policy.Name,
		policy.OwnerType,
		policy.OwnerID,
		policy.HoursBaixo,
		policy.HoursMedio,
		policy.HoursAlto,
		policy.Priority,
	).Scan(&policy.ID, &policy.CreatedAt, &policy.UpdatedAt)
}

// GetByOwner returns the policy attached to the owner, or nil when none exists.
func (r *slaPolicyRepository) GetByOwner(ctx context.Context, ownerType domain.SLAOwnerType, ownerID string) (*domain.SLAPolicy, error) {
	const query = `
        SELECT id, name, owner_type, owner_id, hours_baixo, hours_medio, hours_alto, priority, created_at, updated_at
        FROM sla_policies WHERE owner_type=$1 AND owner_id=$2
        ORDER BY priority DESC LIMIT 1`
	var policy domain.SLAPolicy
	err := r.pool.QueryRow(ctx, query, ownerType, ownerID).Scan(
		&policy.ID,
		&policy.Name,
		&policy.OwnerType,
		&policy.OwnerID,
		&policy.HoursBaixo,
		&policy.HoursMedio,
		&policy.HoursAlto,
		&policy.Priority,
		&policy.CreatedAt,
		&policy.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &policy, nil
}
