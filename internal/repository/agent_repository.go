package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
)

// AgentRepository handles persistence for operators.
type AgentRepository interface {
	Create(ctx context.Context, agent *domain.Agent) error
	Update(ctx context.Context, agent *domain.Agent) error
	GetByID(ctx context.Context, id string) (*domain.Agent, error)
	GetByEmail(ctx context.Context, email string) (*domain.Agent, error)
}

type agentRepository struct {
	pool *pgxpool.Pool
}

// NewAgentRepository instantiates the repository.
func NewAgentRepository(pool *pgxpool.Pool) AgentRepository {
	return &agentRepository{pool: pool}
}

const agentColumns = `id, name, email, password_hash, role, area_id, is_active, created_at, updated_at`

func (r *agentRepository) Create(ctx context.Context, agent *domain.Agent) error {
	const query = `
        INSERT INTO agents (name, email, password_hash, role, area_id, is_active)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		agent.Name,
		agent.Email,
		agent.PasswordHash,
		agent.Role,
		agent.AreaID,
		agent.IsActive,
	).Scan(&agent.ID, &agent.CreatedAt, &agent.UpdatedAt)
}

func (r *agentRepository) Update(ctx context.Context, agent *domain.Agent) error {
	const query = `
        UPDATE agents
        SET name=$1, email=$2, password_hash=$3, role=$4, area_id=$5, is_active=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		agent.Name,
		agent.Email,
		agent.PasswordHash,
		agent.Role,
		agent.AreaID,
		agent.IsActive,
		agent.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *agentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *agentRepository) GetByEmail(ctx context.Context, email string) (*domain.Agent, error) {
	query := `SELECT ` + agentColumns + ` FROM agents WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *agentRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Agent, error) {
	var agent domain.Agent
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&agent.ID,
		&agent.Name,
		&agent.Email,
		&agent.PasswordHash,
		&agent.Role,
		&agent.AreaID,
		&agent.IsActive,
		&agent.CreatedAt,
		&agent.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &agent, nil
}
