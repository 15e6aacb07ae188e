package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
)

// CustomFieldRepository persists organization-defined field definitions and
// reads submitted values.
type CustomFieldRepository interface {
	CreateDefinition(ctx context.Context, def *domain.CustomFieldDefinition) error
	GetDefinition(ctx context.Context, id string) (*domain.CustomFieldDefinition, error)
	ListByScope(ctx context.Context, scope domain.FieldScope, scopeID string, activeOnly bool) ([]domain.CustomFieldDefinition, error)
	ListValuesByTicket(ctx context.Context, ticketID string) ([]domain.CustomFieldValue, error)
}

type customFieldRepository struct {
	pool *pgxpool.Pool
}

// NewCustomFieldRepository constructs the repository.
func NewCustomFieldRepository(pool *pgxpool.Pool) CustomFieldRepository {
	return &customFieldRepository{pool: pool}
}

const fieldDefColumns = `id, label, field_type, required, scope, scope_id, options, description, is_active, created_at, updated_at`

func (r *customFieldRepository) CreateDefinition(ctx context.Context, def *domain.CustomFieldDefinition) error {
	const query = `
        INSERT INTO custom_field_definitions (label, field_type, required, scope, scope_id, options, description, is_active)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		def.Label,
		def.Type,
		def.Required,
		def.Scope,
		def.ScopeID,
		def.Options,
		def.Description,
		def.IsActive,
	).Scan(&def.ID, &def.CreatedAt, &def.UpdatedAt)
}

func (r *customFieldRepository) GetDefinition(ctx context.Context, id string) (*domain.CustomFieldDefinition, error) {
	query := `SELECT ` + fieldDefColumns + ` FROM custom_field_definitions WHERE id=$1`
	var def domain.CustomFieldDefinition
	if err := scanFieldDefinition(r.pool.QueryRow(ctx, query, id), &def); err != nil {
		return nil, err
	}
	return &def, nil
}

func (r *customFieldRepository) ListByScope(ctx context.Context, scope domain.FieldScope, scopeID string, activeOnly bool) ([]domain.CustomFieldDefinition, error) {
	query := `SELECT ` + fieldDefColumns + ` FROM custom_field_definitions WHERE scope=$1 AND scope_id=$2`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, scope, scopeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomFieldDefinition
	for rows.Next() {
		var def domain.CustomFieldDefinition
		if err := scanFieldDefinition(rows, &def); err != nil {
			return nil, err
		}
		result = append(result, def)
	}
	return result, rows.Err()
}

func (r *customFieldRepository) ListValuesByTicket(ctx context.Context, ticketID string) ([]domain.CustomFieldValue, error) {
	const query = `
        SELECT id, ticket_id, field_id, value, created_at
        FROM ticket_field_values WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.CustomFieldValue
	for rows.Next() {
		var value domain.CustomFieldValue
		if err := rows.Scan(&value.ID, &value.TicketID, &value.FieldID, &value.Value, &value.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, value)
	}
	return result, rows.Err()
}

func scanFieldDefinition(row pgx.Row, def *domain.CustomFieldDefinition) error {
	return row.Scan(
		&def.ID,
		&def.Label,
		&def.Type,
		&def.Required,
		&def.Scope,
		&def.ScopeID,
		&def.Options,
		&def.Description,
		&def.IsActive,
		&def.CreatedAt,
		&def.UpdatedAt,
	)
}
