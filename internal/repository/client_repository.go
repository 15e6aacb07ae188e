package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
)

// ClientRepository manages client persistence.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) error
	GetByID(ctx context.Context, id string) (*domain.Client, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]domain.Client, error)
}

type clientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository instantiates the repository.
func NewClientRepository(pool *pgxpool.Pool) ClientRepository {
	return &clientRepository{pool: pool}
}

const clientColumns = `id, name, document, is_vip, is_active, created_at, updated_at`

func (r *clientRepository) Create(ctx context.Context, client *domain.Client) error {
	const query = `
        INSERT INTO clients (name, document, is_vip, is_active)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		client.Name,
		client.Document,
		client.IsVIP,
		client.IsActive,
	).Scan(&client.ID, &client.CreatedAt, &client.UpdatedAt)
}

func (r *clientRepository) GetByID(ctx context.Context, id string) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id=$1`
	var client domain.Client
	if err := scanClient(r.pool.QueryRow(ctx, query, id), &client); err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetByIDs(ctx context.Context, ids []string) (map[string]domain.Client, error) {
	result := make(map[string]domain.Client, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = ANY($1)`
	rows, err := r.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var client domain.Client
		if err := scanClient(rows, &client); err != nil {
			return nil, err
		}
		result[client.ID] = client
	}
	return result, rows.Err()
}

func scanClient(row pgx.Row, client *domain.Client) error {
	return row.Scan(
		&client.ID,
		&client.Name,
		&client.Document,
		&client.IsVIP,
		&client.IsActive,
		&client.CreatedAt,
		&client.UpdatedAt,
	)
}
