package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
)

// HistoryRepository reads the append-only audit trail. Writes happen inside
// the ticket repository's transactional mutations.
type HistoryRepository interface {
	ListByTicket(ctx context.Context, ticketID string) ([]domain.HistoryEntry, error)
}

type historyRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository builds repository.
func NewHistoryRepository(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepository{pool: pool}
}

func (r *historyRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.HistoryEntry, error) {
	const query = `
        SELECT h.id, h.ticket_id, h.kind, h.from_status, h.to_status, h.from_area_id, h.to_area_id,
               h.agent_id, COALESCE(a.name, ''), h.notes, h.created_at
        FROM ticket_history h
        LEFT JOIN agents a ON a.id = h.agent_id
        WHERE h.ticket_id=$1 ORDER BY h.created_at ASC, h.id ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.Kind,
			&entry.FromStatus,
			&entry.ToStatus,
			&entry.FromAreaID,
			&entry.ToAreaID,
			&entry.AgentID,
			&entry.AgentName,
			&entry.Notes,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
