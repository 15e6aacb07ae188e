package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
)

// ErrVersionConflict indicates a workflow mutation targeted a stale ticket
// version; the caller must reload and retry.
var ErrVersionConflict = errors.New("ticket version conflict")

// TicketFilter captures listing parameters.
type TicketFilter struct {
	AreaID      *string
	ClientID    *string
	Statuses    []domain.TicketStatus
	Impacts     []domain.ImpactLevel
	Category    *string
	SearchTerm  *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Limit       int
	Offset      int
}

// WorkflowMutation bundles the pieces committed as one atomic unit: the
// mutated ticket keyed on its previous updated_at, the history entry, the
// evidence attachments to link, and any submitted custom field values.
type WorkflowMutation struct {
	Ticket        *domain.Ticket
	PrevUpdatedAt time.Time
	Entry         *domain.HistoryEntry
	AttachmentIDs []string
	FieldValues   []domain.CustomFieldValue
}

// TicketRepository encapsulates ticket persistence.
type TicketRepository interface {
	CreateWithHistory(ctx context.Context, ticket *domain.Ticket, entry *domain.HistoryEntry, values []domain.CustomFieldValue) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	GetByExternalKey(ctx context.Context, key string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	ApplyWorkflowMutation(ctx context.Context, mutation WorkflowMutation) error
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, external_key, origin_channel, origin_contact, origin_ref,
               client_id, product_id, area_id, category, subcategory, impact, description,
               status, created_at, updated_at, frozen_sla_tier, frozen_sla_hours`

func (r *ticketRepository) CreateWithHistory(ctx context.Context, ticket *domain.Ticket, entry *domain.HistoryEntry, values []domain.CustomFieldValue) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const insertTicket = `
        INSERT INTO tickets (external_key, origin_channel, origin_contact, origin_ref,
            client_id, product_id, area_id, category, subcategory, impact, description, status)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	if err := tx.QueryRow(ctx, insertTicket,
		ticket.ExternalKey,
		ticket.OriginChannel,
		ticket.OriginContact,
		ticket.OriginRef,
		ticket.ClientID,
		ticket.ProductID,
		ticket.AreaID,
		ticket.Category,
		ticket.Subcategory,
		ticket.Impact,
		ticket.Description,
		ticket.Status,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt); err != nil {
		return err
	}

	entry.TicketID = ticket.ID
	if err := insertHistoryEntry(ctx, tx, entry); err != nil {
		return err
	}
	if err := upsertFieldValues(ctx, tx, ticket.ID, values); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE id=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, id)
}

func (r *ticketRepository) GetByExternalKey(ctx context.Context, key string) (*domain.Ticket, error) {
	query := fmt.Sprintf(`SELECT %s FROM tickets WHERE external_key=$1`, ticketColumns)
	return r.fetchSingle(ctx, query, key)
}

func (r *ticketRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Ticket, error) {
	var ticket domain.Ticket
	if err := scanTicket(r.pool.QueryRow(ctx, query, arg), &ticket); err != nil {
		return nil, err
	}
	return &ticket, nil
}

// ApplyWorkflowMutation commits a status change or transfer atomically. The
// ticket row is updated with a conditional write keyed on updated_at; a stale
// version yields ErrVersionConflict and nothing is committed.
func (r *ticketRepository) ApplyWorkflowMutation(ctx context.Context, mutation WorkflowMutation) error {
	ticket := mutation.Ticket

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	const update = `
        UPDATE tickets
        SET status=$1, area_id=$2, frozen_sla_tier=$3, frozen_sla_hours=$4, updated_at=NOW()
        WHERE id=$5 AND updated_at=$6
        RETURNING updated_at`
	if err := tx.QueryRow(ctx, update,
		ticket.Status,
		ticket.AreaID,
		ticket.FrozenSLATier,
		ticket.FrozenSLAHours,
		ticket.ID,
		mutation.PrevUpdatedAt,
	).Scan(&ticket.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return r.classifyMissedUpdate(ctx, ticket.ID)
		}
		return err
	}

	entry := mutation.Entry
	entry.TicketID = ticket.ID
	if err := insertHistoryEntry(ctx, tx, entry); err != nil {
		return err
	}
	if len(mutation.AttachmentIDs) > 0 {
		const link = `
            UPDATE attachments SET history_entry_id=$1
            WHERE ticket_id=$2 AND id = ANY($3)`
		if _, err := tx.Exec(ctx, link, entry.ID, ticket.ID, mutation.AttachmentIDs); err != nil {
			return err
		}
	}
	if err := upsertFieldValues(ctx, tx, ticket.ID, mutation.FieldValues); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *ticketRepository) classifyMissedUpdate(ctx context.Context, ticketID string) error {
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM tickets WHERE id=$1)`, ticketID,
	).Scan(&exists); err != nil {
		return err
	}
	if exists {
		return ErrVersionConflict
	}
	return pgx.ErrNoRows
}

func insertHistoryEntry(ctx context.Context, tx pgx.Tx, entry *domain.HistoryEntry) error {
	const query = `
        INSERT INTO ticket_history (ticket_id, kind, from_status, to_status, from_area_id, to_area_id, agent_id, notes)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`
	return tx.QueryRow(ctx, query,
		entry.TicketID,
		entry.Kind,
		entry.FromStatus,
		entry.ToStatus,
		entry.FromAreaID,
		entry.ToAreaID,
		entry.AgentID,
		entry.Notes,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func upsertFieldValues(ctx context.Context, tx pgx.Tx, ticketID string, values []domain.CustomFieldValue) error {
	const query = `
        INSERT INTO ticket_field_values (ticket_id, field_id, value)
        VALUES ($1,$2,$3)
        ON CONFLICT (ticket_id, field_id) DO UPDATE SET value = EXCLUDED.value`
	for i := range values {
		values[i].TicketID = ticketID
		if _, err := tx.Exec(ctx, query, ticketID, values[i].FieldID, values[i].Value); err != nil {
			return err
		}
	}
	return nil
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	base := fmt.Sprintf(`SELECT %s FROM tickets`, ticketColumns)
	clauses := []string{"1=1"}
	args := []any{}

	if filter.AreaID != nil {
		args = append(args, *filter.AreaID)
		clauses = append(clauses, fmt.Sprintf("area_id=$%d", len(args)))
	}
	if filter.ClientID != nil {
		args = append(args, *filter.ClientID)
		clauses = append(clauses, fmt.Sprintf("client_id=$%d", len(args)))
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		clauses = append(clauses, fmt.Sprintf("category=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Impacts) > 0 {
		placeholders := make([]string, len(filter.Impacts))
		for i, impact := range filter.Impacts {
			args = append(args, impact)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("impact IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.CreatedFrom != nil {
		args = append(args, *filter.CreatedFrom)
		clauses = append(clauses, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedTo != nil {
		args = append(args, *filter.CreatedTo)
		clauses = append(clauses, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	if filter.SearchTerm != nil && strings.TrimSpace(*filter.SearchTerm) != "" {
		search := "%" + strings.ToLower(strings.TrimSpace(*filter.SearchTerm)) + "%"
		args = append(args, search)
		placeholder := fmt.Sprintf("$%d", len(args))
		clauses = append(clauses, fmt.Sprintf("(LOWER(description) LIKE %s OR LOWER(origin_contact) LIKE %s OR external_key ILIKE %s)", placeholder, placeholder, placeholder))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY updated_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func scanTickets(rows pgx.Rows) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for rows.Next() {
		var ticket domain.Ticket
		if err := scanTicket(rows, &ticket); err != nil {
			return nil, err
		}
		result = append(result, ticket)
	}
	return result, rows.Err()
}

func scanTicket(row pgx.Row, ticket *domain.Ticket) error {
	return row.Scan(
		&ticket.ID,
		&ticket.ExternalKey,
		&ticket.OriginChannel,
		&ticket.OriginContact,
		&ticket.OriginRef,
		&ticket.ClientID,
		&ticket.ProductID,
		&ticket.AreaID,
		&ticket.Category,
		&ticket.Subcategory,
		&ticket.Impact,
		&ticket.Description,
		&ticket.Status,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
		&ticket.FrozenSLATier,
		&ticket.FrozenSLAHours,
	)
}
