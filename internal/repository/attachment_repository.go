package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
)

// AttachmentRepository persists attachment metadata.
type AttachmentRepository interface {
	Create(ctx context.Context, attachment *domain.Attachment) error
	GetByID(ctx context.Context, id string) (*domain.Attachment, error)
	GetForTicket(ctx context.Context, ticketID string, ids []string) ([]domain.Attachment, error)
	ListByEntry(ctx context.Context, entryID string) ([]domain.Attachment, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.Attachment, error)
	Delete(ctx context.Context, id string) error
}

type attachmentRepository struct {
	pool *pgxpool.Pool
}

// NewAttachmentRepository constructs repository.
func NewAttachmentRepository(pool *pgxpool.Pool) AttachmentRepository {
	return &attachmentRepository{pool: pool}
}

const attachmentColumns = `id, ticket_id, history_entry_id, storage_key, original_name, mime_type, size_bytes, uploader_id, created_at`

func (r *attachmentRepository) Create(ctx context.Context, attachment *domain.Attachment) error {
	const query = `
        INSERT INTO attachments (ticket_id, history_entry_id, storage_key, original_name, mime_type, size_bytes, uploader_id)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		attachment.TicketID,
		attachment.HistoryEntryID,
		attachment.StorageKey,
		attachment.OriginalName,
		attachment.MimeType,
		attachment.SizeBytes,
		attachment.UploaderID,
	).Scan(&attachment.ID, &attachment.CreatedAt)
}

func (r *attachmentRepository) GetByID(ctx context.Context, id string) (*domain.Attachment, error) {
	query := `
        SELECT ` + attachmentColumns + `
        FROM attachments WHERE id=$1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result, err := scanAttachments(rows)
	if err != nil {
		return nil, err
	}
	if len(result) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &result[0], nil
}

// GetForTicket loads the given attachment ids, restricted to the ticket that
// owns them. A missing or foreign id is simply absent from the result.
func (r *attachmentRepository) GetForTicket(ctx context.Context, ticketID string, ids []string) ([]domain.Attachment, error) {
	if len(ids) == 0 {
		return []domain.Attachment{}, nil
	}
	query := `
        SELECT ` + attachmentColumns + `
        FROM attachments WHERE ticket_id=$1 AND id = ANY($2)`
	rows, err := r.pool.Query(ctx, query, ticketID, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttachments(rows)
}

func (r *attachmentRepository) ListByEntry(ctx context.Context, entryID string) ([]domain.Attachment, error) {
	query := `
        SELECT ` + attachmentColumns + `
        FROM attachments WHERE history_entry_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttachments(rows)
}

func (r *attachmentRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.Attachment, error) {
	query := `
        SELECT ` + attachmentColumns + `
        FROM attachments WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAttachments(rows)
}

func (r *attachmentRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM attachments WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanAttachments(rows pgx.Rows) ([]domain.Attachment, error) {
	var result []domain.Attachment
	for rows.Next() {
		var attachment domain.Attachment
		if err := rows.Scan(
			&attachment.ID,
			&attachment.TicketID,
			&attachment.HistoryEntryID,
			&attachment.StorageKey,
			&attachment.OriginalName,
			&attachment.MimeType,
			&attachment.SizeBytes,
			&attachment.UploaderID,
			&attachment.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, attachment)
	}
	return result, rows.Err()
}
