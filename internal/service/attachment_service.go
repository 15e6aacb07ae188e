package service

import (
	"context"
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
	"github.com/rolfmarquardtjr/clickticket/internal/persistence"
	"github.com/rolfmarquardtjr/clickticket/internal/repository"
	apperrors "github.com/rolfmarquardtjr/clickticket/pkg/util"
)

// AttachmentService handles uploads. Upload is deliberately separate from the
// workflow mutation: the engine only ever receives pre-uploaded attachment
// ids, so upload failures never break transition atomicity.
type AttachmentService struct {
	tickets     repository.TicketRepository
	attachments repository.AttachmentRepository
	store       persistence.FileStore
}

// NewAttachmentService constructs the service.
func NewAttachmentService(tickets repository.TicketRepository, attachments repository.AttachmentRepository, store persistence.FileStore) *AttachmentService {
	return &AttachmentService{tickets: tickets, attachments: attachments, store: store}
}

// UploadFile is one candidate file in an upload batch.
type UploadFile struct {
	Name     string
	MimeType string
	Size     int64
	Content  io.Reader
}

// UploadResult reports the batch outcome: each file is accepted or rejected
// individually, so one oversized file does not sink the rest.
type UploadResult struct {
	Accepted []domain.Attachment
	Rejected []FileRejection
}

// Upload validates and stores a batch of files for a ticket. Evidence uploads
// use the stricter image/PDF 5MB rule; general uploads allow Office formats
// up to 10MB.
func (s *AttachmentService) Upload(ctx context.Context, agent *domain.Agent, ticketID string, files []UploadFile, evidence bool) (*UploadResult, error) {
	if agent == nil {
		return nil, apperrors.NewUnauthorized("agent required")
	}
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.NewDependencyUnavailable("ticket store", err)
	}

	check := CheckGeneralFile
	if evidence {
		check = CheckEvidenceFile
	}

	result := &UploadResult{}
	for _, file := range files {
		candidate := CandidateFile{Name: file.Name, MimeType: file.MimeType, Size: file.Size}
		if rejection := check(candidate); rejection != nil {
			result.Rejected = append(result.Rejected, *rejection)
			continue
		}

		key := uuid.NewString()
		if err := s.store.Save(key, file.Content); err != nil {
			return nil, apperrors.NewDependencyUnavailable("attachment store", err)
		}
		attachment := domain.Attachment{
			TicketID:     ticket.ID,
			StorageKey:   key,
			OriginalName: file.Name,
			MimeType:     file.MimeType,
			SizeBytes:    file.Size,
			UploaderID:   agent.ID,
		}
		if err := s.attachments.Create(ctx, &attachment); err != nil {
			_ = s.store.Remove(key)
			return nil, apperrors.NewDependencyUnavailable("attachment store", err)
		}
		result.Accepted = append(result.Accepted, attachment)
	}
	return result, nil
}

// Delete removes an attachment's metadata and stored bytes. Attachments are
// the only ticket artifact deletable independently.
func (s *AttachmentService) Delete(ctx context.Context, agent *domain.Agent, id string) error {
	if agent == nil {
		return apperrors.NewUnauthorized("agent required")
	}
	attachment, err := s.attachments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("attachment", map[string]any{"attachment_id": id})
		}
		return apperrors.NewDependencyUnavailable("attachment store", err)
	}
	if err := s.attachments.Delete(ctx, id); err != nil {
		return apperrors.NewDependencyUnavailable("attachment store", err)
	}
	if err := s.store.Remove(attachment.StorageKey); err != nil {
		return apperrors.NewDependencyUnavailable("attachment store", err)
	}
	return nil
}
