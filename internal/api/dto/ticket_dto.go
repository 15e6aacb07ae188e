package dto

import (
	"time"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
	"github.com/rolfmarquardtjr/clickticket/internal/service"
)

// CreateTicketRequest payload.
type CreateTicketRequest struct {
	OriginChannel     domain.OriginChannel `json:"origin_channel"`
	OriginContact     string               `json:"origin_contact"`
	OriginRef         string               `json:"origin_ref"`
	ClientID          string               `json:"client_id"`
	ProductID         *string              `json:"product_id"`
	AreaID            string               `json:"area_id"`
	Category          string               `json:"category"`
	Subcategory       string               `json:"subcategory"`
	Impact            domain.ImpactLevel   `json:"impact"`
	Description       string               `json:"description"`
	CustomFieldValues map[string]string    `json:"custom_field_values"`
}

// ChangeStatusRequest payload for PATCH /tickets/:id/status.
type ChangeStatusRequest struct {
	Status        domain.TicketStatus `json:"status"`
	Notes         string              `json:"notes"`
	AttachmentIDs []string            `json:"attachment_ids"`
}

// TransferRequest payload for PATCH /tickets/:id/transfer.
type TransferRequest struct {
	AreaID            string            `json:"area_id"`
	Notes             string            `json:"notes"`
	AttachmentIDs     []string          `json:"attachment_ids"`
	CustomFieldValues map[string]string `json:"custom_field_values"`
}

// TicketListQuery captures query filters for listing endpoints.
type TicketListQuery struct {
	AreaID      *string
	ClientID    *string
	Statuses    []domain.TicketStatus
	Impacts     []domain.ImpactLevel
	Category    *string
	Search      *string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	Page        int
	PageSize    int
}

// TicketResponse is the ticket representation with its SLA snapshot.
type TicketResponse struct {
	ID                string               `json:"id"`
	ExternalKey       string               `json:"external_key"`
	OriginChannel     domain.OriginChannel `json:"origin_channel"`
	ClientID          string               `json:"client_id"`
	ClientVIP         bool                 `json:"client_vip"`
	ProductID         *string              `json:"product_id"`
	AreaID            string               `json:"area_id"`
	Category          string               `json:"category"`
	Subcategory       string               `json:"subcategory"`
	Impact            domain.ImpactLevel   `json:"impact"`
	Description       string               `json:"description"`
	Status            domain.TicketStatus  `json:"status"`
	SLAStatus         domain.SLATier       `json:"sla_status"`
	SLAHoursRemaining int                  `json:"sla_hours_remaining"`
	SLADeadline       time.Time            `json:"sla_deadline"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         time.Time            `json:"updated_at"`
}

// TicketDetailResponse adds the ordered history and recorded field values.
type TicketDetailResponse struct {
	TicketResponse
	History           []HistoryEntryResponse `json:"history"`
	CustomFieldValues map[string]string      `json:"custom_field_values"`
}

// HistoryEntryResponse is one audit record.
type HistoryEntryResponse struct {
	ID          string               `json:"id"`
	Kind        domain.EntryKind     `json:"kind"`
	FromStatus  *domain.TicketStatus `json:"from_status"`
	ToStatus    *domain.TicketStatus `json:"to_status"`
	FromAreaID  *string              `json:"from_area_id"`
	ToAreaID    *string              `json:"to_area_id"`
	ChangedBy   *string              `json:"changed_by"`
	ChangedName string               `json:"changed_by_name"`
	Notes       *string              `json:"notes"`
	Attachments []AttachmentResponse `json:"attachments"`
	ChangedAt   time.Time            `json:"changed_at"`
}

// AttachmentResponse metadata.
type AttachmentResponse struct {
	ID           string    `json:"id"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	SizeBytes    int64     `json:"size_bytes"`
	CreatedAt    time.Time `json:"created_at"`
}

// UploadResponse reports the per-file outcome of an upload batch.
type UploadResponse struct {
	Accepted []AttachmentResponse `json:"accepted"`
	Rejected []RejectedFile       `json:"rejected"`
}

// RejectedFile names a file that failed validation and why.
type RejectedFile struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// NewTicketResponse maps a service view.
func NewTicketResponse(view service.TicketView) TicketResponse {
	t := view.Ticket
	return TicketResponse{
		ID:                t.ID,
		ExternalKey:       t.ExternalKey,
		OriginChannel:     t.OriginChannel,
		ClientID:          t.ClientID,
		ClientVIP:         view.ClientVIP,
		ProductID:         t.ProductID,
		AreaID:            t.AreaID,
		Category:          t.Category,
		Subcategory:       t.Subcategory,
		Impact:            t.Impact,
		Description:       t.Description,
		Status:            t.Status,
		SLAStatus:         view.SLA.Tier,
		SLAHoursRemaining: view.SLA.HoursRemaining,
		SLADeadline:       view.SLA.Deadline,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// NewTicketDetailResponse maps the full ticket detail.
func NewTicketDetailResponse(detail *service.TicketDetail) TicketDetailResponse {
	history := make([]HistoryEntryResponse, 0, len(detail.History))
	for _, entry := range detail.History {
		history = append(history, NewHistoryEntryResponse(entry))
	}
	values := make(map[string]string, len(detail.FieldValues))
	for _, value := range detail.FieldValues {
		values[value.FieldID] = value.Value
	}
	return TicketDetailResponse{
		TicketResponse:    NewTicketResponse(detail.View),
		History:           history,
		CustomFieldValues: values,
	}
}

// NewHistoryEntryResponse maps one audit record.
func NewHistoryEntryResponse(entry domain.HistoryEntry) HistoryEntryResponse {
	attachments := make([]AttachmentResponse, 0, len(entry.Attachments))
	for _, att := range entry.Attachments {
		attachments = append(attachments, NewAttachmentResponse(att))
	}
	return HistoryEntryResponse{
		ID:          entry.ID,
		Kind:        entry.Kind,
		FromStatus:  entry.FromStatus,
		ToStatus:    entry.ToStatus,
		FromAreaID:  entry.FromAreaID,
		ToAreaID:    entry.ToAreaID,
		ChangedBy:   entry.AgentID,
		ChangedName: entry.AgentName,
		Notes:       entry.Notes,
		Attachments: attachments,
		ChangedAt:   entry.CreatedAt,
	}
}

// NewAttachmentResponse maps attachment metadata.
func NewAttachmentResponse(att domain.Attachment) AttachmentResponse {
	return AttachmentResponse{
		ID:           att.ID,
		OriginalName: att.OriginalName,
		MimeType:     att.MimeType,
		SizeBytes:    att.SizeBytes,
		CreatedAt:    att.CreatedAt,
	}
}

// NewUploadResponse maps an upload batch result.
func NewUploadResponse(result *service.UploadResult) UploadResponse {
	accepted := make([]AttachmentResponse, 0, len(result.Accepted))
	for _, att := range result.Accepted {
		accepted = append(accepted, NewAttachmentResponse(att))
	}
	rejected := make([]RejectedFile, 0, len(result.Rejected))
	for _, rej := range result.Rejected {
		rejected = append(rejected, RejectedFile{File: rej.Name, Reason: rej.Reason})
	}
	return UploadResponse{Accepted: accepted, Rejected: rejected}
}
