package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
	"github.com/rolfmarquardtjr/clickticket/internal/events"
	"github.com/rolfmarquardtjr/clickticket/internal/repository"
	apperrors "github.com/rolfmarquardtjr/clickticket/pkg/util"
)

// CustomFieldDirectory supplies the field definitions applicable to a scope
// and the values recorded against a ticket.
type CustomFieldDirectory interface {
	ListActive(ctx context.Context, scope domain.FieldScope, scopeID string) ([]domain.CustomFieldDefinition, error)
	ValuesForTicket(ctx context.Context, ticketID string) ([]domain.CustomFieldValue, error)
}

// TicketService is the workflow engine: it drives tickets through the status
// graph and across areas, gating every transition behind the evidence rules
// and appending to the immutable history.
type TicketService struct {
	tickets     repository.TicketRepository
	history     repository.HistoryRepository
	attachments repository.AttachmentRepository
	areas       repository.AreaRepository
	clients     repository.ClientRepository
	products    repository.ProductRepository
	fields      CustomFieldDirectory
	sla         *SLAResolver
	gate        *EvidenceGate
	dispatcher  events.Dispatcher
	now         func() time.Time
}

// TicketDependencies bundles collaborators for the workflow engine.
type TicketDependencies struct {
	TicketRepo     repository.TicketRepository
	HistoryRepo    repository.HistoryRepository
	AttachmentRepo repository.AttachmentRepository
	AreaRepo       repository.AreaRepository
	ClientRepo     repository.ClientRepository
	ProductRepo    repository.ProductRepository
	FieldDirectory CustomFieldDirectory
	SLAResolver    *SLAResolver
	Dispatcher     events.Dispatcher
}

// TicketCreateInput describes ticket creation payload.
type TicketCreateInput struct {
	OriginChannel domain.OriginChannel
	OriginContact string
	OriginRef     string
	ClientID      string
	ProductID     *string
	AreaID        string
	Category      string
	Subcategory   string
	Impact        domain.ImpactLevel
	Description   string
	FieldValues   map[string]string
}

// NewTicketService constructs the engine.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:     deps.TicketRepo,
		history:     deps.HistoryRepo,
		attachments: deps.AttachmentRepo,
		areas:       deps.AreaRepo,
		clients:     deps.ClientRepo,
		products:    deps.ProductRepo,
		fields:      deps.FieldDirectory,
		sla:         deps.SLAResolver,
		gate:        NewEvidenceGate(),
		dispatcher:  deps.Dispatcher,
		now:         time.Now,
	}
}

// CreateTicket opens a ticket in status novo and writes the creation history
// entry. High-impact tickets require a description of at least 20 characters;
// category-scoped required fields must be satisfied.
func (s *TicketService) CreateTicket(ctx context.Context, agent *domain.Agent, input TicketCreateInput) (*TicketView, error) {
	if agent == nil {
		return nil, apperrors.NewUnauthorized("agent required")
	}
	if !domain.IsValidImpact(input.Impact) {
		return nil, apperrors.NewValidationError("invalid impact level", map[string]any{"impact": input.Impact})
	}
	description := strings.TrimSpace(input.Description)
	if input.Impact == domain.ImpactAlto && utf8.RuneCountInString(description) < domain.HighImpactMinDescription {
		return nil, apperrors.NewValidationError("high impact tickets require a detailed description",
			map[string]any{"min_length": domain.HighImpactMinDescription})
	}

	area, err := s.areas.GetByID(ctx, input.AreaID)
	if err != nil {
		return nil, s.storeFailure("area", err)
	}
	if !area.IsActive {
		return nil, apperrors.NewValidationError("area inactive", map[string]any{"area_id": area.ID})
	}
	client, err := s.clients.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, s.storeFailure("client", err)
	}
	if input.ProductID != nil {
		product, err := s.products.GetByID(ctx, *input.ProductID)
		if err != nil {
			return nil, s.storeFailure("product", err)
		}
		if !product.IsActive {
			return nil, apperrors.NewValidationError("product inactive", map[string]any{"product_id": product.ID})
		}
	}

	values, err := s.checkRequiredFields(ctx, domain.FieldScopeCategory, input.Category, input.FieldValues)
	if err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		ExternalKey:   generateTicketKey(),
		OriginChannel: input.OriginChannel,
		OriginContact: strings.TrimSpace(input.OriginContact),
		OriginRef:     strings.TrimSpace(input.OriginRef),
		ClientID:      client.ID,
		ProductID:     input.ProductID,
		AreaID:        area.ID,
		Category:      strings.TrimSpace(input.Category),
		Subcategory:   strings.TrimSpace(input.Subcategory),
		Impact:        input.Impact,
		Description:   description,
		Status:        domain.TicketStatusNovo,
	}
	if ticket.OriginChannel == "" {
		ticket.OriginChannel = domain.OriginManual
	}

	status := ticket.Status
	entry := &domain.HistoryEntry{
		Kind:     domain.EntryKindCreation,
		ToStatus: &status,
		AgentID:  &agent.ID,
	}
	if err := s.tickets.CreateWithHistory(ctx, ticket, entry, values); err != nil {
		return nil, s.storeFailure("ticket store", err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketCreated,
		TicketID: ticket.ID,
		AgentID:  agent.ID,
		Payload: events.TicketCreatedPayload{
			AreaID:   ticket.AreaID,
			ClientID: ticket.ClientID,
			Impact:   ticket.Impact,
		},
	})
	return s.viewFor(ctx, ticket, client.IsVIP)
}

// ChangeStatus moves a ticket along one edge of the transition graph. The
// mutation and its history entry commit as a single atomic unit.
func (s *TicketService) ChangeStatus(ctx context.Context, agent *domain.Agent, ticketID string, target domain.TicketStatus, notes string, attachmentIDs []string) (*TicketView, error) {
	if agent == nil {
		return nil, apperrors.NewUnauthorized("agent required")
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.IsClosed() {
		return nil, apperrors.NewTicketClosed(ticket.ID)
	}
	if !domain.CanTransition(ticket.Status, target) {
		return nil, apperrors.NewInvalidTransition(string(ticket.Status), string(target))
	}
	evidence, err := s.checkEvidence(ctx, ticket, notes, attachmentIDs)
	if err != nil {
		return nil, err
	}

	from := ticket.Status
	prevUpdatedAt := ticket.UpdatedAt
	ticket.Status = target

	// Closing stops the SLA clock: snapshot the tier at this moment.
	if domain.IsTerminal(target) {
		result, err := s.sla.Evaluate(ctx, ticket)
		if err != nil {
			return nil, s.storeFailure("sla policy store", err)
		}
		tier := result.Tier
		hours := result.HoursRemaining
		ticket.FrozenSLATier = &tier
		ticket.FrozenSLAHours = &hours
	}

	trimmed := strings.TrimSpace(notes)
	entry := &domain.HistoryEntry{
		Kind:       domain.EntryKindStatusChange,
		FromStatus: &from,
		ToStatus:   &target,
		AgentID:    &agent.ID,
		Notes:      &trimmed,
	}
	mutation := repository.WorkflowMutation{
		Ticket:        ticket,
		PrevUpdatedAt: prevUpdatedAt,
		Entry:         entry,
		AttachmentIDs: evidence,
	}
	if err := s.tickets.ApplyWorkflowMutation(ctx, mutation); err != nil {
		return nil, s.mutationFailure(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketStatusChanged,
		TicketID: ticket.ID,
		AgentID:  agent.ID,
		Payload: events.TicketStatusChangedPayload{
			FromStatus: from,
			ToStatus:   target,
			Notes:      trimmed,
		},
	})
	return s.viewWithClient(ctx, ticket)
}

// TransferArea moves a ticket into another area. The status is untouched;
// area and status are independent axes. The target area's required custom
// fields must be satisfied, and the same evidence rules apply as for a
// status change.
func (s *TicketService) TransferArea(ctx context.Context, agent *domain.Agent, ticketID, targetAreaID, notes string, attachmentIDs []string, fieldValues map[string]string) (*TicketView, error) {
	if agent == nil {
		return nil, apperrors.NewUnauthorized("agent required")
	}
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.IsClosed() {
		return nil, apperrors.NewTicketClosed(ticket.ID)
	}
	if ticket.AreaID == targetAreaID {
		return nil, apperrors.NewSameArea(targetAreaID)
	}
	area, err := s.areas.GetByID(ctx, targetAreaID)
	if err != nil {
		return nil, s.storeFailure("area", err)
	}
	if !area.IsActive {
		return nil, apperrors.NewValidationError("area inactive", map[string]any{"area_id": area.ID})
	}
	evidence, err := s.checkEvidence(ctx, ticket, notes, attachmentIDs)
	if err != nil {
		return nil, err
	}
	values, err := s.checkRequiredFields(ctx, domain.FieldScopeArea, area.ID, fieldValues)
	if err != nil {
		return nil, err
	}

	fromArea := ticket.AreaID
	prevUpdatedAt := ticket.UpdatedAt
	ticket.AreaID = area.ID

	trimmed := strings.TrimSpace(notes)
	entry := &domain.HistoryEntry{
		Kind:       domain.EntryKindTransfer,
		FromAreaID: &fromArea,
		ToAreaID:   &ticket.AreaID,
		AgentID:    &agent.ID,
		Notes:      &trimmed,
	}
	mutation := repository.WorkflowMutation{
		Ticket:        ticket,
		PrevUpdatedAt: prevUpdatedAt,
		Entry:         entry,
		AttachmentIDs: evidence,
		FieldValues:   values,
	}
	if err := s.tickets.ApplyWorkflowMutation(ctx, mutation); err != nil {
		return nil, s.mutationFailure(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventTicketTransferred,
		TicketID: ticket.ID,
		AgentID:  agent.ID,
		Payload: events.TicketTransferredPayload{
			FromAreaID: fromArea,
			ToAreaID:   ticket.AreaID,
			Notes:      trimmed,
		},
	})
	return s.viewWithClient(ctx, ticket)
}

// TicketDetail is the full read model for a single ticket: the view, the
// ordered history with nested attachment metadata, and the recorded custom
// field values.
type TicketDetail struct {
	View        TicketView
	History     []domain.HistoryEntry
	FieldValues []domain.CustomFieldValue
}

// GetTicket returns the ticket detail.
func (s *TicketService) GetTicket(ctx context.Context, ticketID string) (*TicketDetail, error) {
	ticket, err := s.loadTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	entries, err := s.history.ListByTicket(ctx, ticket.ID)
	if err != nil {
		return nil, s.storeFailure("history store", err)
	}
	for i := range entries {
		attachments, err := s.attachments.ListByEntry(ctx, entries[i].ID)
		if err != nil {
			return nil, s.storeFailure("attachment store", err)
		}
		entries[i].Attachments = attachments
	}
	values, err := s.fields.ValuesForTicket(ctx, ticket.ID)
	if err != nil {
		return nil, apperrors.NewDependencyUnavailable("custom field directory", err)
	}
	view, err := s.viewWithClient(ctx, ticket)
	if err != nil {
		return nil, err
	}
	return &TicketDetail{View: *view, History: entries, FieldValues: values}, nil
}

// ListTickets returns ticket views matching the filter, SLA included.
func (s *TicketService) ListTickets(ctx context.Context, filter repository.TicketFilter) ([]TicketView, error) {
	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, s.storeFailure("ticket store", err)
	}
	return s.viewsFor(ctx, tickets)
}

// boardPageSize bounds each query while the projection walks the full set.
const boardPageSize = 200

// Board projects tickets onto the given columns. A nil areaID yields the
// all-areas overview with its risk and VIP aggregates. Pages through the
// whole filtered set so counts and aggregates stay exact on large boards.
func (s *TicketService) Board(ctx context.Context, areaID *string, columns []BoardColumn) ([]BoardColumnView, error) {
	var views []TicketView
	for offset := 0; ; offset += boardPageSize {
		page, err := s.ListTickets(ctx, repository.TicketFilter{AreaID: areaID, Limit: boardPageSize, Offset: offset})
		if err != nil {
			return nil, err
		}
		views = append(views, page...)
		if len(page) < boardPageSize {
			break
		}
	}
	return ProjectBoard(views, columns), nil
}

func (s *TicketService) loadTicket(ctx context.Context, ticketID string) (*domain.Ticket, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("ticket", map[string]any{"ticket_id": ticketID})
		}
		return nil, apperrors.NewDependencyUnavailable("ticket store", err)
	}
	return ticket, nil
}

// checkEvidence runs the gate over the notes and the referenced pre-uploaded
// attachments, returning the validated attachment ids.
func (s *TicketService) checkEvidence(ctx context.Context, ticket *domain.Ticket, notes string, attachmentIDs []string) ([]string, error) {
	attachments, err := s.attachments.GetForTicket(ctx, ticket.ID, attachmentIDs)
	if err != nil {
		return nil, s.storeFailure("attachment store", err)
	}
	if len(attachments) != len(attachmentIDs) {
		return nil, apperrors.NewValidationError("unknown attachment ids",
			map[string]any{"submitted": len(attachmentIDs), "found": len(attachments)})
	}

	files := make([]CandidateFile, 0, len(attachments))
	ids := make([]string, 0, len(attachments))
	for _, att := range attachments {
		files = append(files, CandidateFile{Name: att.OriginalName, MimeType: att.MimeType, Size: att.SizeBytes})
		ids = append(ids, att.ID)
	}

	result := s.gate.Check(notes, files)
	if !result.OK {
		details := map[string]any{}
		if len(result.Rejected) > 0 {
			rejected := make([]map[string]any, 0, len(result.Rejected))
			for _, rej := range result.Rejected {
				rejected = append(rejected, map[string]any{"file": rej.Name, "reason": rej.Reason})
			}
			details["files"] = rejected
		}
		return nil, apperrors.NewEvidenceRejected(result.Reason, details)
	}
	return ids, nil
}

func (s *TicketService) checkRequiredFields(ctx context.Context, scope domain.FieldScope, scopeID string, submitted map[string]string) ([]domain.CustomFieldValue, error) {
	definitions, err := s.fields.ListActive(ctx, scope, scopeID)
	if err != nil {
		return nil, apperrors.NewDependencyUnavailable("custom field directory", err)
	}
	result := ValidateFieldValues(definitions, submitted)
	if !result.OK {
		return nil, apperrors.NewMissingRequiredFields(result.UnmetFieldIDs())
	}

	values := make([]domain.CustomFieldValue, 0, len(submitted))
	for fieldID, value := range submitted {
		values = append(values, domain.CustomFieldValue{FieldID: fieldID, Value: strings.TrimSpace(value)})
	}
	return values, nil
}

func (s *TicketService) viewWithClient(ctx context.Context, ticket *domain.Ticket) (*TicketView, error) {
	client, err := s.clients.GetByID(ctx, ticket.ClientID)
	if err != nil {
		return nil, s.storeFailure("client", err)
	}
	return s.viewFor(ctx, ticket, client.IsVIP)
}

func (s *TicketService) viewFor(ctx context.Context, ticket *domain.Ticket, vip bool) (*TicketView, error) {
	result, err := s.sla.Evaluate(ctx, ticket)
	if err != nil {
		return nil, s.storeFailure("sla policy store", err)
	}
	return &TicketView{Ticket: *ticket, SLA: result, ClientVIP: vip}, nil
}

func (s *TicketService) viewsFor(ctx context.Context, tickets []domain.Ticket) ([]TicketView, error) {
	clientIDs := make([]string, 0, len(tickets))
	seen := make(map[string]bool, len(tickets))
	for i := range tickets {
		if !seen[tickets[i].ClientID] {
			seen[tickets[i].ClientID] = true
			clientIDs = append(clientIDs, tickets[i].ClientID)
		}
	}
	clients, err := s.clients.GetByIDs(ctx, clientIDs)
	if err != nil {
		return nil, s.storeFailure("client", err)
	}

	views := make([]TicketView, 0, len(tickets))
	for i := range tickets {
		view, err := s.viewFor(ctx, &tickets[i], clients[tickets[i].ClientID].IsVIP)
		if err != nil {
			return nil, err
		}
		views = append(views, *view)
	}
	return views, nil
}

func (s *TicketService) storeFailure(dependency string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound(dependency, nil)
	}
	return apperrors.NewDependencyUnavailable(dependency, err)
}

func (s *TicketService) mutationFailure(err error) error {
	if errors.Is(err, repository.ErrVersionConflict) {
		return apperrors.NewConflict("ticket was modified concurrently; reload and retry", nil)
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("ticket", nil)
	}
	return apperrors.NewDependencyUnavailable("ticket store", err)
}

func generateTicketKey() string {
	return "CT-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

func (s *TicketService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
