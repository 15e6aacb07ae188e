package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/rolfmarquardtjr/clickticket/internal/api/dto"
	"github.com/rolfmarquardtjr/clickticket/internal/auth"
	"github.com/rolfmarquardtjr/clickticket/internal/domain"
	"github.com/rolfmarquardtjr/clickticket/internal/repository"
	"github.com/rolfmarquardtjr/clickticket/internal/service"
	apperrors "github.com/rolfmarquardtjr/clickticket/pkg/util"
)

// TicketsHandler exposes the ticket workflow endpoints.
type TicketsHandler struct {
	tickets     *service.TicketService
	attachments *service.AttachmentService
}

// NewTicketsHandler constructs handler.
func NewTicketsHandler(ticketService *service.TicketService, attachmentService *service.AttachmentService) *TicketsHandler {
	return &TicketsHandler{tickets: ticketService, attachments: attachmentService}
}

// CreateTicket POST /tickets.
func (h *TicketsHandler) CreateTicket(c *fiber.Ctx) error {
	agent, ok := auth.AgentFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("agent required")
	}
	var req dto.CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.ClientID == "" || req.AreaID == "" || req.Description == "" {
		return apperrors.NewValidationError("client_id, area_id, description required", nil)
	}

	input := service.TicketCreateInput{
		OriginChannel: req.OriginChannel,
		OriginContact: req.OriginContact,
		OriginRef:     req.OriginRef,
		ClientID:      req.ClientID,
		ProductID:     req.ProductID,
		AreaID:        req.AreaID,
		Category:      req.Category,
		Subcategory:   req.Subcategory,
		Impact:        req.Impact,
		Description:   req.Description,
		FieldValues:   req.CustomFieldValues,
	}
	view, err := h.tickets.CreateTicket(c.Context(), agent, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewTicketResponse(*view)})
}

// ListTickets GET /tickets.
func (h *TicketsHandler) ListTickets(c *fiber.Ctx) error {
	if _, ok := auth.AgentFromContext(c); !ok {
		return apperrors.NewUnauthorized("agent required")
	}
	filter := parseTicketQuery(c)
	views, err := h.tickets.ListTickets(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.TicketResponse, 0, len(views))
	for i := range views {
		items = append(items, dto.NewTicketResponse(views[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetTicket GET /tickets/:id.
func (h *TicketsHandler) GetTicket(c *fiber.Ctx) error {
	if _, ok := auth.AgentFromContext(c); !ok {
		return apperrors.NewUnauthorized("agent required")
	}
	detail, err := h.tickets.GetTicket(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketDetailResponse(detail)})
}

// ChangeStatus PATCH /tickets/:id/status.
func (h *TicketsHandler) ChangeStatus(c *fiber.Ctx) error {
	agent, ok := auth.AgentFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("agent required")
	}
	var req dto.ChangeStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if !domain.IsValidStatus(req.Status) {
		return apperrors.NewValidationError("unknown status", map[string]any{"status": req.Status})
	}
	view, err := h.tickets.ChangeStatus(c.Context(), agent, c.Params("id"), req.Status, req.Notes, req.AttachmentIDs)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(*view)})
}

// Transfer PATCH /tickets/:id/transfer.
func (h *TicketsHandler) Transfer(c *fiber.Ctx) error {
	agent, ok := auth.AgentFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("agent required")
	}
	var req dto.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.AreaID == "" {
		return apperrors.NewValidationError("area_id required", nil)
	}
	view, err := h.tickets.TransferArea(c.Context(), agent, c.Params("id"), req.AreaID, req.Notes, req.AttachmentIDs, req.CustomFieldValues)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewTicketResponse(*view)})
}

// UploadAttachments POST /tickets/:id/attachments (multipart).
func (h *TicketsHandler) UploadAttachments(c *fiber.Ctx) error {
	agent, ok := auth.AgentFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("agent required")
	}
	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("multipart form required", nil)
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return apperrors.NewValidationError("at least one file required", nil)
	}
	evidence := c.Query("evidence") == "true"

	files := make([]service.UploadFile, 0, len(headers))
	opened := make([]func() error, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return apperrors.NewValidationError("unreadable file", map[string]any{"file": header.Filename})
		}
		opened = append(opened, f.Close)
		files = append(files, service.UploadFile{
			Name:     header.Filename,
			MimeType: header.Header.Get("Content-Type"),
			Size:     header.Size,
			Content:  f,
		})
	}
	defer func() {
		for _, close := range opened {
			_ = close()
		}
	}()

	result, err := h.attachments.Upload(c.Context(), agent, c.Params("id"), files, evidence)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewUploadResponse(result)})
}

// DeleteAttachment DELETE /tickets/:id/attachments/:attachmentID.
func (h *TicketsHandler) DeleteAttachment(c *fiber.Ctx) error {
	agent, ok := auth.AgentFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("agent required")
	}
	if err := h.attachments.Delete(c.Context(), agent, c.Params("attachmentID")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func parseTicketQuery(c *fiber.Ctx) repository.TicketFilter {
	filter := repository.TicketFilter{}
	if areaID := c.Query("area_id"); areaID != "" {
		filter.AreaID = &areaID
	}
	if clientID := c.Query("client_id"); clientID != "" {
		filter.ClientID = &clientID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.TicketStatus(strings.TrimSpace(part)))
		}
	}
	if impactStr := c.Query("impact"); impactStr != "" {
		for _, part := range strings.Split(impactStr, ",") {
			filter.Impacts = append(filter.Impacts, domain.ImpactLevel(strings.TrimSpace(part)))
		}
	}
	if category := c.Query("category"); category != "" {
		filter.Category = &category
	}
	if search := c.Query("search"); search != "" {
		filter.SearchTerm = &search
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
