package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rolfmarquardtjr/clickticket/internal/api/dto"
	"github.com/rolfmarquardtjr/clickticket/internal/domain"
	"github.com/rolfmarquardtjr/clickticket/internal/service"
	apperrors "github.com/rolfmarquardtjr/clickticket/pkg/util"
)

// CustomFieldsHandler manages dynamic field definitions.
type CustomFieldsHandler struct {
	fields *service.CustomFieldService
}

// NewCustomFieldsHandler constructs handler.
func NewCustomFieldsHandler(fieldService *service.CustomFieldService) *CustomFieldsHandler {
	return &CustomFieldsHandler{fields: fieldService}
}

// List GET /custom-fields?entity_type=&entity_id=&active=.
func (h *CustomFieldsHandler) List(c *fiber.Ctx) error {
	scope := domain.FieldScope(c.Query("entity_type"))
	scopeID := c.Query("entity_id")
	if !domain.IsValidFieldScope(scope) || scopeID == "" {
		return apperrors.NewValidationError("entity_type and entity_id required", nil)
	}
	activeOnly := c.Query("active", "true") != "false"

	defs, err := h.fields.List(c.Context(), scope, scopeID, activeOnly)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCustomFieldListResponse(defs)})
}

// Get GET /custom-fields/:id.
func (h *CustomFieldsHandler) Get(c *fiber.Ctx) error {
	def, err := h.fields.GetDefinition(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCustomFieldResponse(*def)})
}

// Create POST /custom-fields (admin only).
func (h *CustomFieldsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCustomFieldRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	def, err := h.fields.CreateDefinition(c.Context(), service.FieldDefinitionInput{
		Label:       req.Label,
		Type:        req.Type,
		Required:    req.Required,
		Scope:       req.EntityType,
		ScopeID:     req.EntityID,
		Options:     req.Options,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewCustomFieldResponse(*def)})
}
