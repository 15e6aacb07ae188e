package dto

import (
	"time"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
)

// CreateCustomFieldRequest payload.
type CreateCustomFieldRequest struct {
	Label       string            `json:"label"`
	Type        domain.FieldType  `json:"type"`
	Required    bool              `json:"required"`
	EntityType  domain.FieldScope `json:"entity_type"`
	EntityID    string            `json:"entity_id"`
	Options     []string          `json:"options"`
	Description string            `json:"description"`
}

// CustomFieldResponse describes one definition.
type CustomFieldResponse struct {
	ID          string            `json:"id"`
	Label       string            `json:"label"`
	Type        domain.FieldType  `json:"type"`
	Required    bool              `json:"required"`
	EntityType  domain.FieldScope `json:"entity_type"`
	EntityID    string            `json:"entity_id"`
	Options     []string          `json:"options"`
	Description string            `json:"description,omitempty"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
}

// NewCustomFieldResponse maps a definition.
func NewCustomFieldResponse(def domain.CustomFieldDefinition) CustomFieldResponse {
	return CustomFieldResponse{
		ID:          def.ID,
		Label:       def.Label,
		Type:        def.Type,
		Required:    def.Required,
		EntityType:  def.Scope,
		EntityID:    def.ScopeID,
		Options:     def.Options,
		Description: def.Description,
		IsActive:    def.IsActive,
		CreatedAt:   def.CreatedAt,
	}
}

// NewCustomFieldListResponse maps a definition slice.
func NewCustomFieldListResponse(defs []domain.CustomFieldDefinition) []CustomFieldResponse {
	out := make([]CustomFieldResponse, 0, len(defs))
	for _, def := range defs {
		out = append(out, NewCustomFieldResponse(def))
	}
	return out
}
