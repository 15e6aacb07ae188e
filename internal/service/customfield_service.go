package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
	"github.com/rolfmarquardtjr/clickticket/internal/persistence"
	"github.com/rolfmarquardtjr/clickticket/internal/repository"
	apperrors "github.com/rolfmarquardtjr/clickticket/pkg/util"
)

// CustomFieldService is the field directory: it serves definitions per scope
// (with a redis cache in front of postgres) and handles admin creation.
type CustomFieldService struct {
	repo     repository.CustomFieldRepository
	cache    *persistence.Redis
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewCustomFieldService constructs the directory.
func NewCustomFieldService(repo repository.CustomFieldRepository, cache *persistence.Redis, cacheTTL time.Duration, logger *zap.Logger) *CustomFieldService {
	return &CustomFieldService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger}
}

// FieldDefinitionInput describes an admin-created definition.
type FieldDefinitionInput struct {
	Label       string
	Type        domain.FieldType
	Required    bool
	Scope       domain.FieldScope
	ScopeID     string
	Options     []string
	Description string
}

// CreateDefinition validates and persists a new definition. Select fields
// must declare at least one option.
func (s *CustomFieldService) CreateDefinition(ctx context.Context, input FieldDefinitionInput) (*domain.CustomFieldDefinition, error) {
	label := strings.TrimSpace(input.Label)
	if label == "" {
		return nil, apperrors.NewValidationError("label required", nil)
	}
	if !domain.IsValidFieldType(input.Type) {
		return nil, apperrors.NewValidationError("invalid field type", map[string]any{"type": input.Type})
	}
	if !domain.IsValidFieldScope(input.Scope) || strings.TrimSpace(input.ScopeID) == "" {
		return nil, apperrors.NewValidationError("scope and scope_id required", nil)
	}
	if input.Type == domain.FieldTypeSelect && len(input.Options) == 0 {
		return nil, apperrors.NewValidationError("select fields require options", nil)
	}

	def := &domain.CustomFieldDefinition{
		Label:       label,
		Type:        input.Type,
		Required:    input.Required,
		Scope:       input.Scope,
		ScopeID:     strings.TrimSpace(input.ScopeID),
		Options:     input.Options,
		Description: strings.TrimSpace(input.Description),
		IsActive:    true,
	}
	if err := s.repo.CreateDefinition(ctx, def); err != nil {
		return nil, apperrors.NewDependencyUnavailable("custom field store", err)
	}
	s.invalidate(ctx, def.Scope, def.ScopeID)
	return def, nil
}

// GetDefinition returns a single definition by id.
func (s *CustomFieldService) GetDefinition(ctx context.Context, id string) (*domain.CustomFieldDefinition, error) {
	def, err := s.repo.GetDefinition(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return def, nil
}

// List returns definitions for a scope, optionally restricted to active ones.
func (s *CustomFieldService) List(ctx context.Context, scope domain.FieldScope, scopeID string, activeOnly bool) ([]domain.CustomFieldDefinition, error) {
	if !domain.IsValidFieldScope(scope) {
		return nil, apperrors.NewValidationError("invalid scope", map[string]any{"scope": scope})
	}
	defs, err := s.repo.ListByScope(ctx, scope, scopeID, activeOnly)
	if err != nil {
		return nil, apperrors.NewDependencyUnavailable("custom field store", err)
	}
	return defs, nil
}

// ListActive serves the workflow engine's validator. Definitions are read
// through the cache; a cache failure falls back to postgres.
func (s *CustomFieldService) ListActive(ctx context.Context, scope domain.FieldScope, scopeID string) ([]domain.CustomFieldDefinition, error) {
	key := s.cacheKey(scope, scopeID)
	if cached, ok := s.readCache(ctx, key); ok {
		return cached, nil
	}

	defs, err := s.repo.ListByScope(ctx, scope, scopeID, true)
	if err != nil {
		return nil, err
	}
	s.writeCache(ctx, key, defs)
	return defs, nil
}

// ValuesForTicket returns the field values recorded against a ticket.
func (s *CustomFieldService) ValuesForTicket(ctx context.Context, ticketID string) ([]domain.CustomFieldValue, error) {
	return s.repo.ListValuesByTicket(ctx, ticketID)
}

func (s *CustomFieldService) cacheKey(scope domain.FieldScope, scopeID string) string {
	return "custom_fields:" + string(scope) + ":" + scopeID
}

func (s *CustomFieldService) readCache(ctx context.Context, key string) ([]domain.CustomFieldDefinition, bool) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return nil, false
	}
	raw, err := s.cache.Client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var defs []domain.CustomFieldDefinition
	if err := json.Unmarshal(raw, &defs); err != nil {
		s.logger.Warn("corrupt custom field cache entry", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	return defs, true
}

func (s *CustomFieldService) writeCache(ctx context.Context, key string, defs []domain.CustomFieldDefinition) {
	if s.cache == nil || s.cache.Client == nil || s.cacheTTL <= 0 {
		return
	}
	raw, err := json.Marshal(defs)
	if err != nil {
		return
	}
	if err := s.cache.Client.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Warn("custom field cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CustomFieldService) invalidate(ctx context.Context, scope domain.FieldScope, scopeID string) {
	if s.cache == nil || s.cache.Client == nil {
		return
	}
	if err := s.cache.Client.Del(ctx, s.cacheKey(scope, scopeID)).Err(); err != nil {
		s.logger.Warn("custom field cache invalidation failed", zap.Error(err))
	}
}
