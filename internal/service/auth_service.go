package service

import (
	"context"
	"time"

	"github.com/rolfmarquardtjr/clickticket/internal/auth"
	"github.com/rolfmarquardtjr/clickticket/internal/config"
	"github.com/rolfmarquardtjr/clickticket/internal/domain"
	"github.com/rolfmarquardtjr/clickticket/internal/repository"
	apperrors "github.com/rolfmarquardtjr/clickticket/pkg/util"
)

// AuthService coordinates agent registration and login flows.
type AuthService struct {
	agents     repository.AgentRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, agents repository.AgentRepository) *AuthService {
	return &AuthService{
		agents:     agents,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterAgent creates a new operator account.
func (s *AuthService) RegisterAgent(ctx context.Context, name, email, password string, role domain.AgentRole, areaID *string) (*domain.Agent, error) {
	if _, err := s.agents.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("email already registered", nil)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	agent := &domain.Agent{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		AreaID:       areaID,
		IsActive:     true,
	}
	if err := s.agents.Create(ctx, agent); err != nil {
		return nil, err
	}
	return agent, nil
}

// LoginAgent authenticates an operator and returns a role-bearing token.
func (s *AuthService) LoginAgent(ctx context.Context, email, password string) (*domain.Agent, string, time.Time, error) {
	agent, err := s.agents.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	if !agent.IsActive {
		return nil, "", time.Time{}, apperrors.NewForbidden("agent inactive")
	}
	if err := auth.ComparePassword(agent.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}
	token, exp, err := s.tokenMgr.GenerateToken(agent.ID, agent.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return agent, token, exp, nil
}

// ChangePassword verifies the current password before updating to a new hash.
func (s *AuthService) ChangePassword(ctx context.Context, agentID, currentPassword, newPassword string) error {
	agent, err := s.agents.GetByID(ctx, agentID)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(agent.PasswordHash, currentPassword); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	agent.PasswordHash = hash
	return s.agents.Update(ctx, agent)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
