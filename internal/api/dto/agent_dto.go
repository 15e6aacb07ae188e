package dto

import (
	"time"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
)

// RegisterAgentRequest payload.
type RegisterAgentRequest struct {
	Name     string           `json:"name"`
	Email    string           `json:"email"`
	Password string           `json:"password"`
	Role     domain.AgentRole `json:"role"`
	AreaID   *string          `json:"area_id"`
}

// LoginRequest payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AgentResponse is the public agent representation.
type AgentResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Role      domain.AgentRole `json:"role"`
	AreaID    *string          `json:"area_id"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
}

// LoginResponse carries the bearer token.
type LoginResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Agent     AgentResponse `json:"agent"`
}

// NewAgentResponse maps an agent.
func NewAgentResponse(agent *domain.Agent) AgentResponse {
	return AgentResponse{
		ID:        agent.ID,
		Name:      agent.Name,
		Email:     agent.Email,
		Role:      agent.Role,
		AreaID:    agent.AreaID,
		IsActive:  agent.IsActive,
		CreatedAt: agent.CreatedAt,
	}
}
