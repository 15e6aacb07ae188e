package domain

import "time"

// AgentRole enumerates operator roles.
type AgentRole string

const (
	AgentRoleAgent AgentRole = "AGENT"
	AgentRoleAdmin AgentRole = "ADMIN"
)

// Agent is an internal operator who drives tickets through the workflow.
type Agent struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         AgentRole
	AreaID       *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
