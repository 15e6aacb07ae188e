package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rolfmarquardtjr/clickticket/internal/api/dto"
	"github.com/rolfmarquardtjr/clickticket/internal/auth"
	"github.com/rolfmarquardtjr/clickticket/internal/domain"
	"github.com/rolfmarquardtjr/clickticket/internal/service"
	apperrors "github.com/rolfmarquardtjr/clickticket/pkg/util"
)

// AgentsHandler manages agent authentication endpoints.
type AgentsHandler struct {
	authService *service.AuthService
}

// NewAgentsHandler constructs handler.
func NewAgentsHandler(authService *service.AuthService) *AgentsHandler {
	return &AgentsHandler{authService: authService}
}

// Register POST /auth/agents/register (admin only).
func (h *AgentsHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterAgentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return apperrors.NewValidationError("name, email, password required", nil)
	}
	role := req.Role
	if role == "" {
		role = domain.AgentRoleAgent
	}
	agent, err := h.authService.RegisterAgent(c.Context(), req.Name, req.Email, req.Password, role, req.AreaID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewAgentResponse(agent)})
}

// Login POST /auth/agents/login.
func (h *AgentsHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	agent, token, expiresAt, err := h.authService.LoginAgent(c.Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		Agent:     dto.NewAgentResponse(agent),
	}})
}

// Me GET /auth/agents/me.
func (h *AgentsHandler) Me(c *fiber.Ctx) error {
	agent, ok := auth.AgentFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("agent required")
	}
	return c.JSON(fiber.Map{"data": dto.NewAgentResponse(agent)})
}

// ChangePassword POST /auth/agents/change-password.
func (h *AgentsHandler) ChangePassword(c *fiber.Ctx) error {
	agent, ok := auth.AgentFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("agent required")
	}
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.NewPassword == "" {
		return apperrors.NewValidationError("new_password required", nil)
	}
	if err := h.authService.ChangePassword(c.Context(), agent.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"changed": true}})
}
