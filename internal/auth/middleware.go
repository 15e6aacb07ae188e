package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
	"github.com/rolfmarquardtjr/clickticket/internal/repository"
	apperrors "github.com/rolfmarquardtjr/clickticket/pkg/util"
)

const principalKey = "auth_principal"

// AuthMiddleware validates bearer tokens and loads the acting agent.
type AuthMiddleware struct {
	tokens *TokenManager
	agents repository.AgentRepository
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, agents repository.AgentRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, agents: agents}
}

// Handle enforces authentication for protected routes.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.ParseToken(parts[1])
	if err != nil {
		return apperrors.NewUnauthorized("invalid token")
	}

	agent, err := m.agents.GetByID(c.Context(), claims.AgentID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewUnauthorized("agent not found")
		}
		return apperrors.MapError(err)
	}
	if !agent.IsActive {
		return apperrors.NewForbidden("agent inactive")
	}

	StoreAgent(c, agent)
	return c.Next()
}

// StoreAgent attaches the authenticated agent to the request context.
func StoreAgent(c *fiber.Ctx, agent *domain.Agent) {
	c.Locals(principalKey, agent)
}

// AgentFromContext retrieves the authenticated agent.
func AgentFromContext(c *fiber.Ctx) (*domain.Agent, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	agent, ok := val.(*domain.Agent)
	return agent, ok
}
