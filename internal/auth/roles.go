package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rolfmarquardtjr/clickticket/internal/domain"
	apperrors "github.com/rolfmarquardtjr/clickticket/pkg/util"
)

// RequireRole ensures the agent has one of the allowed roles. With no roles
// given, any authenticated agent passes.
func RequireRole(allowed ...domain.AgentRole) fiber.Handler {
	allowedSet := make(map[domain.AgentRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		agent, ok := AgentFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[agent.Role]; !exists {
			return apperrors.NewForbidden("insufficient role")
		}
		return c.Next()
	}
}

// RequireAdmin restricts a route to administrators.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.AgentRoleAdmin)
}
