package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"memory-backend/config"
	"memory-backend/internal/access"
	"memory-backend/internal/utils"
)

const actorKey = "actor"

// RequireAuth rejects requests without a valid Bearer access token and
// stores the resolved actor in the request locals.
func RequireAuth(c *fiber.Ctx) error {
	actor, err := actorFromHeader(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authentication required"})
	}
	c.Locals(actorKey, actor)
	return c.Next()
}

// OptionalAuth resolves the actor if credentials are present and falls back
// to the anonymous contributor otherwise. Invalid tokens are treated as
// anonymous rather than rejected; sharelink routes work without identity.
func OptionalAuth(c *fiber.Ctx) error {
	actor, err := actorFromHeader(c)
	if err != nil {
		actor = access.Anonymous()
	}
	c.Locals(actorKey, actor)
	return c.Next()
}

// ActorFromCtx returns the actor stored by the auth middleware, or the
// anonymous actor when no middleware ran.
func ActorFromCtx(c *fiber.Ctx) access.Actor {
	if actor, ok := c.Locals(actorKey).(access.Actor); ok {
		return actor
	}
	return access.Anonymous()
}

func actorFromHeader(c *fiber.Ctx) (access.Actor, error) {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return access.Anonymous(), fiber.ErrUnauthorized
	}

	claims, err := utils.ParseToken(parts[1], config.Cfg.JWTSecret)
	if err != nil {
		return access.Anonymous(), err
	}
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return access.Anonymous(), fiber.ErrUnauthorized
	}

	id, username, err := utils.ClaimsToIdentity(claims)
	if err != nil {
		return access.Anonymous(), err
	}
	return access.Actor{ID: id, Username: username, Authenticated: true}, nil
}
