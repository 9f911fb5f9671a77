package middlewares

import (
	t_token "noteshub/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// QueryToken token in query name
	QueryToken = "auth"

	// CookieToken token in cookie name
	CookieToken = "auth_token"

	// TokenMemberID get member from token, set c.locals name
	TokenMemberID = "MemberID"
	// TokenRole get role from token, set c.locals name
	TokenRole = "role"
)

func extractToken(c *fiber.Ctx) string {
	tokenStr := c.Query(QueryToken)
	if tokenStr == "" {
		tokenStr = c.Cookies(CookieToken)
	}
	return tokenStr
}

func parseInto(c *fiber.Ctx, tokenStr string) error {
	token, err := jwt.ParseWithClaims(tokenStr, &t_token.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
		}
		return t_token.JWTSecret, nil
	})
	if err != nil {
		return err
	}

	claims, ok := token.Claims.(*t_token.Claims)
	if !ok || !token.Valid {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid token claims")
	}

	c.Locals(TokenMemberID, claims.MemberID)
	c.Locals(TokenRole, claims.Role)
	return nil
}

// JWTMiddleware validates JWT in the query or cookie, rejecting without one
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing token",
			})
		}

		if err := parseInto(c, tokenStr); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid token",
			})
		}

		return c.Next()
	}
}

// OptionalJWTMiddleware resolves claims when a valid token is present and
// lets anonymous requests through. The chat feed accepts both.
func OptionalJWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := extractToken(c)
		if tokenStr != "" {
			if err := parseInto(c, tokenStr); err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}
		}
		return c.Next()
	}
}
