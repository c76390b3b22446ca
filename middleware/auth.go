package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"certcraft/api-gateway/models"
)

// UserKey is the c.Locals key under which RequireAuth stores the caller.
const UserKey = "user"

// RequireAuth verifies the Bearer token on every request and stores the
// resolved owner in the request locals. The token is an HS256 JWT issued by
// the auth provider; this service only reads the identity claims out of it.
func RequireAuth(secret string, log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return unauthorized(c, "missing bearer token")
		}

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !parsed.Valid {
			log.WithField("error", fmt.Sprintf("%v", err)).Warn("Rejected auth token")
			return unauthorized(c, "invalid token")
		}

		claims, ok := parsed.Claims.(jwt.MapClaims)
		if !ok {
			return unauthorized(c, "invalid token claims")
		}
		sub, _ := claims.GetSubject()
		if sub == "" {
			return unauthorized(c, "token has no subject")
		}

		user := models.User{
			ID:      sub,
			Email:   stringClaim(claims, "email"),
			Name:    stringClaim(claims, "name"),
			Picture: stringClaim(claims, "picture"),
		}
		c.Locals(UserKey, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated caller set by RequireAuth.
func CurrentUser(c *fiber.Ctx) (models.User, bool) {
	user, ok := c.Locals(UserKey).(models.User)
	return user, ok
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
