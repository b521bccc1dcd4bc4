package auth

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"askstack/internal/repository"
)

const (
	userIDContextKey   = "user_id"
	usernameContextKey = "username"
)

// ResolveUser turns verified token claims into a live user identity. The
// signature was already checked by the JWT middleware; this confirms the
// embedded user id still resolves to an existing, unbanned user (one store
// read) and that the session was not revoked by logout. Any failure is
// treated as an anonymous caller and rejected.
func ResolveUser(users repository.UserRepository, revoked RevocationStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			if claims.ID != "" && revoked != nil && revoked.IsRevoked(c.Request().Context(), claims.ID) {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			user, err := users.FindByID(c.Request().Context(), claims.UserID)
			if err != nil || user.Banned {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			c.Set(userIDContextKey, user.ID)
			c.Set(usernameContextKey, user.Username)
			return next(c)
		}
	}
}

// UserID returns the resolved user id from the request context, or zero for
// an anonymous caller.
func UserID(c echo.Context) uint {
	id, _ := c.Get(userIDContextKey).(uint)
	return id
}

// Username returns the resolved username from the request context.
func Username(c echo.Context) string {
	name, _ := c.Get(usernameContextKey).(string)
	return name
}
