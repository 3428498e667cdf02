// Package middleware provides reusable HTTP middleware: bearer-token
// authentication and permission gating.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/openwave/social-network-api/internal/model"
	"github.com/openwave/social-network-api/internal/utils"
)

// Context keys under which JWTAuth stores the resolved identity.
const (
	ContextUserKey = "user"      // *model.User
	ContextJTIKey  = "jti"       // string, the token's unique identifier
	ContextExpKey  = "token_exp" // time.Time, the token's expiry
)

// UserStore resolves a token's user_id claim to a user with its role.
type UserStore interface {
	GetByID(ctx context.Context, id uint64) (*model.User, error)
}

// TokenStore answers revocation-list lookups.
type TokenStore interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// JWTAuth returns an Echo middleware running the full verification
// pipeline on the Authorization bearer token: signature and structure,
// expiry, revocation list, and user resolution, in that order. Each failure
// answers 401; a deleted account in particular maps to 401 rather than 404
// so the response never confirms whether the account existed. On success
// the acting user and the token's jti are stored in the request context.
func JWTAuth(secret string, users UserStore, tokens TokenStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "msg": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, jwt.ErrTokenExpired) {
					msg = "token expired"
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "msg": msg})
			}

			rctx := c.Request().Context()
			revoked, err := tokens.IsRevoked(rctx, claims.JTI)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal", "msg": "revocation check failed"})
			}
			if revoked {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "msg": "token revoked"})
			}

			user, err := users.GetByID(rctx, claims.UserID)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "msg": "user no longer exists"})
			}

			c.Set(ContextUserKey, user)
			c.Set(ContextJTIKey, claims.JTI)
			c.Set(ContextExpKey, claims.Exp)
			return next(c)
		}
	}
}
