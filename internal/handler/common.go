package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/openwave/social-network-api/internal/middleware"
	"github.com/openwave/social-network-api/internal/model"
)

var errNoActingUser = errors.New("no acting user in context")

// actingUser returns the authenticated user stored by the JWTAuth
// middleware. The acting identity is always this explicit value, never
// ambient state.
func actingUser(c echo.Context) (*model.User, error) {
	u, ok := c.Get(middleware.ContextUserKey).(*model.User)
	if !ok || u == nil {
		return nil, errNoActingUser
	}
	return u, nil
}

// actingJTI returns the unique identifier of the presented token.
func actingJTI(c echo.Context) string {
	jti, _ := c.Get(middleware.ContextJTIKey).(string)
	return jti
}

// actingTokenTTL returns how long the presented token remains valid, used
// as the lifetime of the revocation mirror entry.
func actingTokenTTL(c echo.Context) time.Duration {
	exp, ok := c.Get(middleware.ContextExpKey).(time.Time)
	if !ok {
		return 0
	}
	return time.Until(exp)
}

// selfOrElevated is the shared ownership gate: the actor may proceed when
// they own the resource or hold MODERATE or ADMIN.
func selfOrElevated(actor *model.User, ownerID uint64) bool {
	return actor.ID == ownerID || actor.IsElevated()
}

// paramID parses a numeric :id path parameter.
func paramID(c echo.Context) (uint64, error) {
	return strconv.ParseUint(c.Param("id"), 10, 64)
}
