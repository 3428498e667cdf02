package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Error replies are uniformly {"error": <kind>, "msg": <message>} so API
// clients can branch on the kind without parsing human-readable text.

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, echo.Map{"error": "bad request", "msg": msg})
}

func unauthorized(c echo.Context, msg string) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized", "msg": msg})
}

func forbidden(c echo.Context, msg string) error {
	return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden", "msg": msg})
}

func notFound(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "not found", "msg": msg})
}

func conflict(c echo.Context, msg string) error {
	return c.JSON(http.StatusConflict, echo.Map{"error": "conflict", "msg": msg})
}

func internalError(c echo.Context, msg string) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal", "msg": msg})
}
