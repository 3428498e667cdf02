package handler

import (
	"database/sql"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness and whether the database answers a ping.
func Health(db *sql.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		status := "ok"
		if db != nil {
			if err := db.PingContext(c.Request().Context()); err != nil {
				status = "degraded"
			}
		}
		return c.JSON(http.StatusOK, echo.Map{"status": status})
	}
}
