package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"shop-service/pkg/database"
)

// Health is the liveness probe: it runs a trivial query against the
// database and reports the outcome.
func Health(c echo.Context) error {
	if err := database.GetDB().Exec("SELECT 1").Error; err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"status": "unhealthy",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "healthy"})
}
