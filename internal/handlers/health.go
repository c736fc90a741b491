package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func HealthCheck(serviceName string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healty",
			"service": serviceName,
		})
	}
}
