package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ReloadCatalogue handles POST /v1/admin/reload.  Bookings survive; only
// shows and venues are replaced.  On failure the old catalogue stays.
func (h *Handler) ReloadCatalogue(c echo.Context) error {
	if h.Reload == nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reload disabled"})
	}
	if err := h.Reload(c.Request().Context()); err != nil {
		log.Printf("handler: reload failed: %v", err)
		return c.JSON(http.StatusBadGateway, echo.Map{"error": "reload failed", "detail": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"status":     "reloaded",
		"shows":      len(h.Sched.Shows()),
		"venues":     len(h.Sched.Venues()),
		"generation": h.Sched.Generation(),
	})
}
