package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Health reports liveness together with the size and generation of the
// loaded catalogue.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":     "ok",
		"shows":      len(h.Sched.Shows()),
		"venues":     len(h.Sched.Venues()),
		"generation": h.Sched.Generation(),
	})
}
