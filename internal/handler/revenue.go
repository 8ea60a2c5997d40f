package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RevenueByVenue handles GET /v1/revenue/venues.
func (h *Handler) RevenueByVenue(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Sched.RevenueByVenue()})
}

// RevenuePotential handles GET /v1/revenue/potential.
func (h *Handler) RevenuePotential(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Sched.RevenuePotential()})
}

// Report handles GET /v1/reports/summary.
func (h *Handler) Report(c echo.Context) error {
	return c.JSON(http.StatusOK, h.Sched.Report())
}
