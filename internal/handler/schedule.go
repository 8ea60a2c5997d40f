package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/circus-schedule/internal/model"
	"github.com/iliyamo/circus-schedule/internal/scheduler"
)

// UpcomingShows handles GET /v1/shows/upcoming.  The optional "after"
// query parameter (YYYY-MM-DD) defaults to today.
func (h *Handler) UpcomingShows(c echo.Context) error {
	var after model.Date
	if raw := c.QueryParam("after"); raw != "" {
		d, err := model.ParseDate(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{
				"error": scheduler.ReasonInvalidDate,
				"code":  scheduler.CodeInvalidDate,
			})
		}
		after = d
	}
	if after.IsZero() {
		after = h.Sched.Today()
	}
	shows := h.Sched.UpcomingShows(after)
	return c.JSON(http.StatusOK, echo.Map{"after": after, "items": shows})
}

// GetShow handles GET /v1/shows/:id and returns the show joined with its
// venue.
func (h *Handler) GetShow(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	detail, ok := h.Sched.ShowDetails(id)
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{
			"error": scheduler.ReasonShowNotFound,
			"code":  scheduler.CodeNotFound,
		})
	}
	return c.JSON(http.StatusOK, detail)
}

// Availability handles GET /v1/shows/:id/availability?date=YYYY-MM-DD.
// A sold-out date is a valid answer and comes back as 200 with
// available=false.
func (h *Handler) Availability(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	res := h.Sched.CheckAvailability(id, c.QueryParam("date"))
	status := http.StatusOK
	if !res.Checked {
		status = statusFor(res.Code)
	}
	return c.JSON(status, res)
}

// ListVenues handles GET /v1/venues: every venue with its show count,
// including ids referenced by shows but missing from the venue list.
func (h *Handler) ListVenues(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{"items": h.Sched.ShowCountByVenue()})
}

// VenueShows handles GET /v1/venues/:id/shows.
func (h *Handler) VenueShows(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": h.Sched.ShowsByVenue(id)})
}
