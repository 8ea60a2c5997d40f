package handler

import (
	"log"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/circus-schedule/internal/model"
)

// CreateBookingRequest is the body of POST /v1/bookings.
type CreateBookingRequest struct {
	ShowID   int64          `json:"show_id"`
	Date     string         `json:"date"`
	Seats    int            `json:"seats"`
	Customer model.Customer `json:"customer"`
}

// CreateBooking handles POST /v1/bookings.  The scheduler's result is
// returned as-is: 201 on success, otherwise a 4xx matching its code.
func (h *Handler) CreateBooking(c echo.Context) error {
	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	res := h.Sched.CreateBooking(req.ShowID, req.Date, req.Seats, req.Customer)
	if !res.Success {
		return c.JSON(statusFor(res.Code), res)
	}

	ctx, cancel := publishContext(c)
	defer cancel()
	if err := h.Events.BookingCreated(ctx, *res.Booking); err != nil {
		log.Printf("handler: publish booking.created %s: %v", res.Booking.ID, err)
	}
	return c.JSON(http.StatusCreated, res)
}

// GetBooking handles GET /v1/bookings/:id.
func (h *Handler) GetBooking(c echo.Context) error {
	b, ok := h.Sched.Booking(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "booking not found"})
	}
	return c.JSON(http.StatusOK, b)
}

// ListBookings handles GET /v1/bookings, optionally filtered by
// ?show_id=.
func (h *Handler) ListBookings(c echo.Context) error {
	if raw := c.QueryParam("show_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show_id"})
		}
		return c.JSON(http.StatusOK, echo.Map{"items": h.Sched.BookingsForShow(id)})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": h.Sched.Bookings()})
}

// CancelBooking handles DELETE /v1/bookings/:id.
func (h *Handler) CancelBooking(c echo.Context) error {
	res := h.Sched.CancelBooking(c.Param("id"))
	if !res.Success {
		return c.JSON(statusFor(res.Code), res)
	}
	ctx, cancel := publishContext(c)
	defer cancel()
	if err := h.Events.BookingCancelled(ctx, *res.Booking); err != nil {
		log.Printf("handler: publish booking.cancelled %s: %v", res.Booking.ID, err)
	}
	return c.JSON(http.StatusOK, res)
}
