// Package handler exposes the scheduler over HTTP.  Domain outcomes
// (unknown show, bad date, sold out) are answered with the scheduler's
// structured result and a 4xx status; only broken requests get a bare
// {"error": ...} body.
package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/circus-schedule/internal/scheduler"
	"github.com/iliyamo/circus-schedule/internal/service"
)

// publishTimeout bounds how long a request waits for the broker.
const publishTimeout = 3 * time.Second

// Handler serves the schedule, booking and revenue endpoints.
type Handler struct {
	Sched  *scheduler.Scheduler
	Events service.Publisher
	// Reload refreshes the catalogue.  Nil disables POST /v1/admin/reload.
	Reload func(ctx context.Context) error
}

// New returns a Handler.  A nil publisher drops events.
func New(s *scheduler.Scheduler, events service.Publisher) *Handler {
	if events == nil {
		events = service.NopPublisher{}
	}
	return &Handler{Sched: s, Events: events}
}

// statusFor maps an outcome code to an HTTP status.
func statusFor(code scheduler.Code) int {
	switch code {
	case scheduler.CodeOK:
		return http.StatusOK
	case scheduler.CodeNotFound:
		return http.StatusNotFound
	case scheduler.CodeCapacityExceeded:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func parseID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

// publishContext detaches from the request so a client disconnect does
// not abort an event that describes a committed booking.
func publishContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(c.Request().Context()), publishTimeout)
}
