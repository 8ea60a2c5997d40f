// Package router wires the HTTP handlers and middlewares onto echo.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/circus-schedule/internal/config"
	"github.com/iliyamo/circus-schedule/internal/handler"
	"github.com/iliyamo/circus-schedule/internal/middleware"
)

// Options carries the optional Redis-backed features.  A nil Redis
// client turns both middlewares into pass-throughs.
type Options struct {
	Redis     *redis.Client
	Cache     config.CacheConfig
	RateLimit config.RateLimitConfig
}

// Register mounts the health check and the /v1 API.  Only the schedule
// reads are cached; anything that depends on the ledger is always live.
func Register(e *echo.Echo, h *handler.Handler, opts Options) {
	e.GET("/healthz", h.Health)

	v1 := e.Group("/v1", middleware.NewTokenBucket(opts.RateLimit, opts.Redis))

	cached := middleware.NewRedisCache(opts.Cache, opts.Redis, h.Sched.Generation)
	v1.GET("/shows/upcoming", h.UpcomingShows, cached)
	v1.GET("/shows/:id", h.GetShow, cached)
	v1.GET("/shows/:id/availability", h.Availability)
	v1.GET("/venues", h.ListVenues, cached)
	v1.GET("/venues/:id/shows", h.VenueShows, cached)

	v1.POST("/bookings", h.CreateBooking)
	v1.GET("/bookings", h.ListBookings)
	v1.GET("/bookings/:id", h.GetBooking)
	v1.DELETE("/bookings/:id", h.CancelBooking)

	v1.GET("/revenue/venues", h.RevenueByVenue)
	v1.GET("/revenue/potential", h.RevenuePotential)
	v1.GET("/reports/summary", h.Report)

	if h.Reload != nil {
		v1.POST("/admin/reload", h.ReloadCatalogue)
	}
}
