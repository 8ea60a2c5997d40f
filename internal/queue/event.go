// Package queue defines the booking event payloads exchanged over the
// message broker and the consumer that turns them into an audit log.
package queue

import (
	"time"

	"github.com/iliyamo/circus-schedule/internal/model"
)

// Queue names.  Each event type is routed through the default exchange
// to a durable queue of the same name.
const (
	BookingCreatedQueue   = "booking.created"
	BookingCancelledQueue = "booking.cancelled"
)

// BookingEvent is published after a booking is created or cancelled.  It
// carries enough of the booking for consumers to log or notify without
// calling back into the scheduler.
type BookingEvent struct {
	Type       string  `json:"type"`
	BookingID  string  `json:"booking_id"`
	ShowID     int64   `json:"show_id"`
	ShowTitle  string  `json:"show_title"`
	Venue      string  `json:"venue"`
	Date       string  `json:"date"`
	Seats      int     `json:"seats"`
	Amount     float64 `json:"amount"`
	OccurredAt string  `json:"occurred_at"`
}

// NewBookingEvent builds the event of type typ (one of the queue names)
// for b.
func NewBookingEvent(typ string, b model.Booking, at time.Time) BookingEvent {
	return BookingEvent{
		Type:       typ,
		BookingID:  b.ID,
		ShowID:     b.ShowID,
		ShowTitle:  b.ShowTitle,
		Venue:      b.VenueName,
		Date:       b.Date.String(),
		Seats:      b.Seats,
		Amount:     b.Amount,
		OccurredAt: at.UTC().Format(time.RFC3339),
	}
}
