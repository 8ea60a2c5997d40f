package model

import "time"

// Customer is the opaque customer payload attached to a booking.  It is
// stored and returned as given; nothing in the scheduler inspects it.
type Customer map[string]any

// Booking records seats sold for one performance date of a show.
// Bookings are created and removed only by the ledger; every other
// component works on copies.
//
// Fields:
//  ID        – generated identifier, unique for the process lifetime.
//  ShowID    – show being booked.
//  ShowTitle – title of the show at booking time.
//  VenueName – venue label at booking time ("Unknown venue" if dangling).
//  Date      – performance date, inside the show's run.
//  Seats     – number of seats, at least one.
//  Customer  – opaque customer payload.
//  Amount    – seats × average ticket price.
//  CreatedAt – creation timestamp.
type Booking struct {
	ID        string    `json:"booking_id"`
	ShowID    int64     `json:"show_id"`
	ShowTitle string    `json:"show_title"`
	VenueName string    `json:"venue"`
	Date      Date      `json:"date"`
	Seats     int       `json:"seats"`
	Customer  Customer  `json:"customer,omitempty"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"created_at"`
}

// Clone returns a copy of b that shares no mutable state with it.
// Nested maps and slices in Customer are copied too.
func (b Booking) Clone() Booking {
	if b.Customer != nil {
		b.Customer = Customer(cloneMap(b.Customer))
	}
	return b
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue deep-copies the container types produced by JSON
// decoding.  Other values are returned as is.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		if t == nil {
			return t
		}
		return cloneMap(t)
	case Customer:
		if t == nil {
			return t
		}
		return Customer(cloneMap(t))
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		if t == nil {
			return t
		}
		return append([]string(nil), t...)
	}
	return v
}
