package scheduler

import (
	"fmt"
	"time"

	"github.com/iliyamo/circus-schedule/internal/model"
)

// BookingResult is returned by CreateBooking.  Booking is set only on
// success.
type BookingResult struct {
	Success bool           `json:"success"`
	Code    Code           `json:"code,omitempty"`
	Message string         `json:"message"`
	Booking *model.Booking `json:"booking,omitempty"`
}

// CancelResult is returned by CancelBooking.  RefundAmount and Booking
// are set only on success; a zero refund is still reported.
type CancelResult struct {
	Success      bool     `json:"success"`
	Code         Code     `json:"code,omitempty"`
	Message      string   `json:"message"`
	RefundAmount *float64 `json:"refund_amount,omitempty"`
	// Booking is the removed booking, for event publishing.
	Booking *model.Booking `json:"-"`
}

// Ledger owns the live bookings.  Bookings are kept in creation order.
type Ledger struct {
	store    *Store
	engine   *Engine
	ids      IDGenerator
	now      func() time.Time
	bookings []model.Booking
}

// NewLedger returns an empty Ledger over store.  ids and now must be
// non-nil.
func NewLedger(store *Store, ids IDGenerator, now func() time.Time) *Ledger {
	l := &Ledger{store: store, ids: ids, now: now}
	l.engine = NewEngine(store, l)
	return l
}

// Engine returns the availability engine the ledger consults.
func (l *Ledger) Engine() *Engine { return l.engine }

// BookedSeats sums the seats of live bookings for showID on date.
func (l *Ledger) BookedSeats(showID int64, date model.Date) int {
	total := 0
	for _, b := range l.bookings {
		if b.ShowID == showID && b.Date == date {
			total += b.Seats
		}
	}
	return total
}

// CreateBooking books seats for showID on date, provided enough seats
// remain.  On any failure the ledger is left unchanged.
func (l *Ledger) CreateBooking(showID int64, date string, seats int, customer model.Customer) BookingResult {
	if seats <= 0 {
		return BookingResult{Code: CodeInvalidInput, Message: msgBookingFailed + msgInvalidSeats}
	}

	avail := l.engine.CheckAvailability(showID, date)
	if !avail.Available {
		reason := avail.Reason
		if reason == "" {
			reason = ReasonNoAvailability
		}
		return BookingResult{Code: avail.Code, Message: msgBookingFailed + reason}
	}
	if seats > avail.RemainingSeats {
		return BookingResult{
			Code:    CodeCapacityExceeded,
			Message: fmt.Sprintf("%sOnly %d seats available", msgBookingFailed, avail.RemainingSeats),
		}
	}

	// CheckAvailability already proved both of these resolve.
	show, _ := l.store.Show(showID)
	d, _ := model.ParseDate(date)

	b := model.Booking{
		ID:        l.ids.NextID(),
		ShowID:    showID,
		ShowTitle: show.Title,
		VenueName: avail.VenueName,
		Date:      d,
		Seats:     seats,
		Customer:  customer,
		Amount:    float64(seats) * show.AverageTicketPrice(),
		CreatedAt: l.now(),
	}
	b = b.Clone()
	l.bookings = append(l.bookings, b)

	out := b.Clone()
	return BookingResult{
		Success: true,
		Booking: &out,
		Message: fmt.Sprintf("Successfully booked %d seats for %s", seats, show.Title),
	}
}

// CancelBooking removes the booking with the given ID.  The freed seats
// are available to the next availability check.
func (l *Ledger) CancelBooking(id string) CancelResult {
	i := l.index(id)
	if i < 0 {
		return CancelResult{Code: CodeNotFound, Message: msgBookingNotFound}
	}
	b := l.bookings[i]
	l.bookings = append(l.bookings[:i], l.bookings[i+1:]...)
	refund := b.Amount
	return CancelResult{
		Success:      true,
		Message:      fmt.Sprintf("Booking %s has been cancelled", id),
		RefundAmount: &refund,
		Booking:      &b,
	}
}

// Booking returns a copy of the booking with the given ID.
func (l *Ledger) Booking(id string) (model.Booking, bool) {
	i := l.index(id)
	if i < 0 {
		return model.Booking{}, false
	}
	return l.bookings[i].Clone(), true
}

// Bookings returns copies of all live bookings in creation order.
func (l *Ledger) Bookings() []model.Booking {
	out := make([]model.Booking, 0, len(l.bookings))
	for _, b := range l.bookings {
		out = append(out, b.Clone())
	}
	return out
}

// BookingsForShow returns copies of the live bookings for showID.
func (l *Ledger) BookingsForShow(showID int64) []model.Booking {
	out := []model.Booking{}
	for _, b := range l.bookings {
		if b.ShowID == showID {
			out = append(out, b.Clone())
		}
	}
	return out
}

func (l *Ledger) index(id string) int {
	for i := range l.bookings {
		if l.bookings[i].ID == id {
			return i
		}
	}
	return -1
}
