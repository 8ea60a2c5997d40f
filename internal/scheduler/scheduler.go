package scheduler

import (
	"sync"
	"time"

	"github.com/iliyamo/circus-schedule/internal/model"
)

// Options tunes a Scheduler.  Zero values select the defaults: a
// "BK"-prefixed Sequence for booking IDs and time.Now for the clock.
type Options struct {
	IDs IDGenerator
	Now func() time.Time
}

// Scheduler is the single owner of one schedule and its bookings.  All
// methods are safe for concurrent use: reads share a read lock while
// bookings, cancellations and reloads are serialised behind the write
// lock.
type Scheduler struct {
	mu      sync.RWMutex
	now     func() time.Time
	store   *Store
	ledger  *Ledger
	query   *Query
	revenue *Revenue
}

// New returns a Scheduler over the given shows and venues.
func New(shows []model.Show, venues []model.Venue, opts Options) *Scheduler {
	if opts.IDs == nil {
		opts.IDs = NewSequence("BK")
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	store := NewStore(shows, venues)
	ledger := NewLedger(store, opts.IDs, opts.Now)
	return &Scheduler{
		now:     opts.Now,
		store:   store,
		ledger:  ledger,
		query:   NewQuery(store),
		revenue: NewRevenue(store, ledger),
	}
}

// Load replaces the shows and venues.  Live bookings are kept; bookings
// whose show disappears stop counting towards revenue.
func (s *Scheduler) Load(shows []model.Show, venues []model.Venue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Replace(shows, venues)
}

// Generation identifies the currently loaded data set.
func (s *Scheduler) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Generation()
}

// Today is the scheduler clock's current calendar date.
func (s *Scheduler) Today() model.Date {
	return model.DateOf(s.now())
}

// CheckAvailability reports remaining seats for showID on date.
func (s *Scheduler) CheckAvailability(showID int64, date string) AvailabilityResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Engine().CheckAvailability(showID, date)
}

// CreateBooking checks availability and records the booking under one
// write lock, so two callers can never both claim the last seats.
func (s *Scheduler) CreateBooking(showID int64, date string, seats int, customer model.Customer) BookingResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.CreateBooking(showID, date, seats, customer)
}

// CancelBooking removes a booking and frees its seats.
func (s *Scheduler) CancelBooking(id string) CancelResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.CancelBooking(id)
}

// Booking returns a copy of the booking with the given ID.
func (s *Scheduler) Booking(id string) (model.Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Booking(id)
}

// Bookings returns copies of all live bookings in creation order.
func (s *Scheduler) Bookings() []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.Bookings()
}

// BookingsForShow returns copies of the live bookings for showID.
func (s *Scheduler) BookingsForShow(showID int64) []model.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ledger.BookingsForShow(showID)
}

// UpcomingShows lists shows starting on or after after.  Pass the zero
// Date to use today.
func (s *Scheduler) UpcomingShows(after model.Date) []model.Show {
	if after.IsZero() {
		after = s.Today()
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query.UpcomingShows(after)
}

// ShowDetails returns a show joined with its venue.
func (s *Scheduler) ShowDetails(showID int64) (ShowDetail, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query.ShowDetails(showID)
}

// ShowsByVenue lists the shows scheduled at venueID.
func (s *Scheduler) ShowsByVenue(venueID int64) []model.Show {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.query.ShowsByVenue(venueID)
}

// Shows returns the loaded shows in load order.
func (s *Scheduler) Shows() []model.Show {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Shows()
}

// Venues returns the loaded venues in load order.
func (s *Scheduler) Venues() []model.Venue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.store.Venues()
}

// RevenueByVenue sums live booking revenue per known venue.
func (s *Scheduler) RevenueByVenue() []VenueRevenue {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revenue.RevenueByVenue()
}

// RevenuePotential ranks shows by capacity times average ticket price.
func (s *Scheduler) RevenuePotential() []ShowPotential {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revenue.RevenuePotential()
}

// ShowCountByVenue counts shows per venue, unknown venues last.
func (s *Scheduler) ShowCountByVenue() []VenueShowCount {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revenue.ShowCountByVenue()
}

// Report summarises the schedule with upcoming shows counted from today.
func (s *Scheduler) Report() Report {
	today := s.Today()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revenue.Report(len(s.query.UpcomingShows(today)))
}
