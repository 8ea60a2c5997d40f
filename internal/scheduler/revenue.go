package scheduler

import (
	"sort"

	"github.com/iliyamo/circus-schedule/internal/model"
)

// VenueRevenue is the booked revenue of one venue.
type VenueRevenue struct {
	VenueID  int64   `json:"id"`
	Name     string  `json:"name"`
	Revenue  float64 `json:"revenue"`
	Bookings int     `json:"bookings"`
}

// ShowPotential is what a show would earn per performance if every seat
// sold at the average ticket price.
type ShowPotential struct {
	ShowID           int64   `json:"show_id"`
	Title            string  `json:"title"`
	AverageTicket    float64 `json:"avg_ticket"`
	PotentialRevenue float64 `json:"potential_revenue"`
}

// VenueShowCount counts the shows scheduled at a venue.
type VenueShowCount struct {
	VenueID int64  `json:"id"`
	Name    string `json:"name"`
	Shows   int    `json:"shows"`
}

// Report summarises the schedule and the ledger.
type Report struct {
	TotalShows         int             `json:"total_shows"`
	UpcomingShows      int             `json:"upcoming_shows"`
	TotalVenues        int             `json:"total_venues"`
	TotalVenueCapacity int             `json:"total_venue_capacity"`
	LiveBookings       int             `json:"live_bookings"`
	BookedRevenue      float64         `json:"booked_revenue"`
	RevenuePotential   []ShowPotential `json:"revenue_potential"`
}

// Revenue aggregates ledger bookings and show data.
type Revenue struct {
	store  *Store
	ledger *Ledger
}

// NewRevenue returns a Revenue aggregator.
func NewRevenue(store *Store, ledger *Ledger) *Revenue {
	return &Revenue{store: store, ledger: ledger}
}

// RevenueByVenue returns one entry per known venue, highest revenue
// first; ties keep venue load order.  Bookings whose show or venue does
// not resolve are excluded; this is intentional, not a lookup failure.
func (r *Revenue) RevenueByVenue() []VenueRevenue {
	out := make([]VenueRevenue, 0, len(r.store.venues))
	pos := make(map[int64]int, len(r.store.venues))
	for _, v := range r.store.venues {
		if _, dup := pos[v.ID]; dup {
			continue
		}
		pos[v.ID] = len(out)
		out = append(out, VenueRevenue{VenueID: v.ID, Name: v.Name})
	}
	for _, b := range r.ledger.bookings {
		show, ok := r.store.Show(b.ShowID)
		if !ok {
			continue
		}
		i, ok := pos[show.VenueID]
		if !ok {
			continue
		}
		out[i].Revenue += b.Amount
		out[i].Bookings++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	return out
}

// RevenuePotential prices every show at full capacity, highest first.
func (r *Revenue) RevenuePotential() []ShowPotential {
	out := make([]ShowPotential, 0, len(r.store.shows))
	for _, s := range r.store.shows {
		avg := s.AverageTicketPrice()
		out = append(out, ShowPotential{
			ShowID:           s.ID,
			Title:            s.Title,
			AverageTicket:    avg,
			PotentialRevenue: avg * float64(s.Capacity),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PotentialRevenue > out[j].PotentialRevenue })
	return out
}

// ShowCountByVenue counts shows per venue in venue load order.  Venue
// IDs referenced by shows but missing from the venue set follow, in the
// order they were first seen, labelled "Unknown venue".
func (r *Revenue) ShowCountByVenue() []VenueShowCount {
	out := []VenueShowCount{}
	pos := map[int64]int{}
	for _, v := range r.store.venues {
		if _, dup := pos[v.ID]; dup {
			continue
		}
		pos[v.ID] = len(out)
		out = append(out, VenueShowCount{VenueID: v.ID, Name: v.Name})
	}
	for _, s := range r.store.shows {
		i, ok := pos[s.VenueID]
		if !ok {
			i = len(out)
			pos[s.VenueID] = i
			out = append(out, VenueShowCount{VenueID: s.VenueID, Name: model.UnknownVenueName})
		}
		out[i].Shows++
	}
	return out
}

// Report builds a summary.  upcoming is the number of upcoming shows as
// computed by Query for the caller's notion of today.
func (r *Revenue) Report(upcoming int) Report {
	rep := Report{
		TotalShows:       len(r.store.shows),
		UpcomingShows:    upcoming,
		TotalVenues:      len(r.store.venues),
		LiveBookings:     len(r.ledger.bookings),
		RevenuePotential: r.RevenuePotential(),
	}
	for _, v := range r.store.venues {
		rep.TotalVenueCapacity += v.Capacity
	}
	for _, b := range r.ledger.bookings {
		rep.BookedRevenue += b.Amount
	}
	return rep
}
