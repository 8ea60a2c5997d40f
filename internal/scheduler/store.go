package scheduler

import "github.com/iliyamo/circus-schedule/internal/model"

// Store holds the show and venue records of the current load.  Records
// keep their load order; lookups by ID resolve to the first record with
// that ID.
type Store struct {
	shows      []model.Show
	venues     []model.Venue
	showIdx    map[int64]int
	venueIdx   map[int64]int
	generation uint64
}

// NewStore builds a Store over copies of shows and venues.  Either slice
// may be empty.
func NewStore(shows []model.Show, venues []model.Venue) *Store {
	s := &Store{}
	s.Replace(shows, venues)
	return s
}

// Replace swaps in a new data set and bumps the generation counter.
// Existing bookings are not touched by the store.
func (s *Store) Replace(shows []model.Show, venues []model.Venue) {
	s.shows = append([]model.Show(nil), shows...)
	s.venues = append([]model.Venue(nil), venues...)
	s.showIdx = make(map[int64]int, len(shows))
	for i, sh := range s.shows {
		if _, dup := s.showIdx[sh.ID]; !dup {
			s.showIdx[sh.ID] = i
		}
	}
	s.venueIdx = make(map[int64]int, len(venues))
	for i, v := range s.venues {
		if _, dup := s.venueIdx[v.ID]; !dup {
			s.venueIdx[v.ID] = i
		}
	}
	s.generation++
}

// Generation identifies the current load.  It changes on every Replace,
// which lets caches keyed on it drop stale schedule data.
func (s *Store) Generation() uint64 { return s.generation }

// Show looks a show up by ID.
func (s *Store) Show(id int64) (model.Show, bool) {
	i, ok := s.showIdx[id]
	if !ok {
		return model.Show{}, false
	}
	return s.shows[i], true
}

// Venue looks a venue up by ID.
func (s *Store) Venue(id int64) (model.Venue, bool) {
	i, ok := s.venueIdx[id]
	if !ok {
		return model.Venue{}, false
	}
	return s.venues[i], true
}

// VenueOrPlaceholder resolves id or returns the "Unknown venue"
// placeholder.
func (s *Store) VenueOrPlaceholder(id int64) model.Venue {
	if v, ok := s.Venue(id); ok {
		return v
	}
	return model.UnknownVenue()
}

// Shows returns a copy of the shows in load order.
func (s *Store) Shows() []model.Show {
	return append([]model.Show(nil), s.shows...)
}

// Venues returns a copy of the venues in load order.
func (s *Store) Venues() []model.Venue {
	return append([]model.Venue(nil), s.venues...)
}
