package scheduler

import (
	"sort"

	"github.com/iliyamo/circus-schedule/internal/model"
)

// ShowDetail is a show joined with its venue.  When the venue reference
// dangles, Venue is the "Unknown venue" placeholder.
type ShowDetail struct {
	model.Show
	Venue model.Venue `json:"venue"`
}

// Query answers read-only schedule questions.
type Query struct {
	store *Store
}

// NewQuery returns a Query over store.
func NewQuery(store *Store) *Query {
	return &Query{store: store}
}

// UpcomingShows returns the shows starting on or after after, earliest
// first.  Shows sharing a start date keep their load order.  Every call
// builds a new slice.
func (q *Query) UpcomingShows(after model.Date) []model.Show {
	out := []model.Show{}
	for _, s := range q.store.shows {
		if !s.StartDate.Before(after) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartDate.Before(out[j].StartDate)
	})
	return out
}

// ShowDetails resolves a show and its venue.  The boolean is false when
// no show has the given ID.
func (q *Query) ShowDetails(showID int64) (ShowDetail, bool) {
	show, ok := q.store.Show(showID)
	if !ok {
		return ShowDetail{}, false
	}
	return ShowDetail{Show: show, Venue: q.store.VenueOrPlaceholder(show.VenueID)}, true
}

// ShowsByVenue returns the shows hosted by venueID in load order.
func (q *Query) ShowsByVenue(venueID int64) []model.Show {
	out := []model.Show{}
	for _, s := range q.store.shows {
		if s.VenueID == venueID {
			out = append(out, s)
		}
	}
	return out
}
