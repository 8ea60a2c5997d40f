package scheduler

import (
	"encoding/json"
	"math"

	"github.com/iliyamo/circus-schedule/internal/model"
)

// SeatCounter reports how many seats are already booked for a show on a
// given date.  The Ledger implements it.
type SeatCounter interface {
	BookedSeats(showID int64, date model.Date) int
}

// AvailabilityResult is the verdict of CheckAvailability.  The seat
// figures are only meaningful when Checked is true, i.e. when the show
// exists and the date lies inside its run.
type AvailabilityResult struct {
	Available      bool
	Code           Code
	Reason         string
	ShowPeriod     string
	VenueName      string
	Checked        bool
	RemainingSeats int
	TotalCapacity  int
	PercentFull    int
}

// MarshalJSON omits the seat figures for results that never got as far
// as counting seats.
func (r AvailabilityResult) MarshalJSON() ([]byte, error) {
	out := map[string]any{"available": r.Available}
	if r.Code != CodeOK {
		out["code"] = r.Code
	}
	if r.Reason != "" {
		out["reason"] = r.Reason
	}
	if r.ShowPeriod != "" {
		out["show_period"] = r.ShowPeriod
	}
	if r.VenueName != "" {
		out["venue"] = r.VenueName
	}
	if r.Checked {
		out["remaining_seats"] = r.RemainingSeats
		out["total_capacity"] = r.TotalCapacity
		out["percent_full"] = r.PercentFull
	}
	return json.Marshal(out)
}

// Engine computes remaining capacity for show dates.
type Engine struct {
	store *Store
	seats SeatCounter
}

// NewEngine returns an Engine reading shows from store and existing
// bookings from seats.
func NewEngine(store *Store, seats SeatCounter) *Engine {
	return &Engine{store: store, seats: seats}
}

// CheckAvailability reports whether seats remain for showID on date
// ("YYYY-MM-DD").  It has no side effects.
func (e *Engine) CheckAvailability(showID int64, date string) AvailabilityResult {
	show, ok := e.store.Show(showID)
	if !ok {
		return AvailabilityResult{Code: CodeNotFound, Reason: ReasonShowNotFound}
	}
	venue := e.store.VenueOrPlaceholder(show.VenueID)

	d, err := model.ParseDate(date)
	if err != nil {
		return AvailabilityResult{
			Code:       CodeInvalidDate,
			Reason:     ReasonInvalidDate,
			ShowPeriod: show.Period(),
			VenueName:  venue.Name,
		}
	}
	if !show.Runs(d) {
		return AvailabilityResult{
			Code:       CodeInvalidDate,
			Reason:     ReasonOutsideRun,
			ShowPeriod: show.Period(),
			VenueName:  venue.Name,
		}
	}

	remaining := show.Capacity - e.seats.BookedSeats(showID, d)
	res := AvailabilityResult{
		Available:      remaining > 0,
		VenueName:      venue.Name,
		Checked:        true,
		RemainingSeats: remaining,
		TotalCapacity:  show.Capacity,
		PercentFull:    percentFull(show.Capacity, remaining),
	}
	if !res.Available {
		res.Code = CodeCapacityExceeded
	}
	return res
}

// percentFull rounds half up.  A zero-capacity show counts as fully
// booked.
func percentFull(capacity, remaining int) int {
	if capacity <= 0 {
		return 100
	}
	pct := float64(capacity-remaining) / float64(capacity) * 100
	return int(math.Floor(pct + 0.5))
}
