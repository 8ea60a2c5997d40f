package model

// Show represents a production that runs every day between its start
// and end date at one venue.  Shows are loaded in bulk by the loader
// and never mutated afterwards.
//
// Fields:
//  ID             – unique, stable identifier.
//  Title          – display title of the show.
//  StartDate      – first performance date (inclusive).
//  EndDate        – last performance date (inclusive).  A run whose end
//                   precedes its start is tolerated and simply has no
//                   bookable dates.
//  VenueID        – reference into the venue set.  May dangle.
//  Capacity       – seats available per performance date.
//  TicketPriceMin – cheapest ticket price.
//  TicketPriceMax – most expensive ticket price.
//  Genre          – optional category (acrobatics, clowns, ...).
//  Description    – optional free text.
type Show struct {
	ID             int64   `json:"show_id" yaml:"show_id"`
	Title          string  `json:"title" yaml:"title"`
	StartDate      Date    `json:"start_date" yaml:"start_date"`
	EndDate        Date    `json:"end_date" yaml:"end_date"`
	VenueID        int64   `json:"venue_id" yaml:"venue_id"`
	Capacity       int     `json:"capacity" yaml:"capacity"`
	TicketPriceMin float64 `json:"ticket_price_min" yaml:"ticket_price_min"`
	TicketPriceMax float64 `json:"ticket_price_max" yaml:"ticket_price_max"`
	Genre          string  `json:"genre,omitempty" yaml:"genre,omitempty"`
	Description    string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// AverageTicketPrice is the midpoint of the show's price range.  Booking
// amounts and revenue potential are both priced at this value.
func (s Show) AverageTicketPrice() float64 {
	return (s.TicketPriceMin + s.TicketPriceMax) / 2
}

// Period formats the run as "<start> to <end>".
func (s Show) Period() string {
	return s.StartDate.String() + " to " + s.EndDate.String()
}

// Runs reports whether the show performs on d.
func (s Show) Runs(d Date) bool {
	return d.Within(s.StartDate, s.EndDate)
}
