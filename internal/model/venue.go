package model

// UnknownVenueName labels the placeholder venue attached to shows whose
// venue reference does not resolve.
const UnknownVenueName = "Unknown venue"

// Venue is a location hosting shows.  Only ID and Name take part in
// scheduling; the remaining fields are descriptive.
type Venue struct {
	ID       int64  `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	City     string `json:"city,omitempty" yaml:"city,omitempty"`
	Address  string `json:"address,omitempty" yaml:"address,omitempty"`
	Capacity int    `json:"capacity,omitempty" yaml:"capacity,omitempty"`
}

// UnknownVenue returns the placeholder used for dangling references.
func UnknownVenue() Venue {
	return Venue{Name: UnknownVenueName}
}
