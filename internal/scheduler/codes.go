package scheduler

// Code classifies the outcome of a booking-related operation.  The zero
// value means success.
type Code string

const (
	CodeOK               Code = ""
	CodeNotFound         Code = "NOT_FOUND"         // show or booking absent
	CodeInvalidDate      Code = "INVALID_DATE"      // unparseable or outside the run
	CodeCapacityExceeded Code = "CAPACITY_EXCEEDED" // not enough seats left
	CodeInvalidInput     Code = "INVALID_INPUT"     // non-positive seat count
)

// Reasons and messages surfaced to callers.  They are part of the
// public contract and are matched verbatim by clients.
const (
	ReasonShowNotFound   = "Show not found"
	ReasonOutsideRun     = "Date is outside of show run"
	ReasonInvalidDate    = "Invalid date format, expected YYYY-MM-DD"
	ReasonNoAvailability = "No availability"

	msgBookingFailed   = "Booking failed: "
	msgInvalidSeats    = "Seat count must be a positive integer"
	msgBookingNotFound = "Booking not found"
)
