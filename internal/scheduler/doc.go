// Package scheduler is the booking and availability engine for circus
// shows.  It keeps the loaded shows and venues (Store), answers seat
// availability questions for a show and date (Engine), records and
// cancels bookings (Ledger), projects the schedule (Query) and sums
// booking revenue per venue (Revenue).
//
// The components are not safe for concurrent use on their own.
// Scheduler bundles them behind a single RWMutex so that the
// check-then-book sequence in CreateBooking is atomic with respect to
// every other read, booking, cancellation and data reload.
//
// None of the booking operations return Go errors.  Expected failures
// (unknown show, date outside the run, sold out, bad seat count) are
// reported in the result values together with a Code that callers can
// branch on.
package scheduler
