// Package repository reads the show and venue catalogue from MySQL.
// Bookings never touch the database; they live in the in-memory ledger.
package repository

import "errors"

// ErrShowNotFound indicates that a show was not located in the DB.
var ErrShowNotFound = errors.New("show not found")

// ErrVenueNotFound indicates that a venue was not located in the DB.
var ErrVenueNotFound = errors.New("venue not found")
