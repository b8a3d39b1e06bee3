package service

import "errors"

// Sentinel kinds for service errors. Chart lookups return repository.ErrNotFound
// and stay validation returns the stay package sentinels.
var (
	ErrUnknownRoom     = errors.New("room not offered by point chart")
	ErrTooManyBookings = errors.New("too many hypothetical bookings")
)
