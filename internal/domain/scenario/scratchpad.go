package scenario

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// DefaultMaxBookings is the conventional cap on scenario bookings.
const DefaultMaxBookings = 10

// Sentinel kinds for scratchpad operations.
var (
	ErrScratchpadFull = errors.New("scenario booking limit reached")
	ErrBookingMissing = errors.New("scenario booking not found")
)

// Scratchpad is a caller-owned ordered list of hypothetical bookings.
// It is not safe for concurrent use; evaluation takes a snapshot via List.
type Scratchpad struct {
	bookings []HypotheticalBooking
	limit    int
	newID    func() string
}

// NewScratchpad returns an empty scratchpad holding at most limit bookings
// (limit <= 0 means DefaultMaxBookings).
func NewScratchpad(limit int) *Scratchpad {
	if limit <= 0 {
		limit = DefaultMaxBookings
	}
	return &Scratchpad{limit: limit, newID: uuid.NewString}
}

// Add appends b with a freshly generated id and returns the stored booking.
func (s *Scratchpad) Add(b HypotheticalBooking) (HypotheticalBooking, error) {
	if len(s.bookings) >= s.limit {
		return HypotheticalBooking{}, fmt.Errorf("%w: %d", ErrScratchpadFull, s.limit)
	}
	b.ID = s.newID()
	s.bookings = append(s.bookings, b)
	return b, nil
}

// Remove deletes the booking with id.
func (s *Scratchpad) Remove(id string) error {
	for i, b := range s.bookings {
		if b.ID == id {
			s.bookings = append(s.bookings[:i:i], s.bookings[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrBookingMissing, id)
}

// Clear removes every booking.
func (s *Scratchpad) Clear() { s.bookings = nil }

// Len returns the number of bookings.
func (s *Scratchpad) Len() int { return len(s.bookings) }

// List returns a copy of the bookings in insertion order.
func (s *Scratchpad) List() []HypotheticalBooking {
	out := make([]HypotheticalBooking, len(s.bookings))
	copy(out, s.bookings)
	return out
}
