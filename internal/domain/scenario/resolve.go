package scenario

import (
	"time"
)

// Pricer quotes the total points and nights of a stay in one room of one
// resort. Implementations wrap the stay aggregator or a remote pricing service.
type Pricer interface {
	PriceStay(resort, roomKey string, checkIn, checkOut time.Time) (points, nights int, err error)
}

// PricerFunc adapts a function to Pricer.
type PricerFunc func(resort, roomKey string, checkIn, checkOut time.Time) (int, int, error)

// PriceStay calls f.
func (f PricerFunc) PriceStay(resort, roomKey string, checkIn, checkOut time.Time) (int, int, error) {
	return f(resort, roomKey, checkIn, checkOut)
}

// Resolve prices every booking with p. Bookings that fail to price are left
// out of the resolved list and their error text is recorded in failures.
// A failure never stops the batch.
func Resolve(bookings []HypotheticalBooking, p Pricer) ([]ResolvedBooking, map[Key]string) {
	resolved := make([]ResolvedBooking, 0, len(bookings))
	failures := make(map[Key]string)
	for _, b := range bookings {
		points, nights, err := p.PriceStay(b.Resort, b.RoomKey, b.CheckIn, b.CheckOut)
		if err != nil {
			failures[b.Key()] = err.Error()
			continue
		}
		resolved = append(resolved, ResolvedBooking{
			ContractID: b.ContractID,
			Resort:     b.Resort,
			RoomKey:    b.RoomKey,
			CheckIn:    b.CheckIn,
			CheckOut:   b.CheckOut,
			PointsCost: points,
			NumNights:  nights,
		})
	}
	return resolved, failures
}
