// Package stay aggregates nightly point costs over a check-in/check-out range.
package stay

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/okian/pointchart/internal/domain/chart"
	"github.com/okian/pointchart/internal/domain/daycost"
)

// DefaultMaxNights is the longest stay collaborators accept.
const DefaultMaxNights = 14

// Sentinel kinds for stay validation.
var (
	ErrInvalidStay  = errors.New("check-out must be after check-in")
	ErrStayTooLong  = errors.New("stay exceeds maximum nights")
	ErrUnpricedStay = errors.New("point chart data not available")
)

// DaySource yields the cost of the night starting on a date.
type DaySource interface {
	DayCost(date time.Time) daycost.DayCost
}

// Night is one entry of a nightly breakdown.
type Night struct {
	Date      time.Time `json:"-"`
	DayOfWeek string    `json:"day_of_week"`
	Season    string    `json:"season"`
	Points    int       `json:"points"`
	IsWeekend bool      `json:"is_weekend"`
	Priced    bool      `json:"priced"`
}

// MarshalJSON renders Date as YYYY-MM-DD.
func (n Night) MarshalJSON() ([]byte, error) {
	type plain Night
	return json.Marshal(struct {
		Date string `json:"date"`
		plain
	}{Date: chart.DateKey(n.Date), plain: plain(n)})
}

// Quote is the priced breakdown of a stay.
type Quote struct {
	CheckIn        time.Time `json:"-"`
	CheckOut       time.Time `json:"-"`
	NumNights      int       `json:"num_nights"`
	Nightly        []Night   `json:"nightly_breakdown"`
	TotalPoints    int       `json:"total_points"`
	UnpricedNights int       `json:"unpriced_nights"`
}

// MarshalJSON renders check-in and check-out as YYYY-MM-DD.
func (q Quote) MarshalJSON() ([]byte, error) {
	type plain Quote
	return json.Marshal(struct {
		CheckIn  string `json:"check_in"`
		CheckOut string `json:"check_out"`
		plain
	}{CheckIn: chart.DateKey(q.CheckIn), CheckOut: chart.DateKey(q.CheckOut), plain: plain(q)})
}

// Complete reports whether every night had pricing data.
func (q Quote) Complete() bool { return q.UnpricedNights == 0 }

// Nights returns the number of nights between checkIn and checkOut.
func Nights(checkIn, checkOut time.Time) int {
	return int(chart.Day(checkOut).Sub(chart.Day(checkIn)).Hours() / 24)
}

// Validate checks the constraints collaborators rely on: check-out strictly
// after check-in and at most maxNights nights. maxNights <= 0 disables the cap.
func Validate(checkIn, checkOut time.Time, maxNights int) error {
	n := Nights(checkIn, checkOut)
	if n < 1 {
		return fmt.Errorf("%w: %s to %s", ErrInvalidStay, chart.DateKey(checkIn), chart.DateKey(checkOut))
	}
	if maxNights > 0 && n > maxNights {
		return fmt.Errorf("%w: %d > %d", ErrStayTooLong, n, maxNights)
	}
	return nil
}

// Calculate prices each night from checkIn (inclusive) to checkOut (exclusive).
// Nights crossing a season or year boundary draw from whichever day applies.
// Unpriced nights contribute zero points and are counted in UnpricedNights.
func Calculate(src DaySource, checkIn, checkOut time.Time) (Quote, error) {
	if err := Validate(checkIn, checkOut, 0); err != nil {
		return Quote{}, err
	}
	in, out := chart.Day(checkIn), chart.Day(checkOut)
	q := Quote{CheckIn: in, CheckOut: out, NumNights: Nights(in, out)}
	q.Nightly = make([]Night, 0, q.NumNights)
	for d := in; d.Before(out); d = d.AddDate(0, 0, 1) {
		dc := src.DayCost(d)
		q.Nightly = append(q.Nightly, Night{
			Date:      d,
			DayOfWeek: d.Weekday().String(),
			Season:    dc.Season,
			Points:    dc.Points,
			IsWeekend: dc.IsWeekend,
			Priced:    dc.Priced,
		})
		q.TotalPoints += dc.Points
		if !dc.Priced {
			q.UnpricedNights++
		}
	}
	return q, nil
}
