// Package daycost produces per-day point costs for a room from a point chart.
package daycost

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/okian/pointchart/internal/domain/calendar"
	"github.com/okian/pointchart/internal/domain/chart"
)

// ErrNilChart is returned when a nil chart is evaluated.
var ErrNilChart = errors.New("nil point chart")

// DayCost is the price of one night in one room.
type DayCost struct {
	Date      time.Time `json:"-"`
	Day       int       `json:"day"`
	Points    int       `json:"points"`
	Season    string    `json:"season"`
	IsWeekend bool      `json:"is_weekend"`
	// Priced is false when no season covers the day or the season does not
	// offer the room. Such days carry zero points but are not free.
	Priced bool `json:"priced"`
}

// DateKey returns the ISO date of the record.
func (d DayCost) DateKey() string { return chart.DateKey(d.Date) }

// MarshalJSON renders Date as YYYY-MM-DD.
func (d DayCost) MarshalJSON() ([]byte, error) {
	type plain DayCost
	return json.Marshal(struct {
		Date string `json:"date"`
		plain
	}{Date: d.DateKey(), plain: plain(d)})
}

// price computes the cost of day for roomKey given its resolved season.
func price(day time.Time, season *chart.Season, found bool, roomKey string) DayCost {
	dc := DayCost{
		Date:      day,
		Day:       day.Day(),
		IsWeekend: calendar.IsWeekend(day),
	}
	if !found {
		return dc
	}
	dc.Season = season.Name
	cost, ok := season.Rooms[roomKey]
	if !ok {
		return dc
	}
	dc.Priced = true
	if dc.IsWeekend {
		dc.Points = cost.Weekend
	} else {
		dc.Points = cost.Weekday
	}
	return dc
}

// Evaluate returns one record per day of year (Jan 1 to Dec 31) for roomKey.
// The chart's own year is not enforced; seasons are resolved against year.
func Evaluate(c *chart.PointChart, year int, roomKey string) ([]DayCost, error) {
	if c == nil {
		return nil, ErrNilChart
	}
	lookup, err := calendar.Resolve(c.Seasons, year)
	if err != nil {
		return nil, fmt.Errorf("resolve %d calendar: %w", year, err)
	}
	out := make([]DayCost, 0, calendar.DaysIn(year))
	day := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	for day.Year() == year {
		s, ok := lookup.Season(day)
		out = append(out, price(day, s, ok, roomKey))
		day = day.AddDate(0, 0, 1)
	}
	return out, nil
}
