// Package calendar expands season date ranges into a day-to-season lookup
// for one calendar year.
package calendar

import (
	"fmt"
	"time"

	"github.com/okian/pointchart/internal/domain/chart"
)

// IsWeekend reports whether t falls on a Friday or Saturday night.
// Points are charged per night, so the pricing weekend is Fri/Sat, not Sat/Sun.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Friday || wd == time.Saturday
}

// DaysIn returns the number of days in year (365 or 366).
func DaysIn(year int) int {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return int(start.AddDate(1, 0, 0).Sub(start).Hours() / 24)
}

// Lookup maps ISO date keys to the season that prices that day.
type Lookup struct {
	year    int
	seasons map[string]*chart.Season
}

// Year returns the year the lookup was resolved for.
func (l Lookup) Year() int { return l.year }

// Season returns the season covering t, if any.
func (l Lookup) Season(t time.Time) (*chart.Season, bool) {
	s, ok := l.seasons[chart.DateKey(t)]
	return s, ok
}

// Len returns the number of covered days.
func (l Lookup) Len() int { return len(l.seasons) }

// Resolve walks every date range of every season and records, for each day
// of year, the season that claims it. Days outside year are dropped.
//
// Overlapping ranges are resolved last-writer-wins in season order, then in
// range order within a season. A range with start after end is rejected.
func Resolve(seasons []chart.Season, year int) (Lookup, error) {
	l := Lookup{year: year, seasons: make(map[string]*chart.Season, DaysIn(year))}
	first := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	for i := range seasons {
		s := &seasons[i]
		for _, r := range s.DateRanges {
			if err := r.Validate(); err != nil {
				return Lookup{}, fmt.Errorf("season %q: %w", s.Name, err)
			}
			start, end := chart.Day(r.Start), chart.Day(r.End)
			if start.Before(first) {
				start = first
			}
			if end.After(last) {
				end = last
			}
			for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
				l.seasons[chart.DateKey(d)] = s
			}
		}
	}
	return l, nil
}
