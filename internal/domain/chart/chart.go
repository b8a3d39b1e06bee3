// Package chart contains the point chart data model: one resort-year of
// seasonal pricing keyed by room and by weekday/weekend.
package chart

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// DateLayout is the ISO calendar date layout used on the wire and as map key.
const DateLayout = "2006-01-02"

// PointChart is one resort-year pricing table. Treated as immutable once loaded.
type PointChart struct {
	Resort  string   `json:"resort,omitempty"`
	Year    int      `json:"year"`
	Seasons []Season `json:"seasons"`
}

// Season is a named pricing period with its date ranges and per-room costs.
type Season struct {
	Name       string              `json:"name"`
	DateRanges []DateRange         `json:"date_ranges"`
	Rooms      map[string]RoomCost `json:"rooms"`
}

// RoomCost is the nightly point cost of a room in a season.
type RoomCost struct {
	Weekday int `json:"weekday"`
	Weekend int `json:"weekend"`
}

// DateRange is an inclusive [Start, End] span of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDate parses an ISO date (YYYY-MM-DD) into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Day truncates t to its calendar day in UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateKey renders the calendar day of t as YYYY-MM-DD.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// NewDateRange parses a pair of ISO dates into a validated range.
func NewDateRange(start, end string) (DateRange, error) {
	s, err := ParseDate(start)
	if err != nil {
		return DateRange{}, err
	}
	e, err := ParseDate(end)
	if err != nil {
		return DateRange{}, err
	}
	r := DateRange{Start: s, End: e}
	if err := r.Validate(); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// Validate rejects ranges whose start is after their end.
func (r DateRange) Validate() error {
	if Day(r.Start).After(Day(r.End)) {
		return fmt.Errorf("%w: %s > %s", ErrMalformedRange, DateKey(r.Start), DateKey(r.End))
	}
	return nil
}

// Contains reports whether the calendar day of t lies within the range.
func (r DateRange) Contains(t time.Time) bool {
	d := Day(t)
	return !d.Before(Day(r.Start)) && !d.After(Day(r.End))
}

// MarshalJSON encodes the range as ["start","end"].
func (r DateRange) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{DateKey(r.Start), DateKey(r.End)})
}

// UnmarshalJSON decodes a ["start","end"] pair.
func (r *DateRange) UnmarshalJSON(b []byte) error {
	var pair []string
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("%w: date range must be a [start, end] pair: %w", ErrInvalidChart, err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("%w: date range must have 2 dates, got %d", ErrInvalidChart, len(pair))
	}
	parsed, err := NewDateRange(pair[0], pair[1])
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Validate checks chart-level invariants: a plausible year, named seasons,
// well-formed ranges and non-negative costs. Overlapping seasons are allowed.
func (c *PointChart) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: nil chart", ErrInvalidChart)
	}
	if c.Year < 1 || c.Year > 9999 {
		return fmt.Errorf("%w: year %d out of range", ErrInvalidChart, c.Year)
	}
	for i, s := range c.Seasons {
		if s.Name == "" {
			return fmt.Errorf("%w: season %d has no name", ErrInvalidChart, i)
		}
		for _, r := range s.DateRanges {
			if err := r.Validate(); err != nil {
				return fmt.Errorf("season %q: %w", s.Name, err)
			}
		}
		for key, cost := range s.Rooms {
			if cost.Weekday < 0 || cost.Weekend < 0 {
				return fmt.Errorf("%w: season %q room %q has negative cost", ErrInvalidChart, s.Name, key)
			}
		}
	}
	return nil
}

// RoomKeys returns every room key offered in any season, sorted.
func (c *PointChart) RoomKeys() []string {
	seen := make(map[string]struct{})
	for _, s := range c.Seasons {
		for key := range s.Rooms {
			seen[key] = struct{}{}
		}
	}
	keys := make([]string, 0, len(seen))
	for key := range seen {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// HasRoom reports whether any season offers roomKey.
func (c *PointChart) HasRoom(roomKey string) bool {
	for _, s := range c.Seasons {
		if _, ok := s.Rooms[roomKey]; ok {
			return true
		}
	}
	return false
}

// SeasonOutline is a season without its room costs.
type SeasonOutline struct {
	Name       string      `json:"name"`
	DateRanges []DateRange `json:"date_ranges"`
}

// Outline returns the season structure of the chart without room costs.
func (c *PointChart) Outline() []SeasonOutline {
	out := make([]SeasonOutline, len(c.Seasons))
	for i, s := range c.Seasons {
		ranges := make([]DateRange, len(s.DateRanges))
		copy(ranges, s.DateRanges)
		out[i] = SeasonOutline{Name: s.Name, DateRanges: ranges}
	}
	return out
}
