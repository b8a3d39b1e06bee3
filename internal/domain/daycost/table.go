package daycost

import (
	"fmt"
	"time"

	"github.com/okian/pointchart/internal/domain/calendar"
	"github.com/okian/pointchart/internal/domain/chart"
)

// Table is a per-room day source spanning every year it has a chart for.
// Days in a year without a chart are returned unpriced.
type Table struct {
	roomKey string
	years   map[int]calendar.Lookup
}

// NewTable resolves the calendar of each chart for roomKey. Charts are keyed
// by their Year; a later chart for the same year replaces an earlier one.
func NewTable(roomKey string, charts ...*chart.PointChart) (*Table, error) {
	t := &Table{roomKey: roomKey, years: make(map[int]calendar.Lookup, len(charts))}
	for _, c := range charts {
		if c == nil {
			return nil, ErrNilChart
		}
		l, err := calendar.Resolve(c.Seasons, c.Year)
		if err != nil {
			return nil, fmt.Errorf("resolve %d calendar: %w", c.Year, err)
		}
		t.years[c.Year] = l
	}
	return t, nil
}

// RoomKey returns the room the table prices.
func (t *Table) RoomKey() string { return t.roomKey }

// DayCost returns the cost of the night starting on date.
func (t *Table) DayCost(date time.Time) DayCost {
	day := chart.Day(date)
	l, ok := t.years[day.Year()]
	if !ok {
		return price(day, nil, false, t.roomKey)
	}
	s, found := l.Season(day)
	return price(day, s, found, t.roomKey)
}
