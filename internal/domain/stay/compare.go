package stay

import (
	"sort"
	"time"

	"github.com/okian/pointchart/internal/domain/chart"
	"github.com/okian/pointchart/internal/domain/daycost"
)

// Option is one fully priced room for a stay.
type Option struct {
	RoomKey     string `json:"room_key"`
	TotalPoints int    `json:"total_points"`
	NumNights   int    `json:"num_nights"`
	NightlyAvg  int    `json:"nightly_avg"`
}

// CompareRooms quotes every room offered by charts for the stay and returns
// the fully priced ones, cheapest first, ties broken by room key.
func CompareRooms(charts []*chart.PointChart, checkIn, checkOut time.Time) ([]Option, error) {
	if err := Validate(checkIn, checkOut, 0); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	for _, c := range charts {
		if c == nil {
			return nil, daycost.ErrNilChart
		}
		for _, k := range c.RoomKeys() {
			keys[k] = struct{}{}
		}
	}
	options := make([]Option, 0, len(keys))
	for key := range keys {
		table, err := daycost.NewTable(key, charts...)
		if err != nil {
			return nil, err
		}
		q, err := Calculate(table, checkIn, checkOut)
		if err != nil {
			return nil, err
		}
		if !q.Complete() {
			continue
		}
		options = append(options, Option{
			RoomKey:     key,
			TotalPoints: q.TotalPoints,
			NumNights:   q.NumNights,
			NightlyAvg:  roundDiv(q.TotalPoints, q.NumNights),
		})
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].TotalPoints != options[j].TotalPoints {
			return options[i].TotalPoints < options[j].TotalPoints
		}
		return options[i].RoomKey < options[j].RoomKey
	})
	return options, nil
}

// roundDiv divides non-negative a by positive b, rounding half to even.
func roundDiv(a, b int) int {
	q, r := a/b, a%b
	switch {
	case 2*r > b:
		return q + 1
	case 2*r == b && q%2 == 1:
		return q + 1
	}
	return q
}
