package service_test

import (
	"time"

	"github.com/okian/pointchart/internal/domain/chart"
)

func date(s string) time.Time {
	t, err := chart.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func rng(start, end string) chart.DateRange {
	return chart.DateRange{Start: date(start), End: date(end)}
}

// polynesian2026 prices the deluxe studio all year and the bungalow only in
// January.
func polynesian2026() *chart.PointChart {
	return &chart.PointChart{
		Resort: "polynesian",
		Year:   2026,
		Seasons: []chart.Season{
			{
				Name:       "Adventure",
				DateRanges: []chart.DateRange{rng("2026-01-01", "2026-01-31")},
				Rooms: map[string]chart.RoomCost{
					"deluxe_studio_standard": {Weekday: 10, Weekend: 14},
					"bungalow_lagoon_view":   {Weekday: 50, Weekend: 60},
				},
			},
			{
				Name:       "Choice",
				DateRanges: []chart.DateRange{rng("2026-02-01", "2026-12-31")},
				Rooms: map[string]chart.RoomCost{
					"deluxe_studio_standard": {Weekday: 12, Weekend: 16},
				},
			},
		},
	}
}

func polynesian2027() *chart.PointChart {
	return &chart.PointChart{
		Resort: "polynesian",
		Year:   2027,
		Seasons: []chart.Season{{
			Name:       "Adventure",
			DateRanges: []chart.DateRange{rng("2027-01-01", "2027-12-31")},
			Rooms: map[string]chart.RoomCost{
				"deluxe_studio_standard": {Weekday: 11, Weekend: 15},
			},
		}},
	}
}
