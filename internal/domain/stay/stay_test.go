package stay_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/okian/pointchart/internal/domain/chart"
	"github.com/okian/pointchart/internal/domain/daycost"
	"github.com/okian/pointchart/internal/domain/stay"
	. "github.com/smartystreets/goconvey/convey"
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

func charts() []*chart.PointChart {
	return []*chart.PointChart{
		{
			Year: 2026,
			Seasons: []chart.Season{
				{
					Name:       "Adventure",
					DateRanges: []chart.DateRange{rng("2026-01-01", "2026-01-14")},
					Rooms: map[string]chart.RoomCost{
						"studio_standard": {Weekday: 10, Weekend: 14},
						"villa_lake_view": {Weekday: 30, Weekend: 40},
					},
				},
				{
					Name:       "Choice",
					DateRanges: []chart.DateRange{rng("2026-01-15", "2026-12-31")},
					Rooms: map[string]chart.RoomCost{
						"studio_standard": {Weekday: 12, Weekend: 16},
						"villa_lake_view": {Weekday: 35, Weekend: 45},
						"cabin_woods":     {Weekday: 8, Weekend: 9},
					},
				},
			},
		},
		{
			Year: 2027,
			Seasons: []chart.Season{{
				Name:       "Adventure",
				DateRanges: []chart.DateRange{rng("2027-01-01", "2027-01-31")},
				Rooms: map[string]chart.RoomCost{
					"studio_standard": {Weekday: 11, Weekend: 15},
					"villa_lake_view": {Weekday: 31, Weekend: 41},
				},
			}},
		},
	}
}

func table(room string) *daycost.Table {
	t, err := daycost.NewTable(room, charts()...)
	if err != nil {
		panic(err)
	}
	return t
}

func TestCalculate(t *testing.T) {
	Convey("Given a Thursday to Sunday stay in one season", t, func() {
		q, err := stay.Calculate(table("studio_standard"), date("2026-01-08"), date("2026-01-11"))
		So(err, ShouldBeNil)

		Convey("It prices Thu weekday and Fri/Sat weekend nights", func() {
			So(q.NumNights, ShouldEqual, 3)
			So(q.Nightly, ShouldHaveLength, 3)
			So(q.Nightly[0].DayOfWeek, ShouldEqual, "Thursday")
			So(q.Nightly[0].Points, ShouldEqual, 10)
			So(q.Nightly[1].Points, ShouldEqual, 14)
			So(q.Nightly[1].IsWeekend, ShouldBeTrue)
			So(q.Nightly[2].Points, ShouldEqual, 14)
			So(q.Nightly[2].IsWeekend, ShouldBeTrue)
			So(q.TotalPoints, ShouldEqual, 38)
			So(q.Complete(), ShouldBeTrue)
		})
	})

	Convey("Given stays across season and year boundaries", t, func() {
		Convey("Each night uses its own season", func() {
			q, err := stay.Calculate(table("studio_standard"), date("2026-01-13"), date("2026-01-17"))
			So(err, ShouldBeNil)
			seasons := []string{}
			for _, n := range q.Nightly {
				seasons = append(seasons, n.Season)
			}
			So(seasons, ShouldResemble, []string{"Adventure", "Adventure", "Choice", "Choice"})
			// Tue 10, Wed 10, Thu 12, Fri 16
			So(q.TotalPoints, ShouldEqual, 48)
		})

		Convey("Each night uses its own year's chart", func() {
			q, err := stay.Calculate(table("studio_standard"), date("2026-12-30"), date("2027-01-02"))
			So(err, ShouldBeNil)
			// Wed 12 (2026), Thu 12 (2026), Fri 15 (2027)
			So(q.TotalPoints, ShouldEqual, 39)
			So(q.Nightly[2].Date.Year(), ShouldEqual, 2027)
		})
	})

	Convey("For every stay length the breakdown has one ascending entry per night", t, func() {
		for n := 1; n <= stay.DefaultMaxNights; n++ {
			in := date("2026-01-05")
			q, err := stay.Calculate(table("villa_lake_view"), in, in.AddDate(0, 0, n))
			So(err, ShouldBeNil)
			So(q.Nightly, ShouldHaveLength, n)
			sum := 0
			for i, night := range q.Nightly {
				sum += night.Points
				if i > 0 {
					So(night.Date.After(q.Nightly[i-1].Date), ShouldBeTrue)
				}
			}
			So(q.TotalPoints, ShouldEqual, sum)
		}
	})

	Convey("Given a room missing from some nights", t, func() {
		q, err := stay.Calculate(table("cabin_woods"), date("2026-01-13"), date("2026-01-16"))
		So(err, ShouldBeNil)

		Convey("Missing nights are zero, flagged, and counted", func() {
			So(q.UnpricedNights, ShouldEqual, 2)
			So(q.Nightly[0].Priced, ShouldBeFalse)
			So(q.Nightly[2].Priced, ShouldBeTrue)
			So(q.TotalPoints, ShouldEqual, 8)
			So(q.Complete(), ShouldBeFalse)
		})
	})

	Convey("Given invalid ranges", t, func() {
		_, err := stay.Calculate(table("studio_standard"), date("2026-01-10"), date("2026-01-10"))
		So(errors.Is(err, stay.ErrInvalidStay), ShouldBeTrue)
		_, err = stay.Calculate(table("studio_standard"), date("2026-01-10"), date("2026-01-09"))
		So(errors.Is(err, stay.ErrInvalidStay), ShouldBeTrue)
	})

	Convey("The quote encodes dates as ISO strings", t, func() {
		q, err := stay.Calculate(table("studio_standard"), date("2026-01-08"), date("2026-01-09"))
		So(err, ShouldBeNil)
		b, err := json.Marshal(q)
		So(err, ShouldBeNil)
		var out map[string]any
		So(json.Unmarshal(b, &out), ShouldBeNil)
		So(out["check_in"], ShouldEqual, "2026-01-08")
		So(out["check_out"], ShouldEqual, "2026-01-09")
		So(out["total_points"], ShouldEqual, float64(10))
		nights := out["nightly_breakdown"].([]any)
		So(nights[0].(map[string]any)["date"], ShouldEqual, "2026-01-08")
		So(nights[0].(map[string]any)["day_of_week"], ShouldEqual, "Thursday")
	})
}

func TestValidate(t *testing.T) {
	Convey("Given the collaborator constraints", t, func() {
		in := date("2026-03-01")
		So(stay.Validate(in, in.AddDate(0, 0, 14), stay.DefaultMaxNights), ShouldBeNil)
		So(errors.Is(stay.Validate(in, in.AddDate(0, 0, 15), stay.DefaultMaxNights), stay.ErrStayTooLong), ShouldBeTrue)
		So(errors.Is(stay.Validate(in, in, stay.DefaultMaxNights), stay.ErrInvalidStay), ShouldBeTrue)
		So(stay.Validate(in, in.AddDate(0, 0, 40), 0), ShouldBeNil)
	})
}

func TestCompareRooms(t *testing.T) {
	Convey("Given a stay in a mixed chart", t, func() {
		opts, err := stay.CompareRooms(charts(), date("2026-01-15"), date("2026-01-17"))
		So(err, ShouldBeNil)

		Convey("Fully priced rooms are listed cheapest first", func() {
			So(opts, ShouldHaveLength, 3)
			// Thu + Fri nights in Choice.
			So(opts[0].RoomKey, ShouldEqual, "cabin_woods")
			So(opts[0].TotalPoints, ShouldEqual, 17)
			So(opts[0].NightlyAvg, ShouldEqual, 8) // 8.5 rounds half to even
			So(opts[1].RoomKey, ShouldEqual, "studio_standard")
			So(opts[1].TotalPoints, ShouldEqual, 28)
			So(opts[2].RoomKey, ShouldEqual, "villa_lake_view")
			So(opts[2].TotalPoints, ShouldEqual, 80)
		})

		Convey("Partially priced rooms are excluded", func() {
			opts, err := stay.CompareRooms(charts(), date("2026-01-13"), date("2026-01-16"))
			So(err, ShouldBeNil)
			for _, o := range opts {
				So(o.RoomKey, ShouldNotEqual, "cabin_woods")
			}
		})
	})
}
