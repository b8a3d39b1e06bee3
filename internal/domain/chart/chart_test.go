package chart_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/okian/pointchart/internal/domain/chart"
	. "github.com/smartystreets/goconvey/convey"
)

const sampleChart = `{
  "resort": "polynesian",
  "year": 2026,
  "seasons": [
    {
      "name": "Adventure",
      "date_ranges": [["2026-01-01", "2026-01-31"]],
      "rooms": {
        "deluxe_studio_standard": {"weekday": 14, "weekend": 19},
        "deluxe_studio_lagoon_view": {"weekday": 18, "weekend": 24}
      }
    },
    {
      "name": "Choice",
      "date_ranges": [["2026-02-01", "2026-02-14"]],
      "rooms": {
        "deluxe_studio_standard": {"weekday": 16, "weekend": 21},
        "bungalow_lagoon_view": {"weekday": 100, "weekend": 120}
      }
    }
  ]
}`

func TestPointChartJSON(t *testing.T) {
	Convey("Given a chart document", t, func() {
		var c chart.PointChart
		err := json.Unmarshal([]byte(sampleChart), &c)

		Convey("It decodes date range pairs", func() {
			So(err, ShouldBeNil)
			So(c.Year, ShouldEqual, 2026)
			So(c.Seasons, ShouldHaveLength, 2)
			So(chart.DateKey(c.Seasons[0].DateRanges[0].Start), ShouldEqual, "2026-01-01")
			So(chart.DateKey(c.Seasons[0].DateRanges[0].End), ShouldEqual, "2026-01-31")
			So(c.Validate(), ShouldBeNil)
		})

		Convey("It re-encodes ranges as pairs", func() {
			b, err := json.Marshal(c.Seasons[1].DateRanges)
			So(err, ShouldBeNil)
			So(string(b), ShouldEqual, `[["2026-02-01","2026-02-14"]]`)
		})

		Convey("Room keys are the sorted union over seasons", func() {
			So(c.RoomKeys(), ShouldResemble, []string{
				"bungalow_lagoon_view",
				"deluxe_studio_lagoon_view",
				"deluxe_studio_standard",
			})
			So(c.HasRoom("bungalow_lagoon_view"), ShouldBeTrue)
			So(c.HasRoom("nonexistent_room"), ShouldBeFalse)
		})

		Convey("Outline drops room costs", func() {
			o := c.Outline()
			So(o, ShouldHaveLength, 2)
			So(o[1].Name, ShouldEqual, "Choice")
			So(o[1].DateRanges, ShouldHaveLength, 1)
		})
	})

	Convey("Given malformed ranges", t, func() {
		Convey("A reversed range is rejected", func() {
			var r chart.DateRange
			err := json.Unmarshal([]byte(`["2026-03-10","2026-03-01"]`), &r)
			So(errors.Is(err, chart.ErrMalformedRange), ShouldBeTrue)
		})
		Convey("A single date is rejected", func() {
			var r chart.DateRange
			err := json.Unmarshal([]byte(`["2026-03-10"]`), &r)
			So(errors.Is(err, chart.ErrInvalidChart), ShouldBeTrue)
		})
		Convey("A bad date is rejected", func() {
			var r chart.DateRange
			err := json.Unmarshal([]byte(`["2026-02-30","2026-03-01"]`), &r)
			So(errors.Is(err, chart.ErrInvalidDate), ShouldBeTrue)
		})
		Convey("A single-day range is fine", func() {
			r, err := chart.NewDateRange("2026-03-01", "2026-03-01")
			So(err, ShouldBeNil)
			So(r.Contains(r.Start), ShouldBeTrue)
		})
	})

	Convey("Given an invalid chart", t, func() {
		c := chart.PointChart{Year: 2026, Seasons: []chart.Season{{
			Name:  "Adventure",
			Rooms: map[string]chart.RoomCost{"studio": {Weekday: -1, Weekend: 3}},
		}}}
		So(errors.Is(c.Validate(), chart.ErrInvalidChart), ShouldBeTrue)

		c = chart.PointChart{Year: 2026, Seasons: []chart.Season{{}}}
		So(errors.Is(c.Validate(), chart.ErrInvalidChart), ShouldBeTrue)

		c = chart.PointChart{}
		So(errors.Is(c.Validate(), chart.ErrInvalidChart), ShouldBeTrue)
	})
}
