package heatmap_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/okian/pointchart/internal/domain/chart"
	"github.com/okian/pointchart/internal/domain/daycost"
	"github.com/okian/pointchart/internal/domain/heatmap"
	"github.com/okian/pointchart/internal/domain/rooms"
	. "github.com/smartystreets/goconvey/convey"
)

func rng(start, end string) chart.DateRange {
	r, err := chart.NewDateRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func TestBucket(t *testing.T) {
	Convey("Given an observed range of 10 to 20", t, func() {
		r := heatmap.Range{Min: 10, Max: 20}

		Convey("A ratio of exactly 0.4 lands in Average", func() {
			So(heatmap.Bucket(14, r), ShouldEqual, heatmap.Average)
		})

		Convey("Boundaries are lower-inclusive", func() {
			So(heatmap.Bucket(10, r), ShouldEqual, heatmap.Low)
			So(heatmap.Bucket(11, r), ShouldEqual, heatmap.Low)
			So(heatmap.Bucket(12, r), ShouldEqual, heatmap.BelowAverage)
			So(heatmap.Bucket(13, r), ShouldEqual, heatmap.BelowAverage)
			So(heatmap.Bucket(16, r), ShouldEqual, heatmap.AboveAverage)
			So(heatmap.Bucket(18, r), ShouldEqual, heatmap.High)
			So(heatmap.Bucket(20, r), ShouldEqual, heatmap.High)
		})

		Convey("Bucketing is monotonic over the range", func() {
			prev := heatmap.Bucket(r.Min, r)
			for v := r.Min + 1; v <= r.Max; v++ {
				cur := heatmap.Bucket(v, r)
				So(int(cur), ShouldBeGreaterThanOrEqualTo, int(prev))
				prev = cur
			}
		})

		Convey("Zero is no data, never Low", func() {
			So(heatmap.Bucket(0, r), ShouldEqual, heatmap.NoData)
		})
	})

	Convey("Given values landing exactly on a boundary", t, func() {
		r := heatmap.Range{Min: 1, Max: 6}
		So(heatmap.Bucket(4, r), ShouldEqual, heatmap.AboveAverage)
		r = heatmap.Range{Min: 7, Max: 107}
		So(heatmap.Bucket(67, r), ShouldEqual, heatmap.AboveAverage)
		So(heatmap.Bucket(66, r), ShouldEqual, heatmap.Average)
	})

	Convey("Given a degenerate range", t, func() {
		So(heatmap.Bucket(15, heatmap.Range{Min: 15, Max: 15}), ShouldEqual, heatmap.Low)
		So(heatmap.Bucket(99, heatmap.Range{}), ShouldEqual, heatmap.Low)
	})

	Convey("Tiers encode by name", t, func() {
		b, err := json.Marshal([]heatmap.Tier{heatmap.NoData, heatmap.Low, heatmap.High})
		So(err, ShouldBeNil)
		So(string(b), ShouldEqual, `["no_data","low","high"]`)
	})
}

func TestObserve(t *testing.T) {
	c := &chart.PointChart{
		Year: 2026,
		Seasons: []chart.Season{
			{
				Name:       "Adventure",
				DateRanges: []chart.DateRange{rng("2026-01-01", "2026-01-31")},
				Rooms: map[string]chart.RoomCost{
					"studio_standard": {Weekday: 10, Weekend: 14},
					"villa_lake_view": {Weekday: 40, Weekend: 0},
				},
			},
			{
				Name:       "Peak",
				DateRanges: []chart.DateRange{rng("2026-03-01", "2026-03-31")},
				Rooms: map[string]chart.RoomCost{
					"studio_standard": {Weekday: 20, Weekend: 26},
				},
			},
		},
	}

	Convey("Given a chart", t, func() {
		Convey("The single-room scope only sees that room's priced days", func() {
			days, err := daycost.Evaluate(c, 2026, "studio_standard")
			So(err, ShouldBeNil)
			So(heatmap.ObserveDays(days), ShouldResemble, heatmap.Range{Min: 10, Max: 26})
		})

		Convey("The chart scope sees every non-zero cell", func() {
			So(heatmap.ObserveChart(c), ShouldResemble, heatmap.Range{Min: 10, Max: 40})
		})

		Convey("A room with no priced days observes an empty range", func() {
			days, err := daycost.Evaluate(c, 2026, "bungalow")
			So(err, ShouldBeNil)
			r := heatmap.ObserveDays(days)
			So(r.Empty(), ShouldBeTrue)
		})
	})

	Convey("Given the annual view", t, func() {
		days, err := daycost.Evaluate(c, 2026, "studio_standard")
		So(err, ShouldBeNil)
		v := heatmap.Annual("studio_standard", days)

		Convey("Days are grouped into twelve months with grid offsets", func() {
			So(v.Months, ShouldHaveLength, 12)
			So(v.Months[0].Name, ShouldEqual, "January")
			So(v.Months[0].Offset, ShouldEqual, int(time.Thursday))
			So(v.Months[1].Days, ShouldHaveLength, 28)
		})

		Convey("Tiers use the room's own range", func() {
			So(v.Months[0].Days[0].Tier, ShouldEqual, heatmap.Low)    // 10
			So(v.Months[2].Days[6].Tier, ShouldEqual, heatmap.High)   // 2026-03-07 Sat, 26
			So(v.Months[1].Days[0].Tier, ShouldEqual, heatmap.NoData) // February uncovered
		})
	})

	Convey("Given the chart table", t, func() {
		v := heatmap.ChartTable(c, rooms.DefaultCatalog())

		Convey("Rows are per room with parsed room info", func() {
			So(v.Rows, ShouldHaveLength, 2)
			So(v.Rows[0].Key, ShouldEqual, "studio_standard")
			So(v.Rows[0].RoomType, ShouldEqual, "studio")
			So(v.Rows[0].View, ShouldEqual, "standard")
			So(v.Rows[1].View, ShouldEqual, "lake_view")
		})

		Convey("Cells are normalized globally", func() {
			So(v.Range, ShouldResemble, heatmap.Range{Min: 10, Max: 40})
			studio := v.Rows[0].Seasons
			So(studio[0].Weekday.Tier, ShouldEqual, heatmap.Low)
			So(studio[1].Weekend.Tier, ShouldEqual, heatmap.Average) // 26: ratio 16/30
			villa := v.Rows[1].Seasons
			So(villa[0].Weekday.Tier, ShouldEqual, heatmap.High)
			So(villa[0].Weekend.Tier, ShouldEqual, heatmap.NoData)
			So(villa[1].Weekday.Offered, ShouldBeFalse)
		})
	})
}
