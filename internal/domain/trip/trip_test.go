package trip_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/okian/pointchart/internal/domain/chart"
	"github.com/okian/pointchart/internal/domain/eligibility"
	"github.com/okian/pointchart/internal/domain/scenario"
	"github.com/okian/pointchart/internal/domain/stay"
	"github.com/okian/pointchart/internal/domain/trip"
	. "github.com/smartystreets/goconvey/convey"
)

func date(s string) time.Time {
	t, err := chart.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return t
}

func yearChart(resort string, year int, rooms map[string]chart.RoomCost) *chart.PointChart {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &chart.PointChart{
		Resort: resort,
		Year:   year,
		Seasons: []chart.Season{{
			Name:       "Adventure",
			DateRanges: []chart.DateRange{{Start: start, End: start.AddDate(0, 11, 30)}},
			Rooms:      rooms,
		}},
	}
}

func testCharts() trip.Charts {
	return trip.Charts{
		"polynesian": {yearChart("polynesian", 2026, map[string]chart.RoomCost{
			"studio_standard": {Weekday: 10, Weekend: 14},
			"villa_lake_view": {Weekday: 40, Weekend: 50},
		})},
		"riviera": {yearChart("riviera", 2026, map[string]chart.RoomCost{
			"tower_studio": {Weekday: 20, Weekend: 25},
		})},
		"bay_lake_tower": {yearChart("bay_lake_tower", 2027, map[string]chart.RoomCost{
			"studio": {Weekday: 5, Weekend: 5},
		})},
	}
}

func TestAffordable(t *testing.T) {
	// 2026-01-05 is a Monday: three weekday nights.
	in, out := date("2026-01-05"), date("2026-01-08")
	rules := eligibility.DefaultRules()

	Convey("Given contracts with different eligibility and balances", t, func() {
		contracts := []scenario.ContractBaseline{
			{ContractID: 4, HomeResort: "polynesian", PurchaseType: eligibility.Direct, BaselineAvailable: 120},
			{ContractID: 1, ContractName: "Poly", HomeResort: "polynesian", PurchaseType: eligibility.Resale, BaselineAvailable: 60},
			{ContractID: 2, ContractName: "Riv", HomeResort: "riviera", PurchaseType: eligibility.Resale, BaselineAvailable: 60},
			{ContractID: 3, ContractName: "Empty", HomeResort: "polynesian", BaselineAvailable: 0},
		}
		res, err := trip.Affordable(contracts, testCharts(), rules, in, out)
		So(err, ShouldBeNil)

		Convey("Options are the affordable eligible rooms, cheapest first", func() {
			So(res.NumNights, ShouldEqual, 3)
			So(res.TotalOptions, ShouldEqual, 5)
			type row struct {
				contract int
				resort   string
				room     string
				total    int
			}
			var got []row
			for _, o := range res.Options {
				got = append(got, row{o.ContractID, o.Resort, o.RoomKey, o.TotalPoints})
			}
			So(got, ShouldResemble, []row{
				{1, "polynesian", "studio_standard", 30},
				{4, "polynesian", "studio_standard", 30},
				{2, "riviera", "tower_studio", 60},
				{4, "riviera", "tower_studio", 60},
				{4, "polynesian", "villa_lake_view", 120},
			})
		})

		Convey("A total equal to the available points is kept with nothing remaining", func() {
			riv := res.Options[2]
			So(riv.AvailablePoints, ShouldEqual, 60)
			So(riv.PointsRemaining, ShouldEqual, 0)
			villa := res.Options[4]
			So(villa.PointsRemaining, ShouldEqual, 0)
		})

		Convey("A total above the available points is dropped", func() {
			for _, o := range res.Options {
				So(o.TotalPoints, ShouldBeLessThanOrEqualTo, o.AvailablePoints)
				if o.ContractID == 1 {
					So(o.RoomKey, ShouldNotEqual, "villa_lake_view")
				}
			}
		})

		Convey("Options carry the remaining points and contract details", func() {
			first := res.Options[0]
			So(first.ContractName, ShouldEqual, "Poly")
			So(first.PointsRemaining, ShouldEqual, 30)
			So(first.NightlyAvg, ShouldEqual, 10)
			So(res.Options[1].ContractName, ShouldEqual, "polynesian")
		})

		Convey("Contracts without points are skipped", func() {
			for _, o := range res.Options {
				So(o.ContractID, ShouldNotEqual, 3)
			}
		})

		Convey("Eligible resorts without a check-in year chart are skipped", func() {
			So(res.ResortsChecked, ShouldResemble, []string{"polynesian", "riviera"})
			So(res.ResortsSkipped, ShouldResemble, []string{"bay_lake_tower"})
		})

		Convey("Dates render as ISO days", func() {
			b, err := json.Marshal(res)
			So(err, ShouldBeNil)
			So(string(b), ShouldStartWith, `{"check_in":"2026-01-05","check_out":"2026-01-08","num_nights":3`)
		})
	})

	Convey("Given caller errors", t, func() {
		c := scenario.ContractBaseline{ContractID: 1, HomeResort: "polynesian", BaselineAvailable: 100}

		Convey("Duplicate contract ids are ambiguous", func() {
			_, err := trip.Affordable([]scenario.ContractBaseline{c, c}, testCharts(), rules, in, out)
			So(errors.Is(err, scenario.ErrAmbiguousContract), ShouldBeTrue)
		})

		Convey("An empty stay is invalid", func() {
			_, err := trip.Affordable([]scenario.ContractBaseline{c}, testCharts(), rules, in, in)
			So(errors.Is(err, stay.ErrInvalidStay), ShouldBeTrue)
		})
	})

	Convey("Given no contracts", t, func() {
		res, err := trip.Affordable(nil, testCharts(), nil, in, out)
		So(err, ShouldBeNil)
		So(res.Options, ShouldBeEmpty)
		So(res.ResortsChecked, ShouldBeEmpty)
		So(res.TotalOptions, ShouldEqual, 0)
	})
}
