package calendar_test

import (
	"errors"
	"testing"
	"time"

	"github.com/okian/pointchart/internal/domain/calendar"
	"github.com/okian/pointchart/internal/domain/chart"
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

func TestIsWeekend(t *testing.T) {
	Convey("Given the Friday/Saturday weekend rule", t, func() {
		So(calendar.IsWeekend(date("2026-01-02")), ShouldBeTrue)  // Friday
		So(calendar.IsWeekend(date("2026-01-03")), ShouldBeTrue)  // Saturday
		So(calendar.IsWeekend(date("2026-01-04")), ShouldBeFalse) // Sunday
		So(calendar.IsWeekend(date("2026-01-08")), ShouldBeFalse) // Thursday

		Convey("It holds for every day across a year boundary", func() {
			for d := date("2025-12-20"); d.Before(date("2026-01-15")); d = d.AddDate(0, 0, 1) {
				want := d.Weekday() == time.Friday || d.Weekday() == time.Saturday
				So(calendar.IsWeekend(d), ShouldEqual, want)
			}
		})
	})
}

func TestDaysIn(t *testing.T) {
	Convey("Leap years have 366 days", t, func() {
		So(calendar.DaysIn(2026), ShouldEqual, 365)
		So(calendar.DaysIn(2028), ShouldEqual, 366)
		So(calendar.DaysIn(2100), ShouldEqual, 365)
	})
}

func TestResolve(t *testing.T) {
	Convey("Given disjoint seasons", t, func() {
		seasons := []chart.Season{
			{Name: "Adventure", DateRanges: []chart.DateRange{rng("2026-01-01", "2026-01-31"), rng("2026-09-01", "2026-09-30")}},
			{Name: "Choice", DateRanges: []chart.DateRange{rng("2026-02-01", "2026-02-14")}},
		}
		l, err := calendar.Resolve(seasons, 2026)
		So(err, ShouldBeNil)

		Convey("Every covered day maps to its season", func() {
			for _, s := range seasons {
				for _, r := range s.DateRanges {
					for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
						got, ok := l.Season(d)
						So(ok, ShouldBeTrue)
						So(got.Name, ShouldEqual, s.Name)
					}
				}
			}
			So(l.Len(), ShouldEqual, 31+30+14)
		})

		Convey("Uncovered days map to no season", func() {
			_, ok := l.Season(date("2026-02-15"))
			So(ok, ShouldBeFalse)
			_, ok = l.Season(date("2026-12-31"))
			So(ok, ShouldBeFalse)
		})
	})

	Convey("Given overlapping seasons", t, func() {
		seasons := []chart.Season{
			{Name: "Premier", DateRanges: []chart.DateRange{rng("2026-12-20", "2026-12-31")}},
			{Name: "Peak", DateRanges: []chart.DateRange{rng("2026-12-24", "2026-12-26")}},
		}
		l, err := calendar.Resolve(seasons, 2026)
		So(err, ShouldBeNil)

		Convey("The later season in iteration order wins the shared days", func() {
			s, _ := l.Season(date("2026-12-25"))
			So(s.Name, ShouldEqual, "Peak")
			s, _ = l.Season(date("2026-12-23"))
			So(s.Name, ShouldEqual, "Premier")
			s, _ = l.Season(date("2026-12-27"))
			So(s.Name, ShouldEqual, "Premier")
		})

		Convey("Reversing the order flips the winner", func() {
			rev := []chart.Season{seasons[1], seasons[0]}
			l2, err := calendar.Resolve(rev, 2026)
			So(err, ShouldBeNil)
			s, _ := l2.Season(date("2026-12-25"))
			So(s.Name, ShouldEqual, "Premier")
		})
	})

	Convey("Given a range spilling over into other years", t, func() {
		seasons := []chart.Season{
			{Name: "Holiday", DateRanges: []chart.DateRange{rng("2025-12-28", "2026-01-03"), rng("2026-12-30", "2027-01-02")}},
		}
		l, err := calendar.Resolve(seasons, 2026)
		So(err, ShouldBeNil)

		Convey("Only target-year days are emitted", func() {
			So(l.Len(), ShouldEqual, 3+2)
			_, ok := l.Season(date("2025-12-31"))
			So(ok, ShouldBeFalse)
			_, ok = l.Season(date("2026-01-01"))
			So(ok, ShouldBeTrue)
		})
	})

	Convey("Given a range with start after end", t, func() {
		seasons := []chart.Season{{Name: "Broken", DateRanges: []chart.DateRange{rng("2026-03-10", "2026-03-01")}}}
		_, err := calendar.Resolve(seasons, 2026)

		Convey("Resolve rejects it instead of swapping", func() {
			So(err, ShouldNotBeNil)
			So(errors.Is(err, chart.ErrMalformedRange), ShouldBeTrue)
		})
	})
}
