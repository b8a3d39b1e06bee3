package heatmap

import (
	"time"

	"github.com/okian/pointchart/internal/domain/chart"
	"github.com/okian/pointchart/internal/domain/daycost"
	"github.com/okian/pointchart/internal/domain/rooms"
)

// DayCell is one day of the annual view.
type DayCell struct {
	Date      string `json:"date"`
	Day       int    `json:"day"`
	Points    int    `json:"points"`
	Season    string `json:"season"`
	IsWeekend bool   `json:"is_weekend"`
	Priced    bool   `json:"priced"`
	Tier      Tier   `json:"tier"`
}

// Month groups the cells of one calendar month.
type Month struct {
	Month time.Month `json:"month"`
	Name  string     `json:"name"`
	// Offset is the weekday of the 1st (0 = Sunday), for grid padding.
	Offset int       `json:"offset"`
	Days   []DayCell `json:"days"`
}

// AnnualView is the single-room heat map for a year.
type AnnualView struct {
	RoomKey string  `json:"room_key"`
	Range   Range   `json:"range"`
	Months  []Month `json:"months"`
}

// Annual normalizes days over their own priced range and groups them by month.
// Unpriced or zero-point days get NoData.
func Annual(roomKey string, days []daycost.DayCost) AnnualView {
	r := ObserveDays(days)
	v := AnnualView{RoomKey: roomKey, Range: r}
	for _, d := range days {
		if len(v.Months) == 0 || v.Months[len(v.Months)-1].Month != d.Date.Month() {
			first := time.Date(d.Date.Year(), d.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
			v.Months = append(v.Months, Month{
				Month:  d.Date.Month(),
				Name:   d.Date.Month().String(),
				Offset: int(first.Weekday()),
			})
		}
		tier := NoData
		if d.Priced {
			tier = Bucket(d.Points, r)
		}
		m := &v.Months[len(v.Months)-1]
		m.Days = append(m.Days, DayCell{
			Date:      d.DateKey(),
			Day:       d.Day,
			Points:    d.Points,
			Season:    d.Season,
			IsWeekend: d.IsWeekend,
			Priced:    d.Priced,
			Tier:      tier,
		})
	}
	return v
}

// Cell is one weekday or weekend price in the chart table.
type Cell struct {
	Points int  `json:"points"`
	Tier   Tier `json:"tier"`
	// Offered is false when the season has no price for the room.
	Offered bool `json:"offered"`
}

// SeasonCells holds a room's prices in one season.
type SeasonCells struct {
	Season  string `json:"season"`
	Weekday Cell   `json:"weekday"`
	Weekend Cell   `json:"weekend"`
}

// Row is one room across all seasons.
type Row struct {
	rooms.RoomInfo
	Seasons []SeasonCells `json:"seasons"`
}

// TableView is the whole-chart heat table.
type TableView struct {
	Year  int   `json:"year"`
	Range Range `json:"range"`
	Rows  []Row `json:"rows"`
}

// ChartTable normalizes every room/season/weekday-weekend cell of c against
// the chart-wide range. Rows follow sorted room keys; seasons follow chart order.
func ChartTable(c *chart.PointChart, catalog *rooms.Catalog) TableView {
	r := ObserveChart(c)
	view := TableView{Year: c.Year, Range: r}
	for _, info := range catalog.ParseAll(c.RoomKeys()) {
		row := Row{RoomInfo: info, Seasons: make([]SeasonCells, 0, len(c.Seasons))}
		for _, s := range c.Seasons {
			sc := SeasonCells{Season: s.Name, Weekday: Cell{Tier: NoData}, Weekend: Cell{Tier: NoData}}
			if cost, ok := s.Rooms[info.Key]; ok {
				sc.Weekday = Cell{Points: cost.Weekday, Tier: Bucket(cost.Weekday, r), Offered: true}
				sc.Weekend = Cell{Points: cost.Weekend, Tier: Bucket(cost.Weekend, r), Offered: true}
			}
			row.Seasons = append(row.Seasons, sc)
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}
