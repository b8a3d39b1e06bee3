// Package trip answers which rooms each contract can afford for a stay.
package trip

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/okian/pointchart/internal/domain/chart"
	"github.com/okian/pointchart/internal/domain/eligibility"
	"github.com/okian/pointchart/internal/domain/scenario"
	"github.com/okian/pointchart/internal/domain/stay"
)

// Option is one room a contract can afford.
type Option struct {
	ContractID      int    `json:"contract_id"`
	ContractName    string `json:"contract_name"`
	AvailablePoints int    `json:"available_points"`
	Resort          string `json:"resort"`
	RoomKey         string `json:"room_key"`
	TotalPoints     int    `json:"total_points"`
	NumNights       int    `json:"num_nights"`
	PointsRemaining int    `json:"points_remaining"`
	NightlyAvg      int    `json:"nightly_avg"`
}

// Result lists affordable options cheapest first.
type Result struct {
	CheckIn        time.Time `json:"-"`
	CheckOut       time.Time `json:"-"`
	NumNights      int       `json:"num_nights"`
	Options        []Option  `json:"options"`
	ResortsChecked []string  `json:"resorts_checked"`
	ResortsSkipped []string  `json:"resorts_skipped"`
	TotalOptions   int       `json:"total_options"`
}

// MarshalJSON renders dates as YYYY-MM-DD.
func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	return json.Marshal(struct {
		CheckIn  string `json:"check_in"`
		CheckOut string `json:"check_out"`
		plain
	}{CheckIn: chart.DateKey(r.CheckIn), CheckOut: chart.DateKey(r.CheckOut), plain: plain(r)})
}

// Charts maps a resort to the charts covering the stay. A resort is explored
// only when it holds a chart for the check-in year.
type Charts map[string][]*chart.PointChart

// Affordable walks every contract's eligible resorts and keeps the fully
// priced rooms whose total does not exceed the contract's available points.
// Contracts with no available points are skipped. Eligible resorts without a
// check-in year chart are reported in ResortsSkipped.
func Affordable(contracts []scenario.ContractBaseline, charts Charts, rules *eligibility.Rules, checkIn, checkOut time.Time) (Result, error) {
	if err := stay.Validate(checkIn, checkOut, 0); err != nil {
		return Result{}, err
	}
	if _, err := scenario.IndexContracts(contracts); err != nil {
		return Result{}, err
	}
	if rules == nil {
		rules = eligibility.DefaultRules()
	}

	universe := resorts(contracts, charts)
	checked := make(map[string]struct{})
	skipped := make(map[string]struct{})
	quoted := make(map[string][]stay.Option)
	res := Result{
		CheckIn:   chart.Day(checkIn),
		CheckOut:  chart.Day(checkOut),
		NumNights: stay.Nights(checkIn, checkOut),
		Options:   []Option{},
	}

	for _, c := range contracts {
		if c.BaselineAvailable <= 0 {
			continue
		}
		for _, resort := range rules.Filter(c.HomeResort, c.PurchaseType, universe) {
			if !hasYear(charts[resort], checkIn.Year()) {
				skipped[resort] = struct{}{}
				continue
			}
			checked[resort] = struct{}{}
			opts, ok := quoted[resort]
			if !ok {
				var err error
				if opts, err = stay.CompareRooms(charts[resort], checkIn, checkOut); err != nil {
					return Result{}, err
				}
				quoted[resort] = opts
			}
			for _, o := range opts {
				if o.TotalPoints > c.BaselineAvailable {
					// Options are sorted cheapest first.
					break
				}
				res.Options = append(res.Options, Option{
					ContractID:      c.ContractID,
					ContractName:    c.Name(),
					AvailablePoints: c.BaselineAvailable,
					Resort:          resort,
					RoomKey:         o.RoomKey,
					TotalPoints:     o.TotalPoints,
					NumNights:       o.NumNights,
					PointsRemaining: c.BaselineAvailable - o.TotalPoints,
					NightlyAvg:      o.NightlyAvg,
				})
			}
		}
	}

	sort.Slice(res.Options, func(i, j int) bool {
		a, b := res.Options[i], res.Options[j]
		switch {
		case a.TotalPoints != b.TotalPoints:
			return a.TotalPoints < b.TotalPoints
		case a.ContractID != b.ContractID:
			return a.ContractID < b.ContractID
		case a.Resort != b.Resort:
			return a.Resort < b.Resort
		}
		return a.RoomKey < b.RoomKey
	})
	res.ResortsChecked = sortedKeys(checked)
	res.ResortsSkipped = sortedKeys(skipped)
	res.TotalOptions = len(res.Options)
	return res, nil
}

// resorts returns every resort with charts plus every contract home resort, sorted.
func resorts(contracts []scenario.ContractBaseline, charts Charts) []string {
	set := make(map[string]struct{}, len(charts)+len(contracts))
	for r := range charts {
		set[r] = struct{}{}
	}
	for _, c := range contracts {
		if c.HomeResort != "" {
			set[c.HomeResort] = struct{}{}
		}
	}
	return sortedKeys(set)
}

func hasYear(charts []*chart.PointChart, year int) bool {
	for _, c := range charts {
		if c != nil && c.Year == year {
			return true
		}
	}
	return false
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
