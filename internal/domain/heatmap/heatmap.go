// Package heatmap buckets point values into five ordered visual tiers
// relative to an observed range.
package heatmap

import (
	"github.com/okian/pointchart/internal/domain/chart"
	"github.com/okian/pointchart/internal/domain/daycost"
)

// Tier is an ordered heat bucket. NoData sorts below every real tier.
type Tier int

// Heat tiers in ascending order.
const (
	NoData Tier = iota - 1
	Low
	BelowAverage
	Average
	AboveAverage
	High
)

const tierCount = 5

var tierNames = map[Tier]string{
	NoData:       "no_data",
	Low:          "low",
	BelowAverage: "below_average",
	Average:      "average",
	AboveAverage: "above_average",
	High:         "high",
}

// String returns the wire name of the tier.
func (t Tier) String() string {
	if n, ok := tierNames[t]; ok {
		return n
	}
	return "unknown"
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Range is an observed [Min, Max] of non-zero point values. An empty range
// (no observations) has Min == Max == 0.
type Range struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Observe widens r to include v. Zero values are ignored.
func (r Range) Observe(v int) Range {
	if v == 0 {
		return r
	}
	if r.Empty() {
		return Range{Min: v, Max: v}
	}
	if v < r.Min {
		r.Min = v
	}
	if v > r.Max {
		r.Max = v
	}
	return r
}

// Empty reports whether nothing has been observed.
func (r Range) Empty() bool { return r.Min == 0 && r.Max == 0 }

// Bucket maps value to a tier within r. Zero values are NoData. A degenerate
// range (Max == Min) always yields Low. Otherwise the ratio
// (value-Min)/(Max-Min) is bucketed at 0.2, 0.4, 0.6 and 0.8, lower-inclusive.
// The comparison is done in integers so boundaries are exact.
func Bucket(value int, r Range) Tier {
	if value == 0 {
		return NoData
	}
	if r.Max == r.Min {
		return Low
	}
	num := tierCount * (value - r.Min)
	if num < 0 {
		return Low
	}
	idx := num / (r.Max - r.Min)
	if idx >= tierCount {
		idx = tierCount - 1
	}
	return Tier(idx)
}

// ObserveDays returns the range of priced, non-zero points over days.
// This is the single-room annual scope.
func ObserveDays(days []daycost.DayCost) Range {
	var r Range
	for _, d := range days {
		if !d.Priced {
			continue
		}
		r = r.Observe(d.Points)
	}
	return r
}

// ObserveChart returns the range over every room, season and
// weekday/weekend cell of c. This is the whole-chart tabular scope.
func ObserveChart(c *chart.PointChart) Range {
	var r Range
	if c == nil {
		return r
	}
	for _, s := range c.Seasons {
		for _, cost := range s.Rooms {
			r = r.Observe(cost.Weekday).Observe(cost.Weekend)
		}
	}
	return r
}
