package repository

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/okian/pointchart/internal/domain/chart"
	"gopkg.in/yaml.v3"
)

// Supported chart file formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// yamlChart mirrors the JSON layout; date ranges are [start, end] string pairs.
type yamlChart struct {
	Resort  string       `yaml:"resort"`
	Year    int          `yaml:"year"`
	Seasons []yamlSeason `yaml:"seasons"`
}

type yamlSeason struct {
	Name       string                    `yaml:"name"`
	DateRanges [][]string                `yaml:"date_ranges"`
	Rooms      map[string]chart.RoomCost `yaml:"rooms"`
}

// Decode parses a chart document in the given format and validates it.
func Decode(format string, data []byte) (*chart.PointChart, error) {
	var (
		c   *chart.PointChart
		err error
	)
	switch format {
	case FormatJSON:
		c, err = decodeJSON(data)
	case FormatYAML:
		c, err = decodeYAML(data)
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidFile, format)
	}
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func decodeJSON(data []byte) (*chart.PointChart, error) {
	var c chart.PointChart
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	return &c, nil
}

func decodeYAML(data []byte) (*chart.PointChart, error) {
	var doc yamlChart
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFile, err)
	}
	c := &chart.PointChart{Resort: doc.Resort, Year: doc.Year, Seasons: make([]chart.Season, 0, len(doc.Seasons))}
	for _, s := range doc.Seasons {
		season := chart.Season{Name: s.Name, Rooms: s.Rooms, DateRanges: make([]chart.DateRange, 0, len(s.DateRanges))}
		for _, pair := range s.DateRanges {
			if len(pair) != 2 {
				return nil, fmt.Errorf("%w: season %q: date range must have 2 dates, got %d", chart.ErrInvalidChart, s.Name, len(pair))
			}
			r, err := chart.NewDateRange(pair[0], pair[1])
			if err != nil {
				return nil, fmt.Errorf("season %q: %w", s.Name, err)
			}
			season.DateRanges = append(season.DateRanges, r)
		}
		c.Seasons = append(c.Seasons, season)
	}
	return c, nil
}
