package pointctl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/pointchart/internal/domain/heatmap"
)

func (c *cli) chartsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "charts",
		Short: "List loaded charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			refs, err := c.svc.Charts(cmd.Context())
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), refs, func(w io.Writer) error {
				rows := make([][]string, 0, len(refs))
				for _, r := range refs {
					rows = append(rows, []string{r.Resort, strconv.Itoa(r.Year), r.Source})
				}
				return table(w, []string{"RESORT", "YEAR", "SOURCE"}, rows)
			})
		},
	}
}

func (c *cli) roomsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rooms <resort> <year>",
		Short: "List the rooms a chart offers",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[1])
			if err != nil {
				return err
			}
			infos, err := c.svc.Rooms(cmd.Context(), args[0], year)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), infos, func(w io.Writer) error {
				rows := make([][]string, 0, len(infos))
				for _, info := range infos {
					rows = append(rows, []string{info.Key, info.DisplayType(), info.DisplayView()})
				}
				return table(w, []string{"KEY", "TYPE", "VIEW"}, rows)
			})
		},
	}
}

func (c *cli) daysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "days <resort> <year> <room>",
		Short: "Print the cost of every day of the year for a room",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[1])
			if err != nil {
				return err
			}
			days, err := c.svc.DayCosts(cmd.Context(), args[0], year, args[2])
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), days, func(w io.Writer) error {
				rows := make([][]string, 0, len(days))
				for _, d := range days {
					rows = append(rows, []string{
						d.DateKey(),
						d.Date.Weekday().String()[:3],
						d.Season,
						points(d.Points, d.Priced),
						yesNo(d.IsWeekend),
					})
				}
				return table(w, []string{"DATE", "DAY", "SEASON", "POINTS", "WEEKEND"}, rows)
			})
		},
	}
}

func (c *cli) heatmapCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "heatmap <resort> <year> [room]",
		Short: "Render a room calendar, or the whole-chart table without a room",
		Long: `With a room, prints one line per month with a digit per day from 1 (low)
to 5 (high) and '.' for days without data. Without a room, prints every
room and season normalized over the whole chart.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			year, err := parseYear(args[1])
			if err != nil {
				return err
			}
			if len(args) == 3 {
				view, err := c.svc.Heatmap(cmd.Context(), args[0], year, args[2])
				if err != nil {
					return err
				}
				return c.render(cmd.OutOrStdout(), view, func(w io.Writer) error {
					return annualText(w, view)
				})
			}
			view, err := c.svc.ChartTable(cmd.Context(), args[0], year)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), view, func(w io.Writer) error {
				return tableText(w, view)
			})
		},
	}
}

func annualText(w io.Writer, v heatmap.AnnualView) error {
	fmt.Fprintf(w, "%s (%d-%d points)\n", v.RoomKey, v.Range.Min, v.Range.Max)
	for _, m := range v.Months {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", m.Offset))
		for _, d := range m.Days {
			b.WriteString(tierGlyph(d.Tier))
		}
		if _, err := fmt.Fprintf(w, "%-10s %s\n", m.Name, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func tableText(w io.Writer, v heatmap.TableView) error {
	var rows [][]string
	for _, r := range v.Rows {
		for _, s := range r.Seasons {
			rows = append(rows, []string{
				r.Key,
				s.Season,
				cellText(s.Weekday),
				cellText(s.Weekend),
			})
		}
	}
	return table(w, []string{"ROOM", "SEASON", "WEEKDAY", "WEEKEND"}, rows)
}

func cellText(c heatmap.Cell) string {
	if !c.Offered {
		return "-"
	}
	return fmt.Sprintf("%d (%s)", c.Points, c.Tier)
}

func parseYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil || year < 1 {
		return 0, fmt.Errorf("%w: bad year %q", ErrUsage, s)
	}
	return year, nil
}
