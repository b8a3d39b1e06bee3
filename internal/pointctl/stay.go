package pointctl

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/pointchart/internal/domain/chart"
	"github.com/okian/pointchart/internal/domain/stay"
)

func (c *cli) stayCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "stay <resort> <room> <check-in> <check-out>",
		Short:   "Price a stay night by night",
		Example: "  pointctl stay polynesian deluxe_studio_standard 2026-01-08 2026-01-11",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out, err := parseStay(args[2], args[3])
			if err != nil {
				return err
			}
			q, err := c.svc.QuoteStay(cmd.Context(), args[0], args[1], in, out)
			if err != nil && !errors.Is(err, stay.ErrUnpricedStay) {
				return err
			}
			if rerr := c.render(cmd.OutOrStdout(), q, func(w io.Writer) error { return quoteText(w, q) }); rerr != nil {
				return rerr
			}
			return err
		},
	}
}

func quoteText(w io.Writer, q stay.Quote) error {
	rows := make([][]string, 0, len(q.Nightly))
	for _, n := range q.Nightly {
		rows = append(rows, []string{chart.DateKey(n.Date), n.DayOfWeek, n.Season, points(n.Points, n.Priced)})
	}
	if err := table(w, []string{"DATE", "DAY", "SEASON", "POINTS"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "total: %d points for %d nights\n", q.TotalPoints, q.NumNights)
	return err
}

func (c *cli) compareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <resort> <check-in> <check-out>",
		Short: "Compare every fully priced room for a stay, cheapest first",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			in, out, err := parseStay(args[1], args[2])
			if err != nil {
				return err
			}
			opts, err := c.svc.CompareStays(cmd.Context(), args[0], in, out)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), opts, func(w io.Writer) error {
				rows := make([][]string, 0, len(opts))
				for _, o := range opts {
					rows = append(rows, []string{o.RoomKey, strconv.Itoa(o.TotalPoints), strconv.Itoa(o.NumNights), strconv.Itoa(o.NightlyAvg)})
				}
				return table(w, []string{"ROOM", "TOTAL", "NIGHTS", "AVG"}, rows)
			})
		},
	}
}

func parseStay(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := chart.ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check-in: %w", ErrUsage, err)
	}
	out, err := chart.ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: check-out: %w", ErrUsage, err)
	}
	return in, out, nil
}
