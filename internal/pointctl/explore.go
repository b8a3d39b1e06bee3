package pointctl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/okian/pointchart/internal/domain/trip"
)

func (c *cli) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore <file> <check-in> <check-out>",
		Short: "List the rooms each contract can afford for a stay",
		Long: `Reads contracts from a JSON or YAML scenario file and lists, for every
contract, the fully priced rooms at its eligible resorts whose total fits its
available points, cheapest first.`,
		Example: "  pointctl explore contracts.yaml 2026-01-08 2026-01-11",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readScenario(args[0])
			if err != nil {
				return err
			}
			in, out, err := parseStay(args[1], args[2])
			if err != nil {
				return err
			}
			res, err := c.svc.ExploreTrips(cmd.Context(), baselines(f.Contracts), in, out)
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), res, func(w io.Writer) error {
				return exploreText(w, res)
			})
		},
	}
}

func exploreText(w io.Writer, res trip.Result) error {
	rows := make([][]string, 0, len(res.Options))
	for _, o := range res.Options {
		rows = append(rows, []string{
			o.ContractName,
			o.Resort,
			o.RoomKey,
			strconv.Itoa(o.TotalPoints),
			strconv.Itoa(o.NightlyAvg),
			strconv.Itoa(o.PointsRemaining),
		})
	}
	if err := table(w, []string{"CONTRACT", "RESORT", "ROOM", "TOTAL", "AVG", "REMAINING"}, rows); err != nil {
		return err
	}
	fmt.Fprintf(w, "%d options for %d nights\n", res.TotalOptions, res.NumNights)
	if len(res.ResortsSkipped) > 0 {
		fmt.Fprintf(w, "no chart: %s\n", strings.Join(res.ResortsSkipped, ", "))
	}
	return nil
}
