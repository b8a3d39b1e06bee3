package pointctl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/okian/pointchart/internal/domain/eligibility"
	"github.com/okian/pointchart/internal/domain/scenario"
)

// scenarioFile is the on-disk shape of a what-if scenario.
type scenarioFile struct {
	Contracts []contractEntry `json:"contracts" yaml:"contracts"`
	Bookings  []bookingEntry  `json:"hypothetical_bookings" yaml:"hypothetical_bookings"`
}

type contractEntry struct {
	ContractID        int                      `json:"contract_id" yaml:"contract_id"`
	ContractName      string                   `json:"contract_name" yaml:"contract_name"`
	HomeResort        string                   `json:"home_resort" yaml:"home_resort"`
	PurchaseType      eligibility.PurchaseType `json:"purchase_type" yaml:"purchase_type"`
	BaselineAvailable int                      `json:"baseline_available" yaml:"baseline_available"`
}

func baselines(entries []contractEntry) []scenario.ContractBaseline {
	contracts := make([]scenario.ContractBaseline, 0, len(entries))
	for _, ct := range entries {
		contracts = append(contracts, scenario.ContractBaseline(ct))
	}
	return contracts
}

type bookingEntry struct {
	ContractID   int    `json:"contract_id" yaml:"contract_id"`
	ContractName string `json:"contract_name" yaml:"contract_name"`
	Resort       string `json:"resort" yaml:"resort"`
	ResortName   string `json:"resort_name" yaml:"resort_name"`
	RoomKey      string `json:"room_key" yaml:"room_key"`
	CheckIn      string `json:"check_in" yaml:"check_in"`
	CheckOut     string `json:"check_out" yaml:"check_out"`
}

func (c *cli) scenarioCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "scenario <file>",
		Short: "Evaluate hypothetical bookings against contract baselines",
		Long: `Reads contracts and hypothetical_bookings from a JSON or YAML file, prices
each booking and prints the per-contract impact.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readScenario(args[0])
			if err != nil {
				return err
			}
			pad := scenario.NewScratchpad(c.cfg.MaxScenarioBookings)
			for _, b := range f.Bookings {
				in, out, err := parseStay(b.CheckIn, b.CheckOut)
				if err != nil {
					return err
				}
				if _, err := pad.Add(scenario.HypotheticalBooking{
					ContractID:   b.ContractID,
					ContractName: b.ContractName,
					Resort:       b.Resort,
					ResortName:   b.ResortName,
					RoomKey:      b.RoomKey,
					CheckIn:      in,
					CheckOut:     out,
				}); err != nil {
					return err
				}
			}
			resp, err := c.svc.EvaluateScenario(cmd.Context(), baselines(f.Contracts), pad.List())
			if err != nil {
				return err
			}
			return c.render(cmd.OutOrStdout(), resp, func(w io.Writer) error {
				return scenarioText(w, resp)
			})
		},
	}
}

func readScenario(path string) (scenarioFile, error) {
	var f scenarioFile
	data, err := os.ReadFile(path)
	if err != nil {
		return f, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&f)
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&f)
	}
	if err != nil {
		return f, fmt.Errorf("%w: %s: %w", ErrUsage, path, err)
	}
	return f, nil
}

func scenarioText(w io.Writer, resp scenario.Response) error {
	rows := make([][]string, 0, len(resp.Contracts))
	for _, ct := range resp.Contracts {
		rows = append(rows, []string{
			strconv.Itoa(ct.ContractID),
			ct.ContractName,
			strconv.Itoa(ct.BaselineAvailable),
			strconv.Itoa(ct.ScenarioAvailable),
			strconv.Itoa(ct.Impact),
		})
	}
	if err := table(w, []string{"CONTRACT", "NAME", "BASELINE", "SCENARIO", "IMPACT"}, rows); err != nil {
		return err
	}
	s := resp.Summary
	fmt.Fprintf(w, "total: %d -> %d (impact %d, %d bookings applied)\n",
		s.BaselineAvailable, s.ScenarioAvailable, s.TotalImpact, s.NumHypotheticalBookings)
	for _, e := range resp.Errors {
		fmt.Fprintf(w, "not applied: %s %s: %s\n", e.Resort, e.RoomKey, e.Error)
	}
	return nil
}
