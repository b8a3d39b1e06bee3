// Package scenario compares a baseline point position against one with
// additional hypothetical bookings applied.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/okian/pointchart/internal/domain/chart"
	"github.com/okian/pointchart/internal/domain/eligibility"
)

// Sentinel kinds for caller errors.
var (
	ErrAmbiguousBooking  = errors.New("ambiguous booking")
	ErrAmbiguousContract = errors.New("ambiguous contract")
	ErrUnknownContract   = errors.New("unknown contract")
)

// DefaultUnresolvedReason is reported for bookings with no resolved cost and
// no recorded failure.
const DefaultUnresolvedReason = "Point chart data not available"

// HypotheticalBooking is a what-if booking held in caller scratch state.
type HypotheticalBooking struct {
	ID           string    `json:"id"`
	ContractID   int       `json:"contract_id"`
	ContractName string    `json:"contract_name"`
	Resort       string    `json:"resort"`
	ResortName   string    `json:"resort_name"`
	RoomKey      string    `json:"room_key"`
	CheckIn      time.Time `json:"-"`
	CheckOut     time.Time `json:"-"`
}

// Key returns the composite key used to match resolved costs.
func (b HypotheticalBooking) Key() Key {
	return Key{ContractID: b.ContractID, Resort: b.Resort, RoomKey: b.RoomKey, CheckIn: chart.DateKey(b.CheckIn)}
}

// MarshalJSON renders dates as YYYY-MM-DD.
func (b HypotheticalBooking) MarshalJSON() ([]byte, error) {
	type plain HypotheticalBooking
	return json.Marshal(struct {
		plain
		CheckIn  string `json:"check_in"`
		CheckOut string `json:"check_out"`
	}{plain: plain(b), CheckIn: chart.DateKey(b.CheckIn), CheckOut: chart.DateKey(b.CheckOut)})
}

// ResolvedBooking is the priced form of a hypothetical booking.
type ResolvedBooking struct {
	ContractID int       `json:"contract_id"`
	Resort     string    `json:"resort"`
	RoomKey    string    `json:"room_key"`
	CheckIn    time.Time `json:"-"`
	CheckOut   time.Time `json:"-"`
	PointsCost int       `json:"points_cost"`
	NumNights  int       `json:"num_nights"`
}

// Key returns the composite key used to match hypothetical bookings.
func (r ResolvedBooking) Key() Key {
	return Key{ContractID: r.ContractID, Resort: r.Resort, RoomKey: r.RoomKey, CheckIn: chart.DateKey(r.CheckIn)}
}

// MarshalJSON renders dates as YYYY-MM-DD.
func (r ResolvedBooking) MarshalJSON() ([]byte, error) {
	type plain ResolvedBooking
	return json.Marshal(struct {
		plain
		CheckIn  string `json:"check_in"`
		CheckOut string `json:"check_out"`
	}{plain: plain(r), CheckIn: chart.DateKey(r.CheckIn), CheckOut: chart.DateKey(r.CheckOut)})
}

// Key identifies a booking within one evaluation batch.
type Key struct {
	ContractID int
	Resort     string
	RoomKey    string
	CheckIn    string
}

func (k Key) String() string {
	return fmt.Sprintf("%d/%s/%s/%s", k.ContractID, k.Resort, k.RoomKey, k.CheckIn)
}

// ContractBaseline is a contract's available points before the scenario.
type ContractBaseline struct {
	ContractID        int                      `json:"contract_id"`
	ContractName      string                   `json:"contract_name"`
	HomeResort        string                   `json:"home_resort"`
	PurchaseType      eligibility.PurchaseType `json:"purchase_type,omitempty"`
	BaselineAvailable int                      `json:"baseline_available"`
}

// Name returns the contract name, falling back to the home resort.
func (c ContractBaseline) Name() string {
	if c.ContractName != "" {
		return c.ContractName
	}
	return c.HomeResort
}

// IndexContracts maps contracts by id. Two rows sharing an id are a caller error.
func IndexContracts(contracts []ContractBaseline) (map[int]ContractBaseline, error) {
	index := make(map[int]ContractBaseline, len(contracts))
	for _, c := range contracts {
		if _, dup := index[c.ContractID]; dup {
			return nil, fmt.Errorf("%w: contract %d appears twice", ErrAmbiguousContract, c.ContractID)
		}
		index[c.ContractID] = c
	}
	return index, nil
}

// CheckEligibility verifies every booking targets a resort its contract may
// book. Bookings for unknown contracts are left to Reconcile.
func CheckEligibility(contracts []ContractBaseline, bookings []HypotheticalBooking, rules *eligibility.Rules) error {
	index, err := IndexContracts(contracts)
	if err != nil {
		return err
	}
	for _, b := range bookings {
		c, ok := index[b.ContractID]
		if !ok {
			continue
		}
		if err := rules.Check(c.HomeResort, c.PurchaseType, b.Resort); err != nil {
			return fmt.Errorf("contract %d: %w", b.ContractID, err)
		}
	}
	return nil
}

// ContractResult is one row of the comparison table.
type ContractResult struct {
	ContractID        int    `json:"contract_id"`
	ContractName      string `json:"contract_name"`
	HomeResort        string `json:"home_resort"`
	BaselineAvailable int    `json:"baseline_available"`
	ScenarioAvailable int    `json:"scenario_available"`
	Impact            int    `json:"impact"`
}

// Summary totals the comparison table.
type Summary struct {
	BaselineAvailable       int `json:"baseline_available"`
	ScenarioAvailable       int `json:"scenario_available"`
	TotalImpact             int `json:"total_impact"`
	NumHypotheticalBookings int `json:"num_hypothetical_bookings"`
}

// BookingError explains why a booking was not applied.
type BookingError struct {
	BookingID string `json:"booking_id,omitempty"`
	Resort    string `json:"resort"`
	RoomKey   string `json:"room_key"`
	Error     string `json:"error"`
}

// Response is the scenario evaluation result.
type Response struct {
	Contracts        []ContractResult  `json:"contracts"`
	Summary          Summary           `json:"summary"`
	ResolvedBookings []ResolvedBooking `json:"resolved_bookings"`
	Errors           []BookingError    `json:"errors"`
}

// Input bundles everything Reconcile needs.
type Input struct {
	Contracts []ContractBaseline
	Bookings  []HypotheticalBooking
	Resolved  []ResolvedBooking
	// Failures optionally carries a reason per unresolved booking key.
	Failures map[Key]string
}

// Reconcile folds resolved booking costs into per-contract baseline vs
// scenario points. Every contract referenced by a booking is reported, in
// contract id order. A booking with no resolved cost is listed in Errors and
// leaves its contract's scenario untouched.
//
// Duplicate contract ids, duplicate keys among bookings or among resolved
// entries, and bookings for contracts without a baseline are caller errors.
func Reconcile(in Input) (Response, error) {
	baselines, err := IndexContracts(in.Contracts)
	if err != nil {
		return Response{}, err
	}

	resolved := make(map[Key]ResolvedBooking, len(in.Resolved))
	for _, r := range in.Resolved {
		k := r.Key()
		if _, dup := resolved[k]; dup {
			return Response{}, fmt.Errorf("%w: resolved cost %s appears twice", ErrAmbiguousBooking, k)
		}
		resolved[k] = r
	}

	seen := make(map[Key]struct{}, len(in.Bookings))
	spent := make(map[int]int)
	resp := Response{
		Contracts:        []ContractResult{},
		ResolvedBookings: []ResolvedBooking{},
		Errors:           []BookingError{},
	}
	for _, b := range in.Bookings {
		k := b.Key()
		if _, dup := seen[k]; dup {
			return Response{}, fmt.Errorf("%w: booking %s appears twice", ErrAmbiguousBooking, k)
		}
		seen[k] = struct{}{}
		if _, ok := baselines[b.ContractID]; !ok {
			return Response{}, fmt.Errorf("%w: contract %d", ErrUnknownContract, b.ContractID)
		}
		if _, ok := spent[b.ContractID]; !ok {
			spent[b.ContractID] = 0
		}
		r, ok := resolved[k]
		if !ok {
			reason := in.Failures[k]
			if reason == "" {
				reason = DefaultUnresolvedReason
			}
			resp.Errors = append(resp.Errors, BookingError{
				BookingID: b.ID,
				Resort:    b.Resort,
				RoomKey:   b.RoomKey,
				Error:     reason,
			})
			continue
		}
		spent[b.ContractID] += r.PointsCost
		resp.ResolvedBookings = append(resp.ResolvedBookings, r)
	}

	ids := make([]int, 0, len(spent))
	for id := range spent {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		base := baselines[id]
		scen := base.BaselineAvailable - spent[id]
		resp.Contracts = append(resp.Contracts, ContractResult{
			ContractID:        id,
			ContractName:      base.Name(),
			HomeResort:        base.HomeResort,
			BaselineAvailable: base.BaselineAvailable,
			ScenarioAvailable: scen,
			Impact:            base.BaselineAvailable - scen,
		})
		resp.Summary.BaselineAvailable += base.BaselineAvailable
		resp.Summary.ScenarioAvailable += scen
	}
	resp.Summary.TotalImpact = resp.Summary.BaselineAvailable - resp.Summary.ScenarioAvailable
	resp.Summary.NumHypotheticalBookings = len(resp.ResolvedBookings)
	return resp, nil
}
