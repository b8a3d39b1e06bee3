package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/okian/pointchart/internal/domain/scenario"
	"github.com/okian/pointchart/pkg/logger"
)

// ScenarioHandler evaluates what-if bookings.
type ScenarioHandler struct {
	deps   ScenarioEvaluator
	logger logger.Logger
}

// NewScenarioHandler creates a new scenario handler.
func NewScenarioHandler(deps ScenarioEvaluator, l logger.Logger) *ScenarioHandler {
	return &ScenarioHandler{deps: deps, logger: l}
}

// scenarioRequest mirrors the OpenAPI schema for POST /scenarios/evaluate.
type scenarioRequest struct {
	Contracts []scenario.ContractBaseline `json:"contracts"`
	Bookings  []bookingRequest            `json:"hypothetical_bookings"`
}

type bookingRequest struct {
	ID           string `json:"id"`
	ContractID   int    `json:"contract_id"`
	ContractName string `json:"contract_name"`
	Resort       string `json:"resort"`
	ResortName   string `json:"resort_name"`
	RoomKey      string `json:"room_key"`
	CheckIn      string `json:"check_in"`
	CheckOut     string `json:"check_out"`
}

func (b bookingRequest) toBooking() (scenario.HypotheticalBooking, error) {
	if strings.TrimSpace(b.Resort) == "" || strings.TrimSpace(b.RoomKey) == "" {
		return scenario.HypotheticalBooking{}, fmt.Errorf("booking %q: missing resort or room_key", b.ID)
	}
	in, out, err := parseDates(b.CheckIn, b.CheckOut)
	if err != nil {
		return scenario.HypotheticalBooking{}, fmt.Errorf("booking %q: %w", b.ID, err)
	}
	id := b.ID
	if id == "" {
		id = uuid.NewString()
	}
	return scenario.HypotheticalBooking{
		ID:           id,
		ContractID:   b.ContractID,
		ContractName: b.ContractName,
		Resort:       b.Resort,
		ResortName:   b.ResortName,
		RoomKey:      b.RoomKey,
		CheckIn:      in,
		CheckOut:     out,
	}, nil
}

// HandleEvaluate handles POST /scenarios/evaluate.
func (h *ScenarioHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	const op = "api.evaluate_scenario"
	var req scenarioRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(r.Context(), w, h.logger, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	bookings := make([]scenario.HypotheticalBooking, 0, len(req.Bookings))
	for _, b := range req.Bookings {
		booking, err := b.toBooking()
		if err != nil {
			fail(r.Context(), w, h.logger, op, WrapKind(op, ErrBadRequest, err))
			return
		}
		bookings = append(bookings, booking)
	}
	resp, err := h.deps.EvaluateScenario(r.Context(), req.Contracts, bookings)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
