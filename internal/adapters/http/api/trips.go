package api

import (
	"net/http"

	"github.com/okian/pointchart/internal/domain/scenario"
	"github.com/okian/pointchart/pkg/logger"
)

// TripsHandler answers which rooms each contract can afford.
type TripsHandler struct {
	deps   TripExplorer
	logger logger.Logger
}

// NewTripsHandler creates a new trips handler.
func NewTripsHandler(deps TripExplorer, l logger.Logger) *TripsHandler {
	return &TripsHandler{deps: deps, logger: l}
}

type exploreRequest struct {
	Contracts []scenario.ContractBaseline `json:"contracts"`
	CheckIn   string                      `json:"check_in"`
	CheckOut  string                      `json:"check_out"`
}

// HandleExplore handles POST /trips/explore.
func (h *TripsHandler) HandleExplore(w http.ResponseWriter, r *http.Request) {
	const op = "api.explore_trips"
	var req exploreRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(r.Context(), w, h.logger, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	in, out, err := parseDates(req.CheckIn, req.CheckOut)
	if err != nil {
		fail(r.Context(), w, h.logger, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	res, err := h.deps.ExploreTrips(r.Context(), req.Contracts, in, out)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
