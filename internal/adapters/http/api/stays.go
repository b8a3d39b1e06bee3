package api

import (
	"net/http"
	"strings"

	"github.com/okian/pointchart/pkg/logger"
)

// StaysHandler prices stays.
type StaysHandler struct {
	deps   StayPricer
	logger logger.Logger
}

// NewStaysHandler creates a new stays handler.
func NewStaysHandler(deps StayPricer, l logger.Logger) *StaysHandler {
	return &StaysHandler{deps: deps, logger: l}
}

// stayRequest mirrors the OpenAPI schema for POST /stays/calculate.
type stayRequest struct {
	Resort   string `json:"resort"`
	RoomKey  string `json:"room_key"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// compareRequest mirrors the OpenAPI schema for POST /stays/compare.
type compareRequest struct {
	Resort   string `json:"resort"`
	CheckIn  string `json:"check_in"`
	CheckOut string `json:"check_out"`
}

// HandleCalculate handles POST /stays/calculate.
func (h *StaysHandler) HandleCalculate(w http.ResponseWriter, r *http.Request) {
	const op = "api.calculate_stay"
	var req stayRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(r.Context(), w, h.logger, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Resort) == "" || strings.TrimSpace(req.RoomKey) == "" {
		fail(r.Context(), w, h.logger, op, NewKind(op, ErrBadRequest))
		return
	}
	in, out, err := parseDates(req.CheckIn, req.CheckOut)
	if err != nil {
		fail(r.Context(), w, h.logger, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	q, err := h.deps.QuoteStay(r.Context(), req.Resort, req.RoomKey, in, out)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// HandleCompare handles POST /stays/compare.
func (h *StaysHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "api.compare_stays"
	var req compareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		fail(r.Context(), w, h.logger, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Resort) == "" {
		fail(r.Context(), w, h.logger, op, NewKind(op, ErrBadRequest))
		return
	}
	in, out, err := parseDates(req.CheckIn, req.CheckOut)
	if err != nil {
		fail(r.Context(), w, h.logger, op, WrapKind(op, ErrBadRequest, err))
		return
	}
	opts, err := h.deps.CompareStays(r.Context(), req.Resort, in, out)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}
