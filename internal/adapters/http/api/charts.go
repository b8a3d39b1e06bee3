package api

import (
	"net/http"

	"github.com/okian/pointchart/pkg/logger"
)

// ChartsHandler serves read-only chart views.
type ChartsHandler struct {
	deps   ChartReader
	logger logger.Logger
}

// NewChartsHandler creates a new charts handler.
func NewChartsHandler(deps ChartReader, l logger.Logger) *ChartsHandler {
	return &ChartsHandler{deps: deps, logger: l}
}

// HandleList handles GET /charts.
func (h *ChartsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_charts"
	refs, err := h.deps.Charts(r.Context())
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, refs)
}

// HandleGet handles GET /charts/{resort}/{year}.
func (h *ChartsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_chart"
	resort, year, err := chartPath(r)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	c, err := h.deps.Chart(r.Context(), resort, year)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

// HandleRooms handles GET /charts/{resort}/{year}/rooms.
func (h *ChartsHandler) HandleRooms(w http.ResponseWriter, r *http.Request) {
	const op = "api.chart_rooms"
	resort, year, err := chartPath(r)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	infos, err := h.deps.Rooms(r.Context(), resort, year)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	out := make([]roomResponse, 0, len(infos))
	for _, info := range infos {
		out = append(out, roomResponse{
			Key:         info.Key,
			RoomType:    info.RoomType,
			View:        info.View,
			DisplayType: info.DisplayType(),
			DisplayView: info.DisplayView(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type roomResponse struct {
	Key         string `json:"key"`
	RoomType    string `json:"room_type"`
	View        string `json:"view,omitempty"`
	DisplayType string `json:"display_type"`
	DisplayView string `json:"display_view,omitempty"`
}

// HandleSeasons handles GET /charts/{resort}/{year}/seasons.
func (h *ChartsHandler) HandleSeasons(w http.ResponseWriter, r *http.Request) {
	const op = "api.chart_seasons"
	resort, year, err := chartPath(r)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	seasons, err := h.deps.Seasons(r.Context(), resort, year)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, seasons)
}

// HandleDays handles GET /charts/{resort}/{year}/days?room=.
func (h *ChartsHandler) HandleDays(w http.ResponseWriter, r *http.Request) {
	const op = "api.chart_days"
	resort, year, room, err := roomQuery(r)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	days, err := h.deps.DayCosts(r.Context(), resort, year, room)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, days)
}

// HandleHeatmap handles GET /charts/{resort}/{year}/heatmap?room=.
func (h *ChartsHandler) HandleHeatmap(w http.ResponseWriter, r *http.Request) {
	const op = "api.chart_heatmap"
	resort, year, room, err := roomQuery(r)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	view, err := h.deps.Heatmap(r.Context(), resort, year, room)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// HandleTable handles GET /charts/{resort}/{year}/table.
func (h *ChartsHandler) HandleTable(w http.ResponseWriter, r *http.Request) {
	const op = "api.chart_table"
	resort, year, err := chartPath(r)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	view, err := h.deps.ChartTable(r.Context(), resort, year)
	if err != nil {
		fail(r.Context(), w, h.logger, op, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func roomQuery(r *http.Request) (string, int, string, error) {
	resort, year, err := chartPath(r)
	if err != nil {
		return "", 0, "", err
	}
	room := r.URL.Query().Get("room")
	if room == "" {
		return "", 0, "", ErrBadRequest
	}
	return resort, year, room, nil
}
