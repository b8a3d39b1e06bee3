// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/okian/pointchart/internal/adapters/repository"
	service "github.com/okian/pointchart/internal/app"
	"github.com/okian/pointchart/internal/domain/chart"
	"github.com/okian/pointchart/internal/domain/daycost"
	"github.com/okian/pointchart/internal/domain/eligibility"
	"github.com/okian/pointchart/internal/domain/heatmap"
	"github.com/okian/pointchart/internal/domain/rooms"
	"github.com/okian/pointchart/internal/domain/scenario"
	"github.com/okian/pointchart/internal/domain/stay"
	"github.com/okian/pointchart/internal/domain/trip"
	"github.com/okian/pointchart/pkg/logger"
	"golang.org/x/time/rate"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// ChartReader exposes read-only chart views.
type ChartReader interface {
	Charts(ctx context.Context) ([]repository.ChartRef, error)
	Chart(ctx context.Context, resort string, year int) (*chart.PointChart, error)
	Rooms(ctx context.Context, resort string, year int) ([]rooms.RoomInfo, error)
	Seasons(ctx context.Context, resort string, year int) ([]chart.SeasonOutline, error)
	DayCosts(ctx context.Context, resort string, year int, roomKey string) ([]daycost.DayCost, error)
	Heatmap(ctx context.Context, resort string, year int, roomKey string) (heatmap.AnnualView, error)
	ChartTable(ctx context.Context, resort string, year int) (heatmap.TableView, error)
}

// StayPricer prices stays.
type StayPricer interface {
	QuoteStay(ctx context.Context, resort, roomKey string, checkIn, checkOut time.Time) (stay.Quote, error)
	CompareStays(ctx context.Context, resort string, checkIn, checkOut time.Time) ([]stay.Option, error)
}

// ScenarioEvaluator reconciles hypothetical bookings against contracts.
type ScenarioEvaluator interface {
	EvaluateScenario(ctx context.Context, contracts []scenario.ContractBaseline, bookings []scenario.HypotheticalBooking) (scenario.Response, error)
}

// TripExplorer finds affordable rooms per contract.
type TripExplorer interface {
	ExploreTrips(ctx context.Context, contracts []scenario.ContractBaseline, checkIn, checkOut time.Time) (trip.Result, error)
}

// Dependencies required by HTTP handlers.
type Dependencies interface {
	ChartReader
	StayPricer
	ScenarioEvaluator
	TripExplorer
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimit enables per-client rate limiting. A non-positive rate disables it.
// Limiters of clients idle for longer than idle are dropped.
func WithRateLimit(perSec float64, burst int, idle time.Duration) Option {
	return func(s *Server) {
		if perSec <= 0 {
			s.limiter = nil
			return
		}
		s.limiter = NewIPRateLimiter(rate.Limit(perSec), burst, idle)
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// Server wires HTTP routes for the pricing API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	chartsHandler   *ChartsHandler
	staysHandler    *StaysHandler
	scenarioHandler *ScenarioHandler
	tripsHandler    *TripsHandler

	limiter *IPRateLimiter
	logger  logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{logger: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.chartsHandler = NewChartsHandler(deps, s.logger)
	s.staysHandler = NewStaysHandler(deps, s.logger)
	s.scenarioHandler = NewScenarioHandler(deps, s.logger)
	s.tripsHandler = NewTripsHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", s.route(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("GET /charts", s.route(s.chartsHandler.HandleList, "charts"))
	mux.HandleFunc("GET /charts/{resort}/{year}", s.route(s.chartsHandler.HandleGet, "chart"))
	mux.HandleFunc("GET /charts/{resort}/{year}/rooms", s.route(s.chartsHandler.HandleRooms, "chart_rooms"))
	mux.HandleFunc("GET /charts/{resort}/{year}/seasons", s.route(s.chartsHandler.HandleSeasons, "chart_seasons"))
	mux.HandleFunc("GET /charts/{resort}/{year}/days", s.route(s.chartsHandler.HandleDays, "chart_days"))
	mux.HandleFunc("GET /charts/{resort}/{year}/heatmap", s.route(s.chartsHandler.HandleHeatmap, "chart_heatmap"))
	mux.HandleFunc("GET /charts/{resort}/{year}/table", s.route(s.chartsHandler.HandleTable, "chart_table"))

	mux.HandleFunc("POST /stays/calculate", s.route(s.staysHandler.HandleCalculate, "stays_calculate"))
	mux.HandleFunc("POST /stays/compare", s.route(s.staysHandler.HandleCompare, "stays_compare"))

	mux.HandleFunc("POST /scenarios/evaluate", s.route(s.scenarioHandler.HandleEvaluate, "scenarios_evaluate"))
	mux.HandleFunc("POST /trips/explore", s.route(s.tripsHandler.HandleExplore, "trips_explore"))
}

// route applies the standard middleware chain to an API handler.
func (s *Server) route(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	if s.limiter != nil {
		h = RateLimitMiddleware(h, s.limiter)
	}
	return MetricsMiddleware(RequestIDMiddleware(h), endpoint)
}

type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg, RequestID: w.Header().Get(RequestIDHeader)})
}

// classify maps an upstream error to a status code and error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, repository.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, stay.ErrInvalidStay):
		return http.StatusBadRequest, "invalid_stay"
	case errors.Is(err, stay.ErrStayTooLong):
		return http.StatusBadRequest, "stay_too_long"
	case errors.Is(err, service.ErrUnknownRoom):
		return http.StatusBadRequest, "unknown_room"
	case errors.Is(err, stay.ErrUnpricedStay):
		return http.StatusUnprocessableEntity, "unpriced_stay"
	case errors.Is(err, service.ErrTooManyBookings):
		return http.StatusUnprocessableEntity, "too_many_bookings"
	case errors.Is(err, scenario.ErrAmbiguousBooking):
		return http.StatusUnprocessableEntity, "ambiguous_booking"
	case errors.Is(err, scenario.ErrUnknownContract):
		return http.StatusUnprocessableEntity, "unknown_contract"
	case errors.Is(err, scenario.ErrAmbiguousContract):
		return http.StatusUnprocessableEntity, "ambiguous_contract"
	case errors.Is(err, eligibility.ErrIneligibleResort):
		return http.StatusUnprocessableEntity, "ineligible_resort"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// fail writes err with the status classify assigns and logs server errors.
func fail(ctx context.Context, w http.ResponseWriter, log logger.Logger, op string, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		log.Error(ctx, "request failed",
			logger.String("op", op),
			logger.String("request_id", RequestIDFrom(ctx)),
			logger.Error(err))
	}
	var ke *kindError
	if !errors.As(err, &ke) {
		err = Wrap(op, err)
	}
	writeError(w, status, code, err)
}

// decodeJSON strictly decodes a bounded request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// chartPath reads the {resort} and {year} path values.
func chartPath(r *http.Request) (string, int, error) {
	resort := r.PathValue("resort")
	year, err := strconv.Atoi(r.PathValue("year"))
	if resort == "" || err != nil || year < 1 {
		return "", 0, ErrBadRequest
	}
	return resort, year, nil
}

// parseDates parses an ISO check-in and check-out pair.
func parseDates(checkIn, checkOut string) (time.Time, time.Time, error) {
	in, err := chart.ParseDate(checkIn)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	out, err := chart.ParseDate(checkOut)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return in, out, nil
}
