// Package service provides the core business service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/okian/pointchart/internal/adapters/repository"
	"github.com/okian/pointchart/internal/domain/chart"
	"github.com/okian/pointchart/internal/domain/daycost"
	"github.com/okian/pointchart/internal/domain/eligibility"
	"github.com/okian/pointchart/internal/domain/heatmap"
	"github.com/okian/pointchart/internal/domain/rooms"
	"github.com/okian/pointchart/internal/domain/scenario"
	"github.com/okian/pointchart/internal/domain/stay"
	"github.com/okian/pointchart/internal/domain/trip"
	"github.com/okian/pointchart/pkg/logger"
	"github.com/okian/pointchart/pkg/metrics"
)

// Default configuration values.
const (
	defaultCacheTTL = 5 * time.Minute
)

// Loader is implemented by stores that can (re)read their backing source.
type Loader interface {
	Load(ctx context.Context) error
}

// Service implements the API dependencies for the point chart engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	store   repository.Store
	catalog *rooms.Catalog
	rules   *eligibility.Rules
	tables  *gocache.Cache

	// generation is bumped by Reload and keys cached tables, so a table
	// built from charts read before a reload is never served after it.
	generation atomic.Uint64

	// Configuration
	maxNights   int
	maxBookings int
	cacheTTL    time.Duration

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the chart store. Defaults to an empty memory store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCatalog sets the room view catalog.
func WithCatalog(catalog *rooms.Catalog) Option {
	return func(s *Service) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithEligibility sets the resort booking rules.
func WithEligibility(rules *eligibility.Rules) Option {
	return func(s *Service) {
		if rules != nil {
			s.rules = rules
		}
	}
}

// WithMaxNights caps quoted stays.
func WithMaxNights(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxNights = n
		}
	}
}

// WithMaxBookings caps hypothetical bookings per scenario evaluation.
func WithMaxBookings(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBookings = n
		}
	}
}

// WithCacheTTL sets how long derived day tables are cached.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:       repository.NewMemoryStore(),
		catalog:     rooms.DefaultCatalog(),
		rules:       eligibility.DefaultRules(),
		maxNights:   stay.DefaultMaxNights,
		maxBookings: scenario.DefaultMaxBookings,
		cacheTTL:    defaultCacheTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	s.tables = gocache.New(s.cacheTTL, 2*s.cacheTTL)
	return s
}

// Start loads charts when the store supports it.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.logger.Info(ctx, "starting point chart service...")
	if l, ok := s.store.(Loader); ok {
		if err := l.Load(ctx); err != nil {
			// Skipped files are reported; the valid ones are still served.
			s.logger.Warn(ctx, "some charts failed to load", logger.Error(err))
		}
	}

	s.started = true
	s.logger.Info(ctx, "point chart service started",
		logger.Int("charts", s.store.Count(ctx)),
		logger.Int("maxNights", s.maxNights),
		logger.Int("maxBookings", s.maxBookings),
		logger.String("catalog", s.catalog.Version()),
	)
	return nil
}

// Stop drops cached tables and marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.tables.Flush()
	s.started = false
	s.logger.Info(context.Background(), "point chart service stopped")
}

// Reload re-reads the store and invalidates derived tables.
func (s *Service) Reload(ctx context.Context) error {
	l, ok := s.store.(Loader)
	if !ok {
		return nil
	}
	err := l.Load(ctx)
	s.generation.Add(1)
	s.tables.Flush()
	return err
}

// Charts lists the stored charts.
func (s *Service) Charts(ctx context.Context) ([]repository.ChartRef, error) {
	return s.store.List(ctx)
}

// Chart returns one resort-year chart.
func (s *Service) Chart(ctx context.Context, resort string, year int) (*chart.PointChart, error) {
	return s.store.Get(ctx, resort, year)
}

// Rooms returns the chart's room keys parsed against the catalog.
func (s *Service) Rooms(ctx context.Context, resort string, year int) ([]rooms.RoomInfo, error) {
	c, err := s.store.Get(ctx, resort, year)
	if err != nil {
		return nil, err
	}
	return s.catalog.ParseAll(c.RoomKeys()), nil
}

// Seasons returns the chart's season outline.
func (s *Service) Seasons(ctx context.Context, resort string, year int) ([]chart.SeasonOutline, error) {
	c, err := s.store.Get(ctx, resort, year)
	if err != nil {
		return nil, err
	}
	return c.Outline(), nil
}

// DayCosts returns every day of the chart year for roomKey.
func (s *Service) DayCosts(ctx context.Context, resort string, year int, roomKey string) ([]daycost.DayCost, error) {
	c, err := s.roomChart(ctx, resort, year, roomKey)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	days, err := daycost.Evaluate(c, year, roomKey)
	metrics.RecordComputeLatency("days", msSince(start))
	return days, err
}

// Heatmap returns the annual heat map for one room.
func (s *Service) Heatmap(ctx context.Context, resort string, year int, roomKey string) (heatmap.AnnualView, error) {
	days, err := s.DayCosts(ctx, resort, year, roomKey)
	if err != nil {
		return heatmap.AnnualView{}, err
	}
	metrics.RecordHeatmapRender("room")
	return heatmap.Annual(roomKey, days), nil
}

// ChartTable returns the whole chart with globally normalized tiers.
func (s *Service) ChartTable(ctx context.Context, resort string, year int) (heatmap.TableView, error) {
	c, err := s.store.Get(ctx, resort, year)
	if err != nil {
		return heatmap.TableView{}, err
	}
	metrics.RecordHeatmapRender("chart")
	return heatmap.ChartTable(c, s.catalog), nil
}

// QuoteStay prices a stay. The chart of the check-in year must exist and offer
// the room; later years are used when present. A quote with unpriced nights is
// returned together with stay.ErrUnpricedStay.
func (s *Service) QuoteStay(ctx context.Context, resort, roomKey string, checkIn, checkOut time.Time) (stay.Quote, error) {
	if err := stay.Validate(checkIn, checkOut, s.maxNights); err != nil {
		metrics.RecordStayQuote(metrics.OutcomeRejected, 0)
		return stay.Quote{}, err
	}
	if _, err := s.roomChart(ctx, resort, checkIn.Year(), roomKey); err != nil {
		metrics.RecordStayQuote(metrics.OutcomeRejected, 0)
		return stay.Quote{}, err
	}
	table, err := s.table(ctx, resort, roomKey, checkIn, checkOut)
	if err != nil {
		return stay.Quote{}, err
	}

	start := time.Now()
	q, err := stay.Calculate(table, checkIn, checkOut)
	metrics.RecordComputeLatency("stay", msSince(start))
	if err != nil {
		return stay.Quote{}, err
	}
	if !q.Complete() {
		metrics.RecordStayQuote(metrics.OutcomeIncomplete, q.NumNights)
		s.logger.Debug(ctx, "stay has unpriced nights",
			logger.String("resort", resort),
			logger.String("room", roomKey),
			logger.Date("checkIn", checkIn),
			logger.Int("unpriced", q.UnpricedNights),
		)
		return q, stay.ErrUnpricedStay
	}
	metrics.RecordStayQuote(metrics.OutcomePriced, q.NumNights)
	return q, nil
}

// CompareStays quotes every room of the resort for the stay, cheapest first.
func (s *Service) CompareStays(ctx context.Context, resort string, checkIn, checkOut time.Time) ([]stay.Option, error) {
	if err := stay.Validate(checkIn, checkOut, s.maxNights); err != nil {
		return nil, err
	}
	if _, err := s.store.Get(ctx, resort, checkIn.Year()); err != nil {
		return nil, err
	}
	charts := s.chartsFor(ctx, resort, checkIn, checkOut)
	metrics.RecordRoomComparison()
	start := time.Now()
	opts, err := stay.CompareRooms(charts, checkIn, checkOut)
	metrics.RecordComputeLatency("compare", msSince(start))
	return opts, err
}

// ExploreTrips lists, per contract, the rooms at eligible resorts whose stay
// total fits the contract's available points, cheapest first.
func (s *Service) ExploreTrips(ctx context.Context, contracts []scenario.ContractBaseline, checkIn, checkOut time.Time) (trip.Result, error) {
	if err := stay.Validate(checkIn, checkOut, s.maxNights); err != nil {
		return trip.Result{}, err
	}
	refs, err := s.store.List(ctx)
	if err != nil {
		return trip.Result{}, err
	}
	charts := make(trip.Charts)
	for _, ref := range refs {
		if ref.Year != checkIn.Year() {
			continue
		}
		if _, ok := charts[ref.Resort]; !ok {
			charts[ref.Resort] = s.chartsFor(ctx, ref.Resort, checkIn, checkOut)
		}
	}

	start := time.Now()
	res, err := trip.Affordable(contracts, charts, s.rules, checkIn, checkOut)
	metrics.RecordComputeLatency("explore", msSince(start))
	if err != nil {
		return trip.Result{}, err
	}
	metrics.RecordTripExploration(res.TotalOptions)
	s.logger.Debug(ctx, "trips explored",
		logger.Int("contracts", len(contracts)),
		logger.Int("resorts", len(res.ResortsChecked)),
		logger.Int("options", res.TotalOptions),
	)
	return res, nil
}

// EvaluateScenario prices every booking with the stay aggregator and folds
// the results into baseline vs scenario points. Pricing failures are reported
// in the response; caller errors are returned.
func (s *Service) EvaluateScenario(ctx context.Context, contracts []scenario.ContractBaseline, bookings []scenario.HypotheticalBooking) (scenario.Response, error) {
	if len(bookings) > s.maxBookings {
		return scenario.Response{}, fmt.Errorf("%w: %d > %d", ErrTooManyBookings, len(bookings), s.maxBookings)
	}
	if err := scenario.CheckEligibility(contracts, bookings, s.rules); err != nil {
		return scenario.Response{}, err
	}

	pricer := scenario.PricerFunc(func(resort, roomKey string, in, out time.Time) (int, int, error) {
		q, err := s.QuoteStay(ctx, resort, roomKey, in, out)
		if err != nil {
			return 0, 0, err
		}
		return q.TotalPoints, q.NumNights, nil
	})

	start := time.Now()
	resolved, failures := scenario.Resolve(bookings, pricer)
	resp, err := scenario.Reconcile(scenario.Input{
		Contracts: contracts,
		Bookings:  bookings,
		Resolved:  resolved,
		Failures:  failures,
	})
	metrics.RecordComputeLatency("scenario", msSince(start))
	if err != nil {
		return scenario.Response{}, err
	}
	metrics.RecordScenarioEvaluation(len(resp.ResolvedBookings), len(resp.Errors))
	s.logger.Debug(ctx, "scenario evaluated",
		logger.Int("bookings", len(bookings)),
		logger.Int("resolved", len(resp.ResolvedBookings)),
		logger.Int("impact", resp.Summary.TotalImpact),
	)
	return resp, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":        s.started,
		"charts":         s.store.Count(context.Background()),
		"cachedTables":   s.tables.ItemCount(),
		"maxNights":      s.maxNights,
		"maxBookings":    s.maxBookings,
		"catalogVersion": s.catalog.Version(),
		"generation":     s.generation.Load(),
	}
}

// roomChart returns the chart for resort and year, requiring it to offer roomKey.
func (s *Service) roomChart(ctx context.Context, resort string, year int, roomKey string) (*chart.PointChart, error) {
	c, err := s.store.Get(ctx, resort, year)
	if err != nil {
		return nil, err
	}
	if !c.HasRoom(roomKey) {
		return nil, fmt.Errorf("%w: %s in %s %d", ErrUnknownRoom, roomKey, resort, year)
	}
	return c, nil
}

// chartsFor returns the stored charts of every year the stay touches.
func (s *Service) chartsFor(ctx context.Context, resort string, checkIn, checkOut time.Time) []*chart.PointChart {
	last := chart.Day(checkOut).AddDate(0, 0, -1).Year()
	var charts []*chart.PointChart
	for y := checkIn.Year(); y <= last; y++ {
		c, err := s.store.Get(ctx, resort, y)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err == nil {
			charts = append(charts, c)
		}
	}
	return charts
}

// table returns a cached per-room day source covering the stay.
func (s *Service) table(ctx context.Context, resort, roomKey string, checkIn, checkOut time.Time) (*daycost.Table, error) {
	last := chart.Day(checkOut).AddDate(0, 0, -1).Year()
	key := fmt.Sprintf("%d|%s|%s|%d|%d", s.generation.Load(), resort, roomKey, checkIn.Year(), last)
	if v, ok := s.tables.Get(key); ok {
		metrics.RecordCacheHit()
		return v.(*daycost.Table), nil
	}
	metrics.RecordCacheMiss()
	t, err := daycost.NewTable(roomKey, s.chartsFor(ctx, resort, checkIn, checkOut)...)
	if err != nil {
		return nil, err
	}
	s.tables.SetDefault(key, t)
	return t, nil
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
