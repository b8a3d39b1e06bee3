// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load(ctx) layers a YAML file and POINTCHART_* env vars on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/okian/pointchart/internal/domain/eligibility"
	"github.com/okian/pointchart/internal/domain/rooms"
	"github.com/okian/pointchart/pkg/metrics"
)

var metricNamespace = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// ChartsDir holds <resort>_<year>.json|yaml chart files.
	ChartsDir string `koanf:"charts_dir"`

	// MaxStayNights caps stay quotes.
	MaxStayNights int `koanf:"max_stay_nights"`

	// MaxScenarioBookings caps hypothetical bookings per evaluation.
	MaxScenarioBookings int `koanf:"max_scenario_bookings"`

	// CacheTTLSeconds bounds how long derived day tables are cached.
	CacheTTLSeconds int `koanf:"cache_ttl_seconds"`

	// RateLimitPerSec and RateLimitBurst configure the per-client limiter.
	// A non-positive rate disables limiting.
	RateLimitPerSec float64 `koanf:"rate_limit_per_sec"`
	RateLimitBurst  int     `koanf:"rate_limit_burst"`

	// RateLimitIdleSeconds drops limiters of clients idle for this long.
	RateLimitIdleSeconds int `koanf:"rate_limit_idle_seconds"`

	// MetricsEnabled and MetricsNamespace configure Prometheus recording.
	MetricsEnabled   bool   `koanf:"metrics_enabled"`
	MetricsNamespace string `koanf:"metrics_namespace"`

	// MetricsLatencyBucketsMs overrides the duration histogram buckets.
	MetricsLatencyBucketsMs []float64 `koanf:"metrics_latency_buckets_ms"`

	// RestrictedResorts lists resorts whose resale contracts book only at home.
	RestrictedResorts []string `koanf:"restricted_resorts"`

	// CatalogVersion and ViewCategories override the built-in room view catalog.
	CatalogVersion string   `koanf:"catalog_version"`
	ViewCategories []string `koanf:"view_categories"`
}

// New creates a Config populated with defaults. Context is accepted first to
// satisfy the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:             "info",
		LogFormat:            "text",
		Addr:                 ":9080",
		ChartsDir:            "./charts",
		MaxStayNights:        14,
		MaxScenarioBookings:  10,
		CacheTTLSeconds:      300,
		RateLimitPerSec:      20,
		RateLimitBurst:       40,
		RateLimitIdleSeconds: 600,
		MetricsEnabled:       true,
		MetricsNamespace:     "pointchart",
		RestrictedResorts:    append([]string(nil), eligibility.DefaultRestricted...),
		CatalogVersion:       rooms.DefaultCatalogVersion,
		ViewCategories:       append([]string(nil), rooms.DefaultViewCategories...),
	}
}

// CacheTTL returns CacheTTLSeconds as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// RateLimitIdle returns RateLimitIdleSeconds as a duration.
func (c *Config) RateLimitIdle() time.Duration {
	return time.Duration(c.RateLimitIdleSeconds) * time.Second
}

// Eligibility builds the resort booking rules described by the config.
func (c *Config) Eligibility() *eligibility.Rules {
	return eligibility.NewRules(c.RestrictedResorts)
}

// Catalog builds the room view catalog described by the config.
func (c *Config) Catalog() *rooms.Catalog {
	return rooms.NewCatalog(c.CatalogVersion, c.ViewCategories)
}

// Validate reports the first invalid field.
func (c *Config) Validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.ChartsDir == "":
		return fmt.Errorf("%w: charts_dir must not be empty", ErrInvalidConfig)
	case c.MaxStayNights < 1:
		return fmt.Errorf("%w: max_stay_nights must be positive", ErrInvalidConfig)
	case c.MaxScenarioBookings < 1:
		return fmt.Errorf("%w: max_scenario_bookings must be positive", ErrInvalidConfig)
	case c.CacheTTLSeconds < 0:
		return fmt.Errorf("%w: cache_ttl_seconds must not be negative", ErrInvalidConfig)
	case c.RateLimitPerSec > 0 && c.RateLimitBurst < 1:
		return fmt.Errorf("%w: rate_limit_burst must be positive when limiting", ErrInvalidConfig)
	case c.RateLimitIdleSeconds < 0:
		return fmt.Errorf("%w: rate_limit_idle_seconds must not be negative", ErrInvalidConfig)
	case c.MetricsEnabled && !metricNamespace.MatchString(c.MetricsNamespace):
		return fmt.Errorf("%w: metrics_namespace %q is not a valid metric name", ErrInvalidConfig, c.MetricsNamespace)
	case len(c.MetricsLatencyBucketsMs) > 0 && !metrics.ValidBuckets(c.MetricsLatencyBucketsMs):
		return fmt.Errorf("%w: metrics_latency_buckets_ms must be positive and increasing", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
