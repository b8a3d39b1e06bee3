package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/pointchart/internal/config"
	"github.com/okian/pointchart/internal/domain/eligibility"
	"github.com/okian/pointchart/internal/domain/rooms"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "text")
			convey.So(cfg.ChartsDir, convey.ShouldEqual, "./charts")
			convey.So(cfg.MaxStayNights, convey.ShouldEqual, 14)
			convey.So(cfg.MaxScenarioBookings, convey.ShouldEqual, 10)
			convey.So(cfg.CacheTTL().Seconds(), convey.ShouldEqual, 300)
			convey.So(cfg.RateLimitIdle().Minutes(), convey.ShouldEqual, 10)
			convey.So(cfg.MetricsEnabled, convey.ShouldBeTrue)
			convey.So(cfg.MetricsNamespace, convey.ShouldEqual, "pointchart")
			convey.So(cfg.MetricsLatencyBucketsMs, convey.ShouldBeEmpty)
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("Then the catalog matches the built-in one", func() {
			convey.So(cfg.Catalog().Version(), convey.ShouldEqual, rooms.DefaultCatalogVersion)
			convey.So(cfg.Catalog().Views(), convey.ShouldResemble, rooms.DefaultCatalog().Views())
		})

		convey.Convey("Then the eligibility rules restrict the default resorts", func() {
			convey.So(cfg.Eligibility().Restricted(), convey.ShouldResemble, eligibility.DefaultRules().Restricted())
			cfg.RestrictedResorts[0] = "mutated"
			convey.So(eligibility.DefaultRestricted[0], convey.ShouldNotEqual, "mutated")
		})

		convey.Convey("Then the default view list is a private copy", func() {
			cfg.ViewCategories[0] = "mutated"
			convey.So(rooms.DefaultViewCategories[0], convey.ShouldNotEqual, "mutated")
		})
	})

	convey.Convey("Given invalid fields", t, func() {
		mutations := []func(*config.Config){
			func(c *config.Config) { c.Addr = "" },
			func(c *config.Config) { c.ChartsDir = "" },
			func(c *config.Config) { c.MaxStayNights = 0 },
			func(c *config.Config) { c.MaxScenarioBookings = -1 },
			func(c *config.Config) { c.CacheTTLSeconds = -5 },
			func(c *config.Config) { c.RateLimitBurst = 0 },
			func(c *config.Config) { c.LogFormat = "xml" },
			func(c *config.Config) { c.RateLimitIdleSeconds = -1 },
			func(c *config.Config) { c.MetricsNamespace = "point-chart" },
			func(c *config.Config) { c.MetricsNamespace = "" },
			func(c *config.Config) { c.MetricsLatencyBucketsMs = []float64{5, 5} },
			func(c *config.Config) { c.MetricsLatencyBucketsMs = []float64{-1, 5} },
		}
		for _, mutate := range mutations {
			cfg := config.New(context.Background())
			mutate(cfg)
			convey.So(errors.Is(cfg.Validate(), config.ErrInvalidConfig), convey.ShouldBeTrue)
		}

		convey.Convey("Any namespace is fine when metrics are off", func() {
			cfg := config.New(context.Background())
			cfg.MetricsEnabled = false
			cfg.MetricsNamespace = ""
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("A zero burst is fine when limiting is off", func() {
			cfg := config.New(context.Background())
			cfg.RateLimitPerSec = 0
			cfg.RateLimitBurst = 0
			convey.So(cfg.Validate(), convey.ShouldBeNil)
		})
	})
}
