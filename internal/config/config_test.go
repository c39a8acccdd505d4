package config_test

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/courtside/internal/config"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/rules"
)

func TestConfig_New(t *testing.T) {
	convey.Convey("Given a new config with default options", t, func() {
		cfg := config.New(context.Background())

		convey.Convey("Then it should have sensible defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.LogFormat, convey.ShouldEqual, "console")
			convey.So(cfg.PeriodDays, convey.ShouldEqual, 7)
			convey.So(cfg.Workers, convey.ShouldEqual, runtime.NumCPU())
			convey.So(cfg.Validate(context.Background()), convey.ShouldBeNil)
		})

		convey.Convey("Then the league block round-trips the default rules", func() {
			convey.So(cfg.League.Rules(), convey.ShouldResemble, rules.Default())
		})
	})
}

func TestConfig_Validate(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		ctx := context.Background()
		cfg := config.New(ctx)

		convey.Convey("When the log level is unknown", func() {
			cfg.LogLevel = "loud"

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(cfg.Validate(ctx), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the period is empty", func() {
			cfg.PeriodDays = 0

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(cfg.Validate(ctx), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When as_of is not a date", func() {
			cfg.AsOf = "last tuesday"

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(cfg.Validate(ctx), config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the league names an unknown position", func() {
			cfg.League.ReserveMapping["guardOne"] = []string{"benchGuard"}

			convey.Convey("Then the rules error is kept in the chain", func() {
				err := cfg.Validate(ctx)
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(errors.Is(err, rules.ErrUnknownPosition), convey.ShouldBeTrue)
			})
		})
	})
}

func TestConfig_AsOfDate(t *testing.T) {
	convey.Convey("Given the as_of setting", t, func() {
		cfg := config.New(context.Background())
		now := time.Date(2022, 11, 3, 17, 45, 0, 0, time.UTC)

		convey.Convey("When it is empty", func() {
			d, err := cfg.AsOfDate(now)

			convey.Convey("Then today is used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(d, convey.ShouldEqual, model.MustDate("2022-11-03"))
			})
		})

		convey.Convey("When it is pinned", func() {
			cfg.AsOf = "2022-10-25"
			d, err := cfg.AsOfDate(now)

			convey.Convey("Then the pinned day is used", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(d, convey.ShouldEqual, model.MustDate("2022-10-25"))
			})
		})

		convey.Convey("When it is malformed", func() {
			cfg.AsOf = "25/10/2022"
			_, err := cfg.AsOfDate(now)

			convey.Convey("Then it fails", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}
