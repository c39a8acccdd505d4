package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/smartystreets/goconvey/convey"

	"github.com/okian/courtside/internal/config"
	"github.com/okian/courtside/internal/domain/model"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.PeriodDays, convey.ShouldEqual, 7)
				convey.So(cfg.League.StartingPositions, convey.ShouldHaveLength, 5)
				convey.So(cfg.League.ReserveMapping["center"], convey.ShouldResemble, []string{"reserveCenter"})
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("COURTSIDE_LOG_LEVEL", "debug")
			_ = os.Setenv("COURTSIDE_LEAGUE_FILE", "/data/league.json")
			_ = os.Setenv("COURTSIDE_PERIOD_DAYS", "14")
			_ = os.Setenv("COURTSIDE_WORKERS", "3")
			_ = os.Setenv("COURTSIDE_AS_OF", "2022-11-01")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.LeagueFile, convey.ShouldEqual, "/data/league.json")
				convey.So(cfg.PeriodDays, convey.ShouldEqual, 14)
				convey.So(cfg.Workers, convey.ShouldEqual, 3)
				convey.So(cfg.AsOf, convey.ShouldEqual, "2022-11-01")
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
log_format: json
output_file: report.json
period_days: 10
league:
  counting_categories: [fieldGoals, fieldGoalAttempts, freeThrows, freeThrowAttempts, turnOvers, points, gameScore]
  positive_categories: [points, fg%]
  reserve_mapping:
    guardOne: [reserveGuard]
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("COURTSIDE_CONFIG", tmpFile)
			_ = os.Setenv("COURTSIDE_PERIOD_DAYS", "5")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then file values apply and env still wins", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogFormat, convey.ShouldEqual, "json")
				convey.So(cfg.OutputFile, convey.ShouldEqual, "report.json")
				convey.So(cfg.PeriodDays, convey.ShouldEqual, 5)
			})

			convey.Convey("Then listed league fields replace the defaults", func() {
				convey.So(cfg.League.CountingCategories, convey.ShouldHaveLength, 7)
				convey.So(cfg.League.PositiveCategories, convey.ShouldResemble, []string{"points", "fg%"})
				convey.So(cfg.League.ReserveMapping, convey.ShouldHaveLength, 1)
				convey.So(cfg.League.Rules().ReserveMapping[model.GuardOne], convey.ShouldResemble, []model.Position{model.ReserveGuard})
			})

			convey.Convey("Then omitted league fields keep the defaults", func() {
				convey.So(cfg.League.StartingPositions, convey.ShouldHaveLength, 5)
				convey.So(cfg.League.ReservePositions, convey.ShouldHaveLength, 3)
				convey.So(cfg.League.NegativeCategories, convey.ShouldResemble, []string{"turnOvers"})
			})
		})

		convey.Convey("When the file sets a league list to empty", func() {
			tmpFile := createTempConfigFile("league:\n  negative_categories: []\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("COURTSIDE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then the empty list is kept", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.League.NegativeCategories, convey.ShouldBeEmpty)
				convey.So(cfg.League.Rules().NegativeCategories, convey.ShouldBeEmpty)
				convey.So(cfg.League.PositiveCategories, convey.ShouldNotBeEmpty)
			})
		})
	})
}

func TestConfigLoaderEdgeCases(t *testing.T) {
	convey.Convey("Given broken inputs", t, func() {
		ctx := context.Background()

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("COURTSIDE_CONFIG", "/nonexistent/courtside.yaml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it is a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the file is not YAML", func() {
			tmpFile := createTempConfigFile("period_days: [unclosed")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("COURTSIDE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it is a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When an env value breaks validation", func() {
			_ = os.Setenv("COURTSIDE_LOG_FORMAT", "xml")
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it is an invalid config", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the league rules are inconsistent", func() {
			tmpFile := createTempConfigFile("league:\n  negative_categories: [fouls]\n")
			defer func() { _ = os.Remove(tmpFile) }()
			_ = os.Setenv("COURTSIDE_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			_, err := config.Load(ctx)

			convey.Convey("Then it is an invalid config", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
			})
		})
	})
}

func clearConfigEnvVars() {
	envVars := []string{
		"COURTSIDE_CONFIG",
		"COURTSIDE_LOG_LEVEL",
		"COURTSIDE_LOG_FORMAT",
		"COURTSIDE_LEAGUE_FILE",
		"COURTSIDE_OUTPUT_FILE",
		"COURTSIDE_METRICS_FILE",
		"COURTSIDE_PERIOD_DAYS",
		"COURTSIDE_AS_OF",
		"COURTSIDE_WORKERS",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "courtside-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
