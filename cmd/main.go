package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/okian/courtside/internal/adapters/report"
	"github.com/okian/courtside/internal/adapters/repository"
	app "github.com/okian/courtside/internal/app"
	"github.com/okian/courtside/internal/config"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(2)
	}

	// Logs go to stderr; stdout may carry the report.
	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithSink(zapcore.Lock(os.Stderr))); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(2)
	}
	code := 0
	if err := run(ctx, cfg, time.Now()); err != nil {
		logger.Get().Error(ctx, "standings run failed", logger.Error(err))
		code = 1
	}
	_ = logger.Sync()
	os.Exit(code)
}

// run loads the league, computes the report and writes it out.
func run(ctx context.Context, cfg *config.Config, now time.Time) error {
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	asOf, err := cfg.AsOfDate(now)
	if err != nil {
		return err
	}
	r := cfg.League.Rules()

	store := repository.New(cfg.LeagueFile,
		repository.WithLogger(log.Named("repository")),
		repository.WithPositions(r.AllPositions()),
	)
	league, err := store.Load(ctx)
	if err != nil {
		return err
	}
	log.Info(ctx, "league loaded",
		logger.String("league", league.Name),
		logger.String("file", cfg.LeagueFile),
		logger.Int("teams", len(league.Teams)),
	)

	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithRules(r),
		app.WithWorkers(cfg.Workers),
		app.WithPeriodDays(cfg.PeriodDays),
	)
	rep, err := svc.Run(ctx, league, asOf)
	if err != nil {
		return err
	}

	if err := report.New(cfg.OutputFile).Write(ctx, rep); err != nil {
		return err
	}

	if cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsFile); err != nil {
			return err
		}
		log.Debug(ctx, "metrics written", logger.String("file", cfg.MetricsFile))
	}
	return nil
}
