package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap/zapcore"

	"github.com/okian/courtside/internal/adapters/repository"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/fixtures"
	"github.com/okian/courtside/pkg/logger"
)

func main() {
	var (
		out          = flag.String("out", "league.json", "Output league file")
		name         = flag.String("name", "Synthetic League", "League name")
		seed         = flag.Uint64("seed", 1, "Random seed; equal seeds produce equal leagues")
		teams        = flag.Int("teams", 10, "Number of teams")
		start        = flag.String("start", "2022-10-18", "League start date (YYYY-MM-DD)")
		days         = flag.Int("days", 60, "Days of games to generate")
		injuryRate   = flag.Float64("injury-rate", 0.12, "Chance a scheduled game is missed")
		transactions = flag.Int("transactions", 2, "Transactions per team")
		verbose      = flag.Bool("verbose", false, "Enable debug logging")
	)
	flag.Parse()

	if err := logger.Init(logger.WithSink(zapcore.Lock(os.Stderr))); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(2)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}
	log := logger.Get()
	ctx := context.Background()

	startDate, err := model.ParseDate(*start)
	if err != nil {
		log.Error(ctx, "invalid start date", logger.String("start", *start), logger.Error(err))
		os.Exit(2)
	}

	cfg := fixtures.NewConfig(
		fixtures.WithSeed(*seed),
		fixtures.WithTeams(*teams),
		fixtures.WithStartDate(startDate),
		fixtures.WithSeasonDays(*days),
		fixtures.WithInjuryRate(*injuryRate),
		fixtures.WithTransactions(*transactions),
	)
	cfg.Name = *name
	league := fixtures.Generate(ctx, cfg)

	if err := repository.New(*out, repository.WithLogger(log)).Save(ctx, &league); err != nil {
		log.Error(ctx, "failed to write league", logger.Error(err))
		os.Exit(1)
	}
	_ = logger.Sync()
}
