package timeline_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okian/courtside/internal/domain/timeline"
	"github.com/okian/courtside/internal/fixtures"
	"github.com/okian/courtside/pkg/logger"
)

func TestRangeSummaryProperties(t *testing.T) {
	require.NoError(t, logger.Init())
	ctx := context.Background()

	for seed := uint64(1); seed <= 5; seed++ {
		cfg := fixtures.NewConfig(
			fixtures.WithSeed(seed),
			fixtures.WithTeams(3),
			fixtures.WithSeasonDays(40),
			fixtures.WithInjuryRate(0.3),
			fixtures.WithTransactions(3),
		)
		league := fixtures.Generate(ctx, cfg)
		end := league.StartDate.AddDate(0, 0, cfg.SeasonDays)

		for _, team := range league.Teams {
			tl := timeline.Build(team, league.StartDate, cfg.Rules)

			first, err := tl.RangeSummary(ctx, league.StartDate, end)
			require.NoError(t, err)
			again, err := tl.RangeSummary(ctx, league.StartDate, end)
			require.NoError(t, err)
			assert.Equal(t, first.CategoryTotals, again.CategoryTotals, "seed %d team %s: idempotence", seed, team.ID)
			assert.Equal(t, first.GamesPlayed, again.GamesPlayed)

			rebuilt, err := timeline.Build(team, league.StartDate, cfg.Rules).RangeSummary(ctx, league.StartDate, end)
			require.NoError(t, err)
			assert.Equal(t, first.CategoryTotals, rebuilt.CategoryTotals, "seed %d team %s: rebuild", seed, team.ID)

			seen := map[string]bool{}
			for _, sub := range first.GamesSubbed {
				key := fmt.Sprintf("%d/%s", sub.GameRank, sub.ReservePlayerID)
				assert.False(t, seen[key], "seed %d team %s: reserve game credited twice", seed, team.ID)
				seen[key] = true
			}
			assert.Equal(t, len(first.GamesStarted)+len(first.GamesSubbed), first.GamesPlayed)

			prev := -1
			for days := 0; days <= cfg.SeasonDays; days += 5 {
				sum, err := tl.RangeSummary(ctx, league.StartDate, league.StartDate.AddDate(0, 0, days))
				require.NoError(t, err)
				assert.GreaterOrEqual(t, sum.GamesPlayed, prev, "seed %d team %s: widening to %d days", seed, team.ID, days)
				prev = sum.GamesPlayed
			}
		}
	}
}
