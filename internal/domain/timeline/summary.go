package timeline

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/stats"
	"github.com/okian/courtside/pkg/metrics"
)

// TeamRangeSummary is one team's games and category totals over a range.
type TeamRangeSummary struct {
	TeamID               string                          `json:"teamId"`
	TeamName             string                          `json:"teamName"`
	Start                time.Time                       `json:"start"`
	End                  time.Time                       `json:"end"`
	CategoryTotals       map[string]float64              `json:"categoryTotals"`
	CategoryAverages     map[string]float64              `json:"categoryAverages"`
	GamesPlayed          int                             `json:"gamesPlayed"`
	GamesStarted         []model.GameLogEntry            `json:"gamesStarted"`
	GamesSubbed          []AvailableSubstituteGame       `json:"gamesSubbed"`
	PlayerRangeSummaries []PlayerRangeSummary            `json:"playerRangeSummaries"`
	CurrentActivePlayers map[model.Position]ActivePlayer `json:"currentActivePlayers"`
}

// RangeSummary credits every game the starting slots played in [start, end]
// plus one reserve game per missed starter game where a reserve of matching
// rank is available, then totals the categories over both.
func (tl *Timeline) RangeSummary(ctx context.Context, start, end time.Time) (*TeamRangeSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	start, end = model.Day(start), model.Day(end)
	if start.After(end) {
		return nil, errors.Wrapf(ErrInvalidRange, "%s > %s", model.FormatDate(start), model.FormatDate(end))
	}

	current, err := tl.CurrentlyActive(tl.rules.AllPositions())
	if err != nil {
		return nil, err
	}

	sum := &TeamRangeSummary{
		TeamID:               tl.teamID,
		TeamName:             tl.teamName,
		Start:                start,
		End:                  end,
		GamesStarted:         []model.GameLogEntry{},
		PlayerRangeSummaries: []PlayerRangeSummary{},
		CurrentActivePlayers: current,
	}
	subs := NewSubstituteLog()

	for _, pos := range tl.rules.StartingPositions {
		for _, prs := range tl.ActiveBetween(pos, start, end) {
			sum.PlayerRangeSummaries = append(sum.PlayerRangeSummaries, prs)
			sum.GamesStarted = append(sum.GamesStarted, prs.GameLog...)

			for _, missed := range prs.InactiveGameLog {
				candidates, err := tl.AvailableSubstitutes(ctx, pos, missed.Date)
				if err != nil {
					return nil, err
				}
				subs.Claim(ctx, candidates)
			}
		}
	}
	sum.GamesSubbed = subs.Games()

	played := make([]model.GameLogEntry, 0, len(sum.GamesStarted)+len(sum.GamesSubbed))
	played = append(played, sum.GamesStarted...)
	for _, g := range sum.GamesSubbed {
		played = append(played, g.Entry)
	}

	res, err := stats.Calculate(played, tl.rules.CountingCategories, tl.rules.PercentageCategories)
	if err != nil {
		return nil, errors.Wrapf(err, "team %s", tl.teamID)
	}
	sum.CategoryTotals = res.Totals
	sum.CategoryAverages = res.Averages
	sum.GamesPlayed = res.GamesPlayed

	metrics.RecordSubstitutions(len(sum.GamesSubbed))
	return sum, nil
}
