package timeline

import (
	"github.com/cockroachdb/errors"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/rules"
	"github.com/okian/courtside/internal/domain/stats"
)

// GameScoreCategory is the per-game rating used to pick period leaders.
const GameScoreCategory = "gameScore"

// GameLeader is the best single game of a period.
type GameLeader struct {
	PlayerID  string             `json:"playerId"`
	Name      string             `json:"name"`
	TeamID    string             `json:"teamId"`
	GameScore float64            `json:"gameScore"`
	Game      model.GameLogEntry `json:"game"`
}

// PlayerLeader is the player with the highest game score sum in a period.
type PlayerLeader struct {
	PlayerID         string               `json:"playerId"`
	Name             string               `json:"name"`
	TeamID           string               `json:"teamId"`
	GameScoreSum     float64              `json:"gameScoreSum"`
	AverageGameScore float64              `json:"averageGameScore"`
	Games            int                  `json:"games"`
	GameLog          []model.GameLogEntry `json:"gameLog"`
	AverageStats     map[string]float64   `json:"averageStats"`
}

// Leaders holds the period awards. A nil field means nobody scored above zero.
type Leaders struct {
	GameOfThePeriod   *GameLeader   `json:"gameOfThePeriod,omitempty"`
	PlayerOfThePeriod *PlayerLeader `json:"playerOfThePeriod,omitempty"`
}

// PeriodLeaders scans the started games of every player range summary. Ties
// keep the first one seen.
func PeriodLeaders(summaries []*TeamRangeSummary, r rules.Rules) (Leaders, error) {
	var out Leaders
	bestGame, bestSum := 0.0, 0.0

	for _, team := range summaries {
		if team == nil {
			continue
		}
		for _, prs := range team.PlayerRangeSummaries {
			for _, g := range prs.GameLog {
				if score := g.Stat(GameScoreCategory); score > bestGame {
					bestGame = score
					out.GameOfThePeriod = &GameLeader{
						PlayerID:  prs.PlayerID,
						Name:      prs.Name,
						TeamID:    team.TeamID,
						GameScore: score,
						Game:      g,
					}
				}
			}

			gs, err := stats.Calculate(prs.GameLog, []string{GameScoreCategory}, nil)
			if err != nil {
				return Leaders{}, err
			}
			if gs.Totals[GameScoreCategory] <= bestSum {
				continue
			}
			avg, err := stats.Calculate(prs.GameLog, r.CountingCategories, r.PercentageCategories)
			if err != nil {
				return Leaders{}, errors.Wrapf(err, "period stats for %s", prs.PlayerID)
			}
			bestSum = gs.Totals[GameScoreCategory]
			out.PlayerOfThePeriod = &PlayerLeader{
				PlayerID:         prs.PlayerID,
				Name:             prs.Name,
				TeamID:           team.TeamID,
				GameScoreSum:     bestSum,
				AverageGameScore: gs.Averages[GameScoreCategory],
				Games:            len(prs.GameLog),
				GameLog:          prs.GameLog,
				AverageStats:     avg.Averages,
			}
		}
	}

	return out, nil
}
