package timeline

import (
	"time"

	"github.com/cockroachdb/errors"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/stats"
)

// PlayerRangeSummary is one tenure seen through a date range. GameLog and
// InactiveGameLog are clipped to tenure ∩ range; FullSeasonGameLog is not.
type PlayerRangeSummary struct {
	PlayerID          string                       `json:"playerId"`
	Name              string                       `json:"name"`
	Position          model.Position               `json:"position"`
	GameLog           []model.GameLogEntry         `json:"gameLog"`
	InactiveGameLog   []model.InactiveGameLogEntry `json:"inactiveGameLog"`
	FullSeasonGameLog []model.GameLogEntry         `json:"-"`
}

// ActivePlayer is the current holder of a position with full-season stats.
type ActivePlayer struct {
	PlayerID string         `json:"playerId"`
	Name     string         `json:"name"`
	Position model.Position `json:"position"`
	Since    time.Time      `json:"since"`
	Stats    stats.Result   `json:"stats"`
}

// ActiveBetween returns a summary for every tenure at pos overlapping
// [start, end], both days inclusive, in chronological order.
func (tl *Timeline) ActiveBetween(pos model.Position, start, end time.Time) []PlayerRangeSummary {
	start, end = model.Day(start), model.Day(end)

	var out []PlayerRangeSummary
	for _, t := range tl.tenures[pos] {
		if !t.Overlaps(start, end) {
			continue
		}
		from, to := t.clip(start, end)
		out = append(out, PlayerRangeSummary{
			PlayerID:          t.Player.ID,
			Name:              t.Player.Name,
			Position:          pos,
			GameLog:           gamesBetween(t.Player.GameLog, from, to),
			InactiveGameLog:   inactiveBetween(t.Player.InactiveGameLog, from, to),
			FullSeasonGameLog: t.Player.GameLog,
		})
	}
	return out
}

// CurrentlyActive returns the holder of each position's latest tenure with
// stats over that player's full season. Positions never filled are absent.
func (tl *Timeline) CurrentlyActive(positions []model.Position) (map[model.Position]ActivePlayer, error) {
	out := make(map[model.Position]ActivePlayer, len(positions))
	for _, pos := range positions {
		list := tl.tenures[pos]
		if len(list) == 0 {
			continue
		}
		last := list[len(list)-1]
		res, err := stats.Calculate(last.Player.GameLog, tl.rules.CountingCategories, tl.rules.PercentageCategories)
		if err != nil {
			return nil, errors.Wrapf(err, "current stats for %s at %s", last.Player.ID, pos)
		}
		out[pos] = ActivePlayer{
			PlayerID: last.Player.ID,
			Name:     last.Player.Name,
			Position: pos,
			Since:    last.Start,
			Stats:    res,
		}
	}
	return out, nil
}

func gamesBetween(log []model.GameLogEntry, from, to time.Time) []model.GameLogEntry {
	out := make([]model.GameLogEntry, 0, len(log))
	for _, e := range log {
		if within(e.Date, from, to) {
			out = append(out, e)
		}
	}
	return out
}

func inactiveBetween(log []model.InactiveGameLogEntry, from, to time.Time) []model.InactiveGameLogEntry {
	out := make([]model.InactiveGameLogEntry, 0, len(log))
	for _, e := range log {
		if within(e.Date, from, to) {
			out = append(out, e)
		}
	}
	return out
}

func within(d, from, to time.Time) bool {
	d = model.Day(d)
	return !d.Before(from) && !d.After(to)
}
