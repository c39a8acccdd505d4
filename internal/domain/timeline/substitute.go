package timeline

import (
	"context"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/okian/courtside/internal/domain/dedupe"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// AvailableSubstituteGame is a reserve game that can stand in for a game the
// starter missed. The two games are joined on rank.
type AvailableSubstituteGame struct {
	Entry              model.GameLogEntry `json:"game"`
	GameRank           int                `json:"gameRank"`
	StartingPosition   model.Position     `json:"startingPosition"`
	StartingPlayerID   string             `json:"startingPlayerId"`
	StartingPlayerName string             `json:"startingPlayerName"`
	StartingGameDate   time.Time          `json:"startingGameDate"`
	ReservePosition    model.Position     `json:"reservePosition"`
	ReservePlayerID    string             `json:"reservePlayerId"`
	ReservePlayerName  string             `json:"reservePlayerName"`
	ReserveGameDate    time.Time          `json:"reserveGameDate"`
}

// key identifies the reserve game; it may be credited once per team summary.
func (g AvailableSubstituteGame) key() string {
	return strconv.Itoa(g.GameRank) + "/" + g.ReservePlayerID
}

// AvailableSubstitutes returns one candidate per reserve position mapped
// from startingPos whose active player has a game of the same rank as the
// game the starter missed on missedDate. Candidates follow mapping order.
func (tl *Timeline) AvailableSubstitutes(ctx context.Context, startingPos model.Position, missedDate time.Time) ([]AvailableSubstituteGame, error) {
	day := model.Day(missedDate)

	starter, ok, err := tl.activeOn(ctx, startingPos, day)
	if err != nil || !ok {
		return nil, err
	}

	var missed *model.InactiveGameLogEntry
	for i := range starter.InactiveGameLog {
		if model.Day(starter.InactiveGameLog[i].Date).Equal(day) {
			missed = &starter.InactiveGameLog[i]
			break
		}
	}
	if missed == nil {
		tl.soft(ctx, ErrStarterNotInactiveOnDate, metrics.ConditionStarterNotInactive, startingPos, day,
			logger.String("player", starter.PlayerID))
		return nil, nil
	}

	var out []AvailableSubstituteGame
	for _, reservePos := range tl.rules.ReserveMapping[startingPos] {
		reserve, ok, err := tl.activeOn(ctx, reservePos, day)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		for _, e := range reserve.FullSeasonGameLog {
			if e.Rank != missed.Rank {
				continue
			}
			out = append(out, AvailableSubstituteGame{
				Entry:              e,
				GameRank:           missed.Rank,
				StartingPosition:   startingPos,
				StartingPlayerID:   starter.PlayerID,
				StartingPlayerName: starter.Name,
				StartingGameDate:   model.Day(missed.Date),
				ReservePosition:    reservePos,
				ReservePlayerID:    reserve.PlayerID,
				ReservePlayerName:  reserve.Name,
				ReserveGameDate:    model.Day(e.Date),
			})
			break
		}
	}
	return out, nil
}

// activeOn finds the single player holding pos on day. Zero holders is a soft
// condition; more than one means the timeline is corrupt.
func (tl *Timeline) activeOn(ctx context.Context, pos model.Position, day time.Time) (PlayerRangeSummary, bool, error) {
	active := tl.ActiveBetween(pos, day, day)
	switch len(active) {
	case 0:
		tl.soft(ctx, ErrNoActivePlayerOnDate, metrics.ConditionNoActivePlayer, pos, day)
		return PlayerRangeSummary{}, false, nil
	case 1:
		return active[0], true, nil
	default:
		return PlayerRangeSummary{}, false, errors.Wrapf(ErrMultipleActivePlayersOnDate,
			"team %s position %s on %s: %d players", tl.teamID, pos, model.FormatDate(day), len(active))
	}
}

func (tl *Timeline) soft(ctx context.Context, cond error, label string, pos model.Position, day time.Time, fields ...logger.Field) {
	metrics.RecordSoftCondition(label)
	fields = append(fields,
		logger.String("team", tl.teamID),
		logger.String("position", string(pos)),
		logger.String("date", model.FormatDate(day)),
		logger.Error(cond),
	)
	tl.log.Debug(ctx, "no substitute", fields...)
}

// FirstAvailableSubstitute returns the first candidate whose rank and reserve
// player are not already credited in existing.
func FirstAvailableSubstitute(existing, candidates []AvailableSubstituteGame) (AvailableSubstituteGame, bool) {
	used := make(map[string]struct{}, len(existing))
	for _, g := range existing {
		used[g.key()] = struct{}{}
	}
	for _, c := range candidates {
		if _, dup := used[c.key()]; !dup {
			return c, true
		}
	}
	return AvailableSubstituteGame{}, false
}

// SubstituteLog accumulates credited reserve games for one team summary and
// refuses to credit the same reserve game twice.
type SubstituteLog struct {
	claimed dedupe.Deduper
	games   []AvailableSubstituteGame
}

// NewSubstituteLog returns an empty log.
func NewSubstituteLog() *SubstituteLog {
	return &SubstituteLog{claimed: dedupe.NewInMemoryDeduper()}
}

// Claim credits the first unused candidate. It reports false when every
// candidate was already credited.
func (l *SubstituteLog) Claim(ctx context.Context, candidates []AvailableSubstituteGame) (AvailableSubstituteGame, bool) {
	for _, c := range candidates {
		if l.claimed.SeenAndRecord(ctx, c.key()) {
			continue
		}
		l.games = append(l.games, c)
		return c, true
	}
	return AvailableSubstituteGame{}, false
}

// Games returns the credited games in claim order.
func (l *SubstituteLog) Games() []AvailableSubstituteGame {
	out := make([]AvailableSubstituteGame, len(l.games))
	copy(out, l.games)
	return out
}

// Len returns the number of credited games.
func (l *SubstituteLog) Len() int { return l.claimed.Size() }
