// Package timeline reconstructs who held each roster slot over a season and
// aggregates a team's games, substitutions and category totals for any date
// range.
package timeline

import (
	"sort"
	"time"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/rules"
	"github.com/okian/courtside/pkg/logger"
)

// Tenure is one player's hold on one position over [Start, End].
// A zero End means the tenure is still open.
type Tenure struct {
	Player   model.Player
	Position model.Position
	Start    time.Time
	End      time.Time
}

// Open reports whether the tenure has not been closed by a transaction.
func (t Tenure) Open() bool { return t.End.IsZero() }

// Empty reports whether a same-day replacement closed the tenure before it began.
func (t Tenure) Empty() bool { return !t.Open() && t.End.Before(t.Start) }

// Overlaps reports whether the tenure shares at least one day with [start, end].
func (t Tenure) Overlaps(start, end time.Time) bool {
	if t.Empty() {
		return false
	}
	return (t.Open() || !t.End.Before(start)) && !t.Start.After(end)
}

// clip narrows [start, end] to the tenure.
func (t Tenure) clip(start, end time.Time) (time.Time, time.Time) {
	if t.Start.After(start) {
		start = t.Start
	}
	if !t.Open() && t.End.Before(end) {
		end = t.End
	}
	return start, end
}

// Timeline maps each position to its chronological tenures. It is owned by
// the computation for one team. Build fills it from the roster and the
// transaction log; AddTenure extends it one step at a time. A Timeline is not
// safe for concurrent mutation.
type Timeline struct {
	teamID   string
	teamName string
	rules    rules.Rules
	tenures  map[model.Position][]Tenure
	log      logger.Logger
}

// Build opens one tenure per rostered position at league start, then applies
// the team's transactions in date order. Same-day transactions keep the order
// they were recorded in.
func Build(team model.Team, leagueStart time.Time, r rules.Rules, opts ...Option) *Timeline {
	tl := &Timeline{
		teamID:   team.ID,
		teamName: team.Name,
		rules:    r,
		tenures:  make(map[model.Position][]Tenure, len(r.StartingPositions)+len(r.ReservePositions)),
		log:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(tl)
	}

	start := model.Day(leagueStart)
	for _, pos := range r.AllPositions() {
		if p, ok := team.Players[pos]; ok {
			tl.AddTenure(pos, p, start)
		}
	}

	txs := make([]model.Transaction, len(team.Transactions))
	copy(txs, team.Transactions)
	sort.SliceStable(txs, func(i, j int) bool { return txs[i].Date.Before(txs[j].Date) })
	for _, tx := range txs {
		tl.AddTenure(tx.Position, tx.Player, tx.Date)
	}

	return tl
}

// AddTenure closes the position's latest tenure the day before start and
// opens a new one for player. Callers add tenures in date order, as Build
// does. A start earlier than the latest tenure leaves tenures that overlap,
// which AvailableSubstitutes reports as ErrMultipleActivePlayersOnDate.
func (tl *Timeline) AddTenure(pos model.Position, player model.Player, start time.Time) {
	start = model.Day(start)
	list := tl.tenures[pos]
	if n := len(list); n > 0 {
		list[n-1].End = start.AddDate(0, 0, -1)
	}
	tl.tenures[pos] = append(list, Tenure{Player: player, Position: pos, Start: start})
}

// Tenures returns a copy of the tenures held at pos.
func (tl *Timeline) Tenures(pos model.Position) []Tenure {
	out := make([]Tenure, len(tl.tenures[pos]))
	copy(out, tl.tenures[pos])
	return out
}

// TeamID returns the id of the team the timeline was built for.
func (tl *Timeline) TeamID() string { return tl.teamID }
