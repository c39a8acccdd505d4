package fixtures

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/google/uuid"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/pkg/logger"
)

// Stat ranges for one generated game.
const (
	maxFieldGoalAttempts   = 22
	maxThreePointAttempts  = 9
	maxFreeThrowAttempts   = 10
	maxRebounds            = 14
	maxAssists             = 11
	maxSteals              = 4
	maxBlocks              = 4
	maxTurnOvers           = 6
	gameScoreDecimalFactor = 10
)

var injuryReasons = []string{"Inactive", "Did Not Play", "Did Not Dress", "Not With Team"} //nolint:gochecknoglobals // fixed vocabulary

type generator struct {
	cfg     Config
	rng     *rand.Rand
	ids     *rand.ChaCha8
	players int
}

// Generate builds a league from cfg. The same config always yields the same
// league, identities included.
func Generate(ctx context.Context, cfg Config) model.League {
	var seed [32]byte
	binary.LittleEndian.PutUint64(seed[:], cfg.Seed)
	src := rand.NewChaCha8(seed)
	g := &generator{cfg: cfg, rng: rand.New(src), ids: src}

	league := model.League{
		Name:      cfg.Name,
		StartDate: model.Day(cfg.StartDate),
		Teams:     make([]model.Team, 0, cfg.Teams),
	}
	for i := 0; i < cfg.Teams; i++ {
		league.Teams = append(league.Teams, g.team(i))
	}

	logger.Get().Debug(ctx, "generated league",
		logger.String("name", league.Name),
		logger.Int("teams", len(league.Teams)),
		logger.Int("players", g.players),
	)
	return league
}

func (g *generator) id() string {
	u, err := uuid.NewRandomFromReader(g.ids)
	if err != nil {
		// ChaCha8 never fails to read
		panic(err)
	}
	return u.String()
}

func (g *generator) team(n int) model.Team {
	t := model.Team{
		ID:      g.id(),
		Name:    fmt.Sprintf("Team %d", n+1),
		Owner:   fmt.Sprintf("Owner %d", n+1),
		Players: make(map[model.Position]model.Player),
	}
	for _, pos := range g.cfg.Rules.AllPositions() {
		t.Players[pos] = g.player()
	}

	positions := g.cfg.Rules.AllPositions()
	for i := 0; i < g.cfg.Transactions && g.cfg.SeasonDays > 1 && len(positions) > 0; i++ {
		t.AddTransaction(model.Transaction{
			Position: positions[g.rng.IntN(len(positions))],
			Date:     g.cfg.StartDate.AddDate(0, 0, 1+g.rng.IntN(g.cfg.SeasonDays-1)),
			Player:   g.player(),
		})
	}
	return t
}

// player schedules a game every defaultRestDays days from a random offset and
// marks each one missed with probability InjuryRate.
func (g *generator) player() model.Player {
	g.players++
	p := model.Player{ID: g.id(), Name: fmt.Sprintf("Player %d", g.players)}

	rank := 0
	for d := g.rng.IntN(defaultRestDays); d < g.cfg.SeasonDays; d += defaultRestDays {
		rank++
		date := g.cfg.StartDate.AddDate(0, 0, d)
		if g.rng.Float64() < g.cfg.InjuryRate {
			p.InactiveGameLog = append(p.InactiveGameLog, model.InactiveGameLogEntry{
				Rank:   rank,
				Date:   date,
				Reason: injuryReasons[g.rng.IntN(len(injuryReasons))],
			})
			continue
		}
		p.GameLog = append(p.GameLog, model.GameLogEntry{Rank: rank, Date: date, Stats: g.boxScore()})
	}
	return p
}

func (g *generator) boxScore() map[string]float64 {
	fga := g.rng.IntN(maxFieldGoalAttempts + 1)
	fg := g.upTo(fga)
	tpa := min(g.rng.IntN(maxThreePointAttempts+1), fga)
	tp := min(g.upTo(tpa), fg)
	fta := g.rng.IntN(maxFreeThrowAttempts + 1)
	ft := g.upTo(fta)
	reb := g.rng.IntN(maxRebounds + 1)
	ast := g.rng.IntN(maxAssists + 1)
	stl := g.rng.IntN(maxSteals + 1)
	blk := g.rng.IntN(maxBlocks + 1)
	tov := g.rng.IntN(maxTurnOvers + 1)
	pts := 2*fg + tp + ft

	// Hollinger game score without the offensive rebound and foul terms.
	gs := float64(pts) + 0.4*float64(fg) - 0.7*float64(fga) - 0.4*float64(fta-ft) +
		0.5*float64(reb) + float64(stl) + 0.7*float64(ast) + 0.7*float64(blk) - float64(tov)

	return map[string]float64{
		"fieldGoals":           float64(fg),
		"fieldGoalAttempts":    float64(fga),
		"threePointers":        float64(tp),
		"threePointerAttempts": float64(tpa),
		"freeThrows":           float64(ft),
		"freeThrowAttempts":    float64(fta),
		"rebounds":             float64(reb),
		"assists":              float64(ast),
		"steals":               float64(stl),
		"blocks":               float64(blk),
		"turnOvers":            float64(tov),
		"points":               float64(pts),
		"gameScore":            math.Round(gs*gameScoreDecimalFactor) / gameScoreDecimalFactor,
	}
}

func (g *generator) upTo(n int) int {
	if n <= 0 {
		return 0
	}
	return g.rng.IntN(n + 1)
}
