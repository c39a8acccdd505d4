// Package service runs a standings pass over a league: range summaries per
// team, the category leaderboard, standings and period leaders.
package service

import (
	"context"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"github.com/okian/courtside/internal/domain/leaderboard"
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/rules"
	"github.com/okian/courtside/internal/domain/timeline"
	"github.com/okian/courtside/pkg/logger"
	"github.com/okian/courtside/pkg/metrics"
)

// DefaultPeriodDays is the length of the current period ending on the report date.
const DefaultPeriodDays = 7

// ErrEmptyLeague is returned when a run is asked for a league with no teams.
var ErrEmptyLeague = errors.New("league has no teams")

// CategoryStat pairs a team's current-period and full-season totals.
type CategoryStat struct {
	CurrentPeriodTotal float64 `json:"currentPeriodTotal"`
	LeagueStartTotal   float64 `json:"leagueStartTotal"`
}

// TeamReport is one team's section of a Report.
type TeamReport struct {
	TeamID                            string                                   `json:"teamId"`
	TeamName                          string                                   `json:"teamName"`
	Owner                             string                                   `json:"owner,omitempty"`
	Points                            float64                                  `json:"points"`
	Standing                          int                                      `json:"standing"`
	GamesPlayed                       int                                      `json:"gamesPlayed"`
	Stats                             map[string]CategoryStat                  `json:"stats"`
	CurrentPeriodSubstitutedGames     []timeline.AvailableSubstituteGame       `json:"currentPeriodSubstitutedGames"`
	CurrentPeriodPlayerRangeSummaries []timeline.PlayerRangeSummary            `json:"currentPeriodPlayerRangeSummaries"`
	CurrentActivePlayers              map[model.Position]timeline.ActivePlayer `json:"currentActivePlayers"`
}

// Period is an inclusive date range.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Report is the result of a Run.
type Report struct {
	RunID         string                     `json:"runId"`
	LeagueName    string                     `json:"leagueName"`
	AsOf          time.Time                  `json:"asOf"`
	CurrentPeriod Period                     `json:"currentPeriod"`
	FullSeason    Period                     `json:"fullSeason"`
	Leaderboard   []leaderboard.CategoryRank `json:"leaderboard"`
	Teams         []TeamReport               `json:"teams"`
	Leaders       timeline.Leaders           `json:"leaders"`
}

// Service computes standings reports.
type Service struct {
	rules      rules.Rules
	workers    int
	periodDays int
	logger     logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkers bounds the number of teams summarised concurrently.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithPeriodDays sets the current period length.
func WithPeriodDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.periodDays = days
		}
	}
}

// WithRules sets the league rules.
func WithRules(r rules.Rules) Option {
	return func(s *Service) {
		s.rules = r
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with the default rules.
func New(opts ...Option) *Service {
	s := &Service{
		rules:      rules.Default(),
		workers:    runtime.NumCPU(),
		periodDays: DefaultPeriodDays,
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rules returns the rules the service scores with.
func (s *Service) Rules() rules.Rules { return s.rules }

// teamResult holds both summaries for the team at the same index.
type teamResult struct {
	current *timeline.TeamRangeSummary
	season  *timeline.TeamRangeSummary
}

// Run scores league as of asOf. The current period covers the periodDays
// days before asOf through asOf; the full season runs from league start.
func (s *Service) Run(ctx context.Context, league *model.League, asOf time.Time) (*Report, error) {
	started := time.Now()
	report, err := s.run(ctx, league, asOf)
	if err != nil {
		metrics.RecordRunError()
		return nil, err
	}
	finished := time.Now()
	metrics.RecordRun(float64(finished.Sub(started).Milliseconds()), finished.Unix())
	s.logger.Info(ctx, "standings computed",
		logger.String("run", report.RunID),
		logger.String("league", report.LeagueName),
		logger.String("asOf", model.FormatDate(report.AsOf)),
		logger.Int("teams", len(report.Teams)),
		logger.Any("duration", finished.Sub(started)),
	)
	return report, nil
}

func (s *Service) run(ctx context.Context, league *model.League, asOf time.Time) (*Report, error) {
	if league == nil || len(league.Teams) == 0 {
		return nil, ErrEmptyLeague
	}
	if err := s.rules.Validate(); err != nil {
		return nil, err
	}

	asOf = model.Day(asOf)
	seasonStart := model.Day(league.StartDate)
	if asOf.Before(seasonStart) {
		return nil, errors.Wrapf(timeline.ErrInvalidRange, "as of %s precedes league start %s",
			model.FormatDate(asOf), model.FormatDate(seasonStart))
	}
	currentStart := asOf.AddDate(0, 0, -s.periodDays)
	if currentStart.Before(seasonStart) {
		currentStart = seasonStart
	}

	results, err := s.summarise(ctx, league, currentStart, seasonStart, asOf)
	if err != nil {
		return nil, err
	}

	current := make([]*timeline.TeamRangeSummary, len(results))
	season := make([]*timeline.TeamRangeSummary, len(results))
	for i, r := range results {
		current[i], season[i] = r.current, r.season
	}

	board := leaderboard.Calculate(season, s.rules.PositiveCategories, s.rules.NegativeCategories)
	standings, err := leaderboard.Standings(league.Teams, board)
	if err != nil {
		return nil, err
	}
	leaders, err := timeline.PeriodLeaders(current, s.rules)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(league.Teams))
	for i, t := range league.Teams {
		byID[t.ID] = i
	}
	teams := make([]TeamReport, 0, len(standings))
	for _, st := range standings {
		i := byID[st.TeamID]
		tr := s.teamReport(league.Teams[i], results[i])
		tr.Points, tr.Standing = st.Points, st.Standing
		teams = append(teams, tr)
	}

	metrics.UpdateTeams(len(teams))
	metrics.UpdateLeaderboardCategories(len(board))

	return &Report{
		RunID:         uuid.NewString(),
		LeagueName:    league.Name,
		AsOf:          asOf,
		CurrentPeriod: Period{Start: currentStart, End: asOf},
		FullSeason:    Period{Start: seasonStart, End: asOf},
		Leaderboard:   board,
		Teams:         teams,
		Leaders:       leaders,
	}, nil
}

// summarise builds each team's timeline and both range summaries on a
// bounded pool. Results keep league order.
func (s *Service) summarise(ctx context.Context, league *model.League, currentStart, seasonStart, asOf time.Time) ([]teamResult, error) {
	results := make([]teamResult, len(league.Teams))
	p := pool.New().WithErrors().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(s.workers)

	for i := range league.Teams {
		if ctx.Err() != nil {
			break
		}
		team := league.Teams[i]
		p.Go(func(ctx context.Context) error {
			began := time.Now()
			tl := timeline.Build(team, league.StartDate, s.rules, timeline.WithLogger(s.logger.Named("timeline")))

			cur, err := tl.RangeSummary(ctx, currentStart, asOf)
			if err != nil {
				return errors.Wrapf(err, "team %s current period", team.ID)
			}
			metrics.RecordTeamSummary(metrics.RangeCurrentPeriod)

			full, err := tl.RangeSummary(ctx, seasonStart, asOf)
			if err != nil {
				return errors.Wrapf(err, "team %s full season", team.ID)
			}
			metrics.RecordTeamSummary(metrics.RangeFullSeason)
			metrics.RecordTeamComputeLatency(float64(time.Since(began).Microseconds()) / 1000)

			results[i] = teamResult{current: cur, season: full}
			s.logger.Debug(ctx, "team summarised",
				logger.String("team", team.ID),
				logger.Int("currentGames", cur.GamesPlayed),
				logger.Int("seasonGames", full.GamesPlayed),
				logger.Int("currentSubbed", len(cur.GamesSubbed)),
			)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		s.logger.Error(ctx, "standings run failed", logger.Error(err))
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) teamReport(team model.Team, r teamResult) TeamReport {
	cats := s.rules.Categories()
	st := make(map[string]CategoryStat, len(cats))
	for _, c := range cats {
		st[c] = CategoryStat{
			CurrentPeriodTotal: r.current.CategoryTotals[c],
			LeagueStartTotal:   r.season.CategoryTotals[c],
		}
	}
	return TeamReport{
		TeamID:                            team.ID,
		TeamName:                          team.Name,
		Owner:                             team.Owner,
		GamesPlayed:                       r.season.GamesPlayed,
		Stats:                             st,
		CurrentPeriodSubstitutedGames:     r.current.GamesSubbed,
		CurrentPeriodPlayerRangeSummaries: r.current.PlayerRangeSummaries,
		CurrentActivePlayers:              r.season.CurrentActivePlayers,
	}
}
