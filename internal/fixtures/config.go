// Package fixtures generates deterministic synthetic leagues with injuries
// and mid-season transactions.
package fixtures

import (
	"time"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/rules"
)

// Default generator settings.
const (
	defaultTeams        = 10
	defaultSeasonDays   = 60
	defaultInjuryRate   = 0.12
	defaultTransactions = 2
	defaultRestDays     = 2
)

// Config controls league generation.
type Config struct {
	Seed         uint64
	Name         string
	Teams        int
	StartDate    time.Time
	SeasonDays   int
	InjuryRate   float64
	Transactions int
	Rules        rules.Rules
}

// Option applies a configuration option to Config.
type Option func(*Config)

// WithSeed fixes the random stream; equal seeds yield equal leagues.
func WithSeed(seed uint64) Option {
	return func(c *Config) { c.Seed = seed }
}

// WithTeams sets the number of teams.
func WithTeams(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.Teams = n
		}
	}
}

// WithStartDate sets the league start date.
func WithStartDate(d time.Time) Option {
	return func(c *Config) {
		if !d.IsZero() {
			c.StartDate = model.Day(d)
		}
	}
}

// WithSeasonDays sets how many days of games are generated.
func WithSeasonDays(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.SeasonDays = n
		}
	}
}

// WithInjuryRate sets the chance that a scheduled game is missed.
func WithInjuryRate(rate float64) Option {
	return func(c *Config) {
		if rate >= 0 && rate <= 1 {
			c.InjuryRate = rate
		}
	}
}

// WithTransactions sets the number of transactions per team.
func WithTransactions(n int) Option {
	return func(c *Config) {
		if n >= 0 {
			c.Transactions = n
		}
	}
}

// WithRules sets the roster layout used for generated teams.
func WithRules(r rules.Rules) Option {
	return func(c *Config) { c.Rules = r }
}

// NewConfig returns the defaults with opts applied.
func NewConfig(opts ...Option) Config {
	c := Config{
		Seed:         1,
		Name:         "Synthetic League",
		Teams:        defaultTeams,
		StartDate:    model.MustDate("2022-10-18"),
		SeasonDays:   defaultSeasonDays,
		InjuryRate:   defaultInjuryRate,
		Transactions: defaultTransactions,
		Rules:        rules.Default(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
