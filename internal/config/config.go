// Package config defines process configuration and the league rules block.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - External errors are marked with this package's sentinels.
package config

import (
	"context"
	"runtime"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/rules"
	"github.com/okian/courtside/internal/domain/stats"
	"github.com/okian/courtside/pkg/logger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the console or json encoder.
	LogFormat string `koanf:"log_format" validate:"oneof=console json"`

	// LeagueFile is the JSON league to score.
	LeagueFile string `koanf:"league_file" validate:"required"`

	// OutputFile receives the JSON report; empty writes to stdout.
	OutputFile string `koanf:"output_file"`

	// MetricsFile, when set, receives a Prometheus text dump after the run.
	MetricsFile string `koanf:"metrics_file"`

	// PeriodDays is the length of the current reporting period.
	PeriodDays int `koanf:"period_days" validate:"gte=1"`

	// AsOf pins the report date (YYYY-MM-DD); empty means today.
	AsOf string `koanf:"as_of" validate:"omitempty,datetime=2006-01-02"`

	// Workers bounds how many teams are computed at once.
	Workers int `koanf:"workers" validate:"gte=1"`

	// League holds roster slots and scoring categories.
	League League `koanf:"league"`
}

// League is the configurable rule set. Fields left out of the source fall
// back to the defaults.
type League struct {
	StartingPositions    []string                   `koanf:"starting_positions"`
	ReservePositions     []string                   `koanf:"reserve_positions"`
	ReserveMapping       map[string][]string        `koanf:"reserve_mapping"`
	CountingCategories   []string                   `koanf:"counting_categories"`
	PercentageCategories []stats.PercentageCategory `koanf:"percentage_categories" validate:"dive"`
	PositiveCategories   []string                   `koanf:"positive_categories"`
	NegativeCategories   []string                   `koanf:"negative_categories"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  logger.FormatConsole,
		LeagueFile: "league.json",
		PeriodDays: 7,
		Workers:    runtime.NumCPU(),
		League:     LeagueFromRules(rules.Default()),
	}
}

// LeagueFromRules renders r as a configuration block.
func LeagueFromRules(r rules.Rules) League {
	l := League{
		StartingPositions:    positionNames(r.StartingPositions),
		ReservePositions:     positionNames(r.ReservePositions),
		ReserveMapping:       make(map[string][]string, len(r.ReserveMapping)),
		CountingCategories:   append([]string(nil), r.CountingCategories...),
		PercentageCategories: append([]stats.PercentageCategory(nil), r.PercentageCategories...),
		PositiveCategories:   append([]string(nil), r.PositiveCategories...),
		NegativeCategories:   append([]string(nil), r.NegativeCategories...),
	}
	for from, to := range r.ReserveMapping {
		l.ReserveMapping[string(from)] = positionNames(to)
	}
	return l
}

// withDefaults fills every field whose key the source did not set from def.
// set receives the koanf key of a league field, e.g. "negative_categories";
// a key that is present keeps its value even when it is an empty list.
func (l League) withDefaults(def League, set func(key string) bool) League {
	if !set("starting_positions") {
		l.StartingPositions = def.StartingPositions
	}
	if !set("reserve_positions") {
		l.ReservePositions = def.ReservePositions
	}
	if !set("reserve_mapping") {
		l.ReserveMapping = def.ReserveMapping
	}
	if !set("counting_categories") {
		l.CountingCategories = def.CountingCategories
	}
	if !set("percentage_categories") {
		l.PercentageCategories = def.PercentageCategories
	}
	if !set("positive_categories") {
		l.PositiveCategories = def.PositiveCategories
	}
	if !set("negative_categories") {
		l.NegativeCategories = def.NegativeCategories
	}
	return l
}

// Rules converts the block to the domain rule set.
func (l League) Rules() rules.Rules {
	r := rules.Rules{
		StartingPositions:    positions(l.StartingPositions),
		ReservePositions:     positions(l.ReservePositions),
		ReserveMapping:       make(map[model.Position][]model.Position, len(l.ReserveMapping)),
		CountingCategories:   append([]string(nil), l.CountingCategories...),
		PercentageCategories: append([]stats.PercentageCategory(nil), l.PercentageCategories...),
		PositiveCategories:   append([]string(nil), l.PositiveCategories...),
		NegativeCategories:   append([]string(nil), l.NegativeCategories...),
	}
	for from, to := range l.ReserveMapping {
		r.ReserveMapping[model.Position(from)] = positions(to)
	}
	return r
}

// Validate checks field constraints and the league rules.
func (c *Config) Validate(ctx context.Context) error {
	if err := validator.New().StructCtx(ctx, c); err != nil {
		return errors.Mark(errors.Wrap(err, "config"), ErrInvalidConfig)
	}
	if err := c.League.Rules().Validate(); err != nil {
		return errors.Mark(errors.Wrap(err, "league rules"), ErrInvalidConfig)
	}
	return nil
}

// AsOfDate returns the pinned report date, or the day of now.
func (c *Config) AsOfDate(now time.Time) (time.Time, error) {
	if c.AsOf == "" {
		return model.Day(now), nil
	}
	d, err := model.ParseDate(c.AsOf)
	if err != nil {
		return time.Time{}, errors.Mark(errors.Wrapf(err, "as_of %q", c.AsOf), ErrInvalidConfig)
	}
	return d, nil
}

func positionNames(ps []model.Position) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = string(p)
	}
	return out
}

func positions(names []string) []model.Position {
	out := make([]model.Position, len(names))
	for i, n := range names {
		out[i] = model.Position(n)
	}
	return out
}
