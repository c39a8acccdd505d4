// Package rules holds the immutable league configuration threaded through
// every timeline and leaderboard computation.
package rules

import (
	"github.com/cockroachdb/errors"

	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/internal/domain/stats"
)

// Rules describes roster slots, reserve eligibility and scoring categories.
type Rules struct {
	StartingPositions    []model.Position
	ReservePositions     []model.Position
	ReserveMapping       map[model.Position][]model.Position
	CountingCategories   []string
	PercentageCategories []stats.PercentageCategory
	PositiveCategories   []string
	NegativeCategories   []string
}

// Default returns the rules of the standard eight-slot league.
func Default() Rules {
	return Rules{
		StartingPositions: []model.Position{
			model.GuardOne, model.GuardTwo, model.ForwardOne, model.ForwardTwo, model.Center,
		},
		ReservePositions: []model.Position{
			model.ReserveGuard, model.ReserveForward, model.ReserveCenter,
		},
		ReserveMapping: map[model.Position][]model.Position{
			model.GuardOne:   {model.ReserveGuard},
			model.GuardTwo:   {model.ReserveGuard},
			model.ForwardOne: {model.ReserveForward},
			model.ForwardTwo: {model.ReserveForward},
			model.Center:     {model.ReserveCenter},
		},
		CountingCategories: []string{
			"fieldGoals", "fieldGoalAttempts", "threePointers", "threePointerAttempts",
			"freeThrows", "freeThrowAttempts", "rebounds", "assists", "steals", "blocks",
			"turnOvers", "points", "gameScore",
		},
		PercentageCategories: []stats.PercentageCategory{
			{Name: "fg%", Numerator: "fieldGoals", Denominator: "fieldGoalAttempts"},
			{Name: "ft%", Numerator: "freeThrows", Denominator: "freeThrowAttempts"},
		},
		PositiveCategories: []string{"threePointers", "rebounds", "assists", "steals", "blocks", "points", "fg%", "ft%"},
		NegativeCategories: []string{"turnOvers"},
	}
}

// AllPositions returns starting positions followed by reserve positions.
func (r Rules) AllPositions() []model.Position {
	out := make([]model.Position, 0, len(r.StartingPositions)+len(r.ReservePositions))
	out = append(out, r.StartingPositions...)
	return append(out, r.ReservePositions...)
}

// Categories returns counting categories followed by percentage names.
func (r Rules) Categories() []string {
	out := make([]string, 0, len(r.CountingCategories)+len(r.PercentageCategories))
	out = append(out, r.CountingCategories...)
	for _, p := range r.PercentageCategories {
		out = append(out, p.Name)
	}
	return out
}

// IsStarting reports whether p is a starting position.
func (r Rules) IsStarting(p model.Position) bool {
	return contains(r.StartingPositions, p)
}

// Validate checks that every referenced position is declared, the reserve
// mapping points from starters to reserves and every scoring category is
// defined.
func (r Rules) Validate() error {
	if len(r.StartingPositions) == 0 {
		return errors.Wrap(ErrInvalidRules, "no starting positions")
	}

	seen := make(map[model.Position]struct{})
	for _, p := range r.AllPositions() {
		if !p.IsKnown() {
			return errors.Wrapf(ErrUnknownPosition, "%q", p)
		}
		if _, dup := seen[p]; dup {
			return errors.Wrapf(ErrInvalidRules, "position %q declared twice", p)
		}
		seen[p] = struct{}{}
	}

	for from, to := range r.ReserveMapping {
		if !r.IsStarting(from) {
			return errors.Wrapf(ErrUnknownPosition, "reserve mapping key %q is not a starting position", from)
		}
		for _, p := range to {
			if !contains(r.ReservePositions, p) {
				return errors.Wrapf(ErrUnknownPosition, "reserve mapping %q -> %q is not a reserve position", from, p)
			}
		}
	}

	counting := make(map[string]struct{}, len(r.CountingCategories))
	for _, c := range r.CountingCategories {
		counting[c] = struct{}{}
	}
	all := make(map[string]struct{}, len(counting)+len(r.PercentageCategories))
	for c := range counting {
		all[c] = struct{}{}
	}
	for _, p := range r.PercentageCategories {
		if _, dup := all[p.Name]; dup {
			return errors.Wrapf(ErrInvalidRules, "percentage category %q collides with another category", p.Name)
		}
		if _, ok := counting[p.Numerator]; !ok {
			return errors.Wrapf(stats.ErrUnknownCategory, "numerator %q of %q", p.Numerator, p.Name)
		}
		if _, ok := counting[p.Denominator]; !ok {
			return errors.Wrapf(stats.ErrUnknownCategory, "denominator %q of %q", p.Denominator, p.Name)
		}
		all[p.Name] = struct{}{}
	}

	for _, c := range append(append([]string{}, r.PositiveCategories...), r.NegativeCategories...) {
		if _, ok := all[c]; !ok {
			return errors.Wrapf(stats.ErrUnknownCategory, "scoring category %q", c)
		}
	}

	return nil
}

func contains(ps []model.Position, p model.Position) bool {
	for _, x := range ps {
		if x == p {
			return true
		}
	}
	return false
}
