// Package stats sums counting categories and derives percentage categories
// over a list of games.
package stats

import (
	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"

	"github.com/okian/courtside/internal/domain/model"
)

// percentPlaces is the number of decimals kept on percentage categories.
const percentPlaces = 2

// PercentageCategory is 100 * Numerator total / Denominator total.
type PercentageCategory struct {
	Name        string `json:"name" koanf:"name" validate:"required"`
	Numerator   string `json:"numerator" koanf:"numerator" validate:"required"`
	Denominator string `json:"denominator" koanf:"denominator" validate:"required"`
}

// Result holds category totals and per-game averages.
type Result struct {
	GamesPlayed int                `json:"gamesPlayed"`
	Totals      map[string]float64 `json:"totals"`
	Averages    map[string]float64 `json:"averages"`
}

// Calculate sums every counting category over entries and derives the
// percentage categories from those sums. Percentages are stored under their
// own name in both Totals and Averages.
func Calculate(entries []model.GameLogEntry, counting []string, percentages []PercentageCategory) (Result, error) {
	res := Result{
		GamesPlayed: len(entries),
		Totals:      make(map[string]float64, len(counting)+len(percentages)),
		Averages:    make(map[string]float64, len(counting)+len(percentages)),
	}

	known := make(map[string]struct{}, len(counting))
	for _, cat := range counting {
		known[cat] = struct{}{}
		var total float64
		for _, e := range entries {
			total += e.Stat(cat)
		}
		res.Totals[cat] = total
		if len(entries) > 0 {
			res.Averages[cat] = total / float64(len(entries))
		} else {
			res.Averages[cat] = 0
		}
	}

	for _, p := range percentages {
		if _, ok := known[p.Numerator]; !ok {
			return Result{}, errors.Wrapf(ErrUnknownCategory, "numerator %q of %q", p.Numerator, p.Name)
		}
		if _, ok := known[p.Denominator]; !ok {
			return Result{}, errors.Wrapf(ErrUnknownCategory, "denominator %q of %q", p.Denominator, p.Name)
		}
		pct := Percentage(res.Totals[p.Numerator], res.Totals[p.Denominator])
		res.Totals[p.Name] = pct
		res.Averages[p.Name] = pct
	}

	return res, nil
}

// Percentage returns round(num/den*100, 2), or 0 when den is zero.
func Percentage(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	v, _ := decimal.NewFromFloat(num).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromFloat(den)).
		Round(percentPlaces).
		Float64()
	return v
}
