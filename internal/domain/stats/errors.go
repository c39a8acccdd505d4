package stats

import (
	"github.com/cockroachdb/errors"
)

// ErrUnknownCategory is returned when a percentage category references a
// numerator or denominator that is not a counting category.
var ErrUnknownCategory = errors.New("unknown category")
