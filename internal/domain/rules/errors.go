package rules

import (
	"github.com/cockroachdb/errors"
)

// Sentinel kinds for rule set errors.
var (
	ErrInvalidRules    = errors.New("invalid league rules")
	ErrUnknownPosition = errors.New("unknown position")
)
