package leaderboard

import (
	"github.com/cockroachdb/errors"
)

// ErrUnknownTeam is returned when a leaderboard references a team that was
// not supplied to Standings.
var ErrUnknownTeam = errors.New("unknown team")
