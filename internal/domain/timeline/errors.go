package timeline

import (
	"github.com/cockroachdb/errors"
)

// Fatal conditions.
var (
	ErrMultipleActivePlayersOnDate = errors.New("multiple active players on date")
	ErrInvalidRange                = errors.New("range start is after range end")
)

// Soft conditions. They are logged and yield empty results; they are never
// returned from the resolver.
var (
	ErrNoActivePlayerOnDate     = errors.New("no active player on date")
	ErrStarterNotInactiveOnDate = errors.New("starter not inactive on date")
)
