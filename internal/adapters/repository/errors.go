package repository

import (
	"github.com/cockroachdb/errors"
)

// Sentinel kinds for league store errors.
var (
	ErrLoadLeague    = errors.New("load league failed")
	ErrSaveLeague    = errors.New("save league failed")
	ErrInvalidLeague = errors.New("invalid league")
)
