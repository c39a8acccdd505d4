// Package repository reads and writes league files.
package repository

import (
	"context"

	"github.com/okian/courtside/internal/domain/model"
)

// Store provides access to a league.
type Store interface {
	// Load returns the league with every date parsed and every stat coerced
	// to a number.
	Load(ctx context.Context) (*model.League, error)

	// Save writes the league in the same format Load reads.
	Save(ctx context.Context, league *model.League) error
}
