package repository

import (
	"github.com/okian/courtside/internal/domain/model"
	"github.com/okian/courtside/pkg/logger"
)

// Option applies a configuration option to the FileStore.
type Option func(*FileStore)

// WithLogger sets the logger used for skipped values.
func WithLogger(l logger.Logger) Option {
	return func(s *FileStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithPositions restricts roster and transaction positions to ps. By default
// any declared position is accepted.
func WithPositions(ps []model.Position) Option {
	return func(s *FileStore) {
		if len(ps) > 0 {
			s.positions = make(map[model.Position]struct{}, len(ps))
			for _, p := range ps {
				s.positions[p] = struct{}{}
			}
		}
	}
}
