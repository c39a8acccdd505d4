package timeline

import (
	"github.com/okian/courtside/pkg/logger"
)

// Option applies a configuration option to a Timeline.
type Option func(*Timeline)

// WithLogger sets the logger used for soft conditions.
func WithLogger(l logger.Logger) Option {
	return func(t *Timeline) {
		if l != nil {
			t.log = l
		}
	}
}
