package manager

import (
	"github.com/viant/taskmgr/internal/logging"
)

// Option configures a Service.
type Option func(*Service)

// WithIDGenerator sets the task id provider. Ids must be unique per registry.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithClock sets the creation timestamp provider; stamps are forced to be
// non-decreasing.
func WithClock(fn func() int64) Option {
	return func(s *Service) {
		if fn != nil {
			s.now = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithListener registers a change listener.
func WithListener(listener Listener) Option {
	return func(s *Service) {
		if listener != nil {
			s.listeners = append(s.listeners, listener)
		}
	}
}
