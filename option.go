package taskmgr

import (
	"time"

	"github.com/viant/taskmgr/internal/logging"
	"github.com/viant/taskmgr/service/event"
	"github.com/viant/taskmgr/service/manager"
	"github.com/viant/taskmgr/service/messaging/memory"
	"github.com/viant/taskmgr/tracing"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option configures a Service.
type Option func(s *Service)

// WithIDGenerator sets the task id provider.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.managerOptions = append(s.managerOptions, manager.WithIDGenerator(fn))
	}
}

// WithClock sets the task timestamp provider (Unix milliseconds).
func WithClock(fn func() int64) Option {
	return func(s *Service) {
		s.managerOptions = append(s.managerOptions, manager.WithClock(fn))
	}
}

// WithLogger sets the logger shared by the service and its registry.
func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithListener registers a synchronous registry change listener.
func WithListener(listener manager.Listener) Option {
	return func(s *Service) {
		s.managerOptions = append(s.managerOptions, manager.WithListener(listener))
	}
}

// WithEventHandler registers an asynchronous change event handler. Events
// are delivered in order on a dedicated goroutine until Shutdown.
func WithEventHandler(handler func(*event.Event[manager.Change])) Option {
	return func(s *Service) {
		if handler != nil {
			s.handlers = append(s.handlers, handler)
		}
	}
}

// WithQueueConfig sets the change event queue configuration.
func WithQueueConfig(config memory.Config) Option {
	return func(s *Service) {
		s.queueConfig = config
	}
}

// WithPublishTimeout bounds how long a mutation waits for room in a full
// event queue before the event is dropped.
func WithPublishTimeout(timeout time.Duration) Option {
	return func(s *Service) {
		if timeout > 0 {
			s.publishTimeout = timeout
		}
	}
}

// WithTracing configures OpenTelemetry tracing. If outputFile is empty the
// stdout exporter is used; the first successful initialisation wins.
func WithTracing(serviceName, serviceVersion, outputFile string) Option {
	return func(s *Service) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}

// WithTracingExporter configures OpenTelemetry tracing with a custom exporter.
func WithTracingExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter) Option {
	return func(s *Service) {
		_ = tracing.InitWithExporter(serviceName, serviceVersion, exporter)
	}
}
