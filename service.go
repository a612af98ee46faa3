package taskmgr

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/viant/taskmgr/internal/logging"
	"github.com/viant/taskmgr/model"
	"github.com/viant/taskmgr/service/event"
	"github.com/viant/taskmgr/service/manager"
	"github.com/viant/taskmgr/service/messaging/memory"
	"github.com/viant/taskmgr/stats"
	"github.com/viant/taskmgr/tracing"
)

// Version is the module version reported to tracing.
const Version = "0.1.0"

const defaultPublishTimeout = time.Second

// Service wraps a registry with logging, tracing and change events.
type Service struct {
	manager        *manager.Service
	managerOptions []manager.Option
	logger         *logging.Logger
	closeLogger    bool

	handlers       []func(*event.Event[manager.Change])
	queueConfig    memory.Config
	publishTimeout time.Duration
	queue          *memory.Queue[event.Event[manager.Change]]
	publisher      *event.Publisher[manager.Change]
	listener       *event.Listener[manager.Change]
}

// New creates a service over an uninitialized registry.
func New(options ...Option) *Service {
	ret := &Service{
		logger:         logging.Nop(),
		queueConfig:    memory.DefaultConfig(),
		publishTimeout: defaultPublishTimeout,
	}
	for _, option := range options {
		option(ret)
	}
	managerOptions := append(slices.Clone(ret.managerOptions), manager.WithLogger(ret.logger))
	if len(ret.handlers) > 0 {
		ret.queue = memory.NewQueue[event.Event[manager.Change]](ret.queueConfig)
		ret.publisher = event.NewPublisher[manager.Change](ret.queue)
		ret.listener = event.NewListener(ret.publisher, ret.dispatch, func(err error) {
			ret.logger.Warn().Err(err).Msg("change event consume failed")
		})
		ret.listener.Start(context.Background())
		managerOptions = append(managerOptions, manager.WithListener(ret.publish))
	}
	ret.manager = manager.New(managerOptions...)
	return ret
}

// NewFromConfig creates a service from cfg and initializes its registry with
// cfg capacity and mode. A nil cfg uses DefaultConfig.
func NewFromConfig(ctx context.Context, cfg *Config, options ...Option) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, err
	}
	if cfg.Tracing.Enabled {
		if err = tracing.Init(cfg.Tracing.ServiceName, cfg.Tracing.ServiceVersion, cfg.Tracing.OutputFile); err != nil {
			_ = logger.Close()
			return nil, fmt.Errorf("failed to init tracing: %w", err)
		}
	}
	queueConfig := memory.DefaultConfig()
	if cfg.Events.Buffer > 0 {
		queueConfig.QueueBuffer = cfg.Events.Buffer
	}
	base := []Option{WithLogger(logger), WithQueueConfig(queueConfig)}
	ret := New(append(base, options...)...)
	ret.closeLogger = ret.logger == logger
	capacity, mode := cfg.Capacity, cfg.Mode
	if err = ret.Initialize(ctx, &capacity, &mode); err != nil {
		_ = ret.Shutdown(ctx)
		return nil, err
	}
	return ret, nil
}

// Manager returns the underlying registry.
func (s *Service) Manager() *manager.Service {
	return s.manager
}

// Initialize configures the registry once; nil arguments keep current values.
func (s *Service) Initialize(ctx context.Context, capacity *int, mode *model.Mode) (err error) {
	_, span := tracing.StartSpan(ctx, "taskmgr.initialize")
	if capacity != nil {
		span.WithInt("capacity", *capacity)
	}
	if mode != nil {
		span.WithAttributes(map[string]string{"mode": mode.String()})
	}
	defer func() { tracing.EndSpan(span, err) }()
	return s.manager.Initialize(capacity, mode)
}

// Add admits a task with priority according to the active mode. A nil task
// with a nil error means the priority mode skipped admission.
func (s *Service) Add(ctx context.Context, priority model.Priority) (task *model.Task, err error) {
	_, span := tracing.StartSpan(ctx, "taskmgr.add")
	span.WithAttributes(map[string]string{"priority": priority.String(), "mode": s.manager.Mode().String()})
	defer func() {
		span.WithBool("skipped", task == nil && err == nil).WithInt("size", s.manager.Size())
		if task != nil {
			span.WithAttributes(map[string]string{"id": task.ID()})
		}
		tracing.EndSpan(span, err)
	}()
	return s.manager.Add(priority)
}

// List returns all tasks ordered by creation time.
func (s *Service) List(ctx context.Context) []*model.Task {
	_, span := tracing.StartSpan(ctx, "taskmgr.list")
	ret := s.manager.List()
	span.WithInt("size", len(ret))
	tracing.EndSpan(span, nil)
	return ret
}

// Kill removes the task with id, reporting whether it existed.
func (s *Service) Kill(ctx context.Context, id string) bool {
	_, span := tracing.StartSpan(ctx, "taskmgr.kill")
	killed := s.manager.Kill(id)
	span.WithAttributes(map[string]string{"id": id}).WithBool("killed", killed)
	tracing.EndSpan(span, nil)
	return killed
}

// KillGroup removes every task with priority.
func (s *Service) KillGroup(ctx context.Context, priority model.Priority) int {
	_, span := tracing.StartSpan(ctx, "taskmgr.killGroup")
	count := s.manager.KillGroup(priority)
	span.WithAttributes(map[string]string{"priority": priority.String()}).WithInt("count", count)
	tracing.EndSpan(span, nil)
	return count
}

// KillAll removes every task.
func (s *Service) KillAll(ctx context.Context) int {
	_, span := tracing.StartSpan(ctx, "taskmgr.killAll")
	count := s.manager.KillAll()
	span.WithInt("count", count)
	tracing.EndSpan(span, nil)
	return count
}

// ResetMode switches mode and clears the registry.
func (s *Service) ResetMode(ctx context.Context, mode model.Mode) (count int, err error) {
	_, span := tracing.StartSpan(ctx, "taskmgr.resetMode")
	span.WithAttributes(map[string]string{"mode": mode.String()})
	defer func() { span.WithInt("count", count); tracing.EndSpan(span, err) }()
	return s.manager.ResetMode(mode)
}

// ResetCapacity sets capacity and clears the registry.
func (s *Service) ResetCapacity(ctx context.Context, capacity int) (count int, err error) {
	_, span := tracing.StartSpan(ctx, "taskmgr.resetCapacity")
	span.WithAttributes(map[string]string{"capacity": strconv.Itoa(capacity)})
	defer func() { span.WithInt("count", count); tracing.EndSpan(span, err) }()
	return s.manager.ResetCapacity(capacity)
}

// Snapshot returns the serialisable registry state.
func (s *Service) Snapshot() *manager.View {
	return s.manager.Snapshot()
}

// Stats returns cumulative registry counters.
func (s *Service) Stats() stats.Snapshot {
	return s.manager.Stats()
}

// Shutdown delivers pending change events, stops the event listener and
// closes a logger created by NewFromConfig.
func (s *Service) Shutdown(ctx context.Context) error {
	var err error
	if s.listener != nil {
		err = s.drain(ctx)
		s.listener.Stop()
	}
	if s.closeLogger {
		s.closeLogger = false
		if cErr := s.logger.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}
	return err
}

func (s *Service) drain(ctx context.Context) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for s.queue.Size() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func (s *Service) publish(change *manager.Change) {
	ctx, cancel := context.WithTimeout(context.Background(), s.publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, event.NewEvent(string(change.Type), *change)); err != nil {
		s.logger.Warn().Err(err).Str("type", string(change.Type)).Msg("change event dropped")
	}
}

func (s *Service) dispatch(evt *event.Event[manager.Change]) {
	for _, handler := range s.handlers {
		handler(evt)
	}
}
