package manager

import (
	"fmt"
	"slices"
	"sort"
	"sync"

	"github.com/viant/taskmgr/internal/clock"
	"github.com/viant/taskmgr/internal/idgen"
	"github.com/viant/taskmgr/internal/logging"
	"github.com/viant/taskmgr/model"
	"github.com/viant/taskmgr/policy"
	"github.com/viant/taskmgr/stats"
)

// DefaultCapacity is the capacity of a registry that was never configured.
const DefaultCapacity = 1000

// Service is a bounded registry of tasks.
type Service struct {
	mu          sync.Mutex
	capacity    int
	mode        model.Mode
	adapter     policy.Adapter
	items       []*model.Task
	initialized bool

	newID     func() string
	now       func() int64
	stamps    *clock.Monotonic
	logger    *logging.Logger
	counters  *stats.Counters
	listeners []Listener
}

// View is the serialisable state of a registry.
type View struct {
	Mode     model.Mode       `json:"mode" yaml:"mode"`
	Capacity int              `json:"capacity" yaml:"capacity"`
	Size     int              `json:"size" yaml:"size"`
	Items    []model.TaskView `json:"items" yaml:"items"`
}

// New creates an uninitialized registry with DefaultCapacity and ModeDefault.
func New(options ...Option) *Service {
	ret := &Service{
		capacity: DefaultCapacity,
		mode:     model.ModeDefault,
		adapter:  policy.Default{},
		newID:    idgen.New,
		now:      clock.Millis,
		logger:   logging.Nop(),
		counters: &stats.Counters{},
	}
	for _, option := range options {
		option(ret)
	}
	ret.stamps = clock.NewMonotonic(ret.now)
	ret.logger = ret.logger.WithComponent("manager")
	return ret
}

// Initialize applies capacity and mode once per registry lifetime; a nil
// argument keeps the current value. Both values are validated before either
// is applied. Existing tasks are kept.
func (s *Service) Initialize(capacity *int, mode *model.Mode) error {
	s.mu.Lock()
	if s.initialized {
		s.mu.Unlock()
		return &model.AlreadyInitializedError{}
	}
	newCapacity, newMode, adapter := s.capacity, s.mode, s.adapter
	if capacity != nil {
		if err := model.ValidateCapacity(*capacity); err != nil {
			s.mu.Unlock()
			return err
		}
		newCapacity = *capacity
	}
	if mode != nil {
		var err error
		if adapter, err = policy.For(*mode); err != nil {
			s.mu.Unlock()
			return err
		}
		newMode = *mode
	}
	s.capacity, s.mode, s.adapter = newCapacity, newMode, adapter
	s.initialized = true
	change := s.configured(0)
	s.mu.Unlock()

	s.logger.Info().Int("capacity", change.Capacity).Stringer("mode", change.Mode).Msg("task manager initialized")
	s.notify([]*Change{change})
	return nil
}

// Initialized reports whether Initialize has completed successfully.
func (s *Service) Initialized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.initialized
}

// Add asks the active policy to admit a new task with priority. It returns
// (nil, nil) when the priority policy skips admission.
func (s *Service) Add(priority model.Priority) (*model.Task, error) {
	s.mu.Lock()
	op := &operation{service: s}
	task, err := s.adapter.Add(op, priority)
	switch {
	case err != nil:
		op.delta.Rejected++
	case task == nil:
		op.delta.Skipped++
	default:
		op.delta.Admitted++
		view := task.View()
		op.changes = append(op.changes, &Change{Type: ChangeAdded, Task: &view, Mode: s.mode, Capacity: s.capacity})
	}
	mode, size := s.mode, len(s.items)
	s.mu.Unlock()

	switch {
	case err != nil:
		s.logger.Debug().Err(err).Stringer("mode", mode).Stringer("priority", priority).Msg("task rejected")
	case task == nil:
		s.logger.Debug().Stringer("mode", mode).Stringer("priority", priority).Int("size", size).Msg("task skipped")
	default:
		s.logger.Debug().Str("id", task.ID()).Stringer("priority", priority).Int("evicted", op.delta.Evicted).Int("size", size).Msg("task admitted")
	}
	s.counters.Update(op.delta)
	s.notify(op.changes)
	return task, err
}

// List returns a copy of all tasks sorted by ascending creation time; tasks
// with equal timestamps keep insertion order.
func (s *Service) List() []*model.Task {
	s.mu.Lock()
	ret := slices.Clone(s.items)
	s.mu.Unlock()
	sort.SliceStable(ret, func(i, j int) bool {
		return ret[i].CreatedAt() < ret[j].CreatedAt()
	})
	return ret
}

// Kill removes the task with id. It returns false when no such task exists.
func (s *Service) Kill(id string) bool {
	s.mu.Lock()
	index := slices.IndexFunc(s.items, func(task *model.Task) bool { return task.ID() == id })
	if index == -1 {
		s.mu.Unlock()
		return false
	}
	task := s.items[index]
	s.items = slices.Delete(s.items, index, index+1)
	view := task.View()
	change := &Change{Type: ChangeKilled, Task: &view, Mode: s.mode, Capacity: s.capacity}
	s.mu.Unlock()

	s.logger.Debug().Str("id", id).Msg("task killed")
	s.counters.Update(stats.Delta{Killed: 1})
	s.notify([]*Change{change})
	return true
}

// KillGroup removes every task with priority and returns the number removed.
func (s *Service) KillGroup(priority model.Priority) int {
	s.mu.Lock()
	var changes []*Change
	kept := s.items[:0]
	for _, task := range s.items {
		if task.Priority() != priority {
			kept = append(kept, task)
			continue
		}
		view := task.View()
		changes = append(changes, &Change{Type: ChangeKilled, Task: &view, Mode: s.mode, Capacity: s.capacity})
	}
	clear(s.items[len(kept):])
	s.items = kept
	s.mu.Unlock()

	if count := len(changes); count > 0 {
		s.logger.Debug().Stringer("priority", priority).Int("count", count).Msg("task group killed")
		s.counters.Update(stats.Delta{Killed: count})
		s.notify(changes)
	}
	return len(changes)
}

// KillAll removes every task and returns the number removed.
func (s *Service) KillAll() int {
	s.mu.Lock()
	count := s.clear()
	change := &Change{Type: ChangeCleared, Mode: s.mode, Capacity: s.capacity, Count: count}
	s.mu.Unlock()

	s.logger.Debug().Int("count", count).Msg("all tasks killed")
	s.counters.Update(stats.Delta{Killed: count})
	s.notify([]*Change{change})
	return count
}

// ResetMode switches the policy to mode and removes every task, even when
// mode is unchanged. It returns the number of tasks removed. An invalid mode
// leaves the registry untouched.
func (s *Service) ResetMode(mode model.Mode) (int, error) {
	adapter, err := policy.For(mode)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.mode, s.adapter = mode, adapter
	count := s.clear()
	change := s.configured(count)
	s.mu.Unlock()

	s.logger.Info().Stringer("mode", mode).Int("cleared", count).Msg("task mode reset")
	s.counters.Update(stats.Delta{Killed: count})
	s.notify([]*Change{change})
	return count, nil
}

// ResetCapacity sets capacity and removes every task. It returns the number of
// tasks removed. An invalid capacity leaves the registry untouched.
func (s *Service) ResetCapacity(capacity int) (int, error) {
	if err := model.ValidateCapacity(capacity); err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.capacity = capacity
	count := s.clear()
	change := s.configured(count)
	s.mu.Unlock()

	s.logger.Info().Int("capacity", capacity).Int("cleared", count).Msg("task capacity reset")
	s.counters.Update(stats.Delta{Killed: count})
	s.notify([]*Change{change})
	return count, nil
}

// IsOverloaded reports whether the registry holds at least capacity tasks.
func (s *Service) IsOverloaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) >= s.capacity
}

// Size returns the number of tasks held.
func (s *Service) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Capacity returns the configured capacity.
func (s *Service) Capacity() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.capacity
}

// Mode returns the active mode.
func (s *Service) Mode() model.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Snapshot returns the serialisable registry state, items in insertion order.
func (s *Service) Snapshot() *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	ret := &View{Mode: s.mode, Capacity: s.capacity, Size: len(s.items), Items: make([]model.TaskView, 0, len(s.items))}
	for _, task := range s.items {
		ret.Items = append(ret.Items, task.View())
	}
	return ret
}

// Stats returns cumulative registry counters.
func (s *Service) Stats() stats.Snapshot {
	return s.counters.Snapshot()
}

func (s *Service) clear() int {
	count := len(s.items)
	clear(s.items)
	s.items = s.items[:0]
	return count
}

func (s *Service) configured(count int) *Change {
	return &Change{Type: ChangeConfigured, Mode: s.mode, Capacity: s.capacity, Count: count}
}

func (s *Service) notify(changes []*Change) {
	if len(s.listeners) == 0 {
		return
	}
	for _, change := range changes {
		for _, listener := range s.listeners {
			listener(change)
		}
	}
}

// operation exposes the registry to a policy adapter for the duration of a
// single Add; the registry lock is held throughout.
type operation struct {
	service *Service
	delta   stats.Delta
	changes []*Change
}

func (o *operation) Size() int { return len(o.service.items) }

func (o *operation) Capacity() int { return o.service.capacity }

func (o *operation) At(index int) *model.Task { return o.service.items[index] }

func (o *operation) Evict(index int) *model.Task {
	s := o.service
	task := s.items[index]
	s.items = slices.Delete(s.items, index, index+1)
	o.delta.Evicted++
	view := task.View()
	o.changes = append(o.changes, &Change{Type: ChangeEvicted, Task: &view, Mode: s.mode, Capacity: s.capacity})
	s.logger.Debug().Str("id", task.ID()).Stringer("priority", task.Priority()).Msg("task evicted")
	return task
}

func (o *operation) Create(priority model.Priority) (*model.Task, error) {
	s := o.service
	id := s.newID()
	if slices.ContainsFunc(s.items, func(task *model.Task) bool { return task.ID() == id }) {
		return nil, fmt.Errorf("%w: %s", model.ErrDuplicateID, id)
	}
	task, err := model.NewTask(s, id, s.stamps.Stamp(), priority)
	if err != nil {
		return nil, err
	}
	s.items = append(s.items, task)
	return task, nil
}
