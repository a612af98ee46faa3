package policy

import (
	"github.com/viant/taskmgr/model"
)

// Store is the narrow view of a registry that adapters operate on. Indexes
// follow insertion order; index 0 is the oldest task.
type Store interface {
	// Size returns the number of tasks held.
	Size() int
	// Capacity returns the configured capacity.
	Capacity() int
	// At returns the task at index.
	At(index int) *model.Task
	// Evict removes and returns the task at index.
	Evict(index int) *model.Task
	// Create constructs a task with priority and appends it.
	Create(priority model.Priority) (*model.Task, error)
}

// Adapter decides whether and how a new task is admitted. A nil task with a
// nil error means admission was skipped.
type Adapter interface {
	Mode() model.Mode
	Add(store Store, priority model.Priority) (*model.Task, error)
}

// For returns the adapter registered for mode.
func For(mode model.Mode) (Adapter, error) {
	switch mode {
	case model.ModeDefault:
		return Default{}, nil
	case model.ModeFIFO:
		return FIFO{}, nil
	case model.ModePriority:
		return Priority{}, nil
	}
	return nil, &model.InvalidModeError{Value: uint8(mode)}
}

// IsOverloaded reports whether store holds at least capacity tasks.
func IsOverloaded(store Store) bool {
	return store.Size() >= store.Capacity()
}

// Default admits until the store is full, then fails with MaximumCapacityError.
type Default struct{}

func (Default) Mode() model.Mode { return model.ModeDefault }

func (Default) Add(store Store, priority model.Priority) (*model.Task, error) {
	if IsOverloaded(store) {
		return nil, &model.MaximumCapacityError{Capacity: store.Capacity()}
	}
	return store.Create(priority)
}

// FIFO always admits, evicting the oldest tasks while the store is full.
type FIFO struct{}

func (FIFO) Mode() model.Mode { return model.ModeFIFO }

func (FIFO) Add(store Store, priority model.Priority) (*model.Task, error) {
	if !priority.IsValid() {
		return nil, &model.InvalidPriorityError{Value: uint8(priority)}
	}
	for IsOverloaded(store) && store.Size() > 0 {
		store.Evict(0)
	}
	return store.Create(priority)
}

// Priority admits a task into a full store only by evicting a task of strictly
// lower priority; otherwise admission is skipped.
type Priority struct{}

func (Priority) Mode() model.Mode { return model.ModePriority }

func (Priority) Add(store Store, priority model.Priority) (*model.Task, error) {
	for store.Size() >= store.Capacity() {
		switch priority {
		case model.PriorityLow:
			return nil, nil
		case model.PriorityMedium:
			if !evictFirst(store, model.PriorityLow) {
				return nil, nil
			}
		case model.PriorityHigh:
			if !evictFirst(store, model.PriorityLow, model.PriorityMedium) {
				return nil, nil
			}
		default:
			return nil, &model.InvalidPriorityError{Value: uint8(priority)}
		}
	}
	return store.Create(priority)
}

// evictFirst evicts the oldest task of the first priority class that has one.
func evictFirst(store Store, priorities ...model.Priority) bool {
	for _, priority := range priorities {
		for i := 0; i < store.Size(); i++ {
			if store.At(i).Priority() == priority {
				store.Evict(i)
				return true
			}
		}
	}
	return false
}
