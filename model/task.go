package model

import "encoding/json"

// Owner removes tasks by id; it is implemented by the registry that created
// the task.
type Owner interface {
	Kill(id string) bool
}

// Task is an immutable handle of a tracked unit of work. Tasks are created
// only by a registry and stay valid until the registry removes them.
type Task struct {
	id        string
	createdAt int64
	priority  Priority
	owner     Owner
}

// NewTask creates a task owned by owner.
func NewTask(owner Owner, id string, createdAt int64, priority Priority) (*Task, error) {
	if !priority.IsValid() {
		return nil, &InvalidPriorityError{Value: uint8(priority)}
	}
	return &Task{id: id, createdAt: createdAt, priority: priority, owner: owner}, nil
}

// ID returns the task's opaque unique identifier (pid).
func (t *Task) ID() string { return t.id }

// CreatedAt returns the creation timestamp in milliseconds.
func (t *Task) CreatedAt() int64 { return t.createdAt }

// Priority returns the task priority.
func (t *Task) Priority() Priority { return t.priority }

// Kill asks the owning registry to remove this task. It returns false when the
// task was already removed.
func (t *Task) Kill() bool {
	if t == nil || t.owner == nil {
		return false
	}
	return t.owner.Kill(t.id)
}

// TaskView is the serialisable form of a Task.
type TaskView struct {
	CreatedAt int64    `json:"createdAt" yaml:"createdAt"`
	ID        string   `json:"id" yaml:"id"`
	Priority  Priority `json:"priority" yaml:"priority"`
}

// View returns the serialisable form of the task, without its owner.
func (t *Task) View() TaskView {
	return TaskView{CreatedAt: t.createdAt, ID: t.id, Priority: t.priority}
}

// MarshalJSON encodes the task as {createdAt, id, priority}.
func (t *Task) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.View())
}
