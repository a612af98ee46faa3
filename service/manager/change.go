package manager

import (
	"github.com/viant/taskmgr/model"
)

// ChangeType identifies a registry change.
type ChangeType string

const (
	// ChangeAdded is emitted when a task is admitted.
	ChangeAdded ChangeType = "added"
	// ChangeEvicted is emitted when a policy removes a task to make room.
	ChangeEvicted ChangeType = "evicted"
	// ChangeKilled is emitted when a task is removed by Kill or KillGroup.
	ChangeKilled ChangeType = "killed"
	// ChangeCleared is emitted by KillAll.
	ChangeCleared ChangeType = "cleared"
	// ChangeConfigured is emitted by Initialize, ResetMode and ResetCapacity.
	ChangeConfigured ChangeType = "configured"
)

// Change describes a completed registry mutation.
type Change struct {
	Type     ChangeType      `json:"type"`
	Task     *model.TaskView `json:"task,omitempty"`
	Mode     model.Mode      `json:"mode"`
	Capacity int             `json:"capacity"`
	// Count is the number of tasks cleared for ChangeCleared and ChangeConfigured.
	Count int `json:"count,omitempty"`
}

// Listener receives registry changes.
type Listener func(change *Change)
