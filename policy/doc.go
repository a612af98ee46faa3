// Package policy provides the admission/eviction strategies applied by the
// task registry when it reaches capacity: Default rejects, FIFO evicts the
// oldest tasks, Priority evicts lower priority tasks or skips admission.
package policy
