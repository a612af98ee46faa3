// Package manager implements the task registry: a bounded, mutex guarded
// collection of task handles whose admission and eviction rules are delegated
// to the policy adapter registered for the current mode.
//
// Every public method runs as a single critical section, so an Add that
// evicts before appending is never interleaved with another operation.
// Listeners registered with WithListener are notified after the critical
// section ends and may call back into the registry.
package manager
