// Package taskmgr provides a bounded, in-process registry of task handles
// whose admission and eviction behaviour is selected by a mode:
//
//   - default  – reject new tasks once capacity is reached
//   - fifo     – evict the oldest tasks to make room
//   - priority – evict lower priority tasks, or skip admission
//
// Hosts typically build the registry from configuration and interact with it
// through the Service façade, which adds logging, tracing and change events
// on top of the registry in service/manager:
//
//	cfg, _ := taskmgr.LoadConfig(ctx, "taskmgr.yaml")
//	srv, _ := taskmgr.NewFromConfig(cfg)
//	task, err := srv.Add(ctx, model.PriorityHigh)
//	defer srv.Shutdown(ctx)
//
// The registry tracks handles only; it never executes the work they describe.
package taskmgr
