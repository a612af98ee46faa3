// Package tracing integrates OpenTelemetry with the task registry so that
// registry operations performed through the host façade produce spans. All
// instrumentation lives here so that the registry core stays free of it.
package tracing
