// Package observability groups the todo API's telemetry.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus collectors for HTTP traffic, todo operations and queries
//   - tracing: OpenTelemetry provider setup and HTTP server spans
package observability
