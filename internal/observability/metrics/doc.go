// Package metrics provides the Prometheus collectors and recording helpers
// for the todo API.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count, size, in-flight)
//   - Todo operation metrics (per operation and result)
//   - Database query metrics
//
// Collectors are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	import "todo-api/internal/observability/metrics"
//
//	start := time.Now()
//	saved, err := repo.Create(ctx, todo)
//	metrics.RecordDBQuery("insert_todo", time.Since(start))
//	if err == nil {
//	    metrics.RecordTodoOperation("create", metrics.ResultSuccess)
//	}
package metrics
