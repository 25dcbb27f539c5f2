package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation scope used for every span the service creates.
const TracerName = "todo-api"

var tracer = otel.Tracer(TracerName)

// GetTracer returns the tracer shared by the HTTP middleware and the use case layer.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "todo.Get")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}
