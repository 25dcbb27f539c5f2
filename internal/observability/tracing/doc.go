// Package tracing wires OpenTelemetry into the todo API.
//
// Init installs the SDK tracer provider (optionally exporting over OTLP/HTTP),
// Middleware opens one server span per HTTP request and echoes its trace ID
// in the X-Trace-Id response header, and GetTracer hands the same tracer to
// the use case layer for child spans such as "todo.Create".
//
//	tp, err := tracing.Init(ctx, tracing.Config{Enabled: true, ServiceName: "todo-api"})
//	if err != nil {
//	    return err
//	}
//	defer func() { _ = tp.Shutdown(context.Background()) }()
package tracing
