package metrics

import (
	"context"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operation results used as the "result" label of TodoOperationsTotal.
const (
	ResultSuccess      = "success"
	ResultNotFound     = "not_found"
	ResultNotPersisted = "not_persisted"
	ResultError        = "error"
)

// RecordTodoOperation increments the operation counter for the given result.
func RecordTodoOperation(operation, result string) {
	TodoOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordDBQuery records the duration of a database query operation.
// Operation is the repository method that issued the query: list, get,
// create, update, delete, delete_all or count.
func RecordDBQuery(operation string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// TodoCounter is the subset of the todo store needed by the todos_total gauge.
type TodoCounter interface {
	Count(ctx context.Context) (int64, error)
}

// countTimeout bounds the COUNT query issued on each scrape.
const countTimeout = 2 * time.Second

// NewTodosTotalCollector returns a gauge that asks the store for the number
// of todos every time Prometheus scrapes. A failed count reports -1 and is
// logged at warn level.
func NewTodosTotalCollector(counter TodoCounter, logger *slog.Logger) prometheus.GaugeFunc {
	return prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "todos_total",
			Help: "Total number of todos in the store",
		},
		func() float64 {
			ctx, cancel := context.WithTimeout(context.Background(), countTimeout)
			defer cancel()

			n, err := counter.Count(ctx)
			if err != nil {
				logger.Warn("failed to count todos for metrics", slog.Any("error", err))
				return -1
			}
			return float64(n)
		},
	)
}
