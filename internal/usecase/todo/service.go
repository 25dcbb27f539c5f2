package todo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"todo-api/internal/domain/entity"
	"todo-api/internal/observability/logging"
	"todo-api/internal/observability/metrics"
	"todo-api/internal/observability/tracing"
	"todo-api/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation names shared by spans and the todo_operations_total counter.
const (
	OpList      = "list"
	OpGet       = "get"
	OpCreate    = "create"
	OpUpdate    = "update"
	OpDelete    = "delete"
	OpDeleteAll = "delete_all"
)

// Service provides todo management use cases.
// Every call goes straight to the repository; the service only translates
// absent records into ErrTodoNotFound and keeps client-supplied IDs away
// from the store.
type Service struct {
	Repo repository.TodoRepository
}

// List returns every todo ordered by ID.
func (s *Service) List(ctx context.Context) (todos []*entity.Todo, err error) {
	ctx, done := begin(ctx, OpList)
	defer func() { done(err) }()

	todos, err = s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

// Get returns the todo with the given ID or ErrTodoNotFound.
func (s *Service) Get(ctx context.Context, id int64) (todo *entity.Todo, err error) {
	ctx, done := begin(ctx, OpGet, attribute.Int64("todo.id", id))
	defer func() { done(err) }()

	return s.find(ctx, id)
}

// Create stores a new todo and returns the persisted record.
// Any ID set on in is ignored. ErrTodoNotPersisted is returned when the
// store reports success without handing back a record.
func (s *Service) Create(ctx context.Context, in *entity.Todo) (todo *entity.Todo, err error) {
	ctx, done := begin(ctx, OpCreate)
	defer func() { done(err) }()

	created, err := s.Repo.Create(ctx, entity.NewTodo(in.Title, in.Content))
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	if !created.Persisted() {
		logging.FromContext(ctx).Warn("store returned no todo on create",
			slog.String("title", in.Title))
		return nil, ErrTodoNotPersisted
	}
	return created, nil
}

// Update overwrites the title and content of an existing todo.
// It never creates a record: a missing ID yields ErrTodoNotFound.
func (s *Service) Update(ctx context.Context, id int64, in *entity.Todo) (todo *entity.Todo, err error) {
	ctx, done := begin(ctx, OpUpdate, attribute.Int64("todo.id", id))
	defer func() { done(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	current.Overwrite(in)

	updated, err := s.Repo.Update(ctx, current)
	if err != nil {
		// 取得後に別リクエストで削除された場合
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("update todo: %w", err)
	}
	if updated == nil {
		return current, nil
	}
	return updated, nil
}

// Delete removes the todo with the given ID and returns it as it was
// before deletion.
func (s *Service) Delete(ctx context.Context, id int64) (todo *entity.Todo, err error) {
	ctx, done := begin(ctx, OpDelete, attribute.Int64("todo.id", id))
	defer func() { done(err) }()

	current, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("delete todo: %w", err)
	}
	return current, nil
}

// DeleteAll removes every todo. It succeeds on an empty store.
func (s *Service) DeleteAll(ctx context.Context) (err error) {
	ctx, done := begin(ctx, OpDeleteAll)
	defer func() { done(err) }()

	if err := s.Repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("delete all todos: %w", err)
	}
	return nil
}

func (s *Service) find(ctx context.Context, id int64) (*entity.Todo, error) {
	todo, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get todo: %w", err)
	}
	if todo == nil {
		return nil, ErrTodoNotFound
	}
	return todo, nil
}

// begin starts the span for op and returns a function that ends it and
// counts the outcome.
func begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := tracing.GetTracer().Start(ctx, "todo."+op, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		result := resultOf(err)
		metrics.RecordTodoOperation(op, result)
		span.SetAttributes(attribute.String("todo.result", result))
		if result == metrics.ResultError {
			span.RecordError(err)
			span.SetStatus(codes.Error, "todo operation failed")
		}
		span.End()
	}
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case errors.Is(err, ErrTodoNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, ErrTodoNotPersisted):
		return metrics.ResultNotPersisted
	default:
		return metrics.ResultError
	}
}
