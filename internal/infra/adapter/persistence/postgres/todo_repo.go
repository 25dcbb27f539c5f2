// Package postgres implements the repository ports on PostgreSQL through
// database/sql and the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"todo-api/internal/domain/entity"
	"todo-api/internal/observability/metrics"
	"todo-api/internal/repository"
)

type TodoRepo struct{ db *sql.DB }

func NewTodoRepo(db *sql.DB) repository.TodoRepository {
	return &TodoRepo{db: db}
}

// observe records the latency of op; call it as defer observe(op, time.Now()).
func observe(op string, start time.Time) {
	metrics.RecordDBQuery(op, time.Since(start))
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (*entity.Todo, error) {
	var t entity.Todo
	if err := s.Scan(&t.ID, &t.Title, &t.Content); err != nil {
		return nil, err
	}
	return &t, nil
}

func (repo *TodoRepo) List(ctx context.Context) ([]*entity.Todo, error) {
	defer observe("list", time.Now())

	const query = `
SELECT id, title, content
FROM todos
ORDER BY id ASC`
	rows, err := repo.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	defer func() { _ = rows.Close() }()

	todos := make([]*entity.Todo, 0, 16)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("List: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return todos, nil
}

func (repo *TodoRepo) Get(ctx context.Context, id int64) (*entity.Todo, error) {
	defer observe("get", time.Now())

	const query = `
SELECT id, title, content
FROM todos
WHERE id = $1
LIMIT 1`
	t, err := scanTodo(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return t, nil
}

// Create inserts todo and returns the stored row. The id of the argument is
// ignored; SERIAL assigns it.
func (repo *TodoRepo) Create(ctx context.Context, todo *entity.Todo) (*entity.Todo, error) {
	defer observe("create", time.Now())

	const query = `
INSERT INTO todos (title, content)
VALUES ($1, $2)
RETURNING id, title, content`
	t, err := scanTodo(repo.db.QueryRowContext(ctx, query, todo.Title, todo.Content))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Create: %w", err)
	}
	return t, nil
}

func (repo *TodoRepo) Update(ctx context.Context, todo *entity.Todo) (*entity.Todo, error) {
	defer observe("update", time.Now())

	const query = `
UPDATE todos SET
       title   = $1,
       content = $2
WHERE id = $3
RETURNING id, title, content`
	t, err := scanTodo(repo.db.QueryRowContext(ctx, query, todo.Title, todo.Content, todo.ID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("Update: id=%d: %w", todo.ID, entity.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("Update: %w", err)
	}
	return t, nil
}

func (repo *TodoRepo) Delete(ctx context.Context, id int64) error {
	defer observe("delete", time.Now())

	const query = `DELETE FROM todos WHERE id = $1`
	res, err := repo.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("Delete: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("Delete: id=%d: %w", id, entity.ErrNotFound)
	}
	return nil
}

func (repo *TodoRepo) DeleteAll(ctx context.Context) error {
	defer observe("delete_all", time.Now())

	if _, err := repo.db.ExecContext(ctx, `DELETE FROM todos`); err != nil {
		return fmt.Errorf("DeleteAll: %w", err)
	}
	return nil
}

func (repo *TodoRepo) Count(ctx context.Context) (int64, error) {
	defer observe("count", time.Now())

	var n int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}
