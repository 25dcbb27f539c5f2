// Package repository declares the persistence ports used by the use cases.
package repository

import (
	"context"

	"todo-api/internal/domain/entity"
)

// TodoRepository is the store that owns durable Todo state.
//
// Get returns (nil, nil) when no record has the given id.
// Create returns the stored record carrying its assigned id; a (nil, nil)
// result means the store persisted nothing.
// Update and Delete wrap entity.ErrNotFound when no row matched.
type TodoRepository interface {
	List(ctx context.Context) ([]*entity.Todo, error)
	Get(ctx context.Context, id int64) (*entity.Todo, error)
	Create(ctx context.Context, todo *entity.Todo) (*entity.Todo, error)
	Update(ctx context.Context, todo *entity.Todo) (*entity.Todo, error)
	Delete(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
	Count(ctx context.Context) (int64, error)
}
