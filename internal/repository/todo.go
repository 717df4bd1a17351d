package repository

import (
	"context"
	"errors"

	"github.com/jaekwang-park/todo-backend/internal/model"
)

// ErrNotFound is returned by FindByID when no todo has the given id.
var ErrNotFound = errors.New("todo not found")

// TodoRepository owns todo identity: Save assigns an unused id when the todo has none
// and overwrites by id otherwise.
type TodoRepository interface {
	Save(ctx context.Context, todo model.Todo) (model.Todo, error)
	FindByID(ctx context.Context, id int64) (model.Todo, error)
	FindAll(ctx context.Context) ([]model.Todo, error)
	FindByTitle(ctx context.Context, title string) ([]model.Todo, error)
	DeleteByID(ctx context.Context, id int64) error
	DeleteAll(ctx context.Context) error
}
