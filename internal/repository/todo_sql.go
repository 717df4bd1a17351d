package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jaekwang-park/todo-backend/internal/model"
)

// sqlQueries holds the statements a SQL backend needs. Every statement that
// returns rows selects id, title, completed, order_number in that order.
type sqlQueries struct {
	schema      string
	insert      string
	upsert      string
	findByID    string
	findAll     string
	findByTitle string
	deleteByID  string
	deleteAll   string
}

// SQLTodoRepository stores todos in a single table. "order" is reserved in SQL,
// so the column is order_number.
type SQLTodoRepository struct {
	db *sql.DB
	q  sqlQueries
}

// EnsureSchema creates the todos table if it does not exist.
func (r *SQLTodoRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.q.schema); err != nil {
		return fmt.Errorf("failed to create todos table: %w", err)
	}
	return nil
}

func (r *SQLTodoRepository) Save(ctx context.Context, todo model.Todo) (model.Todo, error) {
	order := todo.Order.Ptr()

	var row *sql.Row
	if id, ok := todo.ID.Get(); ok {
		row = r.db.QueryRowContext(ctx, r.q.upsert, id, todo.Title, todo.Completed, order)
	} else {
		row = r.db.QueryRowContext(ctx, r.q.insert, todo.Title, todo.Completed, order)
	}

	saved, err := scanTodo(row)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to save todo: %w", err)
	}
	return saved, nil
}

func (r *SQLTodoRepository) FindByID(ctx context.Context, id int64) (model.Todo, error) {
	todo, err := scanTodo(r.db.QueryRowContext(ctx, r.q.findByID, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Todo{}, ErrNotFound
		}
		return model.Todo{}, err
	}
	return todo, nil
}

func (r *SQLTodoRepository) FindAll(ctx context.Context) ([]model.Todo, error) {
	return r.query(ctx, r.q.findAll)
}

func (r *SQLTodoRepository) FindByTitle(ctx context.Context, title string) ([]model.Todo, error) {
	return r.query(ctx, r.q.findByTitle, title)
}

func (r *SQLTodoRepository) DeleteByID(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, r.q.deleteByID, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (r *SQLTodoRepository) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.q.deleteAll); err != nil {
		return fmt.Errorf("failed to delete todos: %w", err)
	}
	return nil
}

func (r *SQLTodoRepository) query(ctx context.Context, query string, args ...any) ([]model.Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	defer rows.Close()

	todos := []model.Todo{}
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}

	return todos, nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanTodo(row scannable) (model.Todo, error) {
	var (
		id    int64
		t     model.Todo
		order *int
	)
	if err := row.Scan(&id, &t.Title, &t.Completed, &order); err != nil {
		return model.Todo{}, fmt.Errorf("failed to scan todo: %w", err)
	}
	t.ID = model.Some(id)
	t.Order = model.OptionalFromPtr(order)
	return t, nil
}

// ensure compile-time interface compliance
var _ TodoRepository = (*SQLTodoRepository)(nil)
