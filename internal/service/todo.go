package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jaekwang-park/todo-backend/internal/model"
	"github.com/jaekwang-park/todo-backend/internal/repository"
)

type CreateTodoInput struct {
	Title     string
	Completed model.Optional[bool]
	Order     model.Optional[int]
}

// TodoService implements the todo operations on top of a repository.
// Every todo it returns carries a URL derived from root and the todo id.
type TodoService struct {
	repo repository.TodoRepository
	root string
}

func NewTodoService(repo repository.TodoRepository, root string) *TodoService {
	return &TodoService{
		repo: repo,
		root: strings.TrimRight(root, "/"),
	}
}

// URL returns the self link of the todo with the given id.
func (s *TodoService) URL(id int64) string {
	return s.root + "/" + strconv.FormatInt(id, 10)
}

func (s *TodoService) Create(ctx context.Context, input CreateTodoInput) (model.TodoResponse, error) {
	todo := model.Todo{
		Title:     input.Title,
		Completed: input.Completed.OrElse(false),
		Order:     input.Order,
	}

	created, err := s.repo.Save(ctx, todo)
	if err != nil {
		return model.TodoResponse{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return s.respond(created), nil
}

func (s *TodoService) List(ctx context.Context) ([]model.TodoResponse, error) {
	todos, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list todos: %w", err)
	}
	return s.respondAll(todos), nil
}

func (s *TodoService) FindByTitle(ctx context.Context, title string) ([]model.TodoResponse, error) {
	todos, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return nil, fmt.Errorf("failed to find todos by title: %w", err)
	}
	return s.respondAll(todos), nil
}

func (s *TodoService) GetOne(ctx context.Context, id int64) (model.TodoResponse, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.TodoResponse{}, ErrNotFound
		}
		return model.TodoResponse{}, fmt.Errorf("failed to get todo: %w", err)
	}
	return s.respond(todo), nil
}

// Update merges patch into the stored todo and saves the result.
// A missing todo yields ErrNotFound and nothing is written.
func (s *TodoService) Update(ctx context.Context, id int64, patch model.TodoPatch) (model.TodoResponse, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.TodoResponse{}, ErrNotFound
		}
		return model.TodoResponse{}, fmt.Errorf("failed to get todo for update: %w", err)
	}

	updated, err := s.repo.Save(ctx, model.Merge(existing, patch))
	if err != nil {
		return model.TodoResponse{}, fmt.Errorf("failed to update todo: %w", err)
	}

	return s.respond(updated), nil
}

// DeleteOne succeeds whether or not the todo exists.
func (s *TodoService) DeleteOne(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	return nil
}

func (s *TodoService) DeleteAll(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to delete todos: %w", err)
	}
	return nil
}

func (s *TodoService) respond(todo model.Todo) model.TodoResponse {
	return model.NewTodoResponse(todo, s.URL(todo.ID.OrElse(0)))
}

func (s *TodoService) respondAll(todos []model.Todo) []model.TodoResponse {
	out := make([]model.TodoResponse, 0, len(todos))
	for _, todo := range todos {
		out = append(out, s.respond(todo))
	}
	return out
}
