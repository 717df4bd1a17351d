package repository_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jaekwang-park/todo-backend/internal/model"
	"github.com/jaekwang-park/todo-backend/internal/repository"
)

// runContract exercises the storage behavior every backend must share.
func runContract(t *testing.T, newRepo func(t *testing.T) repository.TodoRepository) {
	ctx := context.Background()

	t.Run("save assigns id", func(t *testing.T) {
		repo := newRepo(t)

		saved, err := repo.Save(ctx, model.Todo{Title: "a todo"})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		id, ok := saved.ID.Get()
		if !ok || id <= 0 {
			t.Fatalf("expected positive id, got %v", saved.ID)
		}
		if saved.Title != "a todo" || saved.Completed || saved.Order.IsPresent() {
			t.Errorf("unexpected saved todo: %+v", saved)
		}
	})

	t.Run("ids are unique", func(t *testing.T) {
		repo := newRepo(t)

		first, err := repo.Save(ctx, model.Todo{Title: "first"})
		if err != nil {
			t.Fatalf("save first: %v", err)
		}
		second, err := repo.Save(ctx, model.Todo{Title: "second"})
		if err != nil {
			t.Fatalf("save second: %v", err)
		}
		if first.ID == second.ID {
			t.Errorf("expected distinct ids, both %v", first.ID)
		}
	})

	t.Run("save then find by id", func(t *testing.T) {
		repo := newRepo(t)

		saved, err := repo.Save(ctx, model.Todo{Title: "read me", Completed: true, Order: model.Some(4)})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		id, _ := saved.ID.Get()

		got, err := repo.FindByID(ctx, id)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got != saved {
			t.Errorf("got %+v, want %+v", got, saved)
		}
	})

	t.Run("find missing id", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.FindByID(ctx, 999)
		if !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("save with id overwrites", func(t *testing.T) {
		repo := newRepo(t)

		saved, err := repo.Save(ctx, model.Todo{Title: "initial", Order: model.Some(2)})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		id, _ := saved.ID.Get()

		updated := model.Todo{ID: saved.ID, Title: "changed", Completed: true}
		if _, err := repo.Save(ctx, updated); err != nil {
			t.Fatalf("overwrite: %v", err)
		}

		got, err := repo.FindByID(ctx, id)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if got != updated {
			t.Errorf("got %+v, want %+v", got, updated)
		}

		all, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if len(all) != 1 {
			t.Errorf("expected overwrite not insert, got %d todos", len(all))
		}
	})

	t.Run("zero order is not absent", func(t *testing.T) {
		repo := newRepo(t)

		saved, err := repo.Save(ctx, model.Todo{Title: "first", Order: model.Some(0)})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		id, _ := saved.ID.Get()

		got, err := repo.FindByID(ctx, id)
		if err != nil {
			t.Fatalf("find: %v", err)
		}
		if order, ok := got.Order.Get(); !ok || order != 0 {
			t.Errorf("expected order 0, got %v", got.Order)
		}
	})

	t.Run("find all in id order", func(t *testing.T) {
		repo := newRepo(t)

		var want []model.Todo
		for _, title := range []string{"one", "two", "three"} {
			saved, err := repo.Save(ctx, model.Todo{Title: title})
			if err != nil {
				t.Fatalf("save %s: %v", title, err)
			}
			want = append(want, saved)
		}

		got, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if len(got) != len(want) {
			t.Fatalf("expected %d todos, got %d", len(want), len(got))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("todo %d: got %+v, want %+v", i, got[i], want[i])
			}
		}
	})

	t.Run("find all empty", func(t *testing.T) {
		repo := newRepo(t)

		got, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if got == nil || len(got) != 0 {
			t.Errorf("expected empty non-nil slice, got %#v", got)
		}
	})

	t.Run("find by title", func(t *testing.T) {
		repo := newRepo(t)

		for _, title := range []string{"a todo", "another", "a todo"} {
			if _, err := repo.Save(ctx, model.Todo{Title: title}); err != nil {
				t.Fatalf("save: %v", err)
			}
		}

		got, err := repo.FindByTitle(ctx, "a todo")
		if err != nil {
			t.Fatalf("find by title: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(got))
		}
		for _, todo := range got {
			if todo.Title != "a todo" {
				t.Errorf("unexpected match %+v", todo)
			}
		}
	})

	t.Run("delete by id", func(t *testing.T) {
		repo := newRepo(t)

		saved, err := repo.Save(ctx, model.Todo{Title: "doomed"})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		id, _ := saved.ID.Get()

		if err := repo.DeleteByID(ctx, id); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repo.FindByID(ctx, id); !errors.Is(err, repository.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
	})

	t.Run("delete missing id is a no-op", func(t *testing.T) {
		repo := newRepo(t)

		if err := repo.DeleteByID(ctx, 12345); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("delete all", func(t *testing.T) {
		repo := newRepo(t)

		for _, title := range []string{"one", "two"} {
			if _, err := repo.Save(ctx, model.Todo{Title: title}); err != nil {
				t.Fatalf("save: %v", err)
			}
		}
		if err := repo.DeleteAll(ctx); err != nil {
			t.Fatalf("delete all: %v", err)
		}

		got, err := repo.FindAll(ctx)
		if err != nil {
			t.Fatalf("find all: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no todos, got %d", len(got))
		}
	})

	t.Run("ids are not reused after delete", func(t *testing.T) {
		repo := newRepo(t)

		first, err := repo.Save(ctx, model.Todo{Title: "first"})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if err := repo.DeleteAll(ctx); err != nil {
			t.Fatalf("delete all: %v", err)
		}
		second, err := repo.Save(ctx, model.Todo{Title: "second"})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
		if first.ID == second.ID {
			t.Errorf("id %v was reused", first.ID)
		}
	})
}
