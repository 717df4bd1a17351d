package repository_test

import (
	"context"
	"testing"

	"github.com/jaekwang-park/todo-backend/internal/repository"
)

func newSQLiteRepo(t *testing.T) repository.TodoRepository {
	t.Helper()

	db, err := repository.NewDB("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// each connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	repo := repository.NewSQLiteTodo(db)
	if err := repo.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("ensure schema: %v", err)
	}
	return repo
}

func TestSQLiteTodoRepository(t *testing.T) {
	runContract(t, newSQLiteRepo)
}

func TestSQLiteTodoRepository_EnsureSchemaIsRepeatable(t *testing.T) {
	db, err := repository.NewDB("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	defer db.Close()

	repo := repository.NewSQLiteTodo(db)
	for i := 0; i < 2; i++ {
		if err := repo.EnsureSchema(context.Background()); err != nil {
			t.Fatalf("ensure schema run %d: %v", i+1, err)
		}
	}
}
