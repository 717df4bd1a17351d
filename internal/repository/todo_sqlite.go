package repository

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

// AUTOINCREMENT keeps SQLite from handing out the id of a deleted row again.
var sqliteQueries = sqlQueries{
	schema: `
		CREATE TABLE IF NOT EXISTS todos (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			title        TEXT NOT NULL,
			completed    BOOLEAN NOT NULL DEFAULT 0,
			order_number INTEGER
		)`,
	insert: `
		INSERT INTO todos (title, completed, order_number)
		VALUES (?, ?, ?)
		RETURNING id, title, completed, order_number`,
	upsert: `
		INSERT INTO todos (id, title, completed, order_number)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE
		SET title = excluded.title, completed = excluded.completed, order_number = excluded.order_number
		RETURNING id, title, completed, order_number`,
	findByID: `
		SELECT id, title, completed, order_number
		FROM todos
		WHERE id = ?`,
	findAll: `
		SELECT id, title, completed, order_number
		FROM todos
		ORDER BY id`,
	findByTitle: `
		SELECT id, title, completed, order_number
		FROM todos
		WHERE title = ?
		ORDER BY id`,
	deleteByID: `DELETE FROM todos WHERE id = ?`,
	deleteAll:  `DELETE FROM todos`,
}

func NewSQLiteTodo(db *sql.DB) *SQLTodoRepository {
	return &SQLTodoRepository{db: db, q: sqliteQueries}
}
