package repository

import (
	"database/sql"

	_ "github.com/lib/pq"
)

var postgresQueries = sqlQueries{
	schema: `
		CREATE TABLE IF NOT EXISTS todos (
			id           BIGSERIAL PRIMARY KEY,
			title        TEXT NOT NULL,
			completed    BOOLEAN NOT NULL DEFAULT FALSE,
			order_number INTEGER
		)`,
	insert: `
		INSERT INTO todos (title, completed, order_number)
		VALUES ($1, $2, $3)
		RETURNING id, title, completed, order_number`,
	upsert: `
		INSERT INTO todos (id, title, completed, order_number)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title, completed = EXCLUDED.completed, order_number = EXCLUDED.order_number
		RETURNING id, title, completed, order_number`,
	findByID: `
		SELECT id, title, completed, order_number
		FROM todos
		WHERE id = $1`,
	findAll: `
		SELECT id, title, completed, order_number
		FROM todos
		ORDER BY id`,
	findByTitle: `
		SELECT id, title, completed, order_number
		FROM todos
		WHERE title = $1
		ORDER BY id`,
	deleteByID: `DELETE FROM todos WHERE id = $1`,
	deleteAll:  `DELETE FROM todos`,
}

func NewPostgresTodo(db *sql.DB) *SQLTodoRepository {
	return &SQLTodoRepository{db: db, q: postgresQueries}
}
