package postgres

import (
	"context"
	"database/sql"
)

// Queryer expõe as operações com contexto usadas pelos repositórios
type Queryer interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (sql.Result, error)
	Query(ctx context.Context, sql string, args ...interface{}) (*sql.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) *sql.Row
}

// Scanner é satisfeito por *sql.Row e *sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}
