package diagnostics

import (
	"context"
	"database/sql"
	"fmt"
)

// Database is the narrow view of the backing database the prober consumes.
type Database interface {
	Name() string
	ListCollections(ctx context.Context) ([]string, error)
}

// Resolver yields the optional database handle. A nil handle with a nil
// error means the database layer is wired but not initialized yet.
type Resolver func(ctx context.Context) (Database, error)

// SQLDatabase adapts a database/sql connection to the Database interface,
// treating tables in the public schema as collections.
type SQLDatabase struct {
	db   *sql.DB
	name string
}

// NewSQLDatabase wraps an open connection. name is the configured database
// name and may be empty.
func NewSQLDatabase(db *sql.DB, name string) *SQLDatabase {
	return &SQLDatabase{db: db, name: name}
}

// Name returns the configured database name.
func (d *SQLDatabase) Name() string {
	return d.name
}

// ListCollections enumerates user tables, ordered by name.
func (d *SQLDatabase) ListCollections(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT table_name FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name`)
	if err != nil {
		return nil, fmt.Errorf("diagnostics: list tables: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("diagnostics: scan table name: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}
