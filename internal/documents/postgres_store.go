package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// PgxDB is the slice of pgxpool.Pool the store depends on.
type PgxDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore stores documents in the relational database as jsonb rows.
type PostgresStore struct {
	db PgxDB
}

// NewPostgresStore initializes a store backed by a pgx pool.
func NewPostgresStore(db PgxDB) *PostgresStore {
	if db == nil {
		panic("documents: pgx pool required")
	}
	return &PostgresStore{db: db}
}

// CreateDocument inserts a new row and returns its generated id.
func (s *PostgresStore) CreateDocument(ctx context.Context, kind string, doc any) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("documents: encode failed: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO documents (id, kind, body)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.Exec(ctx, query, id, kind, body); err != nil {
		return "", fmt.Errorf("documents: insert failed: %w", err)
	}
	return id.String(), nil
}

// GetDocument fetches a document body scoped to its kind.
func (s *PostgresStore) GetDocument(ctx context.Context, kind, id string) (json.RawMessage, error) {
	query := `
		SELECT body
		FROM documents
		WHERE kind = $1 AND id = $2
	`
	var body json.RawMessage
	if err := s.db.QueryRow(ctx, query, kind, id).Scan(&body); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, fmt.Errorf("documents: select failed: %w", err)
	}
	return body, nil
}
