package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

var (
	// ErrDocumentNotFound is returned when a document is not found
	ErrDocumentNotFound = errors.New("document not found")
)

// Store persists arbitrary documents grouped by kind. The id of a newly
// created document is generated by the store and returned to the caller.
type Store interface {
	CreateDocument(ctx context.Context, kind string, doc any) (string, error)
	GetDocument(ctx context.Context, kind, id string) (json.RawMessage, error)
}

// InMemoryStore is a Store implementation backed by process memory. It is
// used by tests and by local development without a database.
type InMemoryStore struct {
	mu    sync.RWMutex
	kinds map[string]map[string]json.RawMessage
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		kinds: make(map[string]map[string]json.RawMessage),
	}
}

// CreateDocument stores a new document under the given kind.
func (s *InMemoryStore) CreateDocument(ctx context.Context, kind string, doc any) (string, error) {
	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("documents: encode failed: %w", err)
	}

	id := uuid.New().String()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.kinds[kind] == nil {
		s.kinds[kind] = make(map[string]json.RawMessage)
	}
	s.kinds[kind][id] = body
	return id, nil
}

// GetDocument retrieves a document body by kind and id.
func (s *InMemoryStore) GetDocument(ctx context.Context, kind, id string) (json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	body, ok := s.kinds[kind][id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return body, nil
}
