package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arivar/backend/internal/schema"
	"github.com/arivar/backend/pkg/logging"
)

// recordingStore captures CreateDocument calls.
type recordingStore struct {
	kinds []string
	docs  []any
	err   error
}

func (s *recordingStore) CreateDocument(_ context.Context, kind string, doc any) (string, error) {
	s.kinds = append(s.kinds, kind)
	s.docs = append(s.docs, doc)
	if s.err != nil {
		return "", s.err
	}
	return "lead-123", nil
}

func (s *recordingStore) GetDocument(context.Context, string, string) (json.RawMessage, error) {
	return nil, errors.New("not implemented")
}

func newTestRegistry() *schema.Registry {
	reg := schema.NewRegistry()
	reg.Register(SchemaName, SchemaDefinition())
	return reg
}

func postLead(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/leads", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Create(rr, req)
	return rr
}

func TestCreateLead_Success(t *testing.T) {
	store := &recordingStore{}
	handler := NewHandler(store, newTestRegistry(), nil, logging.Default())

	rr := postLead(t, handler, `{"name":"John Doe","email":"john@example.com","message":"Requesting a demo"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status ok, got %q", resp["status"])
	}
	if resp["id"] == "" {
		t.Error("expected non-empty id")
	}

	if len(store.kinds) != 1 {
		t.Fatalf("expected exactly one persistence call, got %d", len(store.kinds))
	}
	if store.kinds[0] != "lead" {
		t.Errorf("expected kind lead, got %q", store.kinds[0])
	}
}

func TestCreateLead_MissingName(t *testing.T) {
	store := &recordingStore{}
	handler := NewHandler(store, newTestRegistry(), nil, logging.Default())

	rr := postLead(t, handler, `{"email":"john@example.com"}`)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
	if len(store.kinds) != 0 {
		t.Errorf("expected no persistence call, got %d", len(store.kinds))
	}
	if !strings.Contains(rr.Body.String(), ErrInvalidName.Error()) {
		t.Errorf("expected validator message, got %q", rr.Body.String())
	}
}

func TestCreateLead_MissingContact(t *testing.T) {
	store := &recordingStore{}
	handler := NewHandler(store, newTestRegistry(), nil, logging.Default())

	rr := postLead(t, handler, `{"name":"John Doe"}`)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
	if len(store.kinds) != 0 {
		t.Errorf("expected no persistence call, got %d", len(store.kinds))
	}
}

func TestCreateLead_WrongFieldType(t *testing.T) {
	store := &recordingStore{}
	handler := NewHandler(store, newTestRegistry(), nil, logging.Default())

	rr := postLead(t, handler, `{"name":42,"email":"john@example.com"}`)

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
	if len(store.kinds) != 0 {
		t.Errorf("expected no persistence call, got %d", len(store.kinds))
	}
}

func TestCreateLead_UnknownFieldsIgnored(t *testing.T) {
	store := &recordingStore{}
	handler := NewHandler(store, newTestRegistry(), nil, logging.Default())

	rr := postLead(t, handler, `{"name":"John Doe","phone":"+1234567890","utm_campaign":"spring"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}
	if len(store.docs) != 1 {
		t.Fatalf("expected one persistence call, got %d", len(store.docs))
	}

	lead, ok := store.docs[0].(*Lead)
	if !ok {
		t.Fatalf("expected *Lead document, got %T", store.docs[0])
	}
	if lead.Phone != "+1234567890" {
		t.Errorf("expected phone to survive, got %q", lead.Phone)
	}
}

func TestCreateLead_InvalidJSON(t *testing.T) {
	store := &recordingStore{}
	handler := NewHandler(store, newTestRegistry(), nil, logging.Default())

	rr := postLead(t, handler, "{")

	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status %d, got %d", http.StatusUnprocessableEntity, rr.Code)
	}
}

func TestCreateLead_StoreError(t *testing.T) {
	store := &recordingStore{err: errors.New("connection lost")}
	handler := NewHandler(store, newTestRegistry(), nil, logging.Default())

	rr := postLead(t, handler, `{"name":"John Doe","email":"john@example.com"}`)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "connection lost") {
		t.Errorf("expected storage error message, got %q", rr.Body.String())
	}
}

func TestCreateLead_NotConfigured(t *testing.T) {
	tests := []struct {
		name    string
		handler *Handler
	}{
		{"nil store", NewHandler(nil, newTestRegistry(), nil, logging.Default())},
		{"nil registry", NewHandler(&recordingStore{}, nil, nil, logging.Default())},
		{"schema not registered", NewHandler(&recordingStore{}, schema.NewRegistry(), nil, logging.Default())},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := postLead(t, tt.handler, `{"name":"John Doe","email":"john@example.com"}`)
			if rr.Code != http.StatusInternalServerError {
				t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
			}
			if !strings.Contains(rr.Body.String(), "Database not configured") {
				t.Errorf("expected configuration error, got %q", rr.Body.String())
			}
		})
	}
}

func TestLeadValidate(t *testing.T) {
	tests := []struct {
		name string
		lead Lead
		want error
	}{
		{"valid with email", Lead{Name: "A", Email: "a@example.com"}, nil},
		{"valid with phone", Lead{Name: "A", Phone: "+15550001111"}, nil},
		{"missing name", Lead{Email: "a@example.com"}, ErrInvalidName},
		{"missing contact", Lead{Name: "A"}, ErrMissingContact},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.lead.Validate(); err != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
