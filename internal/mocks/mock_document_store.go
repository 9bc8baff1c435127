package mocks

import (
	"context"
	"net/http"
	"sync"

	"github.com/Tarun1516/yaakai/domain"
)

// MockDocumentStore implements domain.DocumentStore for testing. The
// cart store issues concurrent Delete calls, so the call counters are
// guarded by a mutex.
type MockDocumentStore struct {
	ListFunc   func(ctx context.Context, collectionID, field, value string) ([]domain.Document, error)
	GetFunc    func(ctx context.Context, collectionID, documentID string) (*domain.Document, error)
	CreateFunc func(ctx context.Context, collectionID, documentID string, fields map[string]any) (*domain.Document, error)
	UpdateFunc func(ctx context.Context, collectionID, documentID string, fields map[string]any) (*domain.Document, error)
	DeleteFunc func(ctx context.Context, collectionID, documentID string) error

	mu          sync.Mutex
	ListCalls   int
	GetCalls    int
	CreateCalls int
	UpdateCalls int
	DeleteCalls int
}

func (m *MockDocumentStore) record(counter *int) {
	m.mu.Lock()
	*counter++
	m.mu.Unlock()
}

// NewMockDocumentStore creates a new MockDocumentStore with default behaviors
func NewMockDocumentStore() *MockDocumentStore {
	return &MockDocumentStore{}
}

// List lists documents matching an equality filter
func (m *MockDocumentStore) List(ctx context.Context, collectionID, field, value string) ([]domain.Document, error) {
	m.record(&m.ListCalls)
	if m.ListFunc != nil {
		return m.ListFunc(ctx, collectionID, field, value)
	}
	// Default behavior: empty collection
	return nil, nil
}

// Get fetches one document by ID
func (m *MockDocumentStore) Get(ctx context.Context, collectionID, documentID string) (*domain.Document, error) {
	m.record(&m.GetCalls)
	if m.GetFunc != nil {
		return m.GetFunc(ctx, collectionID, documentID)
	}
	// Default behavior: not found
	return nil, &domain.RemoteError{Code: http.StatusNotFound, Message: "Document with the requested ID could not be found"}
}

// Create creates a document with a caller-assigned ID
func (m *MockDocumentStore) Create(ctx context.Context, collectionID, documentID string, fields map[string]any) (*domain.Document, error) {
	m.record(&m.CreateCalls)
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, collectionID, documentID, fields)
	}
	// Default behavior: echo the request back
	return &domain.Document{ID: documentID, Fields: fields}, nil
}

// Update applies a partial update to one document
func (m *MockDocumentStore) Update(ctx context.Context, collectionID, documentID string, fields map[string]any) (*domain.Document, error) {
	m.record(&m.UpdateCalls)
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, collectionID, documentID, fields)
	}
	// Default behavior: echo the request back
	return &domain.Document{ID: documentID, Fields: fields}, nil
}

// Delete removes one document by ID
func (m *MockDocumentStore) Delete(ctx context.Context, collectionID, documentID string) error {
	m.record(&m.DeleteCalls)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, collectionID, documentID)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.DocumentStore = (*MockDocumentStore)(nil)
