package mocks

import (
	"context"
	"sync"

	"github.com/Tarun1516/yaakai/domain"
)

// MockCartStore implements domain.CartStore for testing. Call counters
// are guarded by a mutex so callers may invoke the store from
// concurrent goroutines.
type MockCartStore struct {
	RefreshFunc        func(ctx context.Context)
	AddFunc            func(ctx context.Context, productID, name string, price int64, quantity int)
	RemoveFunc         func(ctx context.Context, lineID string)
	UpdateQuantityFunc func(ctx context.Context, lineID string, quantity int) error
	ClearFunc          func(ctx context.Context)
	ItemsFunc          func() []domain.CartItem

	mu           sync.Mutex
	RefreshCalls int
	AddCalls     int
	RemoveCalls  int
	UpdateCalls  int
	ClearCalls   int
}

func (m *MockCartStore) record(counter *int) {
	m.mu.Lock()
	*counter++
	m.mu.Unlock()
}

// NewMockCartStore creates a new MockCartStore with default behaviors
func NewMockCartStore() *MockCartStore {
	return &MockCartStore{}
}

func (m *MockCartStore) Refresh(ctx context.Context) {
	m.record(&m.RefreshCalls)
	if m.RefreshFunc != nil {
		m.RefreshFunc(ctx)
	}
}

func (m *MockCartStore) Add(ctx context.Context, productID, name string, price int64, quantity int) {
	m.record(&m.AddCalls)
	if m.AddFunc != nil {
		m.AddFunc(ctx, productID, name, price, quantity)
	}
}

func (m *MockCartStore) Remove(ctx context.Context, lineID string) {
	m.record(&m.RemoveCalls)
	if m.RemoveFunc != nil {
		m.RemoveFunc(ctx, lineID)
	}
}

func (m *MockCartStore) UpdateQuantity(ctx context.Context, lineID string, quantity int) error {
	m.record(&m.UpdateCalls)
	if m.UpdateQuantityFunc != nil {
		return m.UpdateQuantityFunc(ctx, lineID, quantity)
	}
	return nil
}

func (m *MockCartStore) Clear(ctx context.Context) {
	m.record(&m.ClearCalls)
	if m.ClearFunc != nil {
		m.ClearFunc(ctx)
	}
}

func (m *MockCartStore) Items() []domain.CartItem {
	if m.ItemsFunc != nil {
		return m.ItemsFunc()
	}
	// Default behavior: empty cart
	return nil
}

// Compile-time interface compliance verification
var _ domain.CartStore = (*MockCartStore)(nil)
