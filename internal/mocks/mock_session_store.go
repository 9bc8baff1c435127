package mocks

import (
	"context"
	"sync"

	"github.com/Tarun1516/yaakai/domain"
)

// MockSessionStore implements domain.SessionStore for testing. Call
// counters are guarded by a mutex so callers may invoke the store from
// concurrent goroutines.
type MockSessionStore struct {
	InitializeFunc  func(ctx context.Context)
	SignInFunc      func(ctx context.Context, email, password string) error
	SignUpFunc      func(ctx context.Context, email, password, name, phone string) error
	LogoutFunc      func(ctx context.Context) error
	ClearErrorFunc  func()
	CurrentFunc     func() *domain.Identity
	UserErrorFunc   func() string
	InitializedFunc func() bool
	SubscribeFunc   func(fn func(domain.IdentityEvent)) func()

	mu          sync.Mutex
	SignInCalls int
	SignUpCalls int
	LogoutCalls int
}

func (m *MockSessionStore) record(counter *int) {
	m.mu.Lock()
	*counter++
	m.mu.Unlock()
}

// NewMockSessionStore creates a new MockSessionStore with default behaviors
func NewMockSessionStore() *MockSessionStore {
	return &MockSessionStore{}
}

func (m *MockSessionStore) Initialize(ctx context.Context) {
	if m.InitializeFunc != nil {
		m.InitializeFunc(ctx)
	}
}

func (m *MockSessionStore) SignIn(ctx context.Context, email, password string) error {
	m.record(&m.SignInCalls)
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	return nil
}

func (m *MockSessionStore) SignUp(ctx context.Context, email, password, name, phone string) error {
	m.record(&m.SignUpCalls)
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, email, password, name, phone)
	}
	return nil
}

func (m *MockSessionStore) Logout(ctx context.Context) error {
	m.record(&m.LogoutCalls)
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *MockSessionStore) ClearError() {
	if m.ClearErrorFunc != nil {
		m.ClearErrorFunc()
	}
}

func (m *MockSessionStore) Current() *domain.Identity {
	if m.CurrentFunc != nil {
		return m.CurrentFunc()
	}
	// Default behavior: signed out
	return nil
}

func (m *MockSessionStore) UserError() string {
	if m.UserErrorFunc != nil {
		return m.UserErrorFunc()
	}
	return ""
}

func (m *MockSessionStore) Initialized() bool {
	if m.InitializedFunc != nil {
		return m.InitializedFunc()
	}
	// Default behavior: startup check already ran
	return true
}

func (m *MockSessionStore) Subscribe(fn func(domain.IdentityEvent)) func() {
	if m.SubscribeFunc != nil {
		return m.SubscribeFunc(fn)
	}
	return func() {}
}

// Compile-time interface compliance verification
var _ domain.SessionStore = (*MockSessionStore)(nil)
