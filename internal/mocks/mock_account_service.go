package mocks

import (
	"context"
	"net/http"
	"sync"

	"github.com/Tarun1516/yaakai/domain"
)

// MockAccountService implements domain.AccountService for testing. Call
// counters are guarded by a mutex so callers may invoke the service
// from concurrent goroutines.
type MockAccountService struct {
	CurrentSessionFunc func(ctx context.Context) (*domain.Session, error)
	CreateSessionFunc  func(ctx context.Context, email, password string) error
	CreateAccountFunc  func(ctx context.Context, id, email, password, name string) (*domain.Account, error)
	DeleteSessionFunc  func(ctx context.Context) error

	mu                  sync.Mutex
	CurrentSessionCalls int
	CreateSessionCalls  int
	CreateAccountCalls  int
	DeleteSessionCalls  int
}

func (m *MockAccountService) record(counter *int) {
	m.mu.Lock()
	*counter++
	m.mu.Unlock()
}

// NewMockAccountService creates a new MockAccountService with default behaviors
func NewMockAccountService() *MockAccountService {
	return &MockAccountService{}
}

// CurrentSession returns the session for the current credentials
func (m *MockAccountService) CurrentSession(ctx context.Context) (*domain.Session, error) {
	m.record(&m.CurrentSessionCalls)
	if m.CurrentSessionFunc != nil {
		return m.CurrentSessionFunc(ctx)
	}
	// Default behavior: no session
	return nil, &domain.RemoteError{Code: http.StatusUnauthorized, Message: "missing scope (account)"}
}

// CreateSession signs in with email/password
func (m *MockAccountService) CreateSession(ctx context.Context, email, password string) error {
	m.record(&m.CreateSessionCalls)
	if m.CreateSessionFunc != nil {
		return m.CreateSessionFunc(ctx, email, password)
	}
	// Default behavior: success
	return nil
}

// CreateAccount registers a new account
func (m *MockAccountService) CreateAccount(ctx context.Context, id, email, password, name string) (*domain.Account, error) {
	m.record(&m.CreateAccountCalls)
	if m.CreateAccountFunc != nil {
		return m.CreateAccountFunc(ctx, id, email, password, name)
	}
	// Default behavior: echo the request back
	return &domain.Account{ID: id, Email: email, Name: name}, nil
}

// DeleteSession signs out the current session
func (m *MockAccountService) DeleteSession(ctx context.Context) error {
	m.record(&m.DeleteSessionCalls)
	if m.DeleteSessionFunc != nil {
		return m.DeleteSessionFunc(ctx)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.AccountService = (*MockAccountService)(nil)
