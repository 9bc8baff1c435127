package remote

import (
	"context"
	"net/http"

	"github.com/Tarun1516/yaakai/domain"
)

// AccountAPI implements domain.AccountService over Client.
type AccountAPI struct {
	c *Client
}

// NewAccountAPI creates the account/session adapter.
func NewAccountAPI(c *Client) domain.AccountService {
	return &AccountAPI{c: c}
}

type accountPayload struct {
	ID    string `json:"$id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sessionPayload struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Secret string `json:"secret"`
}

// CurrentSession implements domain.AccountService.
func (a *AccountAPI) CurrentSession(ctx context.Context) (*domain.Session, error) {
	var payload accountPayload
	if err := a.c.do(ctx, "account.get", http.MethodGet, "/account", nil, &payload); err != nil {
		return nil, err
	}

	return &domain.Session{
		UserID: payload.ID,
		Email:  payload.Email,
		Name:   payload.Name,
	}, nil
}

// CreateSession implements domain.AccountService. The returned secret
// is retained by the client for subsequent requests.
func (a *AccountAPI) CreateSession(ctx context.Context, email, password string) error {
	body := map[string]string{"email": email, "password": password}

	var payload sessionPayload
	if err := a.c.do(ctx, "account.createSession", http.MethodPost, "/account/sessions/email", body, &payload); err != nil {
		return err
	}

	a.c.setSession(payload.Secret)
	return nil
}

// CreateAccount implements domain.AccountService.
func (a *AccountAPI) CreateAccount(ctx context.Context, id, email, password, name string) (*domain.Account, error) {
	body := map[string]string{
		"userId":   id,
		"email":    email,
		"password": password,
		"name":     name,
	}

	var payload accountPayload
	if err := a.c.do(ctx, "account.create", http.MethodPost, "/account", body, &payload); err != nil {
		return nil, err
	}

	return &domain.Account{
		ID:    payload.ID,
		Email: payload.Email,
		Name:  payload.Name,
	}, nil
}

// DeleteSession implements domain.AccountService. The stored secret is
// dropped on success and on connectivity failure alike: when the
// service is unreachable the session is gone from this client's point
// of view either way.
func (a *AccountAPI) DeleteSession(ctx context.Context) error {
	err := a.c.do(ctx, "account.deleteSession", http.MethodDelete, "/account/sessions/current", nil, nil)
	if err == nil || domain.IsNetworkError(err) {
		a.c.clearSession()
	}
	return err
}
