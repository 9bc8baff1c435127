package domain

import "context"

// AccountService defines the remote account/session API consumed by the
// session store. Implementations either return a success payload or an
// error classified by errors.go (network, unauthorized, remote message).
type AccountService interface {
	// CurrentSession returns the session for the caller's current
	// credentials, or an unauthorized error when none exists.
	CurrentSession(ctx context.Context) (*Session, error)
	// CreateSession signs in with email/password and retains the
	// resulting session credentials for subsequent calls.
	CreateSession(ctx context.Context, email, password string) error
	// CreateAccount registers a new account under a caller-assigned ID.
	CreateAccount(ctx context.Context, id, email, password, name string) (*Account, error)
	// DeleteSession signs out the current session.
	DeleteSession(ctx context.Context) error
}

// DocumentStore defines the remote document database operations consumed
// by both stores. Collections and documents are addressed by opaque IDs;
// List filters by equality on a single owner field.
type DocumentStore interface {
	List(ctx context.Context, collectionID, field, value string) ([]Document, error)
	Get(ctx context.Context, collectionID, documentID string) (*Document, error)
	Create(ctx context.Context, collectionID, documentID string, fields map[string]any) (*Document, error)
	Update(ctx context.Context, collectionID, documentID string, fields map[string]any) (*Document, error)
	Delete(ctx context.Context, collectionID, documentID string) error
}

// SessionStore owns the authentication lifecycle and the resulting
// identity state, and broadcasts identity changes to subscribers.
type SessionStore interface {
	// Initialize resolves any pre-existing remote session. It never
	// surfaces an error; all failure modes degrade to a signed-out
	// state so rendering is not blocked.
	Initialize(ctx context.Context)
	// SignIn creates a remote session and repopulates identity. On
	// failure the user-facing error is recorded and the failure is
	// re-raised so the caller can keep its dialog open.
	SignIn(ctx context.Context, email, password string) error
	// SignUp creates an account, its profile document, then signs in.
	// Any step's failure aborts the rest under the SignIn contract.
	SignUp(ctx context.Context, email, password, name, phone string) error
	// Logout deletes the remote session. Connectivity failures are
	// indistinguishable from "already logged out", so identity is
	// cleared optimistically in that case as well.
	Logout(ctx context.Context) error
	// ClearError resets the user-facing error; nothing else.
	ClearError()

	// Current returns the identity, or nil when signed out.
	Current() *Identity
	// UserError returns the recorded user-facing error, or "".
	UserError() string
	// Initialized reports whether Initialize has completed; consumers
	// must not render protected state before then.
	Initialized() bool
	// Subscribe registers fn for identity change events and returns
	// an unsubscribe func.
	Subscribe(fn func(IdentityEvent)) func()
}

// CartStore owns the current identity's cart contents. Every operation
// is a no-op without an identity, and remote failures are never
// re-raised to the caller (fire-and-forget, visible via logs only).
type CartStore interface {
	// Refresh replaces local state from the remote store, or empties
	// it when no identity exists.
	Refresh(ctx context.Context)
	// Add creates a line item, or folds the quantity into an existing
	// line for the same product.
	Add(ctx context.Context, productID, name string, price int64, quantity int)
	// Remove deletes one line item.
	Remove(ctx context.Context, lineID string)
	// UpdateQuantity sets a line item's quantity. The only returned
	// error is ErrQuantityNotPositive; remote failures are swallowed.
	UpdateQuantity(ctx context.Context, lineID string, quantity int) error
	// Clear deletes every line item, emptying local state only once
	// the whole batch succeeded.
	Clear(ctx context.Context)

	// Items returns a copy of the current line items, in order.
	Items() []CartItem
}

// AlertFunc is invoked synchronously to interrupt the user with a
// blocking message. Only the add-to-cart connectivity failure uses it.
type AlertFunc func(message string)
