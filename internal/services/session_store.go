package services

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/Tarun1516/yaakai/domain"
)

// User-facing message for connectivity failures during deliberate
// actions (sign in, sign up).
const networkErrMessage = "Network error. Please check your internet connection and try again."

// SessionStoreImpl implements domain.SessionStore. It owns the
// authentication lifecycle against the remote account service, mirrors
// the profile document from the remote document store, and broadcasts
// identity changes to subscribers.
type SessionStoreImpl struct {
	accounts        domain.AccountService
	docs            domain.DocumentStore
	usersCollection string
	logger          *slog.Logger

	mu          sync.RWMutex
	identity    *domain.Identity
	userErr     string
	initialized bool
	// gen invalidates in-flight session fetches that complete after a
	// later state change (e.g. a logout racing a slow sign-in).
	gen     uint64
	subs    map[int]func(domain.IdentityEvent)
	nextSub int
}

// NewSessionStore creates the session store. It performs no remote
// calls until Initialize.
func NewSessionStore(accounts domain.AccountService, docs domain.DocumentStore, usersCollection string, logger *slog.Logger) *SessionStoreImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStoreImpl{
		accounts:        accounts,
		docs:            docs,
		usersCollection: usersCollection,
		logger:          logger,
		subs:            make(map[int]func(domain.IdentityEvent)),
	}
}

// Initialize implements domain.SessionStore. It resolves any existing
// remote session, never surfaces an error, and always flips the
// initialized flag so consumers are not blocked from rendering.
func (s *SessionStoreImpl) Initialize(ctx context.Context) {
	s.checkUser(ctx, domain.IdentityRestored)

	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()
}

// checkUser fetches the current session and, best-effort, the profile
// document, then installs the merged identity. All failure modes
// degrade to a signed-out state.
func (s *SessionStoreImpl) checkUser(ctx context.Context, event domain.IdentityEventType) {
	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	sess, err := s.accounts.CurrentSession(ctx)
	if err != nil {
		switch {
		case domain.IsUnauthorized(err):
			// Normal signed-out condition; nothing to report.
		case domain.IsNetworkError(err):
			s.logger.Warn("session check unreachable, continuing as guest", slog.String("error", err.Error()))
		default:
			s.logger.Error("session check failed", slog.String("error", err.Error()))
		}
		s.setIdentity(gen, nil, domain.IdentitySignedOut)
		return
	}

	identity := &domain.Identity{
		ID:    sess.UserID,
		Email: sess.Email,
		Name:  sess.Name,
	}

	doc, derr := s.docs.Get(ctx, s.usersCollection, sess.UserID)
	if derr != nil {
		// Profile enrichment is best-effort; the session fields alone
		// still constitute a signed-in identity.
		s.logger.Error("profile fetch failed, using session fields only",
			slog.String("user_id", sess.UserID),
			slog.String("error", derr.Error()))
	} else {
		if name := doc.StringField("name"); identity.Name == "" && name != "" {
			identity.Name = name
		}
		identity.Phone = doc.StringField("phoneNumber")
	}

	s.setIdentity(gen, identity, event)
}

// setIdentity installs the identity if gen is still current, then
// notifies subscribers outside the lock.
func (s *SessionStoreImpl) setIdentity(gen uint64, identity *domain.Identity, event domain.IdentityEventType) {
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return
	}
	s.identity = identity
	fns := make([]func(domain.IdentityEvent), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	ev := domain.NewIdentityEvent(event, identity)
	for _, fn := range fns {
		fn(ev)
	}
}

// recordErr stores the user-facing error for err: a connectivity
// message for network failures, otherwise the remote message verbatim.
func (s *SessionStoreImpl) recordErr(err error) {
	msg := domain.RemoteMessage(err)
	if domain.IsNetworkError(err) {
		msg = networkErrMessage
	}

	s.mu.Lock()
	s.userErr = msg
	s.mu.Unlock()
}

// SignIn implements domain.SessionStore.
func (s *SessionStoreImpl) SignIn(ctx context.Context, email, password string) error {
	s.ClearError()

	if err := s.accounts.CreateSession(ctx, email, password); err != nil {
		s.recordErr(err)
		return err
	}

	s.checkUser(ctx, domain.IdentitySignedIn)
	return nil
}

// SignUp implements domain.SessionStore: account, then profile
// document keyed by the account ID, then sign-in. Any failure aborts
// the remaining steps.
func (s *SessionStoreImpl) SignUp(ctx context.Context, email, password, name, phone string) error {
	s.ClearError()

	accountID := uuid.NewString()
	account, err := s.accounts.CreateAccount(ctx, accountID, email, password, name)
	if err != nil {
		s.recordErr(err)
		return err
	}

	fields := map[string]any{
		"name":        name,
		"email":       email,
		"phoneNumber": phone,
	}
	if _, err := s.docs.Create(ctx, s.usersCollection, account.ID, fields); err != nil {
		s.recordErr(err)
		return err
	}

	return s.SignIn(ctx, email, password)
}

// Logout implements domain.SessionStore. A connectivity failure cannot
// be told apart from "already logged out", so identity is cleared
// optimistically in that case and no error is raised.
func (s *SessionStoreImpl) Logout(ctx context.Context) error {
	s.ClearError()

	err := s.accounts.DeleteSession(ctx)
	if err == nil || domain.IsNetworkError(err) {
		if err != nil {
			s.logger.Warn("logout unreachable, clearing identity locally", slog.String("error", err.Error()))
		}
		s.mu.Lock()
		s.gen++
		gen := s.gen
		s.mu.Unlock()
		s.setIdentity(gen, nil, domain.IdentitySignedOut)
		return nil
	}

	s.recordErr(err)
	return err
}

// ClearError implements domain.SessionStore.
func (s *SessionStoreImpl) ClearError() {
	s.mu.Lock()
	s.userErr = ""
	s.mu.Unlock()
}

// Current implements domain.SessionStore. The returned identity is a
// copy; nil means signed out.
func (s *SessionStoreImpl) Current() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil {
		return nil
	}
	id := *s.identity
	return &id
}

// UserError implements domain.SessionStore.
func (s *SessionStoreImpl) UserError() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userErr
}

// Initialized implements domain.SessionStore.
func (s *SessionStoreImpl) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.initialized
}

// Subscribe implements domain.SessionStore.
func (s *SessionStoreImpl) Subscribe(fn func(domain.IdentityEvent)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

var _ domain.SessionStore = (*SessionStoreImpl)(nil)
