package domain

import "time"

// IdentityEventType defines the kind of identity change being broadcast.
type IdentityEventType string

const (
	// IdentityRestored fires when the startup check finds a valid
	// remote session.
	IdentityRestored IdentityEventType = "IDENTITY_RESTORED"
	// IdentitySignedIn fires after a successful sign-in or sign-up.
	IdentitySignedIn IdentityEventType = "IDENTITY_SIGNED_IN"
	// IdentitySignedOut fires when identity is cleared, whether by
	// logout or because the startup check found no session.
	IdentitySignedOut IdentityEventType = "IDENTITY_SIGNED_OUT"
)

// IdentityEvent is delivered to session store subscribers whenever the
// identity changes. Identity is nil for IdentitySignedOut.
type IdentityEvent struct {
	Type      IdentityEventType
	Identity  *Identity
	Timestamp time.Time
}

// NewIdentityEvent creates an event stamped with the current time.
func NewIdentityEvent(t IdentityEventType, id *Identity) IdentityEvent {
	return IdentityEvent{
		Type:      t,
		Identity:  id,
		Timestamp: time.Now().UTC(),
	}
}
