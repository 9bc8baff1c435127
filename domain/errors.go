package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Local validation errors
var (
	ErrQuantityNotPositive = errors.New("quantity must be a positive integer")
	ErrProductNotFound     = errors.New("product not found")
)

// ErrNetwork marks total unreachability of the remote service. Wrapped
// by transport-level failures; check with IsNetworkError.
var ErrNetwork = errors.New("remote service unreachable")

// RemoteError is a failure reported by the hosted backend: an HTTP-style
// code plus the service's human-readable message.
type RemoteError struct {
	Code    int
	Message string
}

func (e *RemoteError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("remote service error (code %d)", e.Code)
}

// IsNetworkError reports whether err represents a connectivity failure.
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsUnauthorized reports whether err is the remote service's "no valid
// session" condition. This is the normal signed-out state, not a fault.
func IsUnauthorized(err error) bool {
	var re *RemoteError
	return errors.As(err, &re) && re.Code == http.StatusUnauthorized
}

// RemoteStatus returns the remote error's code when err carries one,
// or 0 otherwise.
func RemoteStatus(err error) int {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Code
	}
	return 0
}

// RemoteMessage returns the remote service's message verbatim when err
// carries one, stripped of any wrapping context; otherwise err.Error().
func RemoteMessage(err error) string {
	var re *RemoteError
	if errors.As(err, &re) {
		return re.Error()
	}
	return err.Error()
}
