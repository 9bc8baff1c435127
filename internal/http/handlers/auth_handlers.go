package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Tarun1516/yaakai/domain"
)

// AuthHandlers handles authentication HTTP requests against the
// session store.
type AuthHandlers struct {
	sessions domain.SessionStore
}

// NewAuthHandlers creates new auth handlers
func NewAuthHandlers(sessions domain.SessionStore) *AuthHandlers {
	return &AuthHandlers{sessions: sessions}
}

// SignUpRequest represents a sign-up request
type SignUpRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Name            string `json:"name" binding:"required"`
	Phone           string `json:"phone,omitempty"`
}

// SignInRequest represents a sign-in request
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// statusFor maps a store failure onto an HTTP status.
func statusFor(err error) int {
	if domain.IsNetworkError(err) {
		return http.StatusServiceUnavailable
	}
	if code := domain.RemoteStatus(err); code >= 400 && code < 600 {
		return code
	}
	return http.StatusBadGateway
}

func identityBody(id *domain.Identity) gin.H {
	if id == nil {
		return nil
	}
	return gin.H{
		"id":    id.ID,
		"email": id.Email,
		"name":  id.Name,
		"phone": id.Phone,
	}
}

// SignUp handles account creation. The password confirmation is checked
// here; a mismatch never reaches the remote account service.
func (h *AuthHandlers) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Password != req.ConfirmPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	if err := h.sessions.SignUp(c.Request.Context(), req.Email, req.Password, req.Name, req.Phone); err != nil {
		c.JSON(statusFor(err), gin.H{"error": h.sessions.UserError()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": gin.H{"user": identityBody(h.sessions.Current())}})
}

// SignIn handles user sign-in
func (h *AuthHandlers) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessions.SignIn(c.Request.Context(), req.Email, req.Password); err != nil {
		c.JSON(statusFor(err), gin.H{"error": h.sessions.UserError()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"user": identityBody(h.sessions.Current())}})
}

// Logout handles sign-out. Connectivity failures are absorbed by the
// store (identity is cleared optimistically), so an error here is a
// real remote refusal.
func (h *AuthHandlers) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		c.JSON(statusFor(err), gin.H{"error": h.sessions.UserError()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"message": "Logged out"}})
}

// Me returns the current identity, the initialization flag, and any
// recorded user-facing error.
func (h *AuthHandlers) Me(c *gin.Context) {
	body := gin.H{
		"initialized": h.sessions.Initialized(),
		"user":        identityBody(h.sessions.Current()),
	}
	if msg := h.sessions.UserError(); msg != "" {
		body["error"] = msg
	}
	c.JSON(http.StatusOK, gin.H{"data": body})
}

// ClearError resets the recorded user-facing error.
func (h *AuthHandlers) ClearError(c *gin.Context) {
	h.sessions.ClearError()
	c.Status(http.StatusNoContent)
}
