// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/notification"
	"github.com/your-org/storefront-gateway/internal/domain/session"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
)

// AuthHandler handles login, logout and registration
type AuthHandler struct {
	backend       *backend.Client
	sessions      *session.Store
	cart          *cart.Manager
	notifications *notification.Service
	log           *logrus.Entry
}

// NewAuthHandler creates an auth handler
func NewAuthHandler(api *backend.Client, sessions *session.Store, cartManager *cart.Manager, notifications *notification.Service, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		backend:       api,
		sessions:      sessions,
		cart:          cartManager,
		notifications: notifications,
		log:           log.WithField("component", "auth_handler"),
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// Login handles POST /auth/login. On success the session becomes active, the
// cart is fetched and the notification feed starts polling.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "email and password are required",
		})
		return
	}

	resp, err := h.backend.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.sessions.Login(c.Request.Context(), resp.Token, resp.Role, resp.User.ID, resp.User.Email); err != nil {
		respondError(c, err)
		return
	}

	// Warm the cart; a failure here is not a failed login
	if err := h.cart.Refresh(c.Request.Context()); err != nil {
		h.log.WithError(err).Warn("Cart refresh after login failed")
	}

	// The poller outlives the request
	h.notifications.Start(context.Background())

	respondData(c, "logged in", gin.H{
		"userId": resp.User.ID,
		"email":  resp.User.Email,
		"role":   resp.Role,
	})
}

// Register handles POST /auth/register. The backend does not log the new
// account in; the client follows up with a login.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "name, email and a password of at least 6 characters are required",
		})
		return
	}

	if err := h.backend.Register(c.Request.Context(), req.Name, req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, "account created, please log in", nil)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Logout(c.Request.Context())
	respondData(c, "logged out", nil)
}

// Session handles GET /auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	sess, ok := h.sessions.Current()
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"data": gin.H{"authenticated": false},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{
			"authenticated": true,
			"userId":        sess.UserID,
			"email":         sess.Email,
			"role":          string(sess.Role),
		},
	})
}
