// internal/interfaces/http/handlers/profile.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/domain/profile"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
)

// ProfileHandler handles account profile endpoints
type ProfileHandler struct {
	profiles *profile.Service
	log      *logrus.Entry
}

// NewProfileHandler creates a profile handler
func NewProfileHandler(profiles *profile.Service, log *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		log:      log.WithField("component", "profile_handler"),
	}
}

// Get handles GET /profile
func (h *ProfileHandler) Get(c *gin.Context) {
	p, err := h.profiles.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "profile retrieved", p)
}

type profileUpdateRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// Update handles PUT /profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "name and email are required",
		})
		return
	}

	p, err := h.profiles.Update(c.Request.Context(), backend.ProfileUpdate{Name: req.Name, Email: req.Email})
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "profile updated", p)
}

// Delete handles DELETE /profile. The session ends with the account.
func (h *ProfileHandler) Delete(c *gin.Context) {
	if err := h.profiles.Delete(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "account deleted", nil)
}

// Stats handles GET /profile/stats
func (h *ProfileHandler) Stats(c *gin.Context) {
	stats, err := h.profiles.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "stats retrieved", stats)
}

// AdminCustomers handles GET /admin/customers?search=
func (h *ProfileHandler) AdminCustomers(c *gin.Context) {
	customers, err := h.profiles.Customers(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "customers retrieved", customers)
}
