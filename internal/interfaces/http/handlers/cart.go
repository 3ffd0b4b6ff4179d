// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/domain/cart"
	"github.com/your-org/storefront-gateway/internal/domain/profile"
	"github.com/your-org/storefront-gateway/internal/infrastructure/backend"
)

// CartHandler handles cart endpoints
type CartHandler struct {
	manager  *cart.Manager
	profiles *profile.Service
	log      *logrus.Entry
}

// NewCartHandler creates a cart handler
func NewCartHandler(manager *cart.Manager, profiles *profile.Service, log *logrus.Logger) *CartHandler {
	return &CartHandler{
		manager:  manager,
		profiles: profiles,
		log:      log.WithField("component", "cart_handler"),
	}
}

type cartItemRequest struct {
	MaterialID      string `json:"materialId" binding:"required"`
	SelectedSize    string `json:"selectedSize"`
	SelectedColor   string `json:"selectedColor"`
	SelectedStorage string `json:"selectedStorage"`
}

func (r cartItemRequest) selection() backend.VariantSelection {
	return backend.VariantSelection{
		SelectedSize:    r.SelectedSize,
		SelectedColor:   r.SelectedColor,
		SelectedStorage: r.SelectedStorage,
	}
}

// GetCart handles GET /cart. The cart is refetched so the response is the
// backend's truth, not a possibly stale local view.
func (h *CartHandler) GetCart(c *gin.Context) {
	if err := h.manager.Refresh(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, "cart retrieved", gin.H{
		"items": h.manager.Items(),
		"state": h.manager.State().String(),
	})
}

// Summary handles GET /cart/summary?useLoyalty=true. The loyalty balance
// comes from the profile; the arithmetic is local and pure.
func (h *CartHandler) Summary(c *gin.Context) {
	useLoyalty, _ := strconv.ParseBool(c.Query("useLoyalty"))

	var points int64
	if useLoyalty {
		var err error
		points, err = h.profiles.LoyaltyPoints(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
	}

	respondData(c, "summary computed", h.manager.Summary(points, useLoyalty))
}

// AddItem handles POST /cart/add
func (h *CartHandler) AddItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "materialId is required",
		})
		return
	}

	if err := h.manager.AddItem(c.Request.Context(), req.MaterialID, req.selection()); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, "item added to cart", gin.H{"items": h.manager.Items()})
}

// RemoveOneUnit handles POST /cart/remove
func (h *CartHandler) RemoveOneUnit(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "materialId is required",
		})
		return
	}

	if err := h.manager.RemoveOneUnit(c.Request.Context(), req.MaterialID, req.selection()); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, "item updated", gin.H{"items": h.manager.Items()})
}

// DeleteItem handles POST /cart/delete
func (h *CartHandler) DeleteItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "materialId is required",
		})
		return
	}

	if err := h.manager.DeleteItem(c.Request.Context(), req.MaterialID, req.selection()); err != nil {
		respondError(c, err)
		return
	}

	respondData(c, "item removed from cart", gin.H{"items": h.manager.Items()})
}
