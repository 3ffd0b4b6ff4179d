// internal/interfaces/http/handlers/orders.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/domain/order"
)

// OrderHandler handles order history endpoints
type OrderHandler struct {
	orders *order.Service
	log    *logrus.Entry
}

// NewOrderHandler creates an order handler
func NewOrderHandler(orders *order.Service, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		log:    log.WithField("component", "order_handler"),
	}
}

// List handles GET /orders?search=
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "orders retrieved", orders)
}

// Get handles GET /orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	ord, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "order retrieved", ord)
}

// Delete handles DELETE /orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "order deleted", nil)
}

// AdminList handles GET /admin/orders?search=
func (h *OrderHandler) AdminList(c *gin.Context) {
	orders, err := h.orders.AdminAll(c.Request.Context(), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "orders retrieved", orders)
}

type deliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SetDeliveryStatus handles PATCH /admin/orders/:id/delivery
func (h *OrderHandler) SetDeliveryStatus(c *gin.Context) {
	var req deliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "status is required",
		})
		return
	}

	if err := h.orders.SetDeliveryStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "delivery status updated", nil)
}

// MarketShare handles GET /admin/orders/market-share
func (h *OrderHandler) MarketShare(c *gin.Context) {
	entries, err := h.orders.MarketShare(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "market share retrieved", entries)
}
