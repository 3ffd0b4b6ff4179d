// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/config"
	"github.com/your-org/storefront-gateway/internal/domain/checkout"
	"github.com/your-org/storefront-gateway/internal/domain/order"
)

// CheckoutHandler handles checkout, payment retry and the provider's return
// redirect
type CheckoutHandler struct {
	orchestrator *checkout.Orchestrator
	orders       *order.Service
	config       *config.Config
	log          *logrus.Entry
}

// NewCheckoutHandler creates a checkout handler
func NewCheckoutHandler(orchestrator *checkout.Orchestrator, orders *order.Service, cfg *config.Config, log *logrus.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		orchestrator: orchestrator,
		orders:       orders,
		config:       cfg,
		log:          log.WithField("component", "checkout_handler"),
	}
}

type checkoutRequest struct {
	ShippingAddress  string `json:"shippingAddress" binding:"required"`
	UseLoyaltyPoints bool   `json:"useLoyaltyPoints"`
}

// Checkout handles POST /checkout. A partial failure, meaning the order
// exists but payment could not start, is reported distinctly so the client
// can point at order history instead of suggesting a plain retry.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "shipping address is required",
		})
		return
	}

	result, err := h.orchestrator.Checkout(c.Request.Context(), req.ShippingAddress, req.UseLoyaltyPoints)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	respondData(c, "redirect to the payment page", result)
}

// PayNow handles POST /orders/:id/pay, retrying payment for a pending order
func (h *CheckoutHandler) PayNow(c *gin.Context) {
	ord, err := h.orders.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.orchestrator.PayNow(c.Request.Context(), ord)
	if err != nil {
		h.respondCheckoutError(c, err)
		return
	}

	respondData(c, "redirect to the payment page", result)
}

func (h *CheckoutHandler) respondCheckoutError(c *gin.Context, err error) {
	var partial *checkout.PartialFailureError
	if errors.As(err, &partial) {
		c.JSON(http.StatusBadGateway, gin.H{
			"error": partial.Error(),
			"data": gin.H{
				"order": partial.Order,
			},
		})
		return
	}
	respondError(c, err)
}

// PaymentReturn handles the provider's redirect back to the gateway. The
// verification markers live only on this route: the browser is sent on to
// the landing path without them, so a reload there cannot re-trigger
// verification.
func (h *CheckoutHandler) PaymentReturn(c *gin.Context) {
	verifyID := c.Query("verify")
	txRef := c.Query("tx_ref")
	if verifyID == "" {
		c.Redirect(http.StatusFound, h.config.Payment.LandingPath)
		return
	}

	outcome, err := h.orchestrator.VerifyReturn(c.Request.Context(), verifyID, txRef)
	if err != nil {
		h.log.WithError(err).WithField("verify_id", verifyID).Warn("Payment verification failed")
	}

	c.Redirect(http.StatusFound, h.config.Payment.LandingPath+"?payment="+outcome.String())
}
