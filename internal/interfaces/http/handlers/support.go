// internal/interfaces/http/handlers/support.go
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-gateway/internal/domain/support"
)

// SupportHandler handles the support chat endpoints
type SupportHandler struct {
	support *support.Service
	log     *logrus.Entry
}

// NewSupportHandler creates a support handler
func NewSupportHandler(supportService *support.Service, log *logrus.Logger) *SupportHandler {
	return &SupportHandler{
		support: supportService,
		log:     log.WithField("component", "support_handler"),
	}
}

// Open handles POST /support/open, starting the conversation poller
func (h *SupportHandler) Open(c *gin.Context) {
	// The poller outlives the request
	h.support.Open(context.Background())
	respondData(c, "support chat opened", gin.H{"open": h.support.IsOpen()})
}

// Close handles POST /support/close, stopping the conversation poller
func (h *SupportHandler) Close(c *gin.Context) {
	h.support.Close()
	respondData(c, "support chat closed", nil)
}

// Messages handles GET /support/messages
func (h *SupportHandler) Messages(c *gin.Context) {
	respondData(c, "messages retrieved", gin.H{
		"open":     h.support.IsOpen(),
		"messages": h.support.Messages(),
	})
}

type supportMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

// Send handles POST /support/send
func (h *SupportHandler) Send(c *gin.Context) {
	var req supportMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "message is required",
		})
		return
	}

	msg, err := h.support.Send(c.Request.Context(), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "message sent", msg)
}

// AdminConversations handles GET /admin/support/conversations
func (h *SupportHandler) AdminConversations(c *gin.Context) {
	conversations, err := h.support.Conversations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "conversations retrieved", conversations)
}

// AdminThread handles GET /admin/support/messages/:userId
func (h *SupportHandler) AdminThread(c *gin.Context) {
	messages, err := h.support.Thread(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "messages retrieved", messages)
}

type adminReplyRequest struct {
	Message string `json:"message" binding:"required"`
}

// AdminReply handles POST /admin/support/messages/:userId
func (h *SupportHandler) AdminReply(c *gin.Context) {
	var req adminReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "message is required",
		})
		return
	}

	msg, err := h.support.Reply(c.Request.Context(), c.Param("userId"), req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, "reply sent", msg)
}
