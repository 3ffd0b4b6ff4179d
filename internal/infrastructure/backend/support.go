// internal/infrastructure/backend/support.go
package backend

import (
	"context"
	"net/url"
)

// SupportMessages fetches the caller's support conversation
func (c *Client) SupportMessages(ctx context.Context) ([]SupportMessage, error) {
	var messages []SupportMessage
	if err := c.get(ctx, "/support/messages", &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// SendSupportMessage appends a message to the caller's support conversation
func (c *Client) SendSupportMessage(ctx context.Context, text string) (*SupportMessage, error) {
	var msg SupportMessage
	body := map[string]string{"message": text}
	if err := c.post(ctx, "/support/send", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// AdminConversations lists all customer support threads (admin only)
func (c *Client) AdminConversations(ctx context.Context) ([]Conversation, error) {
	var conversations []Conversation
	if err := c.get(ctx, "/support/admin/conversations", &conversations); err != nil {
		return nil, err
	}
	return conversations, nil
}

// AdminThread fetches one customer's support thread (admin only)
func (c *Client) AdminThread(ctx context.Context, userID string) ([]SupportMessage, error) {
	var messages []SupportMessage
	if err := c.get(ctx, "/support/admin/messages/"+url.PathEscape(userID), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// AdminReply answers a customer's support thread (admin only)
func (c *Client) AdminReply(ctx context.Context, userID, text string) (*SupportMessage, error) {
	var msg SupportMessage
	body := map[string]string{"userId": userID, "message": text}
	if err := c.post(ctx, "/support/admin/reply", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
