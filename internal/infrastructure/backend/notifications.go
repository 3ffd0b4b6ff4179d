// internal/infrastructure/backend/notifications.go
package backend

import (
	"context"
	"net/url"
)

// Notifications fetches the caller's notification feed
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var notifications []Notification
	if err := c.get(ctx, "/notification", &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// MarkNotificationRead marks one notification as read
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, "PATCH", "/notification/"+url.PathEscape(id)+"/read", nil, nil, true)
}

// MarkAllNotificationsRead marks the whole feed as read
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, "PATCH", "/notification/read-all", nil, nil, true)
}
