// internal/infrastructure/backend/orders.go
package backend

import (
	"context"
	"net/url"
)

// Checkout converts the current cart into an order via POST /order/checkout
func (c *Client) Checkout(ctx context.Context, shippingAddress string, useLoyaltyPoints bool) (*Order, error) {
	var order Order
	req := CheckoutRequest{ShippingAddress: shippingAddress, UseLoyaltyPoints: useLoyaltyPoints}
	if err := c.post(ctx, "/order/checkout", req, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// ListOrders fetches the caller's order history, optionally filtered by a
// search term matching order ids or product titles
func (c *Client) ListOrders(ctx context.Context, search string) ([]Order, error) {
	var orders []Order
	if err := c.get(ctx, "/order/all"+searchQuery(search), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches a single order by id
func (c *Client) GetOrder(ctx context.Context, id string) (*Order, error) {
	var order Order
	if err := c.get(ctx, "/order/"+url.PathEscape(id), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// DeleteOrder removes an order from the caller's history
func (c *Client) DeleteOrder(ctx context.Context, id string) error {
	return c.do(ctx, "DELETE", "/order/"+url.PathEscape(id), nil, nil, true)
}

// AdminListOrders fetches every order, optionally filtered (admin only)
func (c *Client) AdminListOrders(ctx context.Context, search string) ([]Order, error) {
	var orders []Order
	if err := c.get(ctx, "/order/admin/all"+searchQuery(search), &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// SetDeliveryStatus transitions an order's delivery status (admin only)
func (c *Client) SetDeliveryStatus(ctx context.Context, orderID, status string) error {
	body := map[string]string{"status": status}
	return c.do(ctx, "PATCH", "/order/delivery/"+url.PathEscape(orderID), body, nil, true)
}

// MarketShare fetches the per-category sales report (admin only)
func (c *Client) MarketShare(ctx context.Context) ([]MarketShareEntry, error) {
	var entries []MarketShareEntry
	if err := c.get(ctx, "/order/admin/market-share", &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func searchQuery(search string) string {
	if search == "" {
		return ""
	}
	return "?search=" + url.QueryEscape(search)
}
