// internal/infrastructure/backend/cart.go
package backend

import "context"

// GetCart fetches the authoritative cart. A 2xx with an empty body means the
// user has no cart yet and yields an empty cart, not an error.
func (c *Client) GetCart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.get(ctx, "/cart", &cart); err != nil {
		return nil, err
	}
	if cart.Items == nil {
		cart.Items = []CartItem{}
	}
	return &cart, nil
}

// AddToCart adds one unit of the given material/variant line item
func (c *Client) AddToCart(ctx context.Context, materialID string, sel VariantSelection) error {
	return c.post(ctx, "/cart/add", CartItemRequest{MaterialID: materialID, VariantSelection: sel}, nil)
}

// RemoveFromCart decrements the matching line item by one unit. Dropping the
// line entirely when the quantity reaches zero is the backend's decision.
func (c *Client) RemoveFromCart(ctx context.Context, materialID string, sel VariantSelection) error {
	return c.post(ctx, "/cart/remove", CartItemRequest{MaterialID: materialID, VariantSelection: sel}, nil)
}

// DeleteFromCart removes the matching line item regardless of quantity
func (c *Client) DeleteFromCart(ctx context.Context, materialID string, sel VariantSelection) error {
	return c.post(ctx, "/cart/delete", CartItemRequest{MaterialID: materialID, VariantSelection: sel}, nil)
}
