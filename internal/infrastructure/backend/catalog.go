// internal/infrastructure/backend/catalog.go
package backend

import (
	"context"
	"net/url"
)

// Materials fetches the product catalog, optionally filtered by a search term
func (c *Client) Materials(ctx context.Context, search string) ([]Material, error) {
	var materials []Material
	if err := c.do(ctx, "GET", "/material"+searchQuery(search), nil, &materials, false); err != nil {
		return nil, err
	}
	return materials, nil
}

// MaterialByID fetches a single product
func (c *Client) MaterialByID(ctx context.Context, id string) (*Material, error) {
	var material Material
	if err := c.do(ctx, "GET", "/material/"+url.PathEscape(id), nil, &material, false); err != nil {
		return nil, err
	}
	return &material, nil
}

// RecentByCategory fetches the newest products grouped by category
func (c *Client) RecentByCategory(ctx context.Context) (map[string][]Material, error) {
	grouped := map[string][]Material{}
	if err := c.do(ctx, "GET", "/material/recent-by-category", nil, &grouped, false); err != nil {
		return nil, err
	}
	return grouped, nil
}

// Categories fetches all product categories
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, "GET", "/category", nil, &categories, false); err != nil {
		return nil, err
	}
	return categories, nil
}
