// internal/infrastructure/backend/profile.go
package backend

import "context"

// GetProfile fetches the caller's account record, including loyalty points
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := c.get(ctx, "/profile", &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates the caller's name and email
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*Profile, error) {
	var profile Profile
	if err := c.do(ctx, "PUT", "/profile", update, &profile, true); err != nil {
		return nil, err
	}
	return &profile, nil
}

// DeleteProfile permanently deletes the caller's account
func (c *Client) DeleteProfile(ctx context.Context) error {
	return c.do(ctx, "DELETE", "/profile", nil, nil, true)
}

// ProfileStats fetches the caller's account summary
func (c *Client) ProfileStats(ctx context.Context) (*ProfileStats, error) {
	var stats ProfileStats
	if err := c.get(ctx, "/profile/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ListCustomers fetches the customer directory, optionally filtered
// (admin only)
func (c *Client) ListCustomers(ctx context.Context, search string) ([]Customer, error) {
	var customers []Customer
	if err := c.get(ctx, "/profile/all"+searchQuery(search), &customers); err != nil {
		return nil, err
	}
	return customers, nil
}
