// internal/infrastructure/backend/auth.go
package backend

import "context"

// Login authenticates against POST /auth/login and returns the token bundle
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, "POST", "/auth/login", Credentials{Email: email, Password: password}, &resp, false)
	if err != nil {
		return nil, err
	}
	if resp.Token == "" || resp.Role == "" {
		return nil, &Error{Kind: KindBackend, Message: "invalid response from server"}
	}
	return &resp, nil
}

// Register creates an account via POST /auth/register. The backend does not
// log the user in; a follow-up Login is required.
func (c *Client) Register(ctx context.Context, name, email, password string) error {
	return c.do(ctx, "POST", "/auth/register", Credentials{Name: name, Email: email, Password: password}, nil, false)
}
