// internal/infrastructure/backend/payment.go
package backend

import (
	"context"
	"net/url"
)

// InitializePayment asks the backend to set up a hosted-checkout session with
// the payment provider for the given order. A 2xx response with a non-success
// status is returned to the caller as data, not as an error; the caller
// decides how to report it.
func (c *Client) InitializePayment(ctx context.Context, order *Order, email string) (*PaymentInitResponse, error) {
	var resp PaymentInitResponse
	req := PaymentInitRequest{Order: order, User: PaymentUser{Email: email}}
	if err := c.post(ctx, "/payment/initialize", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyPayment confirms a payment outcome after the provider redirects back.
// The verify endpoint is public on the backend, so no bearer token is sent;
// verification is safe to call more than once for the same id.
func (c *Client) VerifyPayment(ctx context.Context, verifyID, txRef string) (*VerifyResponse, error) {
	path := "/payment/verify/" + url.PathEscape(verifyID)
	if txRef != "" {
		path += "?tx_ref=" + url.QueryEscape(txRef)
	}

	var resp VerifyResponse
	if err := c.do(ctx, "GET", path, nil, &resp, false); err != nil {
		return nil, err
	}
	return &resp, nil
}
