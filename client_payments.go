package paygate

import (
	"context"
	"net/http"
)

// ProcessPayment captures a payment against an open order. The call carries
// an idempotency key, so the pipeline's single unauthorized retry cannot
// charge the card twice.
func (c *Client) ProcessPayment(ctx context.Context, req PaymentRequest) (*Payment, error) {
	var payment Payment
	if err := c.do(ctx, http.MethodPost, pathPayments, req, &payment, withIdempotencyKey()); err != nil {
		return nil, err
	}
	return &payment, nil
}

// CompletedPayments lists the merchant's captured payments, newest first.
func (c *Client) CompletedPayments(ctx context.Context) ([]Payment, error) {
	var payments []Payment
	if err := c.do(ctx, http.MethodGet, pathCompleted, nil, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}
