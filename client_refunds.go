package paygate

import (
	"context"
	"net/http"
)

type refundRequest struct {
	PaymentID string `json:"payment_id"`
}

// ProcessRefund refunds a captured payment. Idempotent at the gateway via
// the attached key; a payment that cannot be refunded comes back as an
// *APIError.
func (c *Client) ProcessRefund(ctx context.Context, paymentID string) (*RefundResult, error) {
	var result RefundResult
	err := c.do(ctx, http.MethodPost, pathRefunds, refundRequest{PaymentID: paymentID}, &result, withIdempotencyKey())
	if err != nil {
		return nil, err
	}
	return &result, nil
}
