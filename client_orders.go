package paygate

import (
	"context"
	"net/http"
)

type orderRequest struct {
	Amount   float64 `json:"amount"`
	Currency string  `json:"currency"`
}

// CreateOrder opens a payment order for the authenticated merchant. Amount
// validation (positivity, format) is the gateway's responsibility; invalid
// input comes back as an *APIError with the gateway's error code.
func (c *Client) CreateOrder(ctx context.Context, amount float64, currency string) (*Order, error) {
	var order Order
	err := c.do(ctx, http.MethodPost, pathOrders, orderRequest{Amount: amount, Currency: currency}, &order)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// InProgressOrders lists the IDs of the merchant's orders still awaiting
// payment, newest first.
func (c *Client) InProgressOrders(ctx context.Context) ([]string, error) {
	var ids []string
	if err := c.do(ctx, http.MethodGet, pathInProgress, nil, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
