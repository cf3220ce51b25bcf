package paygate

import (
	"context"
	"net/http"
	"strconv"
)

// MerchantStats fetches the merchant dashboard for the trailing window of
// days (the gateway defaults to 30 when days <= 0).
func (c *Client) MerchantStats(ctx context.Context, days int) (*MerchantStats, error) {
	opts := []callOption{}
	if days > 0 {
		opts = append(opts, withQuery("days", strconv.Itoa(days)))
	}
	var stats MerchantStats
	if err := c.do(ctx, http.MethodGet, pathMerchantStats, nil, &stats, opts...); err != nil {
		return nil, err
	}
	return &stats, nil
}

// AdminStats fetches platform-wide statistics. merchantID narrows the view
// to a single merchant when non-empty. Admin-only; other roles get an
// *APIError from the gateway.
func (c *Client) AdminStats(ctx context.Context, days int, merchantID string) (*AdminStats, error) {
	opts := []callOption{}
	if days > 0 {
		opts = append(opts, withQuery("days", strconv.Itoa(days)))
	}
	if merchantID != "" {
		opts = append(opts, withQuery("merchant_id", merchantID))
	}
	var stats AdminStats
	if err := c.do(ctx, http.MethodGet, pathAdminStats, nil, &stats, opts...); err != nil {
		return nil, err
	}
	return &stats, nil
}
