package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// refreshEnvelope accepts both observed shapes of the renewal response: the
// flat {access} contract and the {success, data:{access}} wrapper the
// gateway's envelope helper emits. The two appear interchangeably in the
// wild, so the coordinator tolerates either rather than guessing one.
type refreshEnvelope struct {
	Access string `json:"access"`
	Data   struct {
		Access string `json:"access"`
	} `json:"data"`
}

func (e *refreshEnvelope) token() string {
	if e.Access != "" {
		return e.Access
	}
	return e.Data.Access
}

// refreshCredential is the refresh coordinator. Any number of pipeline
// calls may invoke it concurrently; at most one renewal request is ever in
// flight, and every caller that arrives while it is pending receives the
// same outcome. Once the renewal settles the slot is cleared, so the next
// expiry starts a fresh one.
//
// Success updates the credential holder and re-persists the session before
// any waiter is released. Failure destroys the session exactly once and
// rejects every waiter with ErrAuthenticationExpired.
func (c *Client) refreshCredential(ctx context.Context) (string, error) {
	v, err, shared := c.group.Do("refresh", func() (interface{}, error) {
		return c.renewOnce(ctx)
	})
	if shared {
		c.metrics.Inc(MetricRefreshDeduped)
	}
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) renewOnce(ctx context.Context) (string, error) {
	// Snapshot the generation before the network call. Logout advancing it
	// while the call is in flight means the result must be discarded.
	gen := c.generation()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(pathRefresh), bytes.NewReader([]byte("{}")))
	if err != nil {
		return "", &TransportError{Op: "refresh", URL: pathRefresh, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.config.Transport.UserAgent)
	// No bearer here: the renewal authenticates via the ambient long-lived
	// credential in the transport's cookie jar, which this code never reads.

	resp, err := c.http.Do(req)
	if err != nil {
		// Connectivity loss during renewal is indistinguishable from a dead
		// session for the caller that needed the credential; the session
		// itself survives so a later request can try again.
		c.metrics.Inc(MetricRefreshFailure)
		return "", &TransportError{Op: "refresh", URL: pathRefresh, Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.Inc(MetricRefreshFailure)
		return "", &TransportError{Op: "refresh", URL: pathRefresh, Err: err}
	}

	var env refreshEnvelope
	token := ""
	if resp.StatusCode == http.StatusOK {
		if err := json.Unmarshal(raw, &env); err == nil {
			token = env.token()
		}
	}
	if token == "" {
		// Renewal credential invalid, revoked, or expired. Terminal.
		c.metrics.Inc(MetricRefreshFailure)
		c.destroySession(ctx)
		return "", fmt.Errorf("%w: renewal rejected (status %d)", ErrAuthenticationExpired, resp.StatusCode)
	}

	if !c.applyRefreshed(ctx, token, gen) {
		// Logout won while the renewal was in flight.
		c.metrics.Inc(MetricRefreshDiscarded)
		return "", fmt.Errorf("%w: session ended during renewal", ErrAuthenticationExpired)
	}
	c.metrics.Inc(MetricRefreshSuccess)
	return token, nil
}
