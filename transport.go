package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"
)

// apiEnvelope is the gateway's standard response wrapper: either
// {success:true, message, data} or {success:false, exception:{...}}. The
// gateway reports most domain failures with HTTP 200 and success:false, so
// the envelope, not the status line, decides success.
type apiEnvelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Exception *apiException   `json:"exception"`
}

type apiException struct {
	Code        int    `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

type callOptions struct {
	query          url.Values
	idempotencyKey string
	noAuth         bool
}

type callOption func(*callOptions)

func withQuery(key, value string) callOption {
	return func(o *callOptions) {
		if o.query == nil {
			o.query = url.Values{}
		}
		o.query.Set(key, value)
	}
}

// withIdempotencyKey marks a mutating call safe to replay server-side. The
// key survives the pipeline's unauthorized retry, so a capture that was
// retried after a renewal cannot charge twice.
func withIdempotencyKey() callOption {
	return func(o *callOptions) {
		o.idempotencyKey = uuid.NewString()
	}
}

func withoutAuth() callOption {
	return func(o *callOptions) { o.noAuth = true }
}

func (c *Client) endpoint(path string) string {
	return c.config.BaseURL + c.config.APIPrefix + path
}

// call is the request pipeline. Every outbound gateway call flows through
// it: it attaches the current access credential, issues the request, and
// on an unauthorized response asks the refresh coordinator for a new
// credential and re-issues the identical call exactly once. A second
// unauthorized response is terminal and destroys the session.
func (c *Client) call(ctx context.Context, method, path string, body interface{}, opts ...callOption) (*apiEnvelope, error) {
	var options callOptions
	for _, opt := range opts {
		opt(&options)
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("paygate: encode %s %s: %w", method, path, err)
		}
	}

	// One logical call, one request ID: the retry re-sends the identical
	// request, so it keeps the ID for server-side correlation.
	requestID := uuid.NewString()
	c.metrics.Inc(MetricRequest)

	if token, ok := c.cred.get(); ok && !options.noAuth &&
		credentialExpiresWithin(token, c.config.Transport.RefreshSkew, timeNow()) {
		// Proactive renewal: the credential will not outlive the round
		// trip. A failure here is not terminal for this call; the reactive
		// path below still gets its one retry.
		_, _ = c.refreshCredential(ctx)
	}

	resp, raw, err := c.issue(ctx, method, path, payload, &options, requestID)
	if err != nil {
		c.metrics.Inc(MetricRequestFailure)
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !options.noAuth {
		if _, rerr := c.refreshCredential(ctx); rerr != nil {
			c.metrics.Inc(MetricRequestFailure)
			return nil, rerr
		}
		c.metrics.Inc(MetricRetryAfterUnauthorized)
		resp, raw, err = c.issue(ctx, method, path, payload, &options, requestID)
		if err != nil {
			c.metrics.Inc(MetricRequestFailure)
			return nil, err
		}
		if resp.StatusCode == http.StatusUnauthorized {
			// The renewed credential was rejected too. Do not loop.
			c.metrics.Inc(MetricRequestFailure)
			c.destroySession(ctx)
			return nil, fmt.Errorf("%w: request unauthorized after renewal", ErrAuthenticationExpired)
		}
	}

	env, err := decodeEnvelope(resp, raw)
	if err != nil {
		c.metrics.Inc(MetricRequestFailure)
		return nil, err
	}
	return env, nil
}

// do runs the pipeline and unmarshals the envelope's data into out.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}, opts ...callOption) error {
	env, err := c.call(ctx, method, path, body, opts...)
	if err != nil {
		return err
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("paygate: decode %s %s: %w", method, path, err)
	}
	return nil
}

// doRaw issues one pipeline call whose response body is NOT wrapped in the
// standard envelope. The registration endpoint is the only such contract.
func (c *Client) doRaw(ctx context.Context, method, path string, body, out interface{}, opts ...callOption) error {
	var options callOptions
	for _, opt := range opts {
		opt(&options)
	}
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("paygate: encode %s %s: %w", method, path, err)
		}
	}
	requestID := uuid.NewString()
	c.metrics.Inc(MetricRequest)
	resp, raw, err := c.issue(ctx, method, path, payload, &options, requestID)
	if err != nil {
		c.metrics.Inc(MetricRequestFailure)
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.Inc(MetricRequestFailure)
		return errorFromResponse(resp, raw)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("paygate: decode %s %s: %w", method, path, err)
	}
	return nil
}

// issue performs a single HTTP exchange and buffers the response body so
// the caller can decode it after status inspection.
func (c *Client) issue(ctx context.Context, method, path string, payload []byte, options *callOptions, requestID string) (*http.Response, []byte, error) {
	target := c.endpoint(path)
	if len(options.query) > 0 {
		target += "?" + options.query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, nil, &TransportError{Op: method, URL: target, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("User-Agent", c.config.Transport.UserAgent)
	req.Header.Set("X-Request-ID", requestID)
	if options.idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", options.idempotencyKey)
	}
	if !options.noAuth {
		if token, ok := c.cred.get(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, nil, &TransportError{Op: method, URL: target, Err: err}
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &TransportError{Op: method, URL: target, Err: err}
	}
	return resp, raw, nil
}

// decodeEnvelope classifies a buffered response. Success requires both a
// non-error status and success:true in the envelope; anything else becomes
// an *APIError carrying the structured exception fields when present.
func decodeEnvelope(resp *http.Response, raw []byte) (*apiEnvelope, error) {
	var env apiEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil, fmt.Errorf("paygate: malformed response envelope: %w", err)
		}
		return nil, errorFromResponse(resp, raw)
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 && env.Success {
		return &env, nil
	}
	apiErr := &APIError{Status: resp.StatusCode, Message: "request failed"}
	if env.Exception != nil {
		apiErr.Code = env.Exception.Code
		apiErr.Message = env.Exception.Message
		apiErr.Description = env.Exception.Description
	} else if env.Message != "" {
		apiErr.Message = env.Message
	}
	return nil, apiErr
}

// errorFromResponse builds an *APIError for non-enveloped failures,
// salvaging DRF-style {detail} bodies when present.
func errorFromResponse(resp *http.Response, raw []byte) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	var detail struct {
		Detail  string `json:"detail"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &detail); err == nil {
		if detail.Message != "" {
			apiErr.Message = detail.Message
		}
		if detail.Detail != "" {
			apiErr.Description = detail.Detail
		}
	}
	return apiErr
}
