package paygate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
)

type loginData struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Access string `json:"access"`
	APIKey string `json:"api_key"`
}

// registerResponse is the registration endpoint's flat contract. It is
// deliberately a different shape from the login envelope; the two are kept
// as distinct decode types rather than unified.
type registerResponse struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	Access string `json:"access"`
	APIKey string `json:"api_key"`
}

type registerRequest struct {
	User       registerUser `json:"user"`
	WebhookURL string       `json:"webhook_url"`
}

type registerUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates against the token endpoint and, on success, creates
// the session (durable record and credential slot). Login never returns an
// error: every outcome, including transport failure, is normalized into a
// [LoginResult] and callers branch on Success. This asymmetry with
// [Client.Register] is the documented contract.
func (c *Client) Login(ctx context.Context, email, password string) LoginResult {
	body := map[string]string{"email": email, "password": password}
	env, err := c.call(ctx, http.MethodPost, pathToken, body, withoutAuth())
	if err != nil {
		c.metrics.Inc(MetricLoginFailure)
		return loginFailure(err)
	}

	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Access == "" {
		c.metrics.Inc(MetricLoginFailure)
		return LoginResult{Success: false, Message: "Login failed", Description: "malformed login response"}
	}

	sess := &Session{
		Email:  data.Email,
		Name:   data.Name,
		Role:   Role(data.Role),
		Access: data.Access,
		APIKey: data.APIKey,
	}
	if err := c.adoptSession(ctx, sess); err != nil {
		// The gateway accepted the login but the durable write failed;
		// surfacing a failed login keeps the "session iff credential"
		// invariant honest instead of leaving a live credential with no
		// persisted record.
		c.destroySession(ctx)
		c.metrics.Inc(MetricLoginFailure)
		return LoginResult{Success: false, Message: "Login failed", Description: err.Error()}
	}

	c.metrics.Inc(MetricLoginSuccess)
	message := env.Message
	if message == "" {
		message = "Login successful"
	}
	out := *sess
	return LoginResult{Success: true, Message: message, Session: &out}
}

func loginFailure(err error) LoginResult {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		message := apiErr.Message
		if message == "" {
			message = "Login failed"
		}
		return LoginResult{Success: false, Message: message, Description: apiErr.Description}
	}
	return LoginResult{Success: false, Message: "Login failed. Please try again.", Description: err.Error()}
}

// Register creates a merchant account and logs it in. Registration only
// ever creates merchants; the gateway implies the role rather than
// returning it. Unlike [Client.Login], Register returns errors and callers
// must handle them.
func (c *Client) Register(ctx context.Context, name, email, password, webhookURL string) (*Session, error) {
	body := registerRequest{
		User:       registerUser{Name: name, Email: email, Password: password},
		WebhookURL: webhookURL,
	}
	var data registerResponse
	if err := c.doRaw(ctx, http.MethodPost, pathRegister, body, &data, withoutAuth()); err != nil {
		c.metrics.Inc(MetricRegisterFailure)
		return nil, err
	}
	if data.Access == "" {
		c.metrics.Inc(MetricRegisterFailure)
		return nil, fmt.Errorf("paygate: registration response missing access token")
	}

	sess := &Session{
		Email:  data.Email,
		Name:   data.Name,
		Role:   RoleMerchant,
		Access: data.Access,
		APIKey: data.APIKey,
	}
	if err := c.adoptSession(ctx, sess); err != nil {
		c.destroySession(ctx)
		c.metrics.Inc(MetricRegisterFailure)
		return nil, err
	}
	c.metrics.Inc(MetricRegisterSuccess)
	out := *sess
	return &out, nil
}

// RegisterAdmin onboards another admin account through the admin-only
// endpoint. The returned session describes the new admin; the caller's own
// session is untouched.
func (c *Client) RegisterAdmin(ctx context.Context, name, email, password string) (*Session, error) {
	body := map[string]interface{}{
		"user": registerUser{Name: name, Email: email, Password: password},
	}
	var data loginData
	if err := c.do(ctx, http.MethodPost, pathRegisterAdmin, body, &data); err != nil {
		return nil, err
	}
	return &Session{
		Email:  data.Email,
		Name:   data.Name,
		Role:   Role(data.Role),
		Access: data.Access,
	}, nil
}

// Logout terminates the session. The remote logout is best-effort (a dead
// gateway must not trap a user in a logged-in client); local destruction is
// unconditional and idempotent. After Logout returns, no renewal that was
// in flight when it was called can re-enter the authenticated state.
func (c *Client) Logout(ctx context.Context) error {
	if token, ok := c.cred.get(); ok {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(pathLogout), nil)
		if err == nil {
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("User-Agent", c.config.Transport.UserAgent)
			if resp, rerr := c.http.Do(req); rerr != nil {
				log.Printf("paygate: remote logout failed: %v", rerr)
			} else {
				resp.Body.Close()
			}
		}
	}
	c.destroySession(ctx)
	c.metrics.Inc(MetricLogout)
	return nil
}

// Restore hydrates the session from durable storage at startup. An absent
// or structurally invalid record leaves the client anonymous and returns
// (nil, nil); corrupt persisted state is treated identically to "never
// logged in" and never fails startup. A hydrated session seeds the
// credential holder.
func (c *Client) Restore(ctx context.Context) (*Session, error) {
	rec, err := c.store.Hydrate(ctx)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	sess := sessionFromRecord(rec)
	c.mu.Lock()
	c.sess = sess
	c.cred.set(sess.Access)
	c.mu.Unlock()
	c.metrics.Inc(MetricSessionRestored)
	out := *sess
	return &out, nil
}
