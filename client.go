package paygate

import (
	"context"
	"log"
	"net/http"
	"sync"

	"github.com/mahrishi821/Payagate/session"
	"golang.org/x/sync/singleflight"
)

// Gateway endpoint paths, relative to Config.APIPrefix. The in-progress and
// completed listings keep the paths the gateway actually serves, odd as
// they read.
const (
	pathToken         = "/auth/token/"
	pathRegister      = "/auth/register/"
	pathRegisterAdmin = "/auth/register-admin/"
	pathRefresh       = "/auth/refresh/"
	pathLogout        = "/auth/logout/"
	pathOrders        = "/orders/"
	pathPayments      = "/payments/"
	pathRefunds       = "/refunds/"
	pathInProgress    = "/payment-process/"
	pathCompleted     = "/payment-complete/"
	pathAdminStats    = "/admin/stats/"
	pathMerchantStats = "/merchants/stats/"
)

// Client defines a public type used by paygate APIs.
//
// Client instances are intended to be configured during initialization
// through [Builder.Build] and then treated as immutable unless documented
// otherwise. All methods are safe for concurrent use.
type Client struct {
	config  Config
	http    *http.Client
	store   session.Store
	metrics *Metrics

	cred  credentialHolder
	group singleflight.Group

	// mu guards the session identity and the logout generation. The
	// credential slot itself is lock-free; mu serializes the compound
	// transitions (create, refresh-apply, destroy) so durable writes only
	// ever reflect fully-resolved states.
	mu   sync.Mutex
	sess *Session
	gen  uint64
}

// Session returns a copy of the current session, or nil when anonymous.
func (c *Client) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.sess == nil {
		return nil
	}
	s := *c.sess
	return &s
}

// Authenticated reports whether a session is currently active.
func (c *Client) Authenticated() bool {
	_, ok := c.cred.get()
	return ok
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	return c.metrics.Snapshot()
}

func (c *Client) generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gen
}

// adoptSession installs a freshly created session: credential slot first,
// then the durable record, so a reader of durable storage never observes a
// credential the holder has not seen.
func (c *Client) adoptSession(ctx context.Context, s *Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	cp := *s
	c.sess = &cp
	c.cred.set(cp.Access)
	if err := c.store.Persist(ctx, recordFromSession(&cp)); err != nil {
		return err
	}
	return nil
}

// applyRefreshed installs a renewed access credential, unless logout (or a
// prior destruction) advanced the generation while the renewal call was in
// flight; a late refresh must never resurrect a destroyed session.
func (c *Client) applyRefreshed(ctx context.Context, token string, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen || c.sess == nil {
		return false
	}
	c.sess.Access = token
	c.cred.set(token)
	if err := c.store.Persist(ctx, recordFromSession(c.sess)); err != nil {
		// The in-memory session stays valid; only restart-survival of the
		// newest credential is degraded.
		log.Printf("paygate: session re-persist after refresh failed: %v", err)
	}
	return true
}

// destroySession enters the anonymous state and advances the generation.
// Safe to call repeatedly; clearing an already-absent record is not an
// error.
func (c *Client) destroySession(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	wasActive := c.sess != nil
	c.sess = nil
	c.cred.clear()
	if err := c.store.Clear(ctx); err != nil {
		log.Printf("paygate: session clear failed: %v", err)
	}
	if wasActive {
		c.metrics.Inc(MetricSessionDestroyed)
	}
}

func recordFromSession(s *Session) *session.Record {
	return &session.Record{
		Email:  s.Email,
		Name:   s.Name,
		Role:   string(s.Role),
		Access: s.Access,
		APIKey: s.APIKey,
	}
}

func sessionFromRecord(r *session.Record) *Session {
	return &Session{
		Email:  r.Email,
		Name:   r.Name,
		Role:   Role(r.Role),
		Access: r.Access,
		APIKey: r.APIKey,
	}
}
