package paygate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mahrishi821/Payagate/session"
)

const testPrefix = defaultAPIPrefix

func writeSuccess(w http.ResponseWriter, message string, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": true,
		"message": message,
		"data":    data,
	})
}

func writeError(w http.ResponseWriter, status, code int, message, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"exception": map[string]interface{}{
			"code":        code,
			"message":     message,
			"description": description,
		},
	})
}

// fakeGateway is a scriptable stand-in for the remote service. Protected
// endpoints accept exactly one bearer token; the renewal endpoint hands out
// the configured next token and counts how often it is hit.
type fakeGateway struct {
	mu             sync.Mutex
	accept         string // bearer accepted by protected endpoints
	refreshNext    string // token the renewal endpoint will issue
	refreshFail    bool
	refreshNoGrant bool          // issue the token but keep rejecting it
	refreshDelay   time.Duration // hold the renewal response open
	refreshCalls   atomic.Int32
	orderCalls     atomic.Int32

	// When non-nil, the renewal handler signals refreshStarted once and
	// then blocks until refreshRelease is closed.
	refreshStarted chan struct{}
	refreshRelease chan struct{}

	startedOnce sync.Once
}

func (g *fakeGateway) setAccept(token string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.accept = token
}

func (g *fakeGateway) authorized(r *http.Request) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.accept != "" && r.Header.Get("Authorization") == "Bearer "+g.accept
}

func (g *fakeGateway) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc(testPrefix+pathRefresh, func(w http.ResponseWriter, r *http.Request) {
		g.refreshCalls.Add(1)
		if g.refreshStarted != nil {
			g.startedOnce.Do(func() { close(g.refreshStarted) })
		}
		if g.refreshRelease != nil {
			<-g.refreshRelease
		}
		if g.refreshDelay > 0 {
			time.Sleep(g.refreshDelay)
		}
		g.mu.Lock()
		fail, next, noGrant := g.refreshFail, g.refreshNext, g.refreshNoGrant
		g.mu.Unlock()
		if fail {
			writeError(w, http.StatusUnauthorized, 107, "Token refresh failed", "token_not_valid")
			return
		}
		if !noGrant {
			g.setAccept(next)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"access": next})
	})

	mux.HandleFunc(testPrefix+pathOrders, func(w http.ResponseWriter, r *http.Request) {
		g.orderCalls.Add(1)
		if !g.authorized(r) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"detail":"Given token not valid for any token type"}`))
			return
		}
		writeSuccess(w, "Order created successfully", Order{
			OrderID:  "ord-1",
			Amount:   "100.00",
			Currency: "INR",
			Status:   "created",
		})
	})

	mux.HandleFunc(testPrefix+pathLogout, func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, "Logout successful", map[string]interface{}{})
	})

	return mux
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *session.MemoryStore) {
	t.Helper()
	return newTestClientWithStore(t, handler, session.NewMemoryStore())
}

func newTestClientWithStore(t *testing.T, handler http.Handler, store *session.MemoryStore) (*Client, *session.MemoryStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := New().
		WithBaseURL(srv.URL).
		WithHTTPClient(srv.Client()).
		WithSessionStore(store).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	return client, store
}

func seedSession(t *testing.T, c *Client, store *session.MemoryStore, access string) {
	t.Helper()
	sess := &Session{
		Email:  "a@b.com",
		Name:   "A",
		Role:   RoleMerchant,
		Access: access,
		APIKey: "key-1",
	}
	if err := c.adoptSession(context.Background(), sess); err != nil {
		t.Fatalf("seed session failed: %v", err)
	}
	if rec, _ := store.Hydrate(context.Background()); rec == nil {
		t.Fatal("seed session not persisted")
	}
}
