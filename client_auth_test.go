package paygate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/mahrishi821/Payagate/session"
)

func TestLoginSuccess(t *testing.T) {
	var gotBody map[string]string
	mux := http.NewServeMux()
	mux.HandleFunc(testPrefix+pathToken, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		writeSuccess(w, "Login successful", map[string]interface{}{
			"email":   "a@b.com",
			"name":    "A",
			"role":    "merchant",
			"access":  "tok1",
			"api_key": "key-1",
		})
	})

	client, store := newTestClient(t, mux)
	result := client.Login(context.Background(), "a@b.com", "x")

	if !result.Success {
		t.Fatalf("expected success, got %+v", result)
	}
	if result.Message != "Login successful" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if gotBody["email"] != "a@b.com" || gotBody["password"] != "x" {
		t.Fatalf("unexpected login request body: %v", gotBody)
	}

	sess := client.Session()
	if sess == nil || sess.Role != RoleMerchant || sess.Access != "tok1" {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if token, ok := client.cred.get(); !ok || token != "tok1" {
		t.Fatalf("credential holder should hold tok1, got %q (%v)", token, ok)
	}
	rec, err := store.Hydrate(context.Background())
	if err != nil {
		t.Fatalf("Hydrate failed: %v", err)
	}
	if rec == nil || rec.Access != "tok1" || rec.Role != "merchant" || rec.APIKey != "key-1" {
		t.Fatalf("session not persisted faithfully: %+v", rec)
	}
}

func TestLoginFailureNormalized(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(testPrefix+pathToken, func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusOK, 101, "Login failed", "No active account found with the given credentials")
	})

	client, store := newTestClient(t, mux)
	result := client.Login(context.Background(), "a@b.com", "wrong")

	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.Message != "Login failed" {
		t.Fatalf("unexpected message %q", result.Message)
	}
	if result.Description != "No active account found with the given credentials" {
		t.Fatalf("unexpected description %q", result.Description)
	}
	if client.Authenticated() {
		t.Fatal("no session may exist after a failed login")
	}
	if rec, _ := store.Hydrate(context.Background()); rec != nil {
		t.Fatalf("nothing may be persisted after a failed login, got %+v", rec)
	}
}

func TestLoginTransportFailureNormalized(t *testing.T) {
	client, err := New().
		WithBaseURL("http://127.0.0.1:1").
		WithSessionStore(session.NewMemoryStore()).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	result := client.Login(context.Background(), "a@b.com", "x")
	if result.Success {
		t.Fatal("expected failure result")
	}
	if result.Message == "" || result.Description == "" {
		t.Fatalf("transport failures must still carry a message: %+v", result)
	}
}

func TestRegisterSuccess(t *testing.T) {
	var gotBody registerRequest
	mux := http.NewServeMux()
	mux.HandleFunc(testPrefix+pathRegister, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		// The registration contract is flat, unlike login's envelope.
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{
			"email":   "m@shop.com",
			"name":    "Shop",
			"access":  "tok1",
			"api_key": "key-9",
		})
	})

	client, store := newTestClient(t, mux)
	sess, err := client.Register(context.Background(), "Shop", "m@shop.com", "pw", "https://shop.example/webhook")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if sess.Role != RoleMerchant {
		t.Fatalf("registration must default the merchant role, got %q", sess.Role)
	}
	if sess.APIKey != "key-9" {
		t.Fatalf("api key must pass through unchanged, got %q", sess.APIKey)
	}
	if gotBody.User.Name != "Shop" || gotBody.WebhookURL != "https://shop.example/webhook" {
		t.Fatalf("unexpected register request body: %+v", gotBody)
	}
	rec, _ := store.Hydrate(context.Background())
	if rec == nil || rec.Role != "merchant" || rec.Access != "tok1" {
		t.Fatalf("session not persisted: %+v", rec)
	}
}

func TestRegisterFailureReturnsError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(testPrefix+pathRegister, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"email already registered"}`))
	})

	client, store := newTestClient(t, mux)
	_, err := client.Register(context.Background(), "Shop", "m@shop.com", "pw", "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("register must surface errors, got %v", err)
	}
	if client.Authenticated() {
		t.Fatal("no session may exist after a failed registration")
	}
	if rec, _ := store.Hydrate(context.Background()); rec != nil {
		t.Fatalf("nothing may be persisted after a failed registration, got %+v", rec)
	}
}

func TestRegisterAdminLeavesSessionUntouched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(testPrefix+pathRegisterAdmin, func(w http.ResponseWriter, r *http.Request) {
		writeSuccess(w, "Admin registered successfully", map[string]string{
			"email":  "new@admin.com",
			"name":   "New Admin",
			"role":   "admin",
			"access": "other-tok",
		})
	})

	client, store := newTestClient(t, mux)
	seedSession(t, client, store, "tok1")

	created, err := client.RegisterAdmin(context.Background(), "New Admin", "new@admin.com", "pw")
	if err != nil {
		t.Fatalf("RegisterAdmin failed: %v", err)
	}
	if created.Role != RoleAdmin || created.Email != "new@admin.com" {
		t.Fatalf("unexpected onboarded admin: %+v", created)
	}
	if token, ok := client.cred.get(); !ok || token != "tok1" {
		t.Fatalf("caller's own credential must be untouched, got %q (%v)", token, ok)
	}
	if sess := client.Session(); sess == nil || sess.Email != "a@b.com" {
		t.Fatalf("caller's own session must be untouched, got %+v", sess)
	}
}

func TestLogoutSwallowsRemoteFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc(testPrefix+pathLogout, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	client, store := newTestClient(t, mux)
	seedSession(t, client, store, "tok1")

	if err := client.Logout(context.Background()); err != nil {
		t.Fatalf("logout must succeed locally regardless of the gateway: %v", err)
	}
	if client.Authenticated() {
		t.Fatal("local state must be cleared")
	}
}

func TestRestoreHydratesSession(t *testing.T) {
	gw := &fakeGateway{accept: "tok1"}
	srvHandler := gw.handler()

	store := session.NewMemoryStore()
	if err := store.Persist(context.Background(), &session.Record{
		Email:  "a@b.com",
		Name:   "A",
		Role:   "merchant",
		Access: "tok1",
		APIKey: "key-1",
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	client, _ := newTestClientWithStore(t, srvHandler, store)
	sess, err := client.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if sess == nil || sess.Role != RoleMerchant || sess.Access != "tok1" {
		t.Fatalf("unexpected restored session: %+v", sess)
	}

	// The restored credential is live on the next request.
	if _, err := client.CreateOrder(context.Background(), 100, "INR"); err != nil {
		t.Fatalf("request with restored credential failed: %v", err)
	}
}

func TestRestoreAbsentStaysAnonymous(t *testing.T) {
	client, _ := newTestClient(t, http.NewServeMux())
	sess, err := client.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if sess != nil {
		t.Fatalf("expected anonymous start, got %+v", sess)
	}
	if client.Authenticated() {
		t.Fatal("no credential may be held without a persisted session")
	}
}
