package paygate

import "sync/atomic"

// credentialHolder owns the single current access credential used on every
// outbound call. Reads always observe the most recently completed set; a
// request can never see a half-written value.
//
// Only auth flows and the refresh coordinator write the slot. The request
// pipeline reads it and, on expiry, asks the coordinator for a new value;
// it never writes the credential itself.
type credentialHolder struct {
	v atomic.Pointer[string]
}

func (h *credentialHolder) get() (string, bool) {
	p := h.v.Load()
	if p == nil {
		return "", false
	}
	return *p, true
}

func (h *credentialHolder) set(token string) {
	h.v.Store(&token)
}

func (h *credentialHolder) clear() {
	h.v.Store(nil)
}
