// Package paygate is the Go client SDK for the Paygate payment gateway.
// It covers merchant and admin authentication, order creation, payment
// capture, refunds, and statistics, with transparent recovery from access
// credential expiry.
//
// The package is designed for concurrent callers: Client methods are safe to
// call from multiple goroutines after initialization through [Builder.Build].
//
// # Architecture boundaries
//
// paygate is the public surface. It exposes [Client], [Builder], [Config],
// and value types (Session, Order, Payment, LoginResult, etc.). Durable
// session persistence lives behind the
// [github.com/mahrishi821/Payagate/session.Store] seam with file, Redis,
// and in-memory backends.
//
// # What this package must NOT do
//
//   - Read or store the long-lived renewal credential. It is an HttpOnly
//     cookie presented automatically by the injected http.Client's jar.
//   - Perform business validation (amounts, card formats). That is the
//     remote service's job; the SDK transports requests and classifies
//     responses.
//   - Start more than one renewal call at a time, no matter how many
//     in-flight requests observe an expired credential simultaneously.
//
// # Session lifecycle contract
//
// A session exists if and only if the in-memory credential slot is
// populated; the durable record and the slot never diverge. A successful
// login or registration creates a session, a successful renewal replaces
// only its access credential (and re-persists it, so a restart picks up
// the newest credential), and logout or an unrecoverable renewal failure
// destroys it. Once logout has run, a renewal that was already in flight
// cannot resurrect the session.
package paygate
