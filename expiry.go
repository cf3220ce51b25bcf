package paygate

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// credentialExpiresWithin reports whether the access credential is a JWT
// whose exp claim falls inside the given window. The token is treated as
// opaque everywhere else; this is a best-effort peek that lets the pipeline
// renew before the gateway would reject, saving the wasted round-trip.
// Signature verification is the gateway's job, so the claims are parsed
// unverified. Opaque or claimless tokens report false.
func credentialExpiresWithin(token string, window time.Duration, now time.Time) bool {
	if window <= 0 {
		return false
	}
	claims := jwt.MapClaims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Time.Before(now.Add(window))
}
