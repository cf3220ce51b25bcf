package session

import (
	"context"
	"errors"
)

// ErrStoreUnavailable is an exported constant or variable used by the gateway client.
var ErrStoreUnavailable = errors.New("session store unavailable")

// Store is the durable persistence seam. Implementations must be safe for
// concurrent use.
//
// Hydrate returns (nil, nil) when no valid record exists — absence and
// corruption are indistinguishable to the caller by design. Persist
// atomically overwrites the record. Clear removes it and is idempotent:
// clearing an already-absent record is not an error.
type Store interface {
	Hydrate(ctx context.Context) (*Record, error)
	Persist(ctx context.Context, rec *Record) error
	Clear(ctx context.Context) error
}
