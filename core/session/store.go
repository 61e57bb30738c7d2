package session

import "context"

// Store resolves session identifiers to bags.
// Implementations must be safe for concurrent use.
type Store interface {
	// Resolve looks up the session named by the session_id cookie in a raw
	// Cookie header. A missing, malformed or unknown identifier yields a
	// freshly minted session. Resolve never fails.
	Resolve(ctx context.Context, cookieHeader string) (id string, bag *Bag)
	// Persist replaces the bag stored for id.
	Persist(ctx context.Context, id string, bag *Bag)
}
