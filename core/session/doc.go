// Package session provides ephemeral, in-process session state keyed by an
// opaque identifier delivered in the session_id cookie.
//
// A Store resolves the raw Cookie header of a request to a session identifier
// and its Bag. When the header carries no session_id, carries a malformed
// token, or names a session the store no longer knows, a new UUID identifier
// and an empty Bag are minted. Resolve never fails.
//
//	import "github.com/hajimekit/hajime/core/session"
//
//	store := session.NewMemoryStore(
//		session.WithTTL(time.Hour),
//		session.WithCapacity(50000),
//	)
//
//	id, bag := store.Resolve(ctx, r.Header.Get("Cookie"))
//	bag.Set("user", "alice")
//
// Bags are shared by reference: mutations made while handling one request are
// visible to the next request presenting the same cookie. Persist replaces a
// bag wholesale.
//
// # Expiry and Capacity
//
// MemoryStore evicts sessions idle longer than the TTL, either lazily on
// Resolve or in bulk from the janitor, and evicts the least recently used
// session when the capacity bound is exceeded. The janitor follows the usual
// lifecycle:
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(store.Run(ctx))
//
// Nothing survives a restart; persistence is out of scope for this package.
package session
