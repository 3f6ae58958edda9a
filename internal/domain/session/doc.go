// Package session keeps per-browser todo state on the server.
//
// A Session owns one todo.Lists collection plus a one-shot flash message.
// Sessions are found by an opaque token that the HTTP layer stores in a
// cookie. The Store hands out sessions, mints new ones for unknown tokens and
// drops sessions that stayed idle longer than the configured TTL.
//
// Locking:
//   - Store.mu guards the token map and last-seen times
//   - Session.mu serializes requests of one session; the HTTP middleware
//     holds it for the whole request
//
// Example Usage:
//
//	store := session.NewStore(24 * time.Hour)
//	go store.Run(ctx, time.Minute)
//	sess, created := store.Acquire(tokenFromCookie)
//	sess.Lock()
//	defer sess.Unlock()
//	list, err := sess.Lists().Create("Groceries")
package session
