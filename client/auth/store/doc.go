// Package store holds the client session: the access/renewal credential pair
// and the resolved identity. The in-memory store is sufficient for tests and
// short-lived tools; FileStore writes the session through to disk so a login
// survives process restarts. Both swap the session atomically and fan out
// change notifications to registered listeners.
package store
