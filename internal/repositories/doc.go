// Package repositories implements SQLite persistence for the client's local state.
//
// Key Implementations:
//   - [SessionStore] : the session key/value store (table session_entries), a [session.Store]
//   - [MovieCache] : catalog snapshots (table movies_cache) for offline listing and favorites export
//
// Both expect a database prepared by [shared.RunMigrations].
package repositories
