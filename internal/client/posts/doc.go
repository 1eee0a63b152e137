// Package posts owns the canonical in-memory list of posts.
//
// A Store applies every mutation atomically, publishes a fresh immutable
// State snapshot and notifies subscribers synchronously, in mutation
// order. Persistence is not part of the store: Bind attaches a Persister
// that mirrors each snapshot to the local key/value store, and Restore
// re-hydrates the initial state at startup.
package posts
