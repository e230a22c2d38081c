// Package keyspace implements the storage backends that sit underneath the
// engine's keyspace lock. Three interchangeable strategies are provided —
// locked, sharded, and event-loop — mirroring the three concurrency models
// the teacher codebase explored for its own keyspace, generalized here to
// store typed containers instead of TTL'd byte strings.
package keyspace

import "typedkv/internal/types"

// Backend is the storage strategy underneath the engine. Lock/Unlock bracket
// a unit of work — a single command, or an entire queued EXEC batch — and
// the *Locked accessors may only be called while that lock is held.
//
// This is the single keyspace lock spec.md §9 describes: the engine
// acquires it exactly once per command, or once for a whole EXEC batch,
// never nested within itself, so no implementation here needs to support
// true reentrancy.
type Backend interface {
	Lock()
	Unlock()

	// GetLocked returns a clone of the stored value so a caller can never
	// mutate a LIST/HASH/SET's backing slice or map out from under the
	// backend without going through SetLocked (types.TypedValue.Clone).
	GetLocked(key string) (types.TypedValue, bool)
	SetLocked(key string, v types.TypedValue)
	DeleteLocked(key string) bool
}
