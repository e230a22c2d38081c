package keyspace

import (
	"sync"

	"typedkv/internal/types"
)

// lockedBackend protects a single map with one global mutex — the simplest
// strategy, and the one whose correctness is easiest to see: the same mutex
// that guards every *Locked call is the one Lock/Unlock expose directly.
type lockedBackend struct {
	mu   sync.Mutex
	data map[string]types.TypedValue
}

// NewLocked creates a Backend guarded by a single global mutex.
func NewLocked() Backend {
	return &lockedBackend{data: make(map[string]types.TypedValue)}
}

func (b *lockedBackend) Lock()   { b.mu.Lock() }
func (b *lockedBackend) Unlock() { b.mu.Unlock() }

func (b *lockedBackend) GetLocked(key string) (types.TypedValue, bool) {
	v, ok := b.data[key]
	if !ok {
		return types.TypedValue{}, false
	}
	return v.Clone(), true
}

func (b *lockedBackend) SetLocked(key string, v types.TypedValue) {
	b.data[key] = v
}

func (b *lockedBackend) DeleteLocked(key string) bool {
	if _, ok := b.data[key]; !ok {
		return false
	}
	delete(b.data, key)
	return true
}

