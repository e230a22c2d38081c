package keyspace

import (
	"sync"
	"testing"

	"typedkv/internal/types"
)

type backendCase struct {
	name string
	new  func() Backend
}

var backendCases = []backendCase{
	{"Locked", func() Backend { return NewLocked() }},
	{"Sharded", func() Backend { return NewSharded(8) }},
	{"EventLoop", func() Backend { return NewEventLoop(32) }},
}

func TestBackend_GetSetDelete(t *testing.T) {
	for _, c := range backendCases {
		t.Run(c.name, func(t *testing.T) {
			b := c.new()
			b.Lock()
			defer b.Unlock()

			if _, ok := b.GetLocked("missing"); ok {
				t.Fatalf("expected missing key to be absent")
			}

			b.SetLocked("a", types.NewString("1"))
			v, ok := b.GetLocked("a")
			if !ok || v.Str != "1" {
				t.Fatalf("unexpected get result: %+v, %v", v, ok)
			}

			b.SetLocked("a", types.NewString("2"))
			v, _ = b.GetLocked("a")
			if v.Str != "2" {
				t.Fatalf("expected overwrite to take effect, got %+v", v)
			}

			if !b.DeleteLocked("a") {
				t.Fatalf("expected delete to report existing key")
			}
			if b.DeleteLocked("a") {
				t.Fatalf("expected second delete to report absence")
			}
			if _, ok := b.GetLocked("a"); ok {
				t.Fatalf("expected key to be gone after delete")
			}
		})
	}
}

// GetLocked must hand out a clone: mutating the returned LIST's backing
// slice must never be visible on a later GetLocked for the same key.
func TestBackend_GetLockedReturnsIndependentClone(t *testing.T) {
	for _, c := range backendCases {
		t.Run(c.name, func(t *testing.T) {
			b := c.new()
			b.Lock()
			defer b.Unlock()

			b.SetLocked("l", types.NewList([]string{"a", "b"}))

			v, ok := b.GetLocked("l")
			if !ok {
				t.Fatalf("expected key to exist")
			}
			v.List[0] = "mutated"

			v2, _ := b.GetLocked("l")
			if v2.List[0] != "a" {
				t.Fatalf("mutating a GetLocked result affected the backend's copy: %+v", v2)
			}
		})
	}
}

func TestBackend_LockExcludesConcurrentWriters(t *testing.T) {
	for _, c := range backendCases {
		t.Run(c.name, func(t *testing.T) {
			b := c.new()
			b.Lock()
			b.SetLocked("ctr", types.NewString("0"))
			b.Unlock()

			b.Lock()
			done := make(chan struct{})
			go func() {
				b.Lock()
				b.SetLocked("ctr", types.NewString("from goroutine"))
				b.Unlock()
				close(done)
			}()

			select {
			case <-done:
				t.Fatalf("concurrent Lock+Set completed while Lock was held")
			default:
			}

			b.Unlock()
			<-done

			b.Lock()
			v, _ := b.GetLocked("ctr")
			b.Unlock()
			if v.Str != "from goroutine" {
				t.Fatalf("expected the deferred write to land, got %+v", v)
			}
		})
	}
}

func TestBackend_ConcurrentAccess(t *testing.T) {
	for _, c := range backendCases {
		t.Run(c.name, func(t *testing.T) {
			b := c.new()
			var wg sync.WaitGroup
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func(i int) {
					defer wg.Done()
					b.Lock()
					b.SetLocked("k", types.NewString("v"))
					b.GetLocked("k")
					b.Unlock()
				}(i)
			}
			wg.Wait()

			b.Lock()
			_, ok := b.GetLocked("k")
			b.Unlock()
			if !ok {
				t.Fatalf("expected key to exist after concurrent writes")
			}
		})
	}
}
