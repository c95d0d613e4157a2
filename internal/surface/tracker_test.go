package surface

import (
	"testing"
)

func TestTrackerEvictsOldestBeyondLimit(t *testing.T) {
	factory := &fakeFactory{}
	pool := NewPool(factory, 5, nil)
	tr := NewTracker(pool, 2, nil)

	a, _ := pool.Acquire()
	b, _ := pool.Acquire()
	c, _ := pool.Acquire()

	tr.Add(a)
	tr.Add(b)
	tr.Add(c)

	if n := tr.Count(); n != 2 {
		t.Fatalf("expected 2 tracked surfaces, got %d", n)
	}
	// a was oldest; it should be retired back into the pool.
	if n := pool.Idle(); n != 1 {
		t.Fatalf("expected evicted surface in pool, %d idle", n)
	}
	if got, _ := pool.Acquire(); got != a {
		t.Fatalf("expected the evicted surface to be the oldest one")
	}
}

func TestTrackerRemoveRetiresToPool(t *testing.T) {
	pool := NewPool(&fakeFactory{}, 5, nil)
	tr := NewTracker(pool, 5, nil)

	h, _ := pool.Acquire()
	tr.Add(h)

	if !tr.Remove(h) {
		t.Fatalf("expected Remove to find the tracked surface")
	}
	if tr.Remove(h) {
		t.Fatalf("expected second Remove to report not tracked")
	}
	if n := pool.Idle(); n != 1 {
		t.Fatalf("expected removed surface pooled, %d idle", n)
	}
}

func TestTrackerDestroysWhenPoolFull(t *testing.T) {
	pool := NewPool(&fakeFactory{}, 1, nil)
	tr := NewTracker(pool, 1, nil)

	filler, _ := pool.Acquire()
	pool.Release(filler) // pool now at capacity

	a, _ := pool.Acquire() // takes filler back out
	pool.Release(a)
	b := &fakeSurface{}
	tr.Add(b)
	c := &fakeSurface{}
	tr.Add(c) // evicts b; pool is full, so b is destroyed

	if b.destroyed != 1 {
		t.Fatalf("expected evicted surface destroyed when pool is full")
	}
	if n := tr.Count(); n != 1 {
		t.Fatalf("expected 1 tracked surface, got %d", n)
	}
}

func TestTrackerClear(t *testing.T) {
	pool := NewPool(&fakeFactory{}, 5, nil)
	tr := NewTracker(pool, 5, nil)

	for i := 0; i < 3; i++ {
		h, _ := pool.Acquire()
		tr.Add(h)
	}
	tr.Clear()
	if n := tr.Count(); n != 0 {
		t.Fatalf("expected no tracked surfaces after clear, got %d", n)
	}
	if n := pool.Idle(); n != 3 {
		t.Fatalf("expected cleared surfaces pooled, %d idle", n)
	}
	tr.Clear() // idempotent
}
