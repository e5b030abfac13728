package cache_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/clubhub/internal/app/system/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func TestGet_Miss_NeverSet(t *testing.T) {
	c := cache.New()
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss for unset key")
	}
}

func TestGet_Expiry_FakeClock(t *testing.T) {
	clk := &fakeClock{now: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := cache.NewWithClock(clk.Now)

	c.Set("k", "v", 100*time.Millisecond)

	v, ok := c.Get("k")
	if !ok || v != "v" {
		t.Fatalf("immediate Get: got (%v, %v), want (v, true)", v, ok)
	}

	clk.Advance(100 * time.Millisecond)
	if _, ok := c.Get("k"); !ok {
		t.Error("entry exactly at TTL should still hit")
	}

	clk.Advance(50 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after TTL elapsed")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be evicted on Get, Len = %d", c.Len())
	}

	// A fresh Set is required to hit again.
	c.Set("k", "v2", 100*time.Millisecond)
	if v, ok := c.Get("k"); !ok || v != "v2" {
		t.Errorf("after re-Set: got (%v, %v)", v, ok)
	}
}

func TestGet_Expiry_WallClock(t *testing.T) {
	c := cache.New()
	c.Set("k", 42, 100*time.Millisecond)

	if v, ok := c.Get("k"); !ok || v != 42 {
		t.Fatalf("immediate Get: got (%v, %v)", v, ok)
	}

	time.Sleep(150 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after 150ms with 100ms TTL")
	}
}

func TestNoBackgroundSweep(t *testing.T) {
	clk := &fakeClock{now: time.Now()}
	c := cache.NewWithClock(clk.Now)
	c.Set("a", 1, time.Millisecond)
	clk.Advance(time.Hour)

	// Nothing has called Get, so the stale entry is still held.
	if c.Len() != 1 {
		t.Errorf("Len: got %d, want 1", c.Len())
	}
}

func TestSet_NonPositiveTTL(t *testing.T) {
	c := cache.New()
	c.Set("k", "v", 0)
	if _, ok := c.Get("k"); ok {
		t.Error("zero TTL should not be stored")
	}
}

func TestDeletePrefix(t *testing.T) {
	c := cache.New()
	c.Set("events:list", 1, time.Minute)
	c.Set("events:list:10", 2, time.Minute)
	c.Set("projects:list", 3, time.Minute)

	c.DeletePrefix("events:")

	if _, ok := c.Get("events:list"); ok {
		t.Error("events:list should be gone")
	}
	if _, ok := c.Get("events:list:10"); ok {
		t.Error("events:list:10 should be gone")
	}
	if _, ok := c.Get("projects:list"); !ok {
		t.Error("projects:list should remain")
	}
}

func TestGetAs(t *testing.T) {
	c := cache.New()
	c.Set("n", []string{"a"}, time.Minute)

	got, ok := cache.GetAs[[]string](c, "n")
	if !ok || len(got) != 1 {
		t.Errorf("GetAs: got (%v, %v)", got, ok)
	}
	if _, ok := cache.GetAs[int](c, "n"); ok {
		t.Error("GetAs with wrong type should miss")
	}
	if _, ok := cache.GetAs[int](nil, "n"); ok {
		t.Error("GetAs on nil cache should miss")
	}
}

func TestConcurrentAccess(t *testing.T) {
	c := cache.New()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set("k", i, time.Minute)
			c.Get("k")
			c.DeletePrefix("x")
		}(i)
	}
	wg.Wait()
	if _, ok := c.Get("k"); !ok {
		t.Error("expected a value after concurrent sets")
	}
}

func TestRemember(t *testing.T) {
	c := cache.New()
	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"x"}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := cache.Remember(c, "list", time.Minute, load)
		if err != nil || len(v) != 1 {
			t.Fatalf("Remember: got (%v, %v)", v, err)
		}
	}
	if calls != 1 {
		t.Errorf("load called %d times, want 1", calls)
	}

	c.Delete("list")
	_, _ = cache.Remember(c, "list", time.Minute, load)
	if calls != 2 {
		t.Errorf("after Delete load should run again, calls=%d", calls)
	}
}

func TestRemember_ErrorNotCached(t *testing.T) {
	c := cache.New()
	boom := errors.New("boom")
	if _, err := cache.Remember(c, "k", time.Minute, func() (int, error) { return 0, boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if _, ok := c.Get("k"); ok {
		t.Error("failed load must not be cached")
	}
	v, err := cache.Remember[int](nil, "k", time.Minute, func() (int, error) { return 7, nil })
	if err != nil || v != 7 {
		t.Errorf("nil cache: got (%v, %v)", v, err)
	}
}
