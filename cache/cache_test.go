package cache

import (
	"fmt"
	"sync"
	"testing"
)

func TestCache_GetSet(t *testing.T) {
	c := New[string, int](10)

	if _, ok := c.Get("missing"); ok {
		t.Error("Get on empty cache returned ok = true")
	}

	c.Set("a", 1)
	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Errorf("Get(a) = (%d, %v), want (1, true)", got, ok)
	}

	// Overwrite.
	c.Set("a", 2)
	got, _ = c.Get("a")
	if got != 2 {
		t.Errorf("Get(a) after overwrite = %d, want 2", got)
	}
}

func TestCache_GetOrCreate(t *testing.T) {
	c := New[string, *int](10)

	calls := 0
	create := func() *int {
		calls++
		v := 42
		return &v
	}

	first := c.GetOrCreate("k", create)
	second := c.GetOrCreate("k", create)

	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	if first != second {
		t.Error("GetOrCreate returned different pointers for the same key")
	}
}

func TestCache_Eviction(t *testing.T) {
	c := New[int, int](4)

	for i := 0; i < 8; i++ {
		c.Set(i, i)
	}

	if c.Len() > 4 {
		t.Errorf("Len() = %d after eviction, want <= 4", c.Len())
	}

	// Most recent entry must survive.
	if _, ok := c.Get(7); !ok {
		t.Error("most recently inserted entry was evicted")
	}
}

func TestCache_EvictionKeepsRecentlyUsed(t *testing.T) {
	c := New[int, int](4)

	c.Set(0, 0)
	c.Set(1, 1)
	c.Set(2, 2)
	c.Set(3, 3)

	// Touch entry 0 so it becomes the most recently used.
	c.Get(0)

	c.Set(4, 4) // Triggers eviction of the oldest entries.

	if _, ok := c.Get(0); !ok {
		t.Error("recently used entry was evicted")
	}
}

func TestCache_Unlimited(t *testing.T) {
	c := New[int, int](0)

	for i := 0; i < 1000; i++ {
		c.Set(i, i)
	}
	if c.Len() != 1000 {
		t.Errorf("Len() = %d, want 1000 (softLimit 0 means unlimited)", c.Len())
	}
}

func TestCache_DeleteClear(t *testing.T) {
	c := New[string, int](10)
	c.Set("a", 1)
	c.Set("b", 2)

	if !c.Delete("a") {
		t.Error("Delete(a) = false, want true")
	}
	if c.Delete("a") {
		t.Error("second Delete(a) = true, want false")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestCache_Concurrent(t *testing.T) {
	c := New[string, int](64)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("k%d", j%16)
				c.Set(key, n)
				c.Get(key)
				c.GetOrCreate(key, func() int { return n })
			}
		}(i)
	}
	wg.Wait()
}
