package cache

import (
	"fmt"
	"testing"

	"tsdocs/internal/core/errors"
)

func TestBounded_GetSet(t *testing.T) {
	c, err := New[string, int](3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Empty cache miss
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected miss on empty cache")
	}

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	if c.Len() != 3 {
		t.Fatalf("expected len 3, got %d", c.Len())
	}

	for k, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		v, ok := c.Get(k)
		if !ok {
			t.Fatalf("expected hit for %q", k)
		}
		if v != want {
			t.Fatalf("key %q: want %d got %d", k, want, v)
		}
	}
}

func TestBounded_EvictLRU(t *testing.T) {
	// Capacity 3: inserting a,b,c,d with no intervening Get evicts "a".
	c, _ := New[string, int](3)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.Set("d", 4)

	if c.Len() != 3 {
		t.Fatalf("expected len 3, got %d", c.Len())
	}
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected 'a' to be evicted")
	}
	if _, ok := c.Get("d"); !ok {
		t.Fatal("expected 'd' to be present")
	}
}

func TestBounded_GetPromotes(t *testing.T) {
	c, _ := New[string, int](2)

	c.Set("a", 1)
	c.Set("b", 2)

	// Access "a" so that "b" becomes the LRU.
	c.Get("a")

	c.Set("c", 3)
	if _, ok := c.Get("b"); ok {
		t.Fatal("expected 'b' to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected 'a' to still be present")
	}
}

func TestBounded_UpdateExistingKeepsSize(t *testing.T) {
	c, _ := New[string, int](3)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	c.Set("a", 99)

	if c.Len() != 3 {
		t.Fatalf("expected len 3 after update, got %d", c.Len())
	}
	v, ok := c.Get("a")
	if !ok || v != 99 {
		t.Fatalf("expected updated value 99, got %d (ok=%v)", v, ok)
	}
}

func TestBounded_SizeNeverExceedsMax(t *testing.T) {
	c, _ := New[string, int](5)
	for i := 0; i < 100; i++ {
		c.Set(fmt.Sprintf("key-%d", i), i)
		if c.Len() > c.Cap() {
			t.Fatalf("len %d exceeds capacity %d", c.Len(), c.Cap())
		}
	}
}

func TestBounded_TrimmedKeysCollide(t *testing.T) {
	c, _ := New[string, int](5)

	c.Set("  string  ", 1)
	if v, ok := c.Get("string"); !ok || v != 1 {
		t.Fatalf("expected trimmed key hit, got %d (ok=%v)", v, ok)
	}

	c.Set("string", 2)
	if c.Len() != 1 {
		t.Fatalf("expected whitespace variants to share one slot, len=%d", c.Len())
	}
}

func TestBounded_Stats(t *testing.T) {
	c, _ := New[string, int](2)

	// Zero requests: hit rate must be 0, not NaN.
	stats := c.GetStats()
	if stats.HitRate != 0 {
		t.Fatalf("expected hit rate 0 with no requests, got %f", stats.HitRate)
	}
	if !stats.Enabled {
		t.Fatal("expected enabled cache")
	}

	c.Set("a", 1)
	c.Get("a") // hit
	c.Get("b") // miss
	c.Get("a") // hit

	stats = c.GetStats()
	if stats.HitCount != 2 || stats.MissCount != 1 {
		t.Fatalf("expected 2 hits / 1 miss, got %d / %d", stats.HitCount, stats.MissCount)
	}
	want := 2.0 / 3.0
	if stats.HitRate < want-1e-9 || stats.HitRate > want+1e-9 {
		t.Fatalf("expected hit rate %f, got %f", want, stats.HitRate)
	}
	if stats.Size != 1 || stats.MaxSize != 2 {
		t.Fatalf("expected size 1 / max 2, got %d / %d", stats.Size, stats.MaxSize)
	}
}

func TestBounded_Disabled(t *testing.T) {
	c := NewDisabled[string, int]()

	c.Set("a", 1)
	if _, ok := c.Get("a"); ok {
		t.Fatal("disabled cache must always miss")
	}

	stats := c.GetStats()
	if stats.Enabled {
		t.Fatal("expected Enabled=false")
	}
	if stats.Size != 0 {
		t.Fatalf("expected size 0, got %d", stats.Size)
	}
	if stats.MissCount != 1 {
		t.Fatalf("expected 1 miss, got %d", stats.MissCount)
	}
}

func TestBounded_Clear(t *testing.T) {
	c, _ := New[string, int](5)
	c.Set("a", 1)
	c.Get("a")
	c.Get("b")

	c.Clear()

	if c.Len() != 0 {
		t.Fatalf("expected len 0 after clear, got %d", c.Len())
	}
	stats := c.GetStats()
	if stats.HitCount != 0 || stats.MissCount != 0 {
		t.Fatalf("expected counters reset, got %d / %d", stats.HitCount, stats.MissCount)
	}
}

func TestBounded_NonPositiveSizeIsMisuse(t *testing.T) {
	for _, size := range []int{0, -1, -100} {
		_, err := New[string, int](size)
		if err == nil {
			t.Fatalf("size %d: expected error", size)
		}
		if !errors.IsCode(err, errors.CodeValidationError) {
			t.Fatalf("size %d: expected validation error, got %v", size, err)
		}
	}
}
