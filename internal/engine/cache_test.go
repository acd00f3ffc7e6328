package engine

import (
	"testing"
	"time"
)

func TestResultCache_HitWithinTTL(t *testing.T) {
	c := newResultCache[string](300 * time.Second)

	base := time.Now()
	c.now = func() time.Time { return base }

	c.put("k", []string{"a", "b"})

	items, ok := c.get("k")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if len(items) != 2 {
		t.Errorf("expected 2 items, got %d", len(items))
	}
}

func TestResultCache_ExpiresAfterTTL(t *testing.T) {
	c := newResultCache[string](300 * time.Second)

	base := time.Now()
	now := base
	c.now = func() time.Time { return now }

	c.put("k", []string{"a"})

	now = base.Add(299 * time.Second)
	if _, ok := c.get("k"); !ok {
		t.Error("entry expired early")
	}

	now = base.Add(301 * time.Second)
	if _, ok := c.get("k"); ok {
		t.Error("entry survived past its TTL")
	}

	// The expired entry was evicted, not just hidden.
	c.mu.RLock()
	_, present := c.entries["k"]
	c.mu.RUnlock()
	if present {
		t.Error("expired entry still resident")
	}
}

func TestResultCache_PutRefreshesEntry(t *testing.T) {
	c := newResultCache[string](100 * time.Second)

	base := time.Now()
	now := base
	c.now = func() time.Time { return now }

	c.put("k", []string{"old"})

	now = base.Add(90 * time.Second)
	c.put("k", []string{"new"})

	// Past the first entry's expiry but within the refreshed one.
	now = base.Add(150 * time.Second)
	items, ok := c.get("k")
	if !ok {
		t.Fatal("refreshed entry should still be live")
	}
	if items[0] != "new" {
		t.Errorf("expected refreshed payload, got %q", items[0])
	}
}

func TestResultCache_MissingKey(t *testing.T) {
	c := newResultCache[string](time.Minute)
	if _, ok := c.get("nope"); ok {
		t.Error("expected miss for unknown key")
	}
}
