package cache_test

import (
	"testing"
	"time"

	"adsync/internal/cache"
)

func TestSetThenGetReturnsValue(t *testing.T) {
	t.Parallel()

	c := cache.New(time.Minute, nil)
	c.Set("campaigns:123", []string{"a", "b"})

	got, ok := c.Get("campaigns:123")
	if !ok {
		t.Fatal("expected hit for fresh entry")
	}
	values, ok := got.([]string)
	if !ok || len(values) != 2 {
		t.Fatalf("unexpected cached value: %#v", got)
	}
}

func TestGetEvictsExpiredEntry(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := cache.New(time.Minute, nil, cache.WithClock(clock))

	c.Set("campaigns:123", "value")
	now = now.Add(61 * time.Second)

	if _, ok := c.Get("campaigns:123"); ok {
		t.Fatal("expected miss after TTL elapsed")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry removed, got %d entries", c.Len())
	}
}

func TestEntryLivesExactlyToItsTTL(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := cache.New(time.Minute, nil, cache.WithClock(clock))

	c.Set("key", "value")
	now = now.Add(time.Minute)

	if _, ok := c.Get("key"); !ok {
		t.Fatal("entry at exactly its TTL should still be live")
	}
}

func TestSetTTLOverridesDefault(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	c := cache.New(time.Minute, nil, cache.WithClock(clock))

	c.SetTTL("discovery:pkg", "assets", 10*time.Second)
	now = now.Add(30 * time.Second)

	if _, ok := c.Get("discovery:pkg"); ok {
		t.Fatal("expected entry with short TTL to expire before default TTL")
	}
}

func TestSetOverwritesExistingEntry(t *testing.T) {
	t.Parallel()

	c := cache.New(time.Minute, nil)
	c.Set("key", "old")
	c.Set("key", "new")

	got, ok := c.Get("key")
	if !ok || got != "new" {
		t.Fatalf("expected overwritten value, got %v (hit=%v)", got, ok)
	}
	if c.Len() != 1 {
		t.Fatalf("expected a single entry, got %d", c.Len())
	}
}

func TestInvalidatePatternRemovesOnlyMatches(t *testing.T) {
	t.Parallel()

	c := cache.New(time.Minute, nil)
	c.Set(cache.AdSetsKey("c1"), "x")
	c.Set(cache.AdSetsKey("c2"), "y")
	c.Set(cache.CampaignsKey("acct"), "z")

	removed := c.Invalidate("adsets:")
	if removed != 2 {
		t.Fatalf("expected 2 removals, got %d", removed)
	}
	if !c.Has(cache.CampaignsKey("acct")) {
		t.Fatal("unrelated entry should survive pattern invalidation")
	}
}

func TestInvalidateEmptyPatternClearsAll(t *testing.T) {
	t.Parallel()

	c := cache.New(time.Minute, nil)
	c.Set("a", 1)
	c.Set("b", 2)

	removed := c.Invalidate("")
	if removed != 2 {
		t.Fatalf("expected 2 removals, got %d", removed)
	}
	if c.Len() != 0 {
		t.Fatalf("expected empty cache, got %d entries", c.Len())
	}
}

func TestEmptyKeyIsIgnored(t *testing.T) {
	t.Parallel()

	c := cache.New(time.Minute, nil)
	c.Set("", "value")

	if c.Len() != 0 {
		t.Fatal("empty keys must not be stored")
	}
}

func TestKeyBuildersAreNamespaced(t *testing.T) {
	t.Parallel()

	keys := []string{
		cache.CampaignsKey("acct"),
		cache.AdSetsKey("camp"),
		cache.InsightsKey("ad", "2026-01-01", "2026-01-07"),
		cache.ImageKey("hash"),
		cache.VideoThumbnailKey("vid"),
		cache.DiscoveryKey("pkg"),
	}
	seen := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate key %q", key)
		}
		seen[key] = struct{}{}
	}
}
