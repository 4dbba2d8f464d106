package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey(t *testing.T) {
	k1 := Key("https://example.com/us/const")
	k2 := Key("https://example.com/us/usc")
	if k1 == k2 {
		t.Error("Expected distinct keys for distinct URLs")
	}
	if !strings.HasPrefix(k1, "doctrina:v1:") {
		t.Errorf("Expected the versioned prefix, got %q", k1)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache(time.Minute)
	if _, found := c.Get("missing"); found {
		t.Error("Expected a miss for an unknown key")
	}
	if err := c.Set("key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, found := c.Get("key"); !found || string(val) != "value" {
		t.Errorf("Expected the stored value, got %q found=%v", val, found)
	}
	if err := c.Delete("key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, found := c.Get("key"); found {
		t.Error("Expected a miss after delete")
	}
}

func TestMemoryCache_DocumentTTLDefault(t *testing.T) {
	// An unconfigured cache keeps documents for the day-long window,
	// so an immediate re-read after a zero-TTL Set still hits.
	c := NewMemoryCache(0)
	key := Key("https://example.com/us/const")
	if err := c.Set(key, []byte("We the People"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, found := c.Get(key); !found || string(val) != "We the People" {
		t.Errorf("Expected the stored document, got %q found=%v", val, found)
	}
}

func TestDiskCache(t *testing.T) {
	dir := t.TempDir()
	c := NewDiskCache(dir, time.Minute)

	if err := c.Set(Key("https://example.com/a"), []byte("document"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if val, found := c.Get(Key("https://example.com/a")); !found || string(val) != "document" {
		t.Errorf("Expected the stored document, got %q found=%v", val, found)
	}

	// An expired entry reads as a miss and is removed.
	if err := c.Set("expired", []byte("old"), -time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, found := c.Get("expired"); found {
		t.Error("Expected a miss for an expired entry")
	}
}

func TestLayeredCache_PromotesDiskHits(t *testing.T) {
	dir := t.TempDir()
	layered := NewLayeredCache(time.Minute, dir, time.Minute)

	// Write through the disk layer only, then read through the
	// layered cache.
	disk := NewDiskCache(dir, time.Minute)
	if err := disk.Set("key", []byte("value"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	if val, found := layered.Get("key"); !found || string(val) != "value" {
		t.Fatalf("Expected the disk value through the layered cache, got %q found=%v", val, found)
	}
	if _, found := layered.memory.Get("key"); !found {
		t.Error("Expected the disk hit promoted to memory")
	}
}
