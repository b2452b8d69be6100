package cache

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	// Miss before Set
	if _, hit, _ := c.Get(ctx, "svg:abc"); hit {
		t.Error("Get before Set should miss")
	}

	if err := c.Set(ctx, "svg:abc", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "svg:abc")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if !hit || !bytes.Equal(data, []byte("<svg/>")) {
		t.Errorf("Get = %q, hit=%v", data, hit)
	}
	if c.Len() != 1 {
		t.Errorf("Len = %d, want 1", c.Len())
	}

	// Overwrite
	c.Set(ctx, "svg:abc", []byte("v2"), 0)
	data, _, _ = c.Get(ctx, "svg:abc")
	if string(data) != "v2" {
		t.Errorf("after overwrite Get = %q, want v2", data)
	}

	// Delete
	if err := c.Delete(ctx, "svg:abc"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "svg:abc"); hit {
		t.Error("Get after Delete should miss")
	}
}

func TestMemoryCacheTTL(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	defer c.Close()

	c.Set(ctx, "short", []byte("x"), time.Millisecond)
	c.Set(ctx, "forever", []byte("y"), 0)

	time.Sleep(5 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired entry should miss")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("zero-TTL entry should never expire")
	}
}

func TestHash(t *testing.T) {
	// Determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// SHA-256 produces 64 hex chars
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestKey(t *testing.T) {
	k1 := Key("svg", "sig-a")
	k2 := Key("svg", "sig-a")
	if k1 != k2 {
		t.Error("Key should be deterministic")
	}
	if !strings.HasPrefix(k1, "svg:") {
		t.Errorf("Key = %s, want svg: prefix", k1)
	}
	if k1 == Key("svg", "sig-b") {
		t.Error("Different parts should produce different keys")
	}
	if k1 == Key("dot", "sig-a") {
		t.Error("Different prefixes should produce different keys")
	}
}
