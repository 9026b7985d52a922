package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryGetSetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(time.Minute)

	if _, ok := c.Get(ctx, "missing"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Set(ctx, "k", []byte("v"))

	got, ok := c.Get(ctx, "k")

	if !ok || string(got) != "v" {
		t.Fatalf("Get = %q, %v; want v, true", got, ok)
	}

	c.Delete(ctx, "k")

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("deleted key should miss")
	}
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemory(10 * time.Millisecond)

	c.Set(ctx, "k", []byte("v"))

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("entry should expire after its TTL")
	}
}
