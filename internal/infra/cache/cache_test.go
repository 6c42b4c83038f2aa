package cache_test

import (
	"testing"
	"time"

	"github.com/penquin501/supplychain-prescreen-sub000/internal/infra/cache"
)

func TestCache_SetGet(t *testing.T) {
	c := cache.New[string](time.Minute)

	c.Set("k", "v")
	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected hit")
	}
	if got != "v" {
		t.Errorf("expected 'v', got '%s'", got)
	}
}

func TestCache_Miss(t *testing.T) {
	c := cache.New[int](time.Minute)

	if _, ok := c.Get("absent"); ok {
		t.Error("expected miss for absent key")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := cache.New[string](20 * time.Millisecond)

	c.Set("k", "v")
	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expected entry to expire")
	}
}

func TestCache_Delete(t *testing.T) {
	c := cache.New[string](time.Minute)

	c.Set("k", "v")
	c.Delete("k")

	if _, ok := c.Get("k"); ok {
		t.Error("expected miss after delete")
	}
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d entries", c.Len())
	}
}
