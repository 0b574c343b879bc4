package memory

import (
	"context"
	"errors"
	"testing"

	"spendtrack/internal/kv"
)

func TestMemoryStoreGetSet(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, ok, err := s.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("expected absent key, got ok=%v err=%v", ok, err)
	}
	if err := s.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || v != "v2" {
		t.Fatalf("unexpected get: v=%q ok=%v err=%v", v, ok, err)
	}
	if s.Writes() != 2 {
		t.Fatalf("expected 2 writes, got %d", s.Writes())
	}
}

func TestMemoryStoreRejectsBadKeys(t *testing.T) {
	s := New()
	for _, key := range []string{"", "../etc", "a b"} {
		if err := s.Set(context.Background(), key, "x"); !errors.Is(err, kv.ErrInvalidKey) {
			t.Errorf("Set(%q) expected ErrInvalidKey, got %v", key, err)
		}
	}
}

func TestNewSeededCopiesSeed(t *testing.T) {
	seed := map[string]string{"a": "1"}
	s := NewSeeded(seed)
	seed["a"] = "2"
	if v, _, _ := s.Get(context.Background(), "a"); v != "1" {
		t.Fatalf("seed must be copied, got %q", v)
	}
}
