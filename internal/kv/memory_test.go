package kv

import (
	"context"
	"testing"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, ok, err := s.Get(ctx, "bills"); err != nil || ok {
		t.Fatalf("absent key: got ok=%v err=%v", ok, err)
	}

	if err := s.Set(ctx, "bills", `[]`); err != nil {
		t.Fatalf("set: %v", err)
	}
	v, ok, err := s.Get(ctx, "bills")
	if err != nil || !ok || v != `[]` {
		t.Fatalf("get after set: v=%q ok=%v err=%v", v, ok, err)
	}

	if err := s.Set(ctx, "bills", `[{"id":"1"}]`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, _, _ = s.Get(ctx, "bills")
	if v != `[{"id":"1"}]` {
		t.Fatalf("overwrite kept old value: %q", v)
	}

	if err := s.Delete(ctx, "bills"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "bills"); ok {
		t.Fatal("key still present after delete")
	}

	// Deleting an absent key is a no-op.
	if err := s.Delete(ctx, "bills"); err != nil {
		t.Fatalf("delete absent: %v", err)
	}
}
