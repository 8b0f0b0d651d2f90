package kv

import (
	"context"
	"testing"
)

type doc struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestReadReturnsFallbackWhenMissing(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	got := Read(context.Background(), store, "absent", doc{Name: "default"})
	if got.Name != "default" {
		t.Fatalf("expected fallback, got %+v", got)
	}
}

func TestWriteThenReadRoundTrips(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if err := Write(ctx, store, "doc", doc{Name: "cart", Count: 3}); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}

	got := Read(ctx, store, "doc", doc{})
	if got.Name != "cart" || got.Count != 3 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestReadReturnsFallbackOnCorruptValue(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if err := store.Set(ctx, "doc", []byte("{not json")); err != nil {
		t.Fatalf("unexpected set error: %v", err)
	}

	got := Read(ctx, store, "doc", doc{Name: "fallback"})
	if got.Name != "fallback" {
		t.Fatalf("expected fallback on corrupt value, got %+v", got)
	}
}

func TestReadReturnsFallbackOnNilStore(t *testing.T) {
	t.Parallel()

	got := Read(context.Background(), nil, "doc", doc{Name: "fallback"})
	if got.Name != "fallback" {
		t.Fatalf("expected fallback on nil store, got %+v", got)
	}
}

func TestDeleteThenReadReturnsFallback(t *testing.T) {
	t.Parallel()

	store := NewMemory()
	ctx := context.Background()

	if err := Write(ctx, store, "doc", doc{Name: "cart"}); err != nil {
		t.Fatalf("unexpected write error: %v", err)
	}
	if err := store.Delete(ctx, "doc"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}

	got := Read(ctx, store, "doc", doc{Name: "fallback"})
	if got.Name != "fallback" {
		t.Fatalf("expected fallback after delete, got %+v", got)
	}
}
