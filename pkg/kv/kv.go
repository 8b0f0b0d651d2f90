// Package kv provides a durable, synchronous key-value store for small
// JSON documents. Backends differ in where bytes live; callers interact
// through Read/Write, which never surface storage faults on the read path.
package kv

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("kv: key not found")

// Store is the raw byte-level contract every backend implements.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Read loads and deserializes the JSON value stored under key. On absence,
// deserialization failure, or any storage-layer error it returns fallback;
// it never returns an error.
func Read[T any](ctx context.Context, s Store, key string, fallback T) T {
	if s == nil {
		return fallback
	}
	raw, err := s.Get(ctx, key)
	if err != nil {
		return fallback
	}
	var value T
	if err := json.Unmarshal(raw, &value); err != nil {
		return fallback
	}
	return value
}

// Write serializes value to JSON and stores it under key. A subsequent
// Read in the same or a new session observes the written value.
func Write[T any](ctx context.Context, s Store, key string, value T) error {
	if s == nil {
		return errors.New("kv: store not initialized")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}
