// Package cache provides pluggable caching for generated image bytes.
//
// Generating an image through the backend is slow and billable, so the
// resolver caches downloaded bytes keyed by a hash of the model, prompt,
// and target dimensions. Re-running the same brief reuses cached images
// instead of re-billing the backend.
//
// Three backends are provided:
//   - [FileCache]: directory-backed storage for CLI runs (the default)
//   - [RedisCache]: redis-backed storage for shared or long-lived deployments
//   - [NullCache]: disables caching entirely
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// Cache stores opaque byte values with per-entry expiration.
//
// Implementations must be safe for sequential use by a single goroutine;
// the file backend additionally tolerates concurrent processes sharing a
// directory because entries are written as whole files.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of 0 means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// GenerationKey builds the cache key for a generated image. Two requests
// with the same model, prompt, and dimensions resolve to the same key.
func GenerationKey(model, prompt string, width, height int) string {
	payload := fmt.Sprintf("%s\x00%s\x00%dx%d", model, prompt, width, height)
	return "gen:" + Hash([]byte(payload))
}
