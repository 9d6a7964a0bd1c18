// Package hash computes content checksums for files in a generated project.
//
// After an assembly the engine reports the final checksum of every path it
// materialized, so a caller can tell which layer's copy (or which patch)
// ended up on disk.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Hasher provides an abstraction for file hashing operations.
type Hasher interface {
	// HashFile computes the checksum of the file at the given path.
	HashFile(path string) (string, error)
}

// SHA256Hasher implements Hasher using SHA-256.
type SHA256Hasher struct{}

// NewSHA256Hasher creates a new SHA256Hasher.
func NewSHA256Hasher() *SHA256Hasher {
	return &SHA256Hasher{}
}

// HashFile returns the hex SHA-256 of the file's contents.
func (h *SHA256Hasher) HashFile(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	sum := sha256.New()
	if _, err := io.Copy(sum, file); err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return hex.EncodeToString(sum.Sum(nil)), nil
}

// Checksums hashes each path once, in order, keyed by the given key.
// Later duplicates of a key are skipped since the file on disk is the same.
func Checksums(h Hasher, keys, paths []string) (map[string]string, error) {
	if len(keys) != len(paths) {
		return nil, fmt.Errorf("checksums: %d keys for %d paths", len(keys), len(paths))
	}

	sums := make(map[string]string, len(paths))
	for i, path := range paths {
		if _, done := sums[keys[i]]; done {
			continue
		}
		sum, err := h.HashFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to hash %s: %w", keys[i], err)
		}
		sums[keys[i]] = sum
	}
	return sums, nil
}

// FakeHasher implements Hasher with deterministic hashes for testing.
type FakeHasher struct {
	hashes map[string]string
	calls  int
}

// NewFakeHasher creates a new FakeHasher.
func NewFakeHasher() *FakeHasher {
	return &FakeHasher{hashes: make(map[string]string)}
}

// SetHash sets the hash for a specific path.
func (h *FakeHasher) SetHash(path, hash string) {
	h.hashes[path] = hash
}

// Calls returns how many times HashFile ran.
func (h *FakeHasher) Calls() int {
	return h.calls
}

// HashFile returns the predetermined hash for the given path.
func (h *FakeHasher) HashFile(path string) (string, error) {
	h.calls++
	if hash, ok := h.hashes[path]; ok {
		return hash, nil
	}
	return "fakehash", nil
}
