// Package utils collects the handful of top-level helper operations the
// specification names directly: generating a random private key seed, and
// explicitly (re)building a base-point scalar-multiplication table at a
// given window width.
package utils

import (
	"crypto/rand"

	"gitlab.com/yawning/edwards25519-core.git/ed25519core"
	"gitlab.com/yawning/edwards25519-core.git/edwards25519"
)

// RandomPrivateKey returns a fresh, uniformly random Ed25519 seed suitable
// for ed25519core.GenerateKey.
func RandomPrivateKey() ([]byte, error) {
	seed := make([]byte, ed25519core.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	return seed, nil
}

// Precompute explicitly (re)builds and caches the windowed base-point table
// for base at width w, replacing whatever table was cached for that
// (point, width) pair.
func Precompute(w int, base *edwards25519.ExtendedPoint) *edwards25519.PrecomputeTable {
	return edwards25519.Precompute(w, base)
}
