package utils

import (
	"testing"

	"gitlab.com/yawning/edwards25519-core.git/ed25519core"
	"gitlab.com/yawning/edwards25519-core.git/edwards25519"
)

func TestRandomPrivateKeyLength(t *testing.T) {
	seed, err := RandomPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	if len(seed) != ed25519core.SeedSize {
		t.Fatalf("got %d bytes, want %d", len(seed), ed25519core.SeedSize)
	}
}

func TestRandomPrivateKeyUsableForSigning(t *testing.T) {
	seed, err := RandomPrivateKey()
	if err != nil {
		t.Fatal(err)
	}
	pub, priv, err := ed25519core.GenerateKey(seed)
	if err != nil {
		t.Fatal(err)
	}
	sig, err := ed25519core.Sign(priv, []byte("hello"))
	if err != nil {
		t.Fatal(err)
	}
	if !ed25519core.Verify(pub, []byte("hello"), sig) {
		t.Fatal("signature from a random private key failed to verify")
	}
}

// TestPrecomputeDoesNotDisturbOtherWindowWidths exercises E6's premise:
// explicitly building the W=8 table for the base point must not change the
// public keys GenerateKey derives through the (separately cached) W=4
// table.
func TestPrecomputeDoesNotDisturbOtherWindowWidths(t *testing.T) {
	for i := 0; i < 64; i++ {
		seed, err := RandomPrivateKey()
		if err != nil {
			t.Fatal(err)
		}

		pubBefore, _, err := ed25519core.GenerateKey(seed)
		if err != nil {
			t.Fatal(err)
		}

		Precompute(8, edwards25519.B)

		pubAfter, _, err := ed25519core.GenerateKey(seed)
		if err != nil {
			t.Fatal(err)
		}

		if string(pubBefore) != string(pubAfter) {
			t.Fatalf("round %d: rebuilding the W=8 table changed the W=4-derived public key", i)
		}
	}
}
