package vrf

import (
	"bytes"
	"crypto/rand"
	"testing"

	"gitlab.com/yawning/edwards25519-core.git/ed25519core"
)

func randomSeed(t *testing.T) []byte {
	t.Helper()
	seed := make([]byte, ed25519core.SeedSize)
	if _, err := rand.Read(seed); err != nil {
		t.Fatal(err)
	}
	return seed
}

func TestProveVerifyRoundTrip(t *testing.T) {
	seed := randomSeed(t)
	pub, _, err := ed25519core.GenerateKey(seed)
	if err != nil {
		t.Fatal(err)
	}

	alpha := []byte("test input")
	proof, err := Prove(seed, alpha)
	if err != nil {
		t.Fatal(err)
	}
	if len(proof) != ProofSize {
		t.Fatalf("proof length = %d, want %d", len(proof), ProofSize)
	}

	ok, output := Verify(pub, proof, alpha)
	if !ok {
		t.Fatal("Verify rejected a genuine proof")
	}
	if len(output) != OutputSize {
		t.Fatalf("output length = %d, want %d", len(output), OutputSize)
	}

	proofOutput, err := ProofToHash(proof)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(output, proofOutput) {
		t.Fatal("Verify's output disagrees with ProofToHash")
	}
}

func TestVerifyRejectsWrongAlpha(t *testing.T) {
	seed := randomSeed(t)
	pub, _, err := ed25519core.GenerateKey(seed)
	if err != nil {
		t.Fatal(err)
	}

	proof, err := Prove(seed, []byte("alpha one"))
	if err != nil {
		t.Fatal(err)
	}

	if ok, _ := Verify(pub, proof, []byte("alpha two")); ok {
		t.Fatal("Verify accepted a proof against the wrong input")
	}
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	seedA := randomSeed(t)
	seedB := randomSeed(t)
	_, _, err := ed25519core.GenerateKey(seedA)
	if err != nil {
		t.Fatal(err)
	}
	pubB, _, err := ed25519core.GenerateKey(seedB)
	if err != nil {
		t.Fatal(err)
	}

	alpha := []byte("shared input")
	proof, err := Prove(seedA, alpha)
	if err != nil {
		t.Fatal(err)
	}

	if ok, _ := Verify(pubB, proof, alpha); ok {
		t.Fatal("Verify accepted a proof under the wrong public key")
	}
}

func TestDeterministicProof(t *testing.T) {
	seed := randomSeed(t)
	alpha := []byte("deterministic")

	p1, err := Prove(seed, alpha)
	if err != nil {
		t.Fatal(err)
	}
	p2, err := Prove(seed, alpha)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(p1, p2) {
		t.Fatal("Prove is not deterministic for the same seed and input")
	}
}

func TestVerifyRejectsTruncatedProof(t *testing.T) {
	seed := randomSeed(t)
	pub, _, err := ed25519core.GenerateKey(seed)
	if err != nil {
		t.Fatal(err)
	}
	proof, err := Prove(seed, []byte("x"))
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := Verify(pub, proof[:ProofSize-1], []byte("x")); ok {
		t.Fatal("Verify accepted a truncated proof")
	}
}
