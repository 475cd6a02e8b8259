package edwards25519

import (
	"crypto/rand"
	"testing"

	"gitlab.com/yawning/edwards25519-core.git/scalar"
)

func randomScalar(t *testing.T) *scalar.Scalar {
	t.Helper()
	var buf [64]byte
	if _, err := rand.Read(buf[:]); err != nil {
		t.Fatal(err)
	}
	return new(scalar.Scalar).FromUniformBytes(buf[:])
}

// TestMultiplyMatchesMultiplyUnsafe exercises invariant 5 of the core: for
// any scalar k, the windowed base-point table and the variable-base ladder
// must agree.
func TestMultiplyMatchesMultiplyUnsafe(t *testing.T) {
	for i := 0; i < 16; i++ {
		k := randomScalar(t)

		viaTable := new(ExtendedPoint).Multiply(k, B)
		viaLadder := new(ExtendedPoint).MultiplyUnsafe(k, B)

		if !viaTable.Equal(viaLadder) {
			t.Fatalf("Multiply(k,B) != MultiplyUnsafe(k,B) for k=%x", k.Bytes())
		}
	}
}

func TestMultiplyWindowWidthsAgree(t *testing.T) {
	for i := 0; i < 8; i++ {
		k := randomScalar(t)

		w4 := new(ExtendedPoint).MultiplyWithWindow(k, B, 4)
		w8 := new(ExtendedPoint).MultiplyWithWindow(k, B, 8)

		if !w4.Equal(w8) {
			t.Fatalf("W=4 and W=8 tables disagree for k=%x", k.Bytes())
		}
	}
}

func TestPrecomputeReplacesCacheAtomically(t *testing.T) {
	k := randomScalar(t)
	before := new(ExtendedPoint).Multiply(k, B)
	Precompute(4, B)
	after := new(ExtendedPoint).Multiply(k, B)
	if !before.Equal(after) {
		t.Fatal("explicit Precompute changed the computed result")
	}
}
