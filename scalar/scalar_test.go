package scalar

import (
	"crypto/rand"
	"testing"
)

func TestAddSubRoundTrip(t *testing.T) {
	var buf [64]byte
	for i := 0; i < 64; i++ {
		rand.Read(buf[:])
		a := new(Scalar).FromUniformBytes(buf[:])
		rand.Read(buf[:])
		b := new(Scalar).FromUniformBytes(buf[:])

		sum := new(Scalar).Add(a, b)
		diff := new(Scalar).Subtract(sum, b)
		if diff.Equal(a) != 1 {
			t.Fatal("(a+b)-b != a")
		}
	}
}

func TestCanonicalRejectsOutOfRange(t *testing.T) {
	var tooBig [32]byte
	for i := range tooBig {
		tooBig[i] = 0xff
	}
	if _, err := new(Scalar).SetCanonicalBytes(tooBig[:]); err != ErrNonCanonical {
		t.Fatalf("expected ErrNonCanonical, got %v", err)
	}
}

func TestZeroBytes(t *testing.T) {
	z := new(Scalar).Zero()
	want := make([]byte, 32)
	if string(z.Bytes()) != string(want) {
		t.Fatal("Zero().Bytes() != 32 zero bytes")
	}
}
