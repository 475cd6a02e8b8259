package field

import (
	"crypto/rand"
	"testing"
)

func mustRandomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		t.Fatal(err)
	}
	return b
}

func TestZeroOne(t *testing.T) {
	var z, o Element
	z.Zero()
	o.One()
	if z.Equal(&o) == 1 {
		t.Fatal("0 == 1")
	}
	if z.IsZero() != 1 {
		t.Fatal("Zero() is not IsZero()")
	}
}

func TestAddSubRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		a, _ := new(Element).SetBytes(mustRandomBytes(t, 32))
		b, _ := new(Element).SetBytes(mustRandomBytes(t, 32))

		sum := new(Element).Add(a, b)
		diff := new(Element).Subtract(sum, b)
		if diff.Equal(a) != 1 {
			t.Fatalf("(a+b)-b != a")
		}
	}
}

func TestInvert(t *testing.T) {
	a, _ := new(Element).SetBytes(mustRandomBytes(t, 32))
	if a.IsZero() == 1 {
		a.One()
	}
	inv := new(Element).Invert(a)
	prod := new(Element).Multiply(a, inv)
	one := new(Element).One()
	if prod.Equal(one) != 1 {
		t.Fatalf("a * (1/a) != 1")
	}
}

func TestInvertZero(t *testing.T) {
	var zero Element
	zero.Zero()
	inv := new(Element).Invert(&zero)
	if inv.IsZero() != 1 {
		t.Fatal("1/0 should be defined as 0")
	}
}

func TestBytesRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		b := mustRandomBytes(t, 32)
		b[31] &= 127
		e, err := new(Element).SetBytes(b)
		if err != nil {
			t.Fatal(err)
		}
		got := e.Bytes()
		e2, _ := new(Element).SetBytes(got)
		if e.Equal(e2) != 1 {
			t.Fatal("re-decoding canonical bytes changed the value")
		}
	}
}

func TestSqrtRatioSquare(t *testing.T) {
	v, _ := new(Element).SetBytes(mustRandomBytes(t, 32))
	if v.IsZero() == 1 {
		v.One()
	}
	x, _ := new(Element).SetBytes(mustRandomBytes(t, 32))
	u := new(Element).Multiply(x, x)
	u.Multiply(u, v) // u/v = x^2, always a square

	wasSquare, r := new(Element).SqrtRatio(u, v)
	if !wasSquare {
		t.Fatal("u/v should be square")
	}
	check := new(Element).Square(r)
	check.Multiply(check, v)
	if check.Equal(u) != 1 {
		t.Fatal("r^2 * v != u")
	}
}

func TestSelect(t *testing.T) {
	a := new(Element).One()
	b := new(Element).Zero()
	if new(Element).Select(a, b, 1).Equal(a) != 1 {
		t.Fatal("Select(a,b,1) != a")
	}
	if new(Element).Select(a, b, 0).Equal(b) != 1 {
		t.Fatal("Select(a,b,0) != b")
	}
}
