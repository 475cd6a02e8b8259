package h2c

import (
	"crypto"
	"testing"

	"golang.org/x/crypto/sha3"
)

func TestExpandMessageXMDLength(t *testing.T) {
	out := make([]byte, 96)
	if err := ExpandMessageXMD(out, crypto.SHA512, []byte("test-dst"), []byte("hello")); err != nil {
		t.Fatal(err)
	}
	allZero := true
	for _, b := range out {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatal("ExpandMessageXMD produced all-zero output")
	}
}

func TestExpandMessageXMDDeterministic(t *testing.T) {
	out1 := make([]byte, 48)
	out2 := make([]byte, 48)
	dst := []byte("determinism-check")
	msg := []byte("some message")
	if err := ExpandMessageXMD(out1, crypto.SHA512, dst, msg); err != nil {
		t.Fatal(err)
	}
	if err := ExpandMessageXMD(out2, crypto.SHA512, dst, msg); err != nil {
		t.Fatal(err)
	}
	if string(out1) != string(out2) {
		t.Fatal("ExpandMessageXMD is not deterministic")
	}
}

func TestExpandMessageXMDSensitiveToDST(t *testing.T) {
	msg := []byte("some message")
	out1 := make([]byte, 48)
	out2 := make([]byte, 48)
	if err := ExpandMessageXMD(out1, crypto.SHA512, []byte("dst-a"), msg); err != nil {
		t.Fatal(err)
	}
	if err := ExpandMessageXMD(out2, crypto.SHA512, []byte("dst-b"), msg); err != nil {
		t.Fatal(err)
	}
	if string(out1) == string(out2) {
		t.Fatal("changing the DST did not change the expanded output")
	}
}

func TestExpandMessageXOFLength(t *testing.T) {
	out := make([]byte, 96)
	if err := ExpandMessageXOF(out, sha3.NewShake256(), []byte("test-dst"), []byte("hello")); err != nil {
		t.Fatal(err)
	}
	allZero := true
	for _, b := range out {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatal("ExpandMessageXOF produced all-zero output")
	}
}

func TestEdwards25519XMDRandomOracleOnCurve(t *testing.T) {
	p, err := Edwards25519_XMD_SHA512_ELL2_RO([]byte("edwards25519_XMD:SHA-512_ELL2_RO_test"), []byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if !p.ToAffine().IsOnCurve() {
		t.Fatal("hashed point does not satisfy the curve equation")
	}
}

func TestEdwards25519XMDDeterministic(t *testing.T) {
	dst := []byte("edwards25519_XMD:SHA-512_ELL2_RO_test")
	p1, err := Edwards25519_XMD_SHA512_ELL2_RO(dst, []byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	p2, err := Edwards25519_XMD_SHA512_ELL2_RO(dst, []byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if !p1.Equal(p2) {
		t.Fatal("hashing the same message twice produced different points")
	}
}

func TestEdwards25519XOFOnCurve(t *testing.T) {
	p, err := Edwards25519_XOF_SHAKE256_ELL2_RO([]byte("edwards25519_XOF:SHAKE256_ELL2_RO_test"), []byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if !p.ToAffine().IsOnCurve() {
		t.Fatal("hashed point does not satisfy the curve equation")
	}
}

func TestEncodeToCurveOnCurve(t *testing.T) {
	p, err := Edwards25519_XMD_SHA512_ELL2_NU([]byte("edwards25519_XMD:SHA-512_ELL2_NU_test"), []byte("abc"))
	if err != nil {
		t.Fatal(err)
	}
	if !p.ToAffine().IsOnCurve() {
		t.Fatal("encoded point does not satisfy the curve equation")
	}
}
