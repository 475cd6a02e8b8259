// Package h2c implements "Hashing to Elliptic Curves" (RFC 9380) for the
// edwards25519 group: both the `expand_message_xmd` and `expand_message_xof`
// building blocks, and the edwards25519_XMD:SHA-512_ELL2 / edwards25519_XOF:
// SHAKE256_ELL2 hash-to-curve and encode-to-curve suites built on top of
// them. This generalizes the core's narrower Ristretto255 `fromRistrettoHash`
// to the full two-suite IETF construction, landing results in the
// edwards25519 prime-order subgroup rather than the Ristretto255 quotient.
package h2c

import (
	"crypto"
	_ "crypto/sha512"
	"fmt"

	"golang.org/x/crypto/sha3"

	"gitlab.com/yawning/edwards25519-core.git/edwards25519"
	"gitlab.com/yawning/edwards25519-core.git/field"
)

const (
	ell = 48 // L = ceil((ceil(log2(2^255-19)) + k) / 8), k = 128

	encodeToCurveSize = ell
	hashToCurveSize   = ell * 2
)

// Edwards25519_XMD_SHA512_ELL2_RO implements the
// edwards25519_XMD:SHA-512_ELL2_RO_ random-oracle suite.
func Edwards25519_XMD_SHA512_ELL2_RO(domainSeparator, message []byte) (*edwards25519.ExtendedPoint, error) {
	var uniformBytes [hashToCurveSize]byte
	if err := ExpandMessageXMD(uniformBytes[:], crypto.SHA512, domainSeparator, message); err != nil {
		return nil, fmt.Errorf("h2c: failed to expand message: %w", err)
	}
	return hashToCurve(&uniformBytes), nil
}

// Edwards25519_XMD_SHA512_ELL2_NU implements the
// edwards25519_XMD:SHA-512_ELL2_NU_ nonuniform (encode-to-curve) suite.
func Edwards25519_XMD_SHA512_ELL2_NU(domainSeparator, message []byte) (*edwards25519.ExtendedPoint, error) {
	var uniformBytes [encodeToCurveSize]byte
	if err := ExpandMessageXMD(uniformBytes[:], crypto.SHA512, domainSeparator, message); err != nil {
		return nil, fmt.Errorf("h2c: failed to expand message: %w", err)
	}
	return encodeToCurve(&uniformBytes), nil
}

// Edwards25519_XOF_SHAKE256_ELL2_RO implements a generic edwards25519 random
// oracle suite using `expand_message_xof` over SHAKE256.
func Edwards25519_XOF_SHAKE256_ELL2_RO(domainSeparator, message []byte) (*edwards25519.ExtendedPoint, error) {
	var uniformBytes [hashToCurveSize]byte
	if err := ExpandMessageXOF(uniformBytes[:], sha3.NewShake256(), domainSeparator, message); err != nil {
		return nil, fmt.Errorf("h2c: failed to expand message: %w", err)
	}
	return hashToCurve(&uniformBytes), nil
}

// Edwards25519_XOF_SHAKE256_ELL2_NU implements the nonuniform
// (encode-to-curve) counterpart of Edwards25519_XOF_SHAKE256_ELL2_RO.
func Edwards25519_XOF_SHAKE256_ELL2_NU(domainSeparator, message []byte) (*edwards25519.ExtendedPoint, error) {
	var uniformBytes [encodeToCurveSize]byte
	if err := ExpandMessageXOF(uniformBytes[:], sha3.NewShake256(), domainSeparator, message); err != nil {
		return nil, fmt.Errorf("h2c: failed to expand message: %w", err)
	}
	return encodeToCurve(&uniformBytes), nil
}

func hashToCurve(uniformBytes *[hashToCurveSize]byte) *edwards25519.ExtendedPoint {
	fe0 := uniformToField25519(uniformBytes[:ell])
	fe1 := uniformToField25519(uniformBytes[ell:])

	q0 := ell2EdwardsFlavor(fe0)
	q1 := ell2EdwardsFlavor(fe1)

	p := new(edwards25519.ExtendedPoint).Add(q0, q1)
	return new(edwards25519.ExtendedPoint).MultiplyByCofactor(p)
}

func encodeToCurve(uniformBytes *[encodeToCurveSize]byte) *edwards25519.ExtendedPoint {
	fe := uniformToField25519(uniformBytes[:])
	q := ell2EdwardsFlavor(fe)
	return new(edwards25519.ExtendedPoint).MultiplyByCofactor(q)
}

func uniformToField25519(b []byte) *field.Element {
	if len(b) != ell {
		panic("h2c: invalid uniform bytes length")
	}

	// The field package's wide-reduction routine accepts an
	// arbitrary-length little-endian integer, so zero-extend the
	// big-endian input to 64 bytes and byte-swap.
	extended := make([]byte, 64-ell, 64)
	extended = append(extended, b...)

	le := reversedByteSlice(extended)

	fe, err := new(field.Element).SetWideBytes(le)
	if err != nil {
		panic("h2c: failed to decode wide field element: " + err.Error())
	}
	return fe
}

func reversedByteSlice(b []byte) []byte {
	out := make([]byte, len(b))
	for i, j := len(b)-1, 0; i >= 0; i, j = i-1, j+1 {
		out[j] = b[i]
	}
	return out
}
