// Package field implements fast arithmetic modulo p = 2^255-19, the
// base field of Curve25519 and its twisted Edwards form.
//
// This type works similarly to math/big.Int: all arguments and receivers
// are allowed to alias, and the zero value is a valid zero element.
package field

import (
	"crypto/subtle"
	"errors"
	"math/big"
)

// Element represents an element of the field GF(2^255-19). Note that this
// is not a cryptographically secure group on its own, and should only be
// used to interact with edwards25519 point coordinates and Ristretto255
// encodings.
type Element struct {
	v big.Int
}

var (
	// P is the field modulus, 2^255-19.
	P, _ = new(big.Int).SetString("7fffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffed", 16)

	// pMinusTwo is the Fermat inversion exponent, p-2.
	pMinusTwo = new(big.Int).Sub(P, big.NewInt(2))

	// pMinusFiveOverEight is (p-5)/8, used by Pow22523.
	pMinusFiveOverEight = new(big.Int).Rsh(new(big.Int).Sub(P, big.NewInt(5)), 3)

	bigOne = big.NewInt(1)
)

// SqrtM1 is a square root of -1 modulo p.
var SqrtM1 = newFromHex("2b8324804fc1df0b2b4d00993dfbd7a72f431806ad2fe478c4ee1b274a0ea0b0")

func newFromHex(s string) *Element {
	v, ok := new(big.Int).SetString(s, 16)
	if !ok {
		panic("field: bad constant")
	}
	e := &Element{}
	e.v.Mod(v, P)
	return e
}

// Zero sets v = 0, and returns v.
func (v *Element) Zero() *Element {
	v.v.SetInt64(0)
	return v
}

// One sets v = 1, and returns v.
func (v *Element) One() *Element {
	v.v.SetInt64(1)
	return v
}

// Set sets v = a, and returns v.
func (v *Element) Set(a *Element) *Element {
	v.v.Set(&a.v)
	return v
}

// SetBytes sets v to x, where x is a 32-byte little-endian encoding. If x is
// not of the right length, SetBytes returns nil and an error, and the
// receiver is unchanged.
//
// Consistent with RFC 7748, the most significant bit (the high bit of the
// last byte) is ignored, and non-canonical values (2^255-19 through 2^255-1)
// are accepted.
func (v *Element) SetBytes(x []byte) (*Element, error) {
	if len(x) != 32 {
		return nil, errors.New("field: invalid field element input size")
	}

	var xCopy [32]byte
	copy(xCopy[:], x)
	xCopy[31] &= 127 // ignore the MSB

	v.v.SetBytes(reverse(xCopy[:]))
	v.v.Mod(&v.v, P)
	return v, nil
}

// SetWideBytes sets v to the reduction of x, a little-endian encoding of
// a non-negative integer of arbitrary length. Used by hash-to-field
// constructions that consume wide (48- or 64-byte) uniform strings.
func (v *Element) SetWideBytes(x []byte) (*Element, error) {
	if len(x) == 0 {
		return nil, errors.New("field: empty wide input")
	}
	v.v.SetBytes(reverse(append([]byte(nil), x...)))
	v.v.Mod(&v.v, P)
	return v, nil
}

// Bytes returns the canonical 32-byte little-endian encoding of v.
func (v *Element) Bytes() []byte {
	var out [32]byte
	b := v.v.Bytes() // big-endian, no leading zeros
	for i, n := 0, len(b); i < n; i++ {
		out[n-1-i] = b[i]
	}
	return out[:]
}

// reverse returns a newly allocated reversal of b.
func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, j := 0, len(b)-1; j >= 0; i, j = i+1, j-1 {
		out[i] = b[j]
	}
	return out
}

// Add sets v = a + b, and returns v.
func (v *Element) Add(a, b *Element) *Element {
	v.v.Add(&a.v, &b.v)
	v.v.Mod(&v.v, P)
	return v
}

// Subtract sets v = a - b, and returns v.
func (v *Element) Subtract(a, b *Element) *Element {
	v.v.Sub(&a.v, &b.v)
	v.v.Mod(&v.v, P)
	return v
}

// Negate sets v = -a, and returns v.
func (v *Element) Negate(a *Element) *Element {
	v.v.Neg(&a.v)
	v.v.Mod(&v.v, P)
	return v
}

// Multiply sets v = x * y, and returns v.
func (v *Element) Multiply(x, y *Element) *Element {
	v.v.Mul(&x.v, &y.v)
	v.v.Mod(&v.v, P)
	return v
}

// Square sets v = x * x, and returns v.
func (v *Element) Square(x *Element) *Element {
	return v.Multiply(x, x)
}

// Mult32 sets v = x * y, where y is a small non-negative constant, and
// returns v.
func (v *Element) Mult32(x *Element, y uint32) *Element {
	v.v.Mul(&x.v, big.NewInt(int64(y)))
	v.v.Mod(&v.v, P)
	return v
}

// Invert sets v = 1/z mod p, and returns v.
//
// If z == 0, Invert returns v = 0, by convention: no error condition from
// field arithmetic is ever surfaced above the decoder boundary unchanged
// (see the core's error handling design).
func (v *Element) Invert(z *Element) *Element {
	if z.v.Sign() == 0 {
		return v.Zero()
	}
	v.v.Exp(&z.v, pMinusTwo, P)
	return v
}

// Pow22523 sets v = x^((p-5)/8), and returns v.
func (v *Element) Pow22523(x *Element) *Element {
	v.v.Exp(&x.v, pMinusFiveOverEight, P)
	return v
}

// Equal returns 1 if v and u are equal, and 0 otherwise.
func (v *Element) Equal(u *Element) int {
	return subtle.ConstantTimeCompare(v.Bytes(), u.Bytes())
}

// IsZero returns 1 if v == 0, and 0 otherwise.
func (v *Element) IsZero() int {
	return subtle.ConstantTimeCompare(v.Bytes(), zero32[:])
}

var zero32 [32]byte

// mask64Bits returns 0xffffffff_ffffffff if cond == 1, and 0 if cond == 0.
func mask64Bits(cond int) uint64 { return ^(uint64(cond) - 1) }

// Select sets v to a if cond == 1, and to b if cond == 0.
func (v *Element) Select(a, b *Element, cond int) *Element {
	// big.Int has no fixed-width representation to mask directly; select
	// on the canonical byte encodings instead, matching the Equal/Bytes
	// round trip used throughout this package.
	ab, bb := a.Bytes(), b.Bytes()
	var out [32]byte
	for i := range out {
		m := byte(mask64Bits(cond))
		out[i] = (m & ab[i]) | (^m & bb[i])
	}
	v.v.SetBytes(reverse(out[:]))
	v.v.Mod(&v.v, P)
	return v
}

// IsNegative returns 1 if the low bit of v's canonical encoding is set, and
// 0 otherwise. This is the RFC 8032 / Ristretto255 "sign" convention used
// throughout this core; no caller should re-derive sign any other way.
func (v *Element) IsNegative() int {
	return int(v.Bytes()[0] & 1)
}

// Absolute sets v to |u| (the non-negative root, per IsNegative), and
// returns v.
func (v *Element) Absolute(u *Element) *Element {
	neg := new(Element).Negate(u)
	return v.Select(neg, u, u.IsNegative())
}

// SqrtRatio sets r to the non-negative square root of the ratio u/v.
//
// If u/v is square (and v != 0), SqrtRatio returns r and true. If u/v is
// not square, SqrtRatio sets r to the candidate specified by the
// Ristretto255 recipe (section 4.3 of draft-irtf-cfrg-ristretto255-decaf448)
// and returns false.
func (r *Element) SqrtRatio(u, v *Element) (wasSquare bool, rr *Element) {
	t0 := new(Element)

	v2 := new(Element).Square(v)
	uv3 := new(Element).Multiply(u, t0.Multiply(v2, v))
	uv7 := new(Element).Multiply(uv3, t0.Square(v2))
	result := new(Element).Multiply(uv3, t0.Pow22523(uv7))

	check := new(Element).Multiply(v, t0.Square(result))

	uNeg := new(Element).Negate(u)
	correctSignSqrt := check.Equal(u) == 1
	flippedSignSqrt := check.Equal(uNeg) == 1
	flippedSignSqrtI := check.Equal(t0.Multiply(uNeg, SqrtM1)) == 1

	rPrime := new(Element).Multiply(result, SqrtM1)
	cond := 0
	if flippedSignSqrt || flippedSignSqrtI {
		cond = 1
	}
	result.Select(rPrime, result, cond)

	r.Absolute(result)
	return correctSignSqrt || flippedSignSqrt, r
}

// Sign returns -1, 0 or 1 matching math/big.Int.Sign semantics on the
// non-reduced stored value; exposed only for tests that want to assert a
// value is canonical (always >= 0 for any Element produced by this
// package).
func (v *Element) Sign() int {
	return v.v.Sign()
}

// BigInt returns the value of v as a *big.Int in [0, p). The returned value
// shares no state with v.
func (v *Element) BigInt() *big.Int {
	return new(big.Int).Set(&v.v)
}

// SetBigInt sets v to x mod p, and returns v.
func (v *Element) SetBigInt(x *big.Int) *Element {
	v.v.Mod(x, P)
	return v
}
