// Copyright (c) 2021 Oasis Labs Inc. All rights reserved.
// Copyright (c) 2021 Yawning Angel. All rights reserved.
//
// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are
// met:
//
// 1. Redistributions of source code must retain the above copyright
// notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright
// notice, this list of conditions and the following disclaimer in the
// documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its
// contributors may be used to endorse or promote products derived from
// this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS
// IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED
// TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A
// PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT
// HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL,
// SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED
// TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR
// PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF
// LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING
// NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS
// SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package h2c

import (
	"encoding/binary"

	"gitlab.com/yawning/edwards25519-core.git/edwards25519"
	"gitlab.com/yawning/edwards25519-core.git/field"
)

// The Montgomery-form constants below are the standard Curve25519
// Elligator2 parameters (A = 486662, and the two precomputed factors used
// by Loup Vaillant's constant-time map, as shipped in Monocypher's
// tests/gen/elligator.py and widely reused across Curve25519 Elligator2
// implementations).
var (
	constZero = new(field.Element).Zero()
	constOne  = new(field.Element).One()
	constTwo  = new(field.Element).Add(constOne, constOne)

	constMontgomeryA        = mustFeFromUint64(486662)
	constMontgomeryASquared = mustFeFromUint64(486662 * 486662)
	constMontgomeryNegA     = mustFeFromBytes([]byte{
		0xe7, 0x92, 0xf8, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x7f,
	})

	// sqrt(-(A+2)), used to map a Montgomery (u, v) pair to the
	// birationally equivalent twisted Edwards (x, y) pair.
	constMontgomerySqrtNegAPlusTwo = mustFeFromBytes([]byte{
		0x06, 0x7e, 0x45, 0xff, 0xaa, 0x04, 0x6e, 0xcc, 0x82, 0x1a, 0x7d, 0x4b, 0xd1, 0xd3, 0xa1, 0xc5,
		0x7e, 0x4f, 0xfc, 0x03, 0xdc, 0x08, 0x7b, 0xd2, 0xbb, 0x06, 0xa0, 0x60, 0xf4, 0xed, 0x26, 0x0f,
	})

	constMontgomeryUFactor = mustFeFromBytes([]byte{
		0x8d, 0xbe, 0xe2, 0x6b, 0xb1, 0xc9, 0x23, 0x76, 0x0e, 0x37, 0xa0, 0xa5, 0xf2, 0xcf, 0x79, 0xa1,
		0xb1, 0x50, 0x08, 0x84, 0xcd, 0xfe, 0x65, 0xa9, 0xe9, 0x41, 0x7c, 0x60, 0xff, 0xb6, 0xf9, 0x28,
	})

	constMontgomeryVFactor = mustFeFromBytes([]byte{
		0x3e, 0x5f, 0xf1, 0xb5, 0xd8, 0xe4, 0x11, 0x3b, 0x87, 0x1b, 0xd0, 0x52, 0xf9, 0xe7, 0xbc, 0xd0,
		0x58, 0x28, 0x04, 0xc2, 0x66, 0xff, 0xb2, 0xd4, 0xf4, 0x20, 0x3e, 0xb0, 0x7f, 0xdb, 0x7c, 0x54,
	})
)

func mustFeFromBytes(b []byte) *field.Element {
	fe, err := new(field.Element).SetBytes(b)
	if err != nil {
		panic("h2c: failed to build constant: " + err.Error())
	}
	return fe
}

func mustFeFromUint64(x uint64) *field.Element {
	var b [32]byte
	binary.LittleEndian.PutUint64(b[:], x)
	return mustFeFromBytes(b[:])
}

func feIsZero(fe *field.Element) int {
	return fe.IsZero()
}

// ell2EdwardsFlavor applies the Elligator2 map to a field element r,
// producing a point on the twisted Edwards curve via the birational
// equivalence with the Curve25519 Montgomery curve.
func ell2EdwardsFlavor(r *field.Element) *edwards25519.ExtendedPoint {
	u, v := ell2MontgomeryFlavor(r)

	// Per RFC 7748: (x, y) = (sqrt(-(A+2))*u/v, (u-1)/(u+1))
	x := new(field.Element).Invert(v)
	x.Multiply(x, u)
	x.Multiply(x, constMontgomerySqrtNegAPlusTwo)

	uMinusOne := new(field.Element).Subtract(u, constOne)
	uPlusOne := new(field.Element).Add(u, constOne)
	uPlusOneIsZero := feIsZero(uPlusOne)

	uPlusOne.Invert(uPlusOne)
	y := new(field.Element).Multiply(uMinusOne, uPlusOne)

	// Undefined when v == 0 or u == -1; RFC 9380 mandates mapping those
	// cases to the curve's identity point (0, 1) rather than erroring.
	resultUndefined := feIsZero(v) | uPlusOneIsZero
	x.Select(constZero, x, resultUndefined)
	y.Select(constOne, y, resultUndefined)

	z := new(field.Element).One()
	t := new(field.Element).Multiply(x, y)

	p := &edwards25519.ExtendedPoint{}
	p.X.Set(x)
	p.Y.Set(y)
	p.Z.Set(z)
	p.T.Set(t)
	return p
}

// ell2MontgomeryFlavor is the constant-time Elligator2 map onto the
// Montgomery curve v^2 = u^3 + A*u^2 + u, ported from the same
// public-domain construction the teacher's elligator2.go credits to Loup
// Vaillant (Monocypher's tests/gen/elligator.py).
func ell2MontgomeryFlavor(r *field.Element) (*field.Element, *field.Element) {
	t1 := new(field.Element).Square(r)
	t1.Multiply(t1, constTwo)

	u := new(field.Element).Add(t1, constOne)
	t2 := new(field.Element).Square(u)

	t3 := new(field.Element).Multiply(constMontgomeryASquared, t1)
	t3.Subtract(t3, t2)
	t3.Multiply(t3, constMontgomeryA)

	t1.Multiply(t2, u)
	t1.Multiply(t1, t3)
	isSquare, _ := t1.SqrtRatio(constOne, t1)
	cond := 0
	if isSquare {
		cond = 1
	}

	u.Square(r)
	u.Multiply(u, constMontgomeryUFactor)

	v := new(field.Element).Multiply(r, constMontgomeryVFactor)

	u.Select(constOne, u, cond)
	v.Select(constOne, v, cond)

	v.Multiply(v, t3)
	v.Multiply(v, t1)

	t1.Square(t1)

	u.Multiply(u, constMontgomeryNegA)
	u.Multiply(u, t3)
	u.Multiply(u, t2)
	u.Multiply(u, t1)

	negV := new(field.Element).Negate(v)
	v.Select(negV, v, cond^v.IsNegative())

	return u, v
}
