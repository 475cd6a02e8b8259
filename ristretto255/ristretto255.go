// Package ristretto255 implements the Ristretto255 prime-order group: a
// bit-exact encoding/decoding and hash-to-group construction built as a
// quotient of the edwards25519 curve group, which cancels out the curve's
// cofactor-8 subgroup so that every 32-byte Ristretto255 encoding names
// exactly one group element.
package ristretto255

import (
	"errors"

	"gitlab.com/yawning/edwards25519-core.git/edwards25519"
	"gitlab.com/yawning/edwards25519-core.git/field"
)

var (
	feOne = new(field.Element).One()
	feTwo = new(field.Element).Add(feOne, feOne)

	// ONE_MINUS_D_SQ = 1 - d^2.
	oneMinusDSq = func() *field.Element {
		d2 := new(field.Element).Square(edwards25519.D)
		return new(field.Element).Subtract(feOne, d2)
	}()

	// D_MINUS_ONE_SQ = (d-1)^2.
	dMinusOneSq = func() *field.Element {
		dm1 := new(field.Element).Subtract(edwards25519.D, feOne)
		return new(field.Element).Square(dm1)
	}()

	// INVSQRT_A_MINUS_D = 1/sqrt(a-d), a = -1.
	invSqrtAMinusD = func() *field.Element {
		aMinusD := new(field.Element).Negate(feOne)
		aMinusD.Subtract(aMinusD, edwards25519.D)
		_, r := new(field.Element).SqrtRatio(feOne, aMinusD)
		return r
	}()

	// SQRT_AD_MINUS_ONE = sqrt(a*d - 1), a = -1. The reference value is the
	// negative (odd) root; SqrtRatio returns the non-negative one.
	sqrtADMinusOne = func() *field.Element {
		adMinus1 := new(field.Element).Negate(edwards25519.D)
		adMinus1.Subtract(adMinus1, feOne)
		_, r := new(field.Element).SqrtRatio(adMinus1, feOne)
		return r.Negate(r)
	}()
)

// Element is a Ristretto255 group element.
type Element struct {
	p edwards25519.ExtendedPoint
}

// NewIdentity returns the Ristretto255 identity element.
func NewIdentity() *Element {
	e := &Element{}
	e.p = *edwards25519.NewIdentity()
	return e
}

// Base returns the canonical Ristretto255 generator, the image of the
// edwards25519 base point B.
func Base() *Element {
	e := &Element{}
	e.p = *edwards25519.B
	return e
}

// Add sets e = p + q and returns e.
func (e *Element) Add(p, q *Element) *Element {
	e.p.Add(&p.p, &q.p)
	return e
}

// Negate sets e = -p and returns e.
func (e *Element) Negate(p *Element) *Element {
	e.p.Negate(&p.p)
	return e
}

// Equal reports whether e and other encode to the same Ristretto255
// element: (X1*Y2 == X2*Y1) OR (Y1*Y2 == X1*X2). Two extended-coordinate
// representatives related by the order-4 quotient action can satisfy only
// the second disjunct, so both must be checked.
func (e *Element) Equal(other *Element) bool {
	x1y2 := new(field.Element).Multiply(&e.p.X, &other.p.Y)
	x2y1 := new(field.Element).Multiply(&other.p.X, &e.p.Y)
	y1y2 := new(field.Element).Multiply(&e.p.Y, &other.p.Y)
	x1x2 := new(field.Element).Multiply(&e.p.X, &other.p.X)
	return x1y2.Equal(x2y1) == 1 || y1y2.Equal(x1x2) == 1
}

// ErrInvalidEncoding is returned by Decode when the input is not a
// canonical Ristretto255 encoding.
var ErrInvalidEncoding = errors.New("ristretto255: invalid encoding")

// Encode returns the canonical 32-byte little-endian Ristretto255 encoding
// of e.
func (e *Element) Encode() []byte {
	x, y, z, t := &e.p.X, &e.p.Y, &e.p.Z, &e.p.T

	u1 := new(field.Element).Add(z, y)
	tmp := new(field.Element).Subtract(z, y)
	u1.Multiply(u1, tmp)

	u2 := new(field.Element).Multiply(x, y)

	u2Sq := new(field.Element).Square(u2)
	invArg := new(field.Element).Multiply(u1, u2Sq)
	_, invSqrt := new(field.Element).SqrtRatio(feOne, invArg)

	d1 := new(field.Element).Multiply(u1, invSqrt)
	d2 := new(field.Element).Multiply(u2, invSqrt)

	zInv := new(field.Element).Multiply(d1, d2)
	zInv.Multiply(zInv, t)

	xOut := new(field.Element).Set(x)
	yOut := new(field.Element).Set(y)

	denInv := new(field.Element).Set(d2)

	tZinv := new(field.Element).Multiply(t, zInv)
	if tZinv.IsNegative() == 1 {
		newX := new(field.Element).Multiply(yOut, field.SqrtM1)
		newY := new(field.Element).Multiply(xOut, field.SqrtM1)
		xOut, yOut = newX, newY
		denInv.Multiply(d1, invSqrtAMinusD)
	}

	xZinv := new(field.Element).Multiply(xOut, zInv)
	if xZinv.IsNegative() == 1 {
		yOut.Negate(yOut)
	}

	s := new(field.Element).Subtract(z, yOut)
	s.Multiply(s, denInv)
	s.Absolute(s)

	return s.Bytes()
}

// Decode parses a 32-byte Ristretto255 encoding into an Element. It fails
// if the encoding is not canonical, if the parsed field element is
// negative, or if the residual on-curve checks fail.
func Decode(b []byte) (*Element, error) {
	if len(b) != 32 {
		return nil, ErrInvalidEncoding
	}

	s := new(field.Element)
	if _, err := s.SetBytes(b); err != nil {
		return nil, ErrInvalidEncoding
	}
	// Reject non-canonical encodings: re-encoding s must reproduce b.
	if !bytesEqual(s.Bytes(), b) {
		return nil, ErrInvalidEncoding
	}
	if s.IsNegative() == 1 {
		return nil, ErrInvalidEncoding
	}

	ss := new(field.Element).Square(s)
	u1 := new(field.Element).Subtract(feOne, ss)
	u2 := new(field.Element).Add(feOne, ss)
	u2Sq := new(field.Element).Square(u2)

	u1Sq := new(field.Element).Square(u1)
	v := new(field.Element).Multiply(edwards25519.D, u1Sq)
	v.Negate(v)
	v.Subtract(v, u2Sq)

	vu2Sq := new(field.Element).Multiply(v, u2Sq)
	wasSquare, invSqrt := new(field.Element).SqrtRatio(feOne, vu2Sq)
	if !wasSquare {
		return nil, ErrInvalidEncoding
	}

	denX := new(field.Element).Multiply(invSqrt, u2)
	denY := new(field.Element).Multiply(invSqrt, denX)
	denY.Multiply(denY, v)

	x := new(field.Element).Multiply(feTwo, s)
	x.Multiply(x, denX)
	x.Absolute(x)

	y := new(field.Element).Multiply(u1, denY)

	t := new(field.Element).Multiply(x, y)

	if t.IsNegative() == 1 || y.IsZero() == 1 {
		return nil, ErrInvalidEncoding
	}

	e := &Element{}
	e.p.X.Set(x)
	e.p.Y.Set(y)
	e.p.Z.One()
	e.p.T.Set(t)
	return e, nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// mapToGroup implements the Ristretto255 Elligator map, sending a single
// field element to an element of the curve group such that, summed over
// two independent uniform inputs, the result is uniform over the
// prime-order Ristretto255 group.
func mapToGroup(t *field.Element) *Element {
	r := new(field.Element).Square(t)
	r.Multiply(r, field.SqrtM1)

	rPlus1 := new(field.Element).Add(r, feOne)
	u := new(field.Element).Multiply(rPlus1, oneMinusDSq)

	rPlusD := new(field.Element).Add(r, edwards25519.D)
	negOneMinusRD := new(field.Element).Multiply(r, edwards25519.D)
	negOneMinusRD.Negate(negOneMinusRD)
	negOneMinusRD.Subtract(negOneMinusRD, feOne)
	v := new(field.Element).Multiply(negOneMinusRD, rPlusD)

	wasSquare, s := new(field.Element).SqrtRatio(u, v)

	sT := new(field.Element).Multiply(s, t)
	sPrime := new(field.Element).Absolute(sT)
	sPrime.Negate(sPrime)

	cond := 0
	if wasSquare {
		cond = 1
	}
	s.Select(s, sPrime, cond)

	c := new(field.Element).Set(r)
	negOne := new(field.Element).Negate(feOne)
	c.Select(negOne, c, cond)

	rMinus1 := new(field.Element).Subtract(r, feOne)
	n := new(field.Element).Multiply(c, rMinus1)
	n.Multiply(n, dMinusOneSq)
	n.Subtract(n, v)

	sSq := new(field.Element).Square(s)
	w0 := new(field.Element).Multiply(feTwo, s)
	w0.Multiply(w0, v)
	w1 := new(field.Element).Multiply(n, sqrtADMinusOne)
	w2 := new(field.Element).Subtract(feOne, sSq)
	w3 := new(field.Element).Add(feOne, sSq)

	e := &Element{}
	e.p.X.Multiply(w0, w3)
	e.p.Y.Multiply(w2, w1)
	e.p.Z.Multiply(w1, w3)
	e.p.T.Multiply(w0, w2)
	return e
}

// FromUniformBytes maps a 64-byte uniformly-random string to a Ristretto255
// element by splitting it into two 32-byte halves, applying the Elligator
// map to each, and adding the results. This is the core's hash-to-group
// construction.
func FromUniformBytes(b []byte) (*Element, error) {
	if len(b) != 64 {
		return nil, errors.New("ristretto255: uniform input must be 64 bytes")
	}

	fe0 := new(field.Element)
	if _, err := fe0.SetBytes(b[:32]); err != nil {
		return nil, err
	}
	fe1 := new(field.Element)
	if _, err := fe1.SetBytes(b[32:]); err != nil {
		return nil, err
	}

	p0 := mapToGroup(fe0)
	p1 := mapToGroup(fe1)

	return new(Element).Add(p0, p1), nil
}
