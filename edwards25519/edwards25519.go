// Package edwards25519 implements group logic for the twisted Edwards
// curve
//
//	-x^2 + y^2 = 1 + d*x^2*y^2
//
// better known as the curve used by the Ed25519 signature scheme. This
// package owns the affine and extended point representations, point
// arithmetic, and both the variable-base and windowed base-point scalar
// multiplication engines; field and scalar arithmetic come from the field
// and scalar packages, and the Ristretto255 encoding lives in the
// ristretto255 package.
package edwards25519

import (
	"errors"
	"math/big"

	"gitlab.com/yawning/edwards25519-core.git/field"
	"gitlab.com/yawning/edwards25519-core.git/scalar"
)

// D is the curve equation constant d = -121665/121666 mod p.
var D = mustDiv(-121665, 121666)

// twoD is 2*d mod p, used throughout the extended-coordinate formulas.
var twoD = new(field.Element).Add(D, D)

// Gx, Gy are the affine coordinates of the canonical base point B.
var (
	Gx = mustFieldFromDecimal("15112221349535400772501151409588531511454012693041857206046113283949847762202")
	Gy = mustFieldFromDecimal("46316835694926478169428394003475163141307993866256225615783033603165251855960")
)

// Cofactor h of the curve group, h = 8.
const Cofactor = 8

func mustFieldFromDecimal(s string) *field.Element {
	bi, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("edwards25519: bad constant " + s)
	}
	return new(field.Element).SetBigInt(bi)
}

func mustDiv(a, b int64) *field.Element {
	af := new(field.Element).SetBigInt(big.NewInt(a))
	bf := new(field.Element).SetBigInt(big.NewInt(b))
	inv := new(field.Element).Invert(bf)
	return new(field.Element).Multiply(af, inv)
}

// AffinePoint is a point (x, y) on the twisted Edwards curve in affine
// coordinates, satisfying -x^2 + y^2 = 1 + d*x^2*y^2. This is the
// "Point" of the specification: it is the representation used by RFC 8032
// encoding/decoding.
type AffinePoint struct {
	X, Y field.Element
}

// ExtendedPoint is a point (X, Y, Z, T) with x = X/Z, y = Y/Z, x*y = T/Z,
// Z != 0. This is the representation all curve arithmetic operates on.
type ExtendedPoint struct {
	X, Y, Z, T field.Element
}

// NewIdentityAffine returns the affine identity point (0, 1).
func NewIdentityAffine() *AffinePoint {
	p := &AffinePoint{}
	p.X.Zero()
	p.Y.One()
	return p
}

// NewIdentity returns the extended-coordinates identity point (0, 1, 1, 0).
func NewIdentity() *ExtendedPoint {
	p := &ExtendedPoint{}
	p.X.Zero()
	p.Y.One()
	p.Z.One()
	p.T.Zero()
	return p
}

// B is the canonical base point, in extended coordinates.
var B = NewAffinePoint(Gx, Gy).ToExtended()

// NewAffinePoint constructs an AffinePoint from (x, y) without checking that
// it lies on the curve. Use FromHex to validate externally supplied
// coordinates.
func NewAffinePoint(x, y *field.Element) *AffinePoint {
	p := &AffinePoint{}
	p.X.Set(x)
	p.Y.Set(y)
	return p
}

// IsOnCurve reports whether p satisfies the twisted Edwards curve equation.
func (p *AffinePoint) IsOnCurve() bool {
	x2 := new(field.Element).Square(&p.X)
	y2 := new(field.Element).Square(&p.Y)

	lhs := new(field.Element).Negate(x2)
	lhs.Add(lhs, y2)

	rhs := new(field.Element).Multiply(x2, y2)
	rhs.Multiply(rhs, D)
	rhs.Add(rhs, new(field.Element).One())

	return lhs.Equal(rhs) == 1
}

// ToExtended lifts p to extended coordinates (Z=1, T=X*Y).
func (p *AffinePoint) ToExtended() *ExtendedPoint {
	e := &ExtendedPoint{}
	e.X.Set(&p.X)
	e.Y.Set(&p.Y)
	e.Z.One()
	e.T.Multiply(&p.X, &p.Y)
	return e
}

// ToAffine projects e down to affine coordinates (x = X/Z, y = Y/Z).
func (e *ExtendedPoint) ToAffine() *AffinePoint {
	zInv := new(field.Element).Invert(&e.Z)
	p := &AffinePoint{}
	p.X.Multiply(&e.X, zInv)
	p.Y.Multiply(&e.Y, zInv)
	return p
}

// ErrInvalidLength is returned when a decoded byte string has the wrong
// length.
var ErrInvalidLength = errors.New("edwards25519: invalid encoding length")

// ErrNotOnCurve is returned when a 32-byte string does not decode to a
// point on the curve.
var ErrNotOnCurve = errors.New("edwards25519: not a valid point encoding")

// FromHex decodes a 32-byte RFC 8032 point encoding (y with the sign of x
// packed into the top bit) into an AffinePoint. It fails if the length is
// wrong, if the denominator of x^2 is zero, or if the resulting ratio is a
// non-square (the point is not on the curve). The returned point is not
// guaranteed to be in the prime-order subgroup: callers that need that
// guarantee should use Ristretto255 instead.
func FromHex(b []byte) (*AffinePoint, error) {
	if len(b) != 32 {
		return nil, ErrInvalidLength
	}

	sign := int(b[31] >> 7)

	y := new(field.Element)
	if _, err := y.SetBytes(b); err != nil {
		return nil, err
	}

	y2 := new(field.Element).Square(y)
	u := new(field.Element).Subtract(y2, new(field.Element).One())
	v := new(field.Element).Multiply(D, y2)
	v.Add(v, new(field.Element).One())

	if v.IsZero() == 1 {
		return nil, ErrNotOnCurve
	}

	wasSquare, x := new(field.Element).SqrtRatio(u, v)
	if !wasSquare {
		return nil, ErrNotOnCurve
	}

	if x.IsZero() == 1 && sign == 1 {
		return nil, ErrNotOnCurve
	}

	if x.IsNegative() != sign {
		x.Negate(x)
	}

	return &AffinePoint{X: *x, Y: *y}, nil
}

// ToRawBytes encodes p as 32 bytes: y little-endian, with the sign of x
// packed into the high bit of the last byte.
func (p *AffinePoint) ToRawBytes() []byte {
	out := p.Y.Bytes()
	if p.X.IsNegative() == 1 {
		out[31] |= 0x80
	}
	return out
}

// ToX25519 converts the Edwards y-coordinate of p to the corresponding
// Montgomery u-coordinate, u = (1+y)/(1-y) mod p, encoded little-endian.
// This is the only X25519 interoperability this core offers; it does not
// implement the X25519 key-exchange protocol itself.
func (p *AffinePoint) ToX25519() []byte {
	one := new(field.Element).One()
	num := new(field.Element).Add(one, &p.Y)
	den := new(field.Element).Subtract(one, &p.Y)
	den.Invert(den)
	u := new(field.Element).Multiply(num, den)
	return u.Bytes()
}

// Set sets e = p and returns e.
func (e *ExtendedPoint) Set(p *ExtendedPoint) *ExtendedPoint {
	e.X.Set(&p.X)
	e.Y.Set(&p.Y)
	e.Z.Set(&p.Z)
	e.T.Set(&p.T)
	return e
}

// Equal reports whether e and other represent the same curve point, using
// cross-multiplied affine comparison (X1*Z2 == X2*Z1 and Y1*Z2 == Y2*Z1).
func (e *ExtendedPoint) Equal(other *ExtendedPoint) bool {
	x1z2 := new(field.Element).Multiply(&e.X, &other.Z)
	x2z1 := new(field.Element).Multiply(&other.X, &e.Z)
	y1z2 := new(field.Element).Multiply(&e.Y, &other.Z)
	y2z1 := new(field.Element).Multiply(&other.Y, &e.Z)
	return x1z2.Equal(x2z1) == 1 && y1z2.Equal(y2z1) == 1
}

// Negate sets e = -p and returns e.
func (e *ExtendedPoint) Negate(p *ExtendedPoint) *ExtendedPoint {
	e.X.Negate(&p.X)
	e.Y.Set(&p.Y)
	e.Z.Set(&p.Z)
	e.T.Negate(&p.T)
	return e
}

// Add sets e = p + q using the complete extended-coordinate addition
// formula for a = -1 (add-2008-hwcd-3), and returns e.
func (e *ExtendedPoint) Add(p, q *ExtendedPoint) *ExtendedPoint {
	var yPlusX, yMinusX, pp, mm, tt2d, zz2, eE, f, g, h field.Element

	yPlusX.Add(&p.Y, &p.X)
	yMinusX.Subtract(&p.Y, &p.X)

	qYPlusX := new(field.Element).Add(&q.Y, &q.X)
	qYMinusX := new(field.Element).Subtract(&q.Y, &q.X)
	qT2d := new(field.Element).Multiply(&q.T, twoD)

	pp.Multiply(&yPlusX, qYPlusX)
	mm.Multiply(&yMinusX, qYMinusX)
	tt2d.Multiply(&p.T, qT2d)
	zz2.Multiply(&p.Z, &q.Z)
	zz2.Add(&zz2, &zz2)

	eE.Subtract(&pp, &mm)
	h.Add(&pp, &mm)
	f.Subtract(&zz2, &tt2d)
	g.Add(&zz2, &tt2d)

	e.X.Multiply(&eE, &f)
	e.Y.Multiply(&h, &g)
	e.Z.Multiply(&f, &g)
	e.T.Multiply(&eE, &h)
	return e
}

// Subtract sets e = p - q and returns e.
func (e *ExtendedPoint) Subtract(p, q *ExtendedPoint) *ExtendedPoint {
	negQ := new(ExtendedPoint).Negate(q)
	return e.Add(p, negQ)
}

// Double sets e = 2p using the dbl-2008-hwcd formula, and returns e.
func (e *ExtendedPoint) Double(p *ExtendedPoint) *ExtendedPoint {
	var xx, yy, zz2, xPlusYsq, y3, z3, x3, t3 field.Element

	xx.Square(&p.X)
	yy.Square(&p.Y)
	zz2.Square(&p.Z)
	zz2.Add(&zz2, &zz2)
	xPlusYsq.Add(&p.X, &p.Y)
	xPlusYsq.Square(&xPlusYsq)

	y3.Add(&yy, &xx)
	z3.Subtract(&yy, &xx)
	x3.Subtract(&xPlusYsq, &y3)
	t3.Subtract(&zz2, &z3)

	e.X.Multiply(&x3, &t3)
	e.Y.Multiply(&y3, &z3)
	e.Z.Multiply(&z3, &t3)
	e.T.Multiply(&x3, &y3)
	return e
}

// MultiplyUnsafe sets e = k*p using left-to-right double-and-add over the
// 253 significant bits of k. It does not consult any precomputed table and
// its control flow depends on k's bits; it is safe to call with a secret
// scalar only in the sense that it produces the correct result, not in the
// sense of running in constant time. Use it for untrusted points (signature
// verification) or explicitly non-secret scalars.
func (e *ExtendedPoint) MultiplyUnsafe(k *scalar.Scalar, p *ExtendedPoint) *ExtendedPoint {
	acc := NewIdentity()
	for i := 252; i >= 0; i-- {
		acc.Double(acc)
		if k.Bit(i) == 1 {
			acc.Add(acc, p)
		}
	}
	*e = *acc
	return e
}

// MultiplyByCofactor sets e = Cofactor*p (three doublings, since Cofactor
// is 8) and returns e. Hash-to-curve constructions use this to clear the
// small-order component an Elligator image may carry before handing a point
// to a caller that assumes the prime-order subgroup.
func (e *ExtendedPoint) MultiplyByCofactor(p *ExtendedPoint) *ExtendedPoint {
	e.Double(p)
	e.Double(e)
	e.Double(e)
	return e
}
