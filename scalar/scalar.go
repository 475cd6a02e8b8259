// Package scalar implements arithmetic modulo the prime order of the
// edwards25519 group,
//
//	n = 2^252 + 27742317777372353535851937790883648493
//
// This type works similarly to math/big.Int: all arguments and receivers
// are allowed to alias, and the zero value is a valid zero element.
package scalar

import (
	"crypto/subtle"
	"errors"
	"math/big"
)

// N is the order of the edwards25519 prime-order subgroup.
var N, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

// Scalar is an integer modulo N.
type Scalar struct {
	v big.Int
}

// ErrNonCanonical is returned by SetCanonicalBytes when the input is not the
// unique encoding of the scalar it represents (i.e. it is >= N).
var ErrNonCanonical = errors.New("scalar: non-canonical encoding")

// Zero sets s = 0 and returns s.
func (s *Scalar) Zero() *Scalar {
	s.v.SetInt64(0)
	return s
}

// One sets s = 1 and returns s.
func (s *Scalar) One() *Scalar {
	s.v.SetInt64(1)
	return s
}

// Set sets s = x and returns s.
func (s *Scalar) Set(x *Scalar) *Scalar {
	s.v.Set(&x.v)
	return s
}

// Add sets s = x + y mod N and returns s.
func (s *Scalar) Add(x, y *Scalar) *Scalar {
	s.v.Add(&x.v, &y.v)
	s.v.Mod(&s.v, N)
	return s
}

// Subtract sets s = x - y mod N and returns s.
func (s *Scalar) Subtract(x, y *Scalar) *Scalar {
	s.v.Sub(&x.v, &y.v)
	s.v.Mod(&s.v, N)
	return s
}

// Negate sets s = -x mod N and returns s.
func (s *Scalar) Negate(x *Scalar) *Scalar {
	s.v.Neg(&x.v)
	s.v.Mod(&s.v, N)
	return s
}

// Multiply sets s = x * y mod N and returns s.
func (s *Scalar) Multiply(x, y *Scalar) *Scalar {
	s.v.Mul(&x.v, &y.v)
	s.v.Mod(&s.v, N)
	return s
}

// MultiplyAdd sets s = x*y + z mod N and returns s.
func (s *Scalar) MultiplyAdd(x, y, z *Scalar) *Scalar {
	return s.Multiply(x, y).Add(s, z)
}

// FromUniformBytes sets s to the reduction of x, interpreted as a
// little-endian integer of arbitrary (non-zero) length. This is how a
// 64-byte SHA-512 digest is turned into a nonce or challenge scalar.
func (s *Scalar) FromUniformBytes(x []byte) *Scalar {
	if len(x) == 0 {
		panic("scalar: empty uniform input")
	}
	s.v.SetBytes(reverse(x))
	s.v.Mod(&s.v, N)
	return s
}

// SetCanonicalBytes sets s = x, where x is a 32-byte little-endian encoding
// of s. If x is not the canonical (< N) encoding, SetCanonicalBytes returns
// an error and the receiver is unchanged.
func (s *Scalar) SetCanonicalBytes(x []byte) (*Scalar, error) {
	if len(x) != 32 {
		return nil, errors.New("scalar: invalid scalar length")
	}
	v := new(big.Int).SetBytes(reverse(x))
	if v.Cmp(N) >= 0 {
		return nil, ErrNonCanonical
	}
	s.v.Set(v)
	return s, nil
}

// Bytes returns the canonical 32-byte little-endian encoding of s.
func (s *Scalar) Bytes() []byte {
	var out [32]byte
	b := s.v.Bytes()
	for i, n := 0, len(b); i < n; i++ {
		out[n-1-i] = b[i]
	}
	return out[:]
}

func reverse(b []byte) []byte {
	out := make([]byte, len(b))
	for i, j := 0, len(b)-1; j >= 0; i, j = i+1, j-1 {
		out[i] = b[j]
	}
	return out
}

// Equal returns 1 if s and t are equal, and 0 otherwise.
func (s *Scalar) Equal(t *Scalar) int {
	return subtle.ConstantTimeCompare(s.Bytes(), t.Bytes())
}

// IsZero returns 1 if s == 0, and 0 otherwise.
func (s *Scalar) IsZero() int {
	return subtle.ConstantTimeCompare(s.Bytes(), make([]byte, 32))
}

// BigInt returns the value of s as a *big.Int in [0, N).
func (s *Scalar) BigInt() *big.Int {
	return new(big.Int).Set(&s.v)
}

// SetBigInt sets s = x mod N, and returns s.
func (s *Scalar) SetBigInt(x *big.Int) *Scalar {
	s.v.Mod(x, N)
	return s
}

// Bit returns the value of the i-th bit of the canonical non-negative
// representative of s (0 <= i < 256). Used by the variable-base and
// windowed-base scalar multiplication ladders.
func (s *Scalar) Bit(i int) uint {
	return s.v.Bit(i)
}
