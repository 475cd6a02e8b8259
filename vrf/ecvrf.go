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

// Package vrf implements ECVRF-EDWARDS25519-SHA512-ELL2, the Verifiable
// Random Function suite from the IETF VRF draft built on edwards25519, h2c,
// and the same key-expansion rule as ed25519core. A VRF is a direct
// extension of this core's Ed25519 layer: it reuses the same scalar/point
// primitives and the h2c encode-to-curve this module already provides.
package vrf

import (
	"bytes"
	"crypto/sha512"
	"crypto/subtle"
	"errors"

	"gitlab.com/yawning/edwards25519-core.git/ed25519core"
	"gitlab.com/yawning/edwards25519-core.git/edwards25519"
	"gitlab.com/yawning/edwards25519-core.git/h2c"
	"gitlab.com/yawning/edwards25519-core.git/scalar"
)

// ProofSize is the length in bytes of a proof produced by Prove.
const ProofSize = 80

// OutputSize is the length in bytes of the pseudorandom output ProofToHash
// and Verify return.
const OutputSize = 64

const (
	zeroString  = 0x00
	twoString   = 0x02
	threeString = 0x03
	suiteString = 0x04
)

// h2cDST is ECVRF_'s domain separation tag for the hash-to-curve step:
// "ECVRF_" || h2c_suite_ID_string || suite_string.
var h2cDST = []byte("ECVRF_edwards25519_XMD:SHA-512_ELL2_NU_\x04")

// Prove implements ECVRF_prove for ECVRF-EDWARDS25519-SHA512-ELL2: it
// produces an 80-byte proof that the holder of seed computed the VRF output
// for alpha, without revealing the seed.
func Prove(seed, alpha []byte) ([]byte, error) {
	if len(seed) != ed25519core.SeedSize {
		return nil, errors.New("vrf: invalid seed length")
	}

	x, prefix, pub := ed25519core.ExpandSeed(ed25519core.DefaultHasher, seed)

	H, err := hashToCurveSuite(pub, alpha)
	if err != nil {
		return nil, err
	}
	hString := H.ToAffine().ToRawBytes()

	gamma := new(edwards25519.ExtendedPoint).Multiply(x, H)
	gammaString := gamma.ToAffine().ToRawBytes()

	h := sha512.New()
	h.Write(prefix)
	h.Write(hString)
	k := new(scalar.Scalar).FromUniformBytes(h.Sum(nil))

	kB := new(edwards25519.ExtendedPoint).Multiply(k, edwards25519.B)
	kH := new(edwards25519.ExtendedPoint).Multiply(k, H)
	c := hashPoints(hString, gammaString, kB, kH)

	s := new(scalar.Scalar).MultiplyAdd(c, x, k)

	piString := make([]byte, ProofSize)
	copy(piString[:32], gammaString)
	copy(piString[32:48], c.Bytes()[:16])
	copy(piString[48:], s.Bytes())
	return piString, nil
}

// ProofToHash implements ECVRF_proof_to_hash: the deterministic output
// derived from a proof already known to be valid (produced by Prove, or
// returned alongside Verify's true result).
func ProofToHash(piString []byte) ([]byte, error) {
	gamma, _, _, err := decodeProof(piString)
	if err != nil {
		return nil, err
	}
	return gammaToHash(gamma), nil
}

// Verify implements ECVRF_verify: it checks piString against publicKey and
// alpha, returning the pseudorandom output alongside a true result.
func Verify(publicKey, piString, alpha []byte) (bool, []byte) {
	gamma, c, s, err := decodeProof(piString)
	if err != nil {
		return false, nil
	}
	gammaString := piString[:32]

	yAff, err := edwards25519.FromHex(publicKey)
	if err != nil {
		return false, nil
	}
	if !bytes.Equal(yAff.ToRawBytes(), publicKey) {
		return false, nil
	}
	Y := yAff.ToExtended()

	cY := new(edwards25519.ExtendedPoint).MultiplyByCofactor(Y)
	if cY.Equal(edwards25519.NewIdentity()) {
		return false, nil
	}

	H, err := hashToCurveSuite(publicKey, alpha)
	if err != nil {
		return false, nil
	}
	hString := H.ToAffine().ToRawBytes()

	// U = s*B - c*Y
	negY := new(edwards25519.ExtendedPoint).Negate(Y)
	sB := new(edwards25519.ExtendedPoint).Multiply(s, edwards25519.B)
	cNegY := new(edwards25519.ExtendedPoint).MultiplyUnsafe(c, negY)
	U := new(edwards25519.ExtendedPoint).Add(sB, cNegY)

	// V = s*H - c*Gamma
	negGamma := new(edwards25519.ExtendedPoint).Negate(gamma)
	sH := new(edwards25519.ExtendedPoint).MultiplyUnsafe(s, H)
	cNegGamma := new(edwards25519.ExtendedPoint).MultiplyUnsafe(c, negGamma)
	V := new(edwards25519.ExtendedPoint).Add(sH, cNegGamma)

	cPrime := hashPoints(hString, gammaString, U, V)
	if c.Equal(cPrime) == 0 {
		return false, nil
	}
	return true, gammaToHash(gamma)
}

func gammaToHash(gamma *edwards25519.ExtendedPoint) []byte {
	cG := new(edwards25519.ExtendedPoint).MultiplyByCofactor(gamma)
	h := sha512.New()
	h.Write([]byte{suiteString, threeString})
	h.Write(cG.ToAffine().ToRawBytes())
	h.Write([]byte{zeroString})
	return h.Sum(nil)
}

func hashToCurveSuite(pub, alpha []byte) (*edwards25519.ExtendedPoint, error) {
	stringToHash := append(append([]byte(nil), pub...), alpha...)
	return h2c.Edwards25519_XMD_SHA512_ELL2_NU(h2cDST, stringToHash)
}

func hashPoints(p1, p2 []byte, p3, p4 *edwards25519.ExtendedPoint) *scalar.Scalar {
	h := sha512.New()
	h.Write([]byte{suiteString, twoString})
	h.Write(p1)
	h.Write(p2)
	h.Write(p3.ToAffine().ToRawBytes())
	h.Write(p4.ToAffine().ToRawBytes())
	h.Write([]byte{zeroString})
	digest := h.Sum(nil)

	var cString [32]byte
	copy(cString[:16], digest[:16])
	c, err := new(scalar.Scalar).SetCanonicalBytes(cString[:])
	if err != nil {
		panic("vrf: failed to deserialize c scalar: " + err.Error())
	}
	return c
}

func decodeProof(piString []byte) (*edwards25519.ExtendedPoint, *scalar.Scalar, *scalar.Scalar, error) {
	if len(piString) != ProofSize {
		return nil, nil, nil, errors.New("vrf: invalid proof size")
	}

	gammaString := piString[:32]
	gammaAff, err := edwards25519.FromHex(gammaString)
	if err != nil {
		return nil, nil, nil, errors.New("vrf: failed to decompress gamma")
	}
	if subtle.ConstantTimeCompare(gammaAff.ToRawBytes(), gammaString) != 1 {
		return nil, nil, nil, errors.New("vrf: non-canonical gamma")
	}
	gamma := gammaAff.ToExtended()

	var cString [32]byte
	copy(cString[:16], piString[32:48])
	c, err := new(scalar.Scalar).SetCanonicalBytes(cString[:])
	if err != nil {
		return nil, nil, nil, errors.New("vrf: failed to deserialize c scalar")
	}

	s, err := new(scalar.Scalar).SetCanonicalBytes(piString[48:])
	if err != nil {
		return nil, nil, nil, errors.New("vrf: failed to deserialize s scalar")
	}

	return gamma, c, s, nil
}
