// Package ed25519core implements the Ed25519 signature scheme (RFC 8032)
// on top of the edwards25519 curve package: key expansion, signing, and
// cofactorless verification.
package ed25519core

import (
	"crypto/sha512"
	"errors"

	"gitlab.com/yawning/edwards25519-core.git/edwards25519"
	"gitlab.com/yawning/edwards25519-core.git/scalar"
)

// SeedSize is the length in bytes of an Ed25519 private key seed.
const SeedSize = 32

// PublicKeySize is the length in bytes of an Ed25519 public key.
const PublicKeySize = 32

// SignatureSize is the length in bytes of an Ed25519 signature.
const SignatureSize = 64

// Hasher is the SHA-512 collaborator this package's protocol operations are
// built on. crypto/sha512 is synchronous, so the default implementation
// (and therefore Sign/Verify) completes synchronously; Hasher is factored
// out so a platform offering only an asynchronous primitive could still
// supply one without the protocol layer above it changing.
type Hasher interface {
	// Sum512 returns the 64-byte SHA-512 digest of the concatenation of
	// parts.
	Sum512(parts ...[]byte) []byte
}

type sha512Hasher struct{}

func (sha512Hasher) Sum512(parts ...[]byte) []byte {
	h := sha512.New()
	for _, p := range parts {
		h.Write(p)
	}
	return h.Sum(nil)
}

// DefaultHasher is the Hasher used when callers do not supply their own.
var DefaultHasher Hasher = sha512Hasher{}

// ErrInvalidSignatureLength describes a signature that is not exactly
// SignatureSize bytes. Verify does not return it: Verify reports every
// failure, this one included, as false.
var ErrInvalidSignatureLength = errors.New("ed25519core: invalid signature length")

// ErrInvalidPublicKeyLength describes a public key that is not exactly
// PublicKeySize bytes. Verify does not return it: Verify reports every
// failure, this one included, as false.
var ErrInvalidPublicKeyLength = errors.New("ed25519core: invalid public key length")

// clamp applies the RFC 8032 clamping operation to a 32-byte scalar seed in
// place: clear the lowest 3 bits of byte 0, clear the high bit of byte 31,
// set bit 254.
func clamp(b []byte) {
	b[0] &= 248
	b[31] &= 127
	b[31] |= 64
}

// ExpandSeed computes, from a 32-byte seed, the clamped scalar a, the
// 32-byte prefix h_pre consumed by nonce generation, and the encoded public
// key A = encode(a*B). It is exported so other protocols built on the same
// key-expansion rule (e.g. a VRF) can reuse it instead of re-deriving it.
func ExpandSeed(h Hasher, seed []byte) (a *scalar.Scalar, prefix []byte, pub []byte) {
	digest := h.Sum512(seed)
	lo := append([]byte(nil), digest[:32]...)
	prefix = digest[32:]
	clamp(lo)

	a = new(scalar.Scalar).FromUniformBytes(lo)

	A := new(edwards25519.ExtendedPoint).Multiply(a, edwards25519.B)
	pub = A.ToAffine().ToRawBytes()
	return a, prefix, pub
}

// GenerateKey expands a 32-byte seed into a keypair: the matching
// PublicKeySize-byte public key, suitable for Verify, and the seed itself
// (the private key is the seed; Sign re-expands it on every call, matching
// the teacher's math/big reference's stateless approach).
func GenerateKey(seed []byte) (publicKey, privateKey []byte, err error) {
	if len(seed) != SeedSize {
		return nil, nil, errors.New("ed25519core: invalid seed length")
	}
	_, _, pub := ExpandSeed(DefaultHasher, seed)
	privateKey = append([]byte(nil), seed...)
	return pub, privateKey, nil
}

// Sign computes the Ed25519 signature of message under the seed privateKey,
// following RFC 8032's deterministic signing algorithm.
func Sign(privateKey, message []byte) ([]byte, error) {
	return SignWithHasher(DefaultHasher, privateKey, message)
}

// SignWithHasher is Sign with an explicit Hasher collaborator.
func SignWithHasher(h Hasher, privateKey, message []byte) ([]byte, error) {
	if len(privateKey) != SeedSize {
		return nil, errors.New("ed25519core: invalid private key length")
	}

	a, prefix, pub := ExpandSeed(h, privateKey)

	rDigest := h.Sum512(prefix, message)
	r := new(scalar.Scalar).FromUniformBytes(rDigest)

	R := new(edwards25519.ExtendedPoint).Multiply(r, edwards25519.B)
	rEnc := R.ToAffine().ToRawBytes()

	kDigest := h.Sum512(rEnc, pub, message)
	k := new(scalar.Scalar).FromUniformBytes(kDigest)

	s := new(scalar.Scalar).MultiplyAdd(k, a, r)

	sig := make([]byte, SignatureSize)
	copy(sig[:32], rEnc)
	copy(sig[32:], s.Bytes())

	// Best-effort wipe of the expanded secret scalar and nonce prefix.
	a.Zero()
	for i := range prefix {
		prefix[i] = 0
	}
	return sig, nil
}

// Verify reports whether sig is a valid Ed25519 signature of message under
// publicKey, using the cofactorless check s*B = R + k*A. Every failure mode
// (bad lengths, a public key or R not on the curve, a non-canonical s, or a
// mismatched equation) collapses to a plain false; Verify never returns an
// error, matching the source behavior the specification mandates.
func Verify(publicKey, message, sig []byte) bool {
	return VerifyWithHasher(DefaultHasher, publicKey, message, sig)
}

// VerifyWithHasher is Verify with an explicit Hasher collaborator.
func VerifyWithHasher(h Hasher, publicKey, message, sig []byte) bool {
	if len(sig) != SignatureSize {
		return false
	}
	if len(publicKey) != PublicKeySize {
		return false
	}

	rBytes := sig[:32]
	sBytes := sig[32:]

	s := new(scalar.Scalar)
	if _, err := s.SetCanonicalBytes(sBytes); err != nil {
		return false
	}

	aAff, err := edwards25519.FromHex(publicKey)
	if err != nil {
		return false
	}
	A := aAff.ToExtended()

	rAff, err := edwards25519.FromHex(rBytes)
	if err != nil {
		return false
	}
	R := rAff.ToExtended()

	kDigest := h.Sum512(rBytes, publicKey, message)
	k := new(scalar.Scalar).FromUniformBytes(kDigest)

	sB := new(edwards25519.ExtendedPoint).Multiply(s, edwards25519.B)

	kA := new(edwards25519.ExtendedPoint).MultiplyUnsafe(k, A)
	rPluskA := new(edwards25519.ExtendedPoint).Add(R, kA)

	return sB.Equal(rPluskA)
}
