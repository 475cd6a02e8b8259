package h2c

import (
	"crypto"
	"encoding/binary"
	"errors"

	"golang.org/x/crypto/sha3"
)

// blockSizeOf returns the hash's internal block size in bytes, needed by
// expand_message_xmd's Z_pad. Only the hash functions this package's
// suites actually use are supported.
func blockSizeOf(h crypto.Hash) (int, error) {
	switch h {
	case crypto.SHA256:
		return 64, nil
	case crypto.SHA384, crypto.SHA512:
		return 128, nil
	default:
		return 0, errors.New("h2c: unsupported hash function")
	}
}

func i2osp(x, length int) []byte {
	out := make([]byte, length)
	for i := length - 1; i >= 0 && x != 0; i-- {
		out[i] = byte(x & 0xff)
		x >>= 8
	}
	return out
}

// ExpandMessageXMD implements expand_message_xmd from RFC 9380 section 5.3.1,
// filling out with len(out) bytes of uniformly-distributed output derived
// from msg and the domain separation tag dst under the hash function h.
func ExpandMessageXMD(out []byte, h crypto.Hash, dst, msg []byte) error {
	lenInBytes := len(out)
	if lenInBytes > 65535 {
		return errors.New("h2c: requested output too long")
	}
	if len(dst) > 255 {
		return errors.New("h2c: domain separation tag too long")
	}
	if !h.Available() {
		return errors.New("h2c: hash function not linked into the binary")
	}

	bInBytes := h.Size()
	sInBytes, err := blockSizeOf(h)
	if err != nil {
		return err
	}

	ell := (lenInBytes + bInBytes - 1) / bInBytes
	if ell > 255 {
		return errors.New("h2c: requested output too long")
	}

	dstPrime := append(append([]byte(nil), dst...), i2osp(len(dst), 1)...)
	zPad := make([]byte, sInBytes)
	libStr := i2osp(lenInBytes, 2)

	msgPrime := make([]byte, 0, sInBytes+len(msg)+2+1+len(dstPrime))
	msgPrime = append(msgPrime, zPad...)
	msgPrime = append(msgPrime, msg...)
	msgPrime = append(msgPrime, libStr...)
	msgPrime = append(msgPrime, 0)
	msgPrime = append(msgPrime, dstPrime...)

	hasher := h.New()
	hasher.Write(msgPrime)
	b0 := hasher.Sum(nil)

	hasher = h.New()
	hasher.Write(b0)
	hasher.Write(i2osp(1, 1))
	hasher.Write(dstPrime)
	bPrev := hasher.Sum(nil)

	uniform := make([]byte, 0, ell*bInBytes)
	uniform = append(uniform, bPrev...)

	for i := 2; i <= ell; i++ {
		xored := make([]byte, bInBytes)
		for j := range xored {
			xored[j] = b0[j] ^ bPrev[j]
		}

		hasher = h.New()
		hasher.Write(xored)
		hasher.Write(i2osp(i, 1))
		hasher.Write(dstPrime)
		bPrev = hasher.Sum(nil)

		uniform = append(uniform, bPrev...)
	}

	copy(out, uniform[:lenInBytes])
	return nil
}

// ExpandMessageXOF implements expand_message_xof from RFC 9380 section 5.3.2
// using a SHAKE extendable-output function.
func ExpandMessageXOF(out []byte, xofFunc sha3.ShakeHash, dst, msg []byte) error {
	lenInBytes := len(out)
	if lenInBytes > 65535 {
		return errors.New("h2c: requested output too long")
	}
	if len(dst) > 255 {
		return errors.New("h2c: domain separation tag too long")
	}

	dstPrime := append(append([]byte(nil), dst...), i2osp(len(dst), 1)...)

	xofFunc.Reset()
	xofFunc.Write(msg)
	xofFunc.Write(lenInBytesU16(lenInBytes))
	xofFunc.Write(dstPrime)

	_, err := xofFunc.Read(out)
	return err
}

func lenInBytesU16(x int) []byte {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], uint16(x))
	return b[:]
}
