package ed25519core

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// TestRFC8032Vector1 is the first known-answer test from RFC 8032.
func TestRFC8032Vector1(t *testing.T) {
	seed := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	wantPub := mustHex(t, "d75a980182b10ab7d54bfed3c964073a0ee172f3daa62325af021a68f707511a")
	wantSig := mustHex(t, "e5564300c360ac729086e2cc806e828a84877f1eb8e5d974d873e065224901555fb8821590a33bacc61e39701cf9b46bd25bf5f0595bbe24655141438e7a100b")

	pub, priv, err := GenerateKey(seed)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(pub, wantPub) {
		t.Fatalf("public key = %x, want %x", pub, wantPub)
	}

	sig, err := Sign(priv, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sig, wantSig) {
		t.Fatalf("signature = %x, want %x", sig, wantSig)
	}

	if !Verify(pub, nil, sig) {
		t.Fatal("Verify rejected a valid signature")
	}
}

// TestRFC8032Vector2 is the second known-answer test from RFC 8032 (a
// one-byte message).
func TestRFC8032Vector2(t *testing.T) {
	seed := mustHex(t, "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb")
	message := mustHex(t, "72")
	wantSig := mustHex(t, "92a009a9f0d4cab8720e820b5f642540a2b27b5416503f8fb3762223ebdb69da085ac1e43e15996e458f3613d0f11d8c387b2eaeb4302aeeb00d291612bb0c00")

	pub, priv, err := GenerateKey(seed)
	if err != nil {
		t.Fatal(err)
	}

	sig, err := Sign(priv, message)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(sig, wantSig) {
		t.Fatalf("signature = %x, want %x", sig, wantSig)
	}

	if !Verify(pub, message, sig) {
		t.Fatal("Verify rejected a valid signature")
	}
}

// TestBitFlipInvalidatesSignature exercises E3: flipping a single bit of a
// valid signature must make Verify return false.
func TestBitFlipInvalidatesSignature(t *testing.T) {
	seed := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	message := []byte("flip one bit")

	pub, priv, err := GenerateKey(seed)
	if err != nil {
		t.Fatal(err)
	}
	sig, err := Sign(priv, message)
	if err != nil {
		t.Fatal(err)
	}
	if !Verify(pub, message, sig) {
		t.Fatal("Verify rejected a freshly produced signature")
	}

	flipped := append([]byte(nil), sig...)
	flipped[0] ^= 0x01
	if Verify(pub, message, flipped) {
		t.Fatal("Verify accepted a signature with a flipped bit")
	}
}

func TestVerifyRejectsWrongLengthSignature(t *testing.T) {
	seed := mustHex(t, "9d61b19deffd5a60ba844af492ec2cc44449c5697b326919703bac031cae7f60")
	pub, _, err := GenerateKey(seed)
	if err != nil {
		t.Fatal(err)
	}
	if Verify(pub, []byte("m"), make([]byte, 63)) {
		t.Fatal("Verify accepted a truncated signature")
	}
}

func TestVerifyRejectsWrongMessage(t *testing.T) {
	seed := mustHex(t, "4ccd089b28ff96da9db6c346ec114e0f5b8a319f35aba624da8cf6ed4fb8a6fb")
	pub, priv, err := GenerateKey(seed)
	if err != nil {
		t.Fatal(err)
	}
	sig, err := Sign(priv, []byte("original"))
	if err != nil {
		t.Fatal(err)
	}
	if Verify(pub, []byte("tampered"), sig) {
		t.Fatal("Verify accepted a signature over the wrong message")
	}
}

func TestGenerateKeyRejectsWrongSeedLength(t *testing.T) {
	if _, _, err := GenerateKey(make([]byte, 31)); err == nil {
		t.Fatal("expected an error for a short seed")
	}
}
