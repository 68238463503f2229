// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package sign

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"testing"
)

func testSigner(t *testing.T, hash crypto.Hash) *Signer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	der := x509.MarshalPKCS1PrivateKey(key)
	s, err := NewSigner(der, hash)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	return s
}

func TestSignVerifyRoundTrip(t *testing.T) {
	for _, hash := range []crypto.Hash{crypto.SHA1, crypto.SHA256} {
		s := testSigner(t, hash)
		data := []byte("Content/Weapons/Colt.mdl")
		sig, err := s.Sign(data)
		if err != nil {
			t.Fatalf("Sign: %v", err)
		}
		if len(sig) != s.SignatureSize() {
			t.Fatalf("signature length %d != SignatureSize() %d", len(sig), s.SignatureSize())
		}
		if err := s.Verify(data, sig); err != nil {
			t.Fatalf("Verify: %v", err)
		}
	}
}

func TestVerifyRejectsTamperedData(t *testing.T) {
	s := testSigner(t, crypto.SHA1)
	sig, err := s.Sign([]byte("original"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if err := s.Verify([]byte("tampered"), sig); err == nil {
		t.Fatal("expected verification failure against tampered data")
	}
}

func TestMethodHashRoundTrip(t *testing.T) {
	for _, m := range []Method{MethodSHA1, MethodSHA256} {
		h, err := m.Hash()
		if err != nil {
			t.Fatalf("Hash: %v", err)
		}
		back, err := MethodForHash(h)
		if err != nil {
			t.Fatalf("MethodForHash: %v", err)
		}
		if back != m {
			t.Fatalf("round trip: got %v, want %v", back, m)
		}
	}
}

func TestUnknownMethod(t *testing.T) {
	if _, err := Method(99).Hash(); err == nil {
		t.Fatal("expected error for unknown method tag")
	}
}
