// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package signed

import (
	"bytes"
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"io"
	"io/ioutil"
	"testing"

	"github.com/saferwall/seresave/sign"
)

func testSigner(t *testing.T) *sign.Signer {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	s, err := sign.NewSigner(x509.MarshalPKCS1PrivateKey(key), crypto.SHA1)
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	return s
}

func TestWriterReaderRoundTrip(t *testing.T) {
	signer := testSigner(t)
	payload := bytes.Repeat([]byte("resource payload bytes "), 5000)

	var buf bytes.Buffer
	w, err := NewWriter(&buf, LatestVersion, signer)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := w.Write(payload); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()), nil)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, err := ioutil.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("round trip mismatch: got %d bytes, want %d", len(got), len(payload))
	}
}

func TestWriterReaderRoundTripWithVerifier(t *testing.T) {
	signer := testSigner(t)
	payload := []byte("short payload for the header-only case")

	var buf bytes.Buffer
	w, err := NewWriter(&buf, LatestVersion, signer)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	w.Write(payload)
	w.Close()

	r, err := NewReader(bytes.NewReader(buf.Bytes()), signer)
	if err != nil {
		t.Fatalf("NewReader with verifier: %v", err)
	}
	got, err := ioutil.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %q, want %q", got, payload)
	}
}

func TestReaderSeek(t *testing.T) {
	signer := testSigner(t)
	payload := bytes.Repeat([]byte("abcdefghij"), 8000)

	var buf bytes.Buffer
	w, err := NewWriter(&buf, LatestVersion, signer)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	w.Write(payload)
	w.Close()

	r, err := NewReader(bytes.NewReader(buf.Bytes()), nil)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	if _, err := r.Seek(70000, io.SeekStart); err != nil {
		t.Fatalf("Seek: %v", err)
	}
	got := make([]byte, 10)
	if _, err := io.ReadFull(r, got); err != nil {
		t.Fatalf("ReadFull: %v", err)
	}
	if !bytes.Equal(got, payload[70000:70010]) {
		t.Fatalf("seek mismatch: got %q, want %q", got, payload[70000:70010])
	}
}
