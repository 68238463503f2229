// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package sign implements the RSA-PSS signer used by the signed-stream
// wrapper (stream/signed): an 11-byte PSS salt, SHA-1 or SHA-256 digest, fed
// a DER-encoded PKCS#1 RSAPrivateKey. The PSS trailer field (0xBC) is the
// RFC 8017 default crypto/rsa always emits; it is not a parameter this
// package sets explicitly, only one it inherits by using PSS at all.
//
// The private keys shipped with the game profiles (profile package) are not
// secrets in the cryptographic sense: they are required for the rewritten
// files to be accepted by the shipped game binaries, the same way
// saferwall/pe's security.go parses (but never generates) Authenticode
// PKCS7 signatures against a fixed certificate chain.
package sign

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	_ "crypto/sha1" // register crypto.SHA1
	_ "crypto/sha256" // register crypto.SHA256
	"crypto/x509"

	"golang.org/x/xerrors"
)

// SaltLength is the fixed PSS salt length used by every seresave signed
// stream, regardless of digest algorithm.
const SaltLength = 11

// Method identifies the digest algorithm tag stored in a signed-stream
// header (spec §4.1: 4 = SHA-1, 6 = SHA-256).
type Method int32

const (
	MethodSHA1   Method = 4
	MethodSHA256 Method = 6
)

// Hash returns the crypto.Hash corresponding to m.
func (m Method) Hash() (crypto.Hash, error) {
	switch m {
	case MethodSHA1:
		return crypto.SHA1, nil
	case MethodSHA256:
		return crypto.SHA256, nil
	default:
		return 0, xerrors.Errorf("unknown hash method tag %d", int32(m))
	}
}

// MethodForHash is the inverse of Hash, used when a stream writer needs to
// persist the tag for a chosen algorithm.
func MethodForHash(h crypto.Hash) (Method, error) {
	switch h {
	case crypto.SHA1:
		return MethodSHA1, nil
	case crypto.SHA256:
		return MethodSHA256, nil
	default:
		return 0, xerrors.Errorf("unsupported hash algorithm %v", h)
	}
}

// Signer wraps an RSA private key and a digest algorithm and produces/checks
// RSA-PSS signatures with the fixed salt length SaltLength.
type Signer struct {
	key  *rsa.PrivateKey
	hash crypto.Hash
}

// NewSigner parses a DER-encoded PKCS#1 RSAPrivateKey and binds it to hash.
func NewSigner(derKey []byte, hash crypto.Hash) (*Signer, error) {
	key, err := x509.ParsePKCS1PrivateKey(derKey)
	if err != nil {
		return nil, xerrors.Errorf("parse PKCS#1 RSA private key: %w", err)
	}
	return &Signer{key: key, hash: hash}, nil
}

// DigestSize returns the byte length of the configured hash algorithm's
// output.
func (s *Signer) DigestSize() int {
	return s.hash.Size()
}

// Digest hashes data with the signer's configured algorithm.
func (s *Signer) Digest(data []byte) []byte {
	h := s.hash.New()
	h.Write(data)
	return h.Sum(nil)
}

// Sign computes an RSA-PSS signature over data (hashing it first), using an
// 11-byte salt.
func (s *Signer) Sign(data []byte) ([]byte, error) {
	digest := s.Digest(data)
	sig, err := rsa.SignPSS(rand.Reader, s.key, s.hash, digest, &rsa.PSSOptions{
		SaltLength: SaltLength,
		Hash:       s.hash,
	})
	if err != nil {
		return nil, xerrors.Errorf("RSA-PSS sign: %w", err)
	}
	return sig, nil
}

// SignatureSize returns the length in bytes of a signature produced by Sign:
// the RSA modulus size.
func (s *Signer) SignatureSize() int {
	return s.key.Size()
}

// Verify checks an RSA-PSS signature over data against the signer's public
// key, using the fixed salt length. Per spec §4.1 signature verification is
// optional on read; callers that do not need it may skip calling Verify
// entirely.
func (s *Signer) Verify(data, sig []byte) error {
	digest := s.Digest(data)
	err := rsa.VerifyPSS(&s.key.PublicKey, s.hash, digest, sig, &rsa.PSSOptions{
		SaltLength: SaltLength,
		Hash:       s.hash,
	})
	if err != nil {
		return xerrors.Errorf("RSA-PSS verify: %w", err)
	}
	return nil
}
