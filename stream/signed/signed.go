// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package signed implements the SIG2 block-signed stream wrapper (spec
// §4.1, §6): a seekable, direction-exclusive codec whose blocks each carry
// an RSA-PSS signature (sign package) alongside their payload. It plays the
// role saferwall/pe's security.go plays for Authenticode PKCS7 blobs, but
// for a stream of signed blocks rather than a single trailing certificate
// table, and it both reads and writes instead of only parsing.
package signed

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/saferwall/seresave/bytestream"
	xerr "github.com/saferwall/seresave/internal/xerrors"
	"github.com/saferwall/seresave/internal/xrand"
	"github.com/saferwall/seresave/sign"
	"golang.org/x/xerrors"
)

// Magic is the SIG2 header magic, little-endian.
const Magic uint32 = 0x53494732

// LatestVersion is the highest signed-stream header version this codec
// understands.
const LatestVersion = 5

const (
	maxBlockSize  = 0x80000
	maxDigestSize = 0x1000
)

var order = binary.LittleEndian

// WriteKeyIdentifier is the hard-coded key identifier string stamped into
// every stream seresave writes, matching the original editor's signing key
// label.
const WriteKeyIdentifier = "Signkey.EditorSignature"

// WriteBlockSize is the fixed block size used on the write path.
const WriteBlockSize = 0x10000

// WriteSignatureSize is the fixed signature reservation used on the write
// path (the byte length of an RSA-PSS signature from a 2048-bit key).
const WriteSignatureSize = 0x100

// Header is the on-disk SIG2 header (spec §6).
type Header struct {
	Version       int32
	BlockSize     int32
	HashMethod    sign.Method
	DigestSize    int32
	Nonce         int32
	SignatureSize int32
	KeyIdentifier string
}

func clamp(v, max int32) int32 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// readHeaderFields reads every header field, including the key identifier
// string, and returns the parsed fields alongside the raw bytes read up to
// but not including that identifier (the input to header-signature
// verification).
func readHeaderFields(r io.Reader) (Header, []byte, error) {
	var buf bytes.Buffer
	tee := io.TeeReader(r, &buf)

	var h Header
	if err := bytestream.AssertMagicU32(tee, order, Magic); err != nil {
		return h, nil, xerrors.Errorf("signed stream magic: %w", err)
	}
	version, err := bytestream.ReadInt32(tee, order)
	if err != nil {
		return h, nil, err
	}
	h.Version = version
	if h.Version < 1 || h.Version > LatestVersion {
		return h, nil, xerrors.Errorf("signed stream version %d: %w", h.Version, xerr.ErrMalformedHeader)
	}

	blockSize, err := bytestream.ReadInt32(tee, order)
	if err != nil {
		return h, nil, err
	}
	h.BlockSize = clamp(blockSize, maxBlockSize)

	hashMethod, err := bytestream.ReadInt32(tee, order)
	if err != nil {
		return h, nil, err
	}
	h.HashMethod = sign.Method(hashMethod)
	if _, err := h.HashMethod.Hash(); err != nil {
		return h, nil, xerrors.Errorf("signed stream: %w", err)
	}

	digestSize, err := bytestream.ReadInt32(tee, order)
	if err != nil {
		return h, nil, err
	}
	h.DigestSize = clamp(digestSize, maxDigestSize)

	nonce, err := bytestream.ReadInt32(tee, order)
	if err != nil {
		return h, nil, err
	}
	h.Nonce = nonce

	if h.Version > 1 {
		if _, err := bytestream.ReadInt32(tee, order); err != nil { // extra #1, ignored
			return h, nil, err
		}
	}
	if h.Version > 2 {
		if _, err := bytestream.ReadInt32(tee, order); err != nil { // extra #2, ignored
			return h, nil, err
		}
	}
	if h.Version > 4 {
		if _, err := bytestream.ReadString(tee, order); err != nil { // reserved string, ignored
			return h, nil, err
		}
	}

	sigSize, err := bytestream.ReadInt32(tee, order)
	if err != nil {
		return h, nil, err
	}
	h.SignatureSize = sigSize

	headerBytes := append([]byte(nil), buf.Bytes()...)

	if h.SignatureSize > 0 {
		keyID, err := bytestream.ReadString(r, order)
		if err != nil {
			return h, nil, err
		}
		h.KeyIdentifier = keyID
	}

	return h, headerBytes, nil
}

func writeHeaderFields(w io.Writer, h Header) ([]byte, error) {
	var buf bytes.Buffer
	if err := bytestream.WriteUint32(&buf, order, Magic); err != nil {
		return nil, err
	}
	if err := bytestream.WriteInt32(&buf, order, h.Version); err != nil {
		return nil, err
	}
	if err := bytestream.WriteInt32(&buf, order, h.BlockSize); err != nil {
		return nil, err
	}
	if err := bytestream.WriteInt32(&buf, order, int32(h.HashMethod)); err != nil {
		return nil, err
	}
	if err := bytestream.WriteInt32(&buf, order, h.DigestSize); err != nil {
		return nil, err
	}
	if err := bytestream.WriteInt32(&buf, order, h.Nonce); err != nil {
		return nil, err
	}
	if h.Version > 1 {
		if err := bytestream.WriteInt32(&buf, order, 0); err != nil {
			return nil, err
		}
	}
	if h.Version > 2 {
		if err := bytestream.WriteInt32(&buf, order, 0); err != nil {
			return nil, err
		}
	}
	if h.Version > 4 {
		if err := bytestream.WriteString(&buf, order, ""); err != nil {
			return nil, err
		}
	}
	if err := bytestream.WriteInt32(&buf, order, h.SignatureSize); err != nil {
		return nil, err
	}

	headerBytes := append([]byte(nil), buf.Bytes()...)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return nil, err
	}
	if h.SignatureSize > 0 {
		if err := bytestream.WriteString(w, order, h.KeyIdentifier); err != nil {
			return nil, err
		}
	}
	return headerBytes, nil
}

// computeBlocking derives the block count and logical (payload-only) length
// from the number of bytes remaining after the header/header-signature and
// the per-block trailer size, per spec §4.1's read-contract formula.
func computeBlocking(remaining int64, blockSize, trailer int64) (blockCount, logicalLength int64) {
	if blockSize <= 0 {
		return 0, 0
	}
	full := blockSize + trailer
	if full <= 0 {
		return 0, 0
	}
	numFull := remaining / full
	rem := remaining % full
	if rem == 0 {
		return numFull, numFull * blockSize
	}
	lastPayload := rem - trailer
	if lastPayload < 0 {
		lastPayload = 0
	}
	return numFull + 1, numFull*blockSize + lastPayload
}

// randomNonce returns a uniformly distributed int32 spanning the full
// 32-bit range, matching spec §4.1's "random int32 nonce (uniform over the
// full 32-bit range)".
func randomNonce() int32 {
	return int32(xrand.Uint32())
}
