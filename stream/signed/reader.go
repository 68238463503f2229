// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package signed

import (
	"io"

	xerr "github.com/saferwall/seresave/internal/xerrors"
	"github.com/saferwall/seresave/sign"
	"golang.org/x/xerrors"
)

// Reader exposes the payload of a SIG2-wrapped stream as a seekable,
// read-only byte stream. Only the header signature can be verified, and only
// when a Signer is supplied; per-block signatures are never checked.
type Reader struct {
	base      io.ReadSeeker
	Header    Header
	verifier  *sign.Signer
	dataStart int64
	blockSize int64
	trailer   int64
	blockCount int64
	length    int64
	pos       int64

	buf      []byte
	bufBlock int64
}

// NewReader parses the SIG2 header from base and returns a Reader over the
// wrapped payload. A non-nil verifier checks the header signature (when the
// header declares a zero digest size); a nil verifier skips that check.
// Per-block signatures are skipped over and never checked either way.
func NewReader(base io.ReadSeeker, verifier *sign.Signer) (*Reader, error) {
	header, headerBytes, err := readHeaderFields(base)
	if err != nil {
		return nil, err
	}

	sigAreaLen := int64(header.SignatureSize) + int64(header.DigestSize)
	var headerSig []byte
	if sigAreaLen > 0 {
		headerSig = make([]byte, sigAreaLen)
		if _, err := io.ReadFull(base, headerSig); err != nil {
			return nil, xerrors.Errorf("read header signature: %w", err)
		}
	}
	if verifier != nil && header.DigestSize == 0 && len(headerSig) > 0 {
		if err := verifier.Verify(headerBytes, headerSig); err != nil {
			return nil, xerrors.Errorf("verify header signature: %w", err)
		}
	}

	dataStart, err := base.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	baseLength, err := base.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := base.Seek(dataStart, io.SeekStart); err != nil {
		return nil, err
	}

	trailer := int64(header.DigestSize) + int64(header.SignatureSize)
	remaining := baseLength - dataStart
	blockCount, length := computeBlocking(remaining, int64(header.BlockSize), trailer)

	return &Reader{
		base:       base,
		Header:     header,
		verifier:   verifier,
		dataStart:  dataStart,
		blockSize:  int64(header.BlockSize),
		trailer:    trailer,
		blockCount: blockCount,
		length:     length,
		bufBlock:   -1,
	}, nil
}

// Length returns the logical (payload-only) length of the wrapped stream.
func (r *Reader) Length() int64 { return r.length }

func (r *Reader) loadBlock(idx int64) error {
	if r.blockSize <= 0 || idx < 0 || idx >= r.blockCount {
		return xerrors.Errorf("block index %d out of range: %w", idx, xerr.ErrTruncated)
	}
	payloadLen := r.blockSize
	if idx == r.blockCount-1 {
		payloadLen = r.length - idx*r.blockSize
	}
	if payloadLen < 0 {
		return xerrors.Errorf("negative block payload: %w", xerr.ErrTruncated)
	}
	physOffset := r.dataStart + idx*(r.blockSize+r.trailer)
	if _, err := r.base.Seek(physOffset, io.SeekStart); err != nil {
		return err
	}
	buf := make([]byte, payloadLen)
	if _, err := io.ReadFull(r.base, buf); err != nil {
		return xerrors.Errorf("read block %d: %w", idx, err)
	}
	r.buf = buf
	r.bufBlock = idx
	return nil
}

// Read implements io.Reader, copying from the current block's buffer and
// reloading blocks as boundaries are crossed.
func (r *Reader) Read(p []byte) (int, error) {
	if r.pos >= r.length {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) && r.pos < r.length {
		blockIdx := r.pos / r.blockSize
		inBlockOff := r.pos % r.blockSize
		if r.bufBlock != blockIdx {
			if err := r.loadBlock(blockIdx); err != nil {
				return n, err
			}
		}
		if inBlockOff >= int64(len(r.buf)) {
			break
		}
		c := copy(p[n:], r.buf[inBlockOff:])
		n += c
		r.pos += int64(c)
	}
	return n, nil
}

// Seek implements io.Seeker over the logical payload length.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	var target int64
	switch whence {
	case io.SeekStart:
		target = offset
	case io.SeekCurrent:
		target = r.pos + offset
	case io.SeekEnd:
		target = r.length + offset
	default:
		return 0, xerrors.Errorf("invalid whence %d: %w", whence, xerr.ErrNotSupportedOperation)
	}
	if target < 0 || target > r.length {
		return 0, xerrors.Errorf("seek target %d out of range [0,%d]: %w", target, r.length, xerr.ErrTruncated)
	}
	r.pos = target
	return r.pos, nil
}

// Close releases the base stream if it is closeable.
func (r *Reader) Close() error {
	if c, ok := r.base.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
