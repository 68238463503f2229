// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package wrecked

import (
	"io"

	"github.com/saferwall/seresave/bytestream"
	xerr "github.com/saferwall/seresave/internal/xerrors"
	"golang.org/x/xerrors"
)

// block records one decoded block's extent within the base stream.
type block struct {
	physOffset int64 // offset of the block's payload in the base stream
	size       int64 // actual (possibly truncated) payload size
}

// Reader exposes the payload of a WRKSTRM1-wrapped stream as a seekable,
// read-only byte stream. Block boundaries are discovered once, at open
// time, by walking the chain of tick/size headers.
type Reader struct {
	base   io.ReadSeeker
	blocks []block
	length int64
	pos    int64

	buf      []byte
	bufBlock int
}

// NewReader parses the WRKSTRM1 magic and the chain of block headers from
// base, then returns a Reader over the wrapped payload.
func NewReader(base io.ReadSeeker) (*Reader, error) {
	if err := bytestream.AssertMagicU32(base, order, Magic); err != nil {
		return nil, xerrors.Errorf("wrecked stream magic: %w", err)
	}

	pos, err := base.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	baseLength, err := base.Seek(0, io.SeekEnd)
	if err != nil {
		return nil, err
	}
	if _, err := base.Seek(pos, io.SeekStart); err != nil {
		return nil, err
	}

	var blocks []block
	var length int64
	for {
		remaining := baseLength - pos
		if remaining <= 0 {
			break
		}
		if remaining < 8 {
			return nil, xerrors.Errorf("wrecked stream: %d trailing bytes before next block header: %w", remaining, xerr.ErrTruncated)
		}
		if _, err := bytestream.ReadUint32(base, order); err != nil { // tick, unused on read
			return nil, err
		}
		packed, err := bytestream.ReadUint32(base, order)
		if err != nil {
			return nil, err
		}
		declared := int64(unpackSize(int32(packed)))
		pos += 8
		remaining = baseLength - pos

		payloadSize := declared
		truncated := false
		if payloadSize >= remaining {
			payloadSize = remaining
			truncated = true
		}
		if payloadSize < 0 {
			return nil, xerrors.Errorf("negative wrecked block size: %w", xerr.ErrMalformedHeader)
		}

		blocks = append(blocks, block{physOffset: pos, size: payloadSize})
		length += payloadSize
		pos += payloadSize

		if _, err := base.Seek(pos, io.SeekStart); err != nil {
			return nil, err
		}
		if truncated {
			break
		}
	}

	return &Reader{base: base, blocks: blocks, length: length, bufBlock: -1}, nil
}

// Length returns the logical (payload-only) length of the wrapped stream.
func (r *Reader) Length() int64 { return r.length }

// blockAt returns the index of the block containing logical offset off and
// the offset within that block.
func (r *Reader) blockAt(off int64) (idx int, inBlock int64) {
	var acc int64
	for i, b := range r.blocks {
		if off < acc+b.size {
			return i, off - acc
		}
		acc += b.size
	}
	return len(r.blocks), 0
}

func (r *Reader) loadBlock(idx int) error {
	b := r.blocks[idx]
	if _, err := r.base.Seek(b.physOffset, io.SeekStart); err != nil {
		return err
	}
	buf := make([]byte, b.size)
	if _, err := io.ReadFull(r.base, buf); err != nil {
		return xerrors.Errorf("read wrecked block %d: %w", idx, err)
	}
	r.buf = buf
	r.bufBlock = idx
	return nil
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	if r.pos >= r.length {
		return 0, io.EOF
	}
	n := 0
	for n < len(p) && r.pos < r.length {
		idx, inBlock := r.blockAt(r.pos)
		if idx >= len(r.blocks) {
			break
		}
		if r.bufBlock != idx {
			if err := r.loadBlock(idx); err != nil {
				return n, err
			}
		}
		if inBlock >= int64(len(r.buf)) {
			break
		}
		c := copy(p[n:], r.buf[inBlock:])
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
