// Copyright 2018 Saferwall. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

// Package bytestream collects the positional byte-level helpers shared by
// every codec layered on top of a resource file: peeking, skipping, magic
// assertion and length-prefixed string read/write. It plays the role for
// the stream wrappers and the binary meta parser that saferwall/pe's
// ReadUint32/ReadBytesAtOffset family plays for a single mmap'd PE image,
// generalized from bounds-checked slice indexing to an io.ReadSeeker because
// seresave's payload sits behind zero or more block-oriented wrappers.
package bytestream

import (
	"encoding/binary"
	"io"

	xerr "github.com/saferwall/seresave/internal/xerrors"
	"golang.org/x/xerrors"
)

// Peek reads up to n bytes from r and then rewinds r by the number of bytes
// read, leaving the stream position unchanged. r must support relative
// seeking. If fewer than n but at least one byte remain, the short head is
// returned together with io.ErrUnexpectedEOF; with nothing left it returns
// io.EOF and no bytes.
func Peek(r io.ReadSeeker, n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	if _, serr := r.Seek(-int64(read), io.SeekCurrent); serr != nil {
		return nil, serr
	}
	if read < n {
		return buf[:read], err
	}
	return buf, nil
}

// Skip discards n bytes from r.
func Skip(r io.Reader, n int64) error {
	if n <= 0 {
		return nil
	}
	copied, err := io.CopyN(io.Discard, r, n)
	if err != nil {
		if err == io.EOF && copied < n {
			return xerrors.Errorf("skip %d bytes: %w", n, xerr.ErrTruncated)
		}
		return err
	}
	return nil
}

// AssertMagicU32 reads a little/big-endian (per order) uint32 from r and
// fails with ErrMalformedHeader unless it equals want.
func AssertMagicU32(r io.Reader, order binary.ByteOrder, want uint32) error {
	got, err := ReadUint32(r, order)
	if err != nil {
		return err
	}
	if got != want {
		return xerrors.Errorf("magic %#x, want %#x: %w", got, want, xerr.ErrMalformedHeader)
	}
	return nil
}

// ReadUint32 reads a single uint32 in the given byte order.
func ReadUint32(r io.Reader, order binary.ByteOrder) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	return order.Uint32(buf[:]), nil
}

// ReadInt32 reads a single int32 in the given byte order.
func ReadInt32(r io.Reader, order binary.ByteOrder) (int32, error) {
	v, err := ReadUint32(r, order)
	return int32(v), err
}

// WriteUint32 writes v in the given byte order.
func WriteUint32(w io.Writer, order binary.ByteOrder, v uint32) error {
	var buf [4]byte
	order.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

// WriteInt32 writes v in the given byte order.
func WriteInt32(w io.Writer, order binary.ByteOrder, v int32) error {
	return WriteUint32(w, order, uint32(v))
}

// ReadString reads a length-prefixed UTF-8 string: an int32 byte count
// (subject to order) followed by that many bytes. A length less than 1
// denotes the empty string and consumes no further bytes.
func ReadString(r io.Reader, order binary.ByteOrder) (string, error) {
	n, err := ReadInt32(r, order)
	if err != nil {
		return "", err
	}
	if n < 1 {
		return "", nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteString writes s as a length-prefixed UTF-8 string in the given byte
// order: an int32 byte length followed by the UTF-8 bytes.
func WriteString(w io.Writer, order binary.ByteOrder, s string) error {
	b := []byte(s)
	if err := WriteInt32(w, order, int32(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// StringByteLen returns the on-disk size of s encoded via WriteString: the
// 4-byte length prefix plus its UTF-8 byte length.
func StringByteLen(s string) int64 {
	return 4 + int64(len(s))
}
